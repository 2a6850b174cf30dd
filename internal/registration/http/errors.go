package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
	"github.com/aussiebroadwan/quizbank/pkg/slogx"
)

var statusByKind = map[service.Kind]int{
	service.KindValidation:         http.StatusBadRequest,
	service.KindNotFound:           http.StatusNotFound,
	service.KindExpired:            http.StatusGone,
	service.KindConflict:           http.StatusConflict,
	service.KindInvalidCredentials: http.StatusUnauthorized,
	service.KindEmailNotVerified:   http.StatusForbidden,
	service.KindDeliveryFailed:     http.StatusBadGateway,
	service.KindInternal:           http.StatusInternalServerError,
}

// writeServiceError renders err as the standard error body. Anything that
// is not a *service.Error is treated as internal and its text withheld.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = service.ErrInternal
	}

	status, ok := statusByKind[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("reason", se.Reason),
			slog.Any("error", err),
		)
	}

	httpx.WriteJSON(w, status, quizbanksdk.ErrorResponse{
		Error:   string(se.Kind),
		Reason:  se.Reason,
		Message: se.Message,
		Fields:  se.Fields,
	})
}

func writeInvalidRequest(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, quizbanksdk.ErrorResponse{
		Error:   quizbanksdk.KindInvalidRequest,
		Message: "Request body must be a JSON object",
	})
}
