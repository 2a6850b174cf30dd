package http

import (
	"net/http"

	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
)

type StudentsHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		List Students
//	@Description	Diagnostic listing of every registered student, newest first. Hashes and codes are never included.
//	@Description	Only mounted when STUDENT_LIST_ENABLED is true.
//	@Tags			Diagnostics
//	@Produce		json
//	@Success		200	{array}		quizbanksdk.StudentListing
//	@Failure		500	{object}	quizbanksdk.ErrorResponse
//	@Router			/api/students [get]
func (h *StudentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]quizbanksdk.StudentListing, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, quizbanksdk.StudentListing{
			Student:    toStudent(a.PublicAccount),
			LastName:   a.LastName,
			FirstName:  a.FirstName,
			MiddleName: a.MiddleName,
			Suffix:     a.Suffix,
			Verified:   a.Verified,
			CreatedAt:  a.CreatedAt,
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}
