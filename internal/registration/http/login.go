package http

import (
	"net/http"

	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Check a student ID and password. Unknown IDs and wrong passwords return the same error.
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			request	body		quizbanksdk.LoginRequest	true	"studentID, password"
//	@Success		200		{object}	quizbanksdk.StudentResponse	"message, student"
//	@Failure		400		{object}	quizbanksdk.ErrorResponse	"missing_field"
//	@Failure		401		{object}	quizbanksdk.ErrorResponse	"invalid_credentials"
//	@Failure		403		{object}	quizbanksdk.ErrorResponse	"email_not_verified"
//	@Failure		429		{object}	quizbanksdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/api/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req quizbanksdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w)
		return
	}

	acct, err := h.AuthService.Login(r.Context(), req.StudentID, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, quizbanksdk.StudentResponse{
		Message: "Login successful",
		Student: toStudent(acct),
	})
}
