package http

import (
	"net/http"

	"github.com/aussiebroadwan/quizbank/internal/registration/domain"
	"github.com/aussiebroadwan/quizbank/internal/registration/service"
	"github.com/aussiebroadwan/quizbank/pkg/httpx"
	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// HandleStart godoc
//
//	@Summary		Start Registration
//	@Description	Validate a candidate registration, store it as pending and email a one-time code.
//	@Description	A second start for the same email replaces the pending registration.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		quizbanksdk.StartRegistrationRequest	true	"Candidate profile and password"
//	@Success		200		{object}	quizbanksdk.OTPSentResponse				"message, email, expiresAt"
//	@Failure		400		{object}	quizbanksdk.ErrorResponse				"validation_error"
//	@Failure		409		{object}	quizbanksdk.ErrorResponse				"student id or email already registered"
//	@Failure		429		{object}	quizbanksdk.ErrorResponse				"rate_limit_exceeded"
//	@Failure		502		{object}	quizbanksdk.ErrorResponse				"delivery_failed"
//	@Router			/api/register/start [post]
func (h *RegisterHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req quizbanksdk.StartRegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w)
		return
	}

	res, err := h.RegistrationService.Start(r.Context(), service.StartRequest{
		Profile: domain.Profile{
			LastName:   req.LastName,
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			Suffix:     req.Suffix,
			Course:     req.Course,
			Section:    req.Section,
			YearLevel:  req.YearLevel,
		},
		StudentID:    req.StudentID,
		Email:        req.Email,
		Secret:       req.Password,
		Confirmation: req.ConfirmPassword,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, quizbanksdk.OTPSentResponse{
		Message:   "OTP sent to your email",
		Email:     res.Email,
		ExpiresAt: res.ExpiresAt,
	})
}

// HandleVerify godoc
//
//	@Summary		Verify Registration
//	@Description	Check the emailed code and create the verified student account.
//	@Description	A wrong code leaves the pending registration in place; an expired one removes it.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		quizbanksdk.VerifyRegistrationRequest	true	"email, otpCode"
//	@Success		201		{object}	quizbanksdk.StudentResponse				"message, student"
//	@Failure		400		{object}	quizbanksdk.ErrorResponse				"missing field or invalid code"
//	@Failure		404		{object}	quizbanksdk.ErrorResponse				"session_not_found"
//	@Failure		409		{object}	quizbanksdk.ErrorResponse				"duplicate_account"
//	@Failure		410		{object}	quizbanksdk.ErrorResponse				"otp_expired"
//	@Failure		429		{object}	quizbanksdk.ErrorResponse				"rate_limit_exceeded"
//	@Router			/api/register/verify [post]
func (h *RegisterHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req quizbanksdk.VerifyRegistrationRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w)
		return
	}

	acct, err := h.RegistrationService.Verify(r.Context(), req.Email, req.OTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, quizbanksdk.StudentResponse{
		Message: "Registration completed successfully",
		Student: toStudent(acct),
	})
}

// HandleResend godoc
//
//	@Summary		Resend OTP
//	@Description	Email a new code for a pending registration. The previous code stops working
//	@Description	once the new one has been delivered; if delivery fails the previous code stays valid.
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		quizbanksdk.ResendOTPRequest	true	"email"
//	@Success		200		{object}	quizbanksdk.OTPSentResponse		"message, email, expiresAt"
//	@Failure		400		{object}	quizbanksdk.ErrorResponse		"missing_field"
//	@Failure		404		{object}	quizbanksdk.ErrorResponse		"session_not_found"
//	@Failure		429		{object}	quizbanksdk.ErrorResponse		"rate_limit_exceeded"
//	@Failure		502		{object}	quizbanksdk.ErrorResponse		"delivery_failed"
//	@Router			/api/register/resend-otp [post]
func (h *RegisterHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var req quizbanksdk.ResendOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeInvalidRequest(w)
		return
	}

	res, err := h.RegistrationService.Resend(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, quizbanksdk.OTPSentResponse{
		Message:   "New OTP sent to your email",
		Email:     res.Email,
		ExpiresAt: res.ExpiresAt,
	})
}

func toStudent(a domain.PublicAccount) quizbanksdk.Student {
	return quizbanksdk.Student{
		ID:        a.ID,
		StudentID: a.StudentID,
		FullName:  a.FullName,
		Email:     a.Email,
		Course:    a.Course,
		Section:   a.Section,
		YearLevel: a.YearLevel,
	}
}
