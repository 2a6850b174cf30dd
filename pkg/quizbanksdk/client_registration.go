package quizbanksdk

import (
	"context"
	"net/http"
)

// StartRegistration submits a candidate and asks the service to mail a code.
func (c *SDKClient) StartRegistration(ctx context.Context, req StartRegistrationRequest) (*OTPSentResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/register/start", req, false)
	if err != nil {
		return nil, err
	}

	var out OTPSentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyRegistration submits the mailed code and returns the created student.
func (c *SDKClient) VerifyRegistration(ctx context.Context, email, code string) (*StudentResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/register/verify",
		VerifyRegistrationRequest{Email: email, OTPCode: code}, true)
	if err != nil {
		return nil, err
	}

	var out StudentResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP asks the service to mail a new code for a pending registration.
func (c *SDKClient) ResendOTP(ctx context.Context, email string) (*OTPSentResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/register/resend-otp", ResendOTPRequest{Email: email}, false)
	if err != nil {
		return nil, err
	}

	var out OTPSentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStudents returns every registered student, newest first. The
// service may have the listing disabled, in which case a 404 APIError is
// returned.
func (c *SDKClient) ListStudents(ctx context.Context) ([]StudentListing, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/students", nil, true)
	if err != nil {
		return nil, err
	}

	var out []StudentListing
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}
