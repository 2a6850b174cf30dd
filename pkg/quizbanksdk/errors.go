package quizbanksdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kinds.
const (
	KindInvalidRequest     = "invalid_request"
	KindValidation         = "validation_error"
	KindConflict           = "conflict"
	KindNotFound           = "not_found"
	KindExpired            = "expired"
	KindDeliveryFailed     = "delivery_failed"
	KindInvalidCredentials = "invalid_credentials"
	KindEmailNotVerified   = "email_not_verified"
	KindInternal           = "internal"
	KindRateLimited        = "rate_limit_exceeded"
)

// Error reasons.
const (
	ReasonMissingField       = "missing_field"
	ReasonSecretMismatch     = "secret_mismatch"
	ReasonMalformedStudentID = "malformed_student_id"
	ReasonMalformedEmail     = "malformed_email"
	ReasonInvalidCode        = "invalid_code"
	ReasonDuplicateStudentID = "duplicate_student_id"
	ReasonDuplicateEmail     = "duplicate_email"
	ReasonDuplicateAccount   = "duplicate_account"
	ReasonSessionNotFound    = "session_not_found"
	ReasonOTPExpired         = "otp_expired"
)

// APIError is a non-success response from the service.
type APIError struct {
	StatusCode int
	Kind       string
	Reason     string
	Message    string
	Fields     []string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s/%s: %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Temporary reports whether repeating the request may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == http.StatusServiceUnavailable ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusBadGateway
}

// parseErrorResponse converts an error response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errResp.Error,
			Reason:     errResp.Reason,
			Message:    errResp.Message,
			Fields:     errResp.Fields,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindInternal,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
