package service

import (
	"fmt"
	"strings"
)

// Kind classifies a service error. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindConflict           Kind = "conflict"
	KindNotFound           Kind = "not_found"
	KindExpired            Kind = "expired"
	KindDeliveryFailed     Kind = "delivery_failed"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindEmailNotVerified   Kind = "email_not_verified"
	KindInternal           Kind = "internal"
)

// Error is the structured error every service operation returns. Two
// errors are equal under errors.Is when their Reason matches, so the
// sentinels below still match after Fields or Message are filled in.
type Error struct {
	Kind    Kind
	Reason  string
	Message string
	Fields  []string

	// Err is the underlying collaborator failure, if any. Never shown to clients.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s: %s", e.Kind, e.Reason, e.Message)
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

// withFields returns a copy of e listing the offending fields.
func (e *Error) withFields(fields ...string) *Error {
	c := *e
	c.Fields = fields
	return &c
}

func (e *Error) withMessage(msg string) *Error {
	c := *e
	c.Message = msg
	return &c
}

func (e *Error) wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

var (
	ErrMissingField       = &Error{Kind: KindValidation, Reason: "missing_field", Message: "All required fields must be filled"}
	ErrSecretMismatch     = &Error{Kind: KindValidation, Reason: "secret_mismatch", Message: "Passwords do not match"}
	ErrMalformedStudentID = &Error{Kind: KindValidation, Reason: "malformed_student_id", Message: "Student ID must be in format: 12-3456-789012"}
	ErrMalformedEmail     = &Error{Kind: KindValidation, Reason: "malformed_email", Message: "Email address is not valid"}
	ErrInvalidCode        = &Error{Kind: KindValidation, Reason: "invalid_code", Message: "Invalid OTP code"}

	ErrDuplicateStudentID = &Error{Kind: KindConflict, Reason: "duplicate_student_id", Message: "Student ID already registered"}
	ErrDuplicateEmail     = &Error{Kind: KindConflict, Reason: "duplicate_email", Message: "Email already registered"}
	ErrDuplicateAccount   = &Error{Kind: KindConflict, Reason: "duplicate_account", Message: "Student ID or email already registered"}

	ErrSessionNotFound = &Error{Kind: KindNotFound, Reason: "session_not_found", Message: "Registration session expired or not found"}
	ErrOTPExpired      = &Error{Kind: KindExpired, Reason: "otp_expired", Message: "OTP has expired. Please start registration again."}

	ErrDeliveryFailed = &Error{Kind: KindDeliveryFailed, Reason: "delivery_failed", Message: "Failed to send OTP email"}

	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Reason: "invalid_credentials", Message: "Invalid Student ID or password"}
	ErrEmailNotVerified   = &Error{Kind: KindEmailNotVerified, Reason: "email_not_verified", Message: "Please verify your email first"}

	ErrInternal = &Error{Kind: KindInternal, Reason: "internal", Message: "internal server error"}
)

// internal wraps a collaborator failure as an opaque internal error.
func internal(op string, err error) *Error {
	return ErrInternal.wrap(fmt.Errorf("%s: %w", op, err))
}
