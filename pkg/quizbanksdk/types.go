package quizbanksdk

import "time"

// ErrorResponse is the body of every error returned by the service.
type ErrorResponse struct {
	// Error is the error kind, e.g. "validation_error" or "conflict".
	Error string `json:"error"`

	// Reason narrows the kind, e.g. "duplicate_student_id".
	Reason string `json:"reason,omitempty"`

	// Message is human readable and safe to show to the student.
	Message string `json:"message"`

	// Fields lists the offending request fields, if any.
	Fields []string `json:"fields,omitempty"`
}

// MessageResponse is a bare status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// StartRegistrationRequest is the body of POST /api/register/start.
type StartRegistrationRequest struct {
	LastName        string `json:"lastName"`
	FirstName       string `json:"firstName"`
	MiddleName      string `json:"middleName"`
	Suffix          string `json:"suffix,omitempty"`
	StudentID       string `json:"studentID"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Course          string `json:"course"`
	Section         string `json:"section"`
	YearLevel       string `json:"yearLevel"`
}

// OTPSentResponse is returned when a code has been mailed.
type OTPSentResponse struct {
	Message   string    `json:"message"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// VerifyRegistrationRequest is the body of POST /api/register/verify.
type VerifyRegistrationRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otpCode"`
}

// ResendOTPRequest is the body of POST /api/register/resend-otp.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	StudentID string `json:"studentID"`
	Password  string `json:"password"`
}

// Student is the public view of an account. It never carries secrets.
type Student struct {
	ID        string `json:"id"`
	StudentID string `json:"studentID"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Course    string `json:"course"`
	Section   string `json:"section"`
	YearLevel string `json:"yearLevel"`
}

// StudentResponse wraps a Student with a status message.
type StudentResponse struct {
	Message string  `json:"message"`
	Student Student `json:"student"`
}

// StudentListing is one entry of GET /api/students.
type StudentListing struct {
	Student
	LastName   string    `json:"lastName"`
	FirstName  string    `json:"firstName"`
	MiddleName string    `json:"middleName"`
	Suffix     string    `json:"suffix,omitempty"`
	Verified   bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Ledger   string `json:"ledger"`
}
