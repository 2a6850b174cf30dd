package registration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/quizbank/pkg/quizbanksdk"
)

// TestHealthEndpoints verifies liveness and readiness on a fresh service.
func TestHealthEndpoints(t *testing.T) {
	env := setupEnvironment(t, nil)

	live, err := env.Client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	ready, err := env.Client.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

// TestRegistrationFlow walks start, mailed code, verify, login and listing.
func TestRegistrationFlow(t *testing.T) {
	env := setupEnvironment(t, nil)
	ctx := t.Context()

	req := newStudent()
	student := registerStudent(t, env, req)

	require.NotEmpty(t, student.ID)
	require.Equal(t, req.StudentID, student.StudentID)
	require.Equal(t, "Juan Miguel Dela Cruz", student.FullName)
	require.Equal(t, req.Email, student.Email)

	login, err := env.Client.Login(ctx, req.StudentID, studentPassword)
	require.NoError(t, err)
	require.Equal(t, "Login successful", login.Message)
	require.Equal(t, student.ID, login.Student.ID)

	list, err := env.Client.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Verified)
	require.Equal(t, req.StudentID, list[0].StudentID)

	t.Logf("Registered %s as %s", student.StudentID, student.ID)
}

// TestResendInvalidatesOldCode checks only the newest mailed code verifies.
func TestResendInvalidatesOldCode(t *testing.T) {
	env := setupEnvironment(t, nil)
	ctx := t.Context()

	req := newStudent()
	_, err := env.Client.StartRegistration(ctx, req)
	require.NoError(t, err)
	first := waitForCodes(t, env, req.Email, 1)[0]

	_, err = env.Client.ResendOTP(ctx, req.Email)
	require.NoError(t, err)
	codes := waitForCodes(t, env, req.Email, 2)
	latest := codes[0]

	if first != latest {
		_, err = env.Client.VerifyRegistration(ctx, req.Email, first)
		assertReason(t, err, http.StatusBadRequest, quizbanksdk.ReasonInvalidCode)
	}

	_, err = env.Client.VerifyRegistration(ctx, req.Email, latest)
	require.NoError(t, err)
}

// TestRegistrationConflicts checks duplicate student IDs and emails.
func TestRegistrationConflicts(t *testing.T) {
	env := setupEnvironment(t, nil)
	ctx := t.Context()

	existing := newStudent()
	registerStudent(t, env, existing)

	sameID := newStudent()
	sameID.StudentID = existing.StudentID
	_, err := env.Client.StartRegistration(ctx, sameID)
	assertReason(t, err, http.StatusConflict, quizbanksdk.ReasonDuplicateStudentID)

	sameEmail := newStudent()
	sameEmail.Email = existing.Email
	_, err = env.Client.StartRegistration(ctx, sameEmail)
	assertReason(t, err, http.StatusConflict, quizbanksdk.ReasonDuplicateEmail)
}

// TestValidationErrors checks the service rejects bad candidates without mailing.
func TestValidationErrors(t *testing.T) {
	env := setupEnvironment(t, nil)
	ctx := t.Context()

	missing := newStudent()
	missing.Course = ""
	_, err := env.Client.StartRegistration(ctx, missing)
	assertReason(t, err, http.StatusBadRequest, quizbanksdk.ReasonMissingField)

	mismatch := newStudent()
	mismatch.ConfirmPassword = "different"
	_, err = env.Client.StartRegistration(ctx, mismatch)
	assertReason(t, err, http.StatusBadRequest, quizbanksdk.ReasonSecretMismatch)

	badID := newStudent()
	badID.StudentID = "2021-1234"
	_, err = env.Client.StartRegistration(ctx, badID)
	assertReason(t, err, http.StatusBadRequest, quizbanksdk.ReasonMalformedStudentID)

	_, err = env.Client.VerifyRegistration(ctx, "nobody@quizbank.test", "123456")
	assertReason(t, err, http.StatusNotFound, quizbanksdk.ReasonSessionNotFound)
}

// TestLoginFailures checks unverified and unknown logins are rejected.
func TestLoginFailures(t *testing.T) {
	env := setupEnvironment(t, nil)
	ctx := t.Context()

	req := newStudent()
	registerStudent(t, env, req)

	_, err := env.Client.Login(ctx, req.StudentID, "wrong-password")
	assertReason(t, err, http.StatusUnauthorized, "")

	_, err = env.Client.Login(ctx, "99-9999-999999", studentPassword)
	assertReason(t, err, http.StatusUnauthorized, "")
}

// TestLoginRateLimit runs with default limits: the sixth login inside a
// minute for one student ID is throttled.
func TestLoginRateLimit(t *testing.T) {
	env := setupEnvironment(t, map[string]string{
		"RATELIMIT_STRICT_REQUESTS": "5",
		"RATELIMIT_STRICT_BURST":    "5",
	})
	ctx := t.Context()

	client := quizbanksdk.NewSDKClient(env.BaseURL)
	client.Retries = 0

	for i := range 5 {
		_, err := client.Login(ctx, "21-0000-000001", "whatever")
		assertReason(t, err, http.StatusUnauthorized, "")
		t.Logf("login attempt %d rejected as expected", i+1)
	}

	_, err := client.Login(ctx, "21-0000-000001", "whatever")
	assertReason(t, err, http.StatusTooManyRequests, "")
}
