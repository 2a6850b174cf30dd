/*
Package quizbanksdk is a client for the QuizBank registration service.

A student registers in two steps. StartRegistration submits the profile and
password and makes the service email a one-time code; VerifyRegistration
submits that code and returns the created account. ResendOTP mails a new
code for a registration still in progress. Login checks a student ID and
password.

	client := quizbanksdk.NewSDKClient("http://localhost:8000")

	started, err := client.StartRegistration(ctx, quizbanksdk.StartRegistrationRequest{...})
	student, err := client.VerifyRegistration(ctx, started.Email, code)
	student, err = client.Login(ctx, "21-1234-567890", password)

# Errors

Every non-success response is returned as *APIError carrying the HTTP status
and the service's kind, reason and message. Use errors.As to inspect it:

	var apiErr *quizbanksdk.APIError
	if errors.As(err, &apiErr) && apiErr.Reason == quizbanksdk.ReasonInvalidCode {
		// ask for the code again
	}

# Retries

The service itself never retries. SDKClient.Retries controls how often the
client repeats a request that failed with a transport error or a 503; only
GET requests and VerifyRegistration and Login are retried, since repeating
StartRegistration or ResendOTP would send another email.
*/
package quizbanksdk
