package quizbanksdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the QuizBank registration service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Retries is how many times a retryable request is repeated after a
	// transport error or a temporary server error. Zero disables retries.
	Retries int

	// RetryBackoff is the wait before the first retry; it doubles on each
	// further attempt.
	RetryBackoff time.Duration
}

// NewSDKClient creates a client with a 10 second timeout and two retries.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Retries:      2,
		RetryBackoff: 200 * time.Millisecond,
	}
}
