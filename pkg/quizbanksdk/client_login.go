package quizbanksdk

import (
	"context"
	"net/http"
)

// Login checks a student ID and password. No session is created; the
// returned student is the proof of a successful check.
func (c *SDKClient) Login(ctx context.Context, studentID, password string) (*StudentResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/login",
		LoginRequest{StudentID: studentID, Password: password}, true)
	if err != nil {
		return nil, err
	}

	var out StudentResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
