package quizbanksdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GetLiveness reports whether the service process is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness reports whether the service can reach its database and
// ledger. A degraded service returns both the decoded body, so callers can
// see which check failed, and a 503 *APIError.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health HealthResponse
	decodeErr := json.Unmarshal(body, &health)

	switch {
	case resp.StatusCode == http.StatusOK && decodeErr == nil:
		return &health, nil
	case resp.StatusCode == http.StatusOK:
		return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
	case resp.StatusCode == http.StatusServiceUnavailable && decodeErr == nil && health.Status != "":
		return &health, &APIError{StatusCode: resp.StatusCode, Kind: KindInternal, Message: "service " + health.Status}
	default:
		return nil, parseErrorResponse(resp, body)
	}
}
