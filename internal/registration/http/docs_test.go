package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocumentsEveryRoute(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	routes := map[string]string{
		"/":                        "get",
		"/livez":                   "get",
		"/readyz":                  "get",
		"/api/register/start":      "post",
		"/api/register/verify":     "post",
		"/api/register/resend-otp": "post",
		"/api/login":               "post",
		"/api/students":            "get",
	}
	for path, method := range routes {
		ops, ok := parsed.Paths[path]
		require.True(t, ok, "missing path %s", path)
		require.Contains(t, ops, method, "path %s", path)
	}
}
