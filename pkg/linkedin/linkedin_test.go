package linkedin

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/novalink/novalink-backend/pkg/config"
)

func createTestLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{
		Level: log.ErrorLevel,
	})
}

func newTestClient(apiURL, authURL, accessToken, refreshToken string) *Client {
	cfg := &config.Config{
		LinkedInClientID:     "test-client-id",
		LinkedInClientSecret: "test-client-secret",
		LinkedInAccessToken:  accessToken,
		LinkedInRefreshToken: refreshToken,
		LinkedInAuthURL:      authURL,
		LinkedInAPIBaseURL:   apiURL,
	}
	return NewClient(cfg, createTestLogger())
}

func decodeJSONBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	body, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	return decoded
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func userinfoPayload(sub string) map[string]any {
	return map[string]any{
		"sub":         sub,
		"given_name":  "Ada",
		"family_name": "Lovelace",
		"email":       "ada@example.com",
		"picture":     "https://cdn.example.com/ada.png",
	}
}
