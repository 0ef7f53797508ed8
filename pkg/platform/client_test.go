package platform

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func createTestLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{
		Level: log.ErrorLevel,
	})
}

func TestJSONDecodesSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/thing", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, createTestLogger())

	var out struct {
		ID string `json:"id"`
	}
	err := client.JSON(context.Background(), http.MethodGet, "/v2/thing", nil, &out)
	require.NoError(t, err)
	require.Equal(t, "42", out.ID)
}

func TestNon2xxBecomesNormalizedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not enough permissions"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, createTestLogger())

	err := client.JSON(context.Background(), http.MethodGet, "/v2/thing", nil, nil)
	require.Error(t, err)

	platformErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, platformErr.Status)
	require.Equal(t, "not enough permissions", platformErr.Message)
	require.Contains(t, string(platformErr.RawBody), "not enough permissions")
}

func TestTransportFailureHasNoStatus(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, createTestLogger())

	err := client.JSON(context.Background(), http.MethodGet, "/anything", nil, nil)
	require.Error(t, err)

	platformErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, 0, platformErr.Status)
}

func TestAuthorizerAndDefaultHeadersApplied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer sekret", r.Header.Get("Authorization"))
		require.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, BearerAuthorizer{Token: "sekret"}, createTestLogger(),
		WithHeader("X-Restli-Protocol-Version", "2.0.0"))

	err := client.JSON(context.Background(), http.MethodGet, "/v2/me", nil, nil)
	require.NoError(t, err)
}

func TestPutRawSendsBytesToAbsoluteURL(t *testing.T) {
	var received []byte
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		contentType = r.Header.Get("Content-Type")
		received, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient("http://unused.example", nil, createTestLogger())

	err := client.PutRaw(context.Background(), server.URL+"/upload/slot-1", []byte{0x1, 0x2, 0x3}, "application/octet-stream")
	require.NoError(t, err)
	require.Equal(t, []byte{0x1, 0x2, 0x3}, received)
	require.Equal(t, "application/octet-stream", contentType)
}

func TestErrorMessageFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, createTestLogger())

	err := client.JSON(context.Background(), http.MethodGet, "/v2/thing", nil, nil)
	platformErr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, http.StatusBadGateway, platformErr.Status)
	require.NotEmpty(t, platformErr.Message)
}
