package linkedin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/novalink/novalink-backend/pkg/platform"
)

func TestAuthorizationURLContainsOAuthParameters(t *testing.T) {
	client := newTestClient("http://api.invalid", "https://auth.example/oauth/v2", "", "")

	rawURL, err := client.AuthorizationURL("https://app.example/callback", "state-123", "")
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	require.Equal(t, "/oauth/v2/authorization", parsed.Path)

	q := parsed.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "test-client-id", q.Get("client_id"))
	require.Equal(t, "https://app.example/callback", q.Get("redirect_uri"))
	require.Equal(t, "state-123", q.Get("state"))
	require.Equal(t, defaultScope, q.Get("scope"))
}

func TestAuthorizationURLRequiresClientID(t *testing.T) {
	client := newTestClient("http://api.invalid", "http://auth.invalid", "", "")
	client.cfg.LinkedInClientID = ""

	_, err := client.AuthorizationURL("https://app.example/callback", "s", "")
	require.Error(t, err)
}

func TestExchangeCodeStoresTokenPair(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accessToken", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		require.Equal(t, "auth-code", r.PostForm.Get("code"))
		require.Equal(t, "https://app.example/callback", r.PostForm.Get("redirect_uri"))
		require.Equal(t, "test-client-id", r.PostForm.Get("client_id"))
		require.Equal(t, "test-client-secret", r.PostForm.Get("client_secret"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token":  "token-one",
			"expires_in":    3600,
			"refresh_token": "refresh-one",
		})
	}))
	defer authServer.Close()

	client := newTestClient("http://api.invalid", authServer.URL, "", "")

	resp, err := client.ExchangeCode(context.Background(), "auth-code", "https://app.example/callback")
	require.NoError(t, err)
	require.Equal(t, "token-one", resp.AccessToken)

	require.Equal(t, "token-one", client.Session().AccessToken())
	require.Equal(t, "refresh-one", client.Session().RefreshToken())
	require.True(t, client.Session().ExpiresAt().After(time.Now()))
}

func TestExchangeFailureLeavesSessionUntouched(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "the code is expired",
		})
	}))
	defer authServer.Close()

	client := newTestClient("http://api.invalid", authServer.URL, "old-token", "old-refresh")

	_, err := client.ExchangeCode(context.Background(), "stale-code", "https://app.example/callback")
	require.Error(t, err)

	var platformErr *platform.Error
	require.ErrorAs(t, err, &platformErr)
	require.Equal(t, http.StatusBadRequest, platformErr.Status)
	require.Equal(t, "the code is expired", platformErr.Message)

	require.Equal(t, "old-token", client.Session().AccessToken())
	require.Equal(t, "old-refresh", client.Session().RefreshToken())
}

func TestRefreshRetainsPreviousRefreshTokenWhenOmitted(t *testing.T) {
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		require.Equal(t, "refresh-old", r.PostForm.Get("refresh_token"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"access_token": "token-two",
			"expires_in":   3600,
		})
	}))
	defer authServer.Close()

	client := newTestClient("http://api.invalid", authServer.URL, "token-one", "refresh-old")

	resp, err := client.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "token-two", resp.AccessToken)

	require.Equal(t, "token-two", client.Session().AccessToken())
	require.Equal(t, "refresh-old", client.Session().RefreshToken())
}

func TestRefreshWithoutRefreshTokenFailsBeforeNetwork(t *testing.T) {
	calls := 0
	authServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer authServer.Close()

	client := newTestClient("http://api.invalid", authServer.URL, "token-one", "")

	_, err := client.Refresh(context.Background())
	require.ErrorIs(t, err, ErrNoRefreshToken)
	require.Zero(t, calls)
}

func TestVerifyFoldsProbeOutcomeToBoolean(t *testing.T) {
	status := http.StatusOK
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/userinfo", r.URL.Path)
		if status != http.StatusOK {
			writeJSON(t, w, status, map[string]any{"message": "token expired"})
			return
		}
		writeJSON(t, w, http.StatusOK, userinfoPayload("sub-1"))
	}))
	defer apiServer.Close()

	client := newTestClient(apiServer.URL, "http://auth.invalid", "token-one", "")
	require.True(t, client.Verify(context.Background()))

	status = http.StatusUnauthorized
	require.False(t, client.Verify(context.Background()))
}

func TestVerifyWithoutTokenSkipsNetwork(t *testing.T) {
	calls := 0
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer apiServer.Close()

	client := newTestClient(apiServer.URL, "http://auth.invalid", "", "")
	require.False(t, client.Verify(context.Background()))
	require.Zero(t, calls)
}
