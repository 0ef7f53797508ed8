package linkedin

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/novalink/novalink-backend/pkg/httpapi"
)

func newTestHandler(apiURL, authURL, accessToken string) *Handler {
	client := newTestClient(apiURL, authURL, accessToken, "")
	return NewHandler(client, createTestLogger())
}

func doRequest(t *testing.T, handler *Handler, req *http.Request) (*httptest.ResponseRecorder, httpapi.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	var envelope httpapi.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestAuthURLEndpointRequiresParameters(t *testing.T) {
	handler := newTestHandler("http://api.invalid", "http://auth.invalid", "")

	req := httptest.NewRequest(http.MethodGet, "/auth/url", nil)
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.False(t, envelope.Success)
}

func TestAuthURLEndpoint(t *testing.T) {
	handler := newTestHandler("http://api.invalid", "https://auth.example/oauth/v2", "")

	req := httptest.NewRequest(http.MethodGet, "/auth/url?redirectUri=https://app.example/cb&state=s1", nil)
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	authURL, ok := data["authUrl"].(string)
	require.True(t, ok)
	require.Contains(t, authURL, "https://auth.example/oauth/v2/authorization?")
	require.Contains(t, authURL, "state=s1")
}

func TestVerifyEndpointMapsToStatus(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, userinfoPayload("sub-1"))
	}))
	defer apiServer.Close()

	handler := newTestHandler(apiServer.URL, "http://auth.invalid", "token-one")
	rec, envelope := doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	handler = newTestHandler(apiServer.URL, "http://auth.invalid", "")
	rec, envelope = doRequest(t, handler, httptest.NewRequest(http.MethodGet, "/auth/verify", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, envelope.Success)
}

func TestRefreshEndpointWithoutTokenIs401(t *testing.T) {
	handler := newTestHandler("http://api.invalid", "http://auth.invalid", "token-one")

	rec, envelope := doRequest(t, handler, httptest.NewRequest(http.MethodPost, "/auth/refresh", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, envelope.Success)
}

func TestCreateTextPostEndpointValidationIs400(t *testing.T) {
	handler := newTestHandler("http://api.invalid", "http://auth.invalid", "token-one")

	req := httptest.NewRequest(http.MethodPost, "/post/text", strings.NewReader(`{}`))
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, envelope.Error, "missing required parameter: text")
}

func TestCreateTextPostEndpointResurfacesPlatformStatus(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]any{"message": "ACCESS_DENIED"})
	}))
	defer apiServer.Close()

	handler := newTestHandler(apiServer.URL, "http://auth.invalid", "token-one")

	req := httptest.NewRequest(http.MethodPost, "/post/text", strings.NewReader(`{"text":"hi","organizationId":"55"}`))
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, envelope.Error, "ACCESS_DENIED")
}

func TestCreateTextPostEndpoint(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/ugcPosts", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, map[string]any{"id": "urn:li:share:1"})
	}))
	defer apiServer.Close()

	handler := newTestHandler(apiServer.URL, "http://auth.invalid", "token-one")

	req := httptest.NewRequest(http.MethodPost, "/post/text", strings.NewReader(`{"text":"hi","organizationId":"55"}`))
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)
}

func TestImageUploadEndpointParsesMultipart(t *testing.T) {
	var apiServer *httptest.Server
	apiServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/assets":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"value": map[string]any{
					"asset": "urn:li:digitalmediaAsset:H1",
					"uploadMechanism": map[string]any{
						"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest": map[string]any{
							"uploadUrl": apiServer.URL + "/upload/slot-h",
						},
					},
				},
			})
		case "/upload/slot-h":
			w.WriteHeader(http.StatusCreated)
		case "/v2/ugcPosts":
			writeJSON(t, w, http.StatusCreated, map[string]any{"id": "urn:li:share:9"})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer apiServer.Close()

	handler := newTestHandler(apiServer.URL, "http://auth.invalid", "token-one")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("text", "uploaded via form"))
	require.NoError(t, writer.WriteField("organizationId", "55"))
	part, err := writer.CreateFormFile("image", "pic.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/post/image/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, envelope.Success)
}

func TestImageUploadEndpointRequiresFile(t *testing.T) {
	handler := newTestHandler("http://api.invalid", "http://auth.invalid", "token-one")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("text", "no file"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/post/image/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec, envelope := doRequest(t, handler, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, envelope.Message, "No image file provided")
}
