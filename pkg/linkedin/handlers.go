package linkedin

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/pkg/errors"

	"github.com/novalink/novalink-backend/pkg/httpapi"
)

const maxUploadBytes = 100 << 20

// Handler exposes the LinkedIn client over HTTP.
type Handler struct {
	client *Client
	logger *log.Logger
}

func NewHandler(client *Client, logger *log.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

// Routes mounts the auth, profile and post endpoints. postMiddleware applies
// to the post subtree only (the stricter publish rate limit).
func (h *Handler) Routes(postMiddleware ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Route("/auth", func(r chi.Router) {
		r.Get("/url", h.authorizationURL)
		r.Post("/callback", h.callback)
		r.Post("/refresh", h.refresh)
		r.Get("/verify", h.verify)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.profile)
		r.Get("/organizations", h.organizations)
		r.Get("/organizations/{organizationId}/validate", h.validateOrganization)
	})

	r.Route("/post", func(r chi.Router) {
		r.Use(postMiddleware...)
		r.Post("/text", h.createTextPost)
		r.Post("/image", h.createImagePost)
		r.Post("/image/upload", h.createImagePostFromBinary)
		r.Post("/video/upload", h.createVideoPostFromBinary)
		r.Post("/article", h.createArticlePost)
	})

	return r
}

// fail maps client errors onto the envelope: validation failures are caller
// errors, missing credentials are authentication errors, everything else
// keeps the platform's status.
func (h *Handler) fail(w http.ResponseWriter, message string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		httpapi.Fail(w, http.StatusBadRequest, message, validationErr.Message)
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrNoRefreshToken):
		httpapi.Fail(w, http.StatusUnauthorized, message, err.Error())
	default:
		httpapi.FailFromErr(w, message, err)
	}
}

func (h *Handler) authorizationURL(w http.ResponseWriter, r *http.Request) {
	redirectURI := r.URL.Query().Get("redirectUri")
	state := r.URL.Query().Get("state")
	scope := r.URL.Query().Get("scope")

	if redirectURI == "" || state == "" {
		httpapi.Fail(w, http.StatusBadRequest, "Missing required parameters: redirectUri and state", "")
		return
	}

	authURL, err := h.client.AuthorizationURL(redirectURI, state, scope)
	if err != nil {
		httpapi.Fail(w, http.StatusInternalServerError, "Failed to generate authorization URL", err.Error())
		return
	}

	httpapi.OK(w, "Authorization URL generated successfully", map[string]string{"authUrl": authURL})
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirectUri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.RedirectURI == "" {
		httpapi.Fail(w, http.StatusBadRequest, "Missing required parameters: code and redirectUri", "")
		return
	}

	tokenData, err := h.client.ExchangeCode(r.Context(), req.Code, req.RedirectURI)
	if err != nil {
		h.fail(w, "Failed to obtain access token", err)
		return
	}

	httpapi.OK(w, "Access token obtained successfully", tokenData)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	tokenData, err := h.client.Refresh(r.Context())
	if err != nil {
		h.fail(w, "Failed to refresh access token", err)
		return
	}
	httpapi.OK(w, "Access token refreshed successfully", tokenData)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	if h.client.Verify(r.Context()) {
		httpapi.OK(w, "Access token is valid", map[string]bool{"valid": true})
		return
	}
	httpapi.Fail(w, http.StatusUnauthorized, "Access token is invalid or expired", "")
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.client.Profile(r.Context())
	if err != nil {
		h.fail(w, "Failed to retrieve profile", err)
		return
	}
	httpapi.OK(w, "Profile retrieved successfully", profile)
}

func (h *Handler) organizations(w http.ResponseWriter, r *http.Request) {
	result := h.client.Organizations(r.Context())
	httpapi.OK(w, "Organizations retrieved successfully", result)
}

func (h *Handler) validateOrganization(w http.ResponseWriter, r *http.Request) {
	organizationID := chi.URLParam(r, "organizationId")
	if organizationID == "" {
		httpapi.Fail(w, http.StatusBadRequest, "Organization ID is required", "")
		return
	}

	if h.client.ValidateOrganizationAccess(r.Context(), organizationID) {
		httpapi.OK(w, "Organization access validated", map[string]any{
			"organizationId": organizationID,
			"hasAccess":      true,
		})
		return
	}
	httpapi.Fail(w, http.StatusForbidden, "No access to this organization or organization does not exist", "")
}

func (h *Handler) createTextPost(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	post, err := h.client.CreateTextPost(r.Context(), &req)
	if err != nil {
		h.fail(w, "Failed to create text post", err)
		return
	}
	httpapi.Created(w, "Text post created successfully", post)
}

func (h *Handler) createImagePost(w http.ResponseWriter, r *http.Request) {
	var req ImagePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	post, err := h.client.CreateImagePost(r.Context(), &req)
	if err != nil {
		h.fail(w, "Failed to create image post", err)
		return
	}
	httpapi.Created(w, "Image post created successfully", post)
}

func (h *Handler) createImagePostFromBinary(w http.ResponseWriter, r *http.Request) {
	data, fields, ok := h.readUpload(w, r, "image")
	if !ok {
		return
	}

	req := MediaPostRequest{
		PostRequest: PostRequest{
			Text:           fields.Get("text"),
			Visibility:     fields.Get("visibility"),
			OrganizationID: fields.Get("organizationId"),
		},
		MediaDescription: fields.Get("mediaDescription"),
	}

	post, err := h.client.CreateImagePostFromBinary(r.Context(), &req, data)
	if err != nil {
		h.fail(w, "Failed to create image post with binary", err)
		return
	}
	httpapi.Created(w, "Image post with binary created successfully", post)
}

func (h *Handler) createVideoPostFromBinary(w http.ResponseWriter, r *http.Request) {
	data, fields, ok := h.readUpload(w, r, "video")
	if !ok {
		return
	}

	req := VideoPostRequest{
		PostRequest: PostRequest{
			Text:           fields.Get("text"),
			Visibility:     fields.Get("visibility"),
			OrganizationID: fields.Get("organizationId"),
		},
		VideoDescription: fields.Get("videoDescription"),
	}

	post, err := h.client.CreateVideoPostFromBinary(r.Context(), &req, data)
	if err != nil {
		h.fail(w, "Failed to create video post with binary", err)
		return
	}
	httpapi.Created(w, "Video post with binary created successfully", post)
}

func (h *Handler) createArticlePost(w http.ResponseWriter, r *http.Request) {
	var req ArticlePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	post, err := h.client.CreateArticlePost(r.Context(), &req)
	if err != nil {
		h.fail(w, "Failed to create article post", err)
		return
	}
	httpapi.Created(w, "Article post created successfully", post)
}

// readUpload pulls the media file and form fields out of a multipart request.
// Reports its own errors; the boolean tells the caller whether to proceed.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, field string) ([]byte, url.Values, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid multipart request", err.Error())
		return nil, nil, false
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "No "+field+" file provided", "")
		return nil, nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Error("failed to close uploaded file", "error", closeErr)
		}
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Failed to read uploaded file", err.Error())
		return nil, nil, false
	}

	return data, url.Values(r.MultipartForm.Value), true
}
