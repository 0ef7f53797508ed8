package x

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"

	"github.com/novalink/novalink-backend/pkg/httpapi"
)

const samplePostText = "The most underrated skill in tech isn't coding faster, it's learning faster.\n" +
	"Frameworks change, languages evolve, tools come and go, but the ability to adapt compounds forever.\n\n" +
	"Build systems for learning, not just stacks for shipping."

type Handler struct {
	client *Client
	logger *log.Logger
}

func NewHandler(client *Client, logger *log.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.status)
	r.Get("/auth/url", h.authorizationURL)
	r.Get("/callback", h.callbackPage)
	r.Post("/auth/callback", h.callback)
	r.Post("/generate", h.generate)
	r.Post("/post", h.post)
	r.Post("/test-post", h.testPost)

	return r
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	httpapi.OK(w, "X poster backend running", nil)
}

func (h *Handler) authorizationURL(w http.ResponseWriter, r *http.Request) {
	material, err := h.client.AuthorizationURL()
	if err != nil {
		httpapi.Fail(w, http.StatusInternalServerError, "Failed to generate authorization URL", err.Error())
		return
	}
	httpapi.OK(w, "Authorization URL generated successfully", material)
}

// callbackPage is the browser landing page the platform redirects to. It only
// displays the authorization code so the caller can finish the exchange via
// POST /auth/callback.
func (h *Handler) callbackPage(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	authError := r.URL.Query().Get("error")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if authError != "" {
		fmt.Fprintf(w, "<h2>Error during authorization</h2><p>%s</p>", authError)
		return
	}
	if code == "" {
		fmt.Fprint(w, "<h2>No code received</h2><p>Authorization may have failed.</p>")
		return
	}
	fmt.Fprintf(w, "<h2>Authorization Successful!</h2>"+
		"<p><strong>Your authorization code:</strong></p>"+
		"<pre style=\"background:#f4f4f4;padding:10px;word-wrap:break-word\">%s</pre>"+
		"<p><strong>State:</strong> %s</p>"+
		"<p>Use the code above in a POST request to <code>/auth/callback</code></p>", code, state)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code         string `json:"code"`
		CodeVerifier string `json:"code_verifier"`
		RedirectURI  string `json:"redirect_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" || req.CodeVerifier == "" {
		httpapi.Fail(w, http.StatusBadRequest, "Missing code or code_verifier", "")
		return
	}

	tokens, err := h.client.Exchange(r.Context(), req.Code, req.CodeVerifier, req.RedirectURI)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to exchange authorization code", err)
		return
	}
	httpapi.OK(w, "Access token obtained successfully", tokens)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic  string `json:"topic"`
		Tone   string `json:"tone"`
		Length string `json:"length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Fail(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	httpapi.OK(w, "Post generated successfully", map[string]string{
		"post": GeneratePost(req.Topic, req.Tone, req.Length),
	})
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		httpapi.Fail(w, http.StatusBadRequest, "Missing text", "")
		return
	}

	resp, err := h.client.PostTweet(r.Context(), req.Text)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to post", err)
		return
	}
	httpapi.OK(w, "Posted successfully", resp.Tweet)
}

func (h *Handler) testPost(w http.ResponseWriter, r *http.Request) {
	resp, err := h.client.PostTweet(r.Context(), samplePostText)
	if err != nil {
		httpapi.FailFromErr(w, "Failed to post", err)
		return
	}
	httpapi.OK(w, "Posted successfully", resp.Tweet)
}
