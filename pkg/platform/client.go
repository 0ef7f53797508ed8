package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Authorizer attaches credentials to an outbound request. A nil Authorizer
// leaves the request unauthenticated (token endpoints authenticate with form
// fields instead of headers).
type Authorizer interface {
	Add(req *http.Request)
}

// BearerAuthorizer adds a static bearer token.
type BearerAuthorizer struct {
	Token string
}

func (a BearerAuthorizer) Add(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// Client is a REST client bound to one platform: a base URL, default headers
// and an Authorizer. Every response passes through the same normalization so
// callers only ever see a decoded payload or a *Error.
type Client struct {
	baseURL    string
	authorizer Authorizer
	headers    map[string]string
	httpClient *http.Client
	logger     *log.Logger
}

type Option func(*Client)

// WithHeader sets a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(baseURL string, authorizer Authorizer, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authorizer: authorizer,
		headers:    map[string]string{},
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JSON sends a JSON request to path under the base URL and decodes a JSON
// response into out (out may be nil). payload may be nil for bodyless methods.
func (c *Client) JSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return &Error{Message: "failed to encode request payload: " + err.Error()}
		}
		body = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, c.baseURL+path, body, "application/json", out)
}

// Form sends a form-encoded POST to path under the base URL.
func (c *Client) Form(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", out)
}

// PutRaw performs a raw PUT to an absolute URL outside the base URL. Upload
// slots are issued by the platform as one-time absolute URLs.
func (c *Client) PutRaw(ctx context.Context, rawURL string, data []byte, contentType string) error {
	return c.do(ctx, http.MethodPut, rawURL, bytes.NewReader(data), contentType, nil)
}

// Raw sends a pre-built body (e.g. multipart) to path under the base URL.
func (c *Client) Raw(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	return c.do(ctx, method, c.baseURL+path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, fullURL string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return &Error{Message: "failed to create request: " + err.Error()}
	}

	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if c.authorizer != nil {
		c.authorizer.Add(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("platform request failed", "method", method, "url", fullURL, "error", err)
		return &Error{Message: err.Error()}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Error("failed to close response body", "error", closeErr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: "failed to read response body: " + err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		platformErr := newError(resp.StatusCode, resp.Status, respBody)
		c.logger.Error("platform returned error", "method", method, "url", fullURL, "status", resp.StatusCode, "message", platformErr.Message)
		return platformErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "failed to parse response: " + err.Error(), RawBody: respBody}
	}
	return nil
}
