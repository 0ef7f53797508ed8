package x

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/charmbracelet/log"
	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/google/uuid"

	"github.com/novalink/novalink-backend/pkg/config"
	"github.com/novalink/novalink-backend/pkg/platform"
)

const defaultScope = "tweet.read tweet.write users.read offline.access"

// TokenResponse mirrors the platform token endpoint payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// AuthorizationMaterial is everything the caller needs to complete the PKCE
// flow: the URL to open plus the verifier and state to send back.
type AuthorizationMaterial struct {
	URL          string `json:"url"`
	CodeVerifier string `json:"code_verifier"`
	State        string `json:"state"`
}

type basicAuthorizer struct {
	username string
	password string
}

func (a basicAuthorizer) Add(req *http.Request) {
	req.SetBasicAuth(a.username, a.password)
}

type bearerAuthorize struct {
	token string
}

func (a bearerAuthorize) Add(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.token))
}

// Client posts to the microblogging platform on behalf of a single
// authenticated user. Tokens are replaced wholesale under the lock.
type Client struct {
	cfg    *config.Config
	logger *log.Logger
	token  *platform.Client

	mu     sync.Mutex
	tokens *TokenResponse
}

func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	var authorizer platform.Authorizer
	if cfg.XClientSecret != "" {
		authorizer = basicAuthorizer{username: cfg.XClientID, password: cfg.XClientSecret}
	}
	return &Client{
		cfg:    cfg,
		logger: logger,
		token:  platform.NewClient(cfg.XTokenURL, authorizer, logger),
	}
}

// generatePKCEPair generates a PKCE code verifier and its S256 challenge.
func generatePKCEPair() (string, string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	codeVerifier := base64.RawURLEncoding.EncodeToString(b)

	h := sha256.New()
	h.Write([]byte(codeVerifier))
	challenge := base64.RawURLEncoding.EncodeToString(h.Sum(nil))

	return codeVerifier, challenge, nil
}

// AuthorizationURL builds the PKCE authorization URL. The verifier and state
// are handed to the caller rather than stored; they come back with the code.
func (c *Client) AuthorizationURL() (*AuthorizationMaterial, error) {
	if c.cfg.XClientID == "" || c.cfg.XRedirectURI == "" {
		return nil, fmt.Errorf("X_CLIENT_ID or REDIRECT_URI is not configured")
	}

	codeVerifier, codeChallenge, err := generatePKCEPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PKCE pair: %w", err)
	}
	state := uuid.NewString()

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.XClientID)
	q.Set("redirect_uri", c.cfg.XRedirectURI)
	q.Set("scope", defaultScope)
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "S256")

	return &AuthorizationMaterial{
		URL:          fmt.Sprintf("%s?%s", c.cfg.XAuthURL, q.Encode()),
		CodeVerifier: codeVerifier,
		State:        state,
	}, nil
}

// Exchange trades the authorization code plus verifier for a token pair and
// stores it for subsequent posts.
func (c *Client) Exchange(ctx context.Context, code, codeVerifier, redirectURI string) (*TokenResponse, error) {
	if redirectURI == "" {
		redirectURI = c.cfg.XRedirectURI
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("code_verifier", codeVerifier)
	form.Set("client_id", c.cfg.XClientID)

	var tokenResp TokenResponse
	if err := c.token.Form(ctx, "", form, &tokenResp); err != nil {
		c.logger.Error("failed to exchange authorization code", "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.tokens = &tokenResp
	c.mu.Unlock()

	c.logger.Info("access token obtained", "expires_in", tokenResp.ExpiresIn)
	return &tokenResp, nil
}

func (c *Client) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken
}

// PostTweet publishes a tweet with the stored access token.
func (c *Client) PostTweet(ctx context.Context, text string) (*twitter.CreateTweetResponse, error) {
	accessToken := c.accessToken()
	if accessToken == "" {
		return nil, fmt.Errorf("no access token, authenticate first")
	}

	client := &twitter.Client{
		Authorizer: bearerAuthorize{token: accessToken},
		Client:     http.DefaultClient,
		Host:       c.cfg.XAPIHost,
	}

	resp, err := client.CreateTweet(ctx, twitter.CreateTweetRequest{Text: text})
	if err != nil {
		c.logger.Error("failed to post tweet", "error", err)
		return nil, err
	}

	c.logger.Info("tweet posted", "tweet_id", resp.Tweet.ID)
	return resp, nil
}
