package linkedin

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/novalink/novalink-backend/pkg/config"
	"github.com/novalink/novalink-backend/pkg/platform"
)

// How long a resolved person URN stays valid before the next publish triggers
// a fresh userinfo lookup. The cache is also dropped whenever the session's
// tokens are replaced.
const identityTTL = 5 * time.Minute

var (
	ErrNotAuthenticated = errors.New("no access token held, complete the OAuth flow first")
	ErrNoRefreshToken   = errors.New("no refresh token held")
)

// Client talks to the LinkedIn REST API on behalf of a single session.
type Client struct {
	cfg     *config.Config
	logger  *log.Logger
	session *Session

	// api carries the session's bearer token, auth is the unauthenticated
	// token endpoint client.
	api  *platform.Client
	auth *platform.Client

	idMu          sync.Mutex
	personURN     string
	personFetched time.Time
}

func NewClient(cfg *config.Config, logger *log.Logger) *Client {
	session := NewSession(cfg.LinkedInAccessToken, cfg.LinkedInRefreshToken)
	return &Client{
		cfg:     cfg,
		logger:  logger,
		session: session,
		api: platform.NewClient(cfg.LinkedInAPIBaseURL, session, logger,
			platform.WithHeader("X-Restli-Protocol-Version", "2.0.0")),
		auth: platform.NewClient(cfg.LinkedInAuthURL, nil, logger),
	}
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) requireAuth() error {
	if c.session.AccessToken() == "" {
		return ErrNotAuthenticated
	}
	return nil
}

// invalidateIdentity drops the cached person URN. Called on every token
// replacement so a new session never publishes under a stale identity.
func (c *Client) invalidateIdentity() {
	c.idMu.Lock()
	defer c.idMu.Unlock()
	c.personURN = ""
	c.personFetched = time.Time{}
}
