package linkedin

import (
	"net/http"
	"sync"
	"time"
)

// Session holds the credential pair for one authenticated LinkedIn session.
// Tokens are replaced wholesale under the lock: a reader sees either the old
// pair or the new pair, never a half-updated one. When a token response omits
// a refresh token the previous one is retained.
type Session struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func NewSession(accessToken, refreshToken string) *Session {
	return &Session{
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

func (s *Session) Replace(resp *TokenResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		s.refreshToken = resp.RefreshToken
	}
	if resp.ExpiresIn > 0 {
		s.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
}

func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// Add implements platform.Authorizer with the session's current access token.
func (s *Session) Add(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+s.AccessToken())
}
