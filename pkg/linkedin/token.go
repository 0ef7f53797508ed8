package linkedin

import (
	"context"
	"fmt"
	"net/url"
)

const defaultScope = "openid profile email w_member_social w_organization_social"

// AuthorizationURL builds the OAuth authorization URL. Pure construction, no
// I/O; the only failure is missing static configuration.
func (c *Client) AuthorizationURL(redirectURI, state, scope string) (string, error) {
	if c.cfg.LinkedInClientID == "" {
		return "", fmt.Errorf("LINKEDIN_CLIENT_ID is not configured")
	}
	if scope == "" {
		scope = defaultScope
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.LinkedInClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("state", state)
	q.Set("scope", scope)

	return fmt.Sprintf("%s/authorization?%s", c.cfg.LinkedInAuthURL, q.Encode()), nil
}

// ExchangeCode trades an authorization code for a token pair and replaces the
// session credentials. No partial credential state is ever visible: the
// session is only touched after a successful exchange.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", c.cfg.LinkedInClientID)
	form.Set("client_secret", c.cfg.LinkedInClientSecret)

	var tokenResp TokenResponse
	if err := c.auth.Form(ctx, "/accessToken", form, &tokenResp); err != nil {
		c.logger.Error("failed to exchange authorization code", "error", err)
		return nil, err
	}

	c.session.Replace(&tokenResp)
	c.invalidateIdentity()

	c.logger.Info("access token obtained", "expires_in", tokenResp.ExpiresIn)
	return &tokenResp, nil
}

// Refresh exchanges the stored refresh token for a fresh pair. Fails as a
// precondition when no refresh token is held.
func (c *Client) Refresh(ctx context.Context) (*TokenResponse, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	form.Set("client_id", c.cfg.LinkedInClientID)
	form.Set("client_secret", c.cfg.LinkedInClientSecret)

	var tokenResp TokenResponse
	if err := c.auth.Form(ctx, "/accessToken", form, &tokenResp); err != nil {
		c.logger.Error("failed to refresh access token", "error", err)
		return nil, err
	}

	c.session.Replace(&tokenResp)
	c.invalidateIdentity()

	c.logger.Info("access token refreshed", "expires_in", tokenResp.ExpiresIn)
	return &tokenResp, nil
}

// Verify probes the profile endpoint with the current token. A failed probe
// is data, not an error: the result is always a plain boolean.
func (c *Client) Verify(ctx context.Context) bool {
	if err := c.requireAuth(); err != nil {
		return false
	}
	_, err := c.Profile(ctx)
	return err == nil
}
