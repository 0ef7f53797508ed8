package linkedin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/novalink/novalink-backend/pkg/platform"
)

type userInfo struct {
	Sub        string `json:"sub"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Email      string `json:"email"`
	Picture    string `json:"picture"`
}

// Profile fetches the authenticated member's profile from the userinfo
// endpoint.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	if err := c.requireAuth(); err != nil {
		return nil, err
	}

	var info userInfo
	if err := c.api.JSON(ctx, http.MethodGet, "/v2/userinfo", nil, &info); err != nil {
		return nil, errors.Wrap(err, "failed to get user profile")
	}

	return &Profile{
		ID:             info.Sub,
		FirstName:      info.GivenName,
		LastName:       info.FamilyName,
		Email:          info.Email,
		ProfilePicture: info.Picture,
	}, nil
}

// ResolveAuthor returns the author URN for a publish request. An explicit
// organization ID wins without any network call; otherwise the member's
// person URN is resolved from the userinfo endpoint, cached for identityTTL
// and dropped whenever tokens are replaced.
func (c *Client) ResolveAuthor(ctx context.Context, organizationID string) (string, error) {
	if organizationID != "" {
		return "urn:li:organization:" + organizationID, nil
	}

	c.idMu.Lock()
	if c.personURN != "" && time.Since(c.personFetched) < identityTTL {
		urn := c.personURN
		c.idMu.Unlock()
		return urn, nil
	}
	c.idMu.Unlock()

	if err := c.requireAuth(); err != nil {
		return "", err
	}

	var info userInfo
	if err := c.api.JSON(ctx, http.MethodGet, "/v2/userinfo", nil, &info); err != nil {
		return "", errors.Wrap(err, "failed to resolve member identity")
	}
	urn := "urn:li:person:" + info.Sub

	c.idMu.Lock()
	c.personURN = urn
	c.personFetched = time.Now()
	c.idMu.Unlock()

	return urn, nil
}

type organizationACL struct {
	Organization           string `json:"organization"`
	OrganizationName       string `json:"organizationName"`
	OrganizationVanityName string `json:"organizationVanityName"`
}

// Organizations lists the organizations the member administers. The call
// itself never fails: on any platform error an empty list is returned with
// the failure detail in the debug payload.
func (c *Client) Organizations(ctx context.Context) *OrganizationList {
	var resp struct {
		Elements []organizationACL `json:"elements"`
	}
	err := c.api.JSON(ctx, http.MethodGet, "/v2/organizationAcls?q=roleAssignee", nil, &resp)
	if err != nil {
		c.logger.Warn("organizations listing failed", "error", err)
		debug := OrganizationDebug{
			ErrorMessage: err.Error(),
			Message:      "Failed to fetch organizations from LinkedIn API",
			PossibleReasons: []string{
				"Access token does not have w_organization_social scope",
				"Access token is expired or invalid",
				"You are not an admin of any LinkedIn company pages",
			},
		}
		var platformErr *platform.Error
		if errors.As(err, &platformErr) {
			debug.HTTPStatus = platformErr.Status
		}
		return &OrganizationList{Organizations: []Organization{}, Debug: debug}
	}

	organizations := lo.Map(resp.Elements, func(acl organizationACL, _ int) Organization {
		id := strings.TrimPrefix(acl.Organization, "urn:li:organization:")
		name := acl.OrganizationName
		if name == "" {
			name = fmt.Sprintf("Organization %s", acl.Organization)
		}
		return Organization{
			ID:            id,
			Name:          name,
			VanityName:    acl.OrganizationVanityName,
			LocalizedName: acl.OrganizationName,
		}
	})

	message := fmt.Sprintf("Found %d organization(s) where you have admin access.", len(organizations))
	if len(organizations) == 0 {
		message = "No organizations found. You are not an admin of any LinkedIn company pages, or the access token lacks the w_organization_social scope."
	}

	c.logger.Info("organizations retrieved", "count", len(organizations))
	return &OrganizationList{
		Organizations: organizations,
		Debug: OrganizationDebug{
			APICallSuccessful: true,
			ElementsCount:     len(resp.Elements),
			Message:           message,
		},
	}
}

// ValidateOrganizationAccess probes the organization record. Forbidden, not
// found and transport failures all fold into false; the distinction is
// intentionally not surfaced.
func (c *Client) ValidateOrganizationAccess(ctx context.Context, organizationID string) bool {
	var org struct {
		LocalizedName string `json:"localizedName"`
	}
	err := c.api.JSON(ctx, http.MethodGet, "/v2/organizations/"+organizationID, nil, &org)
	if err != nil {
		c.logger.Warn("organization access validation failed", "organization_id", organizationID, "error", err)
		return false
	}
	c.logger.Info("organization access validated", "organization_id", organizationID, "name", org.LocalizedName)
	return true
}
