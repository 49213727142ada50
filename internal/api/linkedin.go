package api

import (
	"context"
	"net/http"

	"hrms-engine/internal/domain"
)

// LinkedInAuthURL asks the server for the provider authorization URL. The
// caller performs the actual navigation; nothing changes locally until the
// OAuth callback lands.
func (c *Client) LinkedInAuthURL(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/auth/linkedin/auth", nil, nil)
	if err != nil {
		return "", err
	}
	if env.AuthURL == "" {
		return "", &Error{Message: env.Message}
	}
	return env.AuthURL, nil
}

func (c *Client) LinkedInStatus(ctx context.Context) (*domain.LinkedInStatus, error) {
	var out domain.LinkedInStatus
	if err := c.get(ctx, "/api/auth/linkedin/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DisconnectLinkedIn(ctx context.Context) error {
	return c.del(ctx, "/api/auth/linkedin/disconnect", nil)
}
