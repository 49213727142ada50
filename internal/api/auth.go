package api

import (
	"context"

	"hrms-engine/internal/domain"
)

type SignUpRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthPayload is the data field of signup/signin responses.
type AuthPayload struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*AuthPayload, error) {
	var out AuthPayload
	if err := c.post(ctx, "/api/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*AuthPayload, error) {
	var out AuthPayload
	if err := c.post(ctx, "/api/auth/signin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyToken asks the server whether the stored token still stands and
// returns the user it belongs to.
func (c *Client) VerifyToken(ctx context.Context) (*domain.User, error) {
	var out struct {
		User domain.User `json:"user"`
	}
	if err := c.get(ctx, "/api/auth/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/auth/logout", nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Interviewers(ctx context.Context) ([]domain.Interviewer, error) {
	var out []domain.Interviewer
	if err := c.get(ctx, "/api/auth/interviewers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
