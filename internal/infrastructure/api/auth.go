package api

import (
	"context"
	"net/http"

	"hostdeck/internal/core/ports"
)

// SignIn posts to /auth/signin. The backend accepts either a username or
// an email in the username field.
func (c *Client) SignIn(ctx context.Context, usernameOrEmail, password string) (*ports.SignInResult, error) {
	body := map[string]string{
		"username": usernameOrEmail,
		"password": password,
	}
	var result ports.SignInResult
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SignUp posts to /auth/signup. The role field is omitted when empty so the
// backend applies its own default tier.
func (c *Client) SignUp(ctx context.Context, username, email, password, role string) error {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}
	if role != "" {
		body["role"] = role
	}
	return c.do(ctx, http.MethodPost, "/auth/signup", body, nil)
}
