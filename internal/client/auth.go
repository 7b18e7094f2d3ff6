package client

import (
	"context"
	"net/http"
	"net/url"

	"pub-pocket/internal/model"
)

// Credentials are the name/password pair the login and register endpoints
// take as query parameters.
type Credentials struct {
	Name     string `validate:"required"`
	Password string `validate:"required"`
}

// LoginResult is what the backend hands back on a successful login,
// register or anonymous call.
type LoginResult struct {
	Token    string         `json:"token"`
	UserType model.UserRole `json:"user_type"`
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return c.authenticate(ctx, "/login", creds)
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return c.authenticate(ctx, "/register", creds)
}

// Anonymous starts a guest session without credentials.
func (c *Client) Anonymous(ctx context.Context) (*LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/anonymous", url.Values{}, nil, &result, ""); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) authenticate(ctx context.Context, path string, creds Credentials) (*LoginResult, error) {
	query := url.Values{}
	query.Set("name", creds.Name)
	query.Set("password", creds.Password)

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, path, query, nil, &result, ""); err != nil {
		return nil, err
	}
	return &result, nil
}
