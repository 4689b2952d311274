package api

import (
	"context"
	"fmt"
	"net/http"
)

// Login exchanges username and password for an access token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validatePayload(req); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var resp LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   req,
		result: &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("logging in as %s: %w", req.Username, err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("logging in as %s: empty access token", req.Username)
	}

	return &resp, nil
}

// OAuthLogin exchanges a Google ID token for an access token. The backend
// also reports the username it resolved the identity to.
func (c *Client) OAuthLogin(ctx context.Context, idToken string) (*LoginResponse, error) {
	req := OAuthLoginRequest{Token: idToken}
	if err := validatePayload(req); err != nil {
		return nil, fmt.Errorf("oauth login: %w", err)
	}

	var resp LoginResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/oauth2/login",
		body:   req,
		result: &resp,
	})
	if err != nil {
		return nil, fmt.Errorf("oauth login: %w", err)
	}
	if resp.AccessToken == "" || resp.Username == "" {
		return nil, fmt.Errorf("oauth login: incomplete response")
	}

	return &resp, nil
}

// Register creates an account. The backend answers with plain text, which
// is ignored.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := validatePayload(req); err != nil {
		return fmt.Errorf("registering: %w", err)
	}

	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   req,
	})
	if err != nil {
		return fmt.Errorf("registering %s: %w", req.Username, err)
	}

	return nil
}
