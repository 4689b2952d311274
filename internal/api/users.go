package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nhle/munchie/internal/model"
)

// GetUserByUsername fetches a user profile. The token is optional.
func (c *Client) GetUserByUsername(
	ctx context.Context,
	token string,
	username string,
) (*model.User, error) {
	if username == "" {
		return nil, fmt.Errorf("getting user: empty username")
	}

	var user model.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/users/username/" + url.PathEscape(username),
		token:  token,
		result: &user,
	})
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}

	return &user, nil
}

// ListUsers fetches every user, used by the leaderboard.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/users",
		result: &users,
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
