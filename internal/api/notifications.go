package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nhle/munchie/internal/model"
)

// ListNotifications fetches the unseen notifications for a user via
// GET /api/notifications/user/{id}. The server order is preserved.
// The call is never retried.
func (c *Client) ListNotifications(
	ctx context.Context,
	userID int,
) ([]model.Notification, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("listing notifications for %d: %w", userID, ErrInvalidUserID)
	}

	var notifications []model.Notification
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/api/notifications/user/%d", userID),
		result:  &notifications,
		noRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing notifications for %d: %w", userID, err)
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}
	return notifications, nil
}

// MarkNotificationShown replaces the notification resource with a copy
// whose notificationShown field is true, via PUT /api/notifications/{id}.
// The call is never retried.
func (c *Client) MarkNotificationShown(
	ctx context.Context,
	token string,
	n model.Notification,
) (*model.Notification, error) {
	if token == "" {
		return nil, fmt.Errorf("marking notification %d shown: %w", n.ID, ErrAuthMissing)
	}

	var updated model.Notification
	err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    fmt.Sprintf("/api/notifications/%d", n.ID),
		token:   token,
		body:    n.MarkedShown(),
		result:  &updated,
		noRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marking notification %d shown: %w", n.ID, err)
	}

	return &updated, nil
}
