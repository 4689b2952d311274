package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nhle/munchie/internal/model"
)

// ListAwards fetches the server-side award descriptions.
func (c *Client) ListAwards(ctx context.Context) ([]model.Award, error) {
	var awards []model.Award
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/awards",
		result: &awards,
	})
	if err != nil {
		return nil, fmt.Errorf("listing awards: %w", err)
	}
	return awards, nil
}
