package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nhle/munchie/internal/model"
)

// ListReviewsForRecipe fetches the reviews of one recipe.
func (c *Client) ListReviewsForRecipe(ctx context.Context, recipeID int) ([]model.Review, error) {
	var reviews []model.Review
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/reviews/recipe/%d", recipeID),
		result: &reviews,
	})
	if err != nil {
		return nil, fmt.Errorf("listing reviews for recipe %d: %w", recipeID, err)
	}
	return reviews, nil
}

// CreateReview posts a review on behalf of the token's owner.
func (c *Client) CreateReview(
	ctx context.Context,
	token string,
	in ReviewInput,
) (*model.Review, error) {
	if token == "" {
		return nil, fmt.Errorf("creating review: %w", ErrAuthMissing)
	}
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}

	var review model.Review
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/reviews",
		token:  token,
		body:   in,
		result: &review,
	})
	if err != nil {
		return nil, fmt.Errorf("creating review for recipe %d: %w", in.RecipeID, err)
	}
	return &review, nil
}

// UpdateReview replaces review id with in.
func (c *Client) UpdateReview(
	ctx context.Context,
	token string,
	id int,
	in ReviewInput,
) (*model.Review, error) {
	if token == "" {
		return nil, fmt.Errorf("updating review: %w", ErrAuthMissing)
	}
	if id <= 0 {
		return nil, fmt.Errorf("updating review %d: %w", id, ErrInvalidID)
	}
	in.ID = id
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("updating review %d: %w", id, err)
	}

	var review model.Review
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/reviews/%d", id),
		token:  token,
		body:   in,
		result: &review,
	})
	if err != nil {
		return nil, fmt.Errorf("updating review %d: %w", id, err)
	}
	return &review, nil
}

// ListReviewsByUser fetches the reviews written by one user.
func (c *Client) ListReviewsByUser(ctx context.Context, userID int) ([]model.Review, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("listing reviews of user %d: %w", userID, ErrInvalidUserID)
	}

	reviews := []model.Review{}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/reviews/user/%d", userID),
		result: &reviews,
	})
	if err != nil {
		return nil, fmt.Errorf("listing reviews of user %d: %w", userID, err)
	}
	return reviews, nil
}
