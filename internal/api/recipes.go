package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/nhle/munchie/internal/model"
)

// ListRecipes fetches every published recipe.
func (c *Client) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/recipes",
		result: &recipes,
	})
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes runs a keyword search. An empty keyword matches everything.
func (c *Client) SearchRecipes(ctx context.Context, keyword string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/recipes/search?keyword=" + url.QueryEscape(keyword),
		result: &recipes,
	})
	if err != nil {
		return nil, fmt.Errorf("searching recipes for %q: %w", keyword, err)
	}
	return recipes, nil
}

// CreateRecipe publishes a recipe on behalf of the token's owner.
func (c *Client) CreateRecipe(
	ctx context.Context,
	token string,
	in RecipeInput,
) (*model.Recipe, error) {
	if token == "" {
		return nil, fmt.Errorf("creating recipe: %w", ErrAuthMissing)
	}
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	var recipe model.Recipe
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/recipes",
		token:  token,
		body:   in,
		result: &recipe,
	})
	if err != nil {
		return nil, fmt.Errorf("creating recipe %q: %w", in.Title, err)
	}
	return &recipe, nil
}

// UpdateRecipe replaces recipe id with in. The backend answers with the
// stored recipe.
func (c *Client) UpdateRecipe(
	ctx context.Context,
	token string,
	id int,
	in RecipeInput,
) (*model.Recipe, error) {
	if token == "" {
		return nil, fmt.Errorf("updating recipe: %w", ErrAuthMissing)
	}
	if id <= 0 {
		return nil, fmt.Errorf("updating recipe %d: %w", id, ErrInvalidID)
	}
	in.ID = id
	if err := validatePayload(in); err != nil {
		return nil, fmt.Errorf("updating recipe %d: %w", id, err)
	}

	var recipe model.Recipe
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/recipes/%d", id),
		token:  token,
		body:   in,
		result: &recipe,
	})
	if err != nil {
		return nil, fmt.Errorf("updating recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// ListRecipesByUser fetches the recipes published by one user.
func (c *Client) ListRecipesByUser(ctx context.Context, userID int) ([]model.Recipe, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("listing recipes of user %d: %w", userID, ErrInvalidUserID)
	}

	recipes := []model.Recipe{}
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/recipes/user/%d", userID),
		result: &recipes,
	})
	if err != nil {
		return nil, fmt.Errorf("listing recipes of user %d: %w", userID, err)
	}
	return recipes, nil
}
