package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
)

type fakeLoader struct {
	recipes   []model.Recipe
	reviews   []model.Review
	err       error
	requested []int
}

func (f *fakeLoader) ListRecipesByUser(_ context.Context, userID int) ([]model.Recipe, error) {
	f.requested = append(f.requested, userID)
	return f.recipes, f.err
}

func (f *fakeLoader) ListReviewsByUser(_ context.Context, userID int) ([]model.Review, error) {
	return f.reviews, nil
}

func TestSetUserLoadsWork(t *testing.T) {
	loader := &fakeLoader{
		recipes: []model.Recipe{{ID: 4, Title: "Gumbo", Rating: 4.5, TimeToCook: "2h"}},
		reviews: []model.Review{
			{ID: 9, RecipeID: 4, Rating: 5, Description: "my best yet"},
			{ID: 10, RecipeID: 11, Rating: 3, Description: "needs salt"},
		},
	}
	m := New(loader, 100, 40)

	cmd := m.SetUser(model.User{ID: 7, Username: "chef", Name: "Chef Ana", Level: 3, Experience: 120, AwardIDs: []int{1, 2}})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading recipes and reviews")

	m, _ = m.Update(cmd())
	view := m.View()
	assert.Equal(t, []int{7}, loader.requested)
	assert.Contains(t, view, "Chef Ana")
	assert.Contains(t, view, "@chef")
	assert.Contains(t, view, "My Recipes (1)")
	assert.Contains(t, view, "Gumbo")
	assert.Contains(t, view, "My Reviews (2)")
	assert.Contains(t, view, "recipe #11")
	assert.Contains(t, view, "needs salt")
	assert.Contains(t, view, "2 of 16")
}

func TestLoadErrorRendered(t *testing.T) {
	m := New(&fakeLoader{err: errors.New("boom")}, 100, 40)
	cmd := m.SetUser(model.User{ID: 7, Username: "chef"})

	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "boom")
}

func TestResultForOtherUserIgnored(t *testing.T) {
	m := New(&fakeLoader{}, 100, 40)
	m.SetUser(model.User{ID: 7, Username: "chef"})

	m, _ = m.Update(LoadedMsg{UserID: 8, Recipes: []model.Recipe{{Title: "Not mine"}}})
	assert.NotContains(t, m.View(), "Not mine")
	assert.Contains(t, m.View(), "Loading")
}

func TestEmptyAndClearedProfile(t *testing.T) {
	m := New(&fakeLoader{}, 100, 40)
	assert.Contains(t, m.View(), "Sign in")
	assert.Nil(t, m.Load())

	cmd := m.SetUser(model.User{ID: 7, Username: "chef"})
	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "No recipes yet")
	assert.Contains(t, m.View(), "No reviews yet")

	m.Clear()
	assert.Contains(t, m.View(), "Sign in")
}
