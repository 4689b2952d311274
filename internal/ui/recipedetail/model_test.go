package recipedetail

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/model"
)

type fakeLoader struct {
	reviews []model.Review
	err     error
}

func (f fakeLoader) ListReviewsForRecipe(_ context.Context, _ int) ([]model.Review, error) {
	return f.reviews, f.err
}

func TestSetRecipeLoadsReviews(t *testing.T) {
	m := New(fakeLoader{reviews: []model.Review{{ID: 1, UserID: 3, RecipeID: 9, Rating: 4, Description: "lovely crust"}}},
		keys.DefaultKeyMap(), 80, 30)

	cmd := m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough", Username: "baker", Method: "knead"})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading reviews")

	m, _ = m.Update(cmd())
	view := m.View()
	assert.Contains(t, view, "Sourdough")
	assert.Contains(t, view, "Reviews (1)")
	assert.Contains(t, view, "lovely crust")
}

func TestReviewsForOtherRecipeIgnored(t *testing.T) {
	m := New(fakeLoader{}, keys.DefaultKeyMap(), 80, 30)
	m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough"})

	m, _ = m.Update(ReviewsLoadedMsg{RecipeID: 2, Reviews: []model.Review{{Description: "wrong"}}})
	assert.NotContains(t, m.View(), "wrong")
	assert.Contains(t, m.View(), "Loading reviews")
}

func TestReviewErrorRendered(t *testing.T) {
	m := New(fakeLoader{err: errors.New("boom")}, keys.DefaultKeyMap(), 80, 30)
	cmd := m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough"})

	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "boom")
}

func TestKeysEmitNavigation(t *testing.T) {
	m := New(fakeLoader{}, keys.DefaultKeyMap(), 80, 30)
	m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, BackMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	require.NotNil(t, cmd)
	msg, ok := cmd().(WriteReviewMsg)
	require.True(t, ok)
	assert.Equal(t, 9, msg.Recipe.ID)
}

func TestEmptyView(t *testing.T) {
	m := New(fakeLoader{}, keys.DefaultKeyMap(), 80, 30)
	assert.Contains(t, m.View(), "No recipe selected")
	assert.Nil(t, m.LoadReviews())
}

func TestEditKeys(t *testing.T) {
	reviews := []model.Review{
		{ID: 1, UserID: 3, RecipeID: 9, Rating: 4, Description: "lovely crust"},
		{ID: 2, UserID: 7, RecipeID: 9, Rating: 2, Description: "too sour"},
	}
	m := New(fakeLoader{reviews: reviews}, keys.DefaultKeyMap(), 80, 30)
	m.SetViewer(7)
	cmd := m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough", Username: "baker"})

	// Until the reviews arrive the viewer's review is unknown.
	_, pending := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")})
	assert.Nil(t, pending)

	m, _ = m.Update(cmd())
	assert.Contains(t, m.View(), "you, E to edit")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	require.NotNil(t, cmd)
	edit, ok := cmd().(EditRecipeMsg)
	require.True(t, ok)
	assert.Equal(t, "baker", edit.Recipe.Username)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")})
	require.NotNil(t, cmd)
	own, ok := cmd().(EditReviewMsg)
	require.True(t, ok)
	require.NotNil(t, own.Review)
	assert.Equal(t, 2, own.Review.ID)
	assert.Equal(t, 9, own.Recipe.ID)
}

func TestEditReviewWithoutOwnReview(t *testing.T) {
	m := New(fakeLoader{reviews: []model.Review{{ID: 1, UserID: 3}}}, keys.DefaultKeyMap(), 80, 30)
	cmd := m.SetRecipe(model.Recipe{ID: 9, Title: "Sourdough"})
	m, _ = m.Update(cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")})
	require.NotNil(t, cmd)
	msg, ok := cmd().(EditReviewMsg)
	require.True(t, ok)
	assert.Nil(t, msg.Review, "signed out viewers own no review")
}
