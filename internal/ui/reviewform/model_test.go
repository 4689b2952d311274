package reviewform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
)

func TestSubmitCarriesRecipe(t *testing.T) {
	m := New(80, 30)
	m.Start(model.Recipe{ID: 12, Title: "Gumbo"})
	m.fb.rating = 4
	m.fb.description = " rich and smoky "

	msg, ok := m.handleSubmit()().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, 12, msg.Input.RecipeID)
	assert.Equal(t, 4, msg.Input.Rating)
	assert.Equal(t, "rich and smoky", msg.Input.Description)
	assert.Zero(t, msg.Input.UserID, "the account service fills the reviewer")
}

func TestStartDefaultsToFiveStars(t *testing.T) {
	m := New(80, 30)
	m.Start(model.Recipe{ID: 1, Title: "Toast"})
	m.fb.rating = 2

	m.Start(model.Recipe{ID: 2, Title: "Jam"})
	assert.Equal(t, 5, m.fb.rating)
	assert.Equal(t, 2, m.Recipe().ID)
	assert.Contains(t, m.View(), "Review: Jam")
}

func TestStartEditCarriesReview(t *testing.T) {
	m := New(80, 30)
	m.StartEdit(
		model.Recipe{ID: 12, Title: "Gumbo"},
		model.Review{ID: 9, UserID: 7, RecipeID: 12, Rating: 3, Description: "ok", Image: "bowl.jpg"},
	)
	assert.Equal(t, 3, m.fb.rating)
	assert.Equal(t, "ok", m.fb.description)
	assert.Contains(t, m.View(), "Edit review: Gumbo")

	m.fb.rating = 5
	m.fb.description = " better the next day "
	msg, ok := m.handleSubmit()().(UpdateMsg)
	require.True(t, ok)
	assert.Equal(t, 9, msg.ID)
	assert.Equal(t, 7, msg.Input.UserID)
	assert.Equal(t, 12, msg.Input.RecipeID)
	assert.Equal(t, 5, msg.Input.Rating)
	assert.Equal(t, "better the next day", msg.Input.Description)
	assert.Equal(t, "bowl.jpg", msg.Input.Image)
}

func TestStartAfterEditWritesNewReview(t *testing.T) {
	m := New(80, 30)
	m.StartEdit(model.Recipe{ID: 12}, model.Review{ID: 9, Rating: 0})
	assert.Equal(t, 5, m.fb.rating, "an out of range rating falls back to five stars")

	m.Start(model.Recipe{ID: 13, Title: "Jam"})
	_, ok := m.handleSubmit()().(SubmitMsg)
	assert.True(t, ok)
}
