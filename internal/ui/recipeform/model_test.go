package recipeform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
)

func TestSubmitTrimsFields(t *testing.T) {
	m := New(80, 30)
	m.StartCreate()
	m.fb.title = " Shakshuka "
	m.fb.timeToCook = "30 min"
	m.fb.method = "Simmer tomatoes, crack eggs.\n"
	m.fb.videoLink = ""

	msg, ok := m.handleSubmit()().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "Shakshuka", msg.Input.Title)
	assert.Equal(t, "Simmer tomatoes, crack eggs.", msg.Input.Method)
	assert.Empty(t, msg.Input.Username, "the account service fills the author")
}

func TestStartCreateClearsPreviousValues(t *testing.T) {
	m := New(80, 30)
	m.StartCreate()
	m.fb.title = "old"
	m.SetError(errors.New("rejected"))
	assert.Equal(t, "old", m.fb.title, "an error keeps what was typed")
	assert.Contains(t, m.View(), "rejected")

	m.StartCreate()
	assert.Empty(t, m.fb.title)
	assert.NotContains(t, m.View(), "rejected")
}

func TestValidateOptionalURL(t *testing.T) {
	assert.NoError(t, validateOptionalURL(""))
	assert.NoError(t, validateOptionalURL("https://youtu.be/abc"))
	assert.Error(t, validateOptionalURL("youtu.be/abc"))
}

func TestStartEditFillsAndKeepsHiddenFields(t *testing.T) {
	m := New(80, 30)
	m.StartEdit(model.Recipe{
		ID:            12,
		Title:         "Gumbo",
		TimeToCook:    "2h",
		Method:        "Stir the roux.",
		Image:         "gumbo.jpg",
		Username:      "chef",
		IngredientIDs: []int{1, 2},
		CategoryIDs:   []int{5},
	})
	assert.Equal(t, "Gumbo", m.fb.title)
	assert.Contains(t, m.View(), "Edit: Gumbo")

	m.fb.timeToCook = " 3h "
	msg, ok := m.handleSubmit()().(UpdateMsg)
	require.True(t, ok)
	assert.Equal(t, 12, msg.ID)
	assert.Equal(t, "3h", msg.Input.TimeToCook)
	assert.Equal(t, "gumbo.jpg", msg.Input.Image)
	assert.Equal(t, "chef", msg.Input.Username)
	assert.Equal(t, []int{1, 2}, msg.Input.IngredientIDs)
	assert.Equal(t, []int{5}, msg.Input.CategoryIDs)
}

func TestStartCreateLeavesEditMode(t *testing.T) {
	m := New(80, 30)
	m.StartEdit(model.Recipe{ID: 12, Title: "Gumbo"})
	m.StartCreate()

	_, editing := m.Editing()
	assert.False(t, editing)
	_, ok := m.handleSubmit()().(SubmitMsg)
	assert.True(t, ok)
}
