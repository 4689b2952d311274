package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/model"
)

func users() []model.User {
	return []model.User{
		{ID: 1, Username: "bob", Title: "Sous Chef", Level: 3, Experience: 300, RecipeIDs: []int{1}, AwardIDs: []int{1, 2, 3}},
		{ID: 2, Username: "Alice", Title: "apprentice", Level: 5, Experience: 520, RecipeIDs: []int{2, 3, 4}, ReviewIDs: []int{1}},
		{ID: 3, Username: "carol", Title: "Head Chef", Level: 5, Experience: 510, ReviewIDs: []int{2, 3}},
	}
}

func ids(us []model.User) []int {
	out := make([]int, len(us))
	for i, u := range us {
		out[i] = u.ID
	}
	return out
}

func TestSortDefaultIsLevelDescending(t *testing.T) {
	got := Sort(users(), DefaultState())
	assert.Equal(t, []int{2, 3, 1}, ids(got), "ties keep input order")
}

func TestSortTextIsCaseInsensitive(t *testing.T) {
	s := DefaultState().Toggle(FieldUsername)
	require.Equal(t, Asc, s.Order)

	assert.Equal(t, []int{2, 1, 3}, ids(Sort(users(), s)))

	s = s.Toggle(FieldTitle)
	assert.Equal(t, []int{2, 3, 1}, ids(Sort(users(), s)))
}

func TestSortListFieldsByLength(t *testing.T) {
	assert.Equal(t, []int{2, 1, 3}, ids(Sort(users(), State{Field: FieldRecipes, Order: Desc})))
	assert.Equal(t, []int{3, 2, 1}, ids(Sort(users(), State{Field: FieldReviews, Order: Desc})))
	assert.Equal(t, []int{1, 2, 3}, ids(Sort(users(), State{Field: FieldAwards, Order: Desc})))
	assert.Equal(t, []int{2, 3, 1}, ids(Sort(users(), State{Field: FieldAwards, Order: Asc})))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := users()
	Sort(in, State{Field: FieldExperience, Order: Asc})
	assert.Equal(t, []int{1, 2, 3}, ids(in))
}

func TestToggleFlipsSameField(t *testing.T) {
	s := DefaultState()
	s = s.Toggle(FieldLevel)
	assert.Equal(t, State{Field: FieldLevel, Order: Asc}, s)
	s = s.Toggle(FieldLevel)
	assert.Equal(t, State{Field: FieldLevel, Order: Desc}, s)
}

func TestToggleNewFieldUsesDefaultOrder(t *testing.T) {
	s := State{Field: FieldUsername, Order: Desc}
	assert.Equal(t, Desc, s.Toggle(FieldExperience).Order)
	assert.Equal(t, Asc, s.Toggle(FieldTitle).Order)
}

func TestArrow(t *testing.T) {
	assert.Equal(t, "↓", State{Field: FieldUsername, Order: Asc}.Arrow(FieldUsername))
	assert.Equal(t, "↑", State{Field: FieldUsername, Order: Desc}.Arrow(FieldUsername))
	assert.Equal(t, "↓", State{Field: FieldLevel, Order: Desc}.Arrow(FieldLevel))
	assert.Equal(t, "↑", State{Field: FieldLevel, Order: Asc}.Arrow(FieldLevel))
	assert.Equal(t, "", State{Field: FieldLevel, Order: Asc}.Arrow(FieldTitle))
}

func TestParseField(t *testing.T) {
	f, err := ParseField(" Awards ")
	require.NoError(t, err)
	assert.Equal(t, FieldAwards, f)

	_, err = ParseField("password")
	assert.Error(t, err)
}
