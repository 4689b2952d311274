package ranking

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/leaderboard"
	"github.com/nhle/munchie/internal/model"
)

type fakeLister struct {
	users []model.User
}

func (f fakeLister) ListUsers(context.Context) ([]model.User, error) {
	return f.users, nil
}

func chefs() []model.User {
	return []model.User{
		{ID: 1, Username: "bob", Level: 2},
		{ID: 2, Username: "alice", Level: 5},
	}
}

func TestLoadSortsByLevel(t *testing.T) {
	m := New(fakeLister{users: chefs()}, keys.DefaultKeyMap(), 100, 20)
	m, _ = m.Update(m.Init()())

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0][1])
	assert.Equal(t, "1", rows[0][0])
}

func TestTabMovesToNextColumn(t *testing.T) {
	m := New(fakeLister{}, keys.DefaultKeyMap(), 100, 20)
	m, _ = m.Update(UsersLoadedMsg{Users: chefs()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, leaderboard.State{Field: leaderboard.FieldExperience, Order: leaderboard.Desc}, m.State())
}

func TestReverseOrder(t *testing.T) {
	m := New(fakeLister{}, keys.DefaultKeyMap(), 100, 20)
	m, _ = m.Update(UsersLoadedMsg{Users: chefs()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Equal(t, leaderboard.Asc, m.State().Order)
	assert.Equal(t, "bob", m.table.Rows()[0][1])
}

func TestHeaderArrowFollowsSort(t *testing.T) {
	m := New(fakeLister{}, keys.DefaultKeyMap(), 100, 20)
	m.SortBy(leaderboard.FieldUsername)

	cols := m.table.Columns()
	assert.Equal(t, "User ↓", cols[1].Title)
	assert.Equal(t, "Level", cols[3].Title)
}

func TestCurrentUserMarked(t *testing.T) {
	m := New(fakeLister{}, keys.DefaultKeyMap(), 100, 20)
	m, _ = m.Update(UsersLoadedMsg{Users: chefs()})
	m.SetCurrentUser("BOB")

	assert.Equal(t, "bob (you)", m.table.Rows()[1][1])
}

func TestNextFieldWraps(t *testing.T) {
	assert.Equal(t, leaderboard.FieldUsername, nextField(leaderboard.FieldAwards))
}
