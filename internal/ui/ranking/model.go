// Package ranking is the leaderboard screen: every user in a sortable
// table.
package ranking

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/leaderboard"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// UserLister fetches every user.
type UserLister interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// UsersLoadedMsg carries the users fetched for the leaderboard.
type UsersLoadedMsg struct {
	Users []model.User
	Err   error
}

var columnTitles = map[leaderboard.Field]string{
	leaderboard.FieldUsername:   "User",
	leaderboard.FieldTitle:      "Title",
	leaderboard.FieldLevel:      "Level",
	leaderboard.FieldExperience: "XP",
	leaderboard.FieldRecipes:    "Recipes",
	leaderboard.FieldReviews:    "Reviews",
	leaderboard.FieldAwards:     "Awards",
}

// Model is the leaderboard view component.
type Model struct {
	table  table.Model
	lister UserLister
	keys   *keys.KeyMap
	users  []model.User
	state  leaderboard.State
	me     string
	err    error
	width  int
	height int
}

// New creates a new leaderboard model.
func New(lister UserLister, k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(max(height-2, 1)),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorOrange).
		Bold(true)
	t.SetStyles(styles)

	m := Model{
		table:  t,
		lister: lister,
		keys:   k,
		state:  leaderboard.DefaultState(),
		width:  width,
		height: height,
	}
	m.table.SetColumns(m.columns())
	return m
}

// Init returns a command that loads the users.
func (m Model) Init() tea.Cmd {
	return m.LoadUsers()
}

// LoadUsers returns a tea.Cmd that fetches every user.
func (m Model) LoadUsers() tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		users, err := lister.ListUsers(context.Background())
		return UsersLoadedMsg{Users: users, Err: err}
	}
}

// SetCurrentUser marks username as the signed-in user.
func (m *Model) SetCurrentUser(username string) {
	m.me = username
	m.rebuild()
}

// State returns the current sort.
func (m Model) State() leaderboard.State {
	return m.state
}

// SortBy selects f the way clicking its header would.
func (m *Model) SortBy(f leaderboard.Field) {
	m.state = m.state.Toggle(f)
	m.rebuild()
}

// Update handles messages for the leaderboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case UsersLoadedMsg:
		m.err = msg.Err
		m.users = msg.Users
		m.rebuild()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.CycleSort):
			m.SortBy(nextField(m.state.Field))
			return m, nil

		case key.Matches(msg, m.keys.ToggleOrder):
			m.SortBy(m.state.Field)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m Model) View() string {
	if m.err != nil {
		return m.renderMessage(theme.ErrorStyle.Render("Could not load the leaderboard.") +
			"\n\n" + m.err.Error())
	}
	if len(m.users) == 0 {
		return m.renderMessage("No chefs yet.")
	}

	hint := theme.HelpStyle.Render("tab: next column  s: reverse order")
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), hint)
}

func (m Model) renderMessage(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// SetSize updates the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-2, 1))
	m.table.SetColumns(m.columns())
}

func (m *Model) rebuild() {
	m.table.SetColumns(m.columns())

	sorted := leaderboard.Sort(m.users, m.state)
	rows := make([]table.Row, 0, len(sorted))
	for i, u := range sorted {
		name := u.Username
		if m.me != "" && strings.EqualFold(u.Username, m.me) {
			name += " (you)"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			name,
			u.Title,
			fmt.Sprintf("%d", u.Level),
			fmt.Sprintf("%d", u.Experience),
			fmt.Sprintf("%d", len(u.RecipeIDs)),
			fmt.Sprintf("%d", len(u.ReviewIDs)),
			fmt.Sprintf("%d", len(u.AwardIDs)),
		})
	}
	m.table.SetRows(rows)
}

func (m Model) columns() []table.Column {
	widths := map[leaderboard.Field]int{
		leaderboard.FieldUsername:   18,
		leaderboard.FieldTitle:      18,
		leaderboard.FieldLevel:      7,
		leaderboard.FieldExperience: 8,
		leaderboard.FieldRecipes:    9,
		leaderboard.FieldReviews:    9,
		leaderboard.FieldAwards:     8,
	}

	cols := []table.Column{{Title: "#", Width: 4}}
	for _, f := range leaderboard.Fields {
		title := columnTitles[f]
		if arrow := m.state.Arrow(f); arrow != "" {
			title += " " + arrow
		}
		cols = append(cols, table.Column{Title: title, Width: widths[f]})
	}
	return cols
}

func nextField(f leaderboard.Field) leaderboard.Field {
	for i, known := range leaderboard.Fields {
		if known == f {
			return leaderboard.Fields[(i+1)%len(leaderboard.Fields)]
		}
	}
	return leaderboard.Fields[0]
}
