// Package awards shows the award catalog with the badges the signed-in user
// has earned.
package awards

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// AwardLister fetches the server-side award descriptions.
type AwardLister interface {
	ListAwards(ctx context.Context) ([]model.Award, error)
}

// AwardsLoadedMsg carries the award descriptions.
type AwardsLoadedMsg struct {
	Awards []model.Award
	Err    error
}

// Model is the award catalog view.
type Model struct {
	viewport     viewport.Model
	lister       AwardLister
	descriptions map[int]string
	earned       map[int]bool
	err          error
	width        int
	height       int
}

// New creates a new award catalog view.
func New(lister AwardLister, width, height int) Model {
	m := Model{
		viewport:     viewport.New(width, height),
		lister:       lister,
		descriptions: make(map[int]string),
		earned:       make(map[int]bool),
		width:        width,
		height:       height,
	}
	m.viewport.SetContent(m.renderContent())
	return m
}

// Init returns the command loading award descriptions.
func (m Model) Init() tea.Cmd {
	return m.LoadAwards()
}

// LoadAwards returns a tea.Cmd fetching the award descriptions.
func (m Model) LoadAwards() tea.Cmd {
	lister := m.lister
	return func() tea.Msg {
		awards, err := lister.ListAwards(context.Background())
		return AwardsLoadedMsg{Awards: awards, Err: err}
	}
}

// SetEarned marks the award ids held by the signed-in user. nil clears
// every mark.
func (m *Model) SetEarned(ids []int) {
	m.earned = make(map[int]bool, len(ids))
	for _, id := range ids {
		m.earned[id] = true
	}
	m.viewport.SetContent(m.renderContent())
}

// Earned returns the number of catalog awards marked as held.
func (m Model) Earned() int {
	n := 0
	for _, e := range model.AwardCatalog() {
		if m.earned[e.ID] {
			n++
		}
	}
	return n
}

// Update handles messages for the award view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(AwardsLoadedMsg); ok {
		m.err = loaded.Err
		for _, a := range loaded.Awards {
			m.descriptions[a.ID] = a.Description
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the catalog.
func (m Model) View() string {
	return m.viewport.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) renderContent() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	entries := model.AwardCatalog()
	sort.SliceStable(entries, func(i, j int) bool {
		return m.earned[entries[i].ID] && !m.earned[entries[j].ID]
	})

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Awards  %d/%d earned", m.Earned(), model.AwardCount)),
		"",
	}
	if m.err != nil {
		lines = append(lines, theme.ErrorStyle.Render("Descriptions unavailable: "+m.err.Error()), "")
	}

	for _, e := range entries {
		marker := theme.DimmedStyle.Render("○")
		name := theme.DimmedStyle.Render(e.DisplayName)
		if m.earned[e.ID] {
			marker = theme.EarnedBadgeStyle.Render("●")
			name = theme.EarnedBadgeStyle.Render(e.DisplayName)
		}

		line := fmt.Sprintf("%s %s %s", marker, e.Glyph, name)
		if desc := strings.TrimSpace(m.descriptions[e.ID]); desc != "" {
			line += "  " + theme.HelpStyle.Render(desc)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
