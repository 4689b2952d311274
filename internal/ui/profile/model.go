// Package profile shows the signed-in user's standing together with the
// recipes and reviews they have published.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// Loader fetches what a user has published.
type Loader interface {
	ListRecipesByUser(ctx context.Context, userID int) ([]model.Recipe, error)
	ListReviewsByUser(ctx context.Context, userID int) ([]model.Review, error)
}

// LoadedMsg carries a user's recipes and reviews.
type LoadedMsg struct {
	UserID  int
	Recipes []model.Recipe
	Reviews []model.Review
	Err     error
}

// Model is the profile view.
type Model struct {
	viewport viewport.Model
	loader   Loader
	user     *model.User
	recipes  []model.Recipe
	reviews  []model.Review
	loading  bool
	err      error
	width    int
	height   int
}

// New creates a profile view.
func New(loader Loader, width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		loader:   loader,
		width:    width,
		height:   height,
	}
}

// SetUser shows user and returns the command loading their work. The
// lists are kept when user is the one already shown.
func (m *Model) SetUser(user model.User) tea.Cmd {
	if m.user == nil || m.user.ID != user.ID {
		m.recipes = nil
		m.reviews = nil
	}
	m.user = &user
	m.err = nil
	m.loading = true
	m.refresh()
	return m.Load()
}

// Clear forgets the shown user.
func (m *Model) Clear() {
	m.user = nil
	m.recipes = nil
	m.reviews = nil
	m.err = nil
	m.loading = false
	m.refresh()
}

// Load returns a tea.Cmd fetching the shown user's recipes and reviews.
func (m Model) Load() tea.Cmd {
	if m.user == nil {
		return nil
	}
	id := m.user.ID
	loader := m.loader
	return func() tea.Msg {
		ctx := context.Background()
		recipes, err := loader.ListRecipesByUser(ctx, id)
		if err != nil {
			return LoadedMsg{UserID: id, Err: err}
		}
		reviews, err := loader.ListReviewsByUser(ctx, id)
		if err != nil {
			return LoadedMsg{UserID: id, Err: err}
		}
		return LoadedMsg{UserID: id, Recipes: recipes, Reviews: reviews}
	}
}

// Update handles messages for the profile view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		if m.user == nil || loaded.UserID != m.user.ID {
			return m, nil
		}
		m.loading = false
		m.err = loaded.Err
		if loaded.Err == nil {
			m.recipes = loaded.Recipes
			m.reviews = loaded.Reviews
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the profile.
func (m Model) View() string {
	if m.user == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Sign in to see your profile")
	}
	return m.viewport.View()
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

func (m Model) renderContent() string {
	if m.user == nil {
		return ""
	}
	u := m.user

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	headerStyle := titleStyle.MarginBottom(1)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	name := u.Name
	if name == "" {
		name = u.Username
	}
	sections := []string{
		titleStyle.Render(name) + "  " + metaStyle.Render("@"+u.Username),
	}
	if u.Title != "" {
		sections = append(sections, theme.EarnedBadgeStyle.Render(u.Title))
	}
	sections = append(sections,
		"",
		fmt.Sprintf("%-12s %d", metaStyle.Render("Level:"), u.Level),
		fmt.Sprintf("%-12s %d", metaStyle.Render("Experience:"), u.Experience),
		fmt.Sprintf("%-12s %d of %d", metaStyle.Render("Awards:"), len(u.AwardIDs), len(model.AwardCatalog())),
	)
	if !u.CreationDate.IsZero() {
		sections = append(sections,
			fmt.Sprintf("%-12s %s", metaStyle.Render("Joined:"), u.CreationDate.Format("2 Jan 2006")))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	switch {
	case m.err != nil:
		sections = append(sections, theme.ErrorStyle.Render("Could not load your work: "+m.err.Error()))
	case m.loading && m.recipes == nil:
		sections = append(sections, theme.DimmedStyle.Render("Loading recipes and reviews..."))
	default:
		sections = append(sections, m.renderRecipes(headerStyle)...)
		sections = append(sections, "", separator, "")
		sections = append(sections, m.renderReviews(headerStyle)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderRecipes(headerStyle lipgloss.Style) []string {
	out := []string{headerStyle.Render(fmt.Sprintf("My Recipes (%d)", len(m.recipes)))}
	if len(m.recipes) == 0 {
		return append(out, theme.DimmedStyle.Render("No recipes yet. Press n to share one."))
	}
	for _, r := range m.recipes {
		score := theme.RatingStyle(r.Rating).Render(fmt.Sprintf("%.1f", r.Rating))
		line := score + "  " + r.Title
		if r.TimeToCook != "" {
			line += theme.DimmedStyle.Render("  " + r.TimeToCook)
		}
		out = append(out, line)
	}
	return out
}

func (m Model) renderReviews(headerStyle lipgloss.Style) []string {
	out := []string{headerStyle.Render(fmt.Sprintf("My Reviews (%d)", len(m.reviews)))}
	if len(m.reviews) == 0 {
		return append(out, theme.DimmedStyle.Render("No reviews yet."))
	}

	titles := make(map[int]string, len(m.recipes))
	for _, r := range m.recipes {
		titles[r.ID] = r.Title
	}
	for _, rv := range m.reviews {
		score := theme.RatingStyle(float64(rv.Rating)).Render(strings.Repeat("★", max(rv.Rating, 0)))
		target := titles[rv.RecipeID]
		if target == "" {
			target = fmt.Sprintf("recipe #%d", rv.RecipeID)
		}
		out = append(out, score+"  "+theme.DimmedStyle.Render(target), rv.Description, "")
	}
	return out
}
