package recipedetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// ReviewLoader fetches the reviews of a recipe.
type ReviewLoader interface {
	ListReviewsForRecipe(ctx context.Context, recipeID int) ([]model.Review, error)
}

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// ReviewsLoadedMsg carries the reviews of a recipe.
type ReviewsLoadedMsg struct {
	RecipeID int
	Reviews  []model.Review
	Err      error
}

// WriteReviewMsg asks the parent to open the review form for a recipe.
type WriteReviewMsg struct {
	Recipe model.Recipe
}

// EditRecipeMsg asks the parent to open the edit form for a recipe.
type EditRecipeMsg struct {
	Recipe model.Recipe
}

// EditReviewMsg asks the parent to edit the viewer's review of a recipe.
// Review is nil when the viewer has not reviewed it.
type EditReviewMsg struct {
	Recipe model.Recipe
	Review *model.Review
}

// Model is the recipe detail view component.
type Model struct {
	recipe     *model.Recipe
	viewerID   int
	reviews    []model.Review
	reviewsErr error
	loading    bool
	viewport   viewport.Model
	loader     ReviewLoader
	keys       *keys.KeyMap
	width      int
	height     int
}

// New creates a new detail view model.
func New(loader ReviewLoader, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		loader:   loader,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetRecipe shows recipe and returns the command loading its reviews.
func (m *Model) SetRecipe(recipe model.Recipe) tea.Cmd {
	m.recipe = &recipe
	m.reviews = nil
	m.reviewsErr = nil
	m.loading = true
	m.refresh()
	return m.LoadReviews()
}

// LoadReviews returns a tea.Cmd fetching the reviews of the shown recipe.
func (m Model) LoadReviews() tea.Cmd {
	if m.recipe == nil {
		return nil
	}
	id := m.recipe.ID
	loader := m.loader
	return func() tea.Msg {
		reviews, err := loader.ListReviewsForRecipe(context.Background(), id)
		return ReviewsLoadedMsg{RecipeID: id, Reviews: reviews, Err: err}
	}
}

// SetViewer marks userID as the signed-in user; 0 when signed out.
func (m *Model) SetViewer(userID int) {
	if m.viewerID == userID {
		return
	}
	m.viewerID = userID
	if m.recipe != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// Recipe returns the recipe on display, if any.
func (m Model) Recipe() (model.Recipe, bool) {
	if m.recipe == nil {
		return model.Recipe{}, false
	}
	return *m.recipe, true
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReviewsLoadedMsg:
		if m.recipe == nil || msg.RecipeID != m.recipe.ID {
			return m, nil
		}
		m.loading = false
		m.reviews = msg.Reviews
		m.reviewsErr = msg.Err
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.Review):
			if m.recipe != nil {
				recipe := *m.recipe
				return m, func() tea.Msg {
					return WriteReviewMsg{Recipe: recipe}
				}
			}

		case key.Matches(msg, m.keys.Edit):
			if m.recipe != nil {
				recipe := *m.recipe
				return m, func() tea.Msg {
					return EditRecipeMsg{Recipe: recipe}
				}
			}

		case key.Matches(msg, m.keys.EditReview):
			if m.recipe != nil && !m.loading {
				out := EditReviewMsg{Recipe: *m.recipe, Review: m.ownReview()}
				return m, func() tea.Msg {
					return out
				}
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.recipe == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No recipe selected")
	}

	return m.viewport.View()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.recipe == nil {
		return ""
	}

	r := m.recipe
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(r.Title))
	sections = append(sections, theme.RatingStyle(r.Rating).Render(fmt.Sprintf("%.1f / 5", r.Rating)))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	meta := []struct{ label, value string }{
		{"Chef:", "@" + r.Username},
		{"Cook time:", r.TimeToCook},
		{"Video:", r.VideoLink},
		{"Image:", r.Image},
	}
	for _, row := range meta {
		if row.value == "" || row.value == "@" {
			continue
		}
		sections = append(sections, fmt.Sprintf(
			"%-11s %s",
			metaStyle.Render(row.label),
			valStyle.Render(row.value),
		))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, headerStyle.Render("Method"))
	method := r.Method
	if method == "" {
		method = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No method")
	}
	sections = append(sections, method)

	sections = append(sections, "", separator, "")
	sections = append(sections, m.renderReviews(headerStyle)...)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderReviews(headerStyle lipgloss.Style) []string {
	switch {
	case m.loading:
		return []string{theme.DimmedStyle.Render("Loading reviews...")}
	case m.reviewsErr != nil:
		return []string{theme.ErrorStyle.Render("Could not load reviews: " + m.reviewsErr.Error())}
	case len(m.reviews) == 0:
		return []string{
			headerStyle.Render("Reviews"),
			theme.DimmedStyle.Render("No reviews yet. Press w to write one."),
		}
	}

	out := []string{headerStyle.Render(fmt.Sprintf("Reviews (%d)", len(m.reviews)))}
	for _, rv := range m.reviews {
		score := theme.RatingStyle(float64(rv.Rating)).
			Render(strings.Repeat("★", rv.Rating))
		who := theme.DimmedStyle.Render(fmt.Sprintf("user #%d", rv.UserID))
		if m.viewerID > 0 && rv.UserID == m.viewerID {
			who = theme.DimmedStyle.Render("you, E to edit")
		}
		out = append(out, score+"  "+who, rv.Description, "")
	}
	return out
}

// ownReview returns the viewer's review of the shown recipe.
func (m Model) ownReview() *model.Review {
	if m.viewerID <= 0 {
		return nil
	}
	for i := range m.reviews {
		if m.reviews[i].UserID == m.viewerID {
			rv := m.reviews[i]
			return &rv
		}
	}
	return nil
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}
