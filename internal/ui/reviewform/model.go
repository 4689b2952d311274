package reviewform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// SubmitMsg is dispatched when a review is ready to be posted.
type SubmitMsg struct {
	Input api.ReviewInput
}

// UpdateMsg is dispatched when an edited review is ready to be saved.
type UpdateMsg struct {
	ID    int
	Input api.ReviewInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	rating      int
	description string
}

// Model is the Bubble Tea model for the review form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	recipe model.Recipe
	review *model.Review
	err    string
	width  int
	height int
}

// New creates a new review form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{rating: 5},
		width:  width,
		height: height,
	}
}

// Start opens the form for recipe.
func (m *Model) Start(recipe model.Recipe) tea.Cmd {
	m.recipe = recipe
	m.review = nil
	m.err = ""
	*m.fb = formBindings{rating: 5}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit opens the form filled with review, written for recipe.
func (m *Model) StartEdit(recipe model.Recipe, review model.Review) tea.Cmd {
	m.recipe = recipe
	m.review = &review
	m.err = ""
	*m.fb = formBindings{rating: review.Rating, description: review.Description}
	if m.fb.rating < 1 || m.fb.rating > 5 {
		m.fb.rating = 5
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Recipe returns the recipe being reviewed.
func (m Model) Recipe() model.Recipe {
	return m.recipe
}

// SetError shows why the last submission failed and reopens the form.
func (m *Model) SetError(err error) tea.Cmd {
	if err == nil {
		m.err = ""
		return nil
	}
	m.err = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the review form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the review form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "Review: " + m.recipe.Title
	if m.review != nil {
		title = "Edit review: " + m.recipe.Title
	}
	content := titleStyle.Render(title) + "\n"
	if m.err != "" {
		content += theme.ErrorStyle.Render(m.err) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[int], 0, 5)
	for r := 5; r >= 1; r-- {
		opts = append(opts, huh.NewOption(strings.Repeat("★", r), r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Rating").
				Options(opts...).
				Value(&m.fb.rating),
			huh.NewText().
				Title("Review").
				Placeholder("How did it turn out?").
				Value(&m.fb.description).
				Validate(validateRequired("Review")),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := api.ReviewInput{
		RecipeID:    m.recipe.ID,
		Rating:      m.fb.rating,
		Description: strings.TrimSpace(m.fb.description),
	}
	if m.review == nil {
		return func() tea.Msg { return SubmitMsg{Input: in} }
	}

	rv := *m.review
	in.UserID = rv.UserID
	in.RecipeID = rv.RecipeID
	in.Image = rv.Image
	return func() tea.Msg { return UpdateMsg{ID: rv.ID, Input: in} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
