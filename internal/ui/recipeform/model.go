package recipeform

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// SubmitMsg is dispatched when a new recipe is ready to be posted.
type SubmitMsg struct {
	Input api.RecipeInput
}

// UpdateMsg is dispatched when an edited recipe is ready to be saved.
type UpdateMsg struct {
	ID    int
	Input api.RecipeInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title      string
	timeToCook string
	method     string
	videoLink  string
}

// Model is the Bubble Tea model for the recipe form.
type Model struct {
	form *huh.Form
	fb   *formBindings

	// editing is the recipe being changed; nil for a new recipe.
	editing *model.Recipe

	err    string
	width  int
	height int
}

// New creates a new recipe form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new recipe.
func (m *Model) StartCreate() tea.Cmd {
	*m.fb = formBindings{}
	m.editing = nil
	m.err = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit opens the form filled with recipe.
func (m *Model) StartEdit(recipe model.Recipe) tea.Cmd {
	*m.fb = formBindings{
		title:      recipe.Title,
		timeToCook: recipe.TimeToCook,
		method:     recipe.Method,
		videoLink:  recipe.VideoLink,
	}
	m.editing = &recipe
	m.err = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing returns the recipe being edited, if any.
func (m Model) Editing() (model.Recipe, bool) {
	if m.editing == nil {
		return model.Recipe{}, false
	}
	return *m.editing, true
}

// SetError shows why the last submission failed and reopens the form with
// the values already entered.
func (m *Model) SetError(err error) tea.Cmd {
	if err == nil {
		m.err = ""
		return nil
	}
	m.err = err.Error()
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the recipe form.
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

// View renders the recipe form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := "New Recipe"
	if m.editing != nil {
		title = "Edit: " + m.editing.Title
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
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What are we cooking?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Time to cook").
				Placeholder("e.g. 45 min").
				Value(&m.fb.timeToCook).
				Validate(validateRequired("Time to cook")),
			huh.NewText().
				Title("Method").
				Placeholder("Step by step...").
				Value(&m.fb.method).
				Validate(validateRequired("Method")),
			huh.NewInput().
				Title("Video").
				Placeholder("https://... (optional)").
				Value(&m.fb.videoLink).
				Validate(validateOptionalURL),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := api.RecipeInput{
		Title:      strings.TrimSpace(m.fb.title),
		TimeToCook: strings.TrimSpace(m.fb.timeToCook),
		Method:     strings.TrimSpace(m.fb.method),
		VideoLink:  strings.TrimSpace(m.fb.videoLink),
	}
	if m.editing == nil {
		return func() tea.Msg { return SubmitMsg{Input: in} }
	}

	// Fields the form does not show are sent back unchanged.
	r := *m.editing
	in.Image = r.Image
	in.Username = r.Username
	in.IngredientIDs = r.IngredientIDs
	in.CategoryIDs = r.CategoryIDs
	return func() tea.Msg { return UpdateMsg{ID: r.ID, Input: in} }
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

func validateOptionalURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("video must be a full URL")
	}
	return nil
}
