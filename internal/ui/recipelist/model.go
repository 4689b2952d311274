// Package recipelist is the recipe browser: a list of recipes with a
// keyword search backed by the cached catalog.
package recipelist

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/theme"
)

// Searcher looks recipes up by keyword; a blank keyword lists them all.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]model.Recipe, error)
}

// RecipesLoadedMsg is sent when a search has completed.
type RecipesLoadedMsg struct {
	Query   string
	Recipes []model.Recipe
	Err     error
}

// SelectedRecipeMsg is sent when a user selects a recipe to view details.
type SelectedRecipeMsg struct {
	Recipe model.Recipe
}

// Model is the recipe list view component.
type Model struct {
	list        list.Model
	searcher    Searcher
	keys        *keys.KeyMap
	query       string
	err         error
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new recipe list model.
func New(s Searcher, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Recipes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search recipes..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		searcher:    s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of recipes.
func (m Model) Init() tea.Cmd {
	return m.LoadRecipes()
}

// Update handles messages for the recipe list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecipesLoadedMsg:
		if msg.Query != m.query {
			return m, nil
		}
		m.err = msg.Err
		items := make([]list.Item, len(msg.Recipes))
		for i, r := range msg.Recipes {
			items[i] = RecipeItem{Recipe: r}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		return m, m.LoadRecipes()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.LoadRecipes()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(RecipeItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedRecipeMsg{Recipe: item.Recipe}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.query)
		cmd := m.searchInput.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Selected returns the highlighted recipe, if any.
func (m Model) Selected() (model.Recipe, bool) {
	item, ok := m.list.SelectedItem().(RecipeItem)
	if !ok {
		return model.Recipe{}, false
	}
	return item.Recipe, true
}

// View renders the recipe list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if m.err != nil {
		return m.renderMessage(theme.ErrorStyle.Render("Could not load recipes.") +
			"\n\n" + m.err.Error() + "\n\nPress r to retry.")
	}

	if len(m.list.Items()) == 0 {
		if m.query != "" {
			return m.renderMessage("No recipes match \"" + m.query + "\".\nPress / to search again.")
		}
		return m.renderMessage("No recipes yet.\n\nPress n to share the first one.")
	}

	return m.list.View()
}

func (m Model) renderMessage(text string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(text)
}

// LoadRecipes returns a tea.Cmd that runs the current search.
func (m Model) LoadRecipes() tea.Cmd {
	query := m.query
	s := m.searcher
	return func() tea.Msg {
		recipes, err := s.Search(context.Background(), query)
		return RecipesLoadedMsg{Query: query, Recipes: recipes, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
