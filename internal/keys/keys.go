package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Command palette
	Command key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Screens
	Recipes     key.Binding
	Leaderboard key.Binding
	Awards      key.Binding
	Journal     key.Binding
	Profile     key.Binding

	// Account
	Login    key.Binding
	Register key.Binding
	Logout   key.Binding

	// Actions
	NewRecipe  key.Binding
	Review     key.Binding
	Edit       key.Binding
	EditReview key.Binding
	Dismiss    key.Binding
	Settings   key.Binding

	// Sort
	CycleSort   key.Binding
	ToggleOrder key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open recipe"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Recipes: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "recipes"),
		),
		Leaderboard: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "leaderboard"),
		),
		Awards: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "awards"),
		),
		Journal: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "ack journal"),
		),
		Profile: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "my profile"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log in"),
		),
		Register: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "register"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "log out"),
		),
		NewRecipe: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new recipe"),
		),
		Review: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write review"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit my recipe"),
		),
		EditReview: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit my review"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toasts"),
		),
		Settings: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "settings"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next sort column"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "flip sort order"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.Command, k.Help, k.Refresh, k.Dismiss, k.Settings},
		{k.Recipes, k.Leaderboard, k.Awards, k.Journal, k.Profile},
		{k.Login, k.Register, k.Logout, k.NewRecipe, k.Review, k.Edit, k.EditReview},
		{k.CycleSort, k.ToggleOrder},
	}
}
