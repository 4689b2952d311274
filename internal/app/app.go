package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/keys"
	"github.com/nhle/munchie/internal/leaderboard"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/notify"
	"github.com/nhle/munchie/internal/ui"
	"github.com/nhle/munchie/internal/ui/authform"
	awardsview "github.com/nhle/munchie/internal/ui/awards"
	"github.com/nhle/munchie/internal/ui/command"
	"github.com/nhle/munchie/internal/ui/feed"
	helpview "github.com/nhle/munchie/internal/ui/help"
	journalview "github.com/nhle/munchie/internal/ui/journal"
	profileview "github.com/nhle/munchie/internal/ui/profile"
	"github.com/nhle/munchie/internal/ui/ranking"
	"github.com/nhle/munchie/internal/ui/recipedetail"
	"github.com/nhle/munchie/internal/ui/recipeform"
	"github.com/nhle/munchie/internal/ui/recipelist"
	"github.com/nhle/munchie/internal/ui/reviewform"
	"github.com/nhle/munchie/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewRecipes ViewState = iota
	ViewRecipeDetail
	ViewLeaderboard
	ViewAwards
	ViewJournal
	ViewHelp
	ViewCommand
	ViewAuth
	ViewRecipeForm
	ViewReviewForm
	ViewSettings
	ViewProfile
)

// JournalRetention is how far back :prune keeps journal rows.
const JournalRetention = 30 * 24 * time.Hour

// Commands lists the command palette entries.
var Commands = []string{
	"recipes", "leaderboard", "awards", "journal", "profile",
	"login", "google", "register", "logout",
	"new recipe", "refresh", "prune", "settings", "help", "quit",
	"sort username", "sort title", "sort level", "sort experience",
	"sort recipes", "sort reviews", "sort awards",
}

// Accounts runs the account flows.
type Accounts interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	OAuthLogin(ctx context.Context, idToken string) (*model.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*model.User, error)
	Logout() error
	CreateRecipe(ctx context.Context, in api.RecipeInput) (*model.Recipe, error)
	CreateReview(ctx context.Context, in api.ReviewInput) (*model.Review, error)
	UpdateRecipe(ctx context.Context, id int, in api.RecipeInput) (*model.Recipe, error)
	UpdateReview(ctx context.Context, id int, in api.ReviewInput) (*model.Review, error)
}

// Session is the read side of the signed-in session.
type Session interface {
	LoggedIn() bool
	UserID() int
	Username() string
	User() (model.User, bool)
}

// Notifications is the notification pipeline as the UI sees it.
type Notifications interface {
	RefreshNotifications(ctx context.Context, userID int) (model.Batch, error)
	WaitForBatch() tea.Cmd
	WaitForAck() tea.Cmd
	Pending() int
}

// Catalog is the cached recipe search.
type Catalog interface {
	recipelist.Searcher
	Invalidate()
}

// Backend covers the read-only endpoints the screens call directly.
type Backend interface {
	recipedetail.ReviewLoader
	ranking.UserLister
	awardsview.AwardLister
	profileview.Loader
}

// Journal is the local acknowledgement journal.
type Journal interface {
	journalview.Reader
	PruneAcks(ctx context.Context, before time.Time) (int64, error)
}

// Deps bundles everything the root model talks to.
type Deps struct {
	Accounts      Accounts
	Session       Session
	Notifications Notifications
	Catalog       Catalog
	Backend       Backend
	Journal       Journal

	// StepDelay spaces toast entrances; it must match the dispatcher's.
	StepDelay     time.Duration
	ToastDuration time.Duration

	// Config seeds the settings screen; ProbeBackend and SaveConfig back it.
	Config       model.AppConfig
	ProbeBackend settings.Prober
	SaveConfig   settings.Saver

	Log logrus.FieldLogger
}

// Model is the root Bubble Tea model that manages view routing and layout.
type Model struct {
	deps         Deps
	log          logrus.FieldLogger
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	recipes      recipelist.Model
	detail       recipedetail.Model
	ranking      ranking.Model
	awards       awardsview.Model
	journal      journalview.Model
	helpView     helpview.Model
	commandView  command.Model
	authForm     authform.Model
	recipeForm   recipeform.Model
	reviewForm   reviewform.Model
	settings     settings.Model
	profile      profileview.Model
	feed         feed.Model

	ready         bool
	busy          bool
	statusMessage string
	lastAck       string
}

// New creates a new root application model.
func New(deps Deps) Model {
	k := keys.DefaultKeyMap()
	log := deps.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	m := Model{
		deps:        deps,
		log:         log,
		currentView: ViewRecipes,
		keys:        k,
		recipes:     recipelist.New(deps.Catalog, k, 80, 24),
		detail:      recipedetail.New(deps.Backend, k, 80, 24),
		ranking:     ranking.New(deps.Backend, k, 80, 24),
		awards:      awardsview.New(deps.Backend, 80, 24),
		journal:     journalview.New(deps.Journal, 80, 24),
		helpView:    helpview.New(k, Commands, 80, 24),
		commandView: command.New(Commands, 80, 24),
		authForm:    authform.New(80, 24),
		recipeForm:  recipeform.New(80, 24),
		reviewForm:  reviewform.New(80, 24),
		settings:    settings.New(deps.Config, deps.ProbeBackend, deps.SaveConfig, 80, 24),
		profile:     profileview.New(deps.Backend, 80, 24),
		feed:        feed.New(deps.StepDelay, deps.ToastDuration),
	}
	m.syncProfile()
	return m
}

// Init loads the first screen, starts listening to the notification
// pipeline and, when a session survived the restart, refreshes the
// signed-in user's notifications.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.recipes.Init(),
		m.deps.Notifications.WaitForBatch(),
		m.deps.Notifications.WaitForAck(),
	}
	if m.deps.Session.LoggedIn() {
		cmds = append(cmds, m.refreshNotifications())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if feed.IsTick(msg) {
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.recipes.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.ranking.SetSize(w, h)
		m.awards.SetSize(w, h)
		m.journal.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		m.authForm.SetSize(w, h)
		m.recipeForm.SetSize(w, h)
		m.reviewForm.SetSize(w, h)
		m.settings.SetSize(w, h)
		m.profile.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case notify.BatchMsg:
		var cmd tea.Cmd
		m.feed, cmd = m.feed.SetBatch(msg.Batch)
		if msg.Err != nil {
			m.statusMessage = "Could not load notifications"
		}
		m.syncProfile()
		return m, tea.Batch(cmd, m.deps.Notifications.WaitForBatch())

	case notify.AckEvent:
		m.lastAck = describeAck(msg)
		cmds := []tea.Cmd{m.deps.Notifications.WaitForAck()}
		if m.currentView == ViewJournal {
			cmds = append(cmds, m.journal.Load())
		}
		return m, tea.Batch(cmds...)

	case notificationsRefreshedMsg:
		if msg.err != nil {
			m.log.WithError(msg.err).Debug("notification refresh reported an error")
		}
		return m, nil

	case loginDoneMsg:
		m.busy = false
		if msg.err != nil {
			cmd := m.authForm.SetError(friendlyError(msg.err))
			return m, cmd
		}
		m.currentView = ViewRecipes
		m.statusMessage = fmt.Sprintf("Welcome, %s!", msg.user.Username)
		m.syncProfile()
		return m, nil

	case logoutDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.statusMessage = "Logout failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = "Signed out"
		m.syncProfile()
		return m, nil

	case recipeCreatedMsg:
		m.busy = false
		if msg.err != nil {
			if api.IsAuthMissing(msg.err) {
				cmd := m.openAuth(authform.ModeLogin, "Sign in to share a recipe")
				return m, cmd
			}
			cmd := m.recipeForm.SetError(friendlyError(msg.err))
			return m, cmd
		}
		m.currentView = ViewRecipes
		m.statusMessage = fmt.Sprintf("Published %q", msg.recipe.Title)
		m.deps.Catalog.Invalidate()
		m.syncProfile()
		cmd := m.recipes.LoadRecipes()
		return m, cmd

	case reviewCreatedMsg:
		m.busy = false
		if msg.err != nil {
			if api.IsAuthMissing(msg.err) {
				cmd := m.openAuth(authform.ModeLogin, "Sign in to write a review")
				return m, cmd
			}
			cmd := m.reviewForm.SetError(friendlyError(msg.err))
			return m, cmd
		}
		m.currentView = ViewRecipeDetail
		m.statusMessage = "Review posted"
		m.deps.Catalog.Invalidate()
		m.syncProfile()
		cmd := m.detail.LoadReviews()
		return m, cmd

	case recipeUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			if api.IsAuthMissing(msg.err) {
				cmd := m.openAuth(authform.ModeLogin, "Sign in to edit your recipe")
				return m, cmd
			}
			cmd := m.recipeForm.SetError(friendlyError(msg.err))
			return m, cmd
		}
		recipe := msg.edited
		if msg.recipe != nil && msg.recipe.ID != 0 {
			recipe = *msg.recipe
		}
		m.currentView = ViewRecipeDetail
		m.statusMessage = fmt.Sprintf("Saved %q", recipe.Title)
		m.deps.Catalog.Invalidate()
		m.syncProfile()
		cmd := tea.Batch(m.detail.SetRecipe(recipe), m.recipes.LoadRecipes())
		return m, cmd

	case reviewUpdatedMsg:
		m.busy = false
		if msg.err != nil {
			if api.IsAuthMissing(msg.err) {
				cmd := m.openAuth(authform.ModeLogin, "Sign in to edit your review")
				return m, cmd
			}
			cmd := m.reviewForm.SetError(friendlyError(msg.err))
			return m, cmd
		}
		m.currentView = ViewRecipeDetail
		m.statusMessage = "Review updated"
		m.deps.Catalog.Invalidate()
		m.syncProfile()
		cmd := m.detail.LoadReviews()
		return m, cmd

	case journalPrunedMsg:
		if msg.err != nil {
			m.statusMessage = "Prune failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = fmt.Sprintf("Pruned %d journal rows", msg.removed)
		cmd := m.journal.Load()
		return m, cmd

	case recipelist.RecipesLoadedMsg:
		var cmd tea.Cmd
		m.recipes, cmd = m.recipes.Update(msg)
		return m, cmd

	case recipelist.SelectedRecipeMsg:
		m.previousView = m.currentView
		m.currentView = ViewRecipeDetail
		cmd := m.detail.SetRecipe(msg.Recipe)
		return m, cmd

	case recipedetail.ReviewsLoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case recipedetail.BackMsg:
		m.currentView = ViewRecipes
		return m, nil

	case recipedetail.WriteReviewMsg:
		if !m.deps.Session.LoggedIn() {
			cmd := m.openAuth(authform.ModeLogin, "Sign in to write a review")
			return m, cmd
		}
		m.previousView = m.currentView
		m.currentView = ViewReviewForm
		cmd := m.reviewForm.Start(msg.Recipe)
		return m, cmd

	case recipedetail.EditRecipeMsg:
		if !m.deps.Session.LoggedIn() {
			cmd := m.openAuth(authform.ModeLogin, "Sign in to edit your recipe")
			return m, cmd
		}
		if !strings.EqualFold(msg.Recipe.Username, m.deps.Session.Username()) {
			m.statusMessage = fmt.Sprintf("Only @%s can edit this recipe", msg.Recipe.Username)
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewRecipeForm
		cmd := m.recipeForm.StartEdit(msg.Recipe)
		return m, cmd

	case recipedetail.EditReviewMsg:
		if !m.deps.Session.LoggedIn() {
			cmd := m.openAuth(authform.ModeLogin, "Sign in to edit your review")
			return m, cmd
		}
		if msg.Review == nil {
			m.statusMessage = "You have not reviewed this recipe; press w to write one"
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewReviewForm
		cmd := m.reviewForm.StartEdit(msg.Recipe, *msg.Review)
		return m, cmd

	case profileview.LoadedMsg:
		var cmd tea.Cmd
		m.profile, cmd = m.profile.Update(msg)
		return m, cmd

	case ranking.UsersLoadedMsg:
		var cmd tea.Cmd
		m.ranking, cmd = m.ranking.Update(msg)
		return m, cmd

	case awardsview.AwardsLoadedMsg:
		var cmd tea.Cmd
		m.awards, cmd = m.awards.Update(msg)
		return m, cmd

	case journalview.LoadedMsg:
		var cmd tea.Cmd
		m.journal, cmd = m.journal.Update(msg)
		return m, cmd

	case authform.LoginSubmitMsg:
		m.busy = true
		return m, m.login(msg.Username, msg.Password)

	case authform.OAuthSubmitMsg:
		m.busy = true
		return m, m.oauthLogin(msg.IDToken)

	case authform.RegisterSubmitMsg:
		m.busy = true
		return m, m.register(msg.Request)

	case authform.CancelMsg, recipeform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case settings.SavedMsg:
		m.currentView = m.previousView
		m.statusMessage = "Settings saved; restart Munchie to apply them"
		return m, nil

	case settings.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case reviewform.CancelMsg:
		m.currentView = ViewRecipeDetail
		return m, nil

	case recipeform.SubmitMsg:
		m.busy = true
		return m, m.createRecipe(msg.Input)

	case reviewform.SubmitMsg:
		m.busy = true
		return m, m.createReview(msg.Input)

	case recipeform.UpdateMsg:
		m.busy = true
		edited, _ := m.recipeForm.Editing()
		return m, m.updateRecipe(msg.ID, msg.Input, edited)

	case reviewform.UpdateMsg:
		m.busy = true
		return m, m.updateReview(msg.ID, msg.Input)

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.statusMessage = ""
		if !m.capturingInput() {
			if next, cmd, handled := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturingInput reports whether the active view owns every keystroke.
func (m Model) capturingInput() bool {
	switch m.currentView {
	case ViewAuth, ViewRecipeForm, ViewReviewForm, ViewCommand, ViewSettings:
		return true
	case ViewRecipes:
		return m.recipes.Searching()
	}
	return false
}

// handleGlobalKey processes keys that work from any browsing view.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView != ViewHelp {
			return m, tea.Quit, true
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case key.Matches(msg, m.keys.Recipes):
		m.currentView = ViewRecipes
		return m, nil, true

	case key.Matches(msg, m.keys.Leaderboard):
		m.currentView = ViewLeaderboard
		cmd := m.ranking.LoadUsers()
		return m, cmd, true

	case key.Matches(msg, m.keys.Awards):
		m.currentView = ViewAwards
		cmd := m.awards.LoadAwards()
		return m, cmd, true

	case key.Matches(msg, m.keys.Journal):
		m.currentView = ViewJournal
		cmd := m.journal.Load()
		return m, cmd, true

	case key.Matches(msg, m.keys.Profile):
		cmd := m.openProfile()
		return m, cmd, true

	case key.Matches(msg, m.keys.Login):
		cmd := m.openAuth(authform.ModeLogin, "")
		return m, cmd, true

	case key.Matches(msg, m.keys.Register):
		cmd := m.openAuth(authform.ModeRegister, "")
		return m, cmd, true

	case key.Matches(msg, m.keys.Logout):
		if m.deps.Session.LoggedIn() {
			m.busy = true
			return m, m.logout(), true
		}
		return m, nil, true

	case key.Matches(msg, m.keys.NewRecipe):
		cmd := m.openRecipeForm()
		return m, cmd, true

	case key.Matches(msg, m.keys.Settings):
		cmd := m.openSettings()
		return m, cmd, true

	case key.Matches(msg, m.keys.Dismiss):
		m.feed.DismissAll()
		return m, nil, true

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshAll(), true
	}
	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewRecipes:
		m.recipes, cmd = m.recipes.Update(msg)
	case ViewRecipeDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewLeaderboard:
		m.ranking, cmd = m.ranking.Update(msg)
	case ViewAwards:
		m.awards, cmd = m.awards.Update(msg)
	case ViewJournal:
		m.journal, cmd = m.journal.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewAuth:
		m.authForm, cmd = m.authForm.Update(msg)
	case ViewRecipeForm:
		m.recipeForm, cmd = m.recipeForm.Update(msg)
	case ViewReviewForm:
		m.reviewForm, cmd = m.reviewForm.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	case ViewProfile:
		m.profile, cmd = m.profile.Update(msg)
	}

	return m, cmd
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Munchie", m.accountStatus())
	content := m.layout.RenderWithToasts(m.renderContent(), m.feed.View())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewRecipes:
		return m.recipes.View()
	case ViewRecipeDetail:
		return m.detail.View()
	case ViewLeaderboard:
		return m.ranking.View()
	case ViewAwards:
		return m.awards.View()
	case ViewJournal:
		return m.journal.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewAuth:
		return m.authForm.View()
	case ViewRecipeForm:
		return m.recipeForm.View()
	case ViewReviewForm:
		return m.reviewForm.View()
	case ViewSettings:
		return m.settings.View()
	case ViewProfile:
		return m.profile.View()
	default:
		return ""
	}
}

// accountStatus returns the right-hand side of the header.
func (m Model) accountStatus() string {
	parts := []string{}
	if pending := m.deps.Notifications.Pending(); pending > 0 {
		parts = append(parts, fmt.Sprintf("%d award(s) arriving", pending))
	}
	if m.busy {
		parts = append(parts, "working...")
	}
	if m.deps.Session.LoggedIn() {
		user, ok := m.deps.Session.User()
		if ok && user.Level > 0 {
			parts = append(parts, fmt.Sprintf("@%s lvl %d", user.Username, user.Level))
		} else {
			parts = append(parts, "@"+m.deps.Session.Username())
		}
	} else {
		parts = append(parts, "signed out")
	}
	return strings.Join(parts, " | ")
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewRecipeDetail:
		return "esc back | w review | e edit recipe | E edit review | j/k scroll"
	case ViewProfile:
		return "j/k scroll | r refresh | 1 recipes | ? help"
	case ViewLeaderboard:
		return "tab next column | s reverse | 1 recipes | ? help"
	case ViewAuth, ViewRecipeForm, ViewReviewForm:
		return "enter submit | esc cancel"
	case ViewSettings:
		return "enter next | shift+tab previous | esc cancel"
	case ViewJournal:
		if m.lastAck != "" {
			return m.lastAck + " | :prune"
		}
		return ":prune drops old rows | 1 recipes"
	default:
		if m.deps.Session.LoggedIn() {
			return "q quit | ? help | / search | n new recipe | 2 ranks | 3 awards | 5 profile | O logout"
		}
		return "q quit | ? help | / search | L login | R register | 2 ranks | 3 awards"
	}
}

// openAuth switches to the auth form in mode, optionally with a hint.
func (m *Model) openAuth(mode authform.Mode, hint string) tea.Cmd {
	if m.currentView != ViewAuth {
		m.previousView = m.currentView
	}
	m.currentView = ViewAuth
	cmd := m.authForm.Start(mode)
	if hint != "" {
		m.statusMessage = hint
	}
	return cmd
}

// openRecipeForm opens the recipe form, or the login form when signed out.
func (m *Model) openRecipeForm() tea.Cmd {
	if !m.deps.Session.LoggedIn() {
		return m.openAuth(authform.ModeLogin, "Sign in to share a recipe")
	}
	m.previousView = m.currentView
	m.currentView = ViewRecipeForm
	return m.recipeForm.StartCreate()
}

// openProfile shows the signed-in user's profile, or the login form when
// signed out.
func (m *Model) openProfile() tea.Cmd {
	user, ok := m.deps.Session.User()
	if !ok || !m.deps.Session.LoggedIn() {
		return m.openAuth(authform.ModeLogin, "Sign in to see your profile")
	}
	m.currentView = ViewProfile
	return m.profile.SetUser(user)
}

// openSettings opens the settings editor.
func (m *Model) openSettings() tea.Cmd {
	if m.currentView != ViewSettings {
		m.previousView = m.currentView
	}
	m.currentView = ViewSettings
	return m.settings.Start()
}

// syncProfile pushes the signed-in user into the views that show it.
func (m *Model) syncProfile() {
	user, ok := m.deps.Session.User()
	if !ok || !m.deps.Session.LoggedIn() {
		m.awards.SetEarned(nil)
		m.ranking.SetCurrentUser("")
		m.detail.SetViewer(0)
		m.profile.Clear()
		return
	}
	m.awards.SetEarned(user.AwardIDs)
	m.ranking.SetCurrentUser(user.Username)
	m.detail.SetViewer(user.ID)
}

// refreshAll reloads the active screen and the signed-in user's
// notifications.
func (m *Model) refreshAll() tea.Cmd {
	m.deps.Catalog.Invalidate()
	cmds := []tea.Cmd{}
	switch m.currentView {
	case ViewRecipes:
		cmds = append(cmds, m.recipes.LoadRecipes())
	case ViewRecipeDetail:
		cmds = append(cmds, m.detail.LoadReviews())
	case ViewLeaderboard:
		cmds = append(cmds, m.ranking.LoadUsers())
	case ViewAwards:
		cmds = append(cmds, m.awards.LoadAwards())
	case ViewJournal:
		cmds = append(cmds, m.journal.Load())
	case ViewProfile:
		if user, ok := m.deps.Session.User(); ok {
			cmds = append(cmds, m.profile.SetUser(user))
		}
	}
	if m.deps.Session.LoggedIn() {
		cmds = append(cmds, m.refreshNotifications())
	}
	return tea.Batch(cmds...)
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	if field, ok := strings.CutPrefix(cmd, "sort "); ok {
		f, err := leaderboard.ParseField(field)
		if err != nil {
			m.statusMessage = err.Error()
			return nil
		}
		m.currentView = ViewLeaderboard
		m.ranking.SortBy(f)
		return m.ranking.LoadUsers()
	}

	switch cmd {
	case "recipes":
		m.currentView = ViewRecipes
		return m.recipes.LoadRecipes()
	case "leaderboard", "ranks":
		m.currentView = ViewLeaderboard
		return m.ranking.LoadUsers()
	case "awards":
		m.currentView = ViewAwards
		return m.awards.LoadAwards()
	case "journal":
		m.currentView = ViewJournal
		return m.journal.Load()
	case "profile", "me":
		return m.openProfile()
	case "login":
		return m.openAuth(authform.ModeLogin, "")
	case "google":
		return m.openAuth(authform.ModeOAuth, "")
	case "register":
		return m.openAuth(authform.ModeRegister, "")
	case "logout":
		if !m.deps.Session.LoggedIn() {
			return nil
		}
		m.busy = true
		return m.logout()
	case "new recipe", "recipe":
		return m.openRecipeForm()
	case "refresh":
		return m.refreshAll()
	case "prune":
		return m.pruneJournal()
	case "settings", "config":
		return m.openSettings()
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case "quit", "q":
		return tea.Quit
	default:
		m.statusMessage = fmt.Sprintf("Unknown command %q", cmd)
		return nil
	}
}

// describeAck renders an acknowledgement outcome for the status bar.
func describeAck(ev notify.AckEvent) string {
	name := fmt.Sprintf("award #%d", ev.Notification.AwardID)
	if e, err := model.LookupAward(ev.Notification.AwardID); err == nil {
		name = e.DisplayName
	}
	switch ev.Status {
	case model.AckAcknowledged:
		return name + " acknowledged"
	case model.AckFailed:
		return name + " not acknowledged"
	default:
		return fmt.Sprintf("%s %s", name, ev.Status)
	}
}
