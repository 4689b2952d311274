package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
)

// loginDoneMsg is sent after any of the sign-in flows finishes.
type loginDoneMsg struct {
	user *model.User
	err  error
}

// logoutDoneMsg is sent after the session has been cleared.
type logoutDoneMsg struct{ err error }

// recipeCreatedMsg is sent after a recipe was posted.
type recipeCreatedMsg struct {
	recipe *model.Recipe
	err    error
}

// reviewCreatedMsg is sent after a review was posted.
type reviewCreatedMsg struct {
	review *model.Review
	err    error
}

// recipeUpdatedMsg is sent after an edited recipe was saved. edited is the
// recipe as the form left it, shown when the backend echoes nothing.
type recipeUpdatedMsg struct {
	recipe *model.Recipe
	edited model.Recipe
	err    error
}

// reviewUpdatedMsg is sent after an edited review was saved.
type reviewUpdatedMsg struct {
	review *model.Review
	err    error
}

// notificationsRefreshedMsg is sent after a refresh triggered by the UI.
type notificationsRefreshedMsg struct{ err error }

// journalPrunedMsg reports how many journal rows were dropped.
type journalPrunedMsg struct {
	removed int64
	err     error
}

func (m Model) login(username, password string) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		user, err := accounts.Login(context.Background(), username, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m Model) oauthLogin(idToken string) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		user, err := accounts.OAuthLogin(context.Background(), idToken)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m Model) register(req api.RegisterRequest) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		user, err := accounts.Register(context.Background(), req)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		return logoutDoneMsg{err: accounts.Logout()}
	}
}

func (m Model) createRecipe(in api.RecipeInput) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		recipe, err := accounts.CreateRecipe(context.Background(), in)
		return recipeCreatedMsg{recipe: recipe, err: err}
	}
}

func (m Model) createReview(in api.ReviewInput) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		review, err := accounts.CreateReview(context.Background(), in)
		return reviewCreatedMsg{review: review, err: err}
	}
}

func (m Model) updateRecipe(id int, in api.RecipeInput, edited model.Recipe) tea.Cmd {
	accounts := m.deps.Accounts
	edited.Title = in.Title
	edited.TimeToCook = in.TimeToCook
	edited.Method = in.Method
	edited.VideoLink = in.VideoLink
	return func() tea.Msg {
		recipe, err := accounts.UpdateRecipe(context.Background(), id, in)
		return recipeUpdatedMsg{recipe: recipe, edited: edited, err: err}
	}
}

func (m Model) updateReview(id int, in api.ReviewInput) tea.Cmd {
	accounts := m.deps.Accounts
	return func() tea.Msg {
		review, err := accounts.UpdateReview(context.Background(), id, in)
		return reviewUpdatedMsg{review: review, err: err}
	}
}

// refreshNotifications reloads the signed-in user's notifications. The
// batch itself reaches the UI through the notifier's channel.
func (m Model) refreshNotifications() tea.Cmd {
	notifications := m.deps.Notifications
	userID := m.deps.Session.UserID()
	return func() tea.Msg {
		_, err := notifications.RefreshNotifications(context.Background(), userID)
		return notificationsRefreshedMsg{err: err}
	}
}

func (m Model) pruneJournal() tea.Cmd {
	journal := m.deps.Journal
	return func() tea.Msg {
		n, err := journal.PruneAcks(context.Background(), time.Now().Add(-JournalRetention))
		return journalPrunedMsg{removed: n, err: err}
	}
}

// friendlyError turns backend failures into messages fit for a form.
func friendlyError(err error) error {
	var fetchErr *api.FetchError
	switch {
	case api.IsAuthError(err):
		return errors.New("the server rejected your credentials")
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusForbidden:
		return errors.New("only the author can change this")
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusConflict:
		return errors.New("that username is taken")
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == 0:
		return errors.New("cannot reach the Munchie server")
	}
	return err
}
