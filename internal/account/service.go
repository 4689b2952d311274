// Package account implements the user-facing flows that change who is
// signed in or that can earn awards. Each successful flow ends with a
// notification refresh for the signed-in user.
package account

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
	"github.com/nhle/munchie/internal/session"
)

// Backend is the subset of the API client the flows need.
type Backend interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error)
	OAuthLogin(ctx context.Context, idToken string) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) error
	GetUserByUsername(ctx context.Context, token, username string) (*model.User, error)
	CreateRecipe(ctx context.Context, token string, in api.RecipeInput) (*model.Recipe, error)
	CreateReview(ctx context.Context, token string, in api.ReviewInput) (*model.Review, error)
	UpdateRecipe(ctx context.Context, token string, id int, in api.RecipeInput) (*model.Recipe, error)
	UpdateReview(ctx context.Context, token string, id int, in api.ReviewInput) (*model.Review, error)
}

// Refresher reloads award notifications.
type Refresher interface {
	RefreshNotifications(ctx context.Context, userID int) (model.Batch, error)
	Reset()
}

// Service runs account flows against the backend and keeps the session and
// notifications in step.
type Service struct {
	backend   Backend
	session   *session.Session
	refresher Refresher
	log       logrus.FieldLogger
}

// NewService creates an account Service.
func NewService(backend Backend, sess *session.Session, refresher Refresher, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{backend: backend, session: sess, refresher: refresher, log: log}
}

// Login signs in with a username and password.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, error) {
	resp, err := s.backend.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp.AccessToken, username)
}

// OAuthLogin signs in with a Google ID token.
func (s *Service) OAuthLogin(ctx context.Context, idToken string) (*model.User, error) {
	resp, err := s.backend.OAuthLogin(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, resp.AccessToken, resp.Username)
}

// Register creates an account and signs in with it.
func (s *Service) Register(ctx context.Context, req api.RegisterRequest) (*model.User, error) {
	if err := s.backend.Register(ctx, req); err != nil {
		return nil, err
	}
	return s.Login(ctx, req.Username, req.Password)
}

// Logout cancels pending acknowledgements, drops the notifications and
// forgets the session.
func (s *Service) Logout() error {
	s.refresher.Reset()
	if err := s.session.Clear(); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	s.log.Info("logged out")
	return nil
}

// CreateRecipe publishes a recipe as the signed-in user.
func (s *Service) CreateRecipe(ctx context.Context, in api.RecipeInput) (*model.Recipe, error) {
	token := s.session.Token()
	if token == "" {
		return nil, fmt.Errorf("creating recipe: %w", api.ErrAuthMissing)
	}
	if in.Username == "" {
		in.Username = s.session.Username()
	}

	recipe, err := s.backend.CreateRecipe(ctx, token, in)
	if err != nil {
		return nil, err
	}

	s.afterAwardableAction(ctx, token)
	return recipe, nil
}

// CreateReview posts a review as the signed-in user.
func (s *Service) CreateReview(ctx context.Context, in api.ReviewInput) (*model.Review, error) {
	token := s.session.Token()
	if token == "" {
		return nil, fmt.Errorf("creating review: %w", api.ErrAuthMissing)
	}
	if in.UserID == 0 {
		in.UserID = s.session.UserID()
	}

	review, err := s.backend.CreateReview(ctx, token, in)
	if err != nil {
		return nil, err
	}

	s.afterAwardableAction(ctx, token)
	return review, nil
}

// UpdateRecipe replaces one of the signed-in user's recipes.
func (s *Service) UpdateRecipe(ctx context.Context, id int, in api.RecipeInput) (*model.Recipe, error) {
	token := s.session.Token()
	if token == "" {
		return nil, fmt.Errorf("updating recipe: %w", api.ErrAuthMissing)
	}
	if in.Username == "" {
		in.Username = s.session.Username()
	}

	recipe, err := s.backend.UpdateRecipe(ctx, token, id, in)
	if err != nil {
		return nil, err
	}

	s.log.WithField("recipe_id", id).Info("recipe updated")
	s.afterAwardableAction(ctx, token)
	return recipe, nil
}

// UpdateReview replaces one of the signed-in user's reviews.
func (s *Service) UpdateReview(ctx context.Context, id int, in api.ReviewInput) (*model.Review, error) {
	token := s.session.Token()
	if token == "" {
		return nil, fmt.Errorf("updating review: %w", api.ErrAuthMissing)
	}
	if in.UserID == 0 {
		in.UserID = s.session.UserID()
	}

	review, err := s.backend.UpdateReview(ctx, token, id, in)
	if err != nil {
		return nil, err
	}

	s.log.WithField("review_id", id).Info("review updated")
	s.afterAwardableAction(ctx, token)
	return review, nil
}

// establish stores the session for username and refreshes notifications.
func (s *Service) establish(ctx context.Context, token, username string) (*model.User, error) {
	user, err := s.backend.GetUserByUsername(ctx, token, username)
	if err != nil {
		return nil, fmt.Errorf("loading profile after login: %w", err)
	}
	if err := s.session.Save(token, *user); err != nil {
		return nil, err
	}

	s.log.WithField("username", user.Username).Info("logged in")
	s.refresh(ctx, user.ID)
	return user, nil
}

// afterAwardableAction reloads the profile, since levels and awards may
// have changed, then refreshes notifications. Failures are logged only.
func (s *Service) afterAwardableAction(ctx context.Context, token string) {
	userID := s.session.UserID()

	if username := s.session.Username(); username != "" {
		user, err := s.backend.GetUserByUsername(ctx, token, username)
		if err != nil {
			s.log.WithError(err).Warn("failed to reload profile")
		} else {
			s.session.SetUser(*user)
			userID = user.ID
		}
	}

	s.refresh(ctx, userID)
}

func (s *Service) refresh(ctx context.Context, userID int) {
	if _, err := s.refresher.RefreshNotifications(ctx, userID); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("notification refresh failed")
	}
}
