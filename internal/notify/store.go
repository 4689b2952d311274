package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/api"
	"github.com/nhle/munchie/internal/model"
)

// Loader fetches a user's unseen notifications.
type Loader interface {
	ListNotifications(ctx context.Context, userID int) ([]model.Notification, error)
}

// Store holds the current session's notification sequence. Each Load
// replaces the sequence wholesale.
type Store struct {
	mu     sync.RWMutex
	loader Loader
	log    logrus.FieldLogger
	items  []model.Notification
}

// NewStore creates a Store that fetches through loader.
func NewStore(loader Loader, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{loader: loader, log: log}
}

// Load fetches the notifications for userID in server order and replaces
// the held sequence. On failure the error is logged and returned, and the
// held sequence becomes empty.
func (s *Store) Load(ctx context.Context, userID int) ([]model.Notification, error) {
	if userID <= 0 {
		s.replace(nil)
		return nil, fmt.Errorf("loading notifications for user %d: %w", userID, api.ErrInvalidUserID)
	}

	items, err := s.loader.ListNotifications(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to load notifications")
		s.replace(nil)
		return nil, err
	}

	s.replace(items)
	return s.Notifications(), nil
}

// Notifications returns a copy of the held sequence.
func (s *Store) Notifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Clear drops the held sequence.
func (s *Store) Clear() {
	s.replace(nil)
}

func (s *Store) replace(items []model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]model.Notification, len(items))
	copy(s.items, items)
}
