// Package session holds the signed-in user's identity and access token.
// A Session is created once at startup and passed to the components that
// need credentials; nothing reads the token from global state.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/nhle/munchie/internal/model"
)

// Session is the explicit authentication context of the running client.
type Session struct {
	mu    sync.RWMutex
	vault Vault
	log   logrus.FieldLogger
	now   func() time.Time

	token     string
	userID    int
	username  string
	user      *model.User
	expiresAt time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// Load restores a session from the vault. A missing or expired token yields
// an empty session; expired credentials are removed from the vault.
func Load(vault Vault, opts ...Option) (*Session, error) {
	s := &Session{
		vault: vault,
		log:   logrus.StandardLogger(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	token, err := vault.Get(keyAccessToken)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	exp, err := expiryOf(token)
	if err != nil {
		s.log.WithError(err).Warn("stored access token is unreadable, discarding")
		return s, s.clearVault()
	}
	if !exp.IsZero() && !s.now().Before(exp) {
		s.log.WithField("expired_at", exp).Info("stored access token expired, discarding")
		return s, s.clearVault()
	}

	s.token = token
	s.expiresAt = exp
	s.username, _ = vault.Get(keyUsername)
	if raw, err := vault.Get(keyUserID); err == nil {
		if id, convErr := strconv.Atoi(raw); convErr == nil {
			s.userID = id
		}
	}

	return s, nil
}

// Token returns the access token, or "" when signed out or expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.expiredLocked() {
		return ""
	}
	return s.token
}

// UserID returns the signed-in user's id, or 0 when signed out.
func (s *Session) UserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Username returns the signed-in user's name, or "" when signed out.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// User returns a copy of the cached profile, if one was fetched.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// ExpiresAt returns the token's exp claim. The second result is false when
// the token carries no expiry or there is no token.
func (s *Session) ExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// LoggedIn reports whether a usable token is held.
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// Save stores a freshly issued token together with the user it belongs to,
// both in memory and in the vault.
func (s *Session) Save(token string, user model.User) error {
	exp, err := expiryOf(token)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if err := s.vault.Set(keyAccessToken, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := s.vault.Set(keyUserID, strconv.Itoa(user.ID)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if err := s.vault.Set(keyUsername, user.Username); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.expiresAt = exp
	s.userID = user.ID
	s.username = user.Username
	u := user
	s.user = &u
	return nil
}

// SetUser replaces the cached profile without touching the token.
func (s *Session) SetUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.user = &u
	s.userID = user.ID
	s.username = user.Username
}

// Clear signs out: the in-memory state is reset and the vault entries are
// removed.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.userID = 0
	s.username = ""
	s.user = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	return s.clearVault()
}

func (s *Session) clearVault() error {
	for _, key := range []string{keyAccessToken, keyUserID, keyUsername} {
		if err := s.vault.Delete(key); err != nil {
			return fmt.Errorf("clearing session: %w", err)
		}
	}
	return nil
}

func (s *Session) expiredLocked() bool {
	return !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt)
}

// expiryOf reads the exp claim without verifying the signature; the backend
// remains the authority on validity.
func expiryOf(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing access token: %w", err)
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("reading token expiry: %w", err)
	}
	if exp == nil {
		return time.Time{}, nil
	}
	return exp.Time, nil
}
