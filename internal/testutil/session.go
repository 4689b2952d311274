package testutil

import (
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nhle/munchie/internal/session"
)

// NewTestVault returns a vault backed by an in-memory keyring.
func NewTestVault(t *testing.T) *session.KeyringVault {
	t.Helper()
	return session.NewKeyringVault(keyring.NewArrayKeyring(nil))
}

// NewToken signs a throwaway JWT for username that expires at exp. A zero
// exp produces a token without an exp claim.
func NewToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": username}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

// NewTestSession returns an empty session over an in-memory vault.
func NewTestSession(t *testing.T) *session.Session {
	t.Helper()

	s, err := session.Load(NewTestVault(t))
	if err != nil {
		t.Fatalf("loading test session: %v", err)
	}
	return s
}
