package api

import (
	"errors"
	"fmt"
)

// ErrAuthMissing is returned when an operation needs an access token and
// none is present in the session.
var ErrAuthMissing = errors.New("access token missing")

// ErrInvalidUserID is returned for non-positive user ids.
var ErrInvalidUserID = errors.New("user id must be positive")

// ErrInvalidID is returned when a recipe or review id is not positive.
var ErrInvalidID = errors.New("id must be positive")

// FetchError reports a failed round trip: the transport failed, or the
// backend answered with a non-2xx status.
type FetchError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: status %d: %v", e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchError reports whether err (or any error in its chain) is a FetchError.
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// AuthError indicates that the backend rejected the access token.
// It is carried inside a FetchError when a 401 response is received.
type AuthError struct {
	Path    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.Path, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// IsAuthMissing reports whether err stems from a missing access token.
func IsAuthMissing(err error) bool {
	return errors.Is(err, ErrAuthMissing)
}
