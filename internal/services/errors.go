// Package services holds the forum's business operations. Handlers and the
// operator CLI call these; nothing here knows about HTTP.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a post or user id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned when the store rejects a duplicate username.
	ErrUsernameTaken = errors.New("username already taken")
)

// AuthReason says why a login was refused. It is for logs only; users see
// one generic message.
type AuthReason string

const (
	NoSuchUser    AuthReason = "no_such_user"
	WrongPassword AuthReason = "wrong_password"
)

// AuthFailure is returned by Authenticate when credentials do not match.
type AuthFailure struct {
	Reason AuthReason
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}
