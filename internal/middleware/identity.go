package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/kulewers/members-only/internal/models"
	"github.com/kulewers/members-only/internal/services"
)

type key string

const userKey key = "current_user"

// SessionReader extracts the user id carried by a request's session and can
// expire a session that no longer resolves.
type SessionReader interface {
	UserID(r *http.Request) (string, bool)
	Clear(w http.ResponseWriter)
}

// UserResolver loads the user behind a session.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RestoreError is handed to the error responder when a signed session names
// a user that cannot be loaded. It always ends the request as a server error.
type RestoreError struct {
	UserID string
	Err    error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore session for user %s: %v", e.UserID, e.Err)
}

func (e *RestoreError) Unwrap() error { return e.Err }

// ErrorResponder writes the response for an error that ends a request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// Identity resolves the session on every request and stores the user on the
// request context. Requests without a valid session continue anonymously.
// A session whose user cannot be loaded is an error, not an anonymous request.
// When the user is gone the cookie is also expired, so the next request starts
// anonymous instead of failing until the token runs out.
func Identity(sessions SessionReader, users UserResolver, fail ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessions.UserID(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), id)
			if err != nil {
				if errors.Is(err, services.ErrNotFound) {
					sessions.Clear(w)
				}
				fail(w, r, &RestoreError{UserID: id, Err: err})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
