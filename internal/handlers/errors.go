package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/kulewers/members-only/internal/middleware"
	"github.com/kulewers/members-only/internal/services"
)

// statusError carries an explicit HTTP status for an error.
type statusError struct {
	code int
	err  error
}

func (e *statusError) Error() string { return e.err.Error() }
func (e *statusError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return &statusError{code: http.StatusBadRequest, err: err}
}

func statusOf(err error) int {
	var (
		se *statusError
		re *middleware.RestoreError
	)
	switch {
	case errors.As(err, &re):
		return http.StatusInternalServerError
	case errors.As(err, &se):
		return se.code
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Fail is the single place a request ends with an error. It picks the status,
// logs server errors, and renders the error page. Details are only shown in dev.
func (v *Renderer) Fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err)
	}

	message := http.StatusText(code)
	detail := ""
	if v.Dev {
		detail = err.Error()
	}

	if _, ok := v.pages["error"]; !ok {
		http.Error(w, message, code)
		return
	}
	v.Render(w, r, code, "error", map[string]any{
		"Title":   message,
		"Status":  code,
		"Message": message,
		"Detail":  detail,
	})
}

// NotFound renders the 404 page for unmatched routes.
func (v *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	v.Fail(w, r, &statusError{code: http.StatusNotFound, err: fmt.Errorf("no route for %s", r.URL.Path)})
}

// MethodNotAllowed renders the 405 page.
func (v *Renderer) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	v.Fail(w, r, &statusError{code: http.StatusMethodNotAllowed, err: fmt.Errorf("%s not allowed on %s", r.Method, r.URL.Path)})
}
