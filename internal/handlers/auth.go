package handlers

import (
	"errors"
	"net/http"

	"github.com/kulewers/members-only/internal/auth"
	"github.com/kulewers/members-only/internal/metrics"
	"github.com/kulewers/members-only/internal/services"
	"github.com/kulewers/members-only/internal/validation"
)

const (
	msgUsernameTaken = "Username already taken"
	msgBadLogin      = "Incorrect username or password"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users    *services.UserService
	Sessions *auth.SessionManager
	Views    *Renderer
}

func (h *AuthHandler) signUpForm() *validation.Pipeline {
	return validation.New(
		validation.Field("username").Trim().
			MinLength(4, "Username must be at least 4 characters long").
			Unique(h.Users.UsernameExists, msgUsernameTaken).
			Escape(),
		validation.Field("password").Trim().
			MinLength(5, "Password must be at least 5 characters long").
			Escape(),
		validation.Field("passwordConfirmation").Trim().
			EqualsField("password", "Password confirmation does not match the password").
			Escape(),
	)
}

// logInForm applies the sign-up sanitizers so submitted credentials compare
// equal to what was stored.
var logInForm = validation.New(
	validation.Field("username").Trim().Escape(),
	validation.Field("password").Trim().Escape(),
)

// ==========================
// Sign Up
// ==========================
func (h *AuthHandler) SignUpForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "sign-up-form", map[string]any{"Title": "Sign up"})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Views.Fail(w, r, badRequest(err))
		return
	}

	res, err := h.signUpForm().Run(r.Context(), r.PostForm)
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	admin := r.PostForm.Get("admin") != ""
	if !res.OK() {
		metrics.RecordRejection("sign-up")
		h.renderSignUp(w, r, res.Get("username"), admin, res.Errors)
		return
	}

	_, err = h.Users.Register(r.Context(), res.Get("username"), res.Get("password"), admin)
	if errors.Is(err, services.ErrUsernameTaken) {
		metrics.RecordRejection("sign-up")
		h.renderSignUp(w, r, res.Get("username"), admin, []validation.FieldError{{Field: "username", Message: msgUsernameTaken}})
		return
	}
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderSignUp(w http.ResponseWriter, r *http.Request, username string, admin bool, errs []validation.FieldError) {
	h.Views.Render(w, r, http.StatusUnprocessableEntity, "sign-up-form", map[string]any{
		"Title":  "Sign up",
		"Form":   map[string]any{"username": username, "admin": admin},
		"Errors": errs,
	})
}

// ==========================
// Log In
// ==========================
func (h *AuthHandler) LogInForm(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, r, http.StatusOK, "log-in-form", map[string]any{"Title": "Log in"})
}

// LogIn verifies credentials and issues the session cookie. Unknown users and
// wrong passwords get the same response.
func (h *AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Views.Fail(w, r, badRequest(err))
		return
	}

	res, err := logInForm.Run(r.Context(), r.PostForm)
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	user, err := h.Users.Authenticate(r.Context(), res.Get("username"), res.Get("password"))
	var failure *services.AuthFailure
	if errors.As(err, &failure) {
		metrics.RecordLogin(string(failure.Reason))
		h.Views.Render(w, r, http.StatusUnauthorized, "log-in-form", map[string]any{
			"Title":  "Log in",
			"Form":   map[string]any{"username": res.Get("username")},
			"Errors": []validation.FieldError{{Field: "credentials", Message: msgBadLogin}},
		})
		return
	}
	if err != nil {
		h.Views.Fail(w, r, err)
		return
	}

	if err := h.Sessions.Issue(w, user.ID); err != nil {
		h.Views.Fail(w, r, err)
		return
	}
	metrics.RecordLogin("success")

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ==========================
// Log Out
// ==========================
func (h *AuthHandler) LogOut(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
