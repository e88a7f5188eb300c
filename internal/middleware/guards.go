package middleware

import "net/http"

const (
	LoginPath = "/log-in"
	HomePath  = "/"
)

// RequireAuthenticated redirects anonymous requests to the login page.
// The wrapped handler only runs for authenticated users.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin redirects everyone except admins to the home page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := CurrentUser(r.Context())
		if user == nil || !user.Admin {
			http.Redirect(w, r, HomePath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
