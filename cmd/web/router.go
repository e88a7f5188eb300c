package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kulewers/members-only/internal/auth"
	"github.com/kulewers/members-only/internal/config"
	"github.com/kulewers/members-only/internal/handlers"
	"github.com/kulewers/members-only/internal/middleware"
	"github.com/kulewers/members-only/internal/repo"
	"github.com/kulewers/members-only/internal/services"
)

// newRouter wires repos, services and handlers onto a chi router.
func newRouter(database *sql.DB, cfg config.Config) (http.Handler, error) {
	views, err := handlers.NewRenderer(cfg.Env == "dev")
	if err != nil {
		return nil, err
	}

	// Repos and services
	userService := services.NewUserService(repo.NewUserRepo(database))
	postService := services.NewPostService(repo.NewPostRepo(database))
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL(), cfg.TLSEnabled())

	authHandler := &handlers.AuthHandler{Users: userService, Sessions: sessions, Views: views}
	membershipHandler := &handlers.MembershipHandler{Users: userService, Views: views, SecretCode: cfg.MembershipSecretCode}
	postHandler := &handlers.PostHandler{Posts: postService, Views: views}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.Prometheus)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.NotFound(views.NotFound)
	r.MethodNotAllowed(views.MethodNotAllowed)

	// Health and metrics (no session)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(sessions, userService, views.Fail))

		// Public
		r.Get("/", postHandler.Index)
		r.Get("/sign-up", authHandler.SignUpForm)
		r.Get("/log-in", authHandler.LogInForm)
		r.Get("/membership", membershipHandler.Form)

		limiter := middleware.AuthRateLimiter()
		r.With(limiter.Middleware).Post("/sign-up", authHandler.SignUp)
		r.With(limiter.Middleware).Post("/log-in", authHandler.LogIn)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated)
			r.Get("/log-out", authHandler.LogOut)
			r.Post("/membership", membershipHandler.Upgrade)
			r.Get("/post/create", postHandler.CreateForm)
			r.Post("/post/create", postHandler.Create)
		})

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/post/delete/{id}", postHandler.DeleteConfirm)
			r.Post("/post/delete/{id}", postHandler.Delete)
		})
	})

	return r, nil
}
