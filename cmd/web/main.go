package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kulewers/members-only/internal/config"
	"github.com/kulewers/members-only/internal/db"
	"github.com/kulewers/members-only/internal/repo"
	"github.com/kulewers/members-only/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	slog.SetDefault(newLogger(cfg))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Schema first, then the pool
	if err := db.Run(cfg.DSN()); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	database, err := db.Connect(ctx, cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	stopStats, err := scheduler.Start(cfg.StatsSchedule, "forum-totals",
		scheduler.RefreshTotals(repo.NewUserRepo(database), repo.NewPostRepo(database)))
	if err != nil {
		slog.Error("invalid STATS_SCHEDULE", "schedule", cfg.StatsSchedule, "err", err)
		os.Exit(1)
	}
	defer stopStats()

	router, err := newRouter(database, cfg)
	if err != nil {
		slog.Error("failed to build router", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.Env, "tls", cfg.TLSEnabled())
		if cfg.TLSEnabled() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
		}
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.Env == "dev" {
		opts.Level = slog.LevelDebug
	}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
