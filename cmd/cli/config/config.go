package config

import (
	"context"
	"database/sql"

	appconfig "github.com/kulewers/members-only/internal/config"
	"github.com/kulewers/members-only/internal/db"
)

// DSN returns the database URL the server would use, from the same
// environment variables.
func DSN() string {
	return appconfig.Load().DSN()
}

// OpenDB connects to the forum database. Tests replace it with a sqlmock pool.
var OpenDB = func(ctx context.Context) (*sql.DB, error) {
	cfg := appconfig.Load()
	return db.Connect(ctx, cfg.DSN(), 2, 1)
}
