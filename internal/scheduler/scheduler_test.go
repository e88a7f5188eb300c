package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kulewers/members-only/internal/metrics"
	"github.com/kulewers/members-only/internal/repo"
)

func TestStart_RunsImmediately(t *testing.T) {
	var runs atomic.Int32
	stop, err := Start("@every 1h", "count", func(context.Context) error {
		runs.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	stop()

	if got := runs.Load(); got != 1 {
		t.Errorf("runs: got %d, want 1", got)
	}
}

func TestStart_InvalidSpec(t *testing.T) {
	if _, err := Start("every now and then", "bad", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
}

func TestStart_JobErrorDoesNotStop(t *testing.T) {
	stop, err := Start("@every 1h", "failing", func(context.Context) error {
		return errors.New("database down")
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	stop()
}

func TestRefreshTotals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT membership_status, COUNT\(\*\) FROM users GROUP BY membership_status`).
		WillReturnRows(sqlmock.NewRows([]string{"membership_status", "count"}).AddRow("member", 3))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM posts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	job := RefreshTotals(repo.NewUserRepo(db), repo.NewPostRepo(db))
	if err := job(context.Background()); err != nil {
		t.Fatalf("job: %v", err)
	}

	if got := testutil.ToFloat64(metrics.Users.WithLabelValues("member")); got != 3 {
		t.Errorf("members gauge: got %v, want 3", got)
	}
	if got := testutil.ToFloat64(metrics.Users.WithLabelValues("guest")); got != 0 {
		t.Errorf("guests gauge: got %v, want 0", got)
	}
	if got := testutil.ToFloat64(metrics.Posts); got != 7 {
		t.Errorf("posts gauge: got %v, want 7", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
