package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kulewers/members-only/internal/metrics"
	"github.com/kulewers/members-only/internal/models"
)

// jobTimeout bounds a single run so a slow database cannot pile up runs.
const jobTimeout = 30 * time.Second

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Start runs job once immediately and then on every tick of spec. The
// returned stop function waits for a running job to finish.
func Start(spec, name string, job Job) (stop func(), err error) {
	c := cron.New()

	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			slog.Error("scheduler: job failed", "job", name, "err", err)
			return
		}
		slog.Debug("scheduler: job done", "job", name, "duration", time.Since(start))
	}

	if _, err := c.AddFunc(spec, run); err != nil {
		return nil, err
	}

	// Initial run
	run()
	c.Start()

	return func() { <-c.Stop().Done() }, nil
}

// UserCounter reports users per membership status.
type UserCounter interface {
	CountByStatus(ctx context.Context) (map[models.MembershipStatus]int, error)
}

// PostCounter reports the number of stored posts.
type PostCounter interface {
	Count(ctx context.Context) (int, error)
}

// RefreshTotals returns a job that publishes forum totals to the gauges.
func RefreshTotals(users UserCounter, posts PostCounter) Job {
	return func(ctx context.Context) error {
		byStatus, err := users.CountByStatus(ctx)
		if err != nil {
			return err
		}
		n, err := posts.Count(ctx)
		if err != nil {
			return err
		}

		totals := make(map[string]int, len(byStatus))
		for status, count := range byStatus {
			totals[string(status)] = count
		}
		metrics.SetTotals(totals, n)
		return nil
	}
}
