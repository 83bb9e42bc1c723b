package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher triggers one dataset reload cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler re-fetches the dataset on a fixed interval. A failed cycle logs
// and waits for the next tick; the interval is the only retry mechanism.
type Scheduler struct {
	cron   *gocron.Scheduler
	logger *slog.Logger
}

// New creates a Scheduler that calls r.Refresh every interval, bounding each
// run with the given timeout.
func New(r Refresher, interval, timeout time.Duration, logger *slog.Logger) (*Scheduler, error) {
	cron := gocron.NewScheduler(time.UTC)

	// SingletonMode: a slow fetch must not overlap the next tick.
	_, err := cron.Every(interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := r.Refresh(ctx); err != nil {
			// Prior displayed state stays; the next tick retries.
			logger.Error("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: cron, logger: logger}, nil
}

// Start begins ticking in the background.
func (s *Scheduler) Start() {
	s.cron.StartAsync()
	s.logger.Info("refresh scheduler started")
}

// Stop halts the ticker and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
