// Package sweep periodically purges join-requests that outlived the
// retention window. Age is checked on every tick, so a request created at
// any moment expires once it is old enough, regardless of when ticks fall.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Dardva/Bot-for-remind/bot/service"
	"github.com/Dardva/Bot-for-remind/core/logger"
)

const (
	// DefaultSchedule runs the purge at the top of every hour.
	DefaultSchedule = "0 * * * *"
	// DefaultRetention keeps an invitation pending for a day.
	DefaultRetention = 24 * time.Hour
)

// Sweeper drives the scheduled purge.
type Sweeper struct {
	cron      *cron.Cron
	requests  *service.RequestService
	retention time.Duration
}

// New validates the schedule and prepares the sweeper. Empty values fall
// back to the defaults.
func New(requests *service.RequestService, schedule string, retention time.Duration) (*Sweeper, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	s := &Sweeper{
		cron:      cron.New(),
		requests:  requests,
		retention: retention,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("sweep: bad schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins the schedule in the background.
func (s *Sweeper) Start() {
	s.cron.Start()
	logger.SWEEP.Info("sweep.started",
		slog.String("event", "start"),
		slog.Duration("retention", s.retention),
	)
}

// Stop halts the schedule and waits for a running pass to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	logger.SWEEP.Info("sweep.stopped",
		slog.String("event", "stop"),
	)
}

// RunOnce performs a single purge pass immediately.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	return s.requests.Purge(ctx, s.retention)
}

func (s *Sweeper) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		logger.SWEEP.LogAttrs(ctx, slog.LevelError, "sweep.failed",
			slog.String("err", err.Error()),
		)
		return
	}
	logger.SWEEP.LogAttrs(ctx, slog.LevelInfo, "sweep.tick",
		slog.String("event", "tick"),
		slog.Int64("purged", n),
	)
}
