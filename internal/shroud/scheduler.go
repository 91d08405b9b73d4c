package shroud

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSchedule reloads the configuration every 30 seconds.
const DefaultRefreshSchedule = "@every 30s"

// Scheduler reloads a Manager on a cron schedule.
// Used for property stores that cannot push change notifications.
type Scheduler struct {
	manager  *Manager
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewScheduler validates schedule and creates a stopped Scheduler.
// Accepts standard 5-field expressions and descriptors such as "@every 1m".
func NewScheduler(manager *Manager, schedule string) (*Scheduler, error) {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}

	return &Scheduler{
		manager:  manager,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "shroud.scheduler"),
	}, nil
}

// Run starts the schedule and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.reload(ctx) }); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("scheduling reload: %w", err)
	}
	s.cron.Start()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("shroud zone refresh scheduled", "schedule", s.schedule)

	<-ctx.Done()

	s.mu.Lock()
	stopCtx := s.cron.Stop()
	s.running = false
	s.mu.Unlock()

	// ждём завершения текущего reload
	<-stopCtx.Done()
	s.logger.Info("shroud zone refresh stopped")
	return nil
}

func (s *Scheduler) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.manager.Reload(ctx); err != nil {
		s.logger.Error("scheduled shroud zone reload failed", "error", err)
	}
}
