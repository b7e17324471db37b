package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/adirao/pixelforge/internal/models"
)

// resetSpec fires once daily at midnight.
const resetSpec = "0 0 * * *"

// UserStore is the single store operation the reset job needs.
type UserStore interface {
	ResetAllCredits(ctx context.Context, value int) error
}

// Scheduler owns the recurring credit-reset job. A failed run is logged and
// never blocks the next firing.
type Scheduler struct {
	cron  *cron.Cron
	users UserStore
	log   *slog.Logger
}

func New(users UserStore, log *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), users: users, log: log}
}

// Start registers the daily reset and starts the timer.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(resetSpec, s.resetCredits); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the timer; a run already in flight is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) resetCredits() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.users.ResetAllCredits(ctx, models.DefaultCredits); err != nil {
		s.log.Error("credit reset failed", "error", err)
		return
	}
	s.log.Info("credits reset", "value", models.DefaultCredits)
}
