package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
)

// monthlySchedule fires at midnight on the first of every month
const monthlySchedule = "0 0 1 * *"

// UsageReset zeroes every account's monthly validation counter on a schedule
type UsageReset struct {
	repo      account.Repository
	scheduler *cron.Cron
	logger    *logger.Logger
}

// NewUsageReset creates a new usage reset worker
func NewUsageReset(repo account.Repository, log *logger.Logger) *UsageReset {
	return &UsageReset{
		repo:      repo,
		scheduler: cron.New(),
		logger:    log,
	}
}

// Start schedules the monthly reset. It returns immediately; the scheduler
// runs on its own goroutine until Stop is called.
func (w *UsageReset) Start(ctx context.Context) error {
	_, err := w.scheduler.AddFunc(monthlySchedule, func() {
		w.Run(ctx)
	})
	if err != nil {
		return err
	}

	w.scheduler.Start()
	w.logger.Info("Monthly usage reset worker started")
	return nil
}

// Stop halts the scheduler, waiting for a running job to finish
func (w *UsageReset) Stop() {
	<-w.scheduler.Stop().Done()
	w.logger.Info("Monthly usage reset worker stopped")
}

// Run performs one reset pass
func (w *UsageReset) Run(ctx context.Context) {
	now := time.Now()
	affected, err := w.repo.ResetMonthlyUsage(ctx, now)
	if err != nil {
		w.logger.ErrorWithErr(err, "Monthly usage reset failed")
		return
	}

	w.logger.WithFields(map[string]interface{}{
		"accounts": affected,
		"at":       now.Format(time.RFC3339),
	}).Info("Monthly usage counters reset")
}
