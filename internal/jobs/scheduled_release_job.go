package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/metrics"

	"github.com/robfig/cron/v3"
)

// ScheduledReleaseJob promotes due scheduled orders into the active queue.
// Runs every minute so an order scheduled for 09:00 is visible to dispatchers
// within a minute of its release time.
type ScheduledReleaseJob struct {
	handler *commands.ReleaseScheduledOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewScheduledReleaseJob creates the job that releases scheduled orders.
// Uses ReleaseScheduledOrdersCommandHandler to promote every due order in a
// single transaction per tick.
func NewScheduledReleaseJob(
	handler *commands.ReleaseScheduledOrdersCommandHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *ScheduledReleaseJob {
	return &ScheduledReleaseJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "scheduled_release_job"),
		metrics: m,
	}
}

// Start begins the release job to run at the top of every minute.
func (j *ScheduledReleaseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReleaseScheduledOrdersCommand(time.Now())
		if err != nil {
			j.logger.ErrorContext(ctx, "Scheduled release job failed to build command", "error", err)
			return
		}

		released, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Scheduled release job failed", "error", err)
			return
		}

		if released > 0 {
			j.metrics.ObserveScheduledReleases(released)
			j.logger.InfoContext(ctx, "Released scheduled orders", "count", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled release job started (running every minute)")
	return nil
}

// Stop stops the release job.
func (j *ScheduledReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Scheduled release job stopped")
}
