package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	scheduledReleaseJob *ScheduledReleaseJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseHandler *commands.ReleaseScheduledOrdersCommandHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduledReleaseJob: NewScheduledReleaseJob(releaseHandler, m, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduledReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled release job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.scheduledReleaseJob.Stop()
}
