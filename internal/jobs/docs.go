// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order workflow.
//
// # Available Jobs
//
// 1. ScheduledReleaseJob - Runs every minute to promote scheduled orders whose
// release time has passed into the active dispatch queue
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(releaseHandler, metrics, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The release job uses the cron expression "0 * * * * *" which fires at the
// top of every minute. Release times are stored with minute precision, so a
// finer schedule would only add load without promoting orders any earlier.
//
// # Error Handling
//
// - The release job logs every failure; a failed tick is retried naturally on
// the next minute because due orders stay in the scheduled state
// - Failed job starts will stop any already running jobs
package jobs
