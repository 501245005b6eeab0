// Package jobs provides scheduled background tasks for the fulfillment
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order fulfillment.
//
// # Available Jobs
//
// 1. StockRestorationJob - Retries pending stock restorations left behind by
// order terminations whose immediate restoration pass failed
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(restoreStockHandler, "*/30 * * * * *", logger)
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
// The restoration job uses a configurable cron expression with a seconds
// field. The default "*/30 * * * * *" sweeps every thirty seconds, which keeps
// the retry lag short without hammering the database.
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Individual
// restorations that fail inside a sweep keep their pending status and are
// picked up again; the handler records the attempt count per row.
package jobs
