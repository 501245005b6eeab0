package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// restorationBatchLimit caps how many pending restorations one sweep drains.
const restorationBatchLimit = 100

// StockRestorationJob retries pending stock restorations on a schedule.
// Restorations are normally applied right after an order terminates; this job
// picks up the ones that failed on the first attempt.
type StockRestorationJob struct {
	handler commands.RestorePendingStockCommandHandler
	cron    *cron.Cron
	spec    string
	logger  *slog.Logger
}

// NewStockRestorationJob creates a new job for retrying stock restorations.
// The spec is a standard cron expression with a seconds field, e.g.
// "*/30 * * * * *" for every thirty seconds.
func NewStockRestorationJob(handler commands.RestorePendingStockCommandHandler, spec string, logger *slog.Logger) *StockRestorationJob {
	return &StockRestorationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		logger:  logger.With("component", "stock_restoration_job"),
	}
}

// Start begins the stock restoration retry job on its schedule.
func (j *StockRestorationJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd, err := commands.NewRestorePendingStockCommand(restorationBatchLimit)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build restoration command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stock restoration sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stock restoration job started", "schedule", j.spec)
	return nil
}

// Stop stops the stock restoration job.
func (j *StockRestorationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stock restoration job stopped")
}
