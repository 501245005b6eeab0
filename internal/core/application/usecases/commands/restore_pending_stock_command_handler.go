package commands

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var stockRestorationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fulfillment_stock_restoration_failures_total",
	Help: "Number of pending stock restorations that failed to apply and will be retried.",
})

// RestorePendingStockCommandHandler drains the durable restoration queue.
// Each pending record is applied as an atomic increment on the product's
// availability and marked done; a record that fails to apply has its attempt
// counter bumped and is picked up again by the next pass.
//
// Runs in two places: immediately after a cancellation commits, and on a cron
// schedule that sweeps up records left behind by crashes or failed passes.
type RestorePendingStockCommandHandler struct {
	uowFactory LedgerUoWFactory
	logger     *slog.Logger
}

// NewRestorePendingStockCommandHandler creates a handler for restoration passes.
func NewRestorePendingStockCommandHandler(uowFactory LedgerUoWFactory, logger *slog.Logger) RestorePendingStockCommandHandler {
	return RestorePendingStockCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "restore_pending_stock_handler"),
	}
}

// Handle processes one restoration pass.
// Individual record failures are logged, counted and skipped; the pass itself
// only fails on transaction-level errors.
func (h *RestorePendingStockCommandHandler) Handle(ctx context.Context, cmd RestorePendingStockCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restorationRepo := uow.RestorationRepository()
	pending, err := restorationRepo.GetPending(ctx, cmd.Limit())
	if err != nil {
		return err
	}

	ledger := uow.InventoryLedger()
	for _, restoration := range pending {
		if err = ledger.Restore(ctx, restoration.ProductID, restoration.Quantity); err != nil {
			stockRestorationFailures.Inc()
			h.logger.ErrorContext(ctx, "Failed to restore reserved stock",
				"restoration_id", restoration.ID,
				"order_id", restoration.OrderID.String(),
				"product_id", restoration.ProductID.String(),
				"quantity", restoration.Quantity,
				"attempts", restoration.Attempts,
				"error", err,
			)

			if err = restorationRepo.MarkAttempt(ctx, restoration.ID); err != nil {
				return err
			}
			continue
		}

		if err = restorationRepo.MarkDone(ctx, restoration.ID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
