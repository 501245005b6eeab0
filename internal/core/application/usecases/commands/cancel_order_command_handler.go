package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/product"
)

// restorationBatchSize caps the immediate post-cancellation restoration pass.
const restorationBatchSize = 100

// CancelOrderCommandHandler handles early order termination.
// The status change, its history entry, the termination record and the
// pending restoration records commit in one transaction; returning the
// reserved stock to availability and notifying participants then run as
// background tasks that are never awaited by the caller.
//
// A crash between the commit and the background pass loses nothing: the
// restoration records are durable and a scheduled job retries them.
type CancelOrderCommandHandler struct {
	uowFactory     UoWFactory
	restoreHandler RestorePendingStockCommandHandler
	notifier       EventNotifier
	logger         *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order termination.
func NewCancelOrderCommandHandler(
	uowFactory UoWFactory,
	restoreHandler RestorePendingStockCommandHandler,
	notifier EventNotifier,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:     uowFactory,
		restoreHandler: restoreHandler,
		notifier:       notifier,
		logger:         logger.With("component", "cancel_order_handler"),
	}
}

// Handle processes the termination command.
// The aggregate decides authorization (owner, attributed farmer, admin) and
// eligibility (pending, confirmed or processing). A farmer's termination
// becomes a rejection and restores only that farmer's items; any other
// initiator cancels the order and restores every item.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	now := time.Now().UTC()
	if err = aggregate.Terminate(cmd.By(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	items := aggregate.RestorableItems(cmd.By())
	restorations := make([]product.Restoration, 0, len(items))
	for _, item := range items {
		restorations = append(restorations, product.Restoration{
			OrderID:   aggregate.ID(),
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			CreatedAt: now,
		})
	}

	if len(restorations) > 0 {
		if err = uow.RestorationRepository().Add(ctx, restorations); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderTerminated(aggregate, cmd.By(), oldStatus, now)
	h.restoreInBackground(ctx, aggregate.ID().String())
	return nil
}

// restoreInBackground kicks off an immediate restoration pass so availability
// usually recovers within moments of the cancellation, without making the
// caller wait for it.
func (h *CancelOrderCommandHandler) restoreInBackground(ctx context.Context, orderID string) {
	restoreCmd, err := NewRestorePendingStockCommand(restorationBatchSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build restoration pass command", "error", err)
		return
	}

	bgCtx := context.WithoutCancel(ctx)
	go func() {
		if err := h.restoreHandler.Handle(bgCtx, restoreCmd); err != nil {
			h.logger.ErrorContext(bgCtx, "Post-cancellation restoration pass failed",
				"order_id", orderID,
				"error", err,
			)
		}
	}()
}
