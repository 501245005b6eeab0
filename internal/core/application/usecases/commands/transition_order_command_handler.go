package commands

import (
	"context"
	"time"
)

// TransitionOrderCommandHandler handles role-gated status changes.
// Loads the order, lets the aggregate decide whether the actor's role may
// perform the move from the current status, and persists the result with an
// optimistic version check.
//
// A denied transition returns order.ErrInvalidTransition and mutates nothing.
// A concurrent update of the same order surfaces as ports.ErrVersionConflict;
// the caller may retry against the fresh state.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   EventNotifier
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, notifier EventNotifier) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status transition command.
// On success the other order participants are notified asynchronously; the
// command's outcome never depends on notification delivery.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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
	if err = aggregate.TransitionTo(cmd.Target(), cmd.By(), cmd.Reason(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.OrderUpdated(aggregate, cmd.By(), oldStatus, now)
	return nil
}
