package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Snapshots price and farmer attribution from the product catalog, reserves
// stock per item and persists the order in "pending" status.
//
// Stock is reserved through the inventory ledger one item at a time; when a
// later step fails, reservations already applied are compensated by restoring
// the same quantities, so a failed creation leaves availability unchanged.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, ledger, notifier, false, logger)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), consumerID, items, order.PaymentMethodCash, "456 Oak Avenue", 1200)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory          UoWFactory
	ledger              ports.InventoryLedger
	notifier            EventNotifier
	rejectTotalMismatch bool
	logger              *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// The ledger must not be bound to the unit of work's transaction: reservations
// are applied immediately so concurrent placements contend on live counts, and
// are compensated explicitly on failure.
//
// rejectTotalMismatch selects the policy for a declared total that differs
// from the computed one: reject the order, or accept it and log the mismatch.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	ledger ports.InventoryLedger,
	notifier EventNotifier,
	rejectTotalMismatch bool,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:          uowFactory,
		ledger:              ledger,
		notifier:            notifier,
		rejectTotalMismatch: rejectTotalMismatch,
		logger:              logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command.
// Validation failures and unknown products surface before any stock is
// touched. Insufficient stock on any item compensates reservations already
// applied and returns product.ErrInsufficientStock. On success the order is
// committed and farmers are notified asynchronously.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	consumer, err := actor.NewActor(cmd.ConsumerID(), actor.RoleConsumer)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items, err := h.snapshotItems(ctx, uow.ProductRepository(), cmd.Items())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	newOrder, err := order.NewOrder(
		cmd.OrderID(), "", cmd.ConsumerID(), items,
		cmd.PaymentMethod(), cmd.DeliveryAddress(), now,
	)
	if err != nil {
		return err
	}

	if err = h.checkDeclaredTotal(ctx, newOrder, cmd.TotalCents()); err != nil {
		return err
	}

	reserved, err := h.reserveItems(ctx, items)
	if err != nil {
		h.compensate(ctx, newOrder, reserved)
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		h.compensate(ctx, newOrder, reserved)
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		h.compensate(ctx, newOrder, reserved)
		return err
	}

	h.notifier.OrderCreated(newOrder, consumer, now)
	return nil
}

// snapshotItems resolves each requested product and freezes its current price
// and farmer attribution into an order item.
func (h *CreateOrderCommandHandler) snapshotItems(
	ctx context.Context,
	products ports.ProductRepository,
	inputs []ItemInput,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(inputs))
	for _, input := range inputs {
		p, err := products.Get(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(p.ID(), p.FarmerID(), input.Quantity, p.Price())
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

func (h *CreateOrderCommandHandler) checkDeclaredTotal(ctx context.Context, o *order.Order, declaredCents int64) error {
	computedCents := o.TotalAmount().Cents()
	if computedCents == declaredCents {
		return nil
	}

	if h.rejectTotalMismatch {
		return errs.NewValueIsInvalidError("totalAmount")
	}

	h.logger.WarnContext(ctx, "Declared order total does not match computed total",
		"order_id", o.ID().String(),
		"declared_cents", declaredCents,
		"computed_cents", computedCents,
	)
	return nil
}

// reserveItems decrements availability for each item in order. Returns the
// items whose reservation was applied, whether or not the last one failed.
func (h *CreateOrderCommandHandler) reserveItems(ctx context.Context, items []order.Item) ([]order.Item, error) {
	reserved := make([]order.Item, 0, len(items))
	for _, item := range items {
		if err := h.ledger.Reserve(ctx, item.ProductID(), item.Quantity()); err != nil {
			return reserved, err
		}

		reserved = append(reserved, item)
	}

	return reserved, nil
}

// compensate returns already-reserved quantities after a failed placement.
// Best effort: a restore that fails here is logged and abandoned, since no
// order referencing the reservation was committed.
func (h *CreateOrderCommandHandler) compensate(ctx context.Context, o *order.Order, reserved []order.Item) {
	for _, item := range reserved {
		if err := h.ledger.Restore(ctx, item.ProductID(), item.Quantity()); err != nil {
			h.logger.ErrorContext(ctx, "Failed to compensate reservation after aborted order placement",
				"order_id", o.ID().String(),
				"product_id", item.ProductID().String(),
				"quantity", item.Quantity(),
				"error", err,
			)
		}
	}
}
