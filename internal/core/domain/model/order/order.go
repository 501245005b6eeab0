package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrInvalidTransition is returned when the requested status is not reachable
	// from the current status for the actor's role. No mutation occurs.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrNotAuthorized is returned when the actor has no relationship to the order:
	// a consumer who does not own it, or a farmer with no attributed items.
	ErrNotAuthorized = errors.New("actor has no relationship to the order")

	// ErrNotCancellable is returned when a cancel/reject request targets an order
	// outside the cancellable status set (pending, confirmed, processing).
	ErrNotCancellable = errors.New("order is not in a cancellable status")

	// ErrAlreadyTerminated guards the set-at-most-once termination record.
	ErrAlreadyTerminated = errors.New("order already has a termination record")
)

// HistoryEntry is one row of the append-only status audit trail.
// Entries are never mutated or truncated after being appended.
type HistoryEntry struct {
	Status    Status
	ActorID   kernel.UUID
	ActorRole actor.Role
	Timestamp time.Time
	Reason    string
}

// Termination records who ended an order and why. It is set at most once;
// an order is either cancelled or rejected, never both.
type Termination struct {
	Reason    string
	ActorID   kernel.UUID
	Timestamp time.Time
}

// Order represents a marketplace order. It is the aggregate root that manages
// the order lifecycle from creation by a consumer through fulfillment by
// farmers to a terminal state.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owning consumer
//   - Must have at least one valid item; item snapshots are immutable
//   - The total amount always equals the sum of the line totals
//   - Status transitions follow the role-gated table in the Status type
//   - The status history only grows; termination is recorded at most once
//   - Can only be created through NewOrder or RestoreOrder
//
// Orders are never physically deleted; cancelled, rejected and delivered are
// soft-terminal states.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the globally unique human-facing reference
	orderNumber string

	// consumerID is the owning consumer
	consumerID kernel.UUID

	// items are the immutable order lines with price snapshots
	items []Item

	// status is the current state in the fulfillment lifecycle
	status Status

	// paymentStatus is the independent payment axis
	paymentStatus PaymentStatus

	// deliveryAddress is where the order ships to
	deliveryAddress string

	// history is the append-only status audit trail
	history []HistoryEntry

	// termination is the set-at-most-once cancellation/rejection record
	termination *Termination

	// deliveredAt is stamped when the order reaches StatusDelivered
	deliveredAt *time.Time

	// version is the optimistic-concurrency token managed by the repository
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order for a consumer with validation.
//
// The order starts in StatusPending with a payment status derived from the
// payment method (cash starts pending, anything else starts paid) and an
// initial history entry attributed to the consumer. When orderNumber is
// empty a unique one is generated from the order id.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	consumerID kernel.UUID,
	items []Item,
	method PaymentMethod,
	deliveryAddress string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setConsumerID(consumerID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		orderNumber = generateOrderNumber(id)
	}
	o.orderNumber = orderNumber
	o.paymentStatus = method.InitialStatus()
	o.history = []HistoryEntry{{
		Status:    StatusPending,
		ActorID:   consumerID,
		ActorRole: actor.RoleConsumer,
		Timestamp: now,
		Reason:    "order created",
	}}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
// Stored state is validated the same way NewOrder validates fresh input,
// which protects the aggregate from corrupted rows.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	consumerID kernel.UUID,
	items []Item,
	status Status,
	paymentStatus PaymentStatus,
	deliveryAddress string,
	history []HistoryEntry,
	termination *Termination,
	deliveredAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setConsumerID(consumerID),
		o.setItems(items),
		o.setDeliveryAddress(deliveryAddress),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	o.orderNumber = orderNumber
	o.status = status
	o.paymentStatus = paymentStatus
	o.history = history
	o.termination = termination
	o.deliveredAt = deliveredAt
	o.version = version

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the globally unique human-facing reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// ConsumerID returns the owning consumer's identifier.
func (o *Order) ConsumerID() kernel.UUID {
	return o.consumerID
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// DeliveryAddress returns the shipping address.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// History returns a copy of the append-only status audit trail.
func (o *Order) History() []HistoryEntry {
	history := make([]HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// Termination returns the cancellation/rejection record.
// Returns nil while the order has not been terminated.
func (o *Order) Termination() *Termination {
	return o.termination
}

// DeliveredAt returns the delivery timestamp.
// Returns nil while the order has not been delivered.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// Version returns the optimistic-concurrency token.
func (o *Order) Version() int {
	return o.version
}

// TotalAmount returns the sum of all line totals.
// The items are validated at construction, so the sum is always defined.
func (o *Order) TotalAmount() kernel.Money {
	total, _ := kernel.NewMoney(0)
	for _, item := range o.items {
		line, err := item.LineTotal()
		if err != nil {
			continue
		}
		total, _ = total.Add(line)
	}
	return total
}

// FarmerIDs returns the distinct farmer identifiers across the order's items,
// in first-appearance order.
func (o *Order) FarmerIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(o.items))
	farmers := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		if _, ok := seen[item.FarmerID()]; ok {
			continue
		}
		seen[item.FarmerID()] = struct{}{}
		farmers = append(farmers, item.FarmerID())
	}
	return farmers
}

// HasFarmer reports whether at least one item is attributed to the farmer.
func (o *Order) HasFarmer(farmerID kernel.UUID) bool {
	for _, item := range o.items {
		if item.FarmerID().IsEqual(farmerID) {
			return true
		}
	}
	return false
}

// IsOwnedBy reports whether the consumer owns the order.
func (o *Order) IsOwnedBy(consumerID kernel.UUID) bool {
	return o.consumerID.IsEqual(consumerID)
}

// TransitionTo moves the order to the target status on behalf of an actor.
//
// The role-gated transition table decides whether the edge is allowed; a
// denied request fails with ErrInvalidTransition and leaves the order
// untouched. On approval the status changes and exactly one history entry is
// appended. Reaching StatusDelivered stamps the delivery timestamp.
func (o *Order) TransitionTo(target Status, by actor.Actor, reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(target, by.Role()) {
		return fmt.Errorf("%w: %s -> %s is not allowed for role %s",
			ErrInvalidTransition, o.status, target, by.Role())
	}

	o.status = target
	if target == StatusDelivered {
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	}
	o.appendHistory(target, by, reason, now)

	return nil
}

// Terminate applies the compound cancel/reject operation.
//
// Authorization is relationship-based: a consumer may act only on their own
// order, a farmer only on orders containing their items, an admin always.
// Only orders in the cancellable set (pending, confirmed, processing) are
// eligible; anything else fails with ErrNotCancellable. The resulting status
// is StatusRejected when a farmer initiates, StatusCancelled otherwise, and
// the termination record is set exactly once.
//
// Terminate mutates only the aggregate; inventory restoration for the
// reserved items is the caller's (asynchronous) responsibility, scoped by
// RestorableItems.
func (o *Order) Terminate(by actor.Actor, reason string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := by.Validate(); err != nil {
		return err
	}

	switch by.Role() {
	case actor.RoleConsumer:
		if !o.IsOwnedBy(by.ID()) {
			return fmt.Errorf("%w: consumer %s does not own the order", ErrNotAuthorized, by.ID())
		}
	case actor.RoleFarmer:
		if !o.HasFarmer(by.ID()) {
			return fmt.Errorf("%w: farmer %s has no items in the order", ErrNotAuthorized, by.ID())
		}
	case actor.RoleAdmin:
	default:
		return ErrNotAuthorized
	}

	if !o.status.IsCancellable() {
		return fmt.Errorf("%w: status is %s", ErrNotCancellable, o.status)
	}

	if o.termination != nil {
		return ErrAlreadyTerminated
	}

	target := StatusCancelled
	if by.Role() == actor.RoleFarmer {
		target = StatusRejected
	}

	o.status = target
	o.termination = &Termination{
		Reason:    reason,
		ActorID:   by.ID(),
		Timestamp: now,
	}
	o.appendHistory(target, by, reason, now)

	return nil
}

// RestorableItems returns the items whose reserved stock must be returned
// when the actor terminates the order: a farmer restores only their own
// attributed items, a consumer or admin restores every item.
func (o *Order) RestorableItems(by actor.Actor) []Item {
	if by.Role() != actor.RoleFarmer {
		return o.Items()
	}

	items := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		if item.FarmerID().IsEqual(by.ID()) {
			items = append(items, item)
		}
	}
	return items
}

func (o *Order) appendHistory(status Status, by actor.Actor, reason string, now time.Time) {
	o.history = append(o.history, HistoryEntry{
		Status:    status,
		ActorID:   by.ID(),
		ActorRole: by.Role(),
		Timestamp: now,
		Reason:    reason,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setConsumerID(consumerID kernel.UUID) error {
	if err := consumerID.Validate(); err != nil {
		return err
	}
	o.consumerID = consumerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order requires at least one item")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setDeliveryAddress(deliveryAddress string) error {
	if strings.TrimSpace(deliveryAddress) == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = deliveryAddress
	return nil
}

// generateOrderNumber derives a human-facing reference from the order id.
// The id is unique, so the derived number is too.
func generateOrderNumber(id kernel.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(compact[:12])
}
