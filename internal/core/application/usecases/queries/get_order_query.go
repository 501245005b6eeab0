// Package queries contains read-only operations against the database.
// Implements the Query side of the CQRS architecture: handlers read with raw
// SQL and return flat read models, bypassing the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its items, status history and
// termination record.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("Order %s is %s\n", view.OrderNumber, view.Status)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order by its identifier.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderItemView is one line of an order read model.
type OrderItemView struct {
	ProductID      kernel.UUID
	FarmerID       kernel.UUID
	Quantity       int
	UnitPriceCents int64
}

// OrderHistoryView is one recorded status change of an order.
type OrderHistoryView struct {
	Status    string
	ActorID   kernel.UUID
	ActorRole string
	Timestamp time.Time
	Reason    string
}

// OrderTerminationView describes why and by whom an order was terminated.
type OrderTerminationView struct {
	Reason    string
	ActorID   kernel.UUID
	Timestamp time.Time
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	OrderNumber     string
	ConsumerID      kernel.UUID
	Status          string
	PaymentStatus   string
	DeliveryAddress string
	TotalCents      int64
	DeliveredAt     *time.Time
	Items           []OrderItemView
	History         []OrderHistoryView
	Termination     *OrderTerminationView
}
