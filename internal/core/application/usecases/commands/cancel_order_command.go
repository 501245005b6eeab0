package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to terminate an order early.
// The resulting terminal status depends on who asks: a farmer produces a
// rejection, a consumer or admin produces a cancellation.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	by      actor.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel or reject an order.
// The reason is optional free text recorded on the termination record.
// Relationship authorization (owner, attributed farmer, admin) is decided by
// the aggregate against the loaded order, not here.
func NewCancelOrderCommand(orderID kernel.UUID, by actor.Actor, reason string) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setOrderID(orderID),
		cancelCommand.setBy(by),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cancelCommand.reason = reason
	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelOrderCommandIsNotConstructed if validation fails.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to terminate.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// By returns the actor requesting the termination.
func (c CancelOrderCommand) By() actor.Actor {
	return c.by
}

// Reason returns the free-form termination reason.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setBy(by actor.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}

	c.by = by
	return nil
}
