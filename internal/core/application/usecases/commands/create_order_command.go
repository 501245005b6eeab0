package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired     = errors.New("order must contain at least one item")
	ErrDeclaredTotalMissing = errors.New("declared total must not be negative")
)

// ItemInput identifies a product and a quantity requested by the consumer.
// Farmer attribution and unit price are snapshotted from the product catalog
// by the handler, never trusted from the caller.
type ItemInput struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a consumer's request to place a new order.
// Encapsulates the requested items, payment method, delivery address and the
// total the consumer saw at checkout.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, consumerID, items, order.PaymentMethodCard, "123 Main Street", 2500)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	consumerID      kernel.UUID
	items           []ItemInput
	paymentMethod   order.PaymentMethod
	deliveryAddress string
	totalCents      int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates that all identifiers are valid, the item list is non-empty with
// positive quantities, the payment method is known, the delivery address is
// present and the declared total is non-negative.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	consumerID kernel.UUID,
	items []ItemInput,
	paymentMethod order.PaymentMethod,
	deliveryAddress string,
	totalCents int64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setConsumerID(consumerID),
		orderCommand.setItems(items),
		orderCommand.setPaymentMethod(paymentMethod),
		orderCommand.setDeliveryAddress(deliveryAddress),
		orderCommand.setTotalCents(totalCents),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ConsumerID returns the identifier of the consumer placing the order.
func (c CreateOrderCommand) ConsumerID() kernel.UUID {
	return c.consumerID
}

// Items returns the requested product quantities.
func (c CreateOrderCommand) Items() []ItemInput {
	out := make([]ItemInput, len(c.items))
	copy(out, c.items)
	return out
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// DeliveryAddress returns the delivery destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// TotalCents returns the order total the consumer saw at checkout, in cents.
func (c CreateOrderCommand) TotalCents() int64 {
	return c.totalCents
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setConsumerID(consumerID kernel.UUID) error {
	if err := consumerID.Validate(); err != nil {
		return err
	}

	c.consumerID = consumerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, maxItemQuantity)
		}
	}

	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setTotalCents(totalCents int64) error {
	if totalCents < 0 {
		return ErrDeclaredTotalMissing
	}

	c.totalCents = totalCents
	return nil
}

// maxItemQuantity caps a single line item. Catches fat-finger quantities
// before the ledger is touched.
const maxItemQuantity = 1_000_000
