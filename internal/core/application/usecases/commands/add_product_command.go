package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAddProductCommandIsNotConstructed = errors.New(
	"AddProductCommand must be created via NewAddProductCommand constructor",
)

// AddProductCommand represents a farmer's request to list a product with an
// initial available quantity.
type AddProductCommand struct { //nolint:recvcheck //using for validation
	productID  kernel.UUID
	farmerID   kernel.UUID
	name       string
	priceCents int64
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddProductCommand creates a command to register a product.
func NewAddProductCommand(
	productID kernel.UUID,
	farmerID kernel.UUID,
	name string,
	priceCents int64,
	quantity int,
) (AddProductCommand, error) {
	productCommand := AddProductCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		productCommand.setProductID(productID),
		productCommand.setFarmerID(farmerID),
		productCommand.setName(name),
		productCommand.setPriceCents(priceCents),
		productCommand.setQuantity(quantity),
	); err != nil {
		return AddProductCommand{}, err
	}

	return productCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddProductCommandIsNotConstructed if validation fails.
func (c AddProductCommand) Validate() error {
	return c.guard.Validate(ErrAddProductCommandIsNotConstructed)
}

// ProductID returns the unique identifier for the product.
func (c AddProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// FarmerID returns the identifier of the farmer listing the product.
func (c AddProductCommand) FarmerID() kernel.UUID {
	return c.farmerID
}

// Name returns the product's display name.
func (c AddProductCommand) Name() string {
	return c.name
}

// PriceCents returns the unit price in cents.
func (c AddProductCommand) PriceCents() int64 {
	return c.priceCents
}

// Quantity returns the initial available quantity.
func (c AddProductCommand) Quantity() int {
	return c.quantity
}

func (c *AddProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *AddProductCommand) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}

	c.farmerID = farmerID
	return nil
}

func (c *AddProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *AddProductCommand) setPriceCents(priceCents int64) error {
	if priceCents < 0 {
		return errs.NewValueIsInvalidError("priceCents")
	}

	c.priceCents = priceCents
	return nil
}

func (c *AddProductCommand) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}
