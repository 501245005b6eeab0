// Package product provides the product aggregate owning the per-product
// inventory count. The quantity is only ever adjusted through the inventory
// ledger's atomic operations; the domain methods here express the same rules
// for in-memory use and validation.
package product

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory functions.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

	// ErrInsufficientStock is returned when a reservation asks for more than
	// the available quantity. Reservations fail rather than clamp.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a catalog entry owned by a farmer. Its available quantity is the
// inventory invariant: it never goes negative at any committed state.
type Product struct {
	// id is the unique identifier for the product
	id kernel.UUID

	// farmerID is the owning farmer, snapshotted into order items
	farmerID kernel.UUID

	// name is the display name
	name string

	// price is the current catalog unit price
	price kernel.Money

	// quantityAvailable is the reservable stock, always >= 0
	quantityAvailable int

	// isConstructed ensures the product was created via a constructor
	isConstructed bool
}

// NewProduct creates a product with validation.
func NewProduct(id, farmerID kernel.UUID, name string, price kernel.Money, quantityAvailable int) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setFarmerID(farmerID),
		p.setName(name),
		p.setPrice(price),
		p.setQuantityAvailable(quantityAvailable),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id, farmerID kernel.UUID, name string, price kernel.Money, quantityAvailable int) (*Product, error) {
	return NewProduct(id, farmerID, name, price, quantityAvailable)
}

// Validate ensures the Product instance was properly constructed.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// FarmerID returns the owning farmer's identifier.
func (p *Product) FarmerID() kernel.UUID {
	return p.farmerID
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog unit price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// QuantityAvailable returns the reservable stock.
func (p *Product) QuantityAvailable() int {
	return p.quantityAvailable
}

// Reserve decrements the available quantity by a positive amount.
// Fails with ErrInsufficientStock when not enough stock is available; the
// quantity is never clamped.
func (p *Product) Reserve(quantity int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if p.quantityAvailable < quantity {
		return fmt.Errorf("%w: %d available, %d requested", ErrInsufficientStock, p.quantityAvailable, quantity)
	}

	p.quantityAvailable -= quantity
	return nil
}

// Restore increments the available quantity by a positive amount.
// Restores are unbounded above because they only ever return stock that was
// provably reserved before.
func (p *Product) Restore(quantity int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	p.quantityAvailable += quantity
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}
	p.farmerID = farmerID
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) setQuantityAvailable(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantityAvailable is invalid", fmt.Errorf("%d is negative", quantity))
	}
	p.quantityAvailable = quantity
	return nil
}

// Restoration is a durable record of inventory that must be returned after an
// order termination. Rows are written in the same transaction as the status
// commit and processed by a background task, so a crash between commit and
// restore does not lose reserved stock.
type Restoration struct {
	ID        int64
	OrderID   kernel.UUID
	ProductID kernel.UUID
	Quantity  int
	Attempts  int
	CreatedAt time.Time
}
