package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the catalog read/write contract. Order creation
// reads products to snapshot unit price and farmer attribution.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}

// InventoryLedger provides the atomic stock adjustment operations.
//
// Implementations must evaluate and apply Reserve as one atomic step per
// product (a conditional decrement at the storage layer), never as an
// application-level check-then-write: two concurrent reservations that both
// observe sufficient stock must not both succeed past the available quantity.
type InventoryLedger interface {
	// Reserve atomically decrements the product's available quantity.
	// Fails with product.ErrInsufficientStock when the available quantity is
	// lower than the requested amount; the quantity is never clamped and
	// never goes negative.
	Reserve(ctx context.Context, productID kernel.UUID, quantity int) error

	// Restore atomically increments the product's available quantity.
	// Unbounded above: it only ever returns stock that was provably reserved.
	Restore(ctx context.Context, productID kernel.UUID, quantity int) error
}
