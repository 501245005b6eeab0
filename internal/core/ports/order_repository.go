// Package ports defines the contracts between the domain layer and
// infrastructure adapters, enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrVersionConflict is returned by Update when the order was modified
// concurrently: the stored version no longer matches the aggregate's version.
// The loser of the race observed a stale status precondition; callers retry
// the whole operation or surface a conflict, never silently overwrite.
var ErrVersionConflict = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Commits are linearized per order by the atomic versioned update, which is
// the only serialization point for concurrent transitions.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check. Returns ErrVersionConflict when a concurrent
	// update won the race. History entries are append-only: entries already
	// persisted are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, complete
	// with items, status history and termination record.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
