// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// RestorationRepoFactory provides access to the restoration repository within a transaction.
	RestorationRepoFactory interface {
		RestorationRepository() ports.RestorationRepository
	}

	// LedgerFactory provides access to the inventory ledger within a transaction.
	LedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProductUoW manages transactions for product-only operations.
	ProductUoW interface {
		TxManager
		ProductRepoFactory
	}

	// ProductUoWFactory creates new product unit of work instances.
	ProductUoWFactory interface {
		Create() ProductUoW
	}

	// LedgerUoW manages transactions that only adjust inventory quantities.
	// Used by the stock restoration pass.
	LedgerUoW interface {
		TxManager
		LedgerFactory
		RestorationRepoFactory
	}

	// LedgerUoWFactory creates new ledger unit of work instances.
	LedgerUoWFactory interface {
		Create() LedgerUoW
	}

	// UoW manages transactions that span orders, products and restorations.
	// Used for commands that coordinate changes between multiple aggregate types.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   ledger := uow.InventoryLedger()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		RestorationRepoFactory
		LedgerFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// EventNotifier fans committed lifecycle events out to interested parties.
// Implementations must be fire-and-forget: a notification failure can never
// affect the outcome of the command that produced the event.
type EventNotifier interface {
	// OrderCreated announces a freshly committed order to its farmers.
	OrderCreated(o *order.Order, by actor.Actor, at time.Time)

	// OrderUpdated announces a committed status change to all participants
	// other than the actor who triggered it.
	OrderUpdated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time)

	// OrderTerminated announces a committed cancellation or rejection to all
	// participants other than the actor who triggered it.
	OrderTerminated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time)
}
