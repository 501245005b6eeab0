package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/product"
)

// RestorationRepository defines the durable queue of pending inventory
// restorations. Rows are written in the same transaction as the order status
// commit and drained by a background task, so a crash between the commit and
// the actual stock adjustment does not lose reserved stock.
type RestorationRepository interface {
	// Add persists pending restoration records.
	Add(ctx context.Context, restorations []product.Restoration) error

	// GetPending retrieves up to limit unprocessed restoration records,
	// oldest first.
	GetPending(ctx context.Context, limit int) ([]product.Restoration, error)

	// MarkDone marks a restoration record as applied.
	MarkDone(ctx context.Context, id int64) error

	// MarkAttempt increments the attempt counter after a failed restore so
	// operators can spot records that keep failing.
	MarkAttempt(ctx context.Context, id int64) error
}
