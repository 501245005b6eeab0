package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRestorePendingStockCommandIsNotConstructed = errors.New(
	"RestorePendingStockCommand must be created via NewRestorePendingStockCommand constructor",
)

// maxRestorationBatch bounds a single restoration pass so one drain cannot
// hold a transaction open indefinitely.
const maxRestorationBatch = 1000

// RestorePendingStockCommand represents a request to drain pending inventory
// restoration records and return the reserved quantities to availability.
type RestorePendingStockCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewRestorePendingStockCommand creates a command to process up to limit
// pending restoration records.
func NewRestorePendingStockCommand(limit int) (RestorePendingStockCommand, error) {
	restoreCommand := RestorePendingStockCommand{
		guard: guard.NewConstructorGuard(),
	}

	if limit <= 0 || limit > maxRestorationBatch {
		return RestorePendingStockCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxRestorationBatch)
	}

	restoreCommand.limit = limit
	return restoreCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRestorePendingStockCommandIsNotConstructed if validation fails.
func (c RestorePendingStockCommand) Validate() error {
	return c.guard.Validate(ErrRestorePendingStockCommandIsNotConstructed)
}

// Limit returns the maximum number of records to process in this pass.
func (c RestorePendingStockCommand) Limit() int {
	return c.limit
}
