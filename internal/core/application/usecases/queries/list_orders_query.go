package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves order summaries visible to an actor.
// Consumers see their own orders, farmers see orders containing their items,
// admins see everything. An optional status filter narrows the result.
//
// Example:
//
//	query, err := NewListOrdersQuery(farmer, []order.Status{order.StatusPending})
//	if err != nil {
//	    return err
//	}
//
//	summaries, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	by       actor.Actor
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a query scoped to the given actor.
// statuses may be empty, meaning no status filter.
func NewListOrdersQuery(by actor.Actor, statuses []order.Status) (ListOrdersQuery, error) {
	if err := by.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	listQuery := ListOrdersQuery{
		by:    by,
		guard: guard.NewConstructorGuard(),
	}
	listQuery.statuses = make([]order.Status, len(statuses))
	copy(listQuery.statuses, statuses)

	return listQuery, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrListOrdersQueryIsNotConstructed if validation fails.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// By returns the actor the result set is scoped to.
func (q ListOrdersQuery) By() actor.Actor {
	return q.by
}

// Statuses returns the status filter, empty when unfiltered.
func (q ListOrdersQuery) Statuses() []order.Status {
	out := make([]order.Status, len(q.statuses))
	copy(out, q.statuses)
	return out
}

// ListOrdersQueryResponse is one order summary row.
type ListOrdersQueryResponse struct {
	ID            string
	OrderNumber   string
	ConsumerID    string
	Status        string
	PaymentStatus string
	TotalCents    int64
}
