package queries

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/actor"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves order summaries from the database.
// The result set is scoped by the actor's role: consumers to orders they
// placed, farmers to orders their items appear in, admins to all orders.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the query and returns summaries newest first.
func (h ListOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersQuery,
) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	conditions := make([]string, 0, 2)
	args := make([]any, 0, 2)

	switch query.By().Role() {
	case actor.RoleConsumer:
		conditions = append(conditions, "o.consumer_id = ?")
		args = append(args, query.By().ID().Bytes())
	case actor.RoleFarmer:
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM order_items fi WHERE fi.order_id = o.id AND fi.farmer_id = ?)")
		args = append(args, query.By().ID().Bytes())
	case actor.RoleAdmin, actor.RoleUnknown:
		// admins are unscoped; unknown roles never pass query validation
	}

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		conditions = append(conditions, "o.status = ANY(?)")
		args = append(args, pq.Array(names))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	summaries := make([]ListOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.consumer_id,
			o.status,
			o.payment_status,
			COALESCE(SUM(i.quantity * i.unit_price_cents), 0)
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		`+where+`
		GROUP BY o.id, o.order_number, o.consumer_id, o.status, o.payment_status
		ORDER BY o.order_number DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var summary ListOrdersQueryResponse
		var id, consumerID uuid.UUID

		err = rows.Scan(
			&id,
			&summary.OrderNumber,
			&consumerID,
			&summary.Status,
			&summary.PaymentStatus,
			&summary.TotalCents,
		)
		if err != nil {
			return nil, err
		}

		summary.ID = id.String()
		summary.ConsumerID = consumerID.String()
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
