package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order read model from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to retrieve one order with its items, history and
// termination record. Returns an object-not-found error when the order does
// not exist.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.Items, resp.TotalCents, err = h.readItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.History, err = h.readHistory(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var resp GetOrderQueryResponse
	var id, consumerID uuid.UUID
	var terminationReason sql.NullString
	var terminationActorID uuid.NullUUID
	var terminatedAt, deliveredAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			consumer_id,
			status,
			payment_status,
			delivery_address,
			termination_reason,
			termination_actor_id,
			terminated_at,
			delivered_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&consumerID,
		&resp.Status,
		&resp.PaymentStatus,
		&resp.DeliveryAddress,
		&terminationReason,
		&terminationActorID,
		&terminatedAt,
		&deliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return resp, errs.NewObjectNotFoundError("orderID", orderID)
	}
	if err != nil {
		return resp, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return resp, err
	}
	if resp.ConsumerID, err = kernel.UUIDFromBytes(consumerID[:]); err != nil {
		return resp, err
	}

	if deliveredAt.Valid {
		at := deliveredAt.Time
		resp.DeliveredAt = &at
	}

	if terminationReason.Valid && terminationActorID.Valid && terminatedAt.Valid {
		actorID, idErr := kernel.UUIDFromBytes(terminationActorID.UUID[:])
		if idErr != nil {
			return resp, idErr
		}
		resp.Termination = &OrderTerminationView{
			Reason:    terminationReason.String,
			ActorID:   actorID,
			Timestamp: terminatedAt.Time,
		}
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readItems(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderItemView, int64, error) {
	items := make([]OrderItemView, 0)
	var totalCents int64

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			farmer_id,
			quantity,
			unit_price_cents
		FROM order_items
		WHERE order_id = ?
		ORDER BY idx
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemView
		var productID, farmerID uuid.UUID

		if err = rows.Scan(&productID, &farmerID, &item.Quantity, &item.UnitPriceCents); err != nil {
			return nil, 0, err
		}

		if item.ProductID, err = kernel.UUIDFromBytes(productID[:]); err != nil {
			return nil, 0, err
		}
		if item.FarmerID, err = kernel.UUIDFromBytes(farmerID[:]); err != nil {
			return nil, 0, err
		}

		totalCents += int64(item.Quantity) * item.UnitPriceCents
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, totalCents, nil
}

func (h GetOrderQueryHandler) readHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderHistoryView, error) {
	history := make([]OrderHistoryView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			actor_id,
			actor_role,
			occurred_at,
			reason
		FROM order_history
		WHERE order_id = ?
		ORDER BY seq
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry OrderHistoryView
		var actorID uuid.UUID
		var occurredAt time.Time

		if err = rows.Scan(&entry.Status, &actorID, &entry.ActorRole, &occurredAt, &entry.Reason); err != nil {
			return nil, err
		}

		if entry.ActorID, err = kernel.UUIDFromBytes(actorID[:]); err != nil {
			return nil, err
		}
		entry.Timestamp = occurredAt
		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
