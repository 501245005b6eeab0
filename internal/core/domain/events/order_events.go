// Package events defines the lifecycle event payloads emitted after order
// mutations commit. Events carry a snapshot of the committed order so that
// real-time transports can render updates without a read-back.
package events

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/order"
)

// EventType names a committed order lifecycle event.
type EventType string

const (
	// OrderCreated is emitted once per successful order creation.
	OrderCreated EventType = "order_created"

	// OrderUpdated is emitted for every committed status transition.
	OrderUpdated EventType = "order_updated"

	// OrderCancelled is emitted when a consumer or admin terminates an order.
	OrderCancelled EventType = "order_cancelled"

	// OrderRejected is emitted when a farmer terminates an order.
	OrderRejected EventType = "order_rejected"
)

// ItemSnapshot is the wire shape of one order line.
type ItemSnapshot struct {
	ProductID      string `json:"product_id"`
	FarmerID       string `json:"farmer_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// OrderSnapshot is the wire shape of a committed order.
type OrderSnapshot struct {
	ID              string         `json:"id"`
	OrderNumber     string         `json:"order_number"`
	ConsumerID      string         `json:"consumer_id"`
	Status          string         `json:"status"`
	PaymentStatus   string         `json:"payment_status"`
	TotalCents      int64          `json:"total_cents"`
	DeliveryAddress string         `json:"delivery_address"`
	Items           []ItemSnapshot `json:"items"`
}

// OrderEvent is published to every subscriber topic derived from a lifecycle
// event, and to the order's own topic.
type OrderEvent struct {
	Type      EventType     `json:"event_type"`
	OrderID   string        `json:"order_id"`
	ActorID   string        `json:"actor_id"`
	OldStatus string        `json:"old_status"`
	NewStatus string        `json:"new_status"`
	Timestamp time.Time     `json:"timestamp"`
	Order     OrderSnapshot `json:"order"`
}

// NewOrderEvent builds the event payload for a committed mutation.
func NewOrderEvent(
	eventType EventType,
	o *order.Order,
	by actor.Actor,
	oldStatus, newStatus order.Status,
	at time.Time,
) OrderEvent {
	return OrderEvent{
		Type:      eventType,
		OrderID:   o.ID().String(),
		ActorID:   by.ID().String(),
		OldStatus: oldStatus.String(),
		NewStatus: newStatus.String(),
		Timestamp: at,
		Order:     snapshotOf(o),
	}
}

// OrderTopic returns the per-order topic name every event is published to,
// so any party observing a specific order receives updates without
// per-subscriber enumeration.
func OrderTopic(orderID string) string {
	return fmt.Sprintf("order_%s", orderID)
}

// SubscriberTopic returns the per-subscriber notification topic name.
func SubscriberTopic(subscriberID string) string {
	return fmt.Sprintf("notifications_%s", subscriberID)
}

func snapshotOf(o *order.Order) OrderSnapshot {
	items := make([]ItemSnapshot, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemSnapshot{
			ProductID:      item.ProductID().String(),
			FarmerID:       item.FarmerID().String(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	return OrderSnapshot{
		ID:              o.ID().String(),
		OrderNumber:     o.OrderNumber(),
		ConsumerID:      o.ConsumerID().String(),
		Status:          o.Status().String(),
		PaymentStatus:   o.PaymentStatus().String(),
		TotalCents:      o.TotalAmount().Cents(),
		DeliveryAddress: o.DeliveryAddress(),
		Items:           items,
	}
}
