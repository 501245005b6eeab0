package ports

import (
	"context"

	"fulfillment/internal/core/domain/events"
)

// EventPublisher sends order lifecycle events to a message broker topic.
// Delivery is best effort: callers must not let a publish failure affect the
// outcome of the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.OrderEvent) error
	Close() error
}
