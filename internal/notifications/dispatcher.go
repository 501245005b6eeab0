// Package notifications fans committed order lifecycle events out to the
// interested parties over the event publisher. Delivery is best-effort and
// at-most-once: a failed publish is logged and counted, never retried and
// never surfaced to the command that produced the event.
package notifications

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/events"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// publishTimeout bounds a single fan-out pass. The pass runs detached from
// the request, so the timeout is the only thing that stops it on a dead broker.
const publishTimeout = 10 * time.Second

var notificationFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "fulfillment_notification_failures_total",
	Help: "Number of order event publishes that failed and were dropped.",
})

// Dispatcher implements the command layer's EventNotifier. For every event it
// resolves the subscriber set, then publishes the payload to each subscriber's
// notification topic and to the order's own topic in a background goroutine.
type Dispatcher struct {
	publisher ports.EventPublisher
	resolver  services.RecipientResolver
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher instance.
func NewDispatcher(publisher ports.EventPublisher, resolver services.RecipientResolver, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		resolver:  resolver,
		logger:    logger.With("component", "notifications_dispatcher"),
	}
}

// OrderCreated announces a freshly committed order to its supplying farmers.
func (d *Dispatcher) OrderCreated(o *order.Order, by actor.Actor, at time.Time) {
	event := events.NewOrderEvent(events.OrderCreated, o, by, o.Status(), o.Status(), at)
	d.dispatch(event, d.resolver.Farmers(o, by.ID()))
}

// OrderUpdated announces a committed status transition to all participants
// other than the actor who triggered it.
func (d *Dispatcher) OrderUpdated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time) {
	event := events.NewOrderEvent(events.OrderUpdated, o, by, oldStatus, o.Status(), at)
	d.dispatch(event, d.resolver.Participants(o, by.ID()))
}

// OrderTerminated announces a committed cancellation or rejection to all
// participants other than the actor who triggered it. The event type follows
// the terminal status the order landed in.
func (d *Dispatcher) OrderTerminated(o *order.Order, by actor.Actor, oldStatus order.Status, at time.Time) {
	eventType := events.OrderCancelled
	if o.Status() == order.StatusRejected {
		eventType = events.OrderRejected
	}

	event := events.NewOrderEvent(eventType, o, by, oldStatus, o.Status(), at)
	d.dispatch(event, d.resolver.Participants(o, by.ID()))
}

// Wait blocks until all in-flight fan-out passes have finished. Called on
// shutdown so pending notifications get their chance before the publisher
// closes.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(event events.OrderEvent, recipients []kernel.UUID) {
	topics := make([]string, 0, len(recipients)+1)
	for _, recipient := range recipients {
		topics = append(topics, events.SubscriberTopic(recipient.String()))
	}
	topics = append(topics, events.OrderTopic(event.OrderID))

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		for _, topic := range topics {
			if err := d.publisher.Publish(ctx, topic, event); err != nil {
				notificationFailures.Inc()
				d.logger.ErrorContext(ctx, "Failed to publish order event",
					"topic", topic,
					"event_type", string(event.Type),
					"order_id", event.OrderID,
					"error", err)
			}
		}
	}()
}
