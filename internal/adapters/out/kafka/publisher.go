// Package kafka publishes order lifecycle events to per-subscriber and
// per-order topics.
package kafka

import (
	"context"
	"encoding/json"

	"fulfillment/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

// Publisher implements ports.EventPublisher on top of a shared kafka writer.
// Topics are chosen per message, so one writer serves every subscriber and
// order topic. Topics are auto-created on first publish because the
// subscriber set is open-ended.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher connected to the given brokers.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish sends one event to the given topic, keyed by order ID so updates
// for the same order preserve their relative order within a partition.
func (p *Publisher) Publish(ctx context.Context, topic string, event events.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.Timestamp,
	})
}

// Close flushes buffered messages and releases the writer's resources.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
