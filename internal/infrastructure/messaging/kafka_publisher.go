package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jengacredit/loanbook/internal/domain/event"
	"github.com/jengacredit/loanbook/pkg/kafka"
)

// KafkaEventPublisher implements port.EventPublisher by writing domain
// events to a single Kafka topic, keyed by aggregate ID so every event of
// one loan or customer lands on the same partition in order.
type KafkaEventPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher targeting the given topic.
func NewKafkaEventPublisher(producer *kafka.Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish serializes and sends domain events in one batch.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
			},
		})
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	for _, evt := range events {
		p.logger.DebugContext(ctx, "published domain event",
			"event_type", evt.EventType(),
			"aggregate_id", evt.AggregateID(),
			"topic", p.topic,
		)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *KafkaEventPublisher) Close() error {
	return p.producer.Close()
}
