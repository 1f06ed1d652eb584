// Package kafka publishes domain events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/ec-banking/backoffice/internal/core/domain"
	portssvc "github.com/ec-banking/backoffice/internal/core/ports/services"
)

// Publisher writes MovementPosted events to a Kafka topic, keyed by account
// id so that events for one account stay ordered within a partition.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a Publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// PublishMovementPosted implements portssvc.EventPublisher.
func (p *Publisher) PublishMovementPosted(ctx context.Context, event domain.MovementPosted) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AccountID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
