// Package events publishes order lifecycle events to kafka. Publishing is
// best-effort: the lifecycle engine logs failures and never fails an intent
// because of the stream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quickbite/order-service/internal/config"
	"github.com/quickbite/order-service/internal/entities"

	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewKafkaPublisher(logger *slog.Logger, cfg config.Kafka) *KafkaPublisher {
	return &KafkaPublisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entities.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// keyed by order id so one order's events stay in one partition
	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	p.logger.Debug("event published",
		slog.String("order_id", event.OrderID),
		slog.String("type", event.Type),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entities.OrderEvent) error { return nil }
