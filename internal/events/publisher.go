package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/platform/kafka"
)

type eventWriter interface {
	PublishEvent(ctx context.Context, topic string, ce kafka.CloudEvent) error
}

// KafkaPublisher wraps domain payloads in CloudEvents and writes them to the
// topic owning their event type.
type KafkaPublisher struct {
	writer eventWriter
	logger *zap.Logger
}

// NewKafkaPublisher creates a publisher on top of a shared producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: producer, logger: logger}
}

// Publish implements contracts.Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload contracts.Keyed) error {
	ce, err := kafka.NewCloudEvent(contracts.Source, eventType, payload)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	ce.Subject = payload.EventKey()

	topic := contracts.TopicFor(eventType)
	if err := p.writer.PublishEvent(ctx, topic, ce); err != nil {
		return err
	}

	p.logger.Debug("event published",
		zap.String("type", eventType),
		zap.String("topic", topic),
		zap.String("subject", ce.Subject),
	)
	return nil
}
