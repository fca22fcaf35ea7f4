package events

import (
	"context"
	"fmt"
	"strings"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/sportsrental/service-booking/internal/contracts"
	"github.com/sportsrental/service-booking/internal/platform/kafka"
)

// IntentSucceededHandler confirms the reservation behind a paid intent.
type IntentSucceededHandler interface {
	HandleIntentSucceeded(ctx context.Context, event contracts.PaymentIntentSucceededEvent) error
}

// PaymentEventConsumer listens to payment events and confirms reservations.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	handler  IntentSucceededHandler
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a new consumer for payment events.
func NewPaymentEventConsumer(
	brokers []string,
	groupID string,
	handler IntentSucceededHandler,
	logger *zap.Logger,
) *PaymentEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, contracts.TopicPaymentEvents, logger)
	return &PaymentEventConsumer{
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start begins consuming payment events. It blocks until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// handleMessage routes incoming Kafka messages to the appropriate handler.
// The topic also carries this service's own payment.intent.created events,
// which fall through to the default branch. Undecodable messages are
// returned as kafka.Poison; handler errors are returned as-is so the
// consumer retries them.
func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from payment topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return kafka.Poison(err)
	}

	c.logger.Info("received payment event",
		zap.String("type", cloudEvent.Type),
		zap.String("id", cloudEvent.ID),
	)

	switch {
	case strings.EqualFold(cloudEvent.Type, contracts.PaymentIntentSucceeded):
		return c.handleIntentSucceeded(ctx, cloudEvent)

	default:
		c.logger.Debug("ignoring unhandled payment event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *PaymentEventConsumer) handleIntentSucceeded(ctx context.Context, ce kafka.CloudEvent) error {
	var event contracts.PaymentIntentSucceededEvent
	if err := ce.ParseData(&event); err != nil {
		c.logger.Error("failed to parse PaymentIntentSucceededEvent data", zap.Error(err))
		return kafka.Poison(err)
	}
	if strings.TrimSpace(event.PaymentIntentID) == "" {
		return kafka.Poison(fmt.Errorf("%s event %s has no payment_intent_id", ce.Type, ce.ID))
	}

	return c.handler.HandleIntentSucceeded(ctx, event)
}

// Close closes the underlying Kafka consumer.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}
