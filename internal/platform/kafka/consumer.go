package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ErrPoison marks a message that can never be processed (undecodable
// envelope or payload). Poison messages are committed and skipped; every
// other handler error is retried.
var ErrPoison = errors.New("poison message")

// Poison wraps err so the consumer skips the message instead of retrying it.
func Poison(err error) error {
	return backoff.Permanent(fmt.Errorf("%w: %w", ErrPoison, err))
}

// HandlerFunc processes one message.
type HandlerFunc func(ctx context.Context, msg kafkago.Message) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer reads a single topic as part of a consumer group.
type Consumer struct {
	reader     messageReader
	topic      string
	logger     *zap.Logger
	newBackOff func() backoff.BackOff
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10e6,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		}),
		topic:      topic,
		logger:     logger,
		newBackOff: defaultBackOff,
	}
}

// defaultBackOff retries without an elapsed-time limit, capped at 30s between attempts.
func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0
	return b
}

// Consume blocks until ctx is cancelled. A message is committed only after
// the handler succeeds or reports it as poison. Other failures are retried
// with backoff, holding the partition; if ctx ends first the offset stays
// uncommitted and the message is redelivered to the next group member.
func (c *Consumer) Consume(ctx context.Context, handler HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch from %s: %w", c.topic, err)
		}

		err = backoff.RetryNotify(
			func() error { return handler(ctx, msg) },
			backoff.WithContext(c.newBackOff(), ctx),
			func(err error, wait time.Duration) {
				c.logger.Warn("message handler failed, retrying",
					zap.String("topic", msg.Topic),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Duration("retry_in", wait),
					zap.Error(err),
				)
			},
		)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if !errors.Is(err, ErrPoison) {
				return fmt.Errorf("handle %s offset %d: %w", c.topic, msg.Offset, err)
			}
			c.logger.Error("skipping poison message",
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit offset on %s: %w", c.topic, err)
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
