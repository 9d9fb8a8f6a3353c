package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

type EventHandler func(ctx context.Context, event CheckoutEvent) error

type Consumer struct {
	reader *kafka.Reader
	logger *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			MinBytes:          1,
			MaxBytes:          1 << 20,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume runs until ctx is canceled, which is reported as a nil error.
// Undecodable messages are logged and skipped; a handler error stops the
// loop without committing that message.
func (c *Consumer) Consume(ctx context.Context, handle EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		if err := dispatch(ctx, msg, handle, c.logger); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handle EventHandler, logger *slog.Logger) error {
	event, err := DecodeCheckoutEvent(msg)
	if err != nil {
		logger.WarnContext(ctx, "skipping undecodable event",
			slog.String("topic", msg.Topic),
			slog.Int64("offset", msg.Offset),
			slog.Any("error", err),
		)
		return nil
	}
	return handle(ctx, event)
}
