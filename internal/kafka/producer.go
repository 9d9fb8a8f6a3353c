package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

var ErrNoBrokers = errors.New("kafka: no brokers configured")

// Producer writes JSON payloads to per-message topics through one shared
// writer.
type Producer struct {
	brokers []string
	writer  *kafka.Writer
	logger  *slog.Logger
}

func NewProducer(brokers []string, logger *slog.Logger) *Producer {
	return &Producer{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           20 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		logger: logger,
	}
}

// Publish keys the message so events of one checkout keep their order.
// CheckoutEvent payloads also carry their type as a header.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("kafka: encode payload for %s: %w", topic, err)
	}

	msg := kafka.Message{Topic: topic, Key: []byte(key), Value: value}
	if event, ok := payload.(CheckoutEvent); ok {
		msg.Headers = []kafka.Header{{Key: eventTypeHeader, Value: []byte(event.Type)}}
		msg.Time = event.OccurredAt
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write to %s: %w", topic, err)
	}
	p.logger.DebugContext(ctx, "event published", slog.String("topic", topic), slog.String("key", key))
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// CheckConnection dials the first reachable broker at startup.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return ErrNoBrokers
	}

	var lastErr error
	for _, broker := range p.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err
			continue
		}
		brokers, err := conn.Brokers()
		_ = conn.Close()
		if err != nil {
			lastErr = err
			continue
		}
		p.logger.InfoContext(ctx, "kafka reachable", slog.String("broker", broker), slog.Int("cluster_size", len(brokers)))
		return nil
	}
	return fmt.Errorf("kafka: no broker reachable: %w", lastErr)
}
