package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// CheckoutEvent is published for every checkout mutation.
type CheckoutEvent struct {
	Type       string    `json:"type"`
	CheckoutID string    `json:"checkout_id"`
	Email      string    `json:"email"`
	Service    string    `json:"service,omitempty"`
	ServiceID  string    `json:"service_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventCheckoutCreated       = "checkout_created"
	EventCheckoutStatusUpdated = "checkout_status_updated"
	EventCheckoutDeleted       = "checkout_deleted"
)

const eventTypeHeader = "event-type"

// eventType reads the type header so consumers can route without decoding.
func eventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == eventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}

// DecodeCheckoutEvent parses a message published by Producer.
func DecodeCheckoutEvent(msg kafka.Message) (CheckoutEvent, error) {
	var event CheckoutEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return CheckoutEvent{}, fmt.Errorf("decode checkout event at offset %d: %w", msg.Offset, err)
	}
	if event.Type == "" {
		event.Type = eventType(msg)
	}
	return event, nil
}
