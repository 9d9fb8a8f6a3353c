package email

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/cardoctor/internal/kafka"
)

// Sender delivers checkout notifications. Delivery is a structured log line
// until a mail provider is configured.
type Sender struct {
	logger *slog.Logger
}

func NewSender(logger *slog.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.CheckoutEvent) error {
	if event.Email == "" {
		s.logger.WarnContext(ctx, "checkout event without recipient", slog.String("checkout_id", event.CheckoutID))
		return nil
	}
	s.logger.InfoContext(ctx, "send email",
		slog.String("to", event.Email),
		slog.String("subject", Subject(event)),
		slog.String("checkout_id", event.CheckoutID),
	)
	return nil
}

func Subject(event kafka.CheckoutEvent) string {
	switch event.Type {
	case kafka.EventCheckoutCreated:
		return "Your booking for " + event.Service + " is received"
	case kafka.EventCheckoutStatusUpdated:
		return "Your booking is now " + event.Status
	case kafka.EventCheckoutDeleted:
		return "Your booking was cancelled"
	default:
		return "Booking update"
	}
}
