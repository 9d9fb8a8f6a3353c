package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/kafka"
	"github.com/Domenick1991/cardoctor/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrEmailRequired  = errors.New("email is required")
	ErrStatusRequired = errors.New("status is required")
)

type CheckoutUseCase interface {
	List(ctx context.Context, email string) ([]domain.Checkout, error)
	Get(ctx context.Context, id string) (*domain.Checkout, error)
	Create(ctx context.Context, input CreateCheckoutInput) (domain.InsertResult, error)
	UpdateStatus(ctx context.Context, id string, status domain.CheckoutStatus) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PublishFailureRecorder interface {
	PublishFailure(topic string)
}

type CreateCheckoutInput struct {
	CustomerName string                `json:"customerName"`
	Email        string                `json:"email"`
	Img          string                `json:"img"`
	Date         string                `json:"date"`
	Service      string                `json:"service"`
	ServiceID    string                `json:"service_id"`
	Price        float64               `json:"price"`
	Status       domain.CheckoutStatus `json:"status"`
}

type CheckoutService struct {
	checkouts          repository.CheckoutRepository
	producer           Producer
	checkoutTopic      string
	notificationsTopic string
	failures           PublishFailureRecorder
	logger             *slog.Logger
	now                func() time.Time
}

type CheckoutServiceOption func(*CheckoutService)

func WithNotificationsTopic(topic string) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.notificationsTopic = topic
	}
}

func WithPublishFailureRecorder(r PublishFailureRecorder) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.failures = r
	}
}

func WithLogger(logger *slog.Logger) CheckoutServiceOption {
	return func(s *CheckoutService) {
		s.logger = logger
	}
}

// NewCheckoutService accepts a nil producer; events are then not published.
func NewCheckoutService(
	checkouts repository.CheckoutRepository,
	producer Producer,
	checkoutTopic string,
	opts ...CheckoutServiceOption,
) *CheckoutService {
	service := &CheckoutService{
		checkouts:     checkouts,
		producer:      producer,
		checkoutTopic: checkoutTopic,
		logger:        slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// List returns the checkouts owned by email. An empty email lists every
// checkout; callers decide whether that is allowed.
func (s *CheckoutService) List(ctx context.Context, email string) ([]domain.Checkout, error) {
	return s.checkouts.List(ctx, domain.CheckoutFilter{Email: email})
}

func (s *CheckoutService) Get(ctx context.Context, id string) (*domain.Checkout, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.checkouts.GetByID(ctx, id)
}

func (s *CheckoutService) Create(ctx context.Context, input CreateCheckoutInput) (domain.InsertResult, error) {
	if strings.TrimSpace(input.Email) == "" {
		return domain.InsertResult{}, ErrEmailRequired
	}

	status := input.Status
	if status == "" {
		status = domain.CheckoutStatusPending
	}

	checkout := &domain.Checkout{
		ID:           uuid.NewString(),
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Img:          input.Img,
		Date:         input.Date,
		Service:      input.Service,
		ServiceID:    input.ServiceID,
		Price:        input.Price,
		Status:       status,
	}

	result, err := s.checkouts.Insert(ctx, checkout)
	if err != nil {
		return domain.InsertResult{}, err
	}

	s.publish(ctx, kafka.CheckoutEvent{
		Type:       kafka.EventCheckoutCreated,
		CheckoutID: checkout.ID,
		Email:      checkout.Email,
		Service:    checkout.Service,
		ServiceID:  checkout.ServiceID,
		Status:     string(checkout.Status),
	})
	return result, nil
}

// UpdateStatus changes the status field only.
func (s *CheckoutService) UpdateStatus(ctx context.Context, id string, status domain.CheckoutStatus) (domain.UpdateResult, error) {
	if err := validateID(id); err != nil {
		return domain.UpdateResult{}, err
	}
	if strings.TrimSpace(string(status)) == "" {
		return domain.UpdateResult{}, ErrStatusRequired
	}

	result, err := s.checkouts.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if result.ModifiedCount > 0 {
		s.publishFor(ctx, kafka.EventCheckoutStatusUpdated, id, string(status))
	}
	return result, nil
}

// Delete is idempotent. A second delete of the same id reports zero
// deletions and publishes nothing.
func (s *CheckoutService) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	if err := validateID(id); err != nil {
		return domain.DeleteResult{}, err
	}

	var email string
	if s.producer != nil {
		// looked up before deletion so the notification has a recipient
		if current, err := s.checkouts.GetByID(ctx, id); err == nil && current != nil {
			email = current.Email
		}
	}

	result, err := s.checkouts.Delete(ctx, id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	if result.DeletedCount > 0 {
		s.publish(ctx, kafka.CheckoutEvent{
			Type:       kafka.EventCheckoutDeleted,
			CheckoutID: id,
			Email:      email,
		})
	}
	return result, nil
}

func (s *CheckoutService) publishFor(ctx context.Context, eventType, id, status string) {
	if s.producer == nil {
		return
	}
	event := kafka.CheckoutEvent{Type: eventType, CheckoutID: id, Status: status}
	if current, err := s.checkouts.GetByID(ctx, id); err == nil && current != nil {
		event.Email = current.Email
		event.Service = current.Service
		event.ServiceID = current.ServiceID
	}
	s.publish(ctx, event)
}

// publish never fails the request; the mutation is already committed.
func (s *CheckoutService) publish(ctx context.Context, event kafka.CheckoutEvent) {
	if s.producer == nil || s.checkoutTopic == "" {
		return
	}
	event.OccurredAt = s.now().UTC()

	topics := []string{s.checkoutTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, event.CheckoutID, event); err != nil {
			s.logger.WarnContext(ctx, "failed to publish checkout event",
				slog.String("type", event.Type),
				slog.String("checkout_id", event.CheckoutID),
				slog.String("topic", topic),
				slog.Any("error", err),
			)
			if s.failures != nil {
				s.failures.PublishFailure(topic)
			}
		}
	}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

var _ CheckoutUseCase = (*CheckoutService)(nil)
