package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/kafka"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCheckoutRepository struct {
	mock.Mock
}

func (m *MockCheckoutRepository) List(ctx context.Context, filter domain.CheckoutFilter) ([]domain.Checkout, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) GetByID(ctx context.Context, id string) (*domain.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}

func (m *MockCheckoutRepository) Insert(ctx context.Context, checkout *domain.Checkout) (domain.InsertResult, error) {
	args := m.Called(ctx, checkout)
	return args.Get(0).(domain.InsertResult), args.Error(1)
}

func (m *MockCheckoutRepository) UpdateStatus(ctx context.Context, id string, status domain.CheckoutStatus) (domain.UpdateResult, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(domain.UpdateResult), args.Error(1)
}

func (m *MockCheckoutRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.DeleteResult), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type publishFailures []string

func (p *publishFailures) PublishFailure(topic string) { *p = append(*p, topic) }

const checkoutID = "3f6c2b9e-1d7a-4c8e-9b2f-0a5d6e7f8a91"

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e kafka.CheckoutEvent) bool { return e.Type == eventType })
}

func TestCheckoutService_List(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	service := NewCheckoutService(mockRepo, nil, "")
	ctx := context.Background()

	owned := []domain.Checkout{{ID: checkoutID, Email: "u@test.com"}}
	mockRepo.On("List", ctx, domain.CheckoutFilter{Email: "u@test.com"}).Return(owned, nil).Once()
	mockRepo.On("List", ctx, domain.CheckoutFilter{}).Return([]domain.Checkout{}, nil).Once()

	got, err := service.List(ctx, "u@test.com")
	assert.NoError(t, err)
	assert.Equal(t, owned, got)

	got, err = service.List(ctx, "")
	assert.NoError(t, err)
	assert.Empty(t, got)

	mockRepo.AssertExpectations(t)
}

func TestCheckoutService_Create_Success(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout", WithNotificationsTopic("notifications"))
	ctx := context.Background()

	input := CreateCheckoutInput{
		CustomerName: "U",
		Email:        "u@test.com",
		Service:      "Oil change",
		ServiceID:    "03",
		Price:        25,
		Date:         "2026-10-20",
	}

	var inserted *domain.Checkout
	mockRepo.On("Insert", ctx, mock.AnythingOfType("*domain.Checkout")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*domain.Checkout) }).
		Return(domain.InsertResult{Acknowledged: true, InsertedID: "generated"}, nil).Once()
	mockProducer.On("Publish", ctx, "checkout", mock.Anything, eventOfType(kafka.EventCheckoutCreated)).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", mock.Anything, eventOfType(kafka.EventCheckoutCreated)).Return(nil).Once()

	result, err := service.Create(ctx, input)

	assert.NoError(t, err)
	assert.True(t, result.Acknowledged)
	assert.Equal(t, "generated", result.InsertedID)
	if assert.NotNil(t, inserted) {
		_, parseErr := uuid.Parse(inserted.ID)
		assert.NoError(t, parseErr)
		assert.Equal(t, "u@test.com", inserted.Email)
		assert.Equal(t, domain.CheckoutStatusPending, inserted.Status)
		assert.Equal(t, 25.0, inserted.Price)
	}
	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestCheckoutService_Create_KeepsSuppliedStatus(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	service := NewCheckoutService(mockRepo, nil, "")
	ctx := context.Background()

	mockRepo.On("Insert", ctx, mock.MatchedBy(func(c *domain.Checkout) bool {
		return c.Status == domain.CheckoutStatusConfirmed
	})).Return(domain.InsertResult{Acknowledged: true}, nil).Once()

	_, err := service.Create(ctx, CreateCheckoutInput{Email: "u@test.com", Status: domain.CheckoutStatusConfirmed})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestCheckoutService_Create_RequiresEmail(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	service := NewCheckoutService(mockRepo, nil, "")

	for _, email := range []string{"", "   "} {
		_, err := service.Create(context.Background(), CreateCheckoutInput{Email: email})
		assert.ErrorIs(t, err, ErrEmailRequired)
	}
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCheckoutService_Create_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	failures := &publishFailures{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout", WithPublishFailureRecorder(failures))
	ctx := context.Background()

	mockRepo.On("Insert", ctx, mock.Anything).Return(domain.InsertResult{Acknowledged: true, InsertedID: "x"}, nil).Once()
	mockProducer.On("Publish", ctx, "checkout", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	result, err := service.Create(ctx, CreateCheckoutInput{Email: "u@test.com"})
	assert.NoError(t, err)
	assert.Equal(t, "x", result.InsertedID)
	assert.Equal(t, publishFailures{"checkout"}, *failures)
}

func TestCheckoutService_Create_StoreUnavailable(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout")
	ctx := context.Background()

	mockRepo.On("Insert", ctx, mock.Anything).Return(domain.InsertResult{}, domain.ErrStoreUnavailable).Once()

	_, err := service.Create(ctx, CreateCheckoutInput{Email: "u@test.com"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_UpdateStatus(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout")
	ctx := context.Background()

	mockRepo.On("UpdateStatus", ctx, checkoutID, domain.CheckoutStatusDone).
		Return(domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil).Once()
	mockRepo.On("GetByID", ctx, checkoutID).Return(&domain.Checkout{ID: checkoutID, Email: "u@test.com", Status: domain.CheckoutStatusDone}, nil).Once()
	mockProducer.On("Publish", ctx, "checkout", checkoutID, mock.MatchedBy(func(e kafka.CheckoutEvent) bool {
		return e.Type == kafka.EventCheckoutStatusUpdated && e.Email == "u@test.com" && e.Status == "done"
	})).Return(nil).Once()

	result, err := service.UpdateStatus(ctx, checkoutID, domain.CheckoutStatusDone)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ModifiedCount)
	mockRepo.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestCheckoutService_UpdateStatus_Miss(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout")
	ctx := context.Background()

	mockRepo.On("UpdateStatus", ctx, checkoutID, domain.CheckoutStatusDone).
		Return(domain.UpdateResult{Acknowledged: true}, nil).Once()

	result, err := service.UpdateStatus(ctx, checkoutID, domain.CheckoutStatusDone)
	assert.NoError(t, err)
	assert.Zero(t, result.MatchedCount)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_UpdateStatus_Validation(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	service := NewCheckoutService(mockRepo, nil, "")
	ctx := context.Background()

	_, err := service.UpdateStatus(ctx, "bad-id", domain.CheckoutStatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = service.UpdateStatus(ctx, checkoutID, "")
	assert.ErrorIs(t, err, ErrStatusRequired)

	mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_Delete_Idempotent(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	mockProducer := &MockProducer{}
	service := NewCheckoutService(mockRepo, mockProducer, "checkout")
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, checkoutID).Return(&domain.Checkout{ID: checkoutID, Email: "u@test.com"}, nil).Once()
	mockRepo.On("Delete", ctx, checkoutID).Return(domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil).Once()
	mockProducer.On("Publish", ctx, "checkout", checkoutID, mock.MatchedBy(func(e kafka.CheckoutEvent) bool {
		return e.Type == kafka.EventCheckoutDeleted && e.Email == "u@test.com"
	})).Return(nil).Once()

	result, err := service.Delete(ctx, checkoutID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.DeletedCount)

	mockRepo.On("GetByID", ctx, checkoutID).Return(nil, nil).Once()
	mockRepo.On("Delete", ctx, checkoutID).Return(domain.DeleteResult{Acknowledged: true}, nil).Once()

	result, err = service.Delete(ctx, checkoutID)
	assert.NoError(t, err)
	assert.Zero(t, result.DeletedCount)

	mockRepo.AssertExpectations(t)
	mockProducer.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCheckoutService_Get(t *testing.T) {
	mockRepo := &MockCheckoutRepository{}
	service := NewCheckoutService(mockRepo, nil, "")
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, checkoutID).Return(&domain.Checkout{ID: checkoutID}, nil).Once()

	got, err := service.Get(ctx, checkoutID)
	assert.NoError(t, err)
	assert.Equal(t, checkoutID, got.ID)

	_, err = service.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}
