package catalog

import (
	"context"
	"testing"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSeed_InsertsMissingAndInvalidates(t *testing.T) {
	ctx := context.Background()
	repo := &MockServiceRepository{}
	cache := &MockCache{}

	existing := testServices[0]
	fresh := domain.Service{ServiceID: "02", Title: "Engine Repair", Price: 150}

	repo.On("GetByID", ctx, existing.ID).Return(&existing, nil).Once()
	repo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
		_, err := uuid.Parse(s.ID)
		return err == nil && s.Title == "Engine Repair"
	})).Return(nil).Once()
	cache.On("InvalidateServices", ctx).Return(nil).Once()

	inserted, err := Seed(ctx, repo, cache, []domain.Service{existing, fresh})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestSeed_NothingNewKeepsCache(t *testing.T) {
	ctx := context.Background()
	repo := &MockServiceRepository{}
	cache := &MockCache{}

	existing := testServices[0]
	repo.On("GetByID", ctx, existing.ID).Return(&existing, nil)

	inserted, err := Seed(ctx, repo, cache, []domain.Service{existing})

	require.NoError(t, err)
	assert.Zero(t, inserted)
	cache.AssertNotCalled(t, "InvalidateServices", mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeed_InvalidID(t *testing.T) {
	repo := &MockServiceRepository{}

	_, err := Seed(context.Background(), repo, nil, []domain.Service{{ID: "svc-1", ServiceID: "01"}})

	assert.ErrorIs(t, err, domain.ErrInvalidID)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSeed_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	repo := &MockServiceRepository{}

	repo.On("GetByID", ctx, mock.AnythingOfType("string")).Return(nil, domain.ErrStoreUnavailable)

	_, err := Seed(ctx, repo, nil, []domain.Service{{ServiceID: "01"}})

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
