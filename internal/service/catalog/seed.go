package catalog

import (
	"context"
	"fmt"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/repository"
	"github.com/google/uuid"
)

type Invalidator interface {
	InvalidateServices(ctx context.Context) error
}

// Seed inserts the catalog entries that are not stored yet and reports how
// many were added. Entries without an id get a fresh one. The cached list
// is dropped when anything changed; cache may be nil.
func Seed(ctx context.Context, repo repository.ServiceRepository, cache Invalidator, services []domain.Service) (int, error) {
	inserted := 0
	for i := range services {
		s := services[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		} else if _, err := uuid.Parse(s.ID); err != nil {
			return inserted, fmt.Errorf("service %q: %w", s.ServiceID, domain.ErrInvalidID)
		}

		existing, err := repo.GetByID(ctx, s.ID)
		if err != nil {
			return inserted, err
		}
		if existing != nil {
			continue
		}
		if err := repo.Create(ctx, &s); err != nil {
			return inserted, err
		}
		inserted++
	}

	if inserted > 0 && cache != nil {
		if err := cache.InvalidateServices(ctx); err != nil {
			return inserted, fmt.Errorf("invalidate services cache: %w", err)
		}
	}
	return inserted, nil
}
