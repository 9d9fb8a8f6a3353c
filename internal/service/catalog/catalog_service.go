package catalog

import (
	"context"
	"log/slog"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/repository"
	"github.com/google/uuid"
)

type CatalogUseCase interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

type Cache interface {
	GetServices(ctx context.Context) ([]domain.Service, error)
	SetServices(ctx context.Context, services []domain.Service) error
}

type LookupRecorder interface {
	CacheLookup(result string)
}

type CatalogService struct {
	repo    repository.ServiceRepository
	cache   Cache
	lookups LookupRecorder
	logger  *slog.Logger
}

type Option func(*CatalogService)

func WithLookupRecorder(r LookupRecorder) Option {
	return func(s *CatalogService) {
		s.lookups = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *CatalogService) {
		s.logger = logger
	}
}

// NewCatalogService accepts a nil cache; List then always reads the repository.
func NewCatalogService(repo repository.ServiceRepository, cache Cache, opts ...Option) *CatalogService {
	s := &CatalogService{repo: repo, cache: cache, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	if s.cache != nil {
		cached, err := s.cache.GetServices(ctx)
		switch {
		case err != nil:
			s.record("error")
			s.logger.WarnContext(ctx, "catalog cache read failed", slog.Any("error", err))
		case cached != nil:
			s.record("hit")
			return cached, nil
		default:
			s.record("miss")
		}
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetServices(ctx, services); err != nil {
			s.logger.WarnContext(ctx, "catalog cache write failed", slog.Any("error", err))
		}
	}
	return services, nil
}

// GetByID returns nil without an error when the entry does not exist.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) record(result string) {
	if s.lookups != nil {
		s.lookups.CacheLookup(result)
	}
}

var _ CatalogUseCase = (*CatalogService)(nil)
