package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	Create(ctx context.Context, service *domain.Service) error
}

type PGServiceRepository struct {
	db *pgxpool.Pool
}

func NewServiceRepository(db *pgxpool.Pool) ServiceRepository {
	return &PGServiceRepository{db: db}
}

const serviceColumns = `id::text, service_id, title, img, price::float8, description, facility, created_at, updated_at`

func (r *PGServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY service_id, created_at`)
	if err != nil {
		return nil, storeError("list services", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Title, &s.Img, &s.Price, &s.Description, &s.Facility, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, storeError("scan service", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list services", err)
	}
	return services, nil
}

// GetByID returns nil without an error when no service has the id.
func (r *PGServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	row := r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id=$1`, id)
	var s domain.Service
	if err := row.Scan(&s.ID, &s.ServiceID, &s.Title, &s.Img, &s.Price, &s.Description, &s.Facility, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err = storeError("get service", err); errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create is used by catalog seeding only; the HTTP API has no write path
// for services.
func (r *PGServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	facility := s.Facility
	if facility == nil {
		facility = []domain.Facility{}
	}
	err := r.db.QueryRow(ctx, `INSERT INTO services (id, service_id, title, img, price, description, facility)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`, s.ID, s.ServiceID, s.Title, s.Img, s.Price, s.Description, facility).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return storeError("create service", err)
	}
	return nil
}

var _ ServiceRepository = (*PGServiceRepository)(nil)
