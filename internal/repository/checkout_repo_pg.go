package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CheckoutRepository interface {
	List(ctx context.Context, filter domain.CheckoutFilter) ([]domain.Checkout, error)
	GetByID(ctx context.Context, id string) (*domain.Checkout, error)
	Insert(ctx context.Context, checkout *domain.Checkout) (domain.InsertResult, error)
	UpdateStatus(ctx context.Context, id string, status domain.CheckoutStatus) (domain.UpdateResult, error)
	Delete(ctx context.Context, id string) (domain.DeleteResult, error)
}

type PGCheckoutRepository struct {
	db *pgxpool.Pool
}

func NewCheckoutRepository(db *pgxpool.Pool) CheckoutRepository {
	return &PGCheckoutRepository{db: db}
}

const checkoutColumns = `id::text, customer_name, email, img, date, service, service_id, price::float8, status, created_at, updated_at`

func scanCheckout(row pgx.Row) (*domain.Checkout, error) {
	var c domain.Checkout
	if err := row.Scan(&c.ID, &c.CustomerName, &c.Email, &c.Img, &c.Date, &c.Service, &c.ServiceID, &c.Price, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the checkouts of filter.Email, or every checkout when the
// filter is empty.
func (r *PGCheckoutRepository) List(ctx context.Context, filter domain.CheckoutFilter) ([]domain.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkouts`
	var args []any
	if filter.Email != "" {
		query += ` WHERE email=$1`
		args = append(args, filter.Email)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError("list checkouts", err)
	}
	defer rows.Close()

	checkouts := make([]domain.Checkout, 0)
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, storeError("scan checkout", err)
		}
		checkouts = append(checkouts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list checkouts", err)
	}
	return checkouts, nil
}

func (r *PGCheckoutRepository) GetByID(ctx context.Context, id string) (*domain.Checkout, error) {
	c, err := scanCheckout(r.db.QueryRow(ctx, `SELECT `+checkoutColumns+` FROM checkouts WHERE id=$1`, id))
	if err != nil {
		if err = storeError("get checkout", err); errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *PGCheckoutRepository) Insert(ctx context.Context, c *domain.Checkout) (domain.InsertResult, error) {
	err := r.db.QueryRow(ctx, `INSERT INTO checkouts (id, customer_name, email, img, date, service, service_id, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		c.ID, c.CustomerName, c.Email, c.Img, c.Date, c.Service, c.ServiceID, c.Price, c.Status).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.InsertResult{}, storeError("insert checkout", err)
	}
	return domain.InsertResult{Acknowledged: true, InsertedID: c.ID}, nil
}

// UpdateStatus writes the status column only. An unknown id matches nothing
// and is not an error.
func (r *PGCheckoutRepository) UpdateStatus(ctx context.Context, id string, status domain.CheckoutStatus) (domain.UpdateResult, error) {
	var previous domain.CheckoutStatus
	err := r.db.QueryRow(ctx, `UPDATE checkouts AS c SET status=$1, updated_at=now()
		FROM (SELECT id, status FROM checkouts WHERE id=$2 FOR UPDATE) AS old
		WHERE c.id = old.id
		RETURNING old.status`, status, id).Scan(&previous)
	if err != nil {
		if err = storeError("update checkout", err); errors.Is(err, domain.ErrNotFound) {
			return domain.UpdateResult{Acknowledged: true}, nil
		}
		return domain.UpdateResult{}, err
	}

	result := domain.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if previous != status {
		result.ModifiedCount = 1
	}
	return result, nil
}

// Delete is idempotent: deleting an absent id reports zero deletions.
func (r *PGCheckoutRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM checkouts WHERE id=$1`, id)
	if err != nil {
		return domain.DeleteResult{}, storeError("delete checkout", err)
	}
	return domain.DeleteResult{Acknowledged: true, DeletedCount: cmd.RowsAffected()}, nil
}

var _ CheckoutRepository = (*PGCheckoutRepository)(nil)
