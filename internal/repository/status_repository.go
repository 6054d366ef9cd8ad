package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// StatusRepository manages the status lookup table.
type StatusRepository interface {
	Create(ctx context.Context, status *domain.Status) error
	Update(ctx context.Context, status *domain.Status) error
	GetByID(ctx context.Context, id string) (*domain.Status, error)
	GetByName(ctx context.Context, name string) (*domain.Status, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Status, error)
	First(ctx context.Context) (*domain.Status, error)
	Delete(ctx context.Context, id string) error
}

type statusRepository struct {
	q Querier
}

// NewStatusRepository builds the repository.
func NewStatusRepository(q Querier) StatusRepository {
	return &statusRepository{q: q}
}

func (r *statusRepository) Create(ctx context.Context, status *domain.Status) error {
	const query = `
        INSERT INTO statuses (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	return r.q.QueryRow(ctx, query, status.Name).
		Scan(&status.ID, &status.CreatedAt, &status.UpdatedAt)
}

func (r *statusRepository) Update(ctx context.Context, status *domain.Status) error {
	const query = `
        UPDATE statuses SET name=$1, updated_at=NOW()
        WHERE id=$2`
	cmd, err := r.q.Exec(ctx, query, status.Name, status.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) GetByID(ctx context.Context, id string) (*domain.Status, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM statuses WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *statusRepository) GetByName(ctx context.Context, name string) (*domain.Status, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM statuses WHERE name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *statusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM statuses WHERE name=$1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *statusRepository) List(ctx context.Context) ([]domain.Status, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM statuses ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Status
	for rows.Next() {
		var status domain.Status
		if err := rows.Scan(&status.ID, &status.Name, &status.CreatedAt, &status.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, status)
	}
	return result, rows.Err()
}

// First returns the oldest configured status. Ordering by creation time
// keeps the default-status fallback deterministic.
func (r *statusRepository) First(ctx context.Context) (*domain.Status, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM statuses ORDER BY created_at ASC, id ASC LIMIT 1`
	var status domain.Status
	if err := r.q.QueryRow(ctx, query).Scan(
		&status.ID,
		&status.Name,
		&status.CreatedAt,
		&status.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM statuses WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *statusRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Status, error) {
	var status domain.Status
	if err := r.q.QueryRow(ctx, query, arg).Scan(
		&status.ID,
		&status.Name,
		&status.CreatedAt,
		&status.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &status, nil
}
