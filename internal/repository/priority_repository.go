package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// PriorityRepository manages the priority lookup table.
type PriorityRepository interface {
	Create(ctx context.Context, priority *domain.Priority) error
	Update(ctx context.Context, priority *domain.Priority) error
	GetByID(ctx context.Context, id string) (*domain.Priority, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Priority, error)
	Delete(ctx context.Context, id string) error
}

type priorityRepository struct {
	q Querier
}

// NewPriorityRepository builds the repository.
func NewPriorityRepository(q Querier) PriorityRepository {
	return &priorityRepository{q: q}
}

func (r *priorityRepository) Create(ctx context.Context, priority *domain.Priority) error {
	const query = `
        INSERT INTO priorities (name, level)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.q.QueryRow(ctx, query,
		priority.Name,
		priority.Level,
	).Scan(&priority.ID, &priority.CreatedAt, &priority.UpdatedAt)
}

func (r *priorityRepository) Update(ctx context.Context, priority *domain.Priority) error {
	const query = `
        UPDATE priorities SET name=$1, level=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.q.Exec(ctx, query, priority.Name, priority.Level, priority.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *priorityRepository) GetByID(ctx context.Context, id string) (*domain.Priority, error) {
	const query = `
        SELECT id, name, level, created_at, updated_at
        FROM priorities WHERE id=$1`
	var priority domain.Priority
	if err := r.q.QueryRow(ctx, query, id).Scan(
		&priority.ID,
		&priority.Name,
		&priority.Level,
		&priority.CreatedAt,
		&priority.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &priority, nil
}

func (r *priorityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM priorities WHERE name=$1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *priorityRepository) List(ctx context.Context) ([]domain.Priority, error) {
	const query = `
        SELECT id, name, level, created_at, updated_at
        FROM priorities ORDER BY level ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Priority
	for rows.Next() {
		var priority domain.Priority
		if err := rows.Scan(&priority.ID, &priority.Name, &priority.Level, &priority.CreatedAt, &priority.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, priority)
	}
	return result, rows.Err()
}

func (r *priorityRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM priorities WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
