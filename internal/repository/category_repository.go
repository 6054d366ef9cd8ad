package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// CategoryRepository manages the category lookup table.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	q Querier
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(q Querier) CategoryRepository {
	return &categoryRepository{q: q}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.q.QueryRow(ctx, query,
		category.Name,
		category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `
        UPDATE categories SET name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.q.Exec(ctx, query, category.Name, category.Description, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM categories WHERE id=$1`
	var category domain.Category
	if err := r.q.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM categories WHERE name=$1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, name).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `
        SELECT id, name, description, created_at, updated_at
        FROM categories ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
