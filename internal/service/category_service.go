package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// CategoryService manages the category lookup table.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	Description string
}

// Create adds a new category, rejecting duplicate names.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate("Category", name)
	}

	category := &domain.Category{Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Get resolves a category by id.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Category", id, err)
	}
	return category, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// Update edits a category, rejecting name collisions.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if category.Name != name {
		exists, err := s.categories.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewDuplicate("Category", name)
		}
	}

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("Category", id)
		}
		return nil, err
	}
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewEntityNotFound("Category", id)
		}
		return err
	}
	return nil
}
