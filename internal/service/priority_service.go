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

// PriorityService manages the priority lookup table.
type PriorityService struct {
	priorities repository.PriorityRepository
}

// NewPriorityService constructs the service.
func NewPriorityService(priorities repository.PriorityRepository) *PriorityService {
	return &PriorityService{priorities: priorities}
}

// PriorityInput describes priority create/update payloads.
type PriorityInput struct {
	Name  string
	Level int
}

// Create adds a new priority, rejecting duplicate names.
func (s *PriorityService) Create(ctx context.Context, input PriorityInput) (*domain.Priority, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	exists, err := s.priorities.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate("Priority", name)
	}

	priority := &domain.Priority{Name: name, Level: input.Level}
	if err := s.priorities.Create(ctx, priority); err != nil {
		return nil, err
	}
	return priority, nil
}

// Get resolves a priority by id.
func (s *PriorityService) Get(ctx context.Context, id string) (*domain.Priority, error) {
	priority, err := s.priorities.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Priority", id, err)
	}
	return priority, nil
}

// List returns all priorities ordered by urgency.
func (s *PriorityService) List(ctx context.Context) ([]domain.Priority, error) {
	return s.priorities.List(ctx)
}

// Update edits a priority, rejecting name collisions.
func (s *PriorityService) Update(ctx context.Context, id string, input PriorityInput) (*domain.Priority, error) {
	priority, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if priority.Name != name {
		exists, err := s.priorities.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewDuplicate("Priority", name)
		}
	}

	priority.Name = name
	priority.Level = input.Level
	if err := s.priorities.Update(ctx, priority); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("Priority", id)
		}
		return nil, err
	}
	return priority, nil
}

// Delete removes a priority.
func (s *PriorityService) Delete(ctx context.Context, id string) error {
	if err := s.priorities.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewEntityNotFound("Priority", id)
		}
		return err
	}
	return nil
}
