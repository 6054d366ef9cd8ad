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

// StatusService manages the status lookup table.
type StatusService struct {
	statuses repository.StatusRepository
}

// NewStatusService constructs the service.
func NewStatusService(statuses repository.StatusRepository) *StatusService {
	return &StatusService{statuses: statuses}
}

// Create adds a new status, rejecting duplicate names.
func (s *StatusService) Create(ctx context.Context, name string) (*domain.Status, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	exists, err := s.statuses.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicate("Status", name)
	}

	status := &domain.Status{Name: name}
	if err := s.statuses.Create(ctx, status); err != nil {
		return nil, err
	}
	return status, nil
}

// Get resolves a status by id.
func (s *StatusService) Get(ctx context.Context, id string) (*domain.Status, error) {
	status, err := s.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Status", id, err)
	}
	return status, nil
}

// List returns all statuses in enumeration order.
func (s *StatusService) List(ctx context.Context) ([]domain.Status, error) {
	return s.statuses.List(ctx)
}

// Update renames a status, rejecting collisions with another status.
func (s *StatusService) Update(ctx context.Context, id, name string) (*domain.Status, error) {
	status, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if status.Name != name {
		exists, err := s.statuses.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.NewDuplicate("Status", name)
		}
	}

	status.Name = name
	if err := s.statuses.Update(ctx, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("Status", id)
		}
		return nil, err
	}
	return status, nil
}

// Delete removes a status.
func (s *StatusService) Delete(ctx context.Context, id string) error {
	if err := s.statuses.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewEntityNotFound("Status", id)
		}
		return err
	}
	return nil
}
