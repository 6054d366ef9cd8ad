package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// Resolver translates reference identifiers into entities. Every miss is
// reported as a not-found condition naming the entity kind and id.
type Resolver struct {
	users             repository.UserRepository
	categories        repository.CategoryRepository
	priorities        repository.PriorityRepository
	statuses          repository.StatusRepository
	defaultStatusName string
}

// ResolverDependencies bundles the lookup repositories.
type ResolverDependencies struct {
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	PriorityRepo      repository.PriorityRepository
	StatusRepo        repository.StatusRepository
	DefaultStatusName string
}

// NewResolver constructs the resolver.
func NewResolver(deps ResolverDependencies) *Resolver {
	name := deps.DefaultStatusName
	if name == "" {
		name = "Open"
	}
	return &Resolver{
		users:             deps.UserRepo,
		categories:        deps.CategoryRepo,
		priorities:        deps.PriorityRepo,
		statuses:          deps.StatusRepo,
		defaultStatusName: name,
	}
}

// User resolves a user id.
func (r *Resolver) User(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.users.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("User", id, err)
	}
	return user, nil
}

// Category resolves a category id.
func (r *Resolver) Category(ctx context.Context, id string) (*domain.Category, error) {
	category, err := r.categories.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Category", id, err)
	}
	return category, nil
}

// Priority resolves a priority id.
func (r *Resolver) Priority(ctx context.Context, id string) (*domain.Priority, error) {
	priority, err := r.priorities.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Priority", id, err)
	}
	return priority, nil
}

// Status resolves a status id.
func (r *Resolver) Status(ctx context.Context, id string) (*domain.Status, error) {
	status, err := r.statuses.GetByID(ctx, id)
	if err != nil {
		return nil, resolveErr("Status", id, err)
	}
	return status, nil
}

// DefaultStatus returns the status assigned to new tickets: the configured
// default name when it exists, otherwise the oldest status on record so
// ticket creation never blocks on board configuration. Only an empty status
// table fails.
func (r *Resolver) DefaultStatus(ctx context.Context) (*domain.Status, error) {
	status, err := r.statuses.GetByName(ctx, r.defaultStatusName)
	if err == nil {
		return status, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	status, err = r.statuses.First(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNoStatusDefined()
		}
		return nil, err
	}
	return status, nil
}

func resolveErr(kind, id string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewEntityNotFound(kind, id)
	}
	return err
}
