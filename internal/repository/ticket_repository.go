package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// ErrVersionConflict signals that a versioned update matched an existing
// row whose version moved on since it was read.
var ErrVersionConflict = errors.New("ticket version conflict")

// TicketFilter captures ticket search parameters.
type TicketFilter struct {
	ReporterID *string
	AssigneeID *string
	CategoryID *string
	PriorityID *string
	StatusID   *string
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	UpdateStatus(ctx context.Context, id, statusID string, expectedVersion int64) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
}

type ticketRepository struct {
	q Querier
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(q Querier) TicketRepository {
	return &ticketRepository{q: q}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (title, description, reporter_user_id, assignee_user_id, category_id, priority_id, status_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, version, created_at, updated_at`
	return r.q.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.ReporterID,
		ticket.AssigneeID,
		ticket.CategoryID,
		ticket.PriorityID,
		ticket.StatusID,
	).Scan(&ticket.ID, &ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET title=$1, description=$2, assignee_user_id=$3, category_id=$4, priority_id=$5,
            version=version+1, updated_at=NOW()
        WHERE id=$6
        RETURNING version, updated_at`
	if err := r.q.QueryRow(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.AssigneeID,
		ticket.CategoryID,
		ticket.PriorityID,
		ticket.ID,
	).Scan(&ticket.Version, &ticket.UpdatedAt); err != nil {
		return err
	}
	return nil
}

// UpdateStatus performs the versioned status write of a transition.
// ErrVersionConflict means the row exists but was modified since it was
// captured; pgx.ErrNoRows means the ticket vanished entirely.
func (r *ticketRepository) UpdateStatus(ctx context.Context, id, statusID string, expectedVersion int64) error {
	const query = `
        UPDATE tickets SET status_id=$1, version=version+1, updated_at=NOW()
        WHERE id=$2 AND version=$3`
	cmd, err := r.q.Exec(ctx, query, statusID, id, expectedVersion)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return pgx.ErrNoRows
		}
		return ErrVersionConflict
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, title, description, reporter_user_id, assignee_user_id, category_id, priority_id, status_id,
               version, created_at, updated_at
        FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.q.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.ReporterID,
		&ticket.AssigneeID,
		&ticket.CategoryID,
		&ticket.PriorityID,
		&ticket.StatusID,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM tickets WHERE id=$1)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, title, description, reporter_user_id, assignee_user_id, category_id, priority_id, status_id,
                    version, created_at, updated_at
             FROM tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ReporterID != nil {
		args = append(args, *filter.ReporterID)
		clauses = append(clauses, fmt.Sprintf("reporter_user_id=$%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		clauses = append(clauses, fmt.Sprintf("assignee_user_id=$%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id=$%d", len(args)))
	}
	if filter.PriorityID != nil {
		args = append(args, *filter.PriorityID)
		clauses = append(clauses, fmt.Sprintf("priority_id=$%d", len(args)))
	}
	if filter.StatusID != nil {
		args = append(args, *filter.StatusID)
		clauses = append(clauses, fmt.Sprintf("status_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Title,
			&ticket.Description,
			&ticket.ReporterID,
			&ticket.AssigneeID,
			&ticket.CategoryID,
			&ticket.PriorityID,
			&ticket.StatusID,
			&ticket.Version,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
