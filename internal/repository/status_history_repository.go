package repository

import (
	"context"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// StatusHistoryRepository stores the append-only status audit trail.
// There is deliberately no update or delete operation: entries are
// permanent once written.
type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *domain.StatusHistory) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusHistory, error)
}

type statusHistoryRepository struct {
	q Querier
}

// NewStatusHistoryRepository builds repository.
func NewStatusHistoryRepository(q Querier) StatusHistoryRepository {
	return &statusHistoryRepository{q: q}
}

func (r *statusHistoryRepository) Create(ctx context.Context, entry *domain.StatusHistory) error {
	const query = `
        INSERT INTO status_history (ticket_id, old_status_id, new_status_id, changed_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, changed_at`
	return r.q.QueryRow(ctx, query,
		entry.TicketID,
		entry.OldStatusID,
		entry.NewStatusID,
		entry.ChangedByID,
	).Scan(&entry.ID, &entry.ChangedAt)
}

// ListByTicket returns entries newest first.
func (r *statusHistoryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.StatusHistory, error) {
	const query = `
        SELECT id, ticket_id, old_status_id, new_status_id, changed_by, changed_at
        FROM status_history WHERE ticket_id=$1 ORDER BY changed_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StatusHistory
	for rows.Next() {
		var entry domain.StatusHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.OldStatusID,
			&entry.NewStatusID,
			&entry.ChangedByID,
			&entry.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
