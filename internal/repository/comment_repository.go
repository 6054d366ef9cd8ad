package repository

import (
	"context"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// CommentRepository stores ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error)
}

type commentRepository struct {
	q Querier
}

// NewCommentRepository builds repository.
func NewCommentRepository(q Querier) CommentRepository {
	return &commentRepository{q: q}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, author_user_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	return r.q.QueryRow(ctx, query,
		comment.TicketID,
		comment.AuthorID,
		comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, author_user_id, body, created_at
        FROM comments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.AuthorID,
			&comment.Body,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}
