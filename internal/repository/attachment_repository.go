package repository

import (
	"context"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// AttachmentRepository stores attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error)
}

type attachmentRepository struct {
	q Querier
}

// NewAttachmentRepository builds repository.
func NewAttachmentRepository(q Querier) AttachmentRepository {
	return &attachmentRepository{q: q}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (ticket_id, file_name, content_type, size_bytes, storage_key, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.q.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.FileName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.StorageKey,
		attachment.UploadedByID,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	const query = `
        SELECT id, ticket_id, file_name, content_type, size_bytes, storage_key, uploaded_by, created_at
        FROM attachments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TicketID,
			&attachment.FileName,
			&attachment.ContentType,
			&attachment.SizeBytes,
			&attachment.StorageKey,
			&attachment.UploadedByID,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
