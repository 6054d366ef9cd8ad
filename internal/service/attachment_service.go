package service

import (
	"context"
	"strings"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// AttachmentInput describes attachment metadata supplied by the caller.
// The binary itself is stored out of band under StorageKey.
type AttachmentInput struct {
	FileName    string
	ContentType string
	SizeBytes   int64
	StorageKey  string
}

// AttachmentService manages attachment metadata for tickets.
type AttachmentService struct {
	attachments repository.AttachmentRepository
	tickets     repository.TicketRepository
	resolver    *Resolver
}

// NewAttachmentService constructs the service.
func NewAttachmentService(attachments repository.AttachmentRepository, tickets repository.TicketRepository, resolver *Resolver) *AttachmentService {
	return &AttachmentService{attachments: attachments, tickets: tickets, resolver: resolver}
}

// Add records attachment metadata against an existing ticket.
func (s *AttachmentService) Add(ctx context.Context, ticketID, uploadedByID string, input AttachmentInput) (*domain.Attachment, error) {
	if strings.TrimSpace(input.FileName) == "" || strings.TrimSpace(input.StorageKey) == "" {
		return nil, apperrors.NewValidationError("file_name and storage_key required", nil)
	}
	exists, err := s.tickets.ExistsByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewEntityNotFound("Ticket", ticketID)
	}
	uploader, err := s.resolver.User(ctx, uploadedByID)
	if err != nil {
		return nil, err
	}

	attachment := &domain.Attachment{
		TicketID:     ticketID,
		FileName:     input.FileName,
		ContentType:  input.ContentType,
		SizeBytes:    input.SizeBytes,
		StorageKey:   input.StorageKey,
		UploadedByID: uploader.ID,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, err
	}
	return attachment, nil
}

// List returns a ticket's attachment metadata oldest first.
func (s *AttachmentService) List(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	exists, err := s.tickets.ExistsByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewEntityNotFound("Ticket", ticketID)
	}
	return s.attachments.ListByTicket(ctx, ticketID)
}
