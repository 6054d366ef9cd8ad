package service

import (
	"context"
	"strings"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/events"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// CommentDetail joins a comment with its resolved author.
type CommentDetail struct {
	domain.Comment
	Author domain.User
}

// CommentService manages ticket comments.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	resolver   *Resolver
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, resolver *Resolver, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, resolver: resolver, dispatcher: dispatcher}
}

// Add appends a comment to an existing ticket.
func (s *CommentService) Add(ctx context.Context, ticketID, authorID, body string) (*CommentDetail, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	exists, err := s.tickets.ExistsByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewEntityNotFound("Ticket", ticketID)
	}
	author, err := s.resolver.User(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		AuthorID: author.ID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		event := events.Event{
			Type:     events.EventTicketCommentAdded,
			TicketID: ticketID,
			ActorID:  author.ID,
			Payload: events.TicketCommentAddedPayload{
				CommentID:   comment.ID,
				AuthorID:    author.ID,
				BodyPreview: preview(body, 120),
			},
		}
		events.Stamp(&event)
		_ = s.dispatcher.Publish(ctx, event)
	}

	return &CommentDetail{Comment: *comment, Author: *author}, nil
}

// List returns a ticket's comments oldest first, authors resolved.
func (s *CommentService) List(ctx context.Context, ticketID string) ([]CommentDetail, error) {
	exists, err := s.tickets.ExistsByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewEntityNotFound("Ticket", ticketID)
	}

	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	authors := map[string]*domain.User{}
	details := make([]CommentDetail, 0, len(comments))
	for _, comment := range comments {
		author, ok := authors[comment.AuthorID]
		if !ok {
			author, err = s.resolver.User(ctx, comment.AuthorID)
			if err != nil {
				return nil, err
			}
			authors[comment.AuthorID] = author
		}
		details = append(details, CommentDetail{Comment: comment, Author: *author})
	}
	return details, nil
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
