package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/events"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

type memCommentRepo struct {
	comments []domain.Comment
}

func (r *memCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *memCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	var result []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

func TestAddCommentAndList(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ticket, err := f.createTicket(ctx)
	require.NoError(t, err)

	comments := &memCommentRepo{}
	svc := NewCommentService(comments, f.tickets, f.resolver, f.dispatcher)

	added, err := svc.Add(ctx, ticket.ID, f.tech.ID, "  Checked the power supply.  ")
	require.NoError(t, err)
	assert.Equal(t, "Checked the power supply.", added.Body)
	assert.Equal(t, f.tech.Name, added.Author.Name)

	listed, err := svc.List(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, added.ID, listed[0].ID)

	last := f.dispatcher.published[len(f.dispatcher.published)-1]
	assert.Equal(t, events.EventTicketCommentAdded, last.Type)
}

func TestAddCommentRejectsEmptyBody(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ticket, err := f.createTicket(ctx)
	require.NoError(t, err)

	svc := NewCommentService(&memCommentRepo{}, f.tickets, f.resolver, f.dispatcher)
	_, err = svc.Add(ctx, ticket.ID, f.tech.ID, "   ")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestAddCommentUnknownTicket(t *testing.T) {
	f := newFixture()

	svc := NewCommentService(&memCommentRepo{}, f.tickets, f.resolver, f.dispatcher)
	_, err := svc.Add(context.Background(), "missing-ticket", f.tech.ID, "hello")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestCommentEventPreviewTruncates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ticket, err := f.createTicket(ctx)
	require.NoError(t, err)

	svc := NewCommentService(&memCommentRepo{}, f.tickets, f.resolver, f.dispatcher)
	long := strings.Repeat("x", 500)
	_, err = svc.Add(ctx, ticket.ID, f.tech.ID, long)
	require.NoError(t, err)

	last := f.dispatcher.published[len(f.dispatcher.published)-1]
	payload, ok := last.Payload.(events.TicketCommentAddedPayload)
	require.True(t, ok)
	assert.Len(t, payload.BodyPreview, 120)
	assert.True(t, strings.HasSuffix(payload.BodyPreview, "..."))
}
