package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/events"
	"github.com/helpdesk-kit/ticketing/internal/repository"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

// TicketService is the lifecycle engine: it owns ticket creation and status
// transitions and is the sole writer of the status-history ledger.
//
// The engine enforces referential validity only. Any status may transition
// to any other status; workflow rules and permissions are not its concern.
type TicketService struct {
	tickets    repository.TicketRepository
	history    repository.StatusHistoryRepository
	resolver   *Resolver
	tx         repository.TxRunner
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the lifecycle engine.
type TicketDependencies struct {
	TicketRepo  repository.TicketRepository
	HistoryRepo repository.StatusHistoryRepository
	Resolver    *Resolver
	Tx          repository.TxRunner
	Dispatcher  events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	ReporterID  string
	CategoryID  string
	PriorityID  string
	AssigneeID  *string
}

// TicketUpdateInput describes a field edit. Status is deliberately absent:
// field edits are not transitions and are not audited.
type TicketUpdateInput struct {
	Title       string
	Description string
	CategoryID  string
	PriorityID  string
	AssigneeID  *string
}

// StatusChangeInput describes a status transition request.
type StatusChangeInput struct {
	TicketID    string
	NewStatusID string
	ChangedByID string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		history:    deps.HistoryRepo,
		resolver:   deps.Resolver,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket with its initial history entry. The ticket
// insert and the history append commit in one transaction: either both
// exist afterwards or neither does.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.TicketDetail, error) {
	reporter, err := s.resolver.User(ctx, input.ReporterID)
	if err != nil {
		return nil, err
	}
	category, err := s.resolver.Category(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	priority, err := s.resolver.Priority(ctx, input.PriorityID)
	if err != nil {
		return nil, err
	}
	var assignee *domain.User
	if input.AssigneeID != nil {
		assignee, err = s.resolver.User(ctx, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
	}
	status, err := s.resolver.DefaultStatus(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		ReporterID:  reporter.ID,
		AssigneeID:  input.AssigneeID,
		CategoryID:  category.ID,
		PriorityID:  priority.ID,
		StatusID:    status.ID,
	}

	err = s.tx.RunInTx(ctx, func(tx repository.Tx) error {
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return err
		}
		entry := &domain.StatusHistory{
			TicketID:    ticket.ID,
			OldStatusID: nil,
			NewStatusID: status.ID,
			ChangedByID: reporter.ID,
		}
		return tx.History().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  reporter.ID,
		Payload: events.TicketCreatedPayload{
			Title:      ticket.Title,
			CategoryID: ticket.CategoryID,
			PriorityID: ticket.PriorityID,
			StatusID:   ticket.StatusID,
		},
	})

	return &domain.TicketDetail{
		Ticket:   *ticket,
		Reporter: *reporter,
		Assignee: assignee,
		Category: *category,
		Priority: *priority,
		Status:   *status,
	}, nil
}

// UpdateTicket overwrites the mutable fields of a ticket. It never touches
// status and never writes a history entry.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.TicketDetail, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := s.resolver.Category(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	priority, err := s.resolver.Priority(ctx, input.PriorityID)
	if err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if _, err := s.resolver.User(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	ticket.Title = strings.TrimSpace(input.Title)
	ticket.Description = strings.TrimSpace(input.Description)
	ticket.CategoryID = category.ID
	ticket.PriorityID = priority.ID
	ticket.AssigneeID = input.AssigneeID

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("Ticket", id)
		}
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			CategoryID: ticket.CategoryID,
			PriorityID: ticket.PriorityID,
			AssigneeID: ticket.AssigneeID,
		},
	})

	return s.detail(ctx, ticket)
}

// ChangeStatus transitions a ticket to a new status and appends the audit
// entry in the same transaction. The ticket row is guarded by an optimistic
// version check; losing the race surfaces as a conflict rather than a
// silent lost update.
//
// A transition to the current status is not rejected; it still produces a
// history entry whose old and new status match.
func (s *TicketService) ChangeStatus(ctx context.Context, input StatusChangeInput) (*domain.TicketDetail, error) {
	ticket, err := s.getTicket(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	newStatus, err := s.resolver.Status(ctx, input.NewStatusID)
	if err != nil {
		return nil, err
	}
	actor, err := s.resolver.User(ctx, input.ChangedByID)
	if err != nil {
		return nil, err
	}

	oldStatusID := ticket.StatusID

	err = s.tx.RunInTx(ctx, func(tx repository.Tx) error {
		if err := tx.Tickets().UpdateStatus(ctx, ticket.ID, newStatus.ID, ticket.Version); err != nil {
			switch {
			case errors.Is(err, repository.ErrVersionConflict):
				return apperrors.NewConflict("ticket was modified concurrently", map[string]any{
					"ticket_id": ticket.ID,
				})
			case errors.Is(err, pgx.ErrNoRows):
				return apperrors.NewEntityNotFound("Ticket", ticket.ID)
			}
			return err
		}
		entry := &domain.StatusHistory{
			TicketID:    ticket.ID,
			OldStatusID: &oldStatusID,
			NewStatusID: newStatus.ID,
			ChangedByID: actor.ID,
		}
		return tx.History().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	ticket.StatusID = newStatus.ID
	ticket.Version++

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatusID: oldStatusID,
			NewStatusID: newStatus.ID,
		},
	})

	return s.detail(ctx, ticket)
}

// GetTicket fetches one ticket with references resolved.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.TicketDetail, error) {
	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, ticket)
}

// ListTickets returns tickets matching the filter, references resolved.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]domain.TicketDetail, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	details := make([]domain.TicketDetail, 0, len(tickets))
	for i := range tickets {
		detail, err := s.detail(ctx, &tickets[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// ListByReporter returns tickets reported by the given user.
func (s *TicketService) ListByReporter(ctx context.Context, userID string) ([]domain.TicketDetail, error) {
	return s.ListTickets(ctx, repository.TicketFilter{ReporterID: &userID})
}

// ListByAssignee returns tickets assigned to the given user.
func (s *TicketService) ListByAssignee(ctx context.Context, userID string) ([]domain.TicketDetail, error) {
	return s.ListTickets(ctx, repository.TicketFilter{AssigneeID: &userID})
}

// ListByStatus returns tickets currently in the given status.
func (s *TicketService) ListByStatus(ctx context.Context, statusID string) ([]domain.TicketDetail, error) {
	return s.ListTickets(ctx, repository.TicketFilter{StatusID: &statusID})
}

// History returns the audit trail of a ticket, newest entry first, with
// status and user references resolved.
func (s *TicketService) History(ctx context.Context, ticketID string) ([]domain.StatusHistoryDetail, error) {
	exists, err := s.tickets.ExistsByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.NewEntityNotFound("Ticket", ticketID)
	}

	entries, err := s.history.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	statusCache := map[string]*domain.Status{}
	userCache := map[string]*domain.User{}

	details := make([]domain.StatusHistoryDetail, 0, len(entries))
	for _, entry := range entries {
		newStatus, err := s.cachedStatus(ctx, statusCache, entry.NewStatusID)
		if err != nil {
			return nil, err
		}
		var oldStatus *domain.Status
		if entry.OldStatusID != nil {
			oldStatus, err = s.cachedStatus(ctx, statusCache, *entry.OldStatusID)
			if err != nil {
				return nil, err
			}
		}
		changedBy, err := s.cachedUser(ctx, userCache, entry.ChangedByID)
		if err != nil {
			return nil, err
		}
		details = append(details, domain.StatusHistoryDetail{
			StatusHistory: entry,
			OldStatus:     oldStatus,
			NewStatus:     *newStatus,
			ChangedBy:     *changedBy,
		})
	}
	return details, nil
}

// DeleteTicket removes a ticket along with its history, comments and
// attachment metadata.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewEntityNotFound("Ticket", id)
		}
		return err
	}
	return nil
}

func (s *TicketService) getTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("Ticket", id)
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) detail(ctx context.Context, ticket *domain.Ticket) (*domain.TicketDetail, error) {
	reporter, err := s.resolver.User(ctx, ticket.ReporterID)
	if err != nil {
		return nil, err
	}
	var assignee *domain.User
	if ticket.AssigneeID != nil {
		assignee, err = s.resolver.User(ctx, *ticket.AssigneeID)
		if err != nil {
			return nil, err
		}
	}
	category, err := s.resolver.Category(ctx, ticket.CategoryID)
	if err != nil {
		return nil, err
	}
	priority, err := s.resolver.Priority(ctx, ticket.PriorityID)
	if err != nil {
		return nil, err
	}
	status, err := s.resolver.Status(ctx, ticket.StatusID)
	if err != nil {
		return nil, err
	}
	return &domain.TicketDetail{
		Ticket:   *ticket,
		Reporter: *reporter,
		Assignee: assignee,
		Category: *category,
		Priority: *priority,
		Status:   *status,
	}, nil
}

func (s *TicketService) cachedStatus(ctx context.Context, cache map[string]*domain.Status, id string) (*domain.Status, error) {
	if status, ok := cache[id]; ok {
		return status, nil
	}
	status, err := s.resolver.Status(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = status
	return status, nil
}

func (s *TicketService) cachedUser(ctx context.Context, cache map[string]*domain.User, id string) (*domain.User, error) {
	if user, ok := cache[id]; ok {
		return user, nil
	}
	user, err := s.resolver.User(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = user
	return user, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	events.Stamp(&event)
	_ = s.dispatcher.Publish(ctx, event)
}
