package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/ticketing/internal/events"
	apperrors "github.com/helpdesk-kit/ticketing/pkg/util"
)

func TestCreateTicketWritesInitialHistoryEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	detail, err := f.createTicket(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Open", detail.Status.Name)
	assert.Equal(t, int64(1), detail.Version)
	assert.Equal(t, f.reporter.ID, detail.Reporter.ID)
	assert.Nil(t, detail.Assignee)

	entries, err := f.history.ListByTicket(ctx, detail.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].OldStatusID)
	assert.Equal(t, f.open.ID, entries[0].NewStatusID)
	assert.Equal(t, f.reporter.ID, entries[0].ChangedByID)

	require.Len(t, f.dispatcher.published, 1)
	assert.Equal(t, events.EventTicketCreated, f.dispatcher.published[0].Type)
}

func TestCreateTicketWithAssignee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	detail, err := f.engine.CreateTicket(ctx, TicketCreateInput{
		Title:       "VPN keeps disconnecting",
		Description: "Drops every few minutes.",
		ReporterID:  f.reporter.ID,
		CategoryID:  f.hardware.ID,
		PriorityID:  f.high.ID,
		AssigneeID:  &f.tech.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, detail.Assignee)
	assert.Equal(t, f.tech.ID, detail.Assignee.ID)
}

func TestCreateTicketUnknownReferencePersistsNothing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.engine.CreateTicket(ctx, TicketCreateInput{
		Title:       "Broken monitor",
		Description: "Flickers constantly.",
		ReporterID:  f.reporter.ID,
		CategoryID:  "missing-category",
		PriorityID:  f.high.ID,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Category", domainErr.Details["kind"])
	assert.Equal(t, "missing-category", domainErr.Details["id"])

	assert.Empty(t, f.tickets.tickets)
	assert.Empty(t, f.history.entries)
	assert.Empty(t, f.dispatcher.published)
}

func TestCreateTicketRollsBackWhenHistoryAppendFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.history.createErr = errors.New("disk full")
	_, err := f.createTicket(ctx)
	require.Error(t, err)

	assert.Empty(t, f.tickets.tickets, "ticket insert must not survive a failed history append")
	assert.Empty(t, f.history.entries)
	assert.Empty(t, f.dispatcher.published)
}

func TestChangeStatusAppendsLinkedHistoryEntries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	after, err := f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    created.ID,
		NewStatusID: f.progress.ID,
		ChangedByID: f.tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.progress.ID, after.Status.ID)
	assert.Equal(t, created.Version+1, after.Version)

	after, err = f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    created.ID,
		NewStatusID: f.resolved.ID,
		ChangedByID: f.tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.resolved.ID, after.Status.ID)

	trail, err := f.engine.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 3)

	// newest first; each entry's old status is the previous entry's new status
	assert.Equal(t, f.resolved.ID, trail[0].NewStatus.ID)
	require.NotNil(t, trail[0].OldStatus)
	assert.Equal(t, f.progress.ID, trail[0].OldStatus.ID)

	assert.Equal(t, f.progress.ID, trail[1].NewStatus.ID)
	require.NotNil(t, trail[1].OldStatus)
	assert.Equal(t, f.open.ID, trail[1].OldStatus.ID)

	assert.Equal(t, f.open.ID, trail[2].NewStatus.ID)
	assert.Nil(t, trail[2].OldStatus)
	assert.Equal(t, f.reporter.ID, trail[2].ChangedBy.ID)
}

func TestChangeStatusToCurrentStatusIsRecorded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	after, err := f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    created.ID,
		NewStatusID: f.open.ID,
		ChangedByID: f.tech.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.open.ID, after.Status.ID)

	trail, err := f.engine.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, trail, 2)
	require.NotNil(t, trail[0].OldStatus)
	assert.Equal(t, f.open.ID, trail[0].OldStatus.ID)
	assert.Equal(t, f.open.ID, trail[0].NewStatus.ID)
}

func TestChangeStatusStaleVersionConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	// simulate a concurrent transition landing first
	stored := f.tickets.tickets[created.ID]
	stored.Version++
	f.tickets.tickets[created.ID] = stored

	_, err = f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    created.ID,
		NewStatusID: f.progress.ID,
		ChangedByID: f.tech.ID,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)

	entries, err := f.history.ListByTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "a conflicted transition must not append history")
}

func TestChangeStatusUnknownTicket(t *testing.T) {
	f := newFixture()

	_, err := f.engine.ChangeStatus(context.Background(), StatusChangeInput{
		TicketID:    "missing-ticket",
		NewStatusID: f.progress.ID,
		ChangedByID: f.tech.ID,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, "Ticket", domainErr.Details["kind"])
}

func TestChangeStatusEmitsEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	_, err = f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    created.ID,
		NewStatusID: f.progress.ID,
		ChangedByID: f.tech.ID,
	})
	require.NoError(t, err)

	require.Len(t, f.dispatcher.published, 2)
	event := f.dispatcher.published[1]
	assert.Equal(t, events.EventTicketStatusChanged, event.Type)
	assert.Equal(t, f.tech.ID, event.ActorID)
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, f.open.ID, payload.OldStatusID)
	assert.Equal(t, f.progress.ID, payload.NewStatusID)
}

func TestUpdateTicketDoesNotTouchStatusOrHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	updated, err := f.engine.UpdateTicket(ctx, created.ID, TicketUpdateInput{
		Title:       "Laptop will not boot at all",
		Description: "Black screen, no fan noise.",
		CategoryID:  f.hardware.ID,
		PriorityID:  f.high.ID,
		AssigneeID:  &f.tech.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Laptop will not boot at all", updated.Title)
	assert.Equal(t, created.Status.ID, updated.Status.ID)
	require.NotNil(t, updated.Assignee)
	assert.Equal(t, f.tech.ID, updated.Assignee.ID)

	entries, err := f.history.ListByTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "field edits are not audited")
}

func TestUpdateTicketUnknownAssignee(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	missing := "missing-user"
	_, err = f.engine.UpdateTicket(ctx, created.ID, TicketUpdateInput{
		Title:      "Still broken",
		CategoryID: f.hardware.ID,
		PriorityID: f.high.ID,
		AssigneeID: &missing,
	})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "User", domainErr.Details["kind"])
}

func TestHistoryUnknownTicket(t *testing.T) {
	f := newFixture()

	_, err := f.engine.History(context.Background(), "missing-ticket")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestHistoryEmptyForFreshTable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)
	f.history.entries = nil

	trail, err := f.engine.History(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, trail)
}

func TestListByStatusFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.createTicket(ctx)
	require.NoError(t, err)
	second, err := f.createTicket(ctx)
	require.NoError(t, err)

	_, err = f.engine.ChangeStatus(ctx, StatusChangeInput{
		TicketID:    second.ID,
		NewStatusID: f.progress.ID,
		ChangedByID: f.tech.ID,
	})
	require.NoError(t, err)

	open, err := f.engine.ListByStatus(ctx, f.open.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, first.ID, open[0].ID)

	inProgress, err := f.engine.ListByStatus(ctx, f.progress.ID)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, second.ID, inProgress[0].ID)
}

func TestDeleteTicket(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	require.NoError(t, f.engine.DeleteTicket(ctx, created.ID))

	err = f.engine.DeleteTicket(ctx, created.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestTicketDetailResolvesReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.createTicket(ctx)
	require.NoError(t, err)

	fetched, err := f.engine.GetTicket(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, f.reporter.Name, fetched.Reporter.Name)
	assert.Equal(t, f.hardware.Name, fetched.Category.Name)
	assert.Equal(t, f.high.Name, fetched.Priority.Name)
	assert.Equal(t, "Open", fetched.Status.Name)
}
