package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := Event{Type: EventTicketCreated, TicketID: "t-1"}
	Stamp(&event)
	require.NoError(t, d.Publish(context.Background(), event))

	require.Len(t, received, 1)
	assert.Equal(t, "t-1", received[0].TicketID)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestDispatcherIgnoresOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventTicketStatusChanged, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.Zero(t, calls)
}

func TestDispatcherHandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	var order []string
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestStampPreservesExistingIdentity(t *testing.T) {
	event := Event{ID: "fixed-id", Type: EventTicketUpdated}
	Stamp(&event)
	assert.Equal(t, "fixed-id", event.ID)
}
