package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketUpdated       EventType = "ticket_updated"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
)

// AllEventTypes lists every event type a broadcast subscriber cares about.
var AllEventTypes = []EventType{
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketStatusChanged,
	EventTicketCommentAdded,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Stamp fills in identity and timestamp when the publisher left them empty.
func Stamp(event *Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title      string `json:"title"`
	CategoryID string `json:"category_id"`
	PriorityID string `json:"priority_id"`
	StatusID   string `json:"status_id"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	CategoryID string  `json:"category_id"`
	PriorityID string  `json:"priority_id"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatusID string `json:"old_status_id"`
	NewStatusID string `json:"new_status_id"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID   string `json:"comment_id"`
	AuthorID    string `json:"author_id"`
	BodyPreview string `json:"body_preview"`
}
