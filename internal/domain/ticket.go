package domain

import "time"

// Ticket is the aggregate for a trackable unit of reported work.
//
// Version is an optimistic lock counter bumped on every write; a stale
// version on a status transition surfaces as a conflict instead of a
// silent lost update.
type Ticket struct {
	ID          string
	Title       string
	Description string
	ReporterID  string
	AssigneeID  *string
	CategoryID  string
	PriorityID  string
	StatusID    string
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TicketDetail is a ticket with its references resolved, ready for
// presentation mapping.
type TicketDetail struct {
	Ticket
	Reporter User
	Assignee *User
	Category Category
	Priority Priority
	Status   Status
}
