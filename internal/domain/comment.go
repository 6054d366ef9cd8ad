package domain

import "time"

// Comment is a free-form note left on a ticket.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
