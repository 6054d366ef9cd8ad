package domain

import "time"

// StatusHistory is an immutable audit record of one status change.
// OldStatusID is nil only for the entry written at ticket creation.
// Entries are never updated or deleted once written.
type StatusHistory struct {
	ID          string
	TicketID    string
	OldStatusID *string
	NewStatusID string
	ChangedByID string
	ChangedAt   time.Time
}

// StatusHistoryDetail resolves the status and user references of an entry.
type StatusHistoryDetail struct {
	StatusHistory
	OldStatus *Status
	NewStatus Status
	ChangedBy User
}
