package dto

import (
	"time"
)

// CreateTicketRequest payload. ReporterID may be omitted when the caller
// creates the ticket for themselves.
type CreateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ReporterID  string  `json:"reporter_id"`
	CategoryID  string  `json:"category_id"`
	PriorityID  string  `json:"priority_id"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateTicketRequest payload for field edits. Status is not editable here.
type UpdateTicketRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	PriorityID  string  `json:"priority_id"`
	AssigneeID  *string `json:"assignee_id"`
}

// StatusUpdateRequest payload for a status transition.
type StatusUpdateRequest struct {
	TicketID        string `json:"ticket_id"`
	NewStatusID     string `json:"new_status_id"`
	ChangedByUserID string `json:"changed_by_user_id"`
}

// TicketResponse is the caller-facing ticket shape with nested entities.
type TicketResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Reporter    UserResponse     `json:"reporter"`
	Assignee    *UserResponse    `json:"assignee"`
	Category    CategoryResponse `json:"category"`
	Priority    PriorityResponse `json:"priority"`
	Status      StatusResponse   `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// StatusHistoryResponse is one audit entry with nested entities.
// OldStatus is null for the entry recorded at ticket creation.
type StatusHistoryResponse struct {
	ID        string          `json:"id"`
	TicketID  string          `json:"ticket_id"`
	OldStatus *StatusResponse `json:"old_status"`
	NewStatus StatusResponse  `json:"new_status"`
	ChangedBy UserResponse    `json:"changed_by"`
	ChangedAt time.Time       `json:"changed_at"`
}
