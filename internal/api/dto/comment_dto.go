package dto

import "time"

// CommentRequest payload.
type CommentRequest struct {
	Body string `json:"body"`
}

// CommentResponse shape.
type CommentResponse struct {
	ID        string       `json:"id"`
	TicketID  string       `json:"ticket_id"`
	Author    UserResponse `json:"author"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

// AttachmentRequest describes attachment metadata input.
type AttachmentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	StorageKey  string `json:"storage_key"`
}

// AttachmentResponse shape.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	TicketID    string    `json:"ticket_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	StorageKey  string    `json:"storage_key"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}
