package domain

import "time"

// Attachment holds file metadata for a ticket. The binary itself lives
// in external storage addressed by StorageKey.
type Attachment struct {
	ID           string
	TicketID     string
	FileName     string
	ContentType  string
	SizeBytes    int64
	StorageKey   string
	UploadedByID string
	CreatedAt    time.Time
}
