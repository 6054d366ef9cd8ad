package domain

import "time"

// Category groups tickets by problem area.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Priority ranks ticket urgency. Lower level means more urgent.
type Priority struct {
	ID        string
	Name      string
	Level     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status is an administrator-defined lifecycle label. The set is open
// ended; nothing in the engine enumerates it.
type Status struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
