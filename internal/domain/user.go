package domain

import "time"

// UserRole enumerates directory roles. Roles identify who a caller is;
// the lifecycle engine never consults them for transition permissions.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleTechnician UserRole = "TECHNICIAN"
	RoleUser       UserRole = "USER"
)

// User is the domain model for anyone who reports, is assigned, or
// transitions a ticket.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
