package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     *string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleManager UserRole = "manager"
	UserRoleStaff   UserRole = "staff"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleManager, UserRoleStaff:
		return true
	}
	return false
}

func (r UserRole) IsManager() bool {
	return r == UserRoleManager
}
