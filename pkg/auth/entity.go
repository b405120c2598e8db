package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is the account-level permission of a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account is a user together with its employee profile, when one exists.
type Account struct {
	User
	Name         string
	Department   string
	EmployeeRole string
}

// Identity is the claim set carried by an access token.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Role       Role
	Name       string
	Department string
	TokenID    string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
