package employee

import (
	"time"

	"github.com/google/uuid"
)

// Status is the employment state of an employee profile.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// MaxSalary is the largest value the NUMERIC(10,2) salary column holds.
const MaxSalary = 99999999.99

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// Employee is a profile record. UserID, when set, is the owning user and never changes.
type Employee struct {
	ID         uuid.UUID
	UserID     *uuid.UUID
	Name       string
	Email      string
	Role       string
	Department string
	Status     Status
	Phone      *string
	Address    *string
	Salary     *float64
	HireDate   *time.Time
	// UserRole is the account role of the owning user, filled on reads.
	UserRole  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID is the owning user of e.
func (e Employee) OwnedBy(userID uuid.UUID) bool {
	return e.UserID != nil && *e.UserID == userID
}

// Actor is the authenticated caller on whose behalf an operation runs.
type Actor struct {
	UserID uuid.UUID
	Admin  bool
}

type GroupCount struct {
	Name  string
	Count int
}

// Stats are the admin dashboard aggregates.
type Stats struct {
	Total       int
	Active      int
	Inactive    int
	Pending     int
	Departments []GroupCount
	Roles       []GroupCount
}
