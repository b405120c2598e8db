package auth

import (
	"context"
	"errors"

	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository abstracts persistence concerns from the domain layer.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	// GetAccountByEmail returns the user joined with its employee profile.
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
}

// EmployeeWriter creates the profile that belongs to a newly registered user.
type EmployeeWriter interface {
	Create(ctx context.Context, e employee.Employee) error
}

type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}
