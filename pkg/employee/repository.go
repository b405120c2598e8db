package employee

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for employee profiles.
type Repository interface {
	Create(ctx context.Context, e Employee) error
	Update(ctx context.Context, e Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (Employee, error)
	List(ctx context.Context, f Filter) ([]Employee, error)
	Stats(ctx context.Context) (Stats, error)
}

// TransactionManager groups repository calls into one unit of work.
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}
