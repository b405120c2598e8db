package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UseCase is the employee application boundary used by the HTTP layer.
type UseCase interface {
	List(ctx context.Context, actor Actor, q ListQuery) ([]Employee, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (Employee, error)
	Create(ctx context.Context, actor Actor, in NewEmployee) (Employee, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, patch Patch) (Employee, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Stats(ctx context.Context, actor Actor) (Stats, error)
}

type service struct {
	repo Repository
	tx   TransactionManager
	now  func() time.Time
}

func NewService(repo Repository, tx TransactionManager) UseCase {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &service{repo: repo, tx: tx, now: func() time.Time { return time.Now().UTC() }}
}

// List returns every row for admins and only the caller's own row otherwise.
func (s *service) List(ctx context.Context, actor Actor, q ListQuery) ([]Employee, error) {
	f := Filter{ListQuery: q}
	if !actor.Admin {
		owner := actor.UserID
		f.OwnerID = &owner
	}
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, actor Actor, id uuid.UUID) (Employee, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if !actor.Admin && !e.OwnedBy(actor.UserID) {
		return Employee{}, ErrForbidden
	}
	return e, nil
}

func (s *service) Create(ctx context.Context, actor Actor, in NewEmployee) (Employee, error) {
	if !actor.Admin {
		return Employee{}, ErrForbidden
	}
	in.normalize()
	if err := in.Validate(); err != nil {
		return Employee{}, err
	}
	now := s.now()
	e := Employee{
		ID:         uuid.New(),
		UserID:     in.UserID,
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.Role,
		Department: in.Department,
		Status:     in.Status,
		Phone:      in.Phone,
		Address:    in.Address,
		Salary:     in.Salary,
		HireDate:   in.HireDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Employee{}, err
	}
	return e, nil
}

// Update applies patch to the row. Non-admin callers may only touch their own
// row, and only its self-service fields; other submitted fields are dropped.
func (s *service) Update(ctx context.Context, actor Actor, id uuid.UUID, patch Patch) (Employee, error) {
	if !actor.Admin {
		patch = patch.SelfService()
	}
	patch.normalize()

	var updated Employee
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if !actor.Admin && !existing.OwnedBy(actor.UserID) {
			return ErrForbidden
		}
		if err := patch.Validate(); err != nil {
			return err
		}
		patch.Apply(&existing)
		existing.UpdatedAt = s.now()
		if err := s.repo.Update(txCtx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return Employee{}, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Admin {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Stats(ctx context.Context, actor Actor) (Stats, error) {
	if !actor.Admin {
		return Stats{}, ErrForbidden
	}
	var st Stats
	err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		st, err = s.repo.Stats(txCtx)
		return err
	})
	return st, err
}
