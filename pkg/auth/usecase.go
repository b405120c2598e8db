package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

// AuthUseCase describes authentication/registration behavior.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (RegisterResult, error)
	Logout(ctx context.Context, id Identity) error
}

type AuthResult struct {
	Account Account
	Token   string
}

// RegisterInput creates a user and its employee profile in one step.
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Role         Role
	Department   string
	EmployeeRole string
	Phone        *string
	Address      *string
	Salary       *float64
}

type RegisterResult struct {
	UserID     uuid.UUID
	EmployeeID uuid.UUID
}

const (
	minPasswordLength = 6
	// bcrypt rejects longer input.
	maxPasswordBytes = 72
)

type authService struct {
	repo      UserRepository
	employees EmployeeWriter
	tx        TransactionManager
	hasher    PasswordHasher
	tokens    TokenGenerator
	revoker   TokenRevoker
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one hash comparison.
	dummyHash string
	now       func() time.Time
}

type Deps struct {
	Users     UserRepository
	Employees EmployeeWriter
	Tx        TransactionManager
	Hasher    PasswordHasher
	Tokens    TokenGenerator
	Revoker   TokenRevoker
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(d Deps) (AuthUseCase, error) {
	dummy, err := d.Hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &authService{
		repo:      d.Users,
		employees: d.Employees,
		tx:        d.Tx,
		hasher:    d.Hasher,
		tokens:    d.Tokens,
		revoker:   d.Revoker,
		dummyHash: dummy,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = validation.NormalizeEmail(email)
	var errs validation.Errors
	errs.Email("email", email)
	checkPassword(&errs, password)
	if err := errs.Err(); err != nil {
		return AuthResult{}, err
	}

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if s.hasher.Compare(account.PasswordHash, password) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, account)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Account: account, Token: token}, nil
}

func (in *RegisterInput) normalize() {
	in.Email = validation.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	in.EmployeeRole = strings.TrimSpace(in.EmployeeRole)
}

func (in RegisterInput) validate() error {
	var errs validation.Errors
	errs.Email("email", in.Email)
	checkPassword(&errs, in.Password)
	errs.MinLength("name", in.Name, 2)
	errs.OneOf("role", string(in.Role), string(RoleAdmin), string(RoleEmployee))
	errs.MinLength("department", in.Department, 2)
	errs.MinLength("employee_role", in.EmployeeRole, 2)
	if in.Salary != nil {
		errs.NonNegative("salary", *in.Salary)
		errs.Max("salary", *in.Salary, employee.MaxSalary)
	}
	return errs.Err()
}

func checkPassword(errs *validation.Errors, password string) {
	if len(password) < minPasswordLength {
		errs.Add("password", "must be at least 6 characters")
		return
	}
	errs.MaxBytes("password", password, maxPasswordBytes)
}

// Register creates the user and its active employee profile atomically. The
// hire date is the registration day.
func (s *authService) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return RegisterResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return RegisterResult{}, err
	}

	now := s.now()
	user := User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	hired := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	profile := employee.Employee{
		ID:         uuid.New(),
		UserID:     &user.ID,
		Name:       in.Name,
		Email:      in.Email,
		Role:       in.EmployeeRole,
		Department: in.Department,
		Status:     employee.StatusActive,
		Phone:      in.Phone,
		Address:    in.Address,
		Salary:     in.Salary,
		HireDate:   &hired,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, user); err != nil {
			return err
		}
		return s.employees.Create(txCtx, profile)
	})
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{UserID: user.ID, EmployeeID: profile.ID}, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *authService) Logout(ctx context.Context, id Identity) error {
	if s.revoker == nil || id.TokenID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, id.TokenID, id.ExpiresAt)
}
