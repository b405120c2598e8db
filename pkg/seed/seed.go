// Package seed loads demo data for local development.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/PriyanshiDabral/Employee-Management/pkg/auth"
	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

type Fixtures struct {
	Admin     AdminProfile      `yaml:"admin"`
	Employees []EmployeeFixture `yaml:"employees"`
}

type AdminProfile struct {
	Name         string `yaml:"name"`
	Department   string `yaml:"department"`
	EmployeeRole string `yaml:"employee_role"`
}

type EmployeeFixture struct {
	Name       string  `yaml:"name"`
	Email      string  `yaml:"email"`
	Role       string  `yaml:"role"`
	Department string  `yaml:"department"`
	Status     string  `yaml:"status"`
	Phone      string  `yaml:"phone"`
	Address    string  `yaml:"address"`
	Salary     float64 `yaml:"salary"`
	HireDate   string  `yaml:"hire_date"`
}

// Parse decodes a fixtures document.
func Parse(raw []byte) (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return f, nil
}

// Default returns the embedded demo fixtures.
func Default() (Fixtures, error) {
	return Parse(defaultFixtures)
}

// Registrar creates a login together with its profile.
type Registrar interface {
	Register(ctx context.Context, in auth.RegisterInput) (auth.RegisterResult, error)
}

// Creator creates standalone profiles.
type Creator interface {
	Create(ctx context.Context, actor employee.Actor, in employee.NewEmployee) (employee.Employee, error)
}

type Result struct {
	AdminCreated bool
	Created      int
	Skipped      int
}

// Run creates the administrator and the sample employees. Records that already
// exist are skipped, so Run is safe to repeat on every start.
func Run(ctx context.Context, users Registrar, employees Creator, adminEmail, adminPassword string, f Fixtures) (Result, error) {
	var res Result

	_, err := users.Register(ctx, auth.RegisterInput{
		Email:        adminEmail,
		Password:     adminPassword,
		Name:         f.Admin.Name,
		Role:         auth.RoleAdmin,
		Department:   f.Admin.Department,
		EmployeeRole: f.Admin.EmployeeRole,
	})
	switch {
	case err == nil:
		res.AdminCreated = true
		log.Printf("seed: admin user %s created", adminEmail)
	case errors.Is(err, auth.ErrUserAlreadyExists), errors.Is(err, employee.ErrEmailTaken):
		log.Printf("seed: admin user %s already present", adminEmail)
	default:
		return res, fmt.Errorf("seed admin: %w", err)
	}

	// only the admin flag is checked by Create
	actor := employee.Actor{UserID: uuid.Nil, Admin: true}
	for _, fx := range f.Employees {
		in, err := fx.toNewEmployee()
		if err != nil {
			return res, fmt.Errorf("seed %s: %w", fx.Email, err)
		}
		if _, err := employees.Create(ctx, actor, in); err != nil {
			if errors.Is(err, employee.ErrEmailTaken) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("seed %s: %w", fx.Email, err)
		}
		res.Created++
	}
	log.Printf("seed: %d sample employees created, %d already present", res.Created, res.Skipped)
	return res, nil
}

func (fx EmployeeFixture) toNewEmployee() (employee.NewEmployee, error) {
	in := employee.NewEmployee{
		Name:       fx.Name,
		Email:      fx.Email,
		Role:       fx.Role,
		Department: fx.Department,
		Status:     employee.Status(fx.Status),
	}
	if fx.Phone != "" {
		in.Phone = &fx.Phone
	}
	if fx.Address != "" {
		in.Address = &fx.Address
	}
	if fx.Salary > 0 {
		in.Salary = &fx.Salary
	}
	if fx.HireDate != "" {
		t, err := time.Parse(validation.DateLayout, fx.HireDate)
		if err != nil {
			return employee.NewEmployee{}, fmt.Errorf("hire_date: %w", err)
		}
		in.HireDate = &t
	}
	return in, nil
}
