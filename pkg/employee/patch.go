package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

// NewEmployee is the input for creating a profile.
type NewEmployee struct {
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
}

func (in *NewEmployee) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	in.Department = strings.TrimSpace(in.Department)
	in.Phone = trimmed(in.Phone)
	in.Address = trimmed(in.Address)
}

func (in NewEmployee) Validate() error {
	var errs validation.Errors
	errs.MinLength("name", in.Name, 2)
	errs.Email("email", in.Email)
	errs.MinLength("role", in.Role, 2)
	errs.MinLength("department", in.Department, 2)
	errs.OneOf("status", string(in.Status), statusNames()...)
	if in.Salary != nil {
		errs.NonNegative("salary", *in.Salary)
		errs.Max("salary", *in.Salary, MaxSalary)
	}
	return errs.Err()
}

// Patch is an explicit set of field changes; nil means "leave unchanged".
type Patch struct {
	Name       *string
	Email      *string
	Role       *string
	Department *string
	Status     *Status
	Phone      *string
	Address    *string
	Salary     *float64
	HireDate   *time.Time
}

// SelfService keeps only the fields an employee may change on their own profile.
func (p Patch) SelfService() Patch {
	return Patch{Name: p.Name, Phone: p.Phone, Address: p.Address}
}

func (p Patch) Empty() bool {
	return p == Patch{}
}

func (p *Patch) normalize() {
	p.Name = trimmed(p.Name)
	if p.Email != nil {
		e := validation.NormalizeEmail(*p.Email)
		p.Email = &e
	}
	p.Role = trimmed(p.Role)
	p.Department = trimmed(p.Department)
	p.Phone = trimmed(p.Phone)
	p.Address = trimmed(p.Address)
}

func (p Patch) Validate() error {
	var errs validation.Errors
	if p.Empty() {
		errs.Add("body", "no valid fields to update")
		return errs
	}
	if p.Name != nil {
		errs.MinLength("name", *p.Name, 2)
	}
	if p.Email != nil {
		errs.Email("email", *p.Email)
	}
	if p.Role != nil {
		errs.MinLength("role", *p.Role, 2)
	}
	if p.Department != nil {
		errs.MinLength("department", *p.Department, 2)
	}
	if p.Status != nil {
		errs.OneOf("status", string(*p.Status), statusNames()...)
	}
	if p.Salary != nil {
		errs.NonNegative("salary", *p.Salary)
		errs.Max("salary", *p.Salary, MaxSalary)
	}
	return errs.Err()
}

// Apply copies the set fields onto e.
func (p Patch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Phone != nil {
		e.Phone = p.Phone
	}
	if p.Address != nil {
		e.Address = p.Address
	}
	if p.Salary != nil {
		e.Salary = p.Salary
	}
	if p.HireDate != nil {
		e.HireDate = p.HireDate
	}
}

func statusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return names
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
