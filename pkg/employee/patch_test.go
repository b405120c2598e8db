package employee

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

func ptr[T any](v T) *T { return &v }

func TestPatch_SelfServiceKeepsAllowedFieldsOnly(t *testing.T) {
	t.Parallel()

	full := Patch{
		Name:       ptr("Jane"),
		Email:      ptr("jane@company.com"),
		Role:       ptr("CTO"),
		Department: ptr("Board"),
		Status:     ptr(StatusInactive),
		Phone:      ptr("+1-555-0000"),
		Address:    ptr("1 Main St"),
		Salary:     ptr(1e6),
		HireDate:   ptr(time.Now()),
	}

	got := full.SelfService()

	assert.Equal(t, Patch{Name: full.Name, Phone: full.Phone, Address: full.Address}, got)
}

func TestPatch_SelfServiceOfRestrictedOnlyIsEmpty(t *testing.T) {
	t.Parallel()

	p := Patch{Salary: ptr(10.0), Role: ptr("Boss")}.SelfService()
	assert.True(t, p.Empty())

	err := p.Validate()
	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "body", verr[0].Field)
}

func TestPatch_ValidateFields(t *testing.T) {
	t.Parallel()

	p := Patch{Name: ptr("J"), Status: ptr(Status("retired")), Salary: ptr(-5.0)}
	err := p.Validate()

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr, 3)
}

func TestPatch_Apply(t *testing.T) {
	t.Parallel()

	e := Employee{Name: "Old", Email: "old@company.com", Status: StatusActive}
	Patch{Name: ptr("New"), Phone: ptr("123")}.Apply(&e)

	assert.Equal(t, "New", e.Name)
	assert.Equal(t, "old@company.com", e.Email)
	require.NotNil(t, e.Phone)
	assert.Equal(t, "123", *e.Phone)
}

func TestNewEmployee_NormalizeAndValidate(t *testing.T) {
	t.Parallel()

	in := NewEmployee{Name: "  Ann Lee ", Email: " Ann@Company.com", Role: "Designer", Department: "Marketing", Status: StatusPending}
	in.normalize()

	assert.Equal(t, "Ann Lee", in.Name)
	assert.Equal(t, "ann@company.com", in.Email)
	assert.NoError(t, in.Validate())

	bad := NewEmployee{Name: "A", Email: "nope", Role: "", Department: "X", Status: "gone"}
	var verr validation.Errors
	require.True(t, errors.As(bad.Validate(), &verr))
	assert.Len(t, verr, 5)
}

func TestNewEmployee_StatusRequired(t *testing.T) {
	t.Parallel()

	in := NewEmployee{Name: "Ann Lee", Email: "ann@company.com", Role: "Designer", Department: "Marketing"}
	in.normalize()

	var verr validation.Errors
	require.True(t, errors.As(in.Validate(), &verr))
	require.Len(t, verr, 1)
	assert.Equal(t, "status", verr[0].Field)
}

func TestSalaryUpperBound(t *testing.T) {
	t.Parallel()

	limit, over := MaxSalary, 1e9
	in := NewEmployee{Name: "Ann Lee", Email: "ann@company.com", Role: "Designer", Department: "Marketing", Status: StatusActive}

	in.Salary = &limit
	assert.NoError(t, in.Validate())
	assert.NoError(t, Patch{Salary: &limit}.Validate())

	in.Salary = &over
	var verr validation.Errors
	require.True(t, errors.As(in.Validate(), &verr))
	assert.Equal(t, "salary", verr[0].Field)

	require.True(t, errors.As(Patch{Salary: &over}.Validate(), &verr))
	assert.Equal(t, "salary", verr[0].Field)
}
