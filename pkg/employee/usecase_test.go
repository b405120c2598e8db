package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

type fakeRepo struct {
	rows       map[uuid.UUID]Employee
	lastFilter Filter
	updates    int
}

func newFakeRepo(rows ...Employee) *fakeRepo {
	r := &fakeRepo{rows: make(map[uuid.UUID]Employee)}
	for _, e := range rows {
		r.rows[e.ID] = e
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, e Employee) error {
	for _, existing := range r.rows {
		if existing.Email == e.Email {
			return ErrEmailTaken
		}
	}
	r.rows[e.ID] = e
	return nil
}

func (r *fakeRepo) Update(_ context.Context, e Employee) error {
	if _, ok := r.rows[e.ID]; !ok {
		return ErrNotFound
	}
	r.updates++
	r.rows[e.ID] = e
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (Employee, error) {
	e, ok := r.rows[id]
	if !ok {
		return Employee{}, ErrNotFound
	}
	return e, nil
}

func (r *fakeRepo) List(_ context.Context, f Filter) ([]Employee, error) {
	r.lastFilter = f
	var out []Employee
	for _, e := range r.rows {
		if f.OwnerID != nil && !e.OwnedBy(*f.OwnerID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeRepo) Stats(context.Context) (Stats, error) {
	return Stats{Total: len(r.rows)}, nil
}

var (
	adminID = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	aliceID = uuid.MustParse("00000000-0000-0000-0000-0000000000b1")
	bobID   = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")

	admin = Actor{UserID: adminID, Admin: true}
	alice = Actor{UserID: aliceID}
)

func fixtures() (Employee, Employee) {
	a := Employee{
		ID: uuid.New(), UserID: ptr(aliceID), Name: "Alice", Email: "alice@company.com",
		Role: "Engineer", Department: "Engineering", Status: StatusActive, Salary: ptr(100.0),
	}
	b := Employee{
		ID: uuid.New(), UserID: ptr(bobID), Name: "Bob", Email: "bob@company.com",
		Role: "Accountant", Department: "Finance", Status: StatusPending,
	}
	return a, b
}

func TestService_ListScopesNonAdminToOwnRows(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	repo := newFakeRepo(a, b)
	svc := NewService(repo, nil)

	got, err := svc.List(context.Background(), alice, ListQuery{SortBy: SortByName, Order: Asc})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.OwnerID)
	assert.Equal(t, aliceID, *repo.lastFilter.OwnerID)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestService_ListAdminUnrestricted(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	repo := newFakeRepo(a, b)
	svc := NewService(repo, nil)

	got, err := svc.List(context.Background(), admin, ListQuery{Department: "Finance"})
	require.NoError(t, err)

	assert.Nil(t, repo.lastFilter.OwnerID)
	assert.Equal(t, "Finance", repo.lastFilter.Department)
	assert.Len(t, got, 2)
}

func TestService_GetScoping(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	svc := NewService(newFakeRepo(a, b), nil)
	ctx := context.Background()

	got, err := svc.Get(ctx, alice, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.Get(ctx, alice, b.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, alice, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, admin, b.ID)
	assert.NoError(t, err)
}

func TestService_UpdateNonAdminDropsRestrictedFields(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	repo := newFakeRepo(a, b)
	svc := NewService(repo, nil)

	got, err := svc.Update(context.Background(), alice, a.ID, Patch{
		Name:       ptr(" Alice Cooper "),
		Phone:      ptr("+1-555-0101"),
		Salary:     ptr(999999.0),
		Role:       ptr("CEO"),
		Status:     ptr(StatusInactive),
		Department: ptr("Board"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice Cooper", got.Name)
	assert.Equal(t, "+1-555-0101", *got.Phone)

	stored := repo.rows[a.ID]
	assert.Equal(t, 100.0, *stored.Salary)
	assert.Equal(t, "Engineer", stored.Role)
	assert.Equal(t, StatusActive, stored.Status)
	assert.Equal(t, "Engineering", stored.Department)
}

func TestService_UpdateNonAdminOtherRowForbidden(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	repo := newFakeRepo(a, b)
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), alice, b.ID, Patch{Name: ptr("Hacked")})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, "Bob", repo.rows[b.ID].Name)
	assert.Zero(t, repo.updates)
}

func TestService_UpdateNothingAllowedIsValidationError(t *testing.T) {
	t.Parallel()

	a, _ := fixtures()
	repo := newFakeRepo(a)
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), alice, a.ID, Patch{Salary: ptr(1.0)})

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Zero(t, repo.updates)
}

func TestService_UpdateAdminAppliesAllFields(t *testing.T) {
	t.Parallel()

	a, _ := fixtures()
	repo := newFakeRepo(a)
	svc := NewService(repo, nil)

	got, err := svc.Update(context.Background(), admin, a.ID, Patch{
		Salary: ptr(120.0),
		Status: ptr(StatusInactive),
		Email:  ptr("ALICE.NEW@company.com"),
	})
	require.NoError(t, err)

	assert.Equal(t, 120.0, *got.Salary)
	assert.Equal(t, StatusInactive, got.Status)
	assert.Equal(t, "alice.new@company.com", got.Email)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestService_UpdateMissingRow(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), nil)
	_, err := svc.Update(context.Background(), admin, uuid.New(), Patch{Name: ptr("Nobody")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CreateDuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	a, _ := fixtures()
	repo := newFakeRepo(a)
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), admin, NewEmployee{
		Name: "Alice Two", Email: "Alice@Company.com", Role: "Engineer", Department: "Engineering", Status: StatusActive,
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.rows, 1)
}

func TestService_CreateRequiresAdmin(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), alice, NewEmployee{
		Name: "Eve", Email: "eve@company.com", Role: "Engineer", Department: "Engineering", Status: StatusActive,
	})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Empty(t, repo.rows)
}

func TestService_CreateAssignsID(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewService(repo, nil)

	got, err := svc.Create(context.Background(), admin, NewEmployee{
		Name: "Eve", Email: "eve@company.com", Role: "Engineer", Department: "Engineering", Status: StatusActive,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, StatusActive, got.Status)
	assert.Contains(t, repo.rows, got.ID)
}

func TestService_DeleteMissingLeavesOthers(t *testing.T) {
	t.Parallel()

	a, b := fixtures()
	repo := newFakeRepo(a, b)
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), admin, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, repo.rows, 2)
}

func TestService_DeleteAndStatsRequireAdmin(t *testing.T) {
	t.Parallel()

	a, _ := fixtures()
	repo := newFakeRepo(a)
	svc := NewService(repo, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, alice, a.ID), ErrForbidden)
	assert.Len(t, repo.rows, 1)

	_, err := svc.Stats(ctx, alice)
	assert.ErrorIs(t, err, ErrForbidden)

	st, err := svc.Stats(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Total)
}
