package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PriyanshiDabral/Employee-Management/pkg/employee"
	"github.com/PriyanshiDabral/Employee-Management/pkg/validation"
)

type plainHasher struct{ compares int }

func (h *plainHasher) Hash(p string) (string, error) {
	if len(p) > 72 {
		return "", errors.New("password length exceeds 72 bytes")
	}
	return "hashed:" + p, nil
}

func (h *plainHasher) Compare(hash, p string) error {
	h.compares++
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type fakeUsers struct {
	byEmail map[string]Account
}

func (r *fakeUsers) Create(_ context.Context, u User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	r.byEmail[u.Email] = Account{User: u}
	return nil
}

func (r *fakeUsers) GetAccountByEmail(_ context.Context, email string) (Account, error) {
	a, ok := r.byEmail[email]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

type fakeEmployees struct {
	created []employee.Employee
	err     error
}

func (r *fakeEmployees) Create(_ context.Context, e employee.Employee) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, e)
	return nil
}

// directTx runs fn and, like a real transaction, discards user writes on failure.
type directTx struct{ users *fakeUsers }

func (d directTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	snapshot := make(map[string]Account, len(d.users.byEmail))
	for k, v := range d.users.byEmail {
		snapshot[k] = v
	}
	if err := fn(ctx); err != nil {
		d.users.byEmail = snapshot
		return err
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, a Account) (string, error) {
	return "token-for-" + a.ID.String(), nil
}

type recordingRevoker struct {
	revoked map[string]time.Time
}

func (r *recordingRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.revoked[id] = until
	return nil
}

func (r *recordingRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

type fixture struct {
	svc       AuthUseCase
	users     *fakeUsers
	employees *fakeEmployees
	hasher    *plainHasher
	revoker   *recordingRevoker
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := &fakeUsers{byEmail: map[string]Account{}}
	employees := &fakeEmployees{}
	hasher := &plainHasher{}
	revoker := &recordingRevoker{revoked: map[string]time.Time{}}
	svc, err := NewAuthService(Deps{
		Users:     users,
		Employees: employees,
		Tx:        directTx{users: users},
		Hasher:    hasher,
		Tokens:    stubTokens{},
		Revoker:   revoker,
	})
	require.NoError(t, err)
	return fixture{svc: svc, users: users, employees: employees, hasher: hasher, revoker: revoker}
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:        "  New.Hire@Company.com ",
		Password:     "secret123",
		Name:         "New Hire",
		Role:         RoleEmployee,
		Department:   "Engineering",
		EmployeeRole: "Software Engineer",
	}
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	acc, ok := f.users.byEmail["new.hire@company.com"]
	require.True(t, ok, "email stored normalized")
	assert.Equal(t, res.UserID, acc.ID)
	assert.Equal(t, "hashed:secret123", acc.PasswordHash)

	require.Len(t, f.employees.created, 1)
	profile := f.employees.created[0]
	assert.Equal(t, res.EmployeeID, profile.ID)
	require.NotNil(t, profile.UserID)
	assert.Equal(t, res.UserID, *profile.UserID)
	assert.Equal(t, employee.StatusActive, profile.Status)
	assert.Equal(t, "Software Engineer", profile.Role)
	require.NotNil(t, profile.HireDate)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, validRegistration())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, f.employees.created, 1)
}

func TestRegister_ProfileEmailTakenRollsBackUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.employees.err = employee.ErrEmailTaken

	_, err := f.svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, employee.ErrEmailTaken)
	assert.Empty(t, f.users.byEmail)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "bad", Password: "123", Role: "root"})

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, fe := range verr {
		fields[fe.Field] = true
	}
	for _, want := range []string{"email", "password", "name", "role", "department", "employee_role"} {
		assert.True(t, fields[want], want)
	}
	assert.Empty(t, f.users.byEmail)
}

func TestRegister_OverlongPasswordIsValidationError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	in := validRegistration()
	in.Password = strings.Repeat("a", 80)
	_, err := f.svc.Register(context.Background(), in)

	var verr validation.Errors
	require.True(t, errors.As(err, &verr), "got %v", err)
	require.Len(t, verr, 1)
	assert.Equal(t, "password", verr[0].Field)
	assert.Empty(t, f.users.byEmail)

	in.Password = strings.Repeat("a", 72)
	_, err = f.svc.Register(context.Background(), in)
	assert.NoError(t, err)
}

func TestRegister_SalaryUpperBound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	in := validRegistration()
	salary := 1e9
	in.Salary = &salary
	_, err := f.svc.Register(context.Background(), in)

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "salary", verr[0].Field)
	assert.Empty(t, f.employees.created)
}

func TestLogin_OverlongPasswordIsValidationError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	before := f.hasher.compares
	_, err := f.svc.Login(context.Background(), "new.hire@company.com", strings.Repeat("a", 80))

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr[0].Field)
	assert.Equal(t, before, f.hasher.compares)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	reg, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	res, err := f.svc.Login(ctx, "NEW.HIRE@company.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, res.Account.ID)
	assert.Equal(t, "token-for-"+reg.UserID.String(), res.Token)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	before := f.hasher.compares
	_, wrongPass := f.svc.Login(ctx, "new.hire@company.com", "wrong-password")
	_, unknown := f.svc.Login(ctx, "ghost@company.com", "wrong-password")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass, unknown)
	assert.Equal(t, before+2, f.hasher.compares, "both paths compare a hash")
}

func TestLogin_MalformedInputIsValidationError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.Login(context.Background(), "not-an-email", "123")
	var verr validation.Errors
	assert.True(t, errors.As(err, &verr))
}

func TestLogout_RevokesUntilExpiry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	exp := time.Now().Add(time.Hour)
	require.NoError(t, f.svc.Logout(context.Background(), Identity{TokenID: "jti-1", ExpiresAt: exp}))

	assert.Equal(t, exp, f.revoker.revoked["jti-1"])
}
