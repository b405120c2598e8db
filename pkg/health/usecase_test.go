package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name  string
	err   error
	calls int
}

func (f *fakeChecker) Name() string { return f.name }

func (f *fakeChecker) Check(context.Context) error {
	f.calls++
	return f.err
}

func TestReady_AllHealthy(t *testing.T) {
	t.Parallel()

	db, cache := &fakeChecker{name: "postgres"}, &fakeChecker{name: "redis"}
	require.NoError(t, NewService(db, nil, cache).Ready(context.Background()))
	assert.Equal(t, 1, db.calls)
	assert.Equal(t, 1, cache.calls)
}

func TestReady_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	down := errors.New("connection refused")
	db := &fakeChecker{name: "postgres", err: down}
	cache := &fakeChecker{name: "redis"}

	err := NewService(db, cache).Ready(context.Background())
	require.ErrorIs(t, err, down)
	var dep *DependencyError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, "postgres", dep.Dependency)
	assert.Equal(t, "postgres: connection refused", err.Error())
	assert.Zero(t, cache.calls)
}
