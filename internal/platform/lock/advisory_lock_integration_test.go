//go:build integration

package lock

import (
	"context"
	"testing"

	"github.com/jinford/log-indexer/internal/platform/database/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_TryLock_Integration(t *testing.T) {
	locker := NewLocker(dbtest.NewPostgres(t))
	ctx := context.Background()

	unlock, acquired, err := locker.TryLock(ctx, "retention:project:1")
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, err = locker.TryLock(ctx, "retention:project:1")
	require.NoError(t, err)
	assert.False(t, acquired)

	other, acquired, err := locker.TryLock(ctx, "retention:project:2")
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))

	again, acquired, err := locker.TryLock(ctx, "retention:project:1")
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, again(ctx))
}
