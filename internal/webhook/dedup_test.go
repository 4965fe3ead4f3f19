package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestGuard(store Store) *Guard {
	return NewGuard(store, 30*time.Second, 24*time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGuardLockIsExclusive(t *testing.T) {
	store := newFakeStore()
	guard := newTestGuard(store)
	ctx := context.Background()

	token, err := guard.AcquireLock(ctx, "evt_1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = guard.AcquireLock(ctx, "evt_1")
	require.Error(t, err)
	require.Equal(t, KindLockContention, KindOf(err))
	require.True(t, KindOf(err).Retryable())

	// A different event is unaffected.
	_, err = guard.AcquireLock(ctx, "evt_2")
	require.NoError(t, err)
}

func TestGuardReleaseRequiresOwnership(t *testing.T) {
	store := newFakeStore()
	guard := newTestGuard(store)
	ctx := context.Background()

	token, err := guard.AcquireLock(ctx, "evt_1")
	require.NoError(t, err)

	// A stale attempt presenting the wrong token must not free the lock.
	guard.ReleaseLock(ctx, "evt_1", "someone-elses-token")
	require.True(t, store.has(lockKey("evt_1")))

	guard.ReleaseLock(ctx, "evt_1", token)
	require.False(t, store.has(lockKey("evt_1")))

	// Lock is acquirable again after a proper release.
	_, err = guard.AcquireLock(ctx, "evt_1")
	require.NoError(t, err)
}

func TestGuardProcessedMarker(t *testing.T) {
	store := newFakeStore()
	guard := newTestGuard(store)
	ctx := context.Background()

	done, err := guard.IsProcessed(ctx, "evt_1")
	require.NoError(t, err)
	require.False(t, done)

	require.NoError(t, guard.MarkProcessed(ctx, "evt_1"))

	done, err = guard.IsProcessed(ctx, "evt_1")
	require.NoError(t, err)
	require.True(t, done)
}

func TestGuardFailsClosedOnStoreOutage(t *testing.T) {
	store := newFakeStore()
	store.failAll = errors.New("connection refused")
	guard := newTestGuard(store)
	ctx := context.Background()

	_, err := guard.AcquireLock(ctx, "evt_1")
	require.Equal(t, KindDependencyUnavailable, KindOf(err))

	_, err = guard.IsProcessed(ctx, "evt_1")
	require.Equal(t, KindDependencyUnavailable, KindOf(err))

	err = guard.MarkProcessed(ctx, "evt_1")
	require.Equal(t, KindDependencyUnavailable, KindOf(err))
}

func TestGuardCountAttemptFailsOpen(t *testing.T) {
	store := newFakeStore()
	guard := newTestGuard(store)
	ctx := context.Background()

	require.Equal(t, int64(1), guard.CountAttempt(ctx, "evt_1"))
	require.Equal(t, int64(2), guard.CountAttempt(ctx, "evt_1"))

	store.failAll = errors.New("connection refused")
	require.Equal(t, int64(0), guard.CountAttempt(ctx, "evt_1"))
}
