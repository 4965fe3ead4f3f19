package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Guard provides event-level deduplication and distributed mutual exclusion
// over the shared store. Deliveries may land on any instance concurrently,
// so coordination has to live outside the process.
//
// The dedup/lock path fails closed: if the store is unreachable the attempt
// reports a retryable failure instead of proceeding unchecked, because
// skipping the check risks double-applying financial side effects.
type Guard struct {
	store    Store
	lockTTL  time.Duration
	dedupTTL time.Duration
	log      *slog.Logger
}

func NewGuard(store Store, lockTTL, dedupTTL time.Duration, log *slog.Logger) *Guard {
	return &Guard{
		store:    store,
		lockTTL:  lockTTL,
		dedupTTL: dedupTTL,
		log:      log.With("component", "webhook_guard"),
	}
}

// AcquireLock claims the per-event lock for one processing attempt and
// returns the ownership token required to release it. A live lock held by
// another attempt yields a KindLockContention error.
func (g *Guard) AcquireLock(ctx context.Context, eventID string) (string, error) {
	token := uuid.New().String()

	ok, err := g.store.SetIfAbsent(ctx, lockKey(eventID), token, g.lockTTL)
	if err != nil {
		return "", Dependency(fmt.Errorf("acquire lock for %s: %w", eventID, err))
	}
	if !ok {
		return "", Contention(fmt.Errorf("event %s is locked by another attempt", eventID))
	}

	return token, nil
}

// ReleaseLock removes the lock only if this attempt still owns it. A lock
// that expired and was re-acquired by a newer attempt must not be deleted by
// the stale holder, hence compare-and-delete rather than a blind delete.
func (g *Guard) ReleaseLock(ctx context.Context, eventID, token string) {
	ok, err := g.store.CompareAndDelete(ctx, lockKey(eventID), token)
	if err != nil {
		// The TTL will reap the lock; nothing more to do here.
		g.log.Warn("failed to release event lock", "event_id", eventID, "error", err)
		return
	}
	if !ok {
		g.log.Warn("event lock no longer owned by this attempt", "event_id", eventID)
	}
}

// IsProcessed reports whether a completed attempt already recorded this
// event inside the dedup TTL window.
func (g *Guard) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	_, err := g.store.Get(ctx, processedKey(eventID))
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, Dependency(fmt.Errorf("dedup lookup for %s: %w", eventID, err))
	}
	return true, nil
}

// MarkProcessed records the event as done. Only the orchestration layer
// calls this, strictly after the handler returned without error.
func (g *Guard) MarkProcessed(ctx context.Context, eventID string) error {
	_, err := g.store.SetIfAbsent(ctx, processedKey(eventID), time.Now().UTC().Format(time.RFC3339), g.dedupTTL)
	if err != nil {
		return Dependency(fmt.Errorf("mark %s processed: %w", eventID, err))
	}
	return nil
}

// CountAttempt bumps the per-event delivery counter. Purely observational,
// so this path deliberately fails open: a store hiccup degrades the logged
// attempt number, never the processing decision.
func (g *Guard) CountAttempt(ctx context.Context, eventID string) int64 {
	n, err := g.store.Increment(ctx, attemptsKey(eventID), g.dedupTTL)
	if err != nil {
		g.log.Warn("failed to count delivery attempt", "event_id", eventID, "error", err)
		return 0
	}
	return n
}
