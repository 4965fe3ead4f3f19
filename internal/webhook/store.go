package webhook

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Store.Get when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// Store is the shared TTL-capable key-value store behind deduplication and
// per-event locking. It is injected at construction so tests can substitute
// a deterministic double for the Redis-backed implementation.
type Store interface {
	// SetIfAbsent atomically writes key=value with a TTL if the key does not
	// exist. Returns false when the key was already present.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	// CompareAndDelete removes the key only if it still holds value.
	// Returns false when the key is absent or held by someone else.
	CompareAndDelete(ctx context.Context, key, value string) (bool, error)
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Key namespace owned exclusively by this package.
func processedKey(eventID string) string { return "webhook:processed:" + eventID }
func lockKey(eventID string) string      { return "webhook:lock:" + eventID }
func attemptsKey(eventID string) string  { return "webhook:attempts:" + eventID }
