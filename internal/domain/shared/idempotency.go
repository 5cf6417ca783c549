package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks processed message keys so that external callbacks
// (payment notifications in particular) can be safely replayed.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release removes a key so the callback can be redelivered. Used when
	// processing fails after the key was marked.
	Release(ctx context.Context, key string) error
}
