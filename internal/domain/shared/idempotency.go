package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already handled.
// Event handlers store event IDs; the HTTP layer stores Idempotency-Key
// headers together with the response that was produced for them.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already processed.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// SaveResult stores the payload produced for a key
	SaveResult(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// GetResult returns the payload stored for a key, if any
	GetResult(ctx context.Context, key string) ([]byte, bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	TTL     time.Duration
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
