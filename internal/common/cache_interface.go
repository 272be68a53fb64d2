package common

import (
	"context"
	"time"
)

// TokenStore records which single-use tokens have been spent.
type TokenStore interface {
	// Claim marks tokenID as used for ttl. It reports false when the token
	// had already been claimed.
	Claim(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
