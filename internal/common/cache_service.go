package common

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryTokenStore is the in-process TokenStore used when Redis is disabled.
// Claims are lost on restart, which only shortens a token's useful life.
type MemoryTokenStore struct {
	cache *cache.Cache
}

// Ensure MemoryTokenStore implements TokenStore
var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore(cleanUpInterval time.Duration) *MemoryTokenStore {
	return &MemoryTokenStore{cache: cache.New(cache.NoExpiration, cleanUpInterval)}
}

// Claim uses cache.Add, which fails when the key is already present.
func (s *MemoryTokenStore) Claim(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if err := s.cache.Add(tokenID, true, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryTokenStore) Close() error {
	return nil
}
