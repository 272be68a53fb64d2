package common

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenStore implements TokenStore using Redis so claims are shared
// between server instances and survive restarts.
type RedisTokenStore struct {
	client *redis.Client
}

// Ensure RedisTokenStore implements TokenStore
var _ TokenStore = (*RedisTokenStore)(nil)

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// Claim relies on SETNX so two concurrent claims cannot both succeed.
func (r *RedisTokenStore) Claim(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, tokenID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim token: %w", err)
	}
	return ok, nil
}

// Close closes the Redis connection
func (r *RedisTokenStore) Close() error {
	return r.client.Close()
}
