package common

import (
	"context"
	"fmt"
	"time"

	"airnav/groundcheck/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis and pings it once. The client is returned
// together with the ping error so the caller can decide whether to degrade.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	logging.Info("Initializing Redis client", "addr", addr, "db", db)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return client, fmt.Errorf("failed to ping Redis: %w", err)
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client, nil
}
