// Package cache stores generated narrative answers in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "propman:narrative:"

// Config holds Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NarrativeCache is a TTL-bounded key/value store for AI narratives.
type NarrativeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from cfg.
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// New wraps client. A zero ttl keeps entries until evicted.
func New(client *redis.Client, ttl time.Duration) *NarrativeCache {
	return &NarrativeCache{client: client, ttl: ttl}
}

// Get returns the cached value for key and whether it was present.
func (c *NarrativeCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read narrative cache: %w", err)
	}
	return val, true, nil
}

// Set stores value under key for the configured TTL.
func (c *NarrativeCache) Set(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, keyPrefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write narrative cache: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *NarrativeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *NarrativeCache) Close() error {
	return c.client.Close()
}
