// Package redis holds the process-wide Redis handle. The backend keeps three
// kinds of state here: the shared bank-catalog cache, the short-lived rates
// cache, and the per-user onboarding lock.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

var client *redis.Client

// Init connects the package-level client and verifies the connection with a
// ping before anything depends on it.
func Init(url, password string) error {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	client = c
	return nil
}

// SetClient swaps the package-level client; tests point it at miniredis.
func SetClient(c *redis.Client) {
	client = c
}

// Set writes a key with a TTL.
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return client.Set(ctx, key, value, ttl).Err()
}

// Get returns the value at key. A miss surfaces go-redis's Nil error.
func Get(ctx context.Context, key string) (string, error) {
	return client.Get(ctx, key).Result()
}

// Del drops a key. Deleting an absent key is not an error.
func Del(ctx context.Context, key string) error {
	return client.Del(ctx, key).Err()
}

// SetNX claims key if it is vacant and reports whether the claim won. This is
// the primitive behind the onboarding lock.
func SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	return client.SetNX(ctx, key, value, ttl).Result()
}
