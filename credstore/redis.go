package credstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps backend failures so callers can branch on
// availability without inspecting go-redis internals.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Redis is a go-redis backed Store for deployments that keep one user's
// tokens alive across process restarts (CLI daemons, server-side proxies).
type Redis struct {
	client redis.UniversalClient
	prefix string

	now func() time.Time
}

// NewRedis creates a Redis store. An empty prefix defaults to "goac:".
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "goac:"
	}
	return &Redis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get implements [Store].
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return value, true, nil
}

// Set implements [Store]. A zero expiry stores the value without a TTL; an
// already-past expiry is treated as an immediate removal.
func (r *Redis) Set(ctx context.Context, key, value string, expiry time.Time) error {
	var ttl time.Duration
	if !expiry.IsZero() {
		ttl = expiry.Sub(r.now())
		if ttl <= 0 {
			return r.Remove(ctx, key)
		}
	}

	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Remove implements [Store]. Removing an absent key is not an error.
func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
