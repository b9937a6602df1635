package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

// GetJSON loads the value at key into dest. Returns false when the key
// is absent, Redis is unavailable, or the payload fails to decode.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	ctx, span := observability.TraceRedisOperation(ctx, "get")
	defer span.End()
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			observability.RecordErrorInContext(ctx, err)
		}
		observability.RecordCacheMiss()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Corrupt entry, drop it so the next write replaces it.
		client.Del(ctx, key)
		observability.RecordCacheMiss()
		return false
	}
	observability.RecordCacheHit()
	return true
}

// Aside implements the cache-aside pattern: serve dest from the cache
// when possible, otherwise run fetch to populate dest and store it.
// fetch errors are returned as-is and nothing is cached.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}

// SetJSON stores value at key with the given TTL. Failures are silent;
// the cache is best effort.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}
