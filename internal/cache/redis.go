package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a shared redis instance, for deployments
// where multiple application processes should share generation results.
type Redis struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis wraps an initialized redis client. The caller owns the
// client's lifecycle. If logger is nil, a default logger is used.
func NewRedis(client *redis.Client, logger *slog.Logger) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Redis{
		client: client,
		logger: logger.With(slog.String("component", "redis_cache")),
	}
}

// Ensure Redis implements the Cache interface
var _ Cache = (*Redis)(nil)

// Get implements Cache.Get. Transport errors are logged and reported as
// a miss; the pipeline then regenerates instead of failing.
func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		r.logger.WarnContext(ctx, "cache read failed, treating as miss", "error", err)
		return "", false
	}
	return value, true
}

// Set implements Cache.Set.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// DeletePrefix implements Cache.DeletePrefix using SCAN so a large
// keyspace is never blocked by a single KEYS call.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
