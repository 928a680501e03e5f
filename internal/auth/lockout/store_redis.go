package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "attrisk:lockout:"

// RedisStore counts failures in Redis so lockouts hold across replicas.
// Expiry is handled by Redis TTLs; no sweeping is needed.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore constructs a Redis-backed lockout store.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IncrementFailures(ctx context.Context, identifier string, window time.Duration) (int, error) {
	key := redisKeyPrefix + identifier

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("increment lockout counter: %w", err)
	}
	// First failure in the window starts the TTL; later failures do not
	// extend it, matching the fixed-window policy.
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("set lockout TTL: %w", err)
		}
	}
	return int(count), nil
}

func (s *RedisStore) FailureCount(ctx context.Context, identifier string) (int, error) {
	count, err := s.client.Get(ctx, redisKeyPrefix+identifier).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read lockout counter: %w", err)
	}
	return count, nil
}

func (s *RedisStore) Clear(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("clear lockout counter: %w", err)
	}
	return nil
}
