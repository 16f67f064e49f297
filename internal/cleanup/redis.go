package cleanup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisKey = "resume:cleanup"

// RedisRegistry stores pending deletions in a sorted set scored by the
// deletion time in unix milliseconds, so they survive restarts and are shared
// between replicas.
type RedisRegistry struct {
	client *redis.Client
	key    string
}

func NewRedisRegistry(client *redis.Client, key string) *RedisRegistry {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRegistry{client: client, key: key}
}

func (r *RedisRegistry) Schedule(ctx context.Context, name string, at time.Time) error {
	// LT keeps the earliest deletion time when a file is downloaded twice.
	err := r.client.ZAddArgs(ctx, r.key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: float64(at.UnixMilli()), Member: name}},
	}).Err()
	if err != nil {
		return fmt.Errorf("schedule cleanup %s: %w", name, err)
	}
	return nil
}

func (r *RedisRegistry) Due(ctx context.Context, now time.Time) ([]string, error) {
	names, err := r.client.ZRangeByScore(ctx, r.key, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("get due cleanups: %w", err)
	}
	return names, nil
}

func (r *RedisRegistry) Done(ctx context.Context, name string) error {
	if err := r.client.ZRem(ctx, r.key, name).Err(); err != nil {
		return fmt.Errorf("complete cleanup %s: %w", name, err)
	}
	return nil
}
