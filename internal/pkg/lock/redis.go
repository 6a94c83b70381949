package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

type redisLocker struct {
	client *redislock.Client
	prefix string
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

// NewRedisLocker shares locks between API instances. ttl bounds how long a crashed
// holder can keep a key.
func NewRedisLocker(rdb *redis.Client, prefix string, ttl time.Duration) Locker {
	return &redisLocker{
		client: redislock.New(rdb),
		prefix: prefix,
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 100),
	}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	return l.obtain(ctx, key, l.retry)
}

func (l *redisLocker) TryLock(ctx context.Context, key string) (func(), error) {
	return l.obtain(ctx, key, redislock.NoRetry())
}

func (l *redisLocker) obtain(ctx context.Context, key string, retry redislock.RetryStrategy) (func(), error) {
	lockKey := fmt.Sprintf("%s:%s", l.prefix, key)
	lk, err := l.client.Obtain(ctx, lockKey, l.ttl, &redislock.Options{RetryStrategy: retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtain lock %s: %w", lockKey, err)
	}

	return func() {
		if err := lk.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.Error("Failed to release lock", "key", lockKey, "error", err)
		}
	}, nil
}
