package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisLimiter shares counters between replicas: INCR + EXPIRE NX per window.
type RedisLimiter struct {
	rdb *goredis.Client
}

func NewRedisLimiter(addr, password string) (*RedisLimiter, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisLimiter{rdb: rdb}, nil
}

// NewRedisLimiterFromClient wraps an existing client.
func NewRedisLimiterFromClient(rdb *goredis.Client) *RedisLimiter {
	return &RedisLimiter{rdb: rdb}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	var incr *goredis.IntCmd
	var ttl *goredis.DurationCmd

	_, err := l.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, 0, fmt.Errorf("redis rate limit: %w", err)
	}

	if incr.Val() > int64(limit) {
		retry := ttl.Val()
		if retry <= 0 {
			retry = window
		}
		return false, retry, nil
	}
	return true, 0, nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, key).Err()
}

func (l *RedisLimiter) Close() error {
	return l.rdb.Close()
}
