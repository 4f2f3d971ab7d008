package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const Window = time.Minute

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter counts requests per key in fixed one-minute windows.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	now    func() time.Time
}

// Connect dials redis and verifies the connection before returning.
func Connect(ctx context.Context, addr, password string, db int, logger *logrus.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithField("addr", addr).Info("connected to redis")
	return client, nil
}

func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  int64(perMinute),
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.increment(ctx, Key(key, l.now()))
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}

func (l *RedisLimiter) increment(ctx context.Context, key string) (int64, error) {
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("increment with expiry: %w", err)
	}
	return incr.Val(), nil
}

// Key names the counter for client in the window containing t.
func Key(client string, t time.Time) string {
	return fmt.Sprintf("jobly:ratelimit:%s:%d", client, t.Unix()/int64(Window/time.Second))
}

var _ Limiter = (*RedisLimiter)(nil)
