package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter счетчик с фиксированным окном в Redis.
// Счетчик общий для всех экземпляров сервиса.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisLimiter создает лимитер: не больше limit запросов за period на ключ
func NewRedisLimiter(client *redis.Client, prefix string, limit int, period time.Duration) (*RedisLimiter, error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidConfig
	}
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(limit),
		window: period,
	}, nil
}

// Allow увеличивает счетчик текущего окна и сравнивает его с лимитом
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, windowStart)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("%w: Allow - incr: %v", ErrStore, err)
	}

	// Первый запрос окна ставит TTL, ключ живет не дольше окна
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("%w: Allow - expire: %v", ErrStore, err)
		}
	}

	return count <= l.limit, nil
}
