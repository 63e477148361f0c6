package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"noteblog/internal/blog/ports/cache"
)

// ErrorFailedToCount - ошибка выполнения скрипта счетчика.
const ErrorFailedToCount = "failed to count rate limit window"

// fixedWindow увеличивает счетчик и задает срок жизни окна при первом обращении.
var fixedWindow = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if tonumber(current) == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisRateLimiter - ограничитель с фиксированным окном на ключ.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
}

// NewRedisRateLimiter создает ограничитель. Ключи хранятся как <prefix>:rate:<key>.
func NewRedisRateLimiter(client *redis.Client, prefix string) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix}
}

var _ cache.RateLimiter = (*RedisRateLimiter)(nil)

// Allow сообщает, укладывается ли очередное действие в лимит окна.
// При ошибке Redis возвращает true вместе с ошибкой.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := fixedWindow.Run(ctx, l.client, []string{l.prefix + ":rate:" + key}, window.Milliseconds()).Int()
	if err != nil {
		return true, fmt.Errorf("%s: %w", ErrorFailedToCount, err)
	}
	return count <= limit, nil
}
