// Package cache определяет порты кэша с тегами и ограничителя частоты запросов.
package cache

import (
	"context"
	"time"
)

// TagCache - кэш строковых значений, сгруппированных по тегам.
// Get при промахе возвращает "", nil. ttl == 0 означает окно ревалидации по умолчанию.
type TagCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error
	InvalidateTags(ctx context.Context, tags ...string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// RateLimiter ограничивает число действий по ключу в фиксированном окне.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
