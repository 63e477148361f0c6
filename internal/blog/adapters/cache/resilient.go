package cache

import (
	"context"
	"time"

	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/resilience"
)

// ResilientCache оборачивает каждый вызов кэша в Circuit Breaker и короткие повторы.
// При открытом автомате вызовы сразу возвращают resilience.ErrCircuitOpen.
type ResilientCache struct {
	next cache.TagCache
	r    *resilience.ServiceResilience
}

// NewResilientCache создает обертку над next.
func NewResilientCache(next cache.TagCache, r *resilience.ServiceResilience) *ResilientCache {
	return &ResilientCache{next: next, r: r}
}

var _ cache.TagCache = (*ResilientCache)(nil)

// Get получает значение по ключу.
func (c *ResilientCache) Get(ctx context.Context, key string) (string, error) {
	return resilience.Execute(ctx, c.r, func() (string, error) {
		return c.next.Get(ctx, key)
	})
}

// Set сохраняет значение с тегами.
func (c *ResilientCache) Set(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	return c.r.ExecuteWithResilience(ctx, func() error {
		return c.next.Set(ctx, key, value, ttl, tags...)
	})
}

// InvalidateTags инвалидирует теги.
func (c *ResilientCache) InvalidateTags(ctx context.Context, tags ...string) error {
	return c.r.ExecuteWithResilience(ctx, func() error {
		return c.next.InvalidateTags(ctx, tags...)
	})
}

// Delete удаляет ключи.
func (c *ResilientCache) Delete(ctx context.Context, keys ...string) error {
	return c.r.ExecuteWithResilience(ctx, func() error {
		return c.next.Delete(ctx, keys...)
	})
}

// Ping проверяет доступность кэша в обход Circuit Breaker.
func (c *ResilientCache) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

// Close закрывает кэш.
func (c *ResilientCache) Close() error {
	return c.next.Close()
}
