package app

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"noteblog/internal/blog/ports/cache"
	"noteblog/pkg/logger"
)

// Константы для логирования кэша.
const (
	LogCacheReadFailed       = "cache read failed, falling back to database"
	LogCacheWriteFailed      = "cache write failed"
	LogCacheDecodeFailed     = "cached value is corrupted, reloading"
	LogCacheInvalidateFailed = "cache invalidation failed"
	LogCacheInvalidated      = "cache invalidated"
)

// cached возвращает значение из кэша или загружает его и сохраняет с тегами.
// Ошибки кэша только логируются: запрос обслуживается из базы.
func cached[T any](ctx context.Context, c cache.TagCache, key string, ttl time.Duration,
	tags func(T) []string, load func() (T, error),
) (T, error) {
	log := logger.Log(ctx).With(zap.String("cache_key", key))

	raw, err := c.Get(ctx, key)
	if err != nil {
		log.Warn(ctx, LogCacheReadFailed, zap.Error(err))
	} else if raw != "" {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
		log.Warn(ctx, LogCacheDecodeFailed)
	}

	v, err := load()
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.Warn(ctx, LogCacheWriteFailed, zap.Error(err))
		return v, nil
	}
	if err := c.Set(ctx, key, string(data), ttl, tags(v)...); err != nil {
		log.Warn(ctx, LogCacheWriteFailed, zap.Error(err))
	}
	return v, nil
}

// invalidate сбрасывает теги. Ошибка не прерывает уже выполненную мутацию.
func invalidate(ctx context.Context, c cache.TagCache, tags ...string) {
	if len(tags) == 0 {
		return
	}
	log := logger.Log(ctx)
	if err := c.InvalidateTags(ctx, tags...); err != nil {
		log.Warn(ctx, LogCacheInvalidateFailed, zap.Strings("tags", tags), zap.Error(err))
		return
	}
	log.Debug(ctx, LogCacheInvalidated, zap.Strings("tags", tags))
}

func staticTags[T any](tags ...string) func(T) []string {
	return func(T) []string { return tags }
}
