// Package cache содержит кэш с тегами и ограничитель частоты запросов поверх Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"noteblog/internal/blog/ports/cache"
	"noteblog/pkg/logger"
)

// Константы для логирования.
const (
	ErrorFailedToGet        = "failed to get value from redis"
	ErrorFailedToSet        = "failed to set value in redis"
	ErrorFailedToDelete     = "failed to delete value from redis"
	ErrorFailedToInvalidate = "failed to invalidate cache tags"
	ErrorFailedToClose      = "failed to close redis connection"

	LogTagsInvalidated = "cache tags invalidated"
)

// DefaultRevalidate - окно ревалидации, если оно не задано.
const DefaultRevalidate = 300 * time.Second

// RedisTagCache хранит значения в <prefix>:cache:<key>, а ключи каждого тега в множестве <prefix>:tag:<tag>.
type RedisTagCache struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewRedisTagCache создает кэш поверх готового клиента.
func NewRedisTagCache(client *redis.Client, prefix string, defaultTTL time.Duration) *RedisTagCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultRevalidate
	}
	return &RedisTagCache{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

var _ cache.TagCache = (*RedisTagCache)(nil)

func (c *RedisTagCache) valueKey(key string) string {
	return c.prefix + ":cache:" + key
}

func (c *RedisTagCache) tagKey(tag string) string {
	return c.prefix + ":tag:" + tag
}

// Get получает значение по ключу. Промах - пустая строка без ошибки.
func (c *RedisTagCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, c.valueKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		logger.Log(ctx).Warn(ctx, ErrorFailedToGet,
			zap.String("method", "RedisTagCache.Get"), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, nil
}

// Set сохраняет значение и регистрирует ключ во множествах тегов.
// Множество тега живет вдвое дольше записи, чтобы инвалидация находила все живые ключи.
func (c *RedisTagCache) Set(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	fullKey := c.valueKey(key)
	tagTTL := 2 * max(ttl, c.defaultTTL)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fullKey, value, ttl)
		for _, tag := range tags {
			tk := c.tagKey(tag)
			pipe.SAdd(ctx, tk, fullKey)
			pipe.Expire(ctx, tk, tagTTL)
		}
		return nil
	})
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToSet,
			zap.String("method", "RedisTagCache.Set"), zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	return nil
}

// InvalidateTags удаляет все записи, помеченные любым из тегов, и сами множества тегов.
func (c *RedisTagCache) InvalidateTags(ctx context.Context, tags ...string) error {
	if len(tags) == 0 {
		return nil
	}
	log := logger.Log(ctx).With(zap.String("method", "RedisTagCache.InvalidateTags"))

	tagKeys := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagKeys = append(tagKeys, c.tagKey(tag))
	}

	members := make([]*redis.StringSliceCmd, 0, len(tagKeys))
	if _, err := c.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, tk := range tagKeys {
			members = append(members, pipe.SMembers(ctx, tk))
		}
		return nil
	}); err != nil {
		log.Warn(ctx, ErrorFailedToInvalidate, zap.Strings("tags", tags), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	toDelete := append([]string{}, tagKeys...)
	for _, cmd := range members {
		toDelete = append(toDelete, cmd.Val()...)
	}

	if err := c.client.Del(ctx, toDelete...).Err(); err != nil {
		log.Warn(ctx, ErrorFailedToInvalidate, zap.Strings("tags", tags), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToInvalidate, err)
	}

	log.Debug(ctx, LogTagsInvalidated, zap.Strings("tags", tags), zap.Int("keys", len(toDelete)-len(tagKeys)))
	return nil
}

// Delete удаляет значения по ключам.
func (c *RedisTagCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.valueKey(k))
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}
	return nil
}

// Ping проверяет доступность Redis.
func (c *RedisTagCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close закрывает соединение с Redis.
func (c *RedisTagCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
