package cache

import (
	"context"
	"time"

	"noteblog/internal/blog/ports/cache"
)

// NoopCache используется при отключенном кэше: всегда промах, инвалидация ничего не делает.
type NoopCache struct{}

var _ cache.TagCache = NoopCache{}

// Get всегда возвращает промах.
func (NoopCache) Get(context.Context, string) (string, error) { return "", nil }

// Set ничего не сохраняет.
func (NoopCache) Set(context.Context, string, string, time.Duration, ...string) error { return nil }

// InvalidateTags ничего не делает.
func (NoopCache) InvalidateTags(context.Context, ...string) error { return nil }

// Delete ничего не делает.
func (NoopCache) Delete(context.Context, ...string) error { return nil }

// Ping всегда успешен.
func (NoopCache) Ping(context.Context) error { return nil }

// Close ничего не делает.
func (NoopCache) Close() error { return nil }
