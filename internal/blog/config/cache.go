package config

import "time"

// InvalidationMode определяет, какие теги сбрасываются после изменений.
type InvalidationMode string

// Режимы инвалидации кэша.
const (
	// InvalidationCoarse сбрасывает все записи сущности при любом изменении.
	InvalidationCoarse InvalidationMode = "coarse"
	// InvalidationFine сбрасывает только записи, содержащие измененную сущность.
	InvalidationFine InvalidationMode = "fine"
	// InvalidationTTL ничего не сбрасывает, записи живут до истечения TTL.
	InvalidationTTL InvalidationMode = "ttl"
)

// Valid сообщает, известен ли режим.
func (m InvalidationMode) Valid() bool {
	switch m {
	case InvalidationCoarse, InvalidationFine, InvalidationTTL:
		return true
	default:
		return false
	}
}

// CacheConfig содержит настройки кэша ответов.
type CacheConfig struct {
	Enabled          bool             `env:"BLOG_CACHE_ENABLED" env-default:"true"`
	Prefix           string           `env:"BLOG_CACHE_PREFIX" env-default:"blog"`
	Revalidate       time.Duration    `env:"BLOG_CACHE_REVALIDATE" env-default:"300s"`
	Invalidation     InvalidationMode `env:"BLOG_CACHE_INVALIDATION" env-default:"coarse"`
	InvalidateOnView bool             `env:"BLOG_CACHE_INVALIDATE_ON_VIEW" env-default:"false"`
}
