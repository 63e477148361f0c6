package config

import "time"

// RateLimitConfig задает лимиты для частых изменяющих операций.
type RateLimitConfig struct {
	Enabled     bool          `env:"BLOG_RATE_LIMIT_ENABLED" env-default:"true"`
	Window      time.Duration `env:"BLOG_RATE_LIMIT_WINDOW" env-default:"1m"`
	LikeToggles int           `env:"BLOG_RATE_LIMIT_LIKES" env-default:"30"`
	Creates     int           `env:"BLOG_RATE_LIMIT_CREATES" env-default:"10"`
}
