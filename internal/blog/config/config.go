// Package config описывает конфигурацию сервиса blog.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "noteblog/pkg/config"
	"noteblog/pkg/logger"
)

// ServiceName - имя сервиса в логах.
const ServiceName = "blog"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "blog configuration loaded"
	ErrFailedLoadConfig = "failed to load blog configuration"
	ErrInvalidConfig    = "invalid blog configuration"
)

// Ошибки валидации конфигурации.
var (
	ErrNoTokenVerifier   = errors.New("either SUPABASE_JWT_SECRET or a JWKS url (SUPABASE_URL / BLOG_AUTH_JWKS_URL) must be set")
	ErrInvalidCacheMode  = errors.New("BLOG_CACHE_INVALIDATION must be one of coarse, fine, ttl")
	ErrInvalidPoolBounds = errors.New("postgres min connections exceed max connections")
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	EnvFile    string `env:"BLOG_ENV_FILE" env-default:".env"`
	Postgres   PostgresConfig
	HTTP       HTTPConfig
	GRPC       GRPCConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Notes      NotesConfig
	Deployment DeploymentConfig
	Logging    LoggingConfig
	Shutdown   ShutdownConfig
}

// Load читает конфигурацию из окружения (и .env файла, если он есть) и проверяет ее.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFileName())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		log.Error(ctx, ErrInvalidConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrInvalidConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.Bool("grpc_enabled", cfg.GRPC.Enabled),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_invalidation", string(cfg.Cache.Invalidation)),
		zap.Duration("cache_revalidate", cfg.Cache.Revalidate),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Bool("jwks_configured", cfg.Auth.JWKSURL() != ""),
		zap.String("vercel_env", cfg.Deployment.Environment),
		zap.String("log_level", cfg.Logging.Level),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}

// Validate проверяет согласованность значений, которые cleanenv проверить не может.
func (c *Config) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" && c.Auth.JWKSURL() == "" {
		errs = append(errs, ErrNoTokenVerifier)
	}
	if !c.Cache.Invalidation.Valid() {
		errs = append(errs, ErrInvalidCacheMode)
	}
	if c.Postgres.MinConn > c.Postgres.MaxConn {
		errs = append(errs, ErrInvalidPoolBounds)
	}
	return errors.Join(errs...)
}
