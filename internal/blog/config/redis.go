package config

import (
	"fmt"
	"time"

	pkgredis "noteblog/pkg/db/redis"
)

// RedisConfig представляет конфигурацию для Redis.
type RedisConfig struct {
	Host            string        `env:"BLOG_REDIS_HOST" env-default:"localhost"`
	Port            int           `env:"BLOG_REDIS_PORT" env-default:"6379"`
	Password        string        `env:"BLOG_REDIS_PASSWORD" env-default:""`
	DB              int           `env:"BLOG_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `env:"BLOG_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"BLOG_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `env:"BLOG_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `env:"BLOG_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `env:"BLOG_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `env:"BLOG_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `env:"BLOG_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClientConfig переводит настройки в формат pkg/db/redis.
func (c *RedisConfig) ClientConfig() *pkgredis.Config {
	return &pkgredis.Config{
		Host:            c.Host,
		Port:            c.Port,
		Password:        c.Password,
		DB:              c.DB,
		PoolSize:        c.PoolSize,
		MinIdleConns:    c.MinIdle,
		DialTimeout:     c.ConnectTimeout,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		ConnMaxIdleTime: c.IdleTimeout,
		ConnMaxLifetime: c.MaxConnLifetime,
	}
}
