package config

import (
	"time"

	"noteblog/pkg/db/postgres"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL" env-required:"true"`
	MigrationsDir   string        `env:"BLOG_MIGRATIONS_DIR" env-default:"migrations/blog"`
	MinConn         int           `env:"BLOG_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn         int           `env:"BLOG_POSTGRES_MAX_CONN" env-default:"10"`
	MaxConnLifetime time.Duration `env:"BLOG_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime time.Duration `env:"BLOG_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// GetDSN возвращает строку подключения для пула.
func (p *PostgresConfig) GetDSN() string {
	return p.URL
}

// GetConnectionURL возвращает URL для golang-migrate.
func (p *PostgresConfig) GetConnectionURL() string {
	return p.URL
}

// PoolOptions возвращает параметры пула соединений.
func (p *PostgresConfig) PoolOptions() postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:        p.MinConn,
		MaxConns:        p.MaxConn,
		MaxConnLifetime: p.MaxConnLifetime,
		MaxConnIdleTime: p.MaxConnIdleTime,
	}
}
