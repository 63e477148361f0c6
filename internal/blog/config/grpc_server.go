package config

import (
	"fmt"
	"time"
)

// GRPCConfig содержит настройки административного gRPC сервера (health).
type GRPCConfig struct {
	Enabled        bool          `env:"BLOG_GRPC_ENABLED" env-default:"false"`
	Host           string        `env:"BLOG_GRPC_HOST" env-default:"0.0.0.0"`
	Port           int           `env:"BLOG_GRPC_PORT" env-default:"9090"`
	HealthInterval time.Duration `env:"BLOG_GRPC_HEALTH_INTERVAL" env-default:"15s"`
}

// GetAddress возвращает адрес gRPC сервера.
func (c *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
