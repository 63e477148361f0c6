package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `env:"BLOG_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `env:"BLOG_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"BLOG_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"BLOG_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	BodyLimit    int           `env:"BLOG_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
