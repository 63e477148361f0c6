package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию для подключения к Redis.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 6379
	DefaultPoolSize    = 10
	DefaultDialTimeout = 5 * time.Second
	DefaultIOTimeout   = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string
	Port            int
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Address возвращает адрес host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.Host == "" {
		out.Host = DefaultHost
	}
	if out.Port == 0 {
		out.Port = DefaultPort
	}
	if out.PoolSize == 0 {
		out.PoolSize = DefaultPoolSize
	}
	if out.DialTimeout == 0 {
		out.DialTimeout = DefaultDialTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = DefaultIOTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = DefaultIOTimeout
	}
	return out
}
