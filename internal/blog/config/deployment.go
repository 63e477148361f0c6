package config

import "strings"

// DeploymentConfig содержит метаданные окружения развертывания.
type DeploymentConfig struct {
	URL         string `env:"VERCEL_URL" env-default:""`
	Environment string `env:"VERCEL_ENV" env-default:"development"`
}

// SiteURL возвращает публичный адрес сайта со схемой.
func (d *DeploymentConfig) SiteURL() string {
	switch {
	case d.URL == "":
		return ""
	case strings.HasPrefix(d.URL, "http://"), strings.HasPrefix(d.URL, "https://"):
		return d.URL
	default:
		return "https://" + d.URL
	}
}
