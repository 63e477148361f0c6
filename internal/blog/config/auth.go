package config

import "strings"

// Путь JWKS у провайдера аутентификации.
const supabaseJWKSPath = "/auth/v1/.well-known/jwks.json"

// AuthConfig содержит настройки проверки токенов внешнего провайдера.
type AuthConfig struct {
	ProviderURL  string `env:"SUPABASE_URL" env-default:""`
	AnonKey      string `env:"SUPABASE_ANON_KEY" env-default:""`
	JWTSecret    string `env:"SUPABASE_JWT_SECRET" env-default:""`
	JWKSOverride string `env:"BLOG_AUTH_JWKS_URL" env-default:""`
	Audience     string `env:"BLOG_AUTH_AUDIENCE" env-default:"authenticated"`
}

// JWKSURL возвращает адрес набора ключей: явный или производный от SUPABASE_URL.
func (a *AuthConfig) JWKSURL() string {
	if a.JWKSOverride != "" {
		return a.JWKSOverride
	}
	if a.ProviderURL == "" {
		return ""
	}
	return strings.TrimRight(a.ProviderURL, "/") + supabaseJWKSPath
}
