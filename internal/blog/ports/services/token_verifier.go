// Package services определяет интерфейсы внешних сервисов.
package services

import (
	"context"
	"errors"

	"noteblog/internal/blog/domain/entities"
)

// TokenVerifier проверяет bearer токен внешнего провайдера аутентификации.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*entities.Principal, error)
}

// Ошибки проверки токена.
var (
	ErrInvalidJWTToken = errors.New("invalid JWT token")
	ErrExpiredJWTToken = errors.New("JWT token has expired")
)
