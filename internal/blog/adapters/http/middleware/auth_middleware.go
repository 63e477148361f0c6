package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/ports/services"
	"noteblog/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware       = "auth middleware"
	LogTokenRejected        = "bearer token rejected"
	ErrorInvalidTokenFormat = "invalid token format"
)

const bearerPrefix = "bearer "

// NewAuthMiddleware проверяет bearer токен, если он передан. Запрос без токена
// проходит анонимно; причина отказа в токене сохраняется для RequireAuth.
func NewAuthMiddleware(verifier services.TokenVerifier) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ctx.Next()
		}

		requestCtx := requestctx.From(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			requestctx.SetAuthError(ctx, services.ErrInvalidJWTToken)
			return ctx.Next()
		}

		principal, err := verifier.Verify(requestCtx, strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
			requestctx.SetAuthError(ctx, err)
			return ctx.Next()
		}

		requestctx.SetPrincipal(ctx, *principal)
		requestctx.Set(ctx, logger.WithFields(requestCtx, zap.String("user_id", principal.UserID)))
		return ctx.Next()
	}
}

// RequireAuth пропускает запрос к next только для аутентифицированного вызывающего.
func RequireAuth(next fiber.Handler) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if _, ok := requestctx.Principal(ctx); ok {
			return next(ctx)
		}
		err := requestctx.AuthError(ctx)
		if err == nil {
			err = domainerrors.ErrUnauthorized
		}
		return apierror.Write(ctx, err)
	}
}
