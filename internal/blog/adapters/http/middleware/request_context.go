// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/pkg/logger"
)

// HeaderRequestID - заголовок идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestContextMiddleware создает контекст запроса с request id и возвращает id в ответе.
func NewRequestContextMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		userCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		if id, ok := logger.GetRequestID(userCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}
		requestctx.Set(ctx, userCtx)
		return ctx.Next()
	}
}
