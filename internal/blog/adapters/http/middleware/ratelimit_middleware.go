package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/ports/cache"
	"noteblog/pkg/logger"
)

// Константы для логирования.
const (
	LogRateLimiterFailed = "rate limiter unavailable, allowing request"
	LogRateLimited       = "request rate limited"
)

// RateLimit ограничивает next числом limit запросов в окне window на пользователя
// (или IP для анонимных). Недоступный ограничитель пропускает запросы.
func RateLimit(limiter cache.RateLimiter, bucket string, limit int, window time.Duration) func(fiber.Handler) fiber.Handler {
	return func(next fiber.Handler) fiber.Handler {
		if limiter == nil || limit <= 0 {
			return next
		}

		return func(ctx fiber.Ctx) error {
			requestCtx := requestctx.From(ctx)

			key := bucket + ":ip:" + ctx.IP()
			if userID := requestctx.ViewerID(ctx); userID != "" {
				key = bucket + ":user:" + userID
			}

			allowed, err := limiter.Allow(requestCtx, key, limit, window)
			if err != nil {
				logger.Log(requestCtx).Warn(requestCtx, LogRateLimiterFailed,
					zap.String("bucket", bucket), zap.Error(err))
			}
			if !allowed {
				logger.Log(requestCtx).Info(requestCtx, LogRateLimited, zap.String("key", key))
				ctx.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(window.Seconds())))
				return apierror.Write(ctx, domainerrors.ErrRateLimited)
			}
			return next(ctx)
		}
	}
}
