package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/pkg/logger"
)

// LogServerPanic - сообщение о панике в обработчике.
const LogServerPanic = "server panic"

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := requestctx.From(ctx)
				logger.Log(requestCtx).Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = apierror.Write(ctx, apierror.New(fiber.StatusInternalServerError,
					apierror.CodeInternal, apierror.MsgInternal))
			}
		}()

		return ctx.Next()
	}
}
