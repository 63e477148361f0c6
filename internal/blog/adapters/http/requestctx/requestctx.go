// Package requestctx хранит контекст запроса и вызывающего в fiber.Ctx.
package requestctx

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/domain/entities"
)

// Ключи Locals.
const (
	UserContextKey = "userContext"
	PrincipalKey   = "principal"
	AuthErrorKey   = "authError"
)

// From возвращает контекст запроса с request id и логгером.
func From(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// Set сохраняет контекст запроса.
func Set(ctx fiber.Ctx, userCtx context.Context) {
	ctx.Locals(UserContextKey, userCtx)
}

// Principal возвращает аутентифицированного вызывающего, если он есть.
func Principal(ctx fiber.Ctx) (entities.Principal, bool) {
	p, ok := ctx.Locals(PrincipalKey).(entities.Principal)
	return p, ok
}

// SetPrincipal сохраняет вызывающего.
func SetPrincipal(ctx fiber.Ctx, p entities.Principal) {
	ctx.Locals(PrincipalKey, p)
}

// ViewerID возвращает идентификатор вызывающего или "" для анонимного запроса.
func ViewerID(ctx fiber.Ctx) string {
	p, _ := Principal(ctx)
	return p.UserID
}

// AuthError возвращает причину, по которой переданный токен не был принят.
func AuthError(ctx fiber.Ctx) error {
	err, _ := ctx.Locals(AuthErrorKey).(error)
	return err
}

// SetAuthError запоминает ошибку проверки токена.
func SetAuthError(ctx fiber.Ctx, err error) {
	ctx.Locals(AuthErrorKey, err)
}
