// Package handlers содержит HTTP-обработчики API блога.
package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"noteblog/internal/blog/adapters/http/apierror"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/pkg/logger"
)

// Сообщения ответов.
const (
	MsgNoteDeleted    = "Note deleted"
	MsgPostDeleted    = "Post deleted"
	MsgCommentDeleted = "Comment deleted"
	MsgLikeAdded      = "Like added"
	MsgLikeRemoved    = "Like removed"
	MsgViewRecorded   = "View count incremented"
	MsgProfileFetched = "Profile fetched"
	MsgProfileUpdated = "Profile updated"
)

// begin возвращает контекст запроса и логгер обработчика.
func begin(ctx fiber.Ctx, handler, msg string) (context.Context, *logger.Logger) {
	userCtx := requestctx.From(ctx)
	log := logger.Log(userCtx).With(zap.String("handler", handler))
	log.Debug(userCtx, msg)
	return userCtx, log
}

// send отправляет JSON ответ со статусом.
func send(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// fail логирует ошибку сценария и отправляет конверт ошибки.
func fail(ctx fiber.Ctx, log *logger.Logger, msg string, err error) error {
	userCtx := requestctx.From(ctx)
	if apierror.From(err).Status < fiber.StatusInternalServerError {
		log.Debug(userCtx, msg, zap.Error(err))
	}
	return apierror.Write(ctx, err)
}

// caller возвращает аутентифицированного вызывающего. Маршрут должен быть обернут RequireAuth.
func caller(ctx fiber.Ctx) (entities.Principal, error) {
	p, ok := requestctx.Principal(ctx)
	if !ok {
		return entities.Principal{}, domainerrors.ErrUnauthorized
	}
	return p, nil
}

func likeMessage(liked bool) string {
	if liked {
		return MsgLikeAdded
	}
	return MsgLikeRemoved
}
