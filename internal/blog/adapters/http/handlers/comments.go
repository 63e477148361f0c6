package handlers

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/ports/services"
)

// Константы сообщений для логирования.
const (
	LogHandlerListComments  = "handling list comments request"
	LogHandlerCreateComment = "handling create comment request"
	LogHandlerDeleteComment = "handling delete comment request"
)

// CommentsHandler обработчик HTTP-запросов для комментариев.
type CommentsHandler struct {
	comments services.CommentsService
}

// NewCommentsHandler создает новый экземпляр обработчика комментариев.
func NewCommentsHandler(comments services.CommentsService) *CommentsHandler {
	return &CommentsHandler{comments: comments}
}

// ListComments возвращает дерево комментариев заметки.
func (h *CommentsHandler) ListComments(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "CommentsHandler.ListComments", LogHandlerListComments)

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	comments, err := h.comments.ListComments(userCtx, noteID)
	if err != nil {
		return fail(ctx, log, "failed to list comments", err)
	}

	return send(ctx, fiber.StatusOK, dto.CommentsResponse{Comments: dto.NewComments(comments)})
}

// CreateComment добавляет комментарий или ответ к заметке.
func (h *CommentsHandler) CreateComment(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "CommentsHandler.CreateComment", LogHandlerCreateComment)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	var req dto.CreateCommentRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid create comment request", err)
	}

	comment, err := h.comments.CreateComment(userCtx, principal, noteID, req.Content, req.ParentID)
	if err != nil {
		return fail(ctx, log, "failed to create comment", err)
	}

	return send(ctx, fiber.StatusCreated, dto.NewComment(comment))
}

// DeleteComment удаляет комментарий автора.
func (h *CommentsHandler) DeleteComment(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "CommentsHandler.DeleteComment", LogHandlerDeleteComment)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	commentID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid comment id", err)
	}

	if err := h.comments.DeleteComment(userCtx, principal, commentID); err != nil {
		return fail(ctx, log, "failed to delete comment", err)
	}

	return send(ctx, fiber.StatusOK, dto.DeleteResponse{Success: true, Message: MsgCommentDeleted})
}
