package handlers

import (
	"github.com/gofiber/fiber/v3"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/adapters/http/requestctx"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/services"
)

// Константы сообщений для логирования.
const (
	LogHandlerListNotes   = "handling list notes request"
	LogHandlerCreateNote  = "handling create note request"
	LogHandlerGetNote     = "handling get note request"
	LogHandlerUpdateNote  = "handling update note request"
	LogHandlerDeleteNote  = "handling delete note request"
	LogHandlerRecentNotes = "handling recent notes request"
	LogHandlerNoteStats   = "handling note stats request"
	LogHandlerLikedNotes  = "handling liked notes request"
	LogHandlerLikeStatus  = "handling like status request"
	LogHandlerToggleLike  = "handling toggle like request"
	LogHandlerRecordView  = "handling record view request"
	LogHandlerListTags    = "handling list tags request"
)

// NotesHandler обработчик HTTP-запросов для работы с заметками.
type NotesHandler struct {
	notes services.NotesService
}

// NewNotesHandler создает новый экземпляр обработчика заметок.
func NewNotesHandler(notes services.NotesService) *NotesHandler {
	return &NotesHandler{notes: notes}
}

// ListNotes обрабатывает запрос списка заметок с поиском, фильтрами и пагинацией.
func (h *NotesHandler) ListNotes(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.ListNotes", LogHandlerListNotes)

	q, err := dto.ParseListQuery(ctx)
	if err != nil {
		return fail(ctx, log, "invalid list query", err)
	}

	tags := dto.SplitTags(ctx.Query("tags"))
	if q.Tag != "" {
		tags = append(tags, q.Tag)
	}

	page, err := h.notes.ListNotes(userCtx, entities.NoteFilter{
		Search:      q.Search,
		AuthorID:    q.UserID,
		Tags:        tags,
		PageRequest: q.PageRequest(),
	})
	if err != nil {
		return fail(ctx, log, "failed to list notes", err)
	}

	return send(ctx, fiber.StatusOK, dto.ListNotesResponse{
		Notes:      dto.NewNotes(page.Notes),
		Pagination: dto.NewPagination(page.Pagination),
		Search:     page.Search,
	})
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *NotesHandler) CreateNote(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.CreateNote", LogHandlerCreateNote)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	var req dto.CreateNoteRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid create note request", err)
	}

	note, err := h.notes.CreateNote(userCtx, principal, req.Input())
	if err != nil {
		return fail(ctx, log, "failed to create note", err)
	}

	return send(ctx, fiber.StatusCreated, dto.NewNote(note))
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *NotesHandler) GetNote(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.GetNote", LogHandlerGetNote)

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	note, err := h.notes.GetNote(userCtx, noteID)
	if err != nil {
		return fail(ctx, log, "failed to get note", err)
	}

	return send(ctx, fiber.StatusOK, dto.NewNote(note))
}

// UpdateNote обрабатывает PUT и PATCH заметки.
func (h *NotesHandler) UpdateNote(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.UpdateNote", LogHandlerUpdateNote)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	var req dto.UpdateNoteRequest
	if err := dto.BindBody(ctx, &req); err != nil {
		return fail(ctx, log, "invalid update note request", err)
	}

	note, err := h.notes.UpdateNote(userCtx, principal, noteID, req.Patch())
	if err != nil {
		return fail(ctx, log, "failed to update note", err)
	}

	return send(ctx, fiber.StatusOK, dto.NewNote(note))
}

// DeleteNote обрабатывает запрос на удаление заметки.
func (h *NotesHandler) DeleteNote(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.DeleteNote", LogHandlerDeleteNote)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	if err := h.notes.DeleteNote(userCtx, principal, noteID); err != nil {
		return fail(ctx, log, "failed to delete note", err)
	}

	return send(ctx, fiber.StatusOK, dto.DeleteResponse{Success: true, Message: MsgNoteDeleted})
}

// RecentNotes возвращает последние заметки, при необходимости одного автора.
func (h *NotesHandler) RecentNotes(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.RecentNotes", LogHandlerRecentNotes)

	limit, err := dto.QueryInt(ctx, "limit", 0)
	if err != nil {
		return fail(ctx, log, "invalid limit", err)
	}
	authorID, err := dto.ParseOptionalUUID(ctx, "userId")
	if err != nil {
		return fail(ctx, log, "invalid user id", err)
	}

	notes, err := h.notes.RecentNotes(userCtx, authorID, limit)
	if err != nil {
		return fail(ctx, log, "failed to list recent notes", err)
	}

	return send(ctx, fiber.StatusOK, dto.NotesResponse{Notes: dto.NewNotes(notes)})
}

// Stats возвращает общую статистику заметок.
func (h *NotesHandler) Stats(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.Stats", LogHandlerNoteStats)

	stats, err := h.notes.Stats(userCtx)
	if err != nil {
		return fail(ctx, log, "failed to get note stats", err)
	}

	return send(ctx, fiber.StatusOK, dto.NoteStats{
		TotalNotes: stats.TotalNotes,
		TotalUsers: stats.TotalAuthors,
		NotesToday: stats.NotesToday,
	})
}

// LikedNotes возвращает идентификаторы заметок, лайкнутых вызывающим.
func (h *NotesHandler) LikedNotes(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.LikedNotes", LogHandlerLikedNotes)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	ids, err := h.notes.LikedNoteIDs(userCtx, principal.UserID)
	if err != nil {
		return fail(ctx, log, "failed to list liked notes", err)
	}
	if ids == nil {
		ids = []string{}
	}

	return send(ctx, fiber.StatusOK, dto.LikedNotesResponse{NoteIDs: ids})
}

// LikeStatus возвращает число лайков и состояние лайка пользователя userId
// (или вызывающего, если userId не передан).
func (h *NotesHandler) LikeStatus(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.LikeStatus", LogHandlerLikeStatus)

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}
	userID, err := dto.ParseOptionalUUID(ctx, "userId")
	if err != nil {
		return fail(ctx, log, "invalid user id", err)
	}
	if userID == "" {
		userID = requestctx.ViewerID(ctx)
	}

	state, err := h.notes.LikeStatus(userCtx, noteID, userID)
	if err != nil {
		return fail(ctx, log, "failed to get like status", err)
	}

	return send(ctx, fiber.StatusOK, dto.LikeStatusResponse{
		NoteID:    noteID,
		LikeCount: state.LikeCount,
		IsLiked:   state.IsLiked,
		UserID:    userID,
	})
}

// ToggleLike переключает лайк вызывающего.
func (h *NotesHandler) ToggleLike(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.ToggleLike", LogHandlerToggleLike)

	principal, err := caller(ctx)
	if err != nil {
		return fail(ctx, log, "unauthenticated", err)
	}

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	state, err := h.notes.ToggleLike(userCtx, principal, noteID)
	if err != nil {
		return fail(ctx, log, "failed to toggle like", err)
	}

	return send(ctx, fiber.StatusOK, dto.NoteLikeResponse{
		NoteID:    noteID,
		UserID:    principal.UserID,
		IsLiked:   state.IsLiked,
		LikeCount: state.LikeCount,
		Message:   likeMessage(state.IsLiked),
	})
}

// RecordView увеличивает счетчик просмотров заметки.
func (h *NotesHandler) RecordView(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.RecordView", LogHandlerRecordView)

	noteID, err := dto.ParseID(ctx, "id")
	if err != nil {
		return fail(ctx, log, "invalid note id", err)
	}

	views, err := h.notes.RecordView(userCtx, noteID)
	if err != nil {
		return fail(ctx, log, "failed to record view", err)
	}

	return send(ctx, fiber.StatusOK, dto.NoteViewResponse{Message: MsgViewRecorded, ViewCount: views})
}

// ListTags возвращает теги с числом заметок.
func (h *NotesHandler) ListTags(ctx fiber.Ctx) error {
	userCtx, log := begin(ctx, "NotesHandler.ListTags", LogHandlerListTags)

	tags, err := h.notes.ListTags(userCtx)
	if err != nil {
		return fail(ctx, log, "failed to list tags", err)
	}

	return send(ctx, fiber.StatusOK, dto.TagsResponse{Tags: dto.NewTags(tags)})
}
