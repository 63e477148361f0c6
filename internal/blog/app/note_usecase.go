// Package app реализует бизнес-логику сервиса blog.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
	"noteblog/internal/blog/ports/cache"
	"noteblog/internal/blog/ports/repositories"
	"noteblog/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrSyncProfile = "failed to sync caller profile"
	ErrEmptyPatch  = "title or content is required"
)

// NoteOptions - настройки NoteUseCase.
type NoteOptions struct {
	Planner        CachePlanner
	Revalidate     time.Duration
	CountViewOnGet bool
	RecentLimit    int
}

// NoteUseCase представляет собой бизнес-логику работы с заметками, лайками и тегами.
type NoteUseCase struct {
	noteRepo    repositories.NoteRepository
	likeRepo    repositories.NoteLikeRepository
	tagRepo     repositories.TagRepository
	profileRepo repositories.ProfileRepository
	cache       cache.TagCache
	opts        NoteOptions
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	noteRepo repositories.NoteRepository,
	likeRepo repositories.NoteLikeRepository,
	tagRepo repositories.TagRepository,
	profileRepo repositories.ProfileRepository,
	tagCache cache.TagCache,
	opts NoteOptions,
) *NoteUseCase {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}
	return &NoteUseCase{
		noteRepo:    noteRepo,
		likeRepo:    likeRepo,
		tagRepo:     tagRepo,
		profileRepo: profileRepo,
		cache:       tagCache,
		opts:        opts,
	}
}

// ListNotes возвращает страницу заметок с учетом поиска, автора и тегов.
func (uc *NoteUseCase) ListNotes(ctx context.Context, filter entities.NoteFilter) (*entities.NotePage, error) {
	filter.PageRequest = filter.PageRequest.Normalize()
	filter.Search = strings.TrimSpace(filter.Search)

	page, err := cached(ctx, uc.cache, NoteListKey(filter), uc.opts.Revalidate,
		func(p *entities.NotePage) []string { return NoteListTags(filter, p.Notes) },
		func() (*entities.NotePage, error) {
			notes, total, err := uc.noteRepo.List(ctx, filter)
			if err != nil {
				return nil, err
			}
			return &entities.NotePage{
				Notes:      notes,
				Pagination: entities.NewPagination(filter.PageRequest, total),
				Search:     filter.Search,
			}, nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return page, nil
}

// GetNote возвращает заметку. Просмотр учитывается только при включенном CountViewOnGet.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	if uc.opts.CountViewOnGet {
		if _, err := uc.RecordView(ctx, noteID); err != nil {
			return nil, err
		}
	}

	note, err := cached(ctx, uc.cache, NoteDetailKey(noteID), uc.opts.Revalidate,
		staticTags[*entities.Note](NoteDetailTags(noteID)...),
		func() (*entities.Note, error) { return uc.noteRepo.GetByID(ctx, noteID) })
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return note, nil
}

// RecordView увеличивает счетчик просмотров и возвращает новое значение.
func (uc *NoteUseCase) RecordView(ctx context.Context, noteID string) (int64, error) {
	views, err := uc.noteRepo.IncrementViewCount(ctx, noteID)
	if err != nil {
		return 0, fmt.Errorf("failed to record view: %w", err)
	}
	invalidate(ctx, uc.cache, uc.opts.Planner.Plan(EventNoteViewed, noteID)...)
	return views, nil
}

// CreateNote создает заметку от имени вызывающего.
func (uc *NoteUseCase) CreateNote(ctx context.Context, caller entities.Principal, input entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.CreateNote"))

	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}

	input.Title = strings.TrimSpace(input.Title)
	input.Content = strings.TrimSpace(input.Content)

	note, err := uc.noteRepo.Create(ctx, caller.UserID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	invalidate(ctx, uc.cache, uc.opts.Planner.Plan(EventNoteCreated, note.ID)...)
	log.Info(ctx, "note created", zap.String("noteID", note.ID), zap.String("authorID", caller.UserID))
	return note, nil
}

// UpdateNote применяет частичное изменение. Менять заметку может только автор.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, caller entities.Principal, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	if patch.IsEmpty() {
		return nil, &domainerrors.ValidationError{
			Message: ErrEmptyPatch,
			Details: []domainerrors.FieldError{
				{Field: "title", Message: ErrEmptyPatch},
				{Field: "content", Message: ErrEmptyPatch},
			},
		}
	}

	if err := uc.authorize(ctx, caller, noteID); err != nil {
		return nil, err
	}

	trim(&patch.Title)
	trim(&patch.Content)

	note, err := uc.noteRepo.Update(ctx, noteID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	invalidate(ctx, uc.cache, uc.opts.Planner.Plan(EventNoteUpdated, noteID)...)
	return note, nil
}

// DeleteNote удаляет заметку. Удалять может только автор.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, caller entities.Principal, noteID string) error {
	if err := uc.authorize(ctx, caller, noteID); err != nil {
		return err
	}

	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	tags := uc.opts.Planner.Plan(EventNoteDeleted, noteID)
	if len(tags) > 0 {
		tags = append(tags, NoteCommentsTag(noteID))
	}
	invalidate(ctx, uc.cache, tags...)

	logger.Log(ctx).Info(ctx, "note deleted",
		zap.String("method", "NoteUseCase.DeleteNote"), zap.String("noteID", noteID))
	return nil
}

func (uc *NoteUseCase) authorize(ctx context.Context, caller entities.Principal, noteID string) error {
	owner, err := uc.noteRepo.IsOwner(ctx, noteID, caller.UserID)
	if err != nil {
		return fmt.Errorf("failed to check note owner: %w", err)
	}
	if !owner {
		return domainerrors.ErrForbidden
	}
	return nil
}

// ToggleLike ставит или снимает лайк вызывающего.
func (uc *NoteUseCase) ToggleLike(ctx context.Context, caller entities.Principal, noteID string) (*entities.LikeState, error) {
	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}

	state, err := uc.likeRepo.Toggle(ctx, noteID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	invalidate(ctx, uc.cache, uc.opts.Planner.Plan(EventNoteLiked, noteID)...)
	return state, nil
}

// LikeStatus возвращает число лайков заметки и, если userID задан, лайкнул ли ее пользователь.
func (uc *NoteUseCase) LikeStatus(ctx context.Context, noteID, userID string) (*entities.LikeState, error) {
	exists, err := uc.noteRepo.Exists(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get like status: %w", err)
	}
	if !exists {
		return nil, domainerrors.NewNotFound("note", noteID)
	}

	state := &entities.LikeState{TargetID: noteID, UserID: userID}
	if state.LikeCount, err = uc.likeRepo.Count(ctx, noteID); err != nil {
		return nil, fmt.Errorf("failed to get like status: %w", err)
	}
	if userID != "" {
		if state.IsLiked, err = uc.likeRepo.IsLiked(ctx, noteID, userID); err != nil {
			return nil, fmt.Errorf("failed to get like status: %w", err)
		}
	}
	return state, nil
}

// RecentNotes возвращает последние заметки, при необходимости одного автора.
func (uc *NoteUseCase) RecentNotes(ctx context.Context, authorID string, limit int) ([]*entities.Note, error) {
	if limit <= 0 {
		limit = uc.opts.RecentLimit
	}
	limit = min(limit, entities.MaxLimit)

	key := fmt.Sprintf("notes:recent:%s:%d", authorID, limit)
	notes, err := cached(ctx, uc.cache, key, uc.opts.Revalidate,
		func(notes []*entities.Note) []string {
			tags := []string{TagNotes, TagNotesList}
			for _, n := range notes {
				tags = append(tags, NoteTag(n.ID))
			}
			return tags
		},
		func() ([]*entities.Note, error) { return uc.noteRepo.ListRecent(ctx, authorID, limit) })
	if err != nil {
		return nil, fmt.Errorf("failed to list recent notes: %w", err)
	}
	return notes, nil
}

// Stats возвращает общую статистику заметок.
func (uc *NoteUseCase) Stats(ctx context.Context) (*entities.NoteStats, error) {
	stats, err := cached(ctx, uc.cache, "notes:stats", uc.opts.Revalidate,
		staticTags[*entities.NoteStats](TagNotes, TagNoteStats),
		func() (*entities.NoteStats, error) { return uc.noteRepo.Stats(ctx) })
	if err != nil {
		return nil, fmt.Errorf("failed to get note stats: %w", err)
	}
	return stats, nil
}

// LikedNoteIDs возвращает заметки, лайкнутые пользователем.
func (uc *NoteUseCase) LikedNoteIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := uc.likeRepo.LikedNoteIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked notes: %w", err)
	}
	return ids, nil
}

// ListTags возвращает теги с числом заметок.
func (uc *NoteUseCase) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	tags, err := cached(ctx, uc.cache, "tags:list", uc.opts.Revalidate,
		staticTags[[]*entities.Tag](TagNotes, TagTags),
		func() ([]*entities.Tag, error) { return uc.tagRepo.List(ctx) })
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Revalidate принудительно сбрасывает теги кэша. Без тегов сбрасывается весь кэш заметок.
func (uc *NoteUseCase) Revalidate(ctx context.Context, tags []string) ([]string, error) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		cleaned = []string{TagNotes}
	}

	if err := uc.cache.InvalidateTags(ctx, cleaned...); err != nil {
		return nil, fmt.Errorf("failed to revalidate cache: %w", err)
	}
	logger.Log(ctx).Info(ctx, LogCacheInvalidated,
		zap.String("method", "NoteUseCase.Revalidate"), zap.Strings("tags", cleaned))
	return cleaned, nil
}
