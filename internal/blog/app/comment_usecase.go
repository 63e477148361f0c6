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

// CommentUseCase представляет собой бизнес-логику обсуждений заметок.
type CommentUseCase struct {
	commentRepo repositories.CommentRepository
	noteRepo    repositories.NoteRepository
	profileRepo repositories.ProfileRepository
	cache       cache.TagCache
	ttl         time.Duration
}

// NewCommentUseCase создает новый экземпляр CommentUseCase.
func NewCommentUseCase(
	commentRepo repositories.CommentRepository,
	noteRepo repositories.NoteRepository,
	profileRepo repositories.ProfileRepository,
	tagCache cache.TagCache,
	ttl time.Duration,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		noteRepo:    noteRepo,
		profileRepo: profileRepo,
		cache:       tagCache,
		ttl:         ttl,
	}
}

func (uc *CommentUseCase) ensureNote(ctx context.Context, noteID string) error {
	exists, err := uc.noteRepo.Exists(ctx, noteID)
	if err != nil {
		return err
	}
	if !exists {
		return domainerrors.NewNotFound("note", noteID)
	}
	return nil
}

// ListComments возвращает комментарии заметки деревом.
func (uc *CommentUseCase) ListComments(ctx context.Context, noteID string) ([]*entities.Comment, error) {
	if err := uc.ensureNote(ctx, noteID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	flat, err := cached(ctx, uc.cache, "notes:comments:"+noteID, uc.ttl,
		staticTags[[]*entities.Comment](TagNotes, NoteCommentsTag(noteID)),
		func() ([]*entities.Comment, error) { return uc.commentRepo.ListByNote(ctx, noteID) })
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return entities.BuildCommentTree(flat), nil
}

// CreateComment добавляет комментарий или ответ (parentID) от имени вызывающего.
func (uc *CommentUseCase) CreateComment(ctx context.Context, caller entities.Principal, noteID, content string, parentID *string) (*entities.Comment, error) {
	if err := uc.profileRepo.Sync(ctx, caller); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSyncProfile, err)
	}
	if err := uc.ensureNote(ctx, noteID); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment, err := uc.commentRepo.Create(ctx, &entities.Comment{
		Content:  strings.TrimSpace(content),
		NoteID:   noteID,
		AuthorID: caller.UserID,
		ParentID: parentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	invalidate(ctx, uc.cache, NoteCommentsTag(noteID))
	logger.Log(ctx).Debug(ctx, "comment created",
		zap.String("method", "CommentUseCase.CreateComment"),
		zap.String("noteID", noteID), zap.String("commentID", comment.ID))
	return comment, nil
}

// DeleteComment удаляет комментарий вместе с ответами. Удалять может только автор.
func (uc *CommentUseCase) DeleteComment(ctx context.Context, caller entities.Principal, commentID string) error {
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if comment.AuthorID != caller.UserID {
		return domainerrors.ErrForbidden
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	invalidate(ctx, uc.cache, NoteCommentsTag(comment.NoteID))
	return nil
}
