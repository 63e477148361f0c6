// Package repositories определяет интерфейсы хранилища сервиса blog.
// Операции над одной сущностью возвращают *domainerrors.NotFoundError, если ее нет,
// прочие сбои оборачиваются в *domainerrors.DatabaseError.
package repositories

import (
	"context"

	"noteblog/internal/blog/domain/entities"
)

// NoteRepository определяет интерфейс для работы с заметками.
type NoteRepository interface {
	List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, int, error)
	ListRecent(ctx context.Context, authorID string, limit int) ([]*entities.Note, error)
	GetByID(ctx context.Context, noteID string) (*entities.Note, error)
	IncrementViewCount(ctx context.Context, noteID string) (int64, error)
	Create(ctx context.Context, authorID string, input entities.NoteInput) (*entities.Note, error)
	Update(ctx context.Context, noteID string, patch entities.NotePatch) (*entities.Note, error)
	Delete(ctx context.Context, noteID string) error
	Exists(ctx context.Context, noteID string) (bool, error)
	IsOwner(ctx context.Context, noteID, userID string) (bool, error)
	Stats(ctx context.Context) (*entities.NoteStats, error)
}

// NoteLikeRepository определяет интерфейс для работы с лайками заметок.
type NoteLikeRepository interface {
	Toggle(ctx context.Context, noteID, userID string) (*entities.LikeState, error)
	Add(ctx context.Context, noteID, userID string) error
	Remove(ctx context.Context, noteID, userID string) error
	IsLiked(ctx context.Context, noteID, userID string) (bool, error)
	Count(ctx context.Context, noteID string) (int, error)
	LikedNoteIDs(ctx context.Context, userID string) ([]string, error)
}

// TagRepository определяет интерфейс для работы с тегами.
type TagRepository interface {
	List(ctx context.Context) ([]*entities.Tag, error)
}

// PostRepository определяет интерфейс для работы с записями блога.
// viewerID может быть пустым, тогда IsLikedByUser всегда false.
type PostRepository interface {
	List(ctx context.Context, filter entities.PostFilter) ([]*entities.Post, int, error)
	GetByID(ctx context.Context, postID, viewerID string) (*entities.Post, error)
	Create(ctx context.Context, input entities.PostInput) (*entities.Post, error)
	Update(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error)
	Delete(ctx context.Context, postID string) error
	IncrementViews(ctx context.Context, postID string) (int64, error)
	ToggleLike(ctx context.Context, postID, userID string) (*entities.LikeState, error)
	Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error)
	MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error)
	LikedBy(ctx context.Context, userID string) ([]*entities.Post, error)
	Tags(ctx context.Context) ([]string, error)
}

// ProfileRepository определяет интерфейс для работы с профилями.
type ProfileRepository interface {
	GetByID(ctx context.Context, profileID string) (*entities.Profile, error)
	Update(ctx context.Context, profileID string, patch entities.ProfilePatch) (*entities.Profile, error)
	Sync(ctx context.Context, principal entities.Principal) error
}

// CommentRepository определяет интерфейс для работы с комментариями.
type CommentRepository interface {
	ListByNote(ctx context.Context, noteID string) ([]*entities.Comment, error)
	GetByID(ctx context.Context, commentID string) (*entities.Comment, error)
	Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error)
	Delete(ctx context.Context, commentID string) error
}
