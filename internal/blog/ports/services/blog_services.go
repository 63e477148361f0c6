package services

import (
	"context"

	"noteblog/internal/blog/domain/entities"
)

// NotesService определяет бизнес-операции с заметками, лайками и тегами.
type NotesService interface {
	// ListNotes получает страницу заметок
	ListNotes(ctx context.Context, filter entities.NoteFilter) (*entities.NotePage, error)

	// GetNote получает заметку по ID
	GetNote(ctx context.Context, noteID string) (*entities.Note, error)

	// RecordView увеличивает счетчик просмотров
	RecordView(ctx context.Context, noteID string) (int64, error)

	CreateNote(ctx context.Context, caller entities.Principal, input entities.NoteInput) (*entities.Note, error)
	UpdateNote(ctx context.Context, caller entities.Principal, noteID string, patch entities.NotePatch) (*entities.Note, error)
	DeleteNote(ctx context.Context, caller entities.Principal, noteID string) error

	ToggleLike(ctx context.Context, caller entities.Principal, noteID string) (*entities.LikeState, error)
	LikeStatus(ctx context.Context, noteID, userID string) (*entities.LikeState, error)
	LikedNoteIDs(ctx context.Context, userID string) ([]string, error)

	RecentNotes(ctx context.Context, authorID string, limit int) ([]*entities.Note, error)
	Stats(ctx context.Context) (*entities.NoteStats, error)
	ListTags(ctx context.Context) ([]*entities.Tag, error)

	// Revalidate сбрасывает теги кэша и возвращает фактически сброшенные
	Revalidate(ctx context.Context, tags []string) ([]string, error)
}

// PostsService определяет бизнес-операции с записями блога.
type PostsService interface {
	ListPosts(ctx context.Context, filter entities.PostFilter) (*entities.PostPage, error)
	GetPost(ctx context.Context, postID, viewerID string) (*entities.Post, error)
	CreatePost(ctx context.Context, caller entities.Principal, input entities.PostInput) (*entities.Post, error)
	UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error)
	DeletePost(ctx context.Context, postID string) error
	RecordView(ctx context.Context, postID string) (int64, error)
	ToggleLike(ctx context.Context, caller entities.Principal, postID string) (*entities.LikeState, error)
	Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error)
	MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error)
	LikedBy(ctx context.Context, userID string) ([]*entities.Post, error)
	Tags(ctx context.Context) ([]string, error)
}

// ProfilesService определяет операции с профилями.
type ProfilesService interface {
	GetProfile(ctx context.Context, profileID string) (*entities.Profile, error)
	UpdateProfile(ctx context.Context, caller entities.Principal, patch entities.ProfilePatch) (*entities.Profile, error)
}

// CommentsService определяет операции с комментариями.
type CommentsService interface {
	ListComments(ctx context.Context, noteID string) ([]*entities.Comment, error)
	CreateComment(ctx context.Context, caller entities.Principal, noteID, content string, parentID *string) (*entities.Comment, error)
	DeleteComment(ctx context.Context, caller entities.Principal, commentID string) error
}

// HealthChecker сообщает о доступности зависимостей.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
