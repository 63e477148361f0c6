package postgres

import (
	"noteblog/internal/blog/ports/repositories"
)

// RepositoryFactory создает все репозитории сервиса поверх одного пула.
type RepositoryFactory struct {
	noteRepo    repositories.NoteRepository
	likeRepo    repositories.NoteLikeRepository
	tagRepo     repositories.TagRepository
	postRepo    repositories.PostRepository
	profileRepo repositories.ProfileRepository
	commentRepo repositories.CommentRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		noteRepo:    NewNoteRepository(pool),
		likeRepo:    NewNoteLikeRepository(pool),
		tagRepo:     NewTagRepository(pool),
		postRepo:    NewPostRepository(pool),
		profileRepo: NewProfileRepository(pool),
		commentRepo: NewCommentRepository(pool),
	}
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return f.noteRepo
}

// NoteLikeRepository возвращает репозиторий лайков заметок.
func (f *RepositoryFactory) NoteLikeRepository() repositories.NoteLikeRepository {
	return f.likeRepo
}

// TagRepository возвращает репозиторий тегов.
func (f *RepositoryFactory) TagRepository() repositories.TagRepository {
	return f.tagRepo
}

// PostRepository возвращает репозиторий записей блога.
func (f *RepositoryFactory) PostRepository() repositories.PostRepository {
	return f.postRepo
}

// ProfileRepository возвращает репозиторий профилей.
func (f *RepositoryFactory) ProfileRepository() repositories.ProfileRepository {
	return f.profileRepo
}

// CommentRepository возвращает репозиторий комментариев.
func (f *RepositoryFactory) CommentRepository() repositories.CommentRepository {
	return f.commentRepo
}
