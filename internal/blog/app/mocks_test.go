package app_test

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/mock"

	"noteblog/internal/blog/domain/entities"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrCacheUnavailable  = errors.New("cache unavailable")
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) List(ctx context.Context, filter entities.NoteFilter) ([]*entities.Note, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Note), args.Int(1), args.Error(2)
}

func (m *mockNoteRepository) ListRecent(ctx context.Context, authorID string, limit int) ([]*entities.Note, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) IncrementViewCount(ctx context.Context, noteID string) (int64, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNoteRepository) Create(ctx context.Context, authorID string, input entities.NoteInput) (*entities.Note, error) {
	args := m.Called(ctx, authorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	args := m.Called(ctx, noteID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Delete(ctx context.Context, noteID string) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *mockNoteRepository) Exists(ctx context.Context, noteID string) (bool, error) {
	args := m.Called(ctx, noteID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteRepository) IsOwner(ctx context.Context, noteID, userID string) (bool, error) {
	args := m.Called(ctx, noteID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteRepository) Stats(ctx context.Context) (*entities.NoteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NoteStats), args.Error(1)
}

type mockNoteLikeRepository struct {
	mock.Mock
}

func (m *mockNoteLikeRepository) Toggle(ctx context.Context, noteID, userID string) (*entities.LikeState, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LikeState), args.Error(1)
}

func (m *mockNoteLikeRepository) Add(ctx context.Context, noteID, userID string) error {
	return m.Called(ctx, noteID, userID).Error(0)
}

func (m *mockNoteLikeRepository) Remove(ctx context.Context, noteID, userID string) error {
	return m.Called(ctx, noteID, userID).Error(0)
}

func (m *mockNoteLikeRepository) IsLiked(ctx context.Context, noteID, userID string) (bool, error) {
	args := m.Called(ctx, noteID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNoteLikeRepository) Count(ctx context.Context, noteID string) (int, error) {
	args := m.Called(ctx, noteID)
	return args.Int(0), args.Error(1)
}

func (m *mockNoteLikeRepository) LikedNoteIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockTagRepository struct {
	mock.Mock
}

func (m *mockTagRepository) List(ctx context.Context) ([]*entities.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

type mockPostRepository struct {
	mock.Mock
}

func (m *mockPostRepository) List(ctx context.Context, filter entities.PostFilter) ([]*entities.Post, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Post), args.Int(1), args.Error(2)
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID, viewerID string) (*entities.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) Create(ctx context.Context, input entities.PostInput) (*entities.Post, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) Update(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error) {
	args := m.Called(ctx, postID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostRepository) Delete(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *mockPostRepository) IncrementViews(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostRepository) ToggleLike(ctx context.Context, postID, userID string) (*entities.LikeState, error) {
	args := m.Called(ctx, postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LikeState), args.Error(1)
}

func (m *mockPostRepository) Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	args := m.Called(ctx, limit, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostRepository) MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	args := m.Called(ctx, limit, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostRepository) LikedBy(ctx context.Context, userID string) ([]*entities.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostRepository) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) GetByID(ctx context.Context, profileID string) (*entities.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *mockProfileRepository) Update(ctx context.Context, profileID string, patch entities.ProfilePatch) (*entities.Profile, error) {
	args := m.Called(ctx, profileID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *mockProfileRepository) Sync(ctx context.Context, principal entities.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

type mockCommentRepository struct {
	mock.Mock
}

func (m *mockCommentRepository) ListByNote(ctx context.Context, noteID string) ([]*entities.Comment, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID string) (*entities.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *entities.Comment) (*entities.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID string) error {
	return m.Called(ctx, commentID).Error(0)
}

type mockTagCache struct {
	mock.Mock
}

func (m *mockTagCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockTagCache) Set(ctx context.Context, key, value string, ttl time.Duration, tags ...string) error {
	return m.Called(ctx, key, value, ttl, tags).Error(0)
}

func (m *mockTagCache) InvalidateTags(ctx context.Context, tags ...string) error {
	return m.Called(ctx, tags).Error(0)
}

func (m *mockTagCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockTagCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTagCache) Close() error {
	return m.Called().Error(0)
}

// expectMiss настраивает промах по ключу с последующей записью значения.
func (m *mockTagCache) expectMiss(key string) {
	m.On("Get", mock.Anything, key).Return("", nil).Once()
	m.On("Set", mock.Anything, key, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
}

func (m *mockTagCache) expectInvalidate(tags ...string) {
	m.On("InvalidateTags", mock.Anything, tags).Return(nil).Once()
}

func ptr[T any](v T) *T { return &v }
