package http_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"noteblog/internal/blog/domain/entities"
)

type mockNotesService struct {
	mock.Mock
}

func (m *mockNotesService) ListNotes(ctx context.Context, filter entities.NoteFilter) (*entities.NotePage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NotePage), args.Error(1)
}

func (m *mockNotesService) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesService) RecordView(ctx context.Context, noteID string) (int64, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotesService) CreateNote(ctx context.Context, caller entities.Principal, input entities.NoteInput) (*entities.Note, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesService) UpdateNote(ctx context.Context, caller entities.Principal, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	args := m.Called(ctx, caller, noteID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesService) DeleteNote(ctx context.Context, caller entities.Principal, noteID string) error {
	args := m.Called(ctx, caller, noteID)
	return args.Error(0)
}

func (m *mockNotesService) ToggleLike(ctx context.Context, caller entities.Principal, noteID string) (*entities.LikeState, error) {
	args := m.Called(ctx, caller, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LikeState), args.Error(1)
}

func (m *mockNotesService) LikeStatus(ctx context.Context, noteID, userID string) (*entities.LikeState, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LikeState), args.Error(1)
}

func (m *mockNotesService) LikedNoteIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockNotesService) RecentNotes(ctx context.Context, authorID string, limit int) ([]*entities.Note, error) {
	args := m.Called(ctx, authorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNotesService) Stats(ctx context.Context) (*entities.NoteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NoteStats), args.Error(1)
}

func (m *mockNotesService) ListTags(ctx context.Context) ([]*entities.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tag), args.Error(1)
}

func (m *mockNotesService) Revalidate(ctx context.Context, tags []string) ([]string, error) {
	args := m.Called(ctx, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockPostsService struct {
	mock.Mock
}

func (m *mockPostsService) ListPosts(ctx context.Context, filter entities.PostFilter) (*entities.PostPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PostPage), args.Error(1)
}

func (m *mockPostsService) GetPost(ctx context.Context, postID, viewerID string) (*entities.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostsService) CreatePost(ctx context.Context, caller entities.Principal, input entities.PostInput) (*entities.Post, error) {
	args := m.Called(ctx, caller, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostsService) UpdatePost(ctx context.Context, postID string, patch entities.PostPatch) (*entities.Post, error) {
	args := m.Called(ctx, postID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *mockPostsService) DeletePost(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *mockPostsService) RecordView(ctx context.Context, postID string) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPostsService) ToggleLike(ctx context.Context, caller entities.Principal, postID string) (*entities.LikeState, error) {
	args := m.Called(ctx, caller, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LikeState), args.Error(1)
}

func (m *mockPostsService) Popular(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	args := m.Called(ctx, limit, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostsService) MostViewed(ctx context.Context, limit int, viewerID string) ([]*entities.Post, error) {
	args := m.Called(ctx, limit, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostsService) LikedBy(ctx context.Context, userID string) ([]*entities.Post, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *mockPostsService) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockProfilesService struct {
	mock.Mock
}

func (m *mockProfilesService) GetProfile(ctx context.Context, profileID string) (*entities.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *mockProfilesService) UpdateProfile(ctx context.Context, caller entities.Principal, patch entities.ProfilePatch) (*entities.Profile, error) {
	args := m.Called(ctx, caller, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

type mockCommentsService struct {
	mock.Mock
}

func (m *mockCommentsService) ListComments(ctx context.Context, noteID string) ([]*entities.Comment, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Comment), args.Error(1)
}

func (m *mockCommentsService) CreateComment(ctx context.Context, caller entities.Principal, noteID, content string, parentID *string) (*entities.Comment, error) {
	args := m.Called(ctx, caller, noteID, content, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *mockCommentsService) DeleteComment(ctx context.Context, caller entities.Principal, commentID string) error {
	args := m.Called(ctx, caller, commentID)
	return args.Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (*entities.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Principal), args.Error(1)
}

type mockHealthChecker struct {
	mock.Mock
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}
