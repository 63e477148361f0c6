package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"noteblog/internal/blog/app"
	"noteblog/internal/blog/config"
	"noteblog/internal/blog/domain/domainerrors"
	"noteblog/internal/blog/domain/entities"
)

var caller = entities.Principal{UserID: "user-1", Email: "user-1@example.com"}

type noteMocks struct {
	notes    *mockNoteRepository
	likes    *mockNoteLikeRepository
	tags     *mockTagRepository
	profiles *mockProfileRepository
	cache    *mockTagCache
}

func newNoteMocks() *noteMocks {
	return &noteMocks{
		notes:    new(mockNoteRepository),
		likes:    new(mockNoteLikeRepository),
		tags:     new(mockTagRepository),
		profiles: new(mockProfileRepository),
		cache:    new(mockTagCache),
	}
}

func (m *noteMocks) useCase(mode config.InvalidationMode) *app.NoteUseCase {
	return app.NewNoteUseCase(m.notes, m.likes, m.tags, m.profiles, m.cache, app.NoteOptions{
		Planner: app.CachePlanner{Mode: mode},
	})
}

func (m *noteMocks) assertExpectations(t *testing.T) {
	t.Helper()
	m.notes.AssertExpectations(t)
	m.likes.AssertExpectations(t)
	m.tags.AssertExpectations(t)
	m.profiles.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestListNotes(t *testing.T) {
	normalized := entities.NoteFilter{Search: "go", PageRequest: entities.PageRequest{Page: 1, Limit: 10}}
	key := app.NoteListKey(normalized)
	notes := []*entities.Note{{ID: "n1", Title: "Go"}, {ID: "n2", Title: "Go again"}}

	cachedPage, err := json.Marshal(&entities.NotePage{
		Notes:      []*entities.Note{{ID: "cached"}},
		Pagination: entities.NewPagination(normalized.PageRequest, 1),
		Search:     "go",
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		setupMocks  func(m *noteMocks)
		wantIDs     []string
		wantPages   int
		expectedErr error
	}{
		{
			name: "cache miss loads from repository",
			setupMocks: func(m *noteMocks) {
				m.cache.expectMiss(key)
				m.notes.On("List", mock.Anything, normalized).Return(notes, 15, nil).Once()
			},
			wantIDs:   []string{"n1", "n2"},
			wantPages: 2,
		},
		{
			name: "cache hit skips repository",
			setupMocks: func(m *noteMocks) {
				m.cache.On("Get", mock.Anything, key).Return(string(cachedPage), nil).Once()
			},
			wantIDs:   []string{"cached"},
			wantPages: 1,
		},
		{
			name: "cache failure falls back to repository",
			setupMocks: func(m *noteMocks) {
				m.cache.On("Get", mock.Anything, key).Return("", ErrCacheUnavailable).Once()
				m.notes.On("List", mock.Anything, normalized).Return(notes, 2, nil).Once()
				m.cache.On("Set", mock.Anything, key, mock.Anything, mock.Anything, mock.Anything).
					Return(ErrCacheUnavailable).Once()
			},
			wantIDs:   []string{"n1", "n2"},
			wantPages: 1,
		},
		{
			name: "repository error",
			setupMocks: func(m *noteMocks) {
				m.cache.On("Get", mock.Anything, key).Return("", nil).Once()
				m.notes.On("List", mock.Anything, normalized).Return(nil, 0, ErrDatabaseOperation).Once()
			},
			expectedErr: ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			tt.setupMocks(m)

			page, err := m.useCase(config.InvalidationCoarse).ListNotes(context.Background(),
				entities.NoteFilter{Search: "  go "})

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.ErrorContains(t, err, "failed to list notes")
				assert.Nil(t, page)
			} else {
				require.NoError(t, err)
				ids := make([]string, 0, len(page.Notes))
				for _, n := range page.Notes {
					ids = append(ids, n.ID)
				}
				assert.Equal(t, tt.wantIDs, ids)
				assert.Equal(t, tt.wantPages, page.Pagination.TotalPages)
				assert.Equal(t, "go", page.Search)
			}
			m.assertExpectations(t)
		})
	}
}

func TestGetNote(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		m := newNoteMocks()
		m.cache.On("Get", mock.Anything, app.NoteDetailKey("n1")).Return("", nil).Once()
		m.notes.On("GetByID", mock.Anything, "n1").Return(nil, domainerrors.NewNotFound("note", "n1")).Once()

		note, err := m.useCase(config.InvalidationCoarse).GetNote(context.Background(), "n1")

		require.Error(t, err)
		assert.True(t, domainerrors.IsNotFound(err))
		assert.Nil(t, note)
		m.notes.AssertNotCalled(t, "IncrementViewCount", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("legacy view counting", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("IncrementViewCount", mock.Anything, "n1").Return(int64(8), nil).Once()
		m.cache.expectMiss(app.NoteDetailKey("n1"))
		m.notes.On("GetByID", mock.Anything, "n1").Return(&entities.Note{ID: "n1", ViewCount: 8}, nil).Once()

		uc := app.NewNoteUseCase(m.notes, m.likes, m.tags, m.profiles, m.cache, app.NoteOptions{
			Planner:        app.CachePlanner{Mode: config.InvalidationCoarse},
			CountViewOnGet: true,
		})
		note, err := uc.GetNote(context.Background(), "n1")

		require.NoError(t, err)
		assert.Equal(t, int64(8), note.ViewCount)
		m.assertExpectations(t)
	})
}

func TestRecordView(t *testing.T) {
	t.Run("fine mode with invalidate on view", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("IncrementViewCount", mock.Anything, "n1").Return(int64(3), nil).Once()
		m.cache.expectInvalidate("note-n1")

		uc := app.NewNoteUseCase(m.notes, m.likes, m.tags, m.profiles, m.cache, app.NoteOptions{
			Planner: app.CachePlanner{Mode: config.InvalidationFine, InvalidateOnView: true},
		})
		views, err := uc.RecordView(context.Background(), "n1")

		require.NoError(t, err)
		assert.Equal(t, int64(3), views)
		m.assertExpectations(t)
	})

	t.Run("missing note", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("IncrementViewCount", mock.Anything, "n1").
			Return(int64(0), domainerrors.NewNotFound("note", "n1")).Once()

		_, err := m.useCase(config.InvalidationCoarse).RecordView(context.Background(), "n1")

		assert.True(t, domainerrors.IsNotFound(err))
		m.assertExpectations(t)
	})
}

func TestCreateNote(t *testing.T) {
	input := entities.NoteInput{Title: "  Hello  ", Content: " body ", Tags: []string{"go"}}
	trimmed := entities.NoteInput{Title: "Hello", Content: "body", Tags: []string{"go"}}
	created := &entities.Note{ID: "n1", Title: "Hello", Content: "body", AuthorID: caller.UserID}

	tests := []struct {
		name           string
		setupMocks     func(m *noteMocks)
		expectedErrMsg string
		expectedErr    error
	}{
		{
			name: "success - coarse invalidation",
			setupMocks: func(m *noteMocks) {
				m.profiles.On("Sync", mock.Anything, caller).Return(nil).Once()
				m.notes.On("Create", mock.Anything, caller.UserID, trimmed).Return(created, nil).Once()
				m.cache.expectInvalidate("notes")
			},
		},
		{
			name: "success - invalidation failure is ignored",
			setupMocks: func(m *noteMocks) {
				m.profiles.On("Sync", mock.Anything, caller).Return(nil).Once()
				m.notes.On("Create", mock.Anything, caller.UserID, trimmed).Return(created, nil).Once()
				m.cache.On("InvalidateTags", mock.Anything, []string{"notes"}).Return(ErrCacheUnavailable).Once()
			},
		},
		{
			name: "error - profile sync",
			setupMocks: func(m *noteMocks) {
				m.profiles.On("Sync", mock.Anything, caller).Return(ErrDatabaseOperation).Once()
			},
			expectedErrMsg: app.ErrSyncProfile,
			expectedErr:    ErrDatabaseOperation,
		},
		{
			name: "error - repository",
			setupMocks: func(m *noteMocks) {
				m.profiles.On("Sync", mock.Anything, caller).Return(nil).Once()
				m.notes.On("Create", mock.Anything, caller.UserID, trimmed).Return(nil, ErrDatabaseOperation).Once()
			},
			expectedErrMsg: "failed to create note",
			expectedErr:    ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			tt.setupMocks(m)

			note, err := m.useCase(config.InvalidationCoarse).CreateNote(context.Background(), caller, input)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.ErrorContains(t, err, tt.expectedErrMsg)
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				assert.Equal(t, created, note)
			}
			m.assertExpectations(t)
		})
	}
}

func TestUpdateNote(t *testing.T) {
	title := " New title "
	updated := &entities.Note{ID: "n1", Title: "New title"}

	tests := []struct {
		name       string
		patch      entities.NotePatch
		setupMocks func(m *noteMocks)
		checkErr   func(t *testing.T, err error)
		expectNote bool
	}{
		{
			name:       "empty patch is rejected before any write",
			patch:      entities.NotePatch{Tags: &[]string{"go"}},
			setupMocks: func(_ *noteMocks) {},
			checkErr: func(t *testing.T, err error) {
				var ve *domainerrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Len(t, ve.Details, 2)
			},
		},
		{
			name:  "not the author",
			patch: entities.NotePatch{Title: &title},
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(false, nil).Once()
			},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domainerrors.ErrForbidden)
			},
		},
		{
			name:  "missing note",
			patch: entities.NotePatch{Title: &title},
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).
					Return(false, domainerrors.NewNotFound("note", "n1")).Once()
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, domainerrors.IsNotFound(err))
			},
		},
		{
			name:  "success - fine invalidation",
			patch: entities.NotePatch{Title: &title},
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(true, nil).Once()
				m.notes.On("Update", mock.Anything, "n1", mock.MatchedBy(func(p entities.NotePatch) bool {
					return p.Title != nil && *p.Title == "New title" && p.Content == nil
				})).Return(updated, nil).Once()
				m.cache.expectInvalidate("note-n1", "notes-filtered", "tags")
			},
			expectNote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			tt.setupMocks(m)

			note, err := m.useCase(config.InvalidationFine).UpdateNote(context.Background(), caller, "n1", tt.patch)

			if tt.expectNote {
				require.NoError(t, err)
				assert.Equal(t, updated, note)
			} else {
				require.Error(t, err)
				tt.checkErr(t, err)
				assert.Nil(t, note)
				m.notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			}
			m.assertExpectations(t)
		})
	}
}

func TestDeleteNote(t *testing.T) {
	tests := []struct {
		name        string
		mode        config.InvalidationMode
		setupMocks  func(m *noteMocks)
		expectedErr error
	}{
		{
			name: "fine mode drops list, note and comments",
			mode: config.InvalidationFine,
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(true, nil).Once()
				m.notes.On("Delete", mock.Anything, "n1").Return(nil).Once()
				m.cache.expectInvalidate("notes-list", "note-n1", "notes-stats", "tags", "note-n1-comments")
			},
		},
		{
			name: "ttl mode does not invalidate",
			mode: config.InvalidationTTL,
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(true, nil).Once()
				m.notes.On("Delete", mock.Anything, "n1").Return(nil).Once()
			},
		},
		{
			name: "forbidden",
			mode: config.InvalidationCoarse,
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(false, nil).Once()
			},
			expectedErr: domainerrors.ErrForbidden,
		},
		{
			name: "repository error",
			mode: config.InvalidationCoarse,
			setupMocks: func(m *noteMocks) {
				m.notes.On("IsOwner", mock.Anything, "n1", caller.UserID).Return(true, nil).Once()
				m.notes.On("Delete", mock.Anything, "n1").Return(ErrDatabaseOperation).Once()
			},
			expectedErr: ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			tt.setupMocks(m)

			err := m.useCase(tt.mode).DeleteNote(context.Background(), caller, "n1")

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}

func TestToggleLike(t *testing.T) {
	t.Run("like", func(t *testing.T) {
		m := newNoteMocks()
		state := &entities.LikeState{TargetID: "n1", UserID: caller.UserID, IsLiked: true, LikeCount: 1}
		m.profiles.On("Sync", mock.Anything, caller).Return(nil).Once()
		m.likes.On("Toggle", mock.Anything, "n1", caller.UserID).Return(state, nil).Once()
		m.cache.expectInvalidate("note-n1")

		got, err := m.useCase(config.InvalidationFine).ToggleLike(context.Background(), caller, "n1")

		require.NoError(t, err)
		assert.Equal(t, state, got)
		m.assertExpectations(t)
	})

	t.Run("missing note", func(t *testing.T) {
		m := newNoteMocks()
		m.profiles.On("Sync", mock.Anything, caller).Return(nil).Once()
		m.likes.On("Toggle", mock.Anything, "n1", caller.UserID).
			Return(nil, domainerrors.NewNotFound("note", "n1")).Once()

		_, err := m.useCase(config.InvalidationFine).ToggleLike(context.Background(), caller, "n1")

		assert.True(t, domainerrors.IsNotFound(err))
		m.assertExpectations(t)
	})
}

func TestLikeStatus(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("Exists", mock.Anything, "n1").Return(true, nil).Once()
		m.likes.On("Count", mock.Anything, "n1").Return(4, nil).Once()

		state, err := m.useCase(config.InvalidationCoarse).LikeStatus(context.Background(), "n1", "")

		require.NoError(t, err)
		assert.Equal(t, &entities.LikeState{TargetID: "n1", LikeCount: 4}, state)
		m.likes.AssertNotCalled(t, "IsLiked", mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("with user", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("Exists", mock.Anything, "n1").Return(true, nil).Once()
		m.likes.On("Count", mock.Anything, "n1").Return(4, nil).Once()
		m.likes.On("IsLiked", mock.Anything, "n1", "u2").Return(true, nil).Once()

		state, err := m.useCase(config.InvalidationCoarse).LikeStatus(context.Background(), "n1", "u2")

		require.NoError(t, err)
		assert.True(t, state.IsLiked)
		assert.Equal(t, "u2", state.UserID)
		m.assertExpectations(t)
	})

	t.Run("missing note", func(t *testing.T) {
		m := newNoteMocks()
		m.notes.On("Exists", mock.Anything, "n1").Return(false, nil).Once()

		_, err := m.useCase(config.InvalidationCoarse).LikeStatus(context.Background(), "n1", "u2")

		assert.True(t, domainerrors.IsNotFound(err))
		m.assertExpectations(t)
	})
}

func TestRecentNotes(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"default limit", 0, 5},
		{"explicit limit", 3, 3},
		{"clamped limit", 500, entities.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			m.cache.On("Get", mock.Anything, mock.Anything).Return("", nil).Once()
			m.notes.On("ListRecent", mock.Anything, "u1", tt.wantLimit).Return([]*entities.Note{{ID: "n1"}}, nil).Once()
			m.cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything,
				[]string{"notes", "notes-list", "note-n1"}).Return(nil).Once()

			notes, err := m.useCase(config.InvalidationCoarse).RecentNotes(context.Background(), "u1", tt.limit)

			require.NoError(t, err)
			assert.Len(t, notes, 1)
			m.assertExpectations(t)
		})
	}
}

func TestStatsAndTags(t *testing.T) {
	m := newNoteMocks()
	m.cache.On("Get", mock.Anything, "notes:stats").Return(`{"TotalNotes":7,"TotalAuthors":2,"NotesToday":1}`, nil).Once()
	m.cache.expectMiss("tags:list")
	m.tags.On("List", mock.Anything).Return([]*entities.Tag{{Name: "Go", Slug: "go", NoteCount: 3}}, nil).Once()

	uc := m.useCase(config.InvalidationCoarse)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.NoteStats{TotalNotes: 7, TotalAuthors: 2, NotesToday: 1}, stats)

	tags, err := uc.ListTags(context.Background())
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 3, tags[0].NoteCount)

	m.notes.AssertNotCalled(t, "Stats", mock.Anything)
	m.assertExpectations(t)
}

func TestRevalidate(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
		err  error
	}{
		{"defaults to notes", nil, []string{"notes"}, nil},
		{"trims and drops blanks", []string{" note-1 ", "", "tags"}, []string{"note-1", "tags"}, nil},
		{"cache failure", []string{"notes"}, nil, ErrCacheUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newNoteMocks()
			expected := tt.want
			if tt.err != nil {
				expected = tt.in
			}
			m.cache.On("InvalidateTags", mock.Anything, expected).Return(tt.err).Once()

			got, err := m.useCase(config.InvalidationCoarse).Revalidate(context.Background(), tt.in)

			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			m.assertExpectations(t)
		})
	}
}

func TestLikedNoteIDs(t *testing.T) {
	m := newNoteMocks()
	m.likes.On("LikedNoteIDs", mock.Anything, "u1").Return([]string{"n2", "n1"}, nil).Once()

	ids, err := m.useCase(config.InvalidationCoarse).LikedNoteIDs(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"n2", "n1"}, ids)
	m.assertExpectations(t)
}
