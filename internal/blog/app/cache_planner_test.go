package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteblog/internal/blog/app"
	"noteblog/internal/blog/config"
	"noteblog/internal/blog/domain/entities"
)

func TestCachePlanner_Plan(t *testing.T) {
	const id = "n1"

	tests := []struct {
		mode   config.InvalidationMode
		onView bool
		event  app.CacheEvent
		want   []string
	}{
		{config.InvalidationCoarse, false, app.EventNoteCreated, []string{"notes"}},
		{config.InvalidationCoarse, false, app.EventNoteUpdated, []string{"notes"}},
		{config.InvalidationCoarse, false, app.EventNoteDeleted, []string{"notes"}},
		{config.InvalidationCoarse, false, app.EventNoteLiked, []string{"notes"}},
		{config.InvalidationCoarse, false, app.EventNoteViewed, nil},
		{config.InvalidationCoarse, true, app.EventNoteViewed, []string{"notes"}},

		{config.InvalidationFine, false, app.EventNoteCreated, []string{"notes-list", "notes-stats", "tags"}},
		{config.InvalidationFine, false, app.EventNoteUpdated, []string{"note-n1", "notes-filtered", "tags"}},
		{config.InvalidationFine, false, app.EventNoteDeleted, []string{"notes-list", "note-n1", "notes-stats", "tags"}},
		{config.InvalidationFine, false, app.EventNoteLiked, []string{"note-n1"}},
		{config.InvalidationFine, false, app.EventNoteViewed, nil},
		{config.InvalidationFine, true, app.EventNoteViewed, []string{"note-n1"}},

		{config.InvalidationTTL, false, app.EventNoteCreated, nil},
		{config.InvalidationTTL, false, app.EventNoteUpdated, nil},
		{config.InvalidationTTL, false, app.EventNoteDeleted, nil},
		{config.InvalidationTTL, false, app.EventNoteLiked, nil},
		{config.InvalidationTTL, true, app.EventNoteViewed, nil},
	}

	for _, tt := range tests {
		name := string(tt.mode) + "/" + tt.event.String()
		if tt.onView {
			name += "/on-view"
		}
		t.Run(name, func(t *testing.T) {
			p := app.CachePlanner{Mode: tt.mode, InvalidateOnView: tt.onView}
			assert.Equal(t, tt.want, p.Plan(tt.event, id))
		})
	}
}

func TestNoteListTags(t *testing.T) {
	notes := []*entities.Note{{ID: "a"}, {ID: "b"}}

	t.Run("unfiltered", func(t *testing.T) {
		f := entities.NoteFilter{PageRequest: entities.PageRequest{Page: 2, Limit: 10}}
		assert.Equal(t,
			[]string{"notes", "notes-list", "notes-page-2", "notes-all", "note-a", "note-b"},
			app.NoteListTags(f, notes))
	})

	t.Run("search", func(t *testing.T) {
		f := entities.NoteFilter{Search: "Go", PageRequest: entities.PageRequest{Page: 1, Limit: 10}}
		tags := app.NoteListTags(f, nil)
		assert.Contains(t, tags, "notes-filtered")
		assert.Contains(t, tags, app.NoteSearchTag("go"))
		assert.NotContains(t, tags, "notes-all")
	})

	t.Run("tag filter", func(t *testing.T) {
		f := entities.NoteFilter{Tags: []string{"go"}, PageRequest: entities.PageRequest{Page: 1, Limit: 10}}
		tags := app.NoteListTags(f, nil)
		assert.Contains(t, tags, "notes-filtered")
		assert.Len(t, tags, 4)
	})
}

func TestNoteListKey(t *testing.T) {
	base := entities.NoteFilter{PageRequest: entities.PageRequest{Page: 1, Limit: 10}}

	a := base
	a.Tags = []string{"Go", "Web Dev"}
	b := base
	b.Tags = []string{" go ", "web-dev", "GO"}
	assert.Equal(t, app.NoteListKey(a), app.NoteListKey(b), "теги нормализуются в ключе")

	s := base
	s.Search = "Secret Term"
	key := app.NoteListKey(s)
	assert.NotContains(t, key, "Secret")
	assert.Contains(t, key, app.HashTerm("secret term"))

	assert.Equal(t, "notes:list:1:10:::-", app.NoteListKey(base))
}

func TestHashTerm(t *testing.T) {
	h := app.HashTerm("  Hello ")
	require.Len(t, h, 24)
	assert.Equal(t, h, app.HashTerm("hello"))
	assert.NotEqual(t, h, app.HashTerm("hello!"))
}
