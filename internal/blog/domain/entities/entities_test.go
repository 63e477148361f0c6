package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteblog/internal/blog/domain/entities"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		req   entities.PageRequest
		total int
		want  entities.Pagination
	}{
		{
			name:  "15 matches, first page of 10",
			req:   entities.PageRequest{Page: 1, Limit: 10},
			total: 15,
			want:  entities.Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 15, HasNextPage: true},
		},
		{
			name:  "last page",
			req:   entities.PageRequest{Page: 2, Limit: 10},
			total: 15,
			want:  entities.Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 15, HasPreviousPage: true},
		},
		{
			name:  "exact multiple",
			req:   entities.PageRequest{Page: 1, Limit: 5},
			total: 10,
			want:  entities.Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 10, HasNextPage: true},
		},
		{
			name:  "empty",
			req:   entities.PageRequest{Page: 1, Limit: 10},
			total: 0,
			want:  entities.Pagination{CurrentPage: 1},
		},
		{
			name:  "page past the end",
			req:   entities.PageRequest{Page: 7, Limit: 10},
			total: 15,
			want:  entities.Pagination{CurrentPage: 7, TotalPages: 2, TotalCount: 15, HasPreviousPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.NewPagination(tt.req, tt.total))
		})
	}
}

func TestNewPagination_Invariants(t *testing.T) {
	for limit := 1; limit <= entities.MaxLimit; limit += 7 {
		for total := 0; total <= 250; total += 13 {
			for page := 1; page <= 5; page++ {
				p := entities.NewPagination(entities.PageRequest{Page: page, Limit: limit}, total)

				ceil := total / limit
				if total%limit != 0 {
					ceil++
				}
				require.Equal(t, ceil, p.TotalPages)
				require.Equal(t, page < p.TotalPages, p.HasNextPage)
				require.Equal(t, page > 1, p.HasPreviousPage)
			}
		}
	}
}

func TestPageRequest_NormalizeAndOffset(t *testing.T) {
	tests := []struct {
		in         entities.PageRequest
		want       entities.PageRequest
		wantOffset int
	}{
		{entities.PageRequest{}, entities.PageRequest{Page: 1, Limit: 10}, 0},
		{entities.PageRequest{Page: 3, Limit: 20}, entities.PageRequest{Page: 3, Limit: 20}, 40},
		{entities.PageRequest{Page: -2, Limit: 500}, entities.PageRequest{Page: 1, Limit: 100}, 0},
	}

	for _, tt := range tests {
		got := tt.in.Normalize()
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.wantOffset, got.Offset())
	}
}

func TestNormalizeTagNames(t *testing.T) {
	got := entities.NormalizeTagNames([]string{" Go ", "go", "", "  ", "Web Dev", "web-dev", "Postgres"})

	require.Len(t, got, 3)
	assert.Equal(t, entities.Tag{Name: "Go", Slug: "go"}, got[0])
	assert.Equal(t, entities.Tag{Name: "Web Dev", Slug: "web-dev"}, got[1])
	assert.Equal(t, entities.Tag{Name: "Postgres", Slug: "postgres"}, got[2])
}

func TestPatchIsEmpty(t *testing.T) {
	title := "t"
	tags := []string{"a"}

	assert.True(t, entities.NotePatch{}.IsEmpty())
	assert.True(t, entities.NotePatch{Tags: &tags}.IsEmpty(), "одни теги не считаются изменением заметки")
	assert.False(t, entities.NotePatch{Title: &title}.IsEmpty())

	assert.True(t, entities.PostPatch{}.IsEmpty())
	assert.False(t, entities.PostPatch{Tags: &tags}.IsEmpty())

	assert.True(t, entities.ProfilePatch{}.IsEmpty())
	assert.False(t, entities.ProfilePatch{Bio: &title}.IsEmpty())
}

func TestNoteFilter_Filtered(t *testing.T) {
	assert.False(t, entities.NoteFilter{AuthorID: "u"}.Filtered())
	assert.True(t, entities.NoteFilter{Search: "go"}.Filtered())
	assert.True(t, entities.NoteFilter{Tags: []string{"go"}}.Filtered())
}

func TestBuildCommentTree(t *testing.T) {
	ptr := func(s string) *string { return &s }

	flat := []*entities.Comment{
		{ID: "1"},
		{ID: "2", ParentID: ptr("1")},
		{ID: "3"},
		{ID: "4", ParentID: ptr("2")},
		{ID: "5", ParentID: ptr("missing")},
	}

	roots := entities.BuildCommentTree(flat)

	require.Len(t, roots, 3)
	assert.Equal(t, "1", roots[0].ID)
	assert.Equal(t, "3", roots[1].ID)
	assert.Equal(t, "5", roots[2].ID)

	require.Len(t, roots[0].Replies, 1)
	assert.Equal(t, "2", roots[0].Replies[0].ID)
	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "4", roots[0].Replies[0].Replies[0].ID)
}
