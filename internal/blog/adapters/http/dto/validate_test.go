package dto_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteblog/internal/blog/adapters/http/dto"
	"noteblog/internal/blog/domain/domainerrors"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidate_CreateNote(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.CreateNoteRequest
		expectedField string
		wantErr       bool
	}{
		{
			name: "valid",
			req:  dto.CreateNoteRequest{Title: "Title", Content: "Body", Tags: []string{"go"}},
		},
		{
			name:          "missing title",
			req:           dto.CreateNoteRequest{Content: "Body"},
			expectedField: "title",
			wantErr:       true,
		},
		{
			name:          "title too long",
			req:           dto.CreateNoteRequest{Title: strings.Repeat("a", 201), Content: "Body"},
			expectedField: "title",
			wantErr:       true,
		},
		{
			name:          "blank tag",
			req:           dto.CreateNoteRequest{Title: "Title", Content: "Body", Tags: []string{"go", ""}},
			expectedField: "tags[1]",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dto.Validate(&tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ve *domainerrors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.expectedField, ve.Field)
			assert.Equal(t, dto.MsgValidationFailed, ve.Message)
		})
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	err := dto.Validate(&dto.CreateNoteRequest{})

	var ve *domainerrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, ve.Field)
	require.Len(t, ve.Details, 2)
	assert.Equal(t, "title", ve.Details[0].Field)
	assert.Equal(t, "content", ve.Details[1].Field)
}

func TestValidate_UpdateProfile(t *testing.T) {
	tests := []struct {
		name          string
		req           dto.UpdateProfileRequest
		expectedField string
	}{
		{
			name: "empty website clears it",
			req:  dto.UpdateProfileRequest{Website: ptr("")},
		},
		{
			name: "https avatar",
			req:  dto.UpdateProfileRequest{AvatarURL: ptr("https://cdn.example.com/a.png")},
		},
		{
			name:          "relative url",
			req:           dto.UpdateProfileRequest{Website: ptr("/about")},
			expectedField: "website",
		},
		{
			name:          "bad email",
			req:           dto.UpdateProfileRequest{Email: ptr("nope")},
			expectedField: "email",
		},
		{
			name:          "bio too long",
			req:           dto.UpdateProfileRequest{Bio: ptr(strings.Repeat("b", 501))},
			expectedField: "bio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := dto.Validate(&tt.req)

			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *domainerrors.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.expectedField, ve.Field)
		})
	}
}

func TestValidate_ListQuery(t *testing.T) {
	assert.NoError(t, dto.Validate(&dto.ListQuery{Page: 1, Limit: 100}))

	err := dto.Validate(&dto.ListQuery{Page: 0, Limit: 10})
	var ve *domainerrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "page", ve.Field)
	assert.Equal(t, "must be at least 1", ve.Details[0].Message)

	err = dto.Validate(&dto.ListQuery{Page: 1, Limit: 10, UserID: "abc"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "userId", ve.Field)
}

func TestNormalize_TrimsBeforeValidation(t *testing.T) {
	req := dto.UpdateNoteRequest{Title: ptr("  "), Tags: &[]string{" go "}}
	req.Normalize()

	assert.Equal(t, "", *req.Title)
	assert.Equal(t, []string{"go"}, *req.Tags)

	var ve *domainerrors.ValidationError
	require.True(t, errors.As(dto.Validate(&req), &ve))
	assert.Equal(t, "title", ve.Field)
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, dto.SplitTags("  "))
	assert.Equal(t, []string{"go", "sql"}, dto.SplitTags(" go, ,sql,"))
}
