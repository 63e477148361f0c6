package domainerrors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteblog/internal/blog/domain/domainerrors"
)

var errConnReset = errors.New("connection reset by peer")

func TestNewDatabase(t *testing.T) {
	t.Run("wraps plain errors", func(t *testing.T) {
		err := domainerrors.NewDatabase("NoteRepository.Create", errConnReset)

		var de *domainerrors.DatabaseError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "NoteRepository.Create", de.Operation)
		assert.ErrorIs(t, err, errConnReset)
		assert.Contains(t, err.Error(), "NoteRepository.Create")
	})

	t.Run("passes not found through", func(t *testing.T) {
		nf := domainerrors.NewNotFound("note", "42")
		err := domainerrors.NewDatabase("NoteRepository.Delete", nf)

		assert.Same(t, nf, err)
		assert.True(t, domainerrors.IsNotFound(err))
	})

	t.Run("does not double wrap", func(t *testing.T) {
		inner := domainerrors.NewDatabase("inner", errConnReset)
		outer := domainerrors.NewDatabase("outer", fmt.Errorf("context: %w", inner))

		var de *domainerrors.DatabaseError
		require.ErrorAs(t, outer, &de)
		assert.Equal(t, "inner", de.Operation)
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, domainerrors.NewDatabase("op", nil))
	})

	t.Run("keeps context errors reachable", func(t *testing.T) {
		err := domainerrors.NewDatabase("op", context.DeadlineExceeded)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "note 7 not found", domainerrors.NewNotFound("note", "7").Error())
	assert.Equal(t, "profile not found", domainerrors.NewNotFound("profile", "").Error())
	assert.False(t, domainerrors.IsNotFound(errConnReset))
	assert.True(t, domainerrors.IsNotFound(fmt.Errorf("wrapped: %w", domainerrors.NewNotFound("note", "1"))))
}

func TestNewValidation(t *testing.T) {
	err := domainerrors.NewValidation("title", "title or content is required")

	var ve *domainerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
	require.Len(t, ve.Details, 1)
	assert.Equal(t, "title or content is required", ve.Details[0].Message)
	assert.Equal(t, "title: title or content is required", err.Error())
}
