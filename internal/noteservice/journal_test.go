package noteservice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/testutil"
)

func TestJournal_AddListDelete(t *testing.T) {
	j := NewJournal(testutil.TestTextFile(t), nil)
	require.NoError(t, j.Add("first"))
	require.NoError(t, j.Add("second"))
	require.NoError(t, j.Add("third"))

	require.NoError(t, j.Delete(1))

	lines, err := j.List()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "second", lines[0].Text)
	assert.Equal(t, 1, lines[0].Position)
	assert.Equal(t, "third", lines[1].Text)
	assert.Equal(t, 2, lines[1].Position)
}

func TestJournal_RejectsEmptyAndMultiline(t *testing.T) {
	store := testutil.TestTextFile(t)
	j := NewJournal(store, nil)

	assert.ErrorIs(t, j.Add("   "), ErrEmptyNote)
	assert.ErrorIs(t, j.Add("two\nlines"), ErrMultilineNote)

	// Nothing was written, so the file still does not exist.
	_, err := j.List()
	var ioErr *apperr.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestJournal_DeleteMissingLine(t *testing.T) {
	j := NewJournal(testutil.TestTextFile(t), nil)
	require.NoError(t, j.Add("only"))

	assert.ErrorIs(t, j.Delete(2), apperr.ErrNotFound)
	lines, err := j.List()
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
