package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/models"
	"github.com/starford/notebook/internal/noteservice"
	"github.com/starford/notebook/internal/testutil"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func runText(t *testing.T, j *noteservice.Journal, input *strings.Reader) string {
	t.Helper()
	var out bytes.Buffer
	p := NewPrompter(input, &out)
	require.NoError(t, TextMenu(j, p, nil).Run(context.Background()))
	return out.String()
}

func runNotes(t *testing.T, svc *noteservice.Service, input *strings.Reader) string {
	t.Helper()
	var out bytes.Buffer
	p := NewPrompter(input, &out)
	require.NoError(t, NotesMenu(svc, p, nil).Run(context.Background()))
	return out.String()
}

func TestTextMenu_AddViewDelete(t *testing.T) {
	store := testutil.TestTextFile(t)
	j := noteservice.NewJournal(store, nil)

	out := runText(t, j, script(
		"1", "buy milk",
		"1", "call mom",
		"2",
		"3", "1",
		"2",
		"4",
	))

	assert.Contains(t, out, "Note added.")
	assert.Contains(t, out, "1. buy milk\n2. call mom\n")
	assert.Contains(t, out, "Note deleted.")
	assert.Contains(t, out, "1. call mom\n")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))

	lines, err := j.List()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "call mom", lines[0].Text)
}

func TestTextMenu_ViewMissingFileReportsAndContinues(t *testing.T) {
	j := noteservice.NewJournal(testutil.TestTextFile(t), nil)
	out := runText(t, j, script("2", "4"))
	assert.Contains(t, out, "Cannot open notes file:")
	assert.Contains(t, out, "Goodbye!")
}

func TestTextMenu_DeleteUnknownLine(t *testing.T) {
	j := noteservice.NewJournal(testutil.TestTextFile(t), nil)
	require.NoError(t, j.Add("keep"))

	out := runText(t, j, script("3", "7", "4"))
	assert.Contains(t, out, "Note not found.")

	lines, _ := j.List()
	assert.Len(t, lines, 1)
}

func TestMenu_InvalidInputRedisplays(t *testing.T) {
	j := noteservice.NewJournal(testutil.TestTextFile(t), nil)
	out := runText(t, j, script("abc", "9", "0", "4"))
	assert.Equal(t, 3, strings.Count(out, "Invalid option, please try again."))
	// The menu is printed once per iteration.
	assert.Equal(t, 4, strings.Count(out, "1. Add note"))
}

func TestMenu_EOFExits(t *testing.T) {
	j := noteservice.NewJournal(testutil.TestTextFile(t), nil)
	out := runText(t, j, strings.NewReader("1\nhalf-typed"))
	assert.Contains(t, out, "Note added.")

	lines, err := j.List()
	require.NoError(t, err)
	assert.Equal(t, "half-typed", lines[0].Text)
}

func TestMenu_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	p := NewPrompter(script("4"), &out)
	err := NewMenu("x", p, nil, Command{Label: "Exit", Exit: true}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// cancelOnRead cancels its context the first time the menu reads input,
// so the choice it returns arrives after cancellation.
type cancelOnRead struct {
	r      *strings.Reader
	cancel context.CancelFunc
}

func (c *cancelOnRead) Read(b []byte) (int, error) {
	c.cancel()
	return c.r.Read(b)
}

func TestMenu_ChoiceAfterCancelNotDispatched(t *testing.T) {
	store := testutil.TestTextFile(t)
	j := noteservice.NewJournal(store, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	p := NewPrompter(&cancelOnRead{r: script("1", "late note"), cancel: cancel}, &out)
	err := TextMenu(j, p, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Enter your note")

	_, statErr := os.Stat(store.Path())
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestTextMenu_StoresNoteVerbatim(t *testing.T) {
	j := noteservice.NewJournal(testutil.TestTextFile(t), nil)
	out := runText(t, j, strings.NewReader("1\n  indented\tnote  \r\n1\n   \n4\n"))
	assert.Contains(t, out, "Note added.")
	assert.Contains(t, out, "Error: note is empty")

	lines, err := j.List()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "  indented\tnote  ", lines[0].Text)
}

func newService(t *testing.T) *noteservice.Service {
	t.Helper()
	return noteservice.NewService(testutil.TestDB(t), nil)
}

func TestNotesMenu_GroceriesScenario(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	out := runNotes(t, svc, script(
		"1", "Groceries", "milk, eggs", "",
		"2",
		"8",
	))
	assert.Contains(t, out, "Note 1 added.")
	assert.Contains(t, out, "[1]  Groceries (general)")
	assert.Contains(t, out, "    milk, eggs\n")

	notes, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.CategoryGeneral, notes[0].Category)

	out = runNotes(t, svc, script("4", "1", "2", "8"))
	assert.Contains(t, out, "Note deleted.")
	assert.Contains(t, out, "No notes.")

	notes, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNotesMenu_EditKeepsBlankFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	n, err := svc.Create(ctx, noteservice.NoteInput{Title: "Plan", Content: "draft", Category: "work"})
	require.NoError(t, err)

	out := runNotes(t, svc, script(
		"3", fmt.Sprint(n.ID), "", "final", "",
		"8",
	))
	assert.Contains(t, out, "Current title:    Plan")
	assert.Contains(t, out, "Note updated.")

	got, err := svc.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan", got.Title)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, models.CategoryWork, got.Category)
}

func TestNotesMenu_EditMissing(t *testing.T) {
	out := runNotes(t, newService(t), script("3", "12", "8"))
	assert.Contains(t, out, "Note not found.")
	assert.NotContains(t, out, "Current title")
}

func TestNotesMenu_ToggleAndSearch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	a, err := svc.Create(ctx, noteservice.NoteInput{Title: "Report", Content: "q3", Category: "work"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, noteservice.NoteInput{Title: "Diary", Content: "today", Category: "personal"})
	require.NoError(t, err)

	out := runNotes(t, svc, script(
		"6", fmt.Sprint(a.ID),
		"5", "3", "work",
		"5", "4",
		"8",
	))
	assert.Contains(t, out, fmt.Sprintf("Note %d marked as important.", a.ID))
	assert.Contains(t, out, fmt.Sprintf("[%d]* Report (work)", a.ID))
	assert.NotContains(t, out, "Diary (personal)")
	assert.Contains(t, out, "Invalid option, please try again.")
}

func TestNotesMenu_FilterByCategory(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, noteservice.NoteInput{Title: "Exam", Content: "ch 4", Category: "study"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, noteservice.NoteInput{Title: "Standup", Content: "9am", Category: "work"})
	require.NoError(t, err)

	out := runNotes(t, svc, script("7", "4", "7", "study", "8"))
	assert.Contains(t, out, "Category: study")
	assert.Contains(t, out, "Exam (study)")
	assert.NotContains(t, out, "Standup (work)")
	assert.Contains(t, out, "Invalid option, please try again.")
}

func TestNotesMenu_AddInvalid(t *testing.T) {
	svc := newService(t)
	out := runNotes(t, svc, script("1", "", "body", "", "1", "t", "c", "hobby", "8"))
	assert.Contains(t, out, "Invalid note: title: cannot be blank.")
	assert.Contains(t, out, "Invalid option, please try again.")

	notes, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&apperr.IOError{Op: "open", Path: "n.txt", Err: os.ErrNotExist}, "Cannot open notes file: file does not exist"},
		{&apperr.IOError{Op: "rename", Path: "n.txt", Err: os.ErrPermission}, "Cannot rename notes file: permission denied"},
		{&apperr.IOError{Op: "append", Path: "n.txt", Err: errors.New("no space left on device")}, "Cannot append notes file: no space left on device"},
		{&apperr.StorageError{Op: "notedb: list", Err: errors.New("disk I/O error")}, "Storage error: disk I/O error"},
		{fmt.Errorf("note 3: %w", apperr.ErrNotFound), "Note not found."},
		{fmt.Errorf("x: %w", apperr.ErrInvalidChoice), "Invalid option, please try again."},
		{validation.Errors{"content": errors.New("cannot be blank")}, "Invalid note: content: cannot be blank."},
		{noteservice.ErrEmptyNote, "Error: note is empty"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Describe(tc.err))
	}
}
