package noteservice

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/models"
	"github.com/starford/notebook/internal/storage"
)

var (
	ErrEmptyNote     = errors.New("note is empty")
	ErrMultilineNote = errors.New("note must fit on one line")
)

// Journal coordinates the flat-file store, where a note is one line and its
// identifier is its current line number.
type Journal struct {
	store  storage.LineStore
	logger *slog.Logger
}

// NewJournal creates a new journal over store.
func NewJournal(store storage.LineStore, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{store: store, logger: logger}
}

// Add appends text as a new note.
func (j *Journal) Add(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyNote
	}
	if strings.ContainsAny(text, "\r\n") {
		return ErrMultilineNote
	}
	if err := j.store.Append(text); err != nil {
		return err
	}
	j.logger.Debug("line appended")
	return nil
}

// List returns every note with its current line number.
func (j *Journal) List() ([]models.Line, error) {
	return j.store.List()
}

// Delete removes the note at position. Later notes move up by one.
func (j *Journal) Delete(position int) error {
	ok, err := j.store.DeleteAt(position)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("line %d: %w", position, apperr.ErrNotFound)
	}
	j.logger.Debug("line deleted", slog.Int("position", position))
	return nil
}
