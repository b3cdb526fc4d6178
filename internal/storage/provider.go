// Package storage defines the note store abstractions and the flat-file backend.
package storage

import (
	"context"
	"iter"

	"github.com/starford/notebook/internal/models"
)

// LineStore is the interface for the flat-file backend, one note per line.
// Positions are 1-based and are not stable across deletions.
type LineStore interface {
	// Append writes text as a new last line.
	Append(text string) error
	// Lines yields every line with its position. Each range re-opens the file.
	Lines() iter.Seq2[models.Line, error]
	// List collects Lines.
	List() ([]models.Line, error)
	// DeleteAt removes the line at position and reports whether it existed.
	DeleteAt(position int) (bool, error)
}

// NoteStore is the interface for the table-backed backend.
type NoteStore interface {
	Insert(ctx context.Context, title, content string, category models.Category) (int64, error)
	// List returns every note, newest first.
	List(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Update(ctx context.Context, id int64, title, content string, category models.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
	ToggleImportant(ctx context.Context, id int64) (bool, error)
	// Search substring-matches term against exactly one field, newest first.
	Search(ctx context.Context, field models.SearchField, term string) ([]models.Note, error)
	ListByCategory(ctx context.Context, category models.Category) ([]models.Note, error)
	Close() error
}
