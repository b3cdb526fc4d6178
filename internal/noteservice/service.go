// Package noteservice applies defaults and validation between the console
// and the note stores.
package noteservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/models"
	"github.com/starford/notebook/internal/storage"
)

// NoteInput carries raw user input for a create or edit.
// For edits, a blank field keeps the current value.
type NoteInput struct {
	Title    string
	Content  string
	Category string
}

// Service coordinates the table-backed store.
type Service struct {
	store  storage.NoteStore
	logger *slog.Logger
}

// NewService creates a new note service.
func NewService(store storage.NoteStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Create validates in and stores a new note. An empty category becomes general.
func (s *Service) Create(ctx context.Context, in NoteInput) (*models.Note, error) {
	category, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", in.Category, apperr.ErrInvalidChoice)
	}
	n := models.Note{
		Title:    strings.TrimSpace(in.Title),
		Content:  strings.TrimSpace(in.Content),
		Category: category,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	id, err := s.store.Insert(ctx, n.Title, n.Content, n.Category)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("note created", slog.Int64("id", id))
	return s.store.Get(ctx, id)
}

// Get returns the note with id.
func (s *Service) Get(ctx context.Context, id int64) (*models.Note, error) {
	return s.store.Get(ctx, id)
}

// List returns every note, newest first.
func (s *Service) List(ctx context.Context) ([]models.Note, error) {
	return s.store.List(ctx)
}

// Edit merges in over the existing note field by field and stores the result.
func (s *Service) Edit(ctx context.Context, id int64, in NoteInput) (*models.Note, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := Merge(*existing, in)
	if err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, id, merged.Title, merged.Content, merged.Category); err != nil {
		return nil, err
	}
	s.logger.Debug("note edited", slog.Int64("id", id))
	return s.store.Get(ctx, id)
}

// Merge applies keep-if-blank to each field of in independently.
func Merge(existing models.Note, in NoteInput) (models.Note, error) {
	out := existing
	if v := strings.TrimSpace(in.Title); v != "" {
		out.Title = v
	}
	if v := strings.TrimSpace(in.Content); v != "" {
		out.Content = v
	}
	if strings.TrimSpace(in.Category) != "" {
		c, ok := models.ParseCategory(in.Category)
		if !ok {
			return existing, fmt.Errorf("category %q: %w", in.Category, apperr.ErrInvalidChoice)
		}
		out.Category = c
	}
	return out, nil
}

// Delete removes the note with id. A missing id returns apperr.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("note %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// ToggleImportant flips the importance flag and returns the updated note.
func (s *Service) ToggleImportant(ctx context.Context, id int64) (*models.Note, error) {
	ok, err := s.store.ToggleImportant(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, apperr.ErrNotFound)
	}
	return s.store.Get(ctx, id)
}

// Search substring-matches term against field.
func (s *Service) Search(ctx context.Context, field models.SearchField, term string) ([]models.Note, error) {
	switch field {
	case models.FieldTitle, models.FieldContent, models.FieldCategory:
	default:
		return nil, fmt.Errorf("search field %q: %w", field, apperr.ErrInvalidChoice)
	}
	return s.store.Search(ctx, field, term)
}

// ByCategory lists the notes of one enumerated category. Anything outside the
// set is rejected before the store is touched.
func (s *Service) ByCategory(ctx context.Context, raw string) ([]models.Note, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty category: %w", apperr.ErrInvalidChoice)
	}
	c, ok := models.ParseCategory(raw)
	if !ok {
		return nil, fmt.Errorf("category %q: %w", raw, apperr.ErrInvalidChoice)
	}
	return s.store.ListByCategory(ctx, c)
}
