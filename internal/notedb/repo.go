package notedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/models"
)

const selectColumns = `SELECT id, title, content, category, is_important, created_at, updated_at FROM notes`

// newestFirst breaks created_at ties (second precision) by id.
const newestFirst = ` ORDER BY created_at DESC, id DESC`

// searchColumns whitelists the columns Search may interpolate.
var searchColumns = map[models.SearchField]string{
	models.FieldTitle:    "title",
	models.FieldContent:  "content",
	models.FieldCategory: "category",
}

// Insert adds a note with created_at = updated_at = now and returns its id.
// An empty category is stored as general.
func (db *DB) Insert(ctx context.Context, title, content string, category models.Category) (int64, error) {
	if category == "" {
		category = models.CategoryGeneral
	}
	ts := db.timestamp()
	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO notes (title, content, category, is_important, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, title, content, string(category), ts, ts)
	if err != nil {
		return 0, &apperr.StorageError{Op: "notedb: insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &apperr.StorageError{Op: "notedb: last insert id", Err: err}
	}
	db.logger.Debug("notedb: inserted", slog.Int64("id", id), slog.String("category", string(category)))
	return id, nil
}

// List returns every note, newest first.
func (db *DB) List(ctx context.Context) ([]models.Note, error) {
	return db.query(ctx, "notedb: list", selectColumns+newestFirst)
}

// Get returns the note with id, or apperr.ErrNotFound.
func (db *DB) Get(ctx context.Context, id int64) (*models.Note, error) {
	row := db.conn.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("notedb: note %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, &apperr.StorageError{Op: "notedb: get", Err: err}
	}
	return &n, nil
}

// Update overwrites title, content and category and refreshes updated_at.
func (db *DB) Update(ctx context.Context, id int64, title, content string, category models.Category) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, content = ?, category = ?, updated_at = ?
		WHERE id = ?
	`, title, content, string(category), db.timestamp(), id)
	if err != nil {
		return &apperr.StorageError{Op: "notedb: update", Err: err}
	}
	ok, err := affected(res, "notedb: update")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("notedb: note %d: %w", id, apperr.ErrNotFound)
	}
	db.logger.Debug("notedb: updated", slog.Int64("id", id))
	return nil
}

// Delete removes the note with id and reports whether a row was removed.
func (db *DB) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return false, &apperr.StorageError{Op: "notedb: delete", Err: err}
	}
	ok, err := affected(res, "notedb: delete")
	if err == nil && ok {
		db.logger.Debug("notedb: deleted", slog.Int64("id", id))
	}
	return ok, err
}

// ToggleImportant flips is_important and reports whether a row was affected.
func (db *DB) ToggleImportant(ctx context.Context, id int64) (bool, error) {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE notes
		SET is_important = CASE WHEN is_important = 1 THEN 0 ELSE 1 END
		WHERE id = ?
	`, id)
	if err != nil {
		return false, &apperr.StorageError{Op: "notedb: toggle important", Err: err}
	}
	return affected(res, "notedb: toggle important")
}

// Search matches %term% against one field, newest first.
func (db *DB) Search(ctx context.Context, field models.SearchField, term string) ([]models.Note, error) {
	col, ok := searchColumns[field]
	if !ok {
		return nil, fmt.Errorf("notedb: search field %q: %w", field, apperr.ErrInvalidChoice)
	}
	like := "%" + term + "%"
	return db.query(ctx, "notedb: search", selectColumns+` WHERE `+col+` LIKE ?`+newestFirst, like)
}

// ListByCategory returns the notes whose category equals category, newest first.
func (db *DB) ListByCategory(ctx context.Context, category models.Category) ([]models.Note, error) {
	return db.query(ctx, "notedb: list by category", selectColumns+` WHERE category = ?`+newestFirst, string(category))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(r rowScanner) (models.Note, error) {
	var (
		n        models.Note
		category string
	)
	err := r.Scan(&n.ID, &n.Title, &n.Content, &category, &n.Important, &n.CreatedAt, &n.UpdatedAt)
	n.Category = models.Category(category)
	return n, err
}

func (db *DB) query(ctx context.Context, op, query string, args ...any) ([]models.Note, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &apperr.StorageError{Op: op, Err: err}
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, &apperr.StorageError{Op: op, Err: err}
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, &apperr.StorageError{Op: op, Err: err}
	}
	return out, nil
}

func affected(res sql.Result, op string) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, &apperr.StorageError{Op: op + ": rows affected", Err: err}
	}
	return n > 0, nil
}
