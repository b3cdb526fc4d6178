// Package testutil provides shared test helpers for setting up note stores.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/notebook/internal/notedb"
	"github.com/starford/notebook/internal/storage"
)

// TestDB creates a temporary SQLite note store that is automatically closed.
func TestDB(t *testing.T, opts ...notedb.Option) *notedb.DB {
	t.Helper()
	db, err := notedb.Open(filepath.Join(t.TempDir(), "notebook-test.db"), opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestTextFile creates a flat-file store in a temporary directory. The file
// itself does not exist until the first append.
func TestTextFile(t *testing.T, opts ...storage.TextFileOption) *storage.TextFile {
	t.Helper()
	store, err := storage.NewTextFile(filepath.Join(t.TempDir(), "notes.txt"), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return store
}
