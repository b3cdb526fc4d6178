package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/notebook/internal/apperr"
	"github.com/starford/notebook/internal/models"
)

const tempPrefix = ".notebook-tmp-*"

// TextFile implements LineStore backed by a plain text file.
type TextFile struct {
	path           string
	missingAsEmpty bool
}

// TextFileOption configures a TextFile.
type TextFileOption func(*TextFile)

// WithMissingAsEmpty makes listing a file that does not exist yield zero
// lines instead of an IOError.
func WithMissingAsEmpty(v bool) TextFileOption {
	return func(t *TextFile) {
		t.missingAsEmpty = v
	}
}

// NewTextFile creates a TextFile for path. The file itself is created lazily
// by the first Append; its directory must already exist.
func NewTextFile(path string, opts ...TextFileOption) (*TextFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, &apperr.IOError{Op: "stat", Path: filepath.Dir(abs), Err: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: parent is not a directory: %s", filepath.Dir(abs))
	}
	t := &TextFile{path: abs}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Path returns the absolute path of the backing file.
func (t *TextFile) Path() string { return t.path }

// Append opens the file in append mode and writes text plus a newline.
func (t *TextFile) Append(text string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &apperr.IOError{Op: "open", Path: t.path, Err: err}
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		_ = f.Close()
		return &apperr.IOError{Op: "append", Path: t.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &apperr.IOError{Op: "close", Path: t.path, Err: err}
	}
	return nil
}

// Lines yields (position, text) pairs. An open failure yields a single error.
func (t *TextFile) Lines() iter.Seq2[models.Line, error] {
	return func(yield func(models.Line, error) bool) {
		f, err := os.Open(t.path)
		if err != nil {
			if t.missingAsEmpty && errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield(models.Line{}, &apperr.IOError{Op: "open", Path: t.path, Err: err})
			return
		}
		defer f.Close()

		r := bufio.NewReader(f)
		for pos := 1; ; pos++ {
			text, ok, err := readLine(r)
			if err != nil {
				yield(models.Line{}, &apperr.IOError{Op: "read", Path: t.path, Err: err})
				return
			}
			if !ok || !yield(models.Line{Position: pos, Text: text}, nil) {
				return
			}
		}
	}
}

// readLine returns the next line without its terminator. Lines have no
// length limit and a final line without a newline is still returned.
// ok is false once the input is exhausted.
func readLine(r *bufio.Reader) (text string, ok bool, err error) {
	s, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if err != nil && s == "" {
		return "", false, nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), true, nil
}

// List collects every line.
func (t *TextFile) List() ([]models.Line, error) {
	var out []models.Line
	for line, err := range t.Lines() {
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// DeleteAt rewrites the file without the line at position: tmp file → fsync →
// rename. The original is left untouched when position does not exist.
func (t *TextFile) DeleteAt(position int) (bool, error) {
	src, err := os.Open(t.path)
	if err != nil {
		return false, &apperr.IOError{Op: "open", Path: t.path, Err: err}
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(t.path), tempPrefix)
	if err != nil {
		return false, &apperr.IOError{Op: "create temp", Path: filepath.Dir(t.path), Err: err}
	}
	tmpName := tmp.Name()

	// Clean up on any failure path, and when nothing was deleted.
	renamed := false
	defer func() {
		if !renamed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	r := bufio.NewReader(src)
	deleted := false
	for pos := 1; ; pos++ {
		text, ok, err := readLine(r)
		if err != nil {
			return false, &apperr.IOError{Op: "read", Path: t.path, Err: err}
		}
		if !ok {
			break
		}
		if pos == position {
			deleted = true
			continue
		}
		if _, err := w.WriteString(text + "\n"); err != nil {
			return false, &apperr.IOError{Op: "write temp", Path: tmpName, Err: err}
		}
	}
	if !deleted {
		return false, nil
	}

	if err := w.Flush(); err != nil {
		return false, &apperr.IOError{Op: "write temp", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return false, &apperr.IOError{Op: "fsync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return false, &apperr.IOError{Op: "close temp", Path: tmpName, Err: err}
	}
	if info, err := src.Stat(); err == nil {
		_ = os.Chmod(tmpName, info.Mode().Perm())
	}
	if err := os.Rename(tmpName, t.path); err != nil {
		return false, &apperr.IOError{Op: "rename", Path: t.path, Err: err}
	}
	renamed = true
	return true, nil
}

// Verify *TextFile satisfies LineStore at compile time.
var _ LineStore = (*TextFile)(nil)
