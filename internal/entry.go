// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/notebook/internal/console"
	"github.com/starford/notebook/internal/notedb"
	"github.com/starford/notebook/internal/noteservice"
	"github.com/starford/notebook/internal/storage"
)

// Run opens the configured store and runs the interactive menu until the
// user exits. A store that cannot be opened aborts before the menu starts.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{in: os.Stdin, out: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logOut, closeLog, err := app.logWriter()
	if err != nil {
		return err
	}
	defer closeLog()

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("text_path", cfg.Text.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	p := console.NewPrompter(app.in, app.out)

	var menu *console.Menu
	switch cfg.Storage.Backend {
	case BackendText:
		store, err := storage.NewTextFile(cfg.Text.Path, storage.WithMissingAsEmpty(cfg.Text.MissingAsEmpty))
		if err != nil {
			return fmt.Errorf("init text store: %w", err)
		}
		menu = console.TextMenu(noteservice.NewJournal(store, logger), p, logger)

	case BackendSQLite:
		db, err := notedb.Open(cfg.SQLite.Path, notedb.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("init sqlite store: %w", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("close sqlite store", slog.String("error", err.Error()))
			}
		}()
		if n, err := db.Count(ctx); err == nil {
			logger.Info("SQLite store opened", slog.Int("notes", n))
		}
		menu = console.NotesMenu(noteservice.NewService(db, logger), p, logger)

	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if err := menu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Menu loop error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Notebook closed")
	return nil
}

func (a *application) logWriter() (io.Writer, func(), error) {
	if a.logOut != nil {
		return a.logOut, func() {}, nil
	}
	if a.config.App.LogFile == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(a.config.App.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
