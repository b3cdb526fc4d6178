package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/notebook/internal/apperr"
)

// Command is one numbered menu entry.
type Command struct {
	Label string
	Run   func(ctx context.Context) error
	// Exit ends the loop instead of calling Run.
	Exit bool
}

// Menu re-prints its commands each iteration and dispatches the chosen one.
type Menu struct {
	Title    string
	Commands []Command

	p      *Prompter
	logger *slog.Logger
}

// NewMenu creates a menu reading choices through p.
func NewMenu(title string, p *Prompter, logger *slog.Logger, cmds ...Command) *Menu {
	if logger == nil {
		logger = slog.Default()
	}
	return &Menu{Title: title, Commands: cmds, p: p, logger: logger}
}

// Run loops until the exit entry is chosen, input ends or ctx is cancelled.
// Command errors are reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.p.r.rule(m.Title)
		for i, c := range m.Commands {
			m.p.Printf("%d. %s\n", i+1, c.Label)
		}

		choice, err := m.p.Int("Choose an option: ")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		switch {
		case errors.Is(err, io.EOF):
			m.p.Println()
			return nil
		case errors.Is(err, apperr.ErrInvalidChoice):
			m.p.Println(invalidOption)
			continue
		case err != nil:
			return err
		}
		if choice < 1 || choice > len(m.Commands) {
			m.p.Println(invalidOption)
			continue
		}

		cmd := m.Commands[choice-1]
		if cmd.Exit {
			m.p.Println("Goodbye!")
			return nil
		}
		m.logger.Debug("menu: dispatch", slog.String("command", cmd.Label))
		if err := cmd.Run(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				m.p.Println()
				return nil
			}
			m.logger.Debug("menu: command failed",
				slog.String("command", cmd.Label),
				slog.String("error", err.Error()))
			m.p.Println(Describe(err))
		}
	}
}

const invalidOption = "Invalid option, please try again."

// Describe turns a command error into the message shown to the user.
func Describe(err error) string {
	var (
		ioErr *apperr.IOError
		stErr *apperr.StorageError
		vErrs validation.Errors
	)
	switch {
	case errors.As(err, &ioErr):
		return fmt.Sprintf("Cannot %s notes file: %v", ioErr.Op, ioErr.Err)
	case errors.As(err, &stErr):
		return "Storage error: " + stErr.Err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return "Note not found."
	case errors.Is(err, apperr.ErrInvalidChoice):
		return invalidOption
	case errors.As(err, &vErrs):
		return "Invalid note: " + vErrs.Error()
	default:
		return "Error: " + err.Error()
	}
}
