package console

import (
	"context"
	"log/slog"

	"github.com/starford/notebook/internal/noteservice"
)

// TextMenu builds the menu for the flat-file backend.
func TextMenu(j *noteservice.Journal, p *Prompter, logger *slog.Logger) *Menu {
	h := &textHandlers{j: j, p: p}
	return NewMenu("Notebook", p, logger,
		Command{Label: "Add note", Run: h.add},
		Command{Label: "View notes", Run: h.view},
		Command{Label: "Delete note", Run: h.delete},
		Command{Label: "Exit", Exit: true},
	)
}

type textHandlers struct {
	j *noteservice.Journal
	p *Prompter
}

func (h *textHandlers) add(_ context.Context) error {
	text, err := h.p.RawLine("Enter your note: ")
	if err != nil {
		return err
	}
	if err := h.j.Add(text); err != nil {
		return err
	}
	h.p.Println("Note added.")
	return nil
}

func (h *textHandlers) view(_ context.Context) error {
	lines, err := h.j.List()
	if err != nil {
		return err
	}
	h.p.r.lines(lines)
	return nil
}

func (h *textHandlers) delete(_ context.Context) error {
	lines, err := h.j.List()
	if err != nil {
		return err
	}
	h.p.r.lines(lines)
	if len(lines) == 0 {
		return nil
	}
	h.p.Println("Line numbers of the notes below the deleted one move up by one.")
	pos, err := h.p.Int("Line number to delete: ")
	if err != nil {
		return err
	}
	if err := h.j.Delete(pos); err != nil {
		return err
	}
	h.p.Println("Note deleted.")
	return nil
}
