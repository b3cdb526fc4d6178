package console

import (
	"context"
	"log/slog"

	"github.com/starford/notebook/internal/models"
	"github.com/starford/notebook/internal/noteservice"
)

// NotesMenu builds the menu for the SQLite backend.
func NotesMenu(svc *noteservice.Service, p *Prompter, logger *slog.Logger) *Menu {
	h := &noteHandlers{svc: svc, p: p}
	return NewMenu("Notebook", p, logger,
		Command{Label: "Add note", Run: h.add},
		Command{Label: "List notes", Run: h.list},
		Command{Label: "Edit note", Run: h.edit},
		Command{Label: "Delete note", Run: h.delete},
		Command{Label: "Search notes", Run: h.search},
		Command{Label: "Toggle important", Run: h.toggle},
		Command{Label: "Filter by category", Run: h.filter},
		Command{Label: "Exit", Exit: true},
	)
}

type noteHandlers struct {
	svc *noteservice.Service
	p   *Prompter
}

func (h *noteHandlers) add(ctx context.Context) error {
	var in noteservice.NoteInput
	var err error
	if in.Title, err = h.p.Line("Title: "); err != nil {
		return err
	}
	if in.Content, err = h.p.Line("Content: "); err != nil {
		return err
	}
	if in.Category, err = h.p.Line(categoryPrompt("Category")); err != nil {
		return err
	}
	n, err := h.svc.Create(ctx, in)
	if err != nil {
		return err
	}
	h.p.Printf("Note %d added.\n", n.ID)
	return nil
}

func (h *noteHandlers) list(ctx context.Context) error {
	notes, err := h.svc.List(ctx)
	if err != nil {
		return err
	}
	h.p.r.notes("All notes", notes)
	return nil
}

func (h *noteHandlers) edit(ctx context.Context) error {
	id, err := h.p.ID("Note id to edit: ")
	if err != nil {
		return err
	}
	n, err := h.svc.Get(ctx, id)
	if err != nil {
		return err
	}
	h.p.Printf("Current title:    %s\n", n.Title)
	h.p.Printf("Current content:  %s\n", n.Content)
	h.p.Printf("Current category: %s\n", n.Category)
	h.p.Println("Leave a field blank to keep its current value.")

	var in noteservice.NoteInput
	if in.Title, err = h.p.Line("New title: "); err != nil {
		return err
	}
	if in.Content, err = h.p.Line("New content: "); err != nil {
		return err
	}
	if in.Category, err = h.p.Line(categoryPrompt("New category")); err != nil {
		return err
	}
	if _, err := h.svc.Edit(ctx, id, in); err != nil {
		return err
	}
	h.p.Println("Note updated.")
	return nil
}

func (h *noteHandlers) delete(ctx context.Context) error {
	if err := h.list(ctx); err != nil {
		return err
	}
	id, err := h.p.ID("Note id to delete: ")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(ctx, id); err != nil {
		return err
	}
	h.p.Println("Note deleted.")
	return nil
}

func (h *noteHandlers) search(ctx context.Context) error {
	h.p.Println("Search by:")
	labels := make([]string, len(models.SearchFields))
	for i, f := range models.SearchFields {
		labels[i] = string(f)
	}
	i, err := h.p.Choose("Field: ", labels)
	if err != nil {
		return err
	}
	term, err := h.p.Line("Search term: ")
	if err != nil {
		return err
	}
	notes, err := h.svc.Search(ctx, models.SearchFields[i], term)
	if err != nil {
		return err
	}
	h.p.r.notes("Search results", notes)
	return nil
}

func (h *noteHandlers) toggle(ctx context.Context) error {
	id, err := h.p.ID("Note id to toggle: ")
	if err != nil {
		return err
	}
	n, err := h.svc.ToggleImportant(ctx, id)
	if err != nil {
		return err
	}
	if n.Important {
		h.p.Printf("Note %d marked as important.\n", n.ID)
	} else {
		h.p.Printf("Note %d no longer important.\n", n.ID)
	}
	return nil
}

func (h *noteHandlers) filter(ctx context.Context) error {
	h.p.Println("Categories:")
	labels := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		labels[i] = string(c)
	}
	i, err := h.p.Choose("Category: ", labels)
	if err != nil {
		return err
	}
	c := models.Categories[i]
	notes, err := h.svc.ByCategory(ctx, string(c))
	if err != nil {
		return err
	}
	h.p.r.notes("Category: "+string(c), notes)
	return nil
}

func categoryPrompt(label string) string {
	return label + " (general/work/personal/study): "
}
