package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/starford/notebook/internal/models"
)

const (
	maxRuleWidth = 40
	timeLayout   = "2006-01-02 15:04:05"
	bold         = "\033[1m"
	reset        = "\033[0m"
)

type renderer struct {
	out   io.Writer
	color bool
	width int
}

func newRenderer(out io.Writer) renderer {
	r := renderer{out: out, width: maxRuleWidth}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		r.color = true
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && w < r.width {
			r.width = w
		}
	}
	return r
}

// rule prints title centred in a line of '='.
func (r renderer) rule(title string) {
	title = " " + title + " "
	pad := r.width - len(title)
	if pad < 2 {
		fmt.Fprintln(r.out, title)
		return
	}
	left := pad / 2
	fmt.Fprintln(r.out, strings.Repeat("=", left)+title+strings.Repeat("=", pad-left))
}

func (r renderer) lines(lines []models.Line) {
	r.rule("All notes")
	if len(lines) == 0 {
		fmt.Fprintln(r.out, "No notes.")
		return
	}
	for _, l := range lines {
		fmt.Fprintf(r.out, "%d. %s\n", l.Position, l.Text)
	}
}

func (r renderer) notes(title string, notes []models.Note) {
	r.rule(title)
	if len(notes) == 0 {
		fmt.Fprintln(r.out, "No notes.")
		return
	}
	for _, n := range notes {
		r.note(n)
	}
}

func (r renderer) note(n models.Note) {
	mark := " "
	if n.Important {
		mark = "*"
		if r.color {
			mark = bold + "*" + reset
		}
	}
	fmt.Fprintf(r.out, "[%d]%s %s (%s)  %s\n", n.ID, mark, n.Title, n.Category, n.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(r.out, "    %s\n", n.Content)
	if !n.UpdatedAt.Equal(n.CreatedAt) {
		fmt.Fprintf(r.out, "    (edited %s)\n", n.UpdatedAt.Local().Format(timeLayout))
	}
}
