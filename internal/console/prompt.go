// Package console implements the interactive menu, its prompts and the
// command handlers for both note backends.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starford/notebook/internal/apperr"
)

// Prompter reads one answer per line and writes prompts and results.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	r   renderer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		r:   newRenderer(out),
	}
}

// Printf writes formatted text.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next input line with surrounding
// whitespace removed. A final line without a newline is still returned;
// io.EOF is returned only when no input is left.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimSpace(s), nil
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// RawLine prints prompt and returns the next input line exactly as typed,
// minus its line terminator.
func (p *Prompter) RawLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || s == "") {
		return "", err
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

// Int prints prompt and parses the answer as a base-10 integer.
// Non-numeric input returns apperr.ErrInvalidChoice.
func (p *Prompter) Int(prompt string) (int, error) {
	s, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, apperr.ErrInvalidChoice)
	}
	return n, nil
}

// ID prints prompt and parses the answer as a note id.
func (p *Prompter) ID(prompt string) (int64, error) {
	s, err := p.Line(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", s, apperr.ErrInvalidChoice)
	}
	return id, nil
}

// Choose prints a numbered list of options and returns the chosen index.
func (p *Prompter) Choose(prompt string, options []string) (int, error) {
	for i, opt := range options {
		p.Printf("%d. %s\n", i+1, opt)
	}
	n, err := p.Int(prompt)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > len(options) {
		return 0, fmt.Errorf("option %d: %w", n, apperr.ErrInvalidChoice)
	}
	return n - 1, nil
}
