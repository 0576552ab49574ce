// Package terminal is a line-oriented UI for the task list client.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"Todo/internal/tasklist"
)

// Terminal implements tasklist.View and tasklist.Confirmer on a pair of streams.
// A single reader goroutine feeds input lines to both the shell and confirmations.
type Terminal struct {
	out   io.Writer
	lines chan string

	mu      sync.Mutex
	input   string
	rows    []tasklist.Row
	message string
	kind    tasklist.Kind
}

func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{out: out, lines: make(chan string)}
	go t.readLines(bufio.NewScanner(in))
	return t
}

func (t *Terminal) readLines(sc *bufio.Scanner) {
	defer close(t.lines)
	for sc.Scan() {
		t.lines <- sc.Text()
	}
}

// nextLine blocks for one line of input. ok is false at end of input.
func (t *Terminal) nextLine(ctx context.Context) (line string, ok bool, err error) {
	select {
	case line, ok = <-t.lines:
		return line, ok, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) RenderList(rows []tasklist.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = rows
	for i, r := range rows {
		if r.Placeholder {
			fmt.Fprintf(t.out, "    %s\n", r.Text)
			continue
		}
		mark := " "
		if r.Completed {
			mark = "x"
		}
		fmt.Fprintf(t.out, "%3d. [%s] %s\n", i+1, mark, r.Text)
	}
}

func (t *Terminal) ShowMessage(text string, kind tasklist.Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message, t.kind = text, kind
	fmt.Fprintf(t.out, "[%s] %s\n", kind, text)
}

func (t *Terminal) ClearMessage() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message, t.kind = "", ""
}

// Message returns the message currently on display, if any.
func (t *Terminal) Message() (string, tasklist.Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message, t.kind
}

func (t *Terminal) ReadInput() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.input
}

func (t *Terminal) ClearInput() {
	t.SetInput("")
}

func (t *Terminal) SetInput(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.input = s
}

// Row returns the n-th rendered row, counting from 1. Placeholders don't count.
func (t *Terminal) Row(n int) (tasklist.Row, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.rows) || t.rows[n-1].Placeholder {
		return tasklist.Row{}, false
	}
	return t.rows[n-1], true
}

// Confirm asks prompt and waits for an answer. Only "y" or "yes" mean yes.
func (t *Terminal) Confirm(ctx context.Context, prompt string) (bool, error) {
	t.printf("%s [y/N]: ", prompt)
	line, ok, err := t.nextLine(ctx)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
