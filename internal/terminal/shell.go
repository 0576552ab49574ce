package terminal

import (
	"context"
	"strconv"
	"strings"
)

// Controller is what the shell drives; *tasklist.Controller implements it.
type Controller interface {
	Refresh(ctx context.Context) error
	Create(ctx context.Context) error
}

const helpText = `commands:
  add <text>   add a task (add alone submits the current input)
  toggle <n>   mark row n done / not done
  rm <n>       delete row n
  ls           reload the list
  help         show this help
  quit         exit
`

// Shell reads commands until quit, end of input or ctx is done.
// Operation failures are already reported through the view, so they never stop the loop.
type Shell struct {
	term *Terminal
	ctl  Controller
}

func NewShell(term *Terminal, ctl Controller) *Shell {
	return &Shell{term: term, ctl: ctl}
}

func (s *Shell) Run(ctx context.Context) error {
	for {
		s.term.printf("> ")
		line, ok, err := s.term.nextLine(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if quit := s.exec(ctx, line); quit {
			return nil
		}
	}
}

func (s *Shell) exec(ctx context.Context, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
	case "add":
		if arg != "" {
			s.term.SetInput(arg)
		}
		_ = s.ctl.Create(ctx)
	case "toggle", "rm":
		n, err := strconv.Atoi(arg)
		row, ok := s.term.Row(n)
		if err != nil || !ok {
			s.term.printf("no such row: %q\n", arg)
			return false
		}
		if cmd == "toggle" {
			_ = row.Toggle(ctx)
		} else {
			_ = row.Delete(ctx)
		}
	case "ls":
		_ = s.ctl.Refresh(ctx)
	case "help":
		s.term.printf("%s", helpText)
	case "quit", "exit":
		return true
	default:
		s.term.printf("unknown command %q, try help\n", cmd)
	}
	return false
}
