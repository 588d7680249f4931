package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
)

const interactiveHelp = `Commands:
  l, length <n>   set the length (blank clears it to 0)
  t, tier <1-5>   set the tier
  g, generate     generate a password (or just press enter)
  c, copy [n]     copy the current password, or history entry n
  h, history      list generated passwords
  clear           clear the history
  ?, help         show this help
  q, quit         leave
`

// Interactive is the prompt loop standing in for the generator form.
type Interactive struct {
	session *session.Session
	in      *bufio.Reader
	out     io.Writer
	errOut  io.Writer
	prompt  bool
}

// NewInteractive binds the loop to a session and stdio. Prompts are only
// printed when in is a terminal.
func NewInteractive(s *session.Session, in io.Reader, out, errOut io.Writer) *Interactive {
	return &Interactive{
		session: s,
		in:      bufio.NewReader(in),
		out:     out,
		errOut:  errOut,
		prompt:  helpers.IsTerminal(in),
	}
}

// Run reads commands until quit or end of input. A badge still showing is
// dismissed on the way out.
func (i *Interactive) Run(ctx context.Context) error {
	defer i.session.Dismiss()
	if i.prompt {
		fmt.Fprint(i.out, interactiveHelp)
	}
	RenderStatus(i.out, i.session)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i.prompt {
			fmt.Fprint(i.out, "> ")
		}
		line, readErr := i.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}
		if readErr == nil || strings.TrimSpace(line) != "" {
			quit, err := i.handle(ctx, line)
			if err != nil {
				fmt.Fprintln(i.errOut, "error:", err)
			}
			if quit {
				return nil
			}
		}
		if errors.Is(readErr, io.EOF) {
			return nil
		}
	}
}

func (i *Interactive) handle(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	command := ""
	if len(fields) > 0 {
		command = strings.ToLower(fields[0])
	}
	arg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), firstField(fields)))

	switch command {
	case "", "g", "generate":
		return false, i.generate(ctx)
	case "l", "length":
		i.session.SetLengthInput(arg)
		RenderStatus(i.out, i.session)
	case "t", "tier":
		tier, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("tier must be a number between %d and %d", domain.MinTier, domain.MaxTier)
		}
		if err := i.session.SetTier(domain.Tier(tier)); err != nil {
			return false, err
		}
		RenderStatus(i.out, i.session)
	case "c", "copy":
		return false, i.copy(ctx, arg)
	case "h", "history":
		list, err := i.session.ListHistory(ctx)
		if err != nil {
			return false, err
		}
		RenderHistory(i.out, list)
	case "clear":
		if err := i.session.ClearHistory(ctx); err != nil {
			return false, err
		}
		fmt.Fprintln(i.out, "History cleared.")
	case "?", "help":
		fmt.Fprint(i.out, interactiveHelp)
	case "q", "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (type ? for help)", command)
	}
	return false, nil
}

func (i *Interactive) generate(ctx context.Context) error {
	result, err := i.session.Submit(ctx)
	if err != nil {
		return err
	}
	RenderStatus(i.out, i.session)
	helpers.PrintWarnings(i.errOut, result.Warnings)
	return nil
}

func (i *Interactive) copy(ctx context.Context, arg string) error {
	if arg == "" {
		if err := i.session.Copy(ctx); err != nil {
			return err
		}
		RenderStatus(i.out, i.session)
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("history entry must be a number, got %q", arg)
	}
	if _, err := i.session.CopyHistory(ctx, n-1); err != nil {
		return err
	}
	fmt.Fprintf(i.out, "Copied history entry %d\n", n)
	return nil
}

func firstField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
