package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"
	"github.com/mna/mainer"

	"github.com/mna/skeme/interp"
	"github.com/mna/skeme/internal/config"
)

const (
	newPrompt      = "> "
	continuePrompt = ". "
	resultPrompt   = "= "
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio, c.cfg)
}

// Repl runs an interactive read-eval-print loop, sharing one Interp (and
// so one persistent top-level scope) across every line, the way
// launix-de-memcp's scm.Repl runs one Env across a whole session,
// re-grounded on skeme's typed errors instead of panics: a SyntaxError
// that isIncompleteInput recognizes as an unfinished form continues
// reading onto the same logical input instead of reporting failure, every
// other error is printed and the prompt resets.
func Repl(ctx context.Context, stdio mainer.Stdio, cfg config.Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            newPrompt,
		HistoryFile:       cfg.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	rl.CaptureExitSignal()

	it := interp.New()
	it.SetMaxDepth(cfg.MaxDepth)
	if cfg.GCTrace {
		it.SetGCTrace(stdio.Stderr)
	}

	var pending string
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if pending == "" {
				return nil
			}
			pending = ""
			rl.SetPrompt(newPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		pending += line + "\n"
		if len(line) == 0 && pending == "\n" {
			pending = ""
			continue
		}

		result, consumed, err := it.RunNext(pending)
		if isIncompleteInput(err) {
			rl.SetPrompt(continuePrompt)
			continue
		}
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			pending = ""
			rl.SetPrompt(newPrompt)
			continue
		}
		if consumed > 0 {
			fmt.Fprintf(stdio.Stdout, "%s%s\n", resultPrompt, result)
		}
		pending = ""
		rl.SetPrompt(newPrompt)
	}
}

// isIncompleteInput reports whether err is the parser's "unexpected end of
// input" error, raised when input ends where an expression is expected
// (inside an argument list, an application or a lambda body); that is the
// one case where the repl keeps accumulating lines. An unclosed form that
// ends elsewhere (inside a quoted list or a formals list, or just before
// the ')' that closes a quote or define form) fails with a different
// syntax error and is reported outright.
func isIncompleteInput(err error) bool {
	return err != nil && err.Error() == "syntax error: unexpected end of input"
}
