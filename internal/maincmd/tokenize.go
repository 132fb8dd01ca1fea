package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/skeme/lang/scanner"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(ctx, stdio, args...)
}

// TokenizeFiles scans each file in turn and prints one line per token.
func TokenizeFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var lastErr error
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, err)
			lastErr = err
			continue
		}
		toks, err := scanner.TokenizeAll(string(src))
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s: %d %s", file, tok.Pos, tok.Kind)
			if tok.Kind.String() == "symbol" {
				fmt.Fprintf(stdio.Stdout, " %s", tok.Name)
			}
			if tok.Kind.String() == "constant" {
				fmt.Fprintf(stdio.Stdout, " %d", tok.Value)
			}
			fmt.Fprintln(stdio.Stdout)
		}
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, err)
			lastErr = err
		}
	}
	return lastErr
}
