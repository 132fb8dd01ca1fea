package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/mna/skeme/interp"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(ctx, stdio, c.cfg.MaxDepth, c.cfg.GCTrace, args...)
}

// RunFiles runs each file as a persistent interpreter session (defines
// and set!s in an earlier top-level expression are visible to later
// ones, and to later files), printing the result of every top-level
// expression as it completes.
func RunFiles(ctx context.Context, stdio mainer.Stdio, maxDepth int, gcTrace bool, files ...string) error {
	it := interp.New()
	it.SetMaxDepth(maxDepth)
	if gcTrace {
		it.SetGCTrace(stdio.Stderr)
	}

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

		remaining := string(src)
		for {
			result, consumed, err := it.RunNext(remaining)
			if err != nil {
				fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, err)
				lastErr = err
				break
			}
			if consumed == 0 {
				break
			}
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", file, result)
			remaining = remaining[consumed:]
		}
	}
	return lastErr
}
