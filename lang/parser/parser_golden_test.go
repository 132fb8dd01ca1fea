package parser_test

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"

	"github.com/mna/skeme/internal/filetest"
	"github.com/mna/skeme/internal/maincmd"
)

var testUpdateParserTests = flag.Bool("test.update-parser-tests", false, "If set, replace expected parser test results with actual results.")

// TestParseFiles drives the parse command over testdata/in fixtures and
// diffs its stdout/stderr against testdata/out golden files, exercising
// the parser's AST shape through the same path the skeme binary's
// "parse" subcommand uses.
func TestParseFiles(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".skeme") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{Stdout: &buf, Stderr: &ebuf}

			// error is ignored, we just want it printed to ebuf
			_ = maincmd.ParseFiles(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateParserTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateParserTests)
		})
	}
}
