package maincmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mna/mainer"

	"github.com/mna/skeme/lang/object"
	"github.com/mna/skeme/lang/parser"
)

func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ParseFiles(ctx, stdio, args...)
}

// ParseFiles parses every top-level expression of each file and prints
// its unevaluated AST shape. Each file gets its own Heap: parse is a
// read-only look at what a file's forms parse into, not a persistent
// session, unlike Run.
func ParseFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
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

		h := object.NewHeap()
		p := parser.New(string(src), h)
		for !p.AtEnd() {
			handle, err := p.ParseOne()
			if err != nil {
				fmt.Fprintf(stdio.Stderr, "%s: %s\n", file, err)
				lastErr = err
				break
			}
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", file, dumpNode(h, handle))
		}
	}
	return lastErr
}

// dumpNode renders v the way the parser built it, before evaluation: a
// Lambda, Application or Primitive node has no printed form of its own
// (object.Print refuses those, since they should never survive to a
// result), so this walks the node kinds directly instead.
func dumpNode(h *object.Heap, v object.Handle) string {
	if v == object.NilHandle {
		return "()"
	}
	val := h.Get(v)
	switch val.Kind {
	case object.KindNumber, object.KindBoolean, object.KindSymbol, object.KindQuote, object.KindPair:
		s, err := object.Print(h, v, true)
		if err != nil {
			return "<unprintable>"
		}
		return s
	case object.KindLambda:
		return "(lambda " + dumpHolder(h, val.Formals) + " " + dumpNodes(h, val.Body) + ")"
	case object.KindPrimitive:
		return "(" + primitiveName(val) + " " + dumpNodes(h, val.PrimArgs) + ")"
	case object.KindApplication:
		return "(" + dumpNode(h, val.Operator) + " " + dumpNodes(h, val.AppArgs) + ")"
	case object.KindHolder:
		return dumpHolder(h, v)
	default:
		return "<unknown node>"
	}
}

func dumpHolder(h *object.Heap, v object.Handle) string {
	val := h.Get(v)
	names := make([]string, len(val.Symbols))
	for i, s := range val.Symbols {
		names[i] = h.Get(s).Name
	}
	return "(" + strings.Join(names, " ") + ")"
}

func dumpNodes(h *object.Heap, nodes []object.Handle) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = dumpNode(h, n)
	}
	return strings.Join(parts, " ")
}

func primitiveName(val *object.Value) string {
	if val.Selector != "" {
		return val.Selector
	}
	switch val.Prim {
	case object.PrimDefine:
		return "define"
	case object.PrimSet:
		return "set!"
	case object.PrimIf:
		return "if"
	case object.PrimCons:
		return "cons"
	case object.PrimCar:
		return "car"
	case object.PrimCdr:
		return "cdr"
	case object.PrimList:
		return "list"
	case object.PrimNot:
		return "not"
	case object.PrimAnd:
		return "and"
	case object.PrimOr:
		return "or"
	case object.PrimMin:
		return "min"
	case object.PrimMax:
		return "max"
	case object.PrimAbs:
		return "abs"
	default:
		return "<primitive>"
	}
}
