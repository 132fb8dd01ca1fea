// Package interp is the façade tying the scanner, parser and object
// packages into the single entry point a host program needs: a
// persistent interpreter that accepts one top-level expression per call
// and returns its printed result.
package interp

import (
	"io"

	"github.com/mna/skeme/lang/errs"
	"github.com/mna/skeme/lang/object"
	"github.com/mna/skeme/lang/parser"
)

// Interp is a single interpreter session: one Heap and one persistent
// top-level Scope that every Run call shares. Defines and set!s from one
// call are visible to the next.
type Interp struct {
	heap *object.Heap
	top  object.ScopeHandle
}

// New returns a fresh Interp with an empty top-level scope.
func New() *Interp {
	h := object.NewHeap()
	return &Interp{heap: h, top: h.NewTopScope()}
}

// SetMaxDepth bounds Eval's recursion depth for every subsequent Run
// call; zero leaves it unbounded. See internal/config's SKEME_MAX_DEPTH.
func (it *Interp) SetMaxDepth(n int) { it.heap.SetMaxDepth(n) }

// SetGCTrace turns on (w non-nil) or off (w nil) a one-line report after
// every Collect pass, written to w. See internal/config's SKEME_GC_TRACE.
func (it *Interp) SetGCTrace(w io.Writer) { it.heap.SetGCTrace(w) }

// Run parses text as exactly one top-level expression, evaluates it
// against the persistent top-level scope, and returns its printed
// result. A garbage collection pass runs first, before parsing — never
// in the middle of evaluating an expression.
//
// Evaluating a define or set! (or any other void-returning form) yields
// the empty list, which prints as "()" — every call has a textual
// result, there is no separate "no output" case.
func (it *Interp) Run(text string) (string, error) {
	it.heap.Collect(it.top)

	p := parser.New(text, it.heap)
	handle, err := p.ParseOne()
	if err != nil {
		return "", err
	}
	if !p.AtEnd() {
		return "", errs.NewSyntaxError("more than one top-level expression")
	}
	if handle == object.NilHandle {
		return "", errs.NewRuntimeError("empty top-level list")
	}

	result, err := object.Eval(it.heap, handle, it.top)
	if err != nil {
		return "", err
	}
	return object.Print(it.heap, result, true)
}

// RunNext parses and evaluates a single top-level expression from the
// head of text, exactly as Run does, but does not require text to
// contain only that one expression: it returns how many bytes of text
// its expression consumed, so a caller stepping through a whole file or
// REPL buffer one expression at a time can feed back the remainder. If
// only whitespace remains, it returns consumed == 0 and a nil error.
func (it *Interp) RunNext(text string) (result string, consumed int, err error) {
	it.heap.Collect(it.top)

	p := parser.New(text, it.heap)
	if p.AtEnd() {
		return "", 0, nil
	}

	handle, err := p.ParseOne()
	if err != nil {
		return "", 0, err
	}
	consumed = p.Pos()

	if handle == object.NilHandle {
		return "", consumed, errs.NewRuntimeError("empty top-level list")
	}

	evaluated, err := object.Eval(it.heap, handle, it.top)
	if err != nil {
		return "", consumed, err
	}
	printed, err := object.Print(it.heap, evaluated, true)
	if err != nil {
		return "", consumed, err
	}
	return printed, consumed, nil
}
