// Package object implements the data model, the two-arena heap and its
// mark-and-sweep collector, scope chains, and the evaluator (Eval/Apply)
// and printer for skeme values. The package is deliberately one unit:
// the object graph, its garbage collector and the code that walks it are
// tightly coupled, the same way lang/resolver in the teaching repo this
// project started from owns one closed node-kind set together with the
// logic that walks it.
package object

import "io"

// Heap owns two arenas addressed by opaque handles rather than Go
// pointers: a Value arena and a Scope arena. Handles survive a Collect as
// long as the Value or Scope they name is still reachable; unreachable
// slots are tombstoned (set to nil) in place rather than compacted, so a
// live handle always keeps meaning the same object across a GC.
type Heap struct {
	values []*Value
	scopes []*Scope

	// maxDepth bounds Eval's recursion depth; zero means unbounded. depth
	// tracks the current nesting. Both are driven by internal/config's
	// SKEME_MAX_DEPTH, since this evaluator has no tail-call optimization
	// and otherwise relies entirely on the host stack.
	maxDepth int
	depth    int

	gcTraceOut io.Writer
}

// SetMaxDepth bounds how deeply Eval may recurse before returning a
// RuntimeError instead of continuing toward a host stack overflow. Zero
// (the default) leaves recursion unbounded.
func (h *Heap) SetMaxDepth(n int) { h.maxDepth = n }

// SetGCTrace turns on or off a one-line report after every Collect
// describing how many values and scopes were tombstoned, written to w.
func (h *Heap) SetGCTrace(w io.Writer) { h.gcTraceOut = w }

// NewHeap returns an empty Heap. Index 0 of both arenas is reserved
// (NilHandle / the "no parent" scope sentinel) and is never assigned a
// live object.
func NewHeap() *Heap {
	return &Heap{
		values: make([]*Value, 1),
		scopes: make([]*Scope, 1),
	}
}

// Alloc stores v in the value arena and returns its Handle.
func (h *Heap) Alloc(v Value) Handle {
	h.values = append(h.values, &v)
	return Handle(len(h.values) - 1)
}

// Get returns the Value named by handle. handle must not be NilHandle and
// must not name a tombstoned slot; callers that might hold a stale handle
// across a Collect are responsible for not doing that, the same
// guarantee the teacher's own handle-based collections require of their
// callers.
func (h *Heap) Get(handle Handle) *Value {
	return h.values[handle]
}

// NewNumber, NewBoolean, NewSymbol, NewPair, NewQuote, NewHolder,
// NewLambda, NewPrimitive and NewApplication allocate one Value of the
// matching Kind.
func (h *Heap) NewNumber(n int64) Handle { return h.Alloc(Value{Kind: KindNumber, Num: n}) }

func (h *Heap) NewBoolean(b bool) Handle { return h.Alloc(Value{Kind: KindBoolean, Bool: b}) }

func (h *Heap) NewSymbol(name string) Handle { return h.Alloc(Value{Kind: KindSymbol, Name: name}) }

func (h *Heap) NewPair(car, cdr Handle) Handle {
	return h.Alloc(Value{Kind: KindPair, Car: car, Cdr: cdr})
}

func (h *Heap) NewQuote(payload Handle) Handle {
	return h.Alloc(Value{Kind: KindQuote, Quoted: payload})
}

func (h *Heap) NewHolder(symbols []Handle) Handle {
	return h.Alloc(Value{Kind: KindHolder, Symbols: symbols})
}

func (h *Heap) NewLambda(formals Handle, body []Handle) Handle {
	return h.Alloc(Value{Kind: KindLambda, Formals: formals, Body: body})
}

func (h *Heap) NewPrimitive(prim PrimKind, selector string, args []Handle) Handle {
	return h.Alloc(Value{Kind: KindPrimitive, Prim: prim, Selector: selector, PrimArgs: args})
}

func (h *Heap) NewApplication(operator Handle, args []Handle) Handle {
	return h.Alloc(Value{Kind: KindApplication, Operator: operator, AppArgs: args})
}

// NewList builds a proper, Nil-terminated Pair chain from elems.
func (h *Heap) NewList(elems []Handle) Handle {
	acc := NilHandle
	for i := len(elems) - 1; i >= 0; i-- {
		acc = h.NewPair(elems[i], acc)
	}
	return acc
}
