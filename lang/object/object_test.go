package object_test

import (
	"strings"
	"testing"

	"github.com/mna/skeme/lang/errs"
	"github.com/mna/skeme/lang/object"
	"github.com/stretchr/testify/require"
)

func TestPrintAtoms(t *testing.T) {
	h := object.NewHeap()

	n := h.NewNumber(42)
	s, err := object.Print(h, n, true)
	require.NoError(t, err)
	require.Equal(t, "42", s)

	bt := h.NewBoolean(true)
	s, err = object.Print(h, bt, true)
	require.NoError(t, err)
	require.Equal(t, "#t", s)

	bf := h.NewBoolean(false)
	s, err = object.Print(h, bf, true)
	require.NoError(t, err)
	require.Equal(t, "#f", s)

	sym := h.NewSymbol("foo")
	s, err = object.Print(h, sym, true)
	require.NoError(t, err)
	require.Equal(t, "foo", s)

	s, err = object.Print(h, object.NilHandle, true)
	require.NoError(t, err)
	require.Equal(t, "()", s)
}

func TestPrintProperAndImproperList(t *testing.T) {
	h := object.NewHeap()

	list := h.NewList([]object.Handle{h.NewNumber(1), h.NewNumber(2), h.NewNumber(3)})
	s, err := object.Print(h, list, true)
	require.NoError(t, err)
	require.Equal(t, "(1 2 3)", s)

	improper := h.NewPair(h.NewNumber(1), h.NewNumber(2))
	s, err = object.Print(h, improper, true)
	require.NoError(t, err)
	require.Equal(t, "(1 . 2)", s)
}

func TestPrintDetectsCycle(t *testing.T) {
	h := object.NewHeap()
	p := h.NewPair(h.NewNumber(1), object.NilHandle)
	h.Get(p).Cdr = p // set-cdr! onto itself

	s, err := object.Print(h, p, true)
	require.NoError(t, err)
	require.Equal(t, "(1 ...)", s)
}

func TestPrintUnprintableKindsAreNameErrors(t *testing.T) {
	h := object.NewHeap()
	formals := h.NewHolder(nil)
	lam := h.NewLambda(formals, []object.Handle{h.NewNumber(1)})

	_, err := object.Print(h, lam, true)
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)

	_, err = object.Print(h, formals, true)
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)
}

func TestScopeBindLookupAndForkCall(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	h.Bind(top, "x", h.NewNumber(1))

	call := h.ForkCall(top)
	_, ok := h.Lookup(call, "x")
	require.True(t, ok, "call frame should see parent bindings by chaining")

	h.Bind(call, "x", h.NewNumber(2))
	v, ok := h.Lookup(call, "x")
	require.True(t, ok)
	require.Equal(t, int64(2), h.Get(v).Num)

	v, ok = h.Lookup(top, "x")
	require.True(t, ok)
	require.Equal(t, int64(1), h.Get(v).Num, "binding in the call frame must not leak to parent")
}

func TestScopeForkDefinitionSnapshotsThenChains(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	h.Bind(top, "x", h.NewNumber(1))

	captured := h.ForkDefinition(top)
	v, ok := h.Lookup(captured, "x")
	require.True(t, ok)
	require.Equal(t, int64(1), h.Get(v).Num)

	// a binding added to the parent after the snapshot must still be
	// visible through the parent chain.
	h.Bind(top, "y", h.NewNumber(5))
	v, ok = h.Lookup(captured, "y")
	require.True(t, ok)
	require.Equal(t, int64(5), h.Get(v).Num)
}

func TestScopeSetExistingFindsEnclosingFrame(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	h.Bind(top, "x", h.NewNumber(1))
	call := h.ForkCall(top)

	err := h.SetExisting(call, "x", h.NewNumber(99))
	require.NoError(t, err)

	v, ok := h.Lookup(top, "x")
	require.True(t, ok)
	require.Equal(t, int64(99), h.Get(v).Num)
}

func TestScopeSetExistingUnboundIsNameError(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	err := h.SetExisting(top, "nope", h.NewNumber(1))
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)
}

func TestScopeBindIfAbsentDoesNotOverwrite(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	h.Bind(top, "x", h.NewNumber(1))
	h.BindIfAbsent(top, "x", h.NewNumber(2))

	v, ok := h.Lookup(top, "x")
	require.True(t, ok)
	require.Equal(t, int64(1), h.Get(v).Num)
}

func TestEvalSymbolLookupAndUnbound(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	h.Bind(top, "x", h.NewNumber(7))

	got, err := object.Eval(h, h.NewSymbol("x"), top)
	require.NoError(t, err)
	require.Equal(t, int64(7), h.Get(got).Num)

	_, err = object.Eval(h, h.NewSymbol("nope"), top)
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)
}

func TestEvalQuoteReturnsPayloadUnevaluated(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	quoted := h.NewQuote(h.NewSymbol("undefined-name"))

	got, err := object.Eval(h, quoted, top)
	require.NoError(t, err)
	require.Equal(t, object.KindSymbol, h.Get(got).Kind)
	require.Equal(t, "undefined-name", h.Get(got).Name)
}

func TestEvalPairIsNameError(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	pair := h.NewPair(h.NewNumber(1), h.NewNumber(2))

	_, err := object.Eval(h, pair, top)
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)
}

func TestApplyArityMismatchIsRuntimeError(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()
	formals := h.NewHolder([]object.Handle{h.NewSymbol("x")})
	lamHandle := h.NewLambda(formals, []object.Handle{h.NewSymbol("x")})

	lam, err := object.Eval(h, lamHandle, top)
	require.NoError(t, err)

	_, err = object.Apply(h, lam, nil, top)
	require.Error(t, err)
	require.IsType(t, &errs.RuntimeError{}, err)
}

func TestCollectPreservesReachableAndTombstonesGarbage(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()

	keep := h.NewSymbol("kept")
	h.Bind(top, "kept", keep)

	// garbage: a throwaway scope with only a Number binding, unreferenced
	// by anything reachable from top.
	throwaway := h.ForkCall(top)
	h.Bind(throwaway, "n", h.NewNumber(1))

	var trace strings.Builder
	h.SetGCTrace(&trace)
	h.Collect(top)

	got, ok := h.Lookup(top, "kept")
	require.True(t, ok)
	require.Equal(t, "kept", h.Get(got).Name)
	require.Equal(t, "gc: tombstoned 1 values, 1 scopes (arena sizes 3, 3)\n", trace.String())
}

func TestCollectTreatsLambdaCapturedScopeAsRoot(t *testing.T) {
	h := object.NewHeap()
	top := h.NewTopScope()

	// build a lambda whose captured scope is an empty snapshot of top (so
	// the scope-usefulness heuristic alone would already keep it), bind it
	// in top, then verify GC keeps the lambda reachable through that binding.
	formals := h.NewHolder([]object.Handle{h.NewSymbol("x")})
	lamHandle := h.NewLambda(formals, []object.Handle{h.NewSymbol("x")})
	lam, err := object.Eval(h, lamHandle, top)
	require.NoError(t, err)
	h.Bind(top, "f", lam)

	h.Collect(top)

	got, ok := h.Lookup(top, "f")
	require.True(t, ok)
	require.Equal(t, object.KindLambda, h.Get(got).Kind)
}
