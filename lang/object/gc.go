package object

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Collect runs a mark-and-sweep pass rooted at root (the persistent
// top-level scope), tombstoning every Value and Scope that turns out to
// be unreachable. It is meant to run between top-level Run calls, never
// in the middle of evaluating one expression.
//
// Scope has no pointer to its children, only to its parent, so scope
// liveness cannot be found by walking down from root. Instead every scope
// currently in the arena is asked whether it looks "useful"; a useful
// scope roots its own parent chain. A scope is useful if it is empty, or
// if it holds at least one binding that is not a Number — an empty scope
// is kept vacuously (a zero-argument lambda call frame is exactly this
// shape, and it still must root its parent chain) while a scope that
// holds only Number bindings is assumed to be disposable scratch space.
// This is an approximation carried over unchanged from the original
// interpreter this design is modeled on: it can retain scopes longer than
// strictly necessary, but it never discards one still needed to look up a
// non-Number binding.
func (h *Heap) Collect(root ScopeHandle) {
	reachS := make(map[ScopeHandle]bool)
	reachV := make(map[Handle]bool)

	for sh := ScopeHandle(1); int(sh) < len(h.scopes); sh++ {
		if h.scopes[sh] == nil {
			continue
		}
		if h.scopeIsUseful(sh) {
			h.markScopeChain(sh, reachS)
		}
	}
	h.markScopeChain(root, reachS)

	queue := make([]ScopeHandle, 0, len(reachS))
	for sh := range reachS {
		queue = append(queue, sh)
	}
	// map iteration order is random; sorting makes the order values are
	// marked in deterministic, so a GC trace diff is stable run to run.
	slices.Sort(queue)
	for len(queue) > 0 {
		sh := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		sc := h.scopes[sh]
		if sc == nil {
			continue
		}
		sc.bindings.Iter(func(_ string, v Handle) bool {
			h.markValue(v, reachV, reachS, &queue)
			return false
		})
	}

	h.sweep(reachV, reachS)
}

func (h *Heap) scopeIsUseful(sh ScopeHandle) bool {
	sc := h.scopes[sh]
	if sc.bindings.Count() == 0 {
		return true
	}
	useful := false
	sc.bindings.Iter(func(_ string, v Handle) bool {
		if v == NilHandle || h.values[v].Kind != KindNumber {
			useful = true
			return true
		}
		return false
	})
	return useful
}

func (h *Heap) markScopeChain(sh ScopeHandle, reachS map[ScopeHandle]bool) {
	for sh != noScope {
		if reachS[sh] {
			return
		}
		reachS[sh] = true
		sh = h.scopes[sh].parent
	}
}

// markValue adds v (and, transitively, everything it references) to
// reachV. Marking a Lambda also roots its captured scope's parent chain
// and enqueues it for value marking, even if the bottom-up scope scan in
// Collect did not independently judge that scope useful — this is what
// guarantees a closure's captured environment survives regardless of the
// heuristic above.
func (h *Heap) markValue(v Handle, reachV map[Handle]bool, reachS map[ScopeHandle]bool, queue *[]ScopeHandle) {
	if v == NilHandle || reachV[v] {
		return
	}
	reachV[v] = true
	val := h.values[v]
	switch val.Kind {
	case KindPair:
		h.markValue(val.Car, reachV, reachS, queue)
		h.markValue(val.Cdr, reachV, reachS, queue)
	case KindQuote:
		h.markValue(val.Quoted, reachV, reachS, queue)
	case KindHolder:
		for _, s := range val.Symbols {
			h.markValue(s, reachV, reachS, queue)
		}
	case KindLambda:
		h.markValue(val.Formals, reachV, reachS, queue)
		for _, b := range val.Body {
			h.markValue(b, reachV, reachS, queue)
		}
		if val.Env != noScope {
			wasReachable := reachS[val.Env]
			h.markScopeChain(val.Env, reachS)
			if !wasReachable {
				*queue = append(*queue, val.Env)
			}
		}
	case KindPrimitive:
		for _, a := range val.PrimArgs {
			h.markValue(a, reachV, reachS, queue)
		}
	case KindApplication:
		h.markValue(val.Operator, reachV, reachS, queue)
		for _, a := range val.AppArgs {
			h.markValue(a, reachV, reachS, queue)
		}
	}
}

// sweep tombstones every arena slot not found reachable. Slot indices
// never shift, so a surviving Handle or ScopeHandle keeps addressing the
// same object; this trades memory give-back (the arenas only grow) for
// the simpler, stronger guarantee that handles are never invalidated or
// remapped underneath a live reference.
func (h *Heap) sweep(reachV map[Handle]bool, reachS map[ScopeHandle]bool) {
	var tombstonedValues, tombstonedScopes int
	for i := 1; i < len(h.values); i++ {
		if h.values[i] != nil && !reachV[Handle(i)] {
			h.values[i] = nil
			tombstonedValues++
		}
	}
	for i := 1; i < len(h.scopes); i++ {
		if h.scopes[i] != nil && !reachS[ScopeHandle(i)] {
			h.scopes[i] = nil
			tombstonedScopes++
		}
	}
	if h.gcTraceOut != nil {
		fmt.Fprintf(h.gcTraceOut, "gc: tombstoned %d values, %d scopes (arena sizes %d, %d)\n",
			tombstonedValues, tombstonedScopes, len(h.values), len(h.scopes))
	}
}
