package object

import (
	"github.com/dolthub/swiss"

	"github.com/mna/skeme/lang/errs"
)

// Scope is one lexical frame: a set of name-to-Value bindings plus a
// pointer to the enclosing frame. Bindings are kept in a swiss.Map rather
// than a plain Go map, the same hash table the teaching repo already
// depends on for its own symbol tables.
type Scope struct {
	parent   ScopeHandle
	bindings *swiss.Map[string, Handle]
}

// NewTopScope allocates the single persistent top-level scope. It has no
// parent and is always reachable, independent of the garbage collector's
// usefulness heuristic (see gc.go).
func (h *Heap) NewTopScope() ScopeHandle {
	s := &Scope{parent: noScope, bindings: swiss.NewMap[string, Handle](0)}
	h.scopes = append(h.scopes, s)
	return ScopeHandle(len(h.scopes) - 1)
}

// ForkCall allocates a new, empty child scope whose parent is parent. This
// is what every lambda call frame uses: it starts empty because lookups
// that miss simply fall through to parent, which already chains to
// everything the call frame should see.
func (h *Heap) ForkCall(parent ScopeHandle) ScopeHandle {
	s := &Scope{parent: parent, bindings: swiss.NewMap[string, Handle](0)}
	h.scopes = append(h.scopes, s)
	return ScopeHandle(len(h.scopes) - 1)
}

// ForkDefinition allocates the scope a Lambda captures the first time it
// is evaluated: a child of parent pre-loaded with a shallow copy of
// parent's bindings at this instant. Because its parent pointer still
// points at parent, a later binding added to parent (for example the
// define that names the lambda itself, completed after the lambda
// expression was evaluated) is still visible through the parent chain
// even though it is absent from the snapshot.
func (h *Heap) ForkDefinition(parent ScopeHandle) ScopeHandle {
	src := h.scopes[parent]
	bindings := swiss.NewMap[string, Handle](uint32(src.bindings.Count()))
	src.bindings.Iter(func(k string, v Handle) bool {
		bindings.Put(k, v)
		return false
	})
	s := &Scope{parent: parent, bindings: bindings}
	h.scopes = append(h.scopes, s)
	return ScopeHandle(len(h.scopes) - 1)
}

// Lookup walks sh and its ancestors for name.
func (h *Heap) Lookup(sh ScopeHandle, name string) (Handle, bool) {
	for sh != noScope {
		s := h.scopes[sh]
		if v, ok := s.bindings.Get(name); ok {
			return v, true
		}
		sh = s.parent
	}
	return NilHandle, false
}

// Contains reports whether name is bound in sh or any ancestor.
func (h *Heap) Contains(sh ScopeHandle, name string) bool {
	for sh != noScope {
		if h.scopes[sh].bindings.Has(name) {
			return true
		}
		sh = h.scopes[sh].parent
	}
	return false
}

// Bind creates or overwrites name in sh itself, never an ancestor. This is
// what define uses.
func (h *Heap) Bind(sh ScopeHandle, name string, v Handle) {
	h.scopes[sh].bindings.Put(name, v)
}

// BindIfAbsent binds name in sh only if no ancestor (including sh) already
// binds it. This is how a lambda's internal define promotes its own name
// into the lambda's captured scope, enabling self-recursion across calls.
func (h *Heap) BindIfAbsent(sh ScopeHandle, name string, v Handle) {
	if h.Contains(sh, name) {
		return
	}
	h.Bind(sh, name, v)
}

// SetExisting finds the nearest frame in sh's chain that already binds
// name and overwrites it there. It returns a NameError if name is unbound
// anywhere in the chain, matching set!'s contract.
func (h *Heap) SetExisting(sh ScopeHandle, name string, v Handle) error {
	for cur := sh; cur != noScope; cur = h.scopes[cur].parent {
		if h.scopes[cur].bindings.Has(name) {
			h.scopes[cur].bindings.Put(name, v)
			return nil
		}
	}
	return errs.NewNameError("set!: unbound variable " + name)
}
