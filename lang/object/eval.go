package object

import "github.com/mna/skeme/lang/errs"

// Eval reduces v, an AST/value node, to a value, looking up Symbols and
// applying calls in scope sh. Every Kind defines its own reduction:
//
//   - Number evaluates to a fresh copy of itself (numbers carry no
//     identity worth preserving across evaluations).
//   - Boolean evaluates to itself.
//   - Symbol looks itself up in sh's chain; unbound is a NameError.
//   - Pair has no defined evaluation, whether built by cons or written in
//     dotted notation, so evaluating one is a NameError.
//   - Quote evaluates to its payload, unchanged and unevaluated.
//   - Lambda snaps its captured scope the first time it is evaluated, then
//     evaluates to itself.
//   - Primitive dispatches to its built-in behavior (builtins.go).
//   - Application evaluates its operator, requires a Lambda, and applies
//     it to the unevaluated argument nodes.
//   - Holder has no defined evaluation; it exists only to be read apart by
//     Apply as a Lambda's formals.
func Eval(h *Heap, v Handle, sh ScopeHandle) (Handle, error) {
	if v == NilHandle {
		return NilHandle, nil
	}
	if h.maxDepth > 0 {
		h.depth++
		defer func() { h.depth-- }()
		if h.depth > h.maxDepth {
			return NilHandle, errs.NewRuntimeError("maximum recursion depth exceeded")
		}
	}
	val := h.Get(v)
	switch val.Kind {
	case KindNumber:
		return h.NewNumber(val.Num), nil
	case KindBoolean:
		return v, nil
	case KindSymbol:
		found, ok := h.Lookup(sh, val.Name)
		if !ok {
			return NilHandle, errs.NewNameError("unbound variable: " + val.Name)
		}
		return found, nil
	case KindQuote:
		return val.Quoted, nil
	case KindLambda:
		if val.Env == noScope {
			val.Env = h.ForkDefinition(sh)
		}
		return v, nil
	case KindPrimitive:
		return evalPrimitive(h, sh, val)
	case KindApplication:
		opVal, err := Eval(h, val.Operator, sh)
		if err != nil {
			return NilHandle, err
		}
		if opVal == NilHandle || h.Get(opVal).Kind != KindLambda {
			return NilHandle, errs.NewNameError("cannot apply a non-procedure value")
		}
		return Apply(h, opVal, val.AppArgs, sh)
	case KindPair:
		return NilHandle, errs.NewNameError("a pair cannot be evaluated directly")
	case KindHolder:
		return NilHandle, errs.NewNameError("a parameter list cannot be evaluated directly")
	default:
		return NilHandle, errs.NewNameError("value of unknown kind cannot be evaluated")
	}
}

// evalAll evaluates each node in args, in scope sh, left to right,
// stopping at the first error.
func evalAll(h *Heap, sh ScopeHandle, args []Handle) ([]Handle, error) {
	out := make([]Handle, len(args))
	for i, a := range args {
		v, err := Eval(h, a, sh)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func isFalsy(h *Heap, v Handle) bool {
	if v == NilHandle {
		return false
	}
	val := h.Get(v)
	return val.Kind == KindBoolean && !val.Bool
}
