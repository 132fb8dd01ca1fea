package object

import "github.com/mna/skeme/lang/errs"

// Apply calls the Lambda named by lambdaHandle (which must already have
// been evaluated, so its Env is snapped) with argExprs — unevaluated AST
// nodes evaluated here, in the caller's scope callerScope — bound
// positionally to its formals.
//
// A two-clause lambda body's first clause is conventionally an internal
// define: it runs in the fresh call frame like any other define (binding
// its name there), and in addition the newly defined name is promoted
// into the lambda's captured scope if nothing there already binds it.
// That second step is what lets an internal helper call itself across
// calls of the outer lambda: a plain call-frame binding would vanish with
// the frame, but the captured scope persists across calls.
func Apply(h *Heap, lambdaHandle Handle, argExprs []Handle, callerScope ScopeHandle) (Handle, error) {
	lam := h.Get(lambdaHandle)
	formals := h.Get(lam.Formals).Symbols
	if len(argExprs) != len(formals) {
		return NilHandle, errs.NewRuntimeError("wrong number of arguments to lambda")
	}

	callFrame := h.ForkCall(lam.Env)
	for i, argExpr := range argExprs {
		argVal, err := Eval(h, argExpr, callerScope)
		if err != nil {
			return NilHandle, err
		}
		h.Bind(callFrame, h.Get(formals[i]).Name, argVal)
	}

	if len(lam.Body) == 2 {
		if _, err := Eval(h, lam.Body[0], callFrame); err != nil {
			return NilHandle, err
		}
		if defNode := h.Get(lam.Body[0]); defNode.Kind == KindPrimitive && defNode.Prim == PrimDefine {
			name := h.Get(defNode.PrimArgs[0]).Name
			if bound, ok := h.Lookup(callFrame, name); ok {
				h.BindIfAbsent(lam.Env, name, bound)
			}
		}
	}

	return Eval(h, lam.Body[len(lam.Body)-1], callFrame)
}
