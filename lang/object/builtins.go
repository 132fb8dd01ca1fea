package object

import "github.com/mna/skeme/lang/errs"

// evalPrimitive dispatches a KindPrimitive node to its built-in behavior.
// Each case evaluates exactly the argument nodes it needs (and, for and/or,
// stops evaluating as soon as the result is decided), rather than eagerly
// evaluating every argument up front the way a naive implementation
// would — most arguments must be evaluated, but and/or's short circuit
// depends on not evaluating arguments that are never reached.
func evalPrimitive(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	switch p.Prim {
	case PrimArith:
		return evalArith(h, sh, p)
	case PrimCompare:
		return evalCompare(h, sh, p)
	case PrimMin:
		return evalMinMax(h, sh, p, false)
	case PrimMax:
		return evalMinMax(h, sh, p, true)
	case PrimAbs:
		return evalAbs(h, sh, p)
	case PrimNot:
		return evalNot(h, sh, p)
	case PrimAnd:
		return evalAnd(h, sh, p)
	case PrimOr:
		return evalOr(h, sh, p)
	case PrimTypeTest:
		return evalTypeTest(h, sh, p)
	case PrimCons:
		return evalCons(h, sh, p)
	case PrimCar:
		return evalCarCdr(h, sh, p, true)
	case PrimCdr:
		return evalCarCdr(h, sh, p, false)
	case PrimList:
		vals, err := evalAll(h, sh, p.PrimArgs)
		if err != nil {
			return NilHandle, err
		}
		return h.NewList(vals), nil
	case PrimListPart:
		return evalListPart(h, sh, p)
	case PrimDefine:
		return evalDefine(h, sh, p)
	case PrimSet:
		return evalSet(h, sh, p)
	case PrimSetPair:
		return evalSetPair(h, sh, p)
	case PrimIf:
		return evalIf(h, sh, p)
	default:
		return NilHandle, errs.NewRuntimeError("unknown primitive")
	}
}

func requireNumber(h *Heap, v Handle) (int64, error) {
	if v == NilHandle {
		return 0, errs.NewRuntimeError("expected a number")
	}
	val := h.Get(v)
	if val.Kind != KindNumber {
		return 0, errs.NewRuntimeError("expected a number, got a " + val.Kind.String())
	}
	return val.Num, nil
}

func requireArity(args []Handle, n int) error {
	if len(args) != n {
		return errs.NewRuntimeError("wrong number of arguments")
	}
	return nil
}

func numbersOf(h *Heap, vals []Handle) ([]int64, error) {
	nums := make([]int64, len(vals))
	for i, v := range vals {
		n, err := requireNumber(h, v)
		if err != nil {
			return nil, err
		}
		nums[i] = n
	}
	return nums, nil
}

// evalArith implements +, -, *, / as a left fold over every evaluated
// argument. Division truncates toward zero, which is what Go's integer /
// already does. Folding a single argument returns it unchanged; folding
// zero arguments returns the identity element for + and *, and is a
// RuntimeError for - and /.
func evalArith(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	vals, err := evalAll(h, sh, p.PrimArgs)
	if err != nil {
		return NilHandle, err
	}
	nums, err := numbersOf(h, vals)
	if err != nil {
		return NilHandle, err
	}
	if len(nums) == 0 {
		switch p.Selector {
		case "+":
			return h.NewNumber(0), nil
		case "*":
			return h.NewNumber(1), nil
		default:
			return NilHandle, errs.NewRuntimeError("'" + p.Selector + "' requires at least one argument")
		}
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		switch p.Selector {
		case "+":
			acc += n
		case "*":
			acc *= n
		case "-":
			acc -= n
		case "/":
			if n == 0 {
				return NilHandle, errs.NewRuntimeError("division by zero")
			}
			acc /= n
		}
	}
	return h.NewNumber(acc), nil
}

// evalCompare implements <, >, <=, >=, = over every evaluated argument,
// comparing consecutive pairs. An empty or single-element argument list
// is vacuously true.
func evalCompare(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	vals, err := evalAll(h, sh, p.PrimArgs)
	if err != nil {
		return NilHandle, err
	}
	nums, err := numbersOf(h, vals)
	if err != nil {
		return NilHandle, err
	}
	ok := true
	for i := 1; i < len(nums) && ok; i++ {
		a, b := nums[i-1], nums[i]
		switch p.Selector {
		case "<":
			ok = a < b
		case ">":
			ok = a > b
		case "<=":
			ok = a <= b
		case ">=":
			ok = a >= b
		case "=":
			ok = a == b
		}
	}
	return h.NewBoolean(ok), nil
}

func evalMinMax(h *Heap, sh ScopeHandle, p *Value, max bool) (Handle, error) {
	vals, err := evalAll(h, sh, p.PrimArgs)
	if err != nil {
		return NilHandle, err
	}
	nums, err := numbersOf(h, vals)
	if err != nil {
		return NilHandle, err
	}
	if len(nums) == 0 {
		return NilHandle, errs.NewRuntimeError("min/max requires at least one argument")
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		if (max && n > acc) || (!max && n < acc) {
			acc = n
		}
	}
	return h.NewNumber(acc), nil
}

func evalAbs(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 1); err != nil {
		return NilHandle, err
	}
	v, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	n, err := requireNumber(h, v)
	if err != nil {
		return NilHandle, err
	}
	if n < 0 {
		n = -n
	}
	return h.NewNumber(n), nil
}

// evalNot returns #f for any evaluated argument that is not the Boolean
// #f — including a non-Boolean — and #t only for #f itself. This
// preserves the source's non-standard truthiness on not, which does not
// treat every non-#f value as true the way if does.
func evalNot(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 1); err != nil {
		return NilHandle, err
	}
	v, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	if v == NilHandle {
		return h.NewBoolean(false), nil
	}
	val := h.Get(v)
	return h.NewBoolean(val.Kind == KindBoolean && !val.Bool), nil
}

func evalAnd(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if len(p.PrimArgs) == 0 {
		return h.NewBoolean(true), nil
	}
	var last Handle
	for _, a := range p.PrimArgs {
		v, err := Eval(h, a, sh)
		if err != nil {
			return NilHandle, err
		}
		if isFalsy(h, v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func evalOr(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if len(p.PrimArgs) == 0 {
		return h.NewBoolean(false), nil
	}
	var last Handle
	for _, a := range p.PrimArgs {
		v, err := Eval(h, a, sh)
		if err != nil {
			return NilHandle, err
		}
		if !isFalsy(h, v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

func evalTypeTest(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 1); err != nil {
		return NilHandle, err
	}
	v, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	var res bool
	switch p.Selector {
	case "number?":
		res = v != NilHandle && h.Get(v).Kind == KindNumber
	case "boolean?":
		res = v != NilHandle && h.Get(v).Kind == KindBoolean
	case "symbol?":
		res = v != NilHandle && h.Get(v).Kind == KindSymbol
	case "pair?":
		res = v != NilHandle && h.Get(v).Kind == KindPair
	case "null?":
		res = v == NilHandle
	case "list?":
		res = isProperList(h, v)
	}
	return h.NewBoolean(res), nil
}

// isProperList reports whether v is Nil or a chain of Pairs ending in Nil.
// It walks with a tortoise and a hare so a cycle built by set-cdr! is
// reported as "not a proper list" instead of looping forever.
func isProperList(h *Heap, v Handle) bool {
	slow, fast := v, v
	for {
		if fast == NilHandle {
			return true
		}
		fv := h.Get(fast)
		if fv.Kind != KindPair {
			return false
		}
		fast = fv.Cdr
		if fast == NilHandle {
			return true
		}
		fv2 := h.Get(fast)
		if fv2.Kind != KindPair {
			return false
		}
		fast = fv2.Cdr
		slow = h.Get(slow).Cdr
		if fast == slow {
			return false
		}
	}
}

func evalCons(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 2); err != nil {
		return NilHandle, err
	}
	vals, err := evalAll(h, sh, p.PrimArgs)
	if err != nil {
		return NilHandle, err
	}
	return h.NewPair(vals[0], vals[1]), nil
}

func evalCarCdr(h *Heap, sh ScopeHandle, p *Value, car bool) (Handle, error) {
	if err := requireArity(p.PrimArgs, 1); err != nil {
		return NilHandle, err
	}
	v, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	if v == NilHandle || h.Get(v).Kind != KindPair {
		name := "cdr"
		if car {
			name = "car"
		}
		return NilHandle, errs.NewRuntimeError(name + ": not a pair")
	}
	val := h.Get(v)
	if car {
		return val.Car, nil
	}
	return val.Cdr, nil
}

func evalListPart(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 2); err != nil {
		return NilHandle, err
	}
	listVal, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	idxVal, err := Eval(h, p.PrimArgs[1], sh)
	if err != nil {
		return NilHandle, err
	}
	idx, err := requireNumber(h, idxVal)
	if err != nil {
		return NilHandle, err
	}
	if idx < 0 {
		return NilHandle, errs.NewRuntimeError(p.Selector + ": negative index")
	}

	cur := listVal
	for i := int64(0); i < idx; i++ {
		if cur == NilHandle || h.Get(cur).Kind != KindPair {
			return NilHandle, errs.NewRuntimeError(p.Selector + ": index out of range")
		}
		cur = h.Get(cur).Cdr
	}
	if cur != NilHandle && h.Get(cur).Kind != KindPair {
		return NilHandle, errs.NewRuntimeError(p.Selector + ": not a list")
	}
	if p.Selector == "list-tail" {
		return cur, nil
	}
	if cur == NilHandle {
		return NilHandle, errs.NewRuntimeError("list-ref: index out of range")
	}
	return h.Get(cur).Car, nil
}

func evalDefine(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	nameVal := h.Get(p.PrimArgs[0])
	if nameVal.Kind != KindSymbol {
		return NilHandle, errs.NewSyntaxError("define: non-symbol value as variable")
	}
	v, err := Eval(h, p.PrimArgs[1], sh)
	if err != nil {
		return NilHandle, err
	}
	h.Bind(sh, nameVal.Name, v)
	return NilHandle, nil
}

func evalSet(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 2); err != nil {
		return NilHandle, err
	}
	if p.PrimArgs[0] == NilHandle || h.Get(p.PrimArgs[0]).Kind != KindSymbol {
		return NilHandle, errs.NewSyntaxError("set!: name must be a symbol")
	}
	nameNode := h.Get(p.PrimArgs[0])
	v, err := Eval(h, p.PrimArgs[1], sh)
	if err != nil {
		return NilHandle, err
	}
	if err := h.SetExisting(sh, nameNode.Name, v); err != nil {
		return NilHandle, err
	}
	return NilHandle, nil
}

func evalSetPair(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if err := requireArity(p.PrimArgs, 2); err != nil {
		return NilHandle, err
	}
	pairVal, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	if pairVal == NilHandle || h.Get(pairVal).Kind != KindPair {
		return NilHandle, errs.NewRuntimeError(p.Selector + ": not a pair")
	}
	newVal, err := Eval(h, p.PrimArgs[1], sh)
	if err != nil {
		return NilHandle, err
	}
	pd := h.Get(pairVal)
	if p.Selector == "set-car!" {
		pd.Car = newVal
	} else {
		pd.Cdr = newVal
	}
	return NilHandle, nil
}

// evalIf requires a Boolean condition, classifying a non-Boolean as a
// SyntaxError rather than a RuntimeError — a deliberate match of the
// source's own classification, not an oversight.
func evalIf(h *Heap, sh ScopeHandle, p *Value) (Handle, error) {
	if len(p.PrimArgs) != 2 && len(p.PrimArgs) != 3 {
		return NilHandle, errs.NewSyntaxError("if: expected 2 or 3 arguments")
	}
	condVal, err := Eval(h, p.PrimArgs[0], sh)
	if err != nil {
		return NilHandle, err
	}
	if condVal == NilHandle || h.Get(condVal).Kind != KindBoolean {
		return NilHandle, errs.NewSyntaxError("if: condition must be a boolean")
	}
	cd := h.Get(condVal)
	if cd.Bool {
		return Eval(h, p.PrimArgs[1], sh)
	}
	if len(p.PrimArgs) == 3 {
		return Eval(h, p.PrimArgs[2], sh)
	}
	return NilHandle, nil
}
