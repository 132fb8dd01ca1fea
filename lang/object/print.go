package object

import (
	"strconv"
	"strings"

	"github.com/mna/skeme/lang/errs"
)

// Print renders v as skeme source text. topLevel controls only whether a
// Pair's own spine gets wrapped in parentheses; every element inside a
// Pair is always printed as if topLevel were true, so nesting is never
// lost. Lambda, Primitive, Application and Holder values have no textual
// form and printing one is a NameError, the same classification the
// source uses for printing a value that should never reach the printer.
func Print(h *Heap, v Handle, topLevel bool) (string, error) {
	if v == NilHandle {
		return "()", nil
	}
	val := h.Get(v)
	switch val.Kind {
	case KindNumber:
		return strconv.FormatInt(val.Num, 10), nil
	case KindBoolean:
		if val.Bool {
			return "#t", nil
		}
		return "#f", nil
	case KindSymbol:
		return val.Name, nil
	case KindQuote:
		return Print(h, val.Quoted, true)
	case KindPair:
		body, err := printPairBody(h, v)
		if err != nil {
			return "", err
		}
		if topLevel {
			return "(" + body + ")", nil
		}
		return body, nil
	case KindLambda:
		return "", errs.NewNameError("cannot print a lambda")
	case KindPrimitive:
		return "", errs.NewNameError("cannot print a primitive")
	case KindApplication:
		return "", errs.NewNameError("cannot print an application")
	case KindHolder:
		return "", errs.NewNameError("cannot print a parameter list")
	default:
		return "", errs.NewNameError("cannot print value of unknown kind")
	}
}

// printPairBody renders the spine of the pair chain starting at v, without
// the enclosing parentheses. It tracks visited cells so a cycle built with
// set-cdr!/set-car! prints "..." at the point it closes rather than
// looping forever.
func printPairBody(h *Heap, v Handle) (string, error) {
	var sb strings.Builder
	seen := map[Handle]bool{}
	cur := v
	for {
		if seen[cur] {
			sb.WriteString("...")
			break
		}
		seen[cur] = true
		val := h.Get(cur)
		carStr, err := Print(h, val.Car, true)
		if err != nil {
			return "", err
		}
		sb.WriteString(carStr)
		if val.Cdr == NilHandle {
			break
		}
		cdrVal := h.Get(val.Cdr)
		if cdrVal.Kind == KindPair {
			sb.WriteByte(' ')
			cur = val.Cdr
			continue
		}
		sb.WriteString(" . ")
		tailStr, err := Print(h, val.Cdr, false)
		if err != nil {
			return "", err
		}
		sb.WriteString(tailStr)
		break
	}
	return sb.String(), nil
}
