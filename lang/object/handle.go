package object

// Handle addresses a Value living in a Heap's value arena. The zero
// Handle, NilHandle, never refers to a stored Value: it is the single,
// uniform representation of the empty list and of "absent" throughout the
// evaluator (spec invariant: Nil is indistinguishable from absent).
type Handle int32

// NilHandle is the empty list / absent value.
const NilHandle Handle = 0

// ScopeHandle addresses a Scope living in a Heap's scope arena. The zero
// ScopeHandle, noScope, means "no parent" — only the persistent top-level
// scope has it as its parent.
type ScopeHandle int32

const noScope ScopeHandle = 0

// Kind discriminates the closed set of Value variants described in the
// data model. Every Value is exactly one Kind; operations on a Value
// switch on Kind rather than dispatching through per-variant methods.
type Kind uint8

const (
	KindNumber Kind = iota
	KindBoolean
	KindSymbol
	KindPair
	KindQuote
	KindLambda
	KindPrimitive
	KindApplication
	KindHolder
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindSymbol:
		return "symbol"
	case KindPair:
		return "pair"
	case KindQuote:
		return "quote"
	case KindLambda:
		return "lambda"
	case KindPrimitive:
		return "primitive"
	case KindApplication:
		return "application"
	case KindHolder:
		return "holder"
	default:
		return "<invalid kind>"
	}
}

// PrimKind identifies which built-in behavior a KindPrimitive Value
// performs. Several kinds (PrimArith, PrimCompare, PrimTypeTest,
// PrimListPart, PrimSetPair) share a single PrimKind across a family of
// keywords and distinguish among them with Value.Selector, mirroring how
// the source groups these procedures by a runtime string/index tag
// instead of giving each keyword its own class.
type PrimKind uint8

const (
	PrimArith PrimKind = iota
	PrimCompare
	PrimMin
	PrimMax
	PrimAbs
	PrimNot
	PrimAnd
	PrimOr
	PrimTypeTest
	PrimCons
	PrimCar
	PrimCdr
	PrimList
	PrimListPart
	PrimDefine
	PrimSet
	PrimSetPair
	PrimIf
)
