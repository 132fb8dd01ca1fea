package object

// Value is the single closed tagged sum backing every object in the
// language: numbers, booleans, symbols, pairs, quotes, lambdas,
// primitives, applications and parameter-list holders. Code that needs to
// act differently per variant switches on Kind; there is deliberately no
// interface with per-type methods here (see eval.go, print.go, gc.go).
//
// Each Kind uses a disjoint subset of these fields; see the comments
// beside each group.
type Value struct {
	Kind Kind

	// KindNumber
	Num int64

	// KindBoolean
	Bool bool

	// KindSymbol
	Name string

	// KindPair: Cdr may be NilHandle (proper list tail) or any other Handle
	// (improper pair). Car/Cdr may form cycles via SetCar/SetCdr.
	Car, Cdr Handle

	// KindQuote: the unevaluated payload. May be NilHandle.
	Quoted Handle

	// KindHolder: an ordered list of Symbol-node handles. Produced by the
	// parser only for a lambda's formals (including the formals of the
	// define function shorthand, which desugars to a lambda); never a
	// general list value.
	Symbols []Handle

	// KindLambda: Formals names a Holder. Body holds one or two AST node
	// handles: either just the result expression, or an internal define
	// followed by the result expression. Env is the captured scope,
	// snapped lazily the first time this Lambda is evaluated (see eval.go);
	// it is noScope until then.
	Formals Handle
	Body    []Handle
	Env     ScopeHandle

	// KindPrimitive: Prim selects the behavior; Selector disambiguates
	// within a family sharing one PrimKind (e.g. "+" vs "-" under
	// PrimArith). PrimArgs are the unevaluated argument AST nodes.
	Prim     PrimKind
	Selector string
	PrimArgs []Handle

	// KindApplication: Operator is a Value that must evaluate to a Lambda
	// (a Symbol, a literal lambda expression, or a nested Application).
	// AppArgs are the unevaluated argument AST nodes.
	Operator Handle
	AppArgs  []Handle
}
