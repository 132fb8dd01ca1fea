// Package token defines the lexical token kinds produced by lang/scanner
// and consumed by lang/parser.
package token

// Kind identifies the lexical category of a Token.
type Kind uint8

//nolint:revive
const (
	ILLEGAL Kind = iota
	EOF

	OpenParen  // (
	CloseParen // )
	Dot        // .
	Quote      // '

	Symbol   // a bare identifier, or #t / #f
	Constant // a signed 64-bit integer literal

	maxKind
)

var kindNames = [...]string{
	ILLEGAL:    "illegal",
	EOF:        "eof",
	OpenParen:  "(",
	CloseParen: ")",
	Dot:        ".",
	Quote:      "'",
	Symbol:     "symbol",
	Constant:   "constant",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "<invalid token kind>"
	}
	return kindNames[k]
}

// Token is a single lexical token together with its decoded value, if any.
// Name is populated for Symbol, Value for Constant; both are zero for every
// other Kind.
type Token struct {
	Kind  Kind
	Pos   int // byte offset into the source text where the token starts
	Name  string
	Value int64
}

func (t Token) String() string {
	switch t.Kind {
	case Symbol:
		return t.Name
	case Constant:
		return kindNames[Constant]
	default:
		return t.Kind.String()
	}
}
