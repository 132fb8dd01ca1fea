package object

// keywordInfo pairs a PrimKind with the operator spelling a family member
// is distinguished by (empty for single-member families).
type keywordInfo struct {
	Kind     PrimKind
	Selector string
}

// keywords maps every special-form/procedure keyword, except quote,
// lambda and define (which need parser-time treatment beyond a flat
// argument list, see lang/parser), to the PrimKind/Selector pair its
// Primitive node is built with.
var keywords = map[string]keywordInfo{
	"+": {PrimArith, "+"},
	"-": {PrimArith, "-"},
	"*": {PrimArith, "*"},
	"/": {PrimArith, "/"},

	"<":  {PrimCompare, "<"},
	">":  {PrimCompare, ">"},
	"<=": {PrimCompare, "<="},
	">=": {PrimCompare, ">="},
	"=":  {PrimCompare, "="},

	"min": {PrimMin, ""},
	"max": {PrimMax, ""},
	"abs": {PrimAbs, ""},
	"not": {PrimNot, ""},
	"and": {PrimAnd, ""},
	"or":  {PrimOr, ""},

	"number?":  {PrimTypeTest, "number?"},
	"boolean?": {PrimTypeTest, "boolean?"},
	"symbol?":  {PrimTypeTest, "symbol?"},
	"pair?":    {PrimTypeTest, "pair?"},
	"list?":    {PrimTypeTest, "list?"},
	"null?":    {PrimTypeTest, "null?"},

	"cons": {PrimCons, ""},
	"car":  {PrimCar, ""},
	"cdr":  {PrimCdr, ""},
	"list": {PrimList, ""},

	"list-ref":  {PrimListPart, "list-ref"},
	"list-tail": {PrimListPart, "list-tail"},

	"set!":      {PrimSet, ""},
	"set-car!":  {PrimSetPair, "set-car!"},
	"set-cdr!":  {PrimSetPair, "set-cdr!"},

	"if": {PrimIf, ""},
}

// Keyword reports whether name names one of the keywords handled here,
// and if so which PrimKind/Selector its Primitive node should carry.
func Keyword(name string) (kind PrimKind, selector string, ok bool) {
	info, ok := keywords[name]
	return info.Kind, info.Selector, ok
}
