// Package parser turns a token stream from lang/scanner into
// lang/object AST nodes: it is where every special-form keyword is
// recognized and where a parenthesized form is classified as a Primitive,
// a Lambda, an Application, or literal data.
package parser

import (
	"github.com/mna/skeme/lang/errs"
	"github.com/mna/skeme/lang/object"
	"github.com/mna/skeme/lang/scanner"
	"github.com/mna/skeme/lang/token"
)

// Parser reads exactly one top-level expression at a time from a Scanner,
// allocating every node it builds into a Heap.
type Parser struct {
	s    *scanner.Scanner
	heap *object.Heap
}

// New returns a Parser that reads from src and allocates into heap.
func New(src string, heap *object.Heap) *Parser {
	p := &Parser{s: &scanner.Scanner{}, heap: heap}
	p.s.Init(src)
	return p
}

// AtEnd reports whether only whitespace remains.
func (p *Parser) AtEnd() bool {
	return p.s.IsEnd()
}

// Pos returns the byte offset, in the source passed to New, of the first
// byte not yet consumed by a completed ParseOne call. A caller stepping
// through a buffer one expression at a time (internal/maincmd's run and
// repl commands) uses it to find where the next expression starts.
func (p *Parser) Pos() int {
	return p.s.Pos()
}

// ParseOne parses a single top-level expression and returns its handle.
// It does not require the source to be exhausted afterward; callers that
// must enforce "exactly one expression" should check AtEnd after calling
// this.
func (p *Parser) ParseOne() (object.Handle, error) {
	return p.parseExpr()
}

func (p *Parser) peek() (token.Token, error) {
	return p.s.GetToken()
}

func (p *Parser) advance() error {
	return p.s.Next()
}

func (p *Parser) expect(k token.Kind) error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	if tok.Kind != k {
		return errs.NewSyntaxError("expected " + k.String() + ", got " + tok.Kind.String())
	}
	return p.advance()
}

// parseExpr parses one expression in normal (code) mode: atoms, '-quotes,
// and parenthesized forms subject to keyword/application dispatch.
func (p *Parser) parseExpr() (object.Handle, error) {
	tok, err := p.peek()
	if err != nil {
		return object.NilHandle, err
	}
	switch tok.Kind {
	case token.Constant:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		return p.heap.NewNumber(tok.Value), nil
	case token.Symbol:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		if tok.Name == "#t" {
			return p.heap.NewBoolean(true), nil
		}
		if tok.Name == "#f" {
			return p.heap.NewBoolean(false), nil
		}
		return p.heap.NewSymbol(tok.Name), nil
	case token.Quote:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		payload, err := p.parseQuotedDatum()
		if err != nil {
			return object.NilHandle, err
		}
		return p.heap.NewQuote(payload), nil
	case token.OpenParen:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		return p.parseList()
	case token.Dot:
		return object.NilHandle, errs.NewSyntaxError("unexpected '.'")
	case token.CloseParen:
		return object.NilHandle, errs.NewSyntaxError("unexpected ')'")
	case token.EOF:
		return object.NilHandle, errs.NewSyntaxError("unexpected end of input")
	default:
		return object.NilHandle, errs.NewSyntaxError("unrecognized token")
	}
}

// parseList parses the body of a parenthesized form, having already
// consumed the opening '('. The empty list, quote/lambda/define (which
// need non-generic treatment), every other keyword, and the generic
// application/data case are each handled by their own helper.
func (p *Parser) parseList() (object.Handle, error) {
	tok, err := p.peek()
	if err != nil {
		return object.NilHandle, err
	}
	if tok.Kind == token.CloseParen {
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		return object.NilHandle, nil
	}

	if tok.Kind == token.Symbol {
		switch tok.Name {
		case "quote":
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			payload, err := p.parseQuotedDatum()
			if err != nil {
				return object.NilHandle, err
			}
			if err := p.expect(token.CloseParen); err != nil {
				return object.NilHandle, err
			}
			return p.heap.NewQuote(payload), nil
		case "lambda":
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			return p.parseLambda()
		case "define":
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			return p.parseDefine()
		default:
			if kind, selector, ok := object.Keyword(tok.Name); ok {
				if err := p.advance(); err != nil {
					return object.NilHandle, err
				}
				args, err := p.parseArgsUntilClose()
				if err != nil {
					return object.NilHandle, err
				}
				return p.heap.NewPrimitive(kind, selector, args), nil
			}
		}
	}

	head, err := p.parseExpr()
	if err != nil {
		return object.NilHandle, err
	}
	return p.parseCallOrDottedTail(head)
}

// parseCallOrDottedTail parses what follows an already-parsed head
// element inside a list: either a proper sequence of further expressions
// closed by ')', which makes the whole form an Application with head as
// the operator, or a single '.' followed by one more expression and ')',
// which makes the whole form a literal (possibly improper) Pair chain —
// dotted notation is always data, never a call.
func (p *Parser) parseCallOrDottedTail(head object.Handle) (object.Handle, error) {
	var rest []object.Handle
	for {
		tok, err := p.peek()
		if err != nil {
			return object.NilHandle, err
		}
		switch tok.Kind {
		case token.CloseParen:
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			return p.heap.NewApplication(head, rest), nil
		case token.Dot:
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			tail, err := p.parseExpr()
			if err != nil {
				return object.NilHandle, err
			}
			if err := p.expect(token.CloseParen); err != nil {
				return object.NilHandle, errs.NewSyntaxError("malformed dotted pair")
			}
			elems := append([]object.Handle{head}, rest...)
			acc := tail
			for i := len(elems) - 1; i >= 0; i-- {
				acc = p.heap.NewPair(elems[i], acc)
			}
			return acc, nil
		default:
			expr, err := p.parseExpr()
			if err != nil {
				return object.NilHandle, err
			}
			rest = append(rest, expr)
		}
	}
}

// parseArgsUntilClose parses a flat sequence of normal expressions up to
// and including the closing ')'. A '.' here is a syntax error: none of
// the keyword forms that use this helper accept dotted argument lists.
func (p *Parser) parseArgsUntilClose() ([]object.Handle, error) {
	var args []object.Handle
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.CloseParen {
			return args, p.advance()
		}
		if tok.Kind == token.Dot {
			return nil, errs.NewSyntaxError("unexpected '.' in argument list")
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
}

// parseFormals parses a lambda/define formals list: '(' sym... ')',
// producing a Holder.
func (p *Parser) parseFormals() (object.Handle, error) {
	if err := p.expect(token.OpenParen); err != nil {
		return object.NilHandle, err
	}
	var syms []object.Handle
	for {
		tok, err := p.peek()
		if err != nil {
			return object.NilHandle, err
		}
		if tok.Kind == token.CloseParen {
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			return p.heap.NewHolder(syms), nil
		}
		if tok.Kind != token.Symbol {
			return object.NilHandle, errs.NewSyntaxError("non-symbol in formals list")
		}
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		syms = append(syms, p.heap.NewSymbol(tok.Name))
	}
}

// parseBody parses one or two body expressions up to the closing ')'.
func (p *Parser) parseBody() ([]object.Handle, error) {
	var body []object.Handle
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.CloseParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			break
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		body = append(body, expr)
	}
	if len(body) != 1 && len(body) != 2 {
		return nil, errs.NewSyntaxError("lambda body must have one or two expressions")
	}
	return body, nil
}

// parseLambda parses "(lambda" already consumed: formals, body, ')'.
func (p *Parser) parseLambda() (object.Handle, error) {
	formals, err := p.parseFormals()
	if err != nil {
		return object.NilHandle, err
	}
	body, err := p.parseBody()
	if err != nil {
		return object.NilHandle, err
	}
	return p.heap.NewLambda(formals, body), nil
}

// parseDefine parses "(define" already consumed: either
// "(define name expr)" or the function shorthand
// "(define (name formal...) body...)", which it desugars at parse time
// into "(define name (lambda (formal...) body...))".
func (p *Parser) parseDefine() (object.Handle, error) {
	tok, err := p.peek()
	if err != nil {
		return object.NilHandle, err
	}

	if tok.Kind == token.OpenParen {
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		nameTok, err := p.peek()
		if err != nil {
			return object.NilHandle, err
		}
		if nameTok.Kind != token.Symbol {
			return object.NilHandle, errs.NewSyntaxError("define: non-symbol function name")
		}
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		nameHandle := p.heap.NewSymbol(nameTok.Name)

		var formalSyms []object.Handle
		for {
			ftok, err := p.peek()
			if err != nil {
				return object.NilHandle, err
			}
			if ftok.Kind == token.CloseParen {
				if err := p.advance(); err != nil {
					return object.NilHandle, err
				}
				break
			}
			if ftok.Kind != token.Symbol {
				return object.NilHandle, errs.NewSyntaxError("non-symbol in formals list")
			}
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			formalSyms = append(formalSyms, p.heap.NewSymbol(ftok.Name))
		}
		formals := p.heap.NewHolder(formalSyms)

		body, err := p.parseBody()
		if err != nil {
			return object.NilHandle, err
		}
		lambda := p.heap.NewLambda(formals, body)
		return p.heap.NewPrimitive(object.PrimDefine, "", []object.Handle{nameHandle, lambda}), nil
	}

	if tok.Kind != token.Symbol {
		return object.NilHandle, errs.NewSyntaxError("define: non-symbol variable name")
	}
	if err := p.advance(); err != nil {
		return object.NilHandle, err
	}
	nameHandle := p.heap.NewSymbol(tok.Name)
	valueExpr, err := p.parseExpr()
	if err != nil {
		return object.NilHandle, err
	}
	if err := p.expect(token.CloseParen); err != nil {
		return object.NilHandle, err
	}
	return p.heap.NewPrimitive(object.PrimDefine, "", []object.Handle{nameHandle, valueExpr}), nil
}

// parseQuotedDatum parses one datum in data mode: atoms, parenthesized
// (possibly improper) Pair chains, and nested quotes, none of which is
// ever subject to keyword or application dispatch. This is what makes
// quoted content inert: '(+ 1 2) is a three-element list, not a call to
// the + primitive.
func (p *Parser) parseQuotedDatum() (object.Handle, error) {
	tok, err := p.peek()
	if err != nil {
		return object.NilHandle, err
	}
	switch tok.Kind {
	case token.Constant:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		return p.heap.NewNumber(tok.Value), nil
	case token.Symbol:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		if tok.Name == "#t" {
			return p.heap.NewBoolean(true), nil
		}
		if tok.Name == "#f" {
			return p.heap.NewBoolean(false), nil
		}
		return p.heap.NewSymbol(tok.Name), nil
	case token.Quote:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		inner, err := p.parseQuotedDatum()
		if err != nil {
			return object.NilHandle, err
		}
		return p.heap.NewQuote(inner), nil
	case token.OpenParen:
		if err := p.advance(); err != nil {
			return object.NilHandle, err
		}
		return p.parseQuotedList()
	default:
		return object.NilHandle, errs.NewSyntaxError("unexpected token in quoted data")
	}
}

func (p *Parser) parseQuotedList() (object.Handle, error) {
	var elems []object.Handle
	for {
		tok, err := p.peek()
		if err != nil {
			return object.NilHandle, err
		}
		switch tok.Kind {
		case token.CloseParen:
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			return p.heap.NewList(elems), nil
		case token.Dot:
			if len(elems) == 0 {
				return object.NilHandle, errs.NewSyntaxError("malformed dotted pair")
			}
			if err := p.advance(); err != nil {
				return object.NilHandle, err
			}
			tail, err := p.parseQuotedDatum()
			if err != nil {
				return object.NilHandle, err
			}
			if err := p.expect(token.CloseParen); err != nil {
				return object.NilHandle, errs.NewSyntaxError("malformed dotted pair")
			}
			acc := tail
			for i := len(elems) - 1; i >= 0; i-- {
				acc = p.heap.NewPair(elems[i], acc)
			}
			return acc, nil
		default:
			d, err := p.parseQuotedDatum()
			if err != nil {
				return object.NilHandle, err
			}
			elems = append(elems, d)
		}
	}
}
