// Package scanner implements the tokenizer that turns a chunk of skeme
// source text into a stream of lang/token.Token values for lang/parser to
// consume. It is a collaborator of the evaluator core: its character
// classes and number/symbol rules are fixed by contract, not part of the
// evaluator's design space.
package scanner

import (
	"strconv"

	"github.com/mna/skeme/lang/errs"
	"github.com/mna/skeme/lang/token"
)

// Scanner tokenizes a single chunk of source text. It is a one-shot,
// single-use reader: construct it with Init and drain it with repeated
// Next/GetToken calls until IsEnd reports true.
type Scanner struct {
	src []byte
	pos int // byte offset of the next unconsumed rune

	// lookahead cache: GetToken is a non-destructive peek, so the result
	// of scanning the next token is memoized here until Next consumes it.
	have    bool
	tok     token.Token
	tokErr  error
	nextPos int // position just past tok, valid when have is true
}

// Init resets the Scanner to tokenize src from the beginning.
func (s *Scanner) Init(src string) {
	s.src = []byte(src)
	s.pos = 0
	s.have = false
	s.tok = token.Token{}
	s.tokErr = nil
}

// IsEnd reports whether only whitespace remains in the source.
func (s *Scanner) IsEnd() bool {
	return s.skipSpace(s.pos) >= len(s.src)
}

// Pos returns the byte offset of the first byte not yet consumed by
// Next. It does not count a token already returned by GetToken but not
// yet advanced past.
func (s *Scanner) Pos() int {
	return s.pos
}

// GetToken returns the next token without consuming it. Calling GetToken
// repeatedly without an intervening Next always returns the same result.
func (s *Scanner) GetToken() (token.Token, error) {
	if !s.have {
		s.tok, s.nextPos, s.tokErr = s.scan(s.pos)
		s.have = true
	}
	return s.tok, s.tokErr
}

// Next advances past the token last returned by GetToken, scanning it
// first if GetToken has not yet been called since the last Next.
func (s *Scanner) Next() error {
	if !s.have {
		if _, err := s.GetToken(); err != nil {
			return err
		}
	}
	s.pos = s.nextPos
	s.have = false
	return nil
}

func (s *Scanner) skipSpace(pos int) int {
	for pos < len(s.src) && isSpace(s.src[pos]) {
		pos++
	}
	return pos
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isSymbolChar reports whether ch may appear inside a Symbol token: letters,
// digits, and any of + - * / < = > # ! ?.
func isSymbolChar(ch byte) bool {
	if isLetter(ch) || isDigit(ch) {
		return true
	}
	switch ch {
	case '+', '-', '*', '/', '<', '=', '>', '#', '!', '?':
		return true
	}
	return false
}

// scan skips any whitespace at pos, reads exactly one token and returns
// it, the position just past it, and any error.
func (s *Scanner) scan(pos int) (token.Token, int, error) {
	pos = s.skipSpace(pos)
	if pos >= len(s.src) {
		return token.Token{Kind: token.EOF, Pos: pos}, pos, nil
	}

	start := pos
	ch := s.src[pos]

	switch ch {
	case '(':
		return token.Token{Kind: token.OpenParen, Pos: start}, pos + 1, nil
	case ')':
		return token.Token{Kind: token.CloseParen, Pos: start}, pos + 1, nil
	case '.':
		return token.Token{Kind: token.Dot, Pos: start}, pos + 1, nil
	case '\'':
		return token.Token{Kind: token.Quote, Pos: start}, pos + 1, nil
	}

	if isDigit(ch) {
		return s.scanNumber(start, pos)
	}
	if ch == '+' || ch == '-' {
		if pos+1 < len(s.src) && isDigit(s.src[pos+1]) {
			return s.scanNumber(start, pos)
		}
		return token.Token{Kind: token.Symbol, Pos: start, Name: string(ch)}, pos + 1, nil
	}
	if isSymbolChar(ch) {
		return s.scanSymbol(start, pos)
	}
	return token.Token{}, pos, errs.NewSyntaxError("unrecognized character " + strconv.QuoteRune(rune(ch)))
}

func (s *Scanner) scanNumber(start, pos int) (token.Token, int, error) {
	if s.src[pos] == '+' || s.src[pos] == '-' {
		pos++
	}
	for pos < len(s.src) && isDigit(s.src[pos]) {
		pos++
	}
	lit := string(s.src[start:pos])
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return token.Token{}, pos, errs.NewSyntaxError("invalid integer literal " + lit)
	}
	return token.Token{Kind: token.Constant, Pos: start, Value: n}, pos, nil
}

func (s *Scanner) scanSymbol(start, pos int) (token.Token, int, error) {
	for pos < len(s.src) && isSymbolChar(s.src[pos]) {
		pos++
	}
	return token.Token{Kind: token.Symbol, Pos: start, Name: string(s.src[start:pos])}, pos, nil
}

// TokenizeAll is a convenience helper, mostly useful for tests and the
// "tokenize" CLI command: it drains a Scanner completely and returns every
// token including the trailing EOF.
func TokenizeAll(src string) ([]token.Token, error) {
	var (
		s    Scanner
		toks []token.Token
	)
	s.Init(src)
	for {
		tok, err := s.GetToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
		if err := s.Next(); err != nil {
			return toks, err
		}
	}
}
