package scanner_test

import (
	"testing"

	"github.com/mna/skeme/lang/scanner"
	"github.com/mna/skeme/lang/token"
	"github.com/stretchr/testify/require"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenizeAllSimpleCall(t *testing.T) {
	toks, err := scanner.TokenizeAll("(+ 1 2)")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.OpenParen, token.Symbol, token.Constant, token.Constant, token.CloseParen, token.EOF,
	}, kinds(toks))
	require.Equal(t, "+", toks[1].Name)
	require.Equal(t, int64(1), toks[2].Value)
	require.Equal(t, int64(2), toks[3].Value)
}

func TestTokenizeNegativeNumberVersusMinusSymbol(t *testing.T) {
	toks, err := scanner.TokenizeAll("(- 3)")
	require.NoError(t, err)
	require.Equal(t, token.Symbol, toks[1].Kind)
	require.Equal(t, "-", toks[1].Name)

	toks, err = scanner.TokenizeAll("-3")
	require.NoError(t, err)
	require.Equal(t, token.Constant, toks[0].Kind)
	require.Equal(t, int64(-3), toks[0].Value)
}

func TestTokenizeQuoteAndDot(t *testing.T) {
	toks, err := scanner.TokenizeAll("'(a . b)")
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.Quote, token.OpenParen, token.Symbol, token.Dot, token.Symbol, token.CloseParen, token.EOF,
	}, kinds(toks))
}

func TestTokenizeBooleanSymbols(t *testing.T) {
	toks, err := scanner.TokenizeAll("#t #f")
	require.NoError(t, err)
	require.Equal(t, "#t", toks[0].Name)
	require.Equal(t, "#f", toks[1].Name)
}

func TestTokenizeComparisonOperators(t *testing.T) {
	toks, err := scanner.TokenizeAll("<= >= <")
	require.NoError(t, err)
	require.Equal(t, "<=", toks[0].Name)
	require.Equal(t, ">=", toks[1].Name)
	require.Equal(t, "<", toks[2].Name)
}

func TestTokenizeUnrecognizedCharacterIsSyntaxError(t *testing.T) {
	_, err := scanner.TokenizeAll("(@ 1)")
	require.Error(t, err)
}

func TestIsEndIgnoresTrailingWhitespace(t *testing.T) {
	var s scanner.Scanner
	s.Init("(+ 1 2)   \n\t")
	require.False(t, s.IsEnd())
	for {
		tok, err := s.GetToken()
		require.NoError(t, err)
		if tok.Kind == token.EOF {
			break
		}
		require.NoError(t, s.Next())
	}
	require.True(t, s.IsEnd())
}

func TestGetTokenIsIdempotentUntilNext(t *testing.T) {
	var s scanner.Scanner
	s.Init("foo bar")
	first, err := s.GetToken()
	require.NoError(t, err)
	second, err := s.GetToken()
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.NoError(t, s.Next())
	third, err := s.GetToken()
	require.NoError(t, err)
	require.NotEqual(t, first.Name, third.Name)
	require.Equal(t, "bar", third.Name)
}
