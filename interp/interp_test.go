package interp_test

import (
	"testing"

	"github.com/mna/skeme/interp"
	"github.com/mna/skeme/lang/errs"
	"github.com/stretchr/testify/require"
)

func TestRunArith(t *testing.T) {
	it := interp.New()
	got, err := it.Run("(+ 1 2)")
	require.NoError(t, err)
	require.Equal(t, "3", got)
}

func TestRunIf(t *testing.T) {
	it := interp.New()
	got, err := it.Run("(if (> 5 3) 'yes 'no)")
	require.NoError(t, err)
	require.Equal(t, "yes", got)
}

func TestRunDefineSetLookupAcrossCalls(t *testing.T) {
	it := interp.New()

	got, err := it.Run("(define x 10)")
	require.NoError(t, err)
	require.Equal(t, "()", got)

	got, err = it.Run("(set! x 20)")
	require.NoError(t, err)
	require.Equal(t, "()", got)

	got, err = it.Run("x")
	require.NoError(t, err)
	require.Equal(t, "20", got)
}

func TestRunRecursiveFactorial(t *testing.T) {
	it := interp.New()

	_, err := it.Run("(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))")
	require.NoError(t, err)

	got, err := it.Run("(fact 5)")
	require.NoError(t, err)
	require.Equal(t, "120", got)
}

func TestRunConsSetCarPrintsImproperPair(t *testing.T) {
	it := interp.New()

	_, err := it.Run("(define p (cons 1 2))")
	require.NoError(t, err)

	_, err = it.Run("(set-car! p 10)")
	require.NoError(t, err)

	got, err := it.Run("p")
	require.NoError(t, err)
	require.Equal(t, "(10 . 2)", got)
}

func TestRunListTail(t *testing.T) {
	it := interp.New()
	got, err := it.Run("(list-tail (list 1 2 3 4) 2)")
	require.NoError(t, err)
	require.Equal(t, "(3 4)", got)
}

func TestRunLambdaLiteralApplication(t *testing.T) {
	it := interp.New()
	got, err := it.Run("((lambda (x y) (+ x y)) 3 4)")
	require.NoError(t, err)
	require.Equal(t, "7", got)
}

func TestRunCarOfEmptyListIsRuntimeError(t *testing.T) {
	it := interp.New()
	_, err := it.Run("(car '())")
	require.Error(t, err)
	require.IsType(t, &errs.RuntimeError{}, err)
}

func TestRunUnboundSymbolIsNameError(t *testing.T) {
	it := interp.New()
	_, err := it.Run("foo")
	require.Error(t, err)
	require.IsType(t, &errs.NameError{}, err)
}

// TestRunToleratesCycleDuringCollect builds a self-referential pair with
// set-cdr! and exercises a define in between to force a garbage collection
// pass (which runs at the start of every Run) over a heap holding a cycle.
func TestRunToleratesCycleDuringCollect(t *testing.T) {
	it := interp.New()

	_, err := it.Run("(define c (cons 1 2))")
	require.NoError(t, err)

	_, err = it.Run("(set-cdr! c c)")
	require.NoError(t, err)

	_, err = it.Run("(define y 1)")
	require.NoError(t, err)

	got, err := it.Run("(pair? c)")
	require.NoError(t, err)
	require.Equal(t, "#t", got)
}

func TestRunIfNonBooleanConditionIsSyntaxError(t *testing.T) {
	it := interp.New()
	_, err := it.Run("(if 1 2 3)")
	require.Error(t, err)
	require.IsType(t, &errs.SyntaxError{}, err)
}

func TestRunMoreThanOneTopLevelExpressionIsSyntaxError(t *testing.T) {
	it := interp.New()
	_, err := it.Run("(+ 1 2) (+ 3 4)")
	require.Error(t, err)
	require.IsType(t, &errs.SyntaxError{}, err)
}

func TestRunAndOrShortCircuit(t *testing.T) {
	it := interp.New()

	got, err := it.Run("(and 1 2 #f (car '()))")
	require.NoError(t, err)
	require.Equal(t, "#f", got)

	got, err = it.Run("(or #f #f 5 (car '()))")
	require.NoError(t, err)
	require.Equal(t, "5", got)
}

func TestRunNotOnNonBooleanIsFalse(t *testing.T) {
	it := interp.New()
	got, err := it.Run("(not 5)")
	require.NoError(t, err)
	require.Equal(t, "#f", got)
}
