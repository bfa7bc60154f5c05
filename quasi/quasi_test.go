// Copyright © 2026 The rexpr authors

package quasi

import (
	"errors"
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookup evaluates bare symbols against vals.
func lookup(vals map[string]interface{}) Evaluator {
	return EvaluatorFunc(func(expr ast.Node) (interface{}, error) {
		sym, ok := expr.(*ast.Symbol)
		if !ok {
			return nil, errors.New("only symbols can be evaluated")
		}
		v, ok := vals[sym.Name]
		if !ok {
			return nil, ast.Errorf(ast.UnboundSymbol, nil, "object '%s' not found", sym.Name)
		}
		return v, nil
	})
}

var testVals = map[string]interface{}{
	"x":    5,
	"s":    "hi",
	"e":    parser.MustParseExpr("a + b"),
	"nums": []ast.Node{ast.Num(1), ast.Num(2)},
	"kw":   []ast.Arg{ast.Named("na.rm", ast.Bool(true))},
	"pair": []int{1, 2},
	"none": nil,
}

func TestQuasiquote(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no markers", "f(x, y)", "f(x, y)"},
		{"escape scalar", "f(.(x), y)", "f(5L, y)"},
		{"escape string", "paste(.(s), \"!\")", "paste(\"hi\", \"!\")"},
		{"escape tree", "g(.(e))", "g(a + b)"},
		{"escape at top", ".(e)", "a + b"},
		{"escape in head", ".(s)(1)", "\"hi\"(1)"},
		{"nested", "f(g(.(x)), h(y))", "f(g(5L), h(y))"},
		{"named argument kept", "f(n = .(x))", "f(n = 5L)"},
		{"splice", "f(a, ..(nums), b)", "f(a, 1, 2, b)"},
		{"splice named", "mean(v, ..(kw))", "mean(v, na.rm = TRUE)"},
		{"splice nothing", "f(a, ..(none))", "f(a)"},
		{"param default", "function(x = .(x)) x", "function(x = 5L) x"},
		{"escape null", "f(.(none))", "f(NULL)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quasiquote(parser.MustParseExpr(tt.input), lookup(testVals))
			require.NoError(t, err)
			want := parser.MustParseExpr(tt.expected)
			assert.True(t, ast.Equal(want, got), "got %s, want %s", ast.String(got), ast.String(want))
			assert.Empty(t, CheckEscapes(got))
		})
	}
}

func TestQuasiquoteSharing(t *testing.T) {
	input := parser.MustParseExpr("f(g(a), .(x), function(y = 1) y)")
	got, err := Quasiquote(input, lookup(testVals))
	require.NoError(t, err)
	in, out := input.(*ast.Call), got.(*ast.Call)
	assert.NotSame(t, in, out)
	assert.Same(t, in.Head, out.Head)
	assert.Same(t, in.Args[0].Value, out.Args[0].Value)
	assert.Same(t, in.Args[2].Value, out.Args[2].Value)

	plain := parser.MustParseExpr("f(g(a), function(y = 1) y)")
	same, err := Quasiquote(plain, lookup(nil))
	require.NoError(t, err)
	assert.Same(t, plain, same)
}

func TestQuasiquoteKeepsSource(t *testing.T) {
	input := parser.MustParseExpr("f(\n  .(x))")
	got, err := Quasiquote(input, lookup(testVals))
	require.NoError(t, err)
	assert.Equal(t, input.Pos(), got.Pos())
}

func TestQuasiquoteMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"escape without argument", "f(.())"},
		{"escape with two arguments", "f(.(x, x))"},
		{"named escape", "f(.(v = x))"},
		{"bare zero-argument escape", ".()"},
		{"splice at top", "..(nums)"},
		{"splice as head", "..(nums)(1)"},
		{"splice in default", "function(a = ..(nums)) a"},
		{"named splice", "f(a = ..(nums))"},
		{"splice arity", "f(..(nums, nums))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Quasiquote(parser.MustParseExpr(tt.input), lookup(testVals))
			require.Error(t, err)
			assert.ErrorIs(t, err, ast.ErrMalformedEscape)
		})
	}
}

func TestQuasiquoteErrorLocation(t *testing.T) {
	_, err := Quasiquote(parser.MustParseExpr("f(a,\n  .())"), lookup(testVals))
	var aerr *ast.Error
	require.ErrorAs(t, err, &aerr)
	require.NotNil(t, aerr.Source)
	assert.Equal(t, 2, aerr.Source.Line)
}

func TestQuasiquoteEvaluationErrors(t *testing.T) {
	_, err := Quasiquote(parser.MustParseExpr("f(.(unknown))"), lookup(testVals))
	assert.ErrorIs(t, err, ast.ErrUnboundSymbol)
	var aerr *ast.Error
	require.ErrorAs(t, err, &aerr)
	assert.NotNil(t, aerr.Source, "marker location is attached")

	_, err = Quasiquote(parser.MustParseExpr("f(.(g(x)))"), lookup(testVals))
	assert.ErrorIs(t, err, ast.ErrEval)

	_, err = Quasiquote(parser.MustParseExpr("f(.(pair))"), lookup(testVals))
	assert.ErrorIs(t, err, ast.ErrUnsupportedLiteral)

	_, err = Quasiquote(parser.MustParseExpr("f(..(x))"), lookup(testVals))
	assert.ErrorIs(t, err, ast.ErrUnsupportedLiteral)
}

func TestCheckEscapes(t *testing.T) {
	errs := CheckEscapes(parser.MustParseExpr("f(.(), ..(a, b), ..(x), g(y = ..(z)), .(.()))"))
	require.Len(t, errs, 3)
	for _, err := range errs {
		assert.ErrorIs(t, err, ast.ErrMalformedEscape)
	}
	assert.Contains(t, errs[0].Error(), "one argument expected (got 0)")
	assert.Contains(t, errs[1].Error(), "one argument expected (got 2)")
	assert.Contains(t, errs[2].Error(), "named argument y")

	assert.Len(t, CheckEscapes(parser.MustParseExpr("..(x)")), 1)
	assert.Len(t, CheckEscapes(parser.MustParseExpr("function(a = ..(x)) a")), 1)
	assert.Empty(t, CheckEscapes(parser.MustParseExpr("f(.(x), ..(y))")))
}
