// Copyright © 2026 The rexpr authors

package eval

import (
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalString(t *testing.T, env *Env, src string) (interface{}, error) {
	t.Helper()
	nodes, err := parser.ParseString(src)
	require.NoError(t, err)
	return env.EvaluateAll(nodes)
}

func TestEvaluate(t *testing.T) {
	env := NewGlobalEnv()
	env.Put("x", Integers(1, 2, 3))
	env.Put("l", &List{Elems: []interface{}{Doubles(1), Strings("b")}, Names: []string{"a", "b"}})
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2", "3"},
		{"1L + 2L", "3L"},
		{"TRUE + 1L", "2L"},
		{"7 / 2", "3.5"},
		{"2^10", "1024"},
		{"-x", "c(-1L, -2L, -3L)"},
		{"x * 2L", "c(2L, 4L, 6L)"},
		{"x + c(10L, 20L, 30L)", "c(11L, 22L, 33L)"},
		{"1:3", "c(1L, 2L, 3L)"},
		{"3:1", "c(3L, 2L, 1L)"},
		{"x > 1", "c(FALSE, TRUE, TRUE)"},
		{"\"a\" < \"b\"", "TRUE"},
		{"!TRUE", "FALSE"},
		{"TRUE && FALSE", "FALSE"},
		{"FALSE && stop()", "FALSE"},
		{"TRUE || stop()", "TRUE"},
		{"c(1, \"a\", TRUE)", "c(\"1\", \"a\", \"TRUE\")"},
		{"c(a = 1, b = 2)", "c(a = 1, b = 2)"},
		{"c()", "NULL"},
		{"length(x)", "3L"},
		{"sum(x, 1.5)", "7.5"},
		{"paste(\"a\", \"b\")", "\"a b\""},
		{"paste0(\"x\", 1:2)", "c(\"x1\", \"x2\")"},
		{"paste(\"a\", \"b\", sep = \"-\")", "\"a-b\""},
		{"paste0(\"x\", 1:3, collapse = \"+\")", "\"x1+x2+x3\""},
		{"paste0(\"a\", sep = \"-\")", "\"a-\""},
		{"paste(1:2, c(\"a\", \"b\"), sep = \"\")", "c(\"1a\", \"2b\")"},
		{"if (x[[2]] == 2L) \"two\" else \"other\"", "\"two\""},
		{"if (FALSE) 1", "NULL"},
		{"{ 1; 2; 3 }", "3"},
		{"(4)", "4"},
		{"l$a", "1"},
		{"l$missing", "NULL"},
		{"l[[\"b\"]]", "\"b\""},
		{"names(l)", "c(\"a\", \"b\")"},
		{"is.null(NULL)", "TRUE"},
		{"T", "TRUE"},
		{"identity(\"id\")", "\"id\""},
		{"quote(f(x, y))", "f(x, y)"},
		{"as.name(\"foo\")", "foo"},
		{"call(\"round\", 10.5)", "round(10.5)"},
		{"eval(quote(1 + 1))", "2"},
		{"deparse(quote(a+b))", "\"a + b\""},
		{"bquote(f(.(x[[1]]), y))", "f(1L, y)"},
		{"bquote(g(..(x)))", "g(1L, 2L, 3L)"},
		{"bquote(h(..(l)))", "h(a = 1, b = \"b\")"},
		{"list(1, k = \"v\")", "list(1, k = \"v\")"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := evalString(t, env, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, Format(v))
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	env := NewGlobalEnv()
	tests := []struct {
		input string
		kind  error
	}{
		{"y", ast.ErrUnboundSymbol},
		{"nofun(1)", ast.ErrUnboundSymbol},
		{"x <- 1", ast.ErrEval},
		{"function(x) x", ast.ErrEval},
		{"for (i in 1:2) i", ast.ErrEval},
		{"1 + \"a\"", ast.ErrEval},
		{"if (c()) 1", ast.ErrEval},
		{"bquote(f(.()))", ast.ErrMalformedEscape},
		{"bquote(f(.(1:2)))", ast.ErrUnsupportedLiteral},
		{"quote(a, b)", ast.ErrEval},
		{"(1)(2)", ast.ErrEval},
		{"1:1e18", ast.ErrEval},
		{"-1e18:1", ast.ErrEval},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := evalString(t, env, tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestEvaluateMissing(t *testing.T) {
	_, err := NewGlobalEnv().Evaluate(ast.MissingArg())
	assert.ErrorIs(t, err, ast.ErrMissingArgument)
	assert.NotErrorIs(t, err, ast.ErrUnboundSymbol)
}

func TestEvaluateErrorLocation(t *testing.T) {
	_, err := evalString(t, NewGlobalEnv(), "\n  1 + \"a\"")
	var aerr *ast.Error
	require.ErrorAs(t, err, &aerr)
	require.NotNil(t, aerr.Source)
	assert.Equal(t, 2, aerr.Source.Line)
	assert.Contains(t, aerr.Error(), "non-numeric argument")
}

func TestEnv(t *testing.T) {
	global := NewGlobalEnv()
	child := NewEnv(global)
	global.Put("a", Integers(1))
	child.Put("a", Integers(2))
	child.Put("b", Integers(3))

	v, ok := child.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2L", Format(v))
	v, ok = global.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1L", Format(v))
	_, ok = global.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, child.Names())
	assert.Same(t, global, child.Parent())

	// a non-function binding does not hide a builtin in call position
	child.Put("c", Integers(0))
	v, err := child.Evaluate(parser.MustParseExpr("c(c, 1L)"))
	require.NoError(t, err)
	assert.Equal(t, "c(0L, 1L)", Format(v))
}

func TestEvaluateDoesNotModifyEnv(t *testing.T) {
	env := NewGlobalEnv()
	_, err := evalString(t, env, "{ 1 + 1; bquote(f(.(2))) }")
	require.NoError(t, err)
	assert.Empty(t, env.Names())
}

func TestVectorQuote(t *testing.T) {
	node, err := ast.Quote(Doubles(2.5))
	require.NoError(t, err)
	assert.True(t, ast.Equal(ast.Num(2.5), node))

	node, err = ast.Quote(Null())
	require.NoError(t, err)
	assert.True(t, ast.Equal(ast.NullConst(), node))

	_, err = ast.Quote(Integers(1, 2))
	assert.ErrorIs(t, err, ast.ErrUnsupportedLiteral)
	_, err = ast.Quote(&List{})
	assert.ErrorIs(t, err, ast.ErrUnsupportedLiteral)

	args, err := (&Vector{Type: ast.Character, Elems: []interface{}{"x"}, Names: []string{"n"}}).Splice()
	require.NoError(t, err)
	assert.Equal(t, []ast.Arg{ast.Named("n", ast.Str("x"))}, args)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "NULL", Format(nil))
	assert.Equal(t, "character(0)", Format(Strings()))
	assert.Equal(t, "\"a\\n\"", Format(Strings("a\n")))
	assert.Equal(t, "c(`a b` = 1L)", Format(&Vector{Type: ast.Integer, Elems: []interface{}{1}, Names: []string{"a b"}}))
	fn, ok := NewGlobalEnv().Get("c")
	require.True(t, ok)
	assert.Equal(t, "<builtin c>", Format(fn))
}
