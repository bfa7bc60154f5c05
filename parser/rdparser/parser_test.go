// Copyright © 2026 The rexpr authors

package rdparser

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser(src string) *Parser {
	return New(token.NewScanner("test", []byte(src)))
}

func prefix(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = ast.String(n)
	}
	return strings.Join(parts, "; ")
}

func TestParser(t *testing.T) {
	tests := []struct {
		source string
		output string
	}{
		{`1`, `1`},
		{`1L`, `1L`},
		{`0x1F`, `31`},
		{`0x10L`, `16L`},
		{`9007199254740993L`, `9007199254740993L`},
		{`-9007199254740993L`, `-9007199254740993L`},
		{`1e3`, `1000`},
		{`.5`, `0.5`},
		{`-1`, `-1`},
		{`-1L`, `-1L`},
		{`- 2.5`, `-2.5`},
		{`-Inf`, `-Inf`},
		{`-x`, "`-`(x)"},
		{`-2^2`, "`-`(`^`(2, 2))"},
		{`x[-1]`, "`[`(x, -1)"},
		{`"a\tb"`, `"a\tb"`},
		{`'say "hi"'`, `"say \"hi\""`},
		{`"\x41é\U{1F600}\101"`, `"Aé😀A"`},
		{`TRUE; F`, `TRUE; F`},
		{`NULL`, `NULL`},
		{"`my var`", "`my var`"},
		{"`a\\`b`", "`a\\`b`"},
		{`x <- 1`, "`<-`(x, 1)"},
		{`1 -> x`, "`<-`(x, 1)"},
		{`1 ->> x`, "`<<-`(x, 1)"},
		{`x <<- y`, "`<<-`(x, y)"},
		{`x = y <- 2`, "`=`(x, `<-`(y, 2))"},
		{`x <- y = 2`, "`=`(`<-`(x, y), 2)"},
		{`a + b * c`, "`+`(a, `*`(b, c))"},
		{`a - b - c`, "`-`(`-`(a, b), c)"},
		{`a ^ b ^ c`, "`^`(a, `^`(b, c))"},
		{`a ** b`, "`^`(a, b)"},
		{`-a:b`, "`:`(`-`(a), b)"},
		{`!a && b`, "`&&`(`!`(a), b)"},
		{`a + !b == c`, "`+`(a, `!`(`==`(b, c)))"},
		{`a %in% b + c`, "`+`(`%in%`(a, b), c)"},
		{`~ x + y`, "`~`(`+`(x, y))"},
		{`y ~ x`, "`~`(y, x)"},
		{`f(x, y = 2)`, `f(x, y = 2)`},
		{`f("a" = 1, NULL = 2)`, "f(a = 1, `NULL` = 2)"},
		{`f()`, `f()`},
		{`f(x)(y)`, `f(x)(y)`},
		{`x[1]`, "`[`(x, 1)"},
		{`x[[i]]`, "`[[`(x, i)"},
		{`x[[a[1]]]`, "`[[`(x, `[`(a, 1))"},
		{`l$a <- 5`, "`<-`(`$`(l, a), 5)"},
		{`l$a(1)`, "`$`(l, a)(1)"},
		{`l@"b"`, "`@`(l, \"b\")"},
		{`pkg::f(x)`, "`::`(pkg, f)(x)"},
		{`(a + b) * c`, "`*`(`(`(`+`(a, b)), c)"},
		{`(a = 1)`, "`(`(`=`(a, 1))"},
		{`{ a; b }`, "`{`(a, b)"},
		{"{\n  a\n\n  b\n}", "`{`(a, b)"},
		{`{}`, "`{`()"},
		{`function(x, y = 1) x + y`, "`function`([x, y = 1], `+`(x, y))"},
		{`function() NULL`, "`function`([], NULL)"},
		{"function(x)\n  x", "`function`([x], x)"},
		{`if (a) b else c`, "`if`(a, b, c)"},
		{`if (a) b`, "`if`(a, b)"},
		{"{\n  if (a) b\n  else c\n}", "`{`(`if`(a, b, c))"},
		{"if (a) {\n  b\n} else {\n  c\n}", "`if`(a, `{`(b), `{`(c))"},
		{`for (i in 1:10) print(i)`, "`for`(i, `:`(1, 10), print(i))"},
		{`while (TRUE) break`, "`while`(TRUE, `break`())"},
		{`repeat next`, "`repeat`(`next`())"},
		{"f(a,\n  b)", `f(a, b)`},
		{"x <-\n  1", "`<-`(x, 1)"},
		{"a\nb", `a; b`},
		{"\n\n;a;;\n", `a`},
		{`.(x)`, `.(x)`},
		{`..(xs)`, `..(xs)`},
		{`f(trim = T)`, `f(trim = T)`},
		{`# only a comment`, ``},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			nodes, err := newParser(test.source).ParseProgram()
			require.NoError(t, err)
			assert.Equal(t, test.output, prefix(nodes))
		})
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		source string
		msg    string
	}{
		{`a == b == c`, "unexpected '=='"},
		{`f(,)`, "empty argument"},
		{`f(a = )`, "empty argument"},
		{`x[, 1]`, "empty argument"},
		{`1 2`, "unexpected numeric constant"},
		{"if (a) b\nelse c", "unexpected 'else'"},
		{`"abc`, "unterminated string"},
		{`function(x, x) 1`, "repeated formal argument 'x'"},
		{`function(x = ) 1`, "empty default"},
		{`"\q"`, "unrecognized escape"},
		{`a ! b`, "unexpected '!'"},
		{`)`, "unexpected ')'"},
		{`for (1 in x) y`, "unexpected numeric constant"},
		{`f(g(x) = 1)`, "unexpected '='"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			_, err := newParser(test.source).ParseProgram()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ast.ErrUnparsableText), "%v", err)
			assert.Contains(t, err.Error(), test.msg)
		})
	}
}

func TestParserIncomplete(t *testing.T) {
	for _, src := range []string{`(1`, `x <-`, `f(a,`, "{\n  a", `function(x)`, `if (a) b else`} {
		_, err := newParser(src).ParseProgram()
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, ErrUnexpectedEOF), "%s: %v", src, err)
	}
}

func TestParserErrorLocation(t *testing.T) {
	_, err := newParser("a\n  )").ParseProgram()
	var astErr *ast.Error
	require.True(t, errors.As(err, &astErr))
	require.NotNil(t, astErr.Source)
	assert.Equal(t, 2, astErr.Source.Line)
	assert.Equal(t, 3, astErr.Source.Col)
}

func TestParserSourceLocations(t *testing.T) {
	nodes, err := newParser("\nx <- f(1)").ParseProgram()
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	call := nodes[0].(*ast.Call)
	require.NotNil(t, call.Source)
	assert.Equal(t, 2, call.Source.Line)
	assert.Equal(t, 1, call.Source.Col)
	assert.Equal(t, 3, call.Head.Pos().Col)
	inner := call.Args[1].Value.(*ast.Call)
	assert.Equal(t, 6, inner.Source.Col)
}

func TestParserMissingDefaults(t *testing.T) {
	nodes, err := newParser(`function(x, y = 2) NULL`).ParseProgram()
	require.NoError(t, err)
	params := nodes[0].(*ast.Call).Args[0].Value.(*ast.ParamList)
	require.Len(t, params.Params, 2)
	assert.Equal(t, ast.KindMissing, params.Params[0].Default.Kind())
	assert.False(t, params.Params[0].HasDefault())
	assert.True(t, params.Params[1].HasDefault())
	assert.NoError(t, ast.Validate(nodes[0]))
}

func TestParserComments(t *testing.T) {
	p := newParser("# header\nx <- 1 # trailing\n")
	nodes, err := p.ParseProgram()
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	require.Len(t, p.Comments(), 2)
	assert.Equal(t, "# trailing", p.Comments()[1].Text)
	assert.Equal(t, 2, p.Comments()[1].Source.Line)
}

func TestParseIncremental(t *testing.T) {
	p := newParser("a; b")
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "a", ast.String(n))
	n, err = p.Parse()
	require.NoError(t, err)
	assert.Equal(t, "b", ast.String(n))
	_, err = p.Parse()
	assert.Equal(t, io.EOF, err)
}

func TestTokenSlice(t *testing.T) {
	toks := []*token.Token{
		{Type: token.SYMBOL, Text: "f", Source: &token.Location{File: "t", Line: 1, Col: 1}},
		{Type: token.PAREN_L, Text: "(", Source: &token.Location{File: "t", Line: 1, Col: 2}},
		{Type: token.PAREN_R, Text: ")", Source: &token.Location{File: "t", Line: 1, Col: 3}},
	}
	p := NewFromSource(NewTokenStreamSource(TokenSlice(toks)))
	nodes, err := p.ParseProgram()
	require.NoError(t, err)
	assert.Equal(t, "f()", prefix(nodes))
}
