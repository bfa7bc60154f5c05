// Copyright © 2026 The rexpr authors

package astutil

import (
	"errors"
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countSymbols is a full Visitor implementation, as a consumer outside
// astutil would write one.
type countSymbols struct{}

func (countSymbols) VisitConstant(*ast.Constant) int { return 0 }
func (countSymbols) VisitSymbol(*ast.Symbol) int     { return 1 }
func (countSymbols) VisitMissing(*ast.Missing) int   { return 0 }

func (v countSymbols) VisitCall(c *ast.Call) int {
	n := Walk[int](c.Head, v)
	for _, arg := range c.Args {
		n += Walk[int](arg.Value, v)
	}
	return n
}

func (v countSymbols) VisitParamList(p *ast.ParamList) int {
	n := 0
	for _, param := range p.Params {
		n += Walk[int](param.Default, v)
	}
	return n
}

func sampleTree() ast.Node {
	// f <- function(x, y = z) g(x, k = 1)
	return ast.CallN("<-", ast.Sym("f"),
		ast.Function(
			ast.NewParamList(ast.Formal("x", nil), ast.Formal("y", ast.Sym("z"))),
			ast.NewCall(ast.Sym("g"), ast.Arg{Value: ast.Sym("x")}, ast.Named("k", ast.Num(1)))))
}

func TestWalkVisitor(t *testing.T) {
	// <- f function z g x
	assert.Equal(t, 6, Walk[int](sampleTree(), countSymbols{}))
	assert.Equal(t, 0, Walk[int](nil, countSymbols{}))
}

func TestWalkLeavesNotRecursed(t *testing.T) {
	calls := 0
	v := Funcs[bool]{
		Missing: func(*ast.Missing) bool { calls++; return true },
	}
	assert.True(t, Walk[bool](ast.MissingArg(), v))
	assert.False(t, Walk[bool](ast.Sym("x"), v))
	assert.Equal(t, 1, calls)
}

func TestFuncsDefault(t *testing.T) {
	v := Funcs[string]{
		Symbol:  func(s *ast.Symbol) string { return "sym " + s.Name },
		Default: func(n ast.Node) string { return n.Kind().String() },
	}
	assert.Equal(t, "sym a", Walk[string](ast.Sym("a"), v))
	assert.Equal(t, "constant", Walk[string](ast.Num(1), v))
	assert.Equal(t, "call", Walk[string](ast.CallN("f"), v))
	assert.Equal(t, "paramlist", Walk[string](ast.NewParamList(), v))
	assert.Equal(t, "missing", Walk[string](ast.MissingArg(), v))
}

func TestInspectOrder(t *testing.T) {
	var kinds []string
	Inspect(sampleTree(), func(n ast.Node) bool {
		if s, ok := n.(*ast.Symbol); ok {
			kinds = append(kinds, s.Name)
		} else {
			kinds = append(kinds, n.Kind().String())
		}
		return true
	})
	assert.Equal(t, []string{
		"call", "<-", "f",
		"call", "function", "paramlist", "missing", "z",
		"call", "g", "x", "constant",
	}, kinds)
}

func TestInspectSkip(t *testing.T) {
	var names []string
	InspectAll([]ast.Node{sampleTree(), ast.Sym("w")}, func(n ast.Node) bool {
		if IsCallTo(n, "function") {
			return false
		}
		if s, ok := n.(*ast.Symbol); ok {
			names = append(names, s.Name)
		}
		return true
	})
	assert.Equal(t, []string{"<-", "f", "w"}, names)
}

func TestRewriteSharesUnchanged(t *testing.T) {
	tree := sampleTree().(*ast.Call)
	same, err := Rewrite(tree, func(n ast.Node) (ast.Node, error) { return n, nil })
	require.NoError(t, err)
	assert.Same(t, tree, same)

	out, err := Rewrite(tree, func(n ast.Node) (ast.Node, error) {
		if s, ok := n.(*ast.Symbol); ok && s.Name == "z" {
			return ast.Num(0), nil
		}
		return n, nil
	})
	require.NoError(t, err)
	call := out.(*ast.Call)
	assert.NotSame(t, tree, call)
	// the assigned name is untouched and shared
	assert.Same(t, tree.Args[0].Value, call.Args[0].Value)
	fn := call.Args[1].Value.(*ast.Call)
	origFn := tree.Args[1].Value.(*ast.Call)
	// the body did not change
	assert.Same(t, origFn.Args[1].Value, fn.Args[1].Value)
	params := fn.Args[0].Value.(*ast.ParamList)
	assert.Equal(t, "y", params.Params[1].Name)
	assert.True(t, ast.Equal(ast.Num(0), params.Params[1].Default))
	// the input is not modified
	assert.Equal(t, "z", origFn.Args[0].Value.(*ast.ParamList).Params[1].Default.(*ast.Symbol).Name)
}

func TestRewriteError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Rewrite(sampleTree(), func(n ast.Node) (ast.Node, error) {
		if s, ok := n.(*ast.Symbol); ok && s.Name == "x" {
			return nil, boom
		}
		return n, nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestRewritePreservesArgNames(t *testing.T) {
	tree := ast.NewCall(ast.Sym("f"), ast.Named("a", ast.Sym("x")), ast.Arg{Value: ast.Sym("y")})
	out, err := Rewrite(tree, func(n ast.Node) (ast.Node, error) {
		if s, ok := n.(*ast.Symbol); ok && s.Name == "y" {
			return ast.Sym("Y"), nil
		}
		return n, nil
	})
	require.NoError(t, err)
	want := ast.NewCall(ast.Sym("f"), ast.Named("a", ast.Sym("x")), ast.Arg{Value: ast.Sym("Y")})
	assert.True(t, ast.Equal(want, out), ast.String(out))
}

func TestHeadSymbol(t *testing.T) {
	assert.Equal(t, "", HeadSymbol(ast.Sym("f")))
	assert.Equal(t, "", HeadSymbol(ast.NewCall(ast.CallN("f"))))
	assert.Equal(t, "f", HeadSymbol(ast.CallN("f")))
}

func TestArgCount(t *testing.T) {
	assert.Equal(t, 0, ArgCount(ast.Sym("f")))
	assert.Equal(t, 0, ArgCount(ast.CallN("f")))
	assert.Equal(t, 2, ArgCount(ast.CallN("f", ast.Num(1), ast.Num(2))))
}

func TestIsCallTo(t *testing.T) {
	assert.True(t, IsCallTo(ast.CallN("<-"), "=", "<-"))
	assert.False(t, IsCallTo(ast.CallN("<<-"), "=", "<-"))
	assert.False(t, IsCallTo(ast.Sym("<-"), "<-"))
}

func TestSourceOf(t *testing.T) {
	loc := &token.Location{File: "t", Line: 2, Col: 4}
	assert.Nil(t, SourceOf(nil))
	assert.Nil(t, SourceOf(ast.Sym("x")))
	call := ast.CallN("f", &ast.Symbol{Name: "x", Source: loc})
	assert.Equal(t, loc, SourceOf(call))
	own := &ast.Call{Head: ast.Sym("g"), Source: &token.Location{File: "t", Line: 1, Col: 1}}
	assert.Equal(t, 1, SourceOf(own).Line)
}
