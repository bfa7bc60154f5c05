// Copyright © 2026 The rexpr authors

// Package astutil provides the generic traversal over expression trees.
//
// Every tree-consuming algorithm in rexpr (quasiquotation, the analysis
// package, lint and the formatter) is built on Walk.  Walk dispatches on the
// five node kinds.  Leaves are handed to the visitor directly.  For calls and
// parameter lists the visitor receives the node and decides itself whether,
// and in which order, to walk the head, the arguments or the parameters.
package astutil

import (
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
)

// Visitor has one method per node kind.  R is the result type of the
// traversal.
type Visitor[R any] interface {
	VisitConstant(c *ast.Constant) R
	VisitSymbol(s *ast.Symbol) R
	VisitMissing(m *ast.Missing) R
	VisitCall(c *ast.Call) R
	VisitParamList(p *ast.ParamList) R
}

// Walk dispatches node to the matching method of v.  A nil node yields the
// zero value of R.
func Walk[R any](node ast.Node, v Visitor[R]) R {
	switch n := node.(type) {
	case *ast.Constant:
		return v.VisitConstant(n)
	case *ast.Symbol:
		return v.VisitSymbol(n)
	case *ast.Missing:
		return v.VisitMissing(n)
	case *ast.Call:
		return v.VisitCall(n)
	case *ast.ParamList:
		return v.VisitParamList(n)
	}
	var zero R
	return zero
}

// Funcs implements Visitor with optional per-kind functions.  A nil
// function falls back to Default, and a nil Default returns the zero value
// of R.
type Funcs[R any] struct {
	Constant  func(*ast.Constant) R
	Symbol    func(*ast.Symbol) R
	Missing   func(*ast.Missing) R
	Call      func(*ast.Call) R
	ParamList func(*ast.ParamList) R
	Default   func(ast.Node) R
}

var _ Visitor[bool] = Funcs[bool]{}

func (f Funcs[R]) VisitConstant(c *ast.Constant) R {
	if f.Constant != nil {
		return f.Constant(c)
	}
	return f.fallback(c)
}

func (f Funcs[R]) VisitSymbol(s *ast.Symbol) R {
	if f.Symbol != nil {
		return f.Symbol(s)
	}
	return f.fallback(s)
}

func (f Funcs[R]) VisitMissing(m *ast.Missing) R {
	if f.Missing != nil {
		return f.Missing(m)
	}
	return f.fallback(m)
}

func (f Funcs[R]) VisitCall(c *ast.Call) R {
	if f.Call != nil {
		return f.Call(c)
	}
	return f.fallback(c)
}

func (f Funcs[R]) VisitParamList(p *ast.ParamList) R {
	if f.ParamList != nil {
		return f.ParamList(p)
	}
	return f.fallback(p)
}

func (f Funcs[R]) fallback(n ast.Node) R {
	if f.Default != nil {
		return f.Default(n)
	}
	var zero R
	return zero
}

// Inspect calls fn for every node of the tree in depth-first pre-order:
// call heads before arguments, parameter defaults in order.  When fn returns
// false the children of the node are skipped.
func Inspect(node ast.Node, fn func(ast.Node) bool) {
	Walk[struct{}](node, inspector(fn))
}

type inspector func(ast.Node) bool

func (f inspector) VisitConstant(c *ast.Constant) struct{} {
	f(c)
	return struct{}{}
}

func (f inspector) VisitSymbol(s *ast.Symbol) struct{} {
	f(s)
	return struct{}{}
}

func (f inspector) VisitMissing(m *ast.Missing) struct{} {
	f(m)
	return struct{}{}
}

func (f inspector) VisitCall(c *ast.Call) struct{} {
	if !f(c) {
		return struct{}{}
	}
	Walk[struct{}](c.Head, f)
	for _, arg := range c.Args {
		Walk[struct{}](arg.Value, f)
	}
	return struct{}{}
}

func (f inspector) VisitParamList(p *ast.ParamList) struct{} {
	if !f(p) {
		return struct{}{}
	}
	for _, param := range p.Params {
		Walk[struct{}](param.Default, f)
	}
	return struct{}{}
}

// InspectAll calls Inspect for each of nodes.
func InspectAll(nodes []ast.Node, fn func(ast.Node) bool) {
	for _, node := range nodes {
		Inspect(node, fn)
	}
}

// HeadSymbol returns the name of the symbol at the head of a call, or "".
func HeadSymbol(node ast.Node) string {
	call, ok := node.(*ast.Call)
	if !ok {
		return ""
	}
	return call.HeadName()
}

// ArgCount returns the number of arguments of a call, or 0 for other nodes.
func ArgCount(node ast.Node) int {
	call, ok := node.(*ast.Call)
	if !ok {
		return 0
	}
	return len(call.Args)
}

// IsCallTo reports whether node is a call whose head is a symbol with one of
// the given names.
func IsCallTo(node ast.Node, names ...string) bool {
	head := HeadSymbol(node)
	if head == "" {
		return false
	}
	for _, name := range names {
		if head == name {
			return true
		}
	}
	return false
}

// SourceOf returns the best source location for a node.  It prefers the
// node's own location and falls back to the head of a call, then to its
// first located argument.  Constructed trees may have no location at all.
func SourceOf(node ast.Node) *token.Location {
	if node == nil {
		return nil
	}
	if loc := node.Pos(); loc != nil && loc.Line > 0 {
		return loc
	}
	switch n := node.(type) {
	case *ast.Call:
		if loc := SourceOf(n.Head); loc != nil {
			return loc
		}
		for _, arg := range n.Args {
			if loc := SourceOf(arg.Value); loc != nil {
				return loc
			}
		}
	case *ast.ParamList:
		for _, p := range n.Params {
			if loc := SourceOf(p.Default); loc != nil {
				return loc
			}
		}
	}
	return node.Pos()
}
