// Copyright © 2026 The rexpr authors

package analysis

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
	"github.com/luthersystems/rexpr/parser/grammar"
	"github.com/luthersystems/rexpr/quasi"
)

// Globals is the result of GlobalReferences.
type Globals struct {
	// Variables are names read as values, sorted and distinct.
	Variables []string
	// Functions are names called as functions, sorted and distinct.
	Functions []string
	// Refs holds every unresolved reference in evaluation order.
	Refs []*UnresolvedRef
}

// GlobalReferences returns the names node reads without binding them
// first.  Expressions are visited in evaluation order, call head before
// arguments.  The binding rules are:
//
//   - x <- v and x = v visit v, then bind x for the rest of the enclosing
//     function.  Blocks and loop bodies do not open a scope.
//   - x <<- v binds nothing locally.
//   - function(params) body opens a scope in which every parameter is bound
//     before defaults and body are visited.  Its bindings do not escape.
//   - for (i in seq) body visits seq, then binds i.
//   - The field operand of $ and @ and both operands of :: and ::: are not
//     references.
//   - quote() arguments are data.  Inside bquote() only the escaped
//     expressions are visited.
//
// Call heads that are syntax (operators, brackets and keyword forms) are
// never reported.
func GlobalReferences(node ast.Node) *Globals {
	return GlobalReferencesIn([]ast.Node{node}, NewScope(ScopeGlobal, nil, nil))
}

// GlobalReferencesIn analyzes a sequence of top-level expressions in scope,
// which is extended with their bindings.  Pass a scope whose parent holds
// known names, such as BuiltinScope(), to exclude them from the result.
func GlobalReferencesIn(nodes []ast.Node, scope *Scope) *Globals {
	f := &globalFinder{scope: scope}
	for _, node := range nodes {
		astutil.Walk[struct{}](node, f)
	}
	vars := treeset.NewWithStringComparator()
	funs := treeset.NewWithStringComparator()
	for _, ref := range f.refs {
		if ref.Function {
			funs.Add(ref.Name)
		} else {
			vars.Add(ref.Name)
		}
	}
	return &Globals{
		Variables: stringValues(vars),
		Functions: stringValues(funs),
		Refs:      f.refs,
	}
}

type globalFinder struct {
	scope *Scope
	refs  []*UnresolvedRef
}

func (f *globalFinder) VisitConstant(*ast.Constant) struct{} { return struct{}{} }
func (f *globalFinder) VisitMissing(*ast.Missing) struct{}   { return struct{}{} }

func (f *globalFinder) VisitSymbol(s *ast.Symbol) struct{} {
	f.read(s, false)
	return struct{}{}
}

func (f *globalFinder) read(s *ast.Symbol, function bool) {
	if f.scope.Lookup(s.Name) != nil {
		return
	}
	f.refs = append(f.refs, &UnresolvedRef{
		Name:     s.Name,
		Function: function,
		Source:   s.Source,
		Node:     s,
	})
}

func (f *globalFinder) VisitParamList(p *ast.ParamList) struct{} {
	for _, param := range p.Params {
		astutil.Walk[struct{}](param.Default, f)
	}
	return struct{}{}
}

func (f *globalFinder) VisitCall(c *ast.Call) struct{} {
	switch {
	case isAssignment(c, "<-", "=", "<<-"):
		f.assign(c)
		return struct{}{}
	case isFunctionDef(c):
		f.function(c)
		return struct{}{}
	case isForLoop(c):
		astutil.Walk[struct{}](c.Args[1].Value, f)
		v := c.Args[0].Value.(*ast.Symbol)
		f.scope.Define(&Symbol{Name: v.Name, Kind: SymLoopVar, Source: v.Source})
		astutil.Walk[struct{}](c.Args[2].Value, f)
		return struct{}{}
	case astutil.IsCallTo(c, "$", "@") && len(c.Args) == 2:
		astutil.Walk[struct{}](c.Args[0].Value, f)
		return struct{}{}
	case astutil.IsCallTo(c, "::", ":::", "quote"):
		return struct{}{}
	case astutil.IsCallTo(c, "bquote"):
		f.escapes(c)
		return struct{}{}
	}
	f.head(c.Head)
	for _, arg := range c.Args {
		astutil.Walk[struct{}](arg.Value, f)
	}
	return struct{}{}
}

func (f *globalFinder) head(head ast.Node) {
	sym, ok := head.(*ast.Symbol)
	if !ok {
		astutil.Walk[struct{}](head, f)
		return
	}
	if grammar.IsSyntaxHead(sym.Name) {
		return
	}
	f.read(sym, true)
}

func (f *globalFinder) assign(c *ast.Call) {
	astutil.Walk[struct{}](c.Args[1].Value, f)
	target := c.Args[0].Value
	sym, ok := target.(*ast.Symbol)
	if !ok {
		// l$a <- v reads l
		astutil.Walk[struct{}](target, f)
		return
	}
	if astutil.IsCallTo(c, "<<-") {
		return
	}
	kind := SymVariable
	if isFunctionDef(c.Args[1].Value) {
		kind = SymFunction
	}
	f.scope.Define(&Symbol{Name: sym.Name, Kind: kind, Source: sym.Source})
}

func (f *globalFinder) function(c *ast.Call) {
	params := c.Args[0].Value.(*ast.ParamList)
	outer := f.scope
	f.scope = NewScope(ScopeFunction, outer, c)
	defer func() { f.scope = outer }()
	for _, param := range params.Params {
		f.scope.Define(&Symbol{Name: param.Name, Kind: SymParameter, Source: params.Source})
	}
	astutil.Walk[struct{}](params, f)
	astutil.Walk[struct{}](c.Args[1].Value, f)
}

// escapes visits the expressions evaluated by a bquote() template.
func (f *globalFinder) escapes(c *ast.Call) {
	astutil.InspectAll(c.ArgValues(), func(n ast.Node) bool {
		if !astutil.IsCallTo(n, quasi.EscapeName, quasi.SpliceName) {
			return true
		}
		for _, arg := range n.(*ast.Call).Args {
			astutil.Walk[struct{}](arg.Value, f)
		}
		return false
	})
}

func isFunctionDef(node ast.Node) bool {
	c, ok := node.(*ast.Call)
	if !ok || !astutil.IsCallTo(c, "function") || len(c.Args) != 2 {
		return false
	}
	_, ok = c.Args[0].Value.(*ast.ParamList)
	return ok
}

func isForLoop(c *ast.Call) bool {
	if !astutil.IsCallTo(c, "for") || len(c.Args) != 3 {
		return false
	}
	_, ok := c.Args[0].Value.(*ast.Symbol)
	return ok
}
