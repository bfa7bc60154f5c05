// Copyright © 2026 The rexpr authors

// Package analysis provides static analyses of rexpr trees.
//
// Every analysis is a pure function of a tree built on astutil.Walk: the
// deprecated-token detector, the assignment-target collector and the
// binding-aware global-reference finder.  Nothing here evaluates code.
package analysis

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
)

// deprecatedTokens are legacy aliases of TRUE and FALSE.  They are ordinary
// variables and can be rebound, which is why code should not rely on them.
var deprecatedTokens = map[string]string{
	"T": "TRUE",
	"F": "FALSE",
}

// Replacement returns the constant that should be written instead of the
// deprecated token name, or "".
func Replacement(name string) string {
	return deprecatedTokens[name]
}

// UsesDeprecatedToken reports whether any symbol in node is a deprecated
// token.  The walk stops at the first match.
func UsesDeprecatedToken(node ast.Node) bool {
	return astutil.Walk[bool](node, deprecatedFinder{})
}

type deprecatedFinder struct{}

func (deprecatedFinder) VisitConstant(*ast.Constant) bool { return false }
func (deprecatedFinder) VisitMissing(*ast.Missing) bool   { return false }

func (deprecatedFinder) VisitSymbol(s *ast.Symbol) bool {
	_, ok := deprecatedTokens[s.Name]
	return ok
}

func (f deprecatedFinder) VisitCall(c *ast.Call) bool {
	if astutil.Walk[bool](c.Head, f) {
		return true
	}
	for _, arg := range c.Args {
		if astutil.Walk[bool](arg.Value, f) {
			return true
		}
	}
	return false
}

func (f deprecatedFinder) VisitParamList(p *ast.ParamList) bool {
	for _, param := range p.Params {
		if astutil.Walk[bool](param.Default, f) {
			return true
		}
	}
	return false
}

// DeprecatedTokens returns every deprecated-token symbol in node in
// pre-order.
func DeprecatedTokens(node ast.Node) []*ast.Symbol {
	var syms []*ast.Symbol
	astutil.Inspect(node, func(n ast.Node) bool {
		if s, ok := n.(*ast.Symbol); ok {
			if _, deprecated := deprecatedTokens[s.Name]; deprecated {
				syms = append(syms, s)
			}
		}
		return true
	})
	return syms
}

// AssignmentTargets returns the sorted, distinct names assigned by <- or =
// calls whose target is a bare symbol.  Assignments into derived targets,
// such as l$a <- 5 or names(x) <- v, do not create a name.  Assigned values
// are searched too, so a <- b <- 1 yields a and b.  Non-local <<- is not an
// assignment target.
func AssignmentTargets(node ast.Node) []string {
	set := treeset.NewWithStringComparator()
	astutil.Walk[struct{}](node, &targetCollector{set: set})
	return stringValues(set)
}

type targetCollector struct {
	set *treeset.Set
}

func (t *targetCollector) VisitConstant(*ast.Constant) struct{} { return struct{}{} }
func (t *targetCollector) VisitSymbol(*ast.Symbol) struct{}     { return struct{}{} }
func (t *targetCollector) VisitMissing(*ast.Missing) struct{}   { return struct{}{} }

func (t *targetCollector) VisitCall(c *ast.Call) struct{} {
	if isAssignment(c, "<-", "=") {
		if sym, ok := c.Args[0].Value.(*ast.Symbol); ok {
			t.set.Add(sym.Name)
		}
		astutil.Walk[struct{}](c.Args[1].Value, t)
		return struct{}{}
	}
	astutil.Walk[struct{}](c.Head, t)
	for _, arg := range c.Args {
		astutil.Walk[struct{}](arg.Value, t)
	}
	return struct{}{}
}

func (t *targetCollector) VisitParamList(p *ast.ParamList) struct{} {
	for _, param := range p.Params {
		astutil.Walk[struct{}](param.Default, t)
	}
	return struct{}{}
}

// isAssignment reports whether c is a two-argument positional call to one
// of ops.
func isAssignment(c *ast.Call, ops ...string) bool {
	if len(c.Args) != 2 || c.Args[0].Name != "" || c.Args[1].Name != "" {
		return false
	}
	return astutil.IsCallTo(c, ops...)
}

func stringValues(set *treeset.Set) []string {
	vals := set.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}
