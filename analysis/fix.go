// Copyright © 2026 The rexpr authors

package analysis

import (
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
)

// FixDeprecatedTokens returns nodes with every read of T and F replaced by
// TRUE and FALSE, and the number of replacements.  Names the trees assign or
// declare as parameters are left alone, as are call heads and the operands
// of $, @ and ::.  Unchanged trees are returned as is.
func FixDeprecatedTokens(nodes []ast.Node) ([]ast.Node, int, error) {
	bound := make(map[string]bool)
	skip := make(map[*ast.Symbol]bool)
	for _, node := range nodes {
		for _, name := range AssignmentTargets(node) {
			bound[name] = true
		}
	}
	astutil.InspectAll(nodes, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Call:
			if s, ok := n.Head.(*ast.Symbol); ok {
				skip[s] = true
			}
			if astutil.IsCallTo(n, "$", "@", "::", ":::") {
				for _, arg := range n.Args {
					if s, ok := arg.Value.(*ast.Symbol); ok {
						skip[s] = true
					}
				}
			}
		case *ast.ParamList:
			for _, p := range n.Params {
				bound[p.Name] = true
			}
		}
		return true
	})

	count := 0
	replace := func(n ast.Node) (ast.Node, error) {
		s, ok := n.(*ast.Symbol)
		if !ok || skip[s] || bound[s.Name] || Replacement(s.Name) == "" {
			return n, nil
		}
		count++
		return &ast.Constant{Type: ast.Logical, Bool: s.Name == "T", Source: s.Source}, nil
	}
	out := make([]ast.Node, len(nodes))
	for i, node := range nodes {
		fixed, err := astutil.Rewrite(node, replace)
		if err != nil {
			return nil, 0, err
		}
		out[i] = fixed
	}
	return out, count, nil
}
