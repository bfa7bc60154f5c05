// Copyright © 2026 The rexpr authors

package analysis

import (
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
)

// UnresolvedRef records a symbol usage that is not bound locally.
type UnresolvedRef struct {
	Name string
	// Function is set when the symbol is the head of a call.
	Function bool
	Source   *token.Location
	Node     ast.Node
}
