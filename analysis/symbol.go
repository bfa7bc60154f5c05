// Copyright © 2026 The rexpr authors

package analysis

import "github.com/luthersystems/rexpr/parser/token"

// SymbolKind classifies a symbol definition.
type SymbolKind int

const (
	SymVariable  SymbolKind = iota // assignment of a value
	SymFunction                    // assignment of a function definition
	SymParameter                   // function parameter
	SymLoopVar                     // for loop variable
	SymBuiltin                     // builtin function or constant
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymFunction:
		return "function"
	case SymParameter:
		return "parameter"
	case SymLoopVar:
		return "loop-variable"
	case SymBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Symbol represents a defined name in a scope.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Source *token.Location // nil for builtins
	Scope  *Scope
}
