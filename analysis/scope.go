// Copyright © 2026 The rexpr authors

package analysis

import "github.com/luthersystems/rexpr/ast"

// ScopeKind classifies the kind of scope.
type ScopeKind int

const (
	ScopeBuiltin  ScopeKind = iota // builtin functions and constants
	ScopeGlobal                    // file level
	ScopeFunction                  // function body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeBuiltin:
		return "builtin"
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Scope is a set of bindings visible in part of a tree.  Blocks and loop
// bodies share the scope of the enclosing function.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	Symbols  map[string]*Symbol
	Node     ast.Node // the function definition that introduced this scope
}

// NewScope creates a new scope of the given kind with the given parent.
func NewScope(kind ScopeKind, parent *Scope, node ast.Node) *Scope {
	s := &Scope{
		Kind:    kind,
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
		Node:    node,
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Define adds a symbol to this scope.  A later definition of the same name
// replaces the earlier one.
func (s *Scope) Define(sym *Symbol) {
	sym.Scope = s
	s.Symbols[sym.Name] = sym
}

// Lookup resolves a symbol by walking the parent chain.
// Returns nil if the symbol is not found.
func (s *Scope) Lookup(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if sym, ok := scope.Symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal resolves a symbol only in this scope (not parents).
func (s *Scope) LookupLocal(name string) *Symbol {
	return s.Symbols[name]
}
