// Copyright © 2026 The rexpr authors

package analysis

import "github.com/luthersystems/rexpr/eval"

// BuiltinScope returns a scope holding the names bound by
// eval.NewGlobalEnv: builtin functions and the constants T, F and pi.
func BuiltinScope() *Scope {
	scope := NewScope(ScopeBuiltin, nil, nil)
	populateBuiltins(scope)
	return scope
}

// populateBuiltins adds all known builtin functions and constants to the
// given scope.
func populateBuiltins(scope *Scope) {
	for _, b := range eval.DefaultBuiltins() {
		scope.Define(&Symbol{Name: b.Name, Kind: SymBuiltin})
	}
	for _, name := range []string{"T", "F", "pi"} {
		scope.Define(&Symbol{Name: name, Kind: SymBuiltin})
	}
}

// IsBuiltin reports whether name is bound by the evaluator's base
// environment.
func IsBuiltin(name string) bool {
	return builtinScope.LookupLocal(name) != nil
}

var builtinScope = BuiltinScope()
