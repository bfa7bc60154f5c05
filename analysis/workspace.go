// Copyright © 2026 The rexpr authors

package analysis

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/parser/token"
)

// ExternalSymbol represents a name defined at the top level of a file.
type ExternalSymbol struct {
	Name   string
	Kind   SymbolKind
	Source *token.Location
}

// IsSourceFile reports whether path names an rexpr source file (.R or .r).
func IsSourceFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".r")
}

// ScanWorkspace walks a directory tree, parsing all source files and
// extracting their top-level definitions.  It skips hidden directories
// (names starting with '.') and node_modules.
//
// Files that fail to parse are silently skipped (fault tolerant).
func ScanWorkspace(root string) ([]ExternalSymbol, error) {
	var globals []ExternalSymbol
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if shouldSkipDir(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSourceFile(path) {
			return nil
		}
		f, err := parser.ReadFile(path)
		if err != nil {
			return nil // skip files that fail to parse
		}
		globals = append(globals, TopLevelDefinitions(f.Nodes)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return globals, nil
}

// shouldSkipDir returns true for directories that should not be walked.
// It skips hidden directories (e.g. .git, .vscode) and node_modules,
// but not "." or ".." which represent the current/parent directory.
func shouldSkipDir(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	if len(name) > 0 && name[0] == '.' {
		return true
	}
	return name == "node_modules"
}

// TopLevelDefinitions returns the names assigned by top-level <-, = and <<-
// expressions, in order.  A name assigned a function definition has kind
// SymFunction.
func TopLevelDefinitions(nodes []ast.Node) []ExternalSymbol {
	var defs []ExternalSymbol
	for _, node := range nodes {
		c, ok := node.(*ast.Call)
		if !ok || !isAssignment(c, "<-", "=", "<<-") {
			continue
		}
		sym, ok := c.Args[0].Value.(*ast.Symbol)
		if !ok {
			continue
		}
		kind := SymVariable
		if isFunctionDef(c.Args[1].Value) {
			kind = SymFunction
		}
		defs = append(defs, ExternalSymbol{Name: sym.Name, Kind: kind, Source: sym.Source})
	}
	return defs
}

// WorkspaceScope returns a scope holding the given external symbols whose
// parent is BuiltinScope().  It is the usual starting scope for
// GlobalReferencesIn when linting a file of a larger workspace.
func WorkspaceScope(externals []ExternalSymbol) *Scope {
	scope := NewScope(ScopeGlobal, BuiltinScope(), nil)
	for _, ext := range externals {
		scope.Define(&Symbol{Name: ext.Name, Kind: ext.Kind, Source: ext.Source})
	}
	return scope
}
