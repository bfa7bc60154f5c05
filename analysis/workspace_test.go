// Copyright © 2026 The rexpr authors

package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/rexpr/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestScanWorkspace(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.R"), "helper <- function(x) x\nlimit = 10\nprint(limit)\n")
	writeFile(t, filepath.Join(dir, "lib", "b.r"), "counter <<- 0\nl$a <- 1\n")
	writeFile(t, filepath.Join(dir, ".hidden", "c.R"), "hidden <- 1\n")
	writeFile(t, filepath.Join(dir, "node_modules", "d.R"), "vendored <- 1\n")
	writeFile(t, filepath.Join(dir, "bad.R"), "broken <- (\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored <- 1\n")

	syms, err := ScanWorkspace(dir)
	require.NoError(t, err)
	kinds := make(map[string]SymbolKind)
	for _, sym := range syms {
		kinds[sym.Name] = sym.Kind
	}
	assert.Equal(t, map[string]SymbolKind{
		"helper":  SymFunction,
		"limit":   SymVariable,
		"counter": SymVariable,
	}, kinds)
}

func TestWorkspaceScope(t *testing.T) {
	nodes, err := parser.ParseString("helper(limit, other)")
	require.NoError(t, err)
	scope := WorkspaceScope([]ExternalSymbol{
		{Name: "helper", Kind: SymFunction},
		{Name: "limit", Kind: SymVariable},
	})
	g := GlobalReferencesIn(nodes, NewScope(ScopeGlobal, scope, nil))
	assert.Equal(t, []string{"other"}, g.Variables)
	assert.Empty(t, g.Functions)
}

func TestIsSourceFile(t *testing.T) {
	assert.True(t, IsSourceFile("x.R"))
	assert.True(t, IsSourceFile("dir/x.r"))
	assert.False(t, IsSourceFile("x.Rmd"))
	assert.False(t, IsSourceFile("R"))
}
