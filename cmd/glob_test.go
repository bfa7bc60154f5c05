// Copyright © 2026 The rexpr authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterExcludes_ByName(t *testing.T) {
	paths := []string{
		"src/main.R",
		"src/generated.R",
		"lib/utils.R",
	}
	result := filterExcludes(paths, []string{"generated.R"})
	assert.Equal(t, []string{"src/main.R", "lib/utils.R"}, result)
}

func TestFilterExcludes_ByDirectory(t *testing.T) {
	paths := []string{
		"src/main.R",
		"build/output.R",
		"build/sub/deep.R",
		"lib/utils.R",
	}
	result := filterExcludes(paths, []string{"build"})
	assert.Equal(t, []string{"src/main.R", "lib/utils.R"}, result)
}

func TestFilterExcludes_GlobPattern(t *testing.T) {
	paths := []string{
		"src/main.R",
		"src/generated_foo.R",
		"src/generated_bar.R",
		"lib/utils.R",
	}
	result := filterExcludes(paths, []string{"generated_*"})
	assert.Equal(t, []string{"src/main.R", "lib/utils.R"}, result)
}

func TestFilterExcludes_EmptyExcludes(t *testing.T) {
	paths := []string{"src/main.R"}
	assert.Equal(t, paths, filterExcludes(paths, nil))
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny("src/main.R", []string{"src/*.R"}))
	assert.False(t, matchesAny("lib/main.R", []string{"src/*.R"}))
	assert.True(t, matchesAny("deep/nested/gen.R", []string{"gen.R"}))
	assert.True(t, matchesAny("project/build/output.R", []string{"build"}))
	assert.False(t, matchesAny("project/src/output.R", []string{"build"}))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c.R"}, splitPath("./a/b/c.R"))
	assert.Equal(t, []string{"x.R"}, splitPath("x.R"))
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "vendor"), 0o755))
	for _, name := range []string{"a.R", "notes.txt", "sub/b.r", "sub/vendor/c.R"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600))
	}

	files, err := expandArgs([]string{dir + "/..."}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.R"),
		filepath.Join(dir, "sub", "b.r"),
		filepath.Join(dir, "sub", "vendor", "c.R"),
	}, files)

	files, err = expandArgs([]string{filepath.Join(dir, "sub")}, []string{"vendor"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sub", "b.r")}, files)

	files, err = expandArgs([]string{"missing.R"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing.R"}, files)

	_, err = expandArgs([]string{filepath.Join(dir, "nope") + "/..."}, nil)
	assert.Error(t, err)
}
