// Copyright © 2026 The rexpr authors

package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFmtCommand_Stdin(t *testing.T) {
	r := run(t, "x<-1\nf(a,b=2)", nil, "fmt")
	require.NoError(t, r.err)
	assert.Equal(t, "x <- 1\nf(a, b = 2)\n", r.stdout)
}

func TestFmtCommand_IndentSize(t *testing.T) {
	r := run(t, "function() {\nx\n}", nil, "fmt", "--indent-size", "4")
	require.NoError(t, r.err)
	assert.Equal(t, "function() {\n    x\n}\n", r.stdout)
}

func TestFmtCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "rexpr.yaml", "fmt:\n  inline-blocks: true\n")
	r := run(t, "{a\nb}", nil, "--config", cfg, "fmt")
	require.NoError(t, r.err)
	assert.Equal(t, "{ a; b }\n", r.stdout)
}

func TestFmtCommand_EnvConfig(t *testing.T) {
	t.Setenv("REXPR_FMT_INDENT_SIZE", "3")
	r := run(t, "function() {\nx\n}", nil, "fmt")
	require.NoError(t, r.err)
	assert.Equal(t, "function() {\n   x\n}\n", r.stdout)
}

func TestFmtCommand_ParseError(t *testing.T) {
	r := run(t, "f(", nil, "fmt")
	assert.Equal(t, 1, r.exitCode())
	assert.Contains(t, r.stderr, "error")
	assert.Empty(t, r.stdout)
}

func TestFmtCommand_Files(t *testing.T) {
	dir := t.TempDir()
	messy := writeFile(t, dir, "messy.R", "x<-1\n")
	clean := writeFile(t, dir, "clean.R", "y <- 2\n")

	t.Run("print", func(t *testing.T) {
		r := run(t, "", nil, "fmt", messy)
		require.NoError(t, r.err)
		assert.Equal(t, "x <- 1\n", r.stdout)
	})

	t.Run("list", func(t *testing.T) {
		r := run(t, "", nil, "fmt", "-l", dir)
		assert.Equal(t, 1, r.exitCode())
		assert.Equal(t, messy+"\n", r.stdout)
	})

	t.Run("list clean", func(t *testing.T) {
		r := run(t, "", nil, "fmt", "-l", clean)
		require.NoError(t, r.err)
		assert.Empty(t, r.stdout)
	})

	t.Run("diff", func(t *testing.T) {
		r := run(t, "", nil, "fmt", "-d", messy)
		require.NoError(t, r.err)
		assert.Equal(t, "--- "+messy+"\n+++ "+messy+"\n-x<-1\n+x <- 1\n", r.stdout)
	})

	t.Run("write", func(t *testing.T) {
		r := run(t, "", nil, "fmt", "-w", messy, clean)
		require.NoError(t, r.err)
		assert.Empty(t, r.stdout)
		got, err := os.ReadFile(messy)
		require.NoError(t, err)
		assert.Equal(t, "x <- 1\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		r := run(t, "", nil, "fmt", dir+"/absent.R")
		assert.Equal(t, 1, r.exitCode())
	})
}

func TestPrintUnifiedDiff(t *testing.T) {
	var buf bytes.Buffer
	printUnifiedDiff(&buf, "f.R", []byte("a\nb\n"), []byte("a\nc\n"))
	assert.Equal(t, "--- f.R\n+++ f.R\n a\n-b\n+c\n", buf.String())
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, splitLines([]byte("a\n\nb")))
	assert.Nil(t, splitLines(nil))
}

func TestFmtCommand_Fix(t *testing.T) {
	r := run(t, "if (T) x else F\n", nil, "fmt", "--fix")
	require.NoError(t, r.err)
	assert.Equal(t, "if (TRUE) x else FALSE\n", r.stdout)

	r = run(t, "T <- 0\nT+1\n", nil, "fmt", "--fix")
	require.NoError(t, r.err)
	assert.Equal(t, "T <- 0\nT + 1\n", r.stdout)
}
