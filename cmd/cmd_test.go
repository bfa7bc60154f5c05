// Copyright © 2026 The rexpr authors

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// exitCode returns the code Execute would exit with.
func (r cmdResult) exitCode() int {
	if r.err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(r.err, &exit) {
		return exit.code
	}
	return 2
}

// run executes the command tree with an isolated home directory.
func run(t *testing.T, stdin string, opts []Option, args ...string) cmdResult {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := NewRootCommand(opts...)
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--color=never"}, args...))
	err := root.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, name := range []string{"fmt", "lint", "expand", "eval", "repl", "doc"} {
		assert.Contains(t, names, name)
	}
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	r := run(t, "", nil, "--log-level=loud", "fmt")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "log-level")
	assert.Equal(t, 2, r.exitCode())
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	r := run(t, "", nil, "--config", filepath.Join(t.TempDir(), "none.yaml"), "fmt")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "reading config")
}

func TestRootCommand_DebugLogging(t *testing.T) {
	r := run(t, "x <- 1\n", nil, "--log-level=debug", "eval")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "processed")
}
