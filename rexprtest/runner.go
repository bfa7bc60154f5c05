// Copyright © 2026 The rexpr authors

// Package rexprtest runs example files as Go tests.
//
// An example file is ordinary source.  The expected output of an
// expression is written in "#>" comments between it and the next
// expression, one comment per output line:
//
//	xs <- c(1, 2)
//	f(..(xs))
//	#> f(1, 2)
//	f(.(nope))
//	#> error: unbound-symbol
//
// An expression without "#>" comments must print nothing.
package rexprtest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
	"github.com/luthersystems/rexpr/eval"
	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/parser/token"
	"github.com/luthersystems/rexpr/repl"
	"github.com/stretchr/testify/assert"
)

const outputPrefix = "#>"

// BenchmarkParse returns a benchmark that parses the file at path.
func BenchmarkParse(path string) func(*testing.B) {
	return func(b *testing.B) {
		buf, err := os.ReadFile(path) //#nosec G304
		if err != nil {
			b.Fatalf("Unable to read source file %v: %v", path, err)
		}
		b.SetBytes(int64(len(buf)))
		for i := 0; i < b.N; i++ {
			_, err := parser.ParseFile(path, buf)
			if err != nil {
				b.Fatalf("Parse failure: %v", err)
			}
		}
	}
}

// Runner is a test runner for example files.
type Runner struct {
	// Mode selects expansion or evaluation of expressions.
	Mode repl.Mode

	// NewEnv returns the environment of a test file.  When NewEnv is nil
	// eval.NewGlobalEnv is used.
	NewEnv func() *eval.Env
}

// Case is one expression of an example file and its expected output.
type Case struct {
	Line     int
	Node     ast.Node
	Expected []string
}

// LoadCases parses an example file and pairs each top-level expression
// with the "#>" comments that follow it.
func LoadCases(path string, source []byte) ([]Case, error) {
	f, err := parser.ParseFile(path, source)
	if err != nil {
		return nil, err
	}
	cases := make([]Case, len(f.Nodes))
	for i, node := range f.Nodes {
		cases[i] = Case{Line: lineOf(node), Node: node}
	}
	for _, c := range f.Comments {
		text, ok := outputText(c)
		if !ok {
			continue
		}
		i := owner(cases, c.Source.Line)
		if i < 0 {
			return nil, fmt.Errorf("%s:%d: output comment before the first expression", path, c.Source.Line)
		}
		cases[i].Expected = append(cases[i].Expected, text)
	}
	return cases, nil
}

func lineOf(node ast.Node) int {
	if loc := astutil.SourceOf(node); loc != nil {
		return loc.Line
	}
	return 0
}

func outputText(c *token.Token) (string, bool) {
	if c == nil || c.Source == nil {
		return "", false
	}
	text, ok := strings.CutPrefix(c.Text, outputPrefix)
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(text, " "), true
}

// owner returns the index of the last case starting before line.
func owner(cases []Case, line int) int {
	found := -1
	for i, c := range cases {
		if c.Line >= line {
			break
		}
		found = i
	}
	return found
}

// RunTestFile runs every expression of the example file at path in one
// session.  Each expression is a subtest named after its line.  A failing
// expression does not stop the expressions after it.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	source, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	cases, err := LoadCases(path, source)
	if err != nil {
		t.Errorf("Unable to load test file: %v", err)
		return
	}

	var env *eval.Env
	if r.NewEnv != nil {
		env = r.NewEnv()
	}
	logger := NewLogger(t)
	defer logger.Flush()
	log := NewLogrus(t)
	log.SetOutput(logger)
	session := repl.NewSession(env, r.Mode, log)

	for _, c := range cases {
		c := c
		t.Run(fmt.Sprintf("line%d", c.Line), func(t *testing.T) {
			assert.Equal(t, c.Expected, run(session, c.Node))
		})
	}
}

// run executes node and returns its printed lines, or a single
// "error: condition" line.
func run(session *repl.Session, node ast.Node) []string {
	text, err := session.Exec(node)
	if err != nil {
		var aerr *ast.Error
		if errors.As(err, &aerr) {
			return []string{"error: " + aerr.Condition()}
		}
		return []string{"error: " + err.Error()}
	}
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
