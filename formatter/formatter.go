// Copyright © 2026 The rexpr authors

// Package formatter renders expression trees as rexpr source text.
//
// Rendering is the inverse of parsing for constants, symbols and calls:
// parsing the text produced for a tree yields an equal tree.  Infix syntax
// is used wherever the parser would read it back unchanged.  When infix
// output would need parentheses that the tree does not contain, the call is
// written in prefix form instead (`+`(a, b)), and names that are not
// syntactic are written between backticks.
//
// Comments and whitespace are not part of trees, so Format drops them.  Two
// call heads have no parenthesis-free rendering: a function definition and
// a negative number.  They are wrapped in parentheses and read back with an
// extra ( call.  As the object of [ or [[ they are written in prefix form
// instead.
package formatter

import (
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser"
)

// Config holds formatting configuration.
type Config struct {
	IndentSize int // spaces per block level (default: 2)
	// InlineBlocks writes braces on one line, { a; b }, instead of one
	// statement per line.
	InlineBlocks bool
}

// DefaultConfig returns the default formatting configuration.
func DefaultConfig() *Config {
	return &Config{
		IndentSize: 2,
	}
}

// Render returns node as source text using the default configuration.
func Render(node ast.Node) string {
	return RenderConfig(node, nil)
}

// RenderConfig returns node as source text.  If cfg is nil, DefaultConfig()
// is used.
func RenderConfig(node ast.Node, cfg *Config) string {
	p := newPrinter(cfg)
	return p.expr(node).text
}

// RenderAll renders a sequence of top-level expressions, one per line.
func RenderAll(nodes []ast.Node, cfg *Config) string {
	p := newPrinter(cfg)
	var b strings.Builder
	for _, node := range nodes {
		b.WriteString(p.expr(node).text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Format formats rexpr source code.  If cfg is nil, DefaultConfig() is used.
func Format(source []byte, cfg *Config) ([]byte, error) {
	return FormatFile(source, "<stdin>", cfg)
}

// FormatFile formats rexpr source code, using filename for error messages.
func FormatFile(source []byte, filename string, cfg *Config) ([]byte, error) {
	nodes, err := parser.Parse(filename, source)
	if err != nil {
		return nil, err
	}
	return []byte(RenderAll(nodes, cfg)), nil
}
