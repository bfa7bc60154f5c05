// Copyright © 2026 The rexpr authors

// Package parser turns rexpr source text into expression trees.
package parser

import (
	"fmt"
	"os"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/rdparser"
	"github.com/luthersystems/rexpr/parser/token"
)

// File is a parsed source file.
type File struct {
	Name  string
	Nodes []ast.Node
	// Comments holds every comment token in source order.  Comments are not
	// part of the trees.
	Comments []*token.Token
}

// Parse parses every top-level expression in src.  Errors are *ast.Error
// values of kind UnparsableText carrying the offending location.
func Parse(name string, src []byte) ([]ast.Node, error) {
	f, err := ParseFile(name, src)
	if err != nil {
		return nil, err
	}
	return f.Nodes, nil
}

// ParseFile parses src and keeps its comments.
func ParseFile(name string, src []byte) (*File, error) {
	p := rdparser.New(token.NewScanner(name, src))
	nodes, err := p.ParseProgram()
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Nodes: nodes, Comments: p.Comments()}, nil
}

// ReadFile reads and parses the file at path.
func ReadFile(path string) (*File, error) {
	src, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		return nil, err
	}
	return ParseFile(path, src)
}

// ParseString parses the expressions in src.
func ParseString(src string) ([]ast.Node, error) {
	return Parse("<string>", []byte(src))
}

// ParseExpr parses src, which must hold exactly one expression.
func ParseExpr(src string) (ast.Node, error) {
	nodes, err := ParseString(src)
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, &ast.Error{
			Kind: ast.UnparsableText,
			Err:  fmt.Errorf("expected one expression, found %d", len(nodes)),
		}
	}
	return nodes[0], nil
}

// MustParseExpr is like ParseExpr but panics on error.  It simplifies
// building trees in tests.
func MustParseExpr(src string) ast.Node {
	node, err := ParseExpr(src)
	if err != nil {
		panic(err)
	}
	return node
}
