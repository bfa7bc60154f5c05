// Copyright © 2026 The rexpr authors

// Package quasi implements quasiquotation: a tree is copied unevaluated
// except for sub-trees marked with an escape, which are evaluated and
// replaced by their value.
//
// The escape marker is a call to the symbol ".", as in f(.(x)).  Inside an
// argument list, a call to ".." splices the elements of its value in as
// separate arguments, as in f(..(xs)).  Markers are recognised by their head
// alone, so .() with no argument is found and rejected rather than copied.
package quasi

import (
	"errors"
	"fmt"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
)

const (
	// EscapeName is the head of the escape marker.
	EscapeName = "."
	// SpliceName is the head of the splice marker.
	SpliceName = ".."
)

// Evaluator evaluates escaped expressions.  The result is converted back
// into a tree with ast.Quote.
type Evaluator interface {
	Evaluate(expr ast.Node) (interface{}, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expr ast.Node) (interface{}, error)

// Evaluate calls fn(expr).
func (fn EvaluatorFunc) Evaluate(expr ast.Node) (interface{}, error) {
	return fn(expr)
}

// Splicer is implemented by sequence values that can be spliced into an
// argument list.
type Splicer interface {
	Splice() ([]ast.Arg, error)
}

type markerType int

const (
	markerNone markerType = iota
	markerEscape
	markerSplice
)

func markerOf(node ast.Node) (markerType, *ast.Call) {
	c, ok := node.(*ast.Call)
	if !ok {
		return markerNone, nil
	}
	switch c.HeadName() {
	case EscapeName:
		return markerEscape, c
	case SpliceName:
		return markerSplice, c
	}
	return markerNone, nil
}

// checkArity returns the single expression of a marker.
func checkArity(c *ast.Call) (ast.Node, error) {
	name := c.HeadName()
	if len(c.Args) != 1 {
		return nil, ast.Errorf(ast.MalformedEscape, astutil.SourceOf(c),
			"%s(): one argument expected (got %d)", name, len(c.Args))
	}
	if c.Args[0].Name != "" {
		return nil, ast.Errorf(ast.MalformedEscape, astutil.SourceOf(c),
			"%s(): argument must not be named (got %s)", name, c.Args[0].Name)
	}
	return c.Args[0].Value, nil
}

// Quasiquote returns a copy of node in which every escape has been replaced
// by the quoted result of evaluating its argument with ev.  Sub-trees
// without markers are shared with node, not copied.  The first malformed
// marker or evaluation failure stops the pass.
func Quasiquote(node ast.Node, ev Evaluator) (ast.Node, error) {
	r := astutil.Walk[result](node, &quasiquoter{ev: ev})
	if r.err != nil {
		return nil, r.err
	}
	return r.node, nil
}

type result struct {
	node ast.Node
	err  error
}

type quasiquoter struct {
	ev Evaluator
}

func (q *quasiquoter) VisitConstant(c *ast.Constant) result { return result{node: c} }
func (q *quasiquoter) VisitSymbol(s *ast.Symbol) result     { return result{node: s} }
func (q *quasiquoter) VisitMissing(m *ast.Missing) result   { return result{node: m} }

func (q *quasiquoter) VisitCall(c *ast.Call) result {
	switch kind, _ := markerOf(c); kind {
	case markerEscape:
		node, err := q.escape(c)
		return result{node: node, err: err}
	case markerSplice:
		if _, err := checkArity(c); err != nil {
			return result{err: err}
		}
		return result{err: ast.Errorf(ast.MalformedEscape, astutil.SourceOf(c),
			"%s() used outside an argument list", SpliceName)}
	}
	head := astutil.Walk[result](c.Head, q)
	if head.err != nil {
		return head
	}
	changed := head.node != c.Head
	args := make([]ast.Arg, 0, len(c.Args))
	for _, arg := range c.Args {
		if kind, marker := markerOf(arg.Value); kind == markerSplice {
			spliced, err := q.splice(marker, arg.Name)
			if err != nil {
				return result{err: err}
			}
			args = append(args, spliced...)
			changed = true
			continue
		}
		r := astutil.Walk[result](arg.Value, q)
		if r.err != nil {
			return r
		}
		changed = changed || r.node != arg.Value
		args = append(args, ast.Arg{Name: arg.Name, Value: r.node})
	}
	if !changed {
		return result{node: c}
	}
	return result{node: &ast.Call{Head: head.node, Args: args, Source: c.Source}}
}

func (q *quasiquoter) VisitParamList(p *ast.ParamList) result {
	var params []ast.Param
	for i, param := range p.Params {
		r := astutil.Walk[result](param.Default, q)
		if r.err != nil {
			return r
		}
		if r.node != param.Default && params == nil {
			params = make([]ast.Param, len(p.Params))
			copy(params, p.Params)
		}
		if params != nil {
			params[i] = ast.Param{Name: param.Name, Default: r.node}
		}
	}
	if params == nil {
		return result{node: p}
	}
	return result{node: &ast.ParamList{Params: params, Source: p.Source}}
}

func (q *quasiquoter) escape(c *ast.Call) (ast.Node, error) {
	expr, err := checkArity(c)
	if err != nil {
		return nil, err
	}
	v, err := q.ev.Evaluate(expr)
	if err != nil {
		return nil, evalError(c, err)
	}
	node, err := ast.Quote(v)
	if err != nil {
		return nil, evalError(c, err)
	}
	return node, nil
}

func (q *quasiquoter) splice(c *ast.Call, name string) ([]ast.Arg, error) {
	expr, err := checkArity(c)
	if err != nil {
		return nil, err
	}
	if name != "" {
		return nil, ast.Errorf(ast.MalformedEscape, astutil.SourceOf(c),
			"%s() cannot be passed as named argument %s", SpliceName, name)
	}
	v, err := q.ev.Evaluate(expr)
	if err != nil {
		return nil, evalError(c, err)
	}
	args, err := spliceArgs(v)
	if err != nil {
		return nil, evalError(c, err)
	}
	return args, nil
}

// spliceArgs converts a sequence value into arguments.
func spliceArgs(v interface{}) ([]ast.Arg, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case Splicer:
		return v.Splice()
	case []ast.Node:
		return ast.Positional(v...), nil
	case []ast.Arg:
		return v, nil
	case []interface{}:
		args := make([]ast.Arg, len(v))
		for i, x := range v {
			node, err := ast.Quote(x)
			if err != nil {
				return nil, err
			}
			args[i] = ast.Arg{Value: node}
		}
		return args, nil
	}
	return nil, ast.Errorf(ast.UnsupportedLiteral, nil, "cannot splice a value of type %T; a list or vector is required", v)
}

// evalError attaches the marker location to err.  Classified errors keep
// their kind; anything else becomes an EvalError.
func evalError(c *ast.Call, err error) error {
	var aerr *ast.Error
	if errors.As(err, &aerr) {
		if aerr.Source != nil {
			return err
		}
		return &ast.Error{Kind: aerr.Kind, Source: astutil.SourceOf(c), Err: aerr.Err}
	}
	return &ast.Error{Kind: ast.EvalError, Source: astutil.SourceOf(c), Err: fmt.Errorf("%s(): %w", c.HeadName(), err)}
}
