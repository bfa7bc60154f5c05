// Copyright © 2026 The rexpr authors

// Package eval is a small evaluator for rexpr trees.  It supplies the
// evaluation context consumed by quasiquotation: an Env of bindings, a set
// of builtin functions and the atomic values they operate on.
//
// Evaluation never modifies an Env.  Assignment, loops and function
// definitions are reported as errors; callers that want bindings (the REPL,
// rexpr expand --set) add them with Env.Put.
package eval

import (
	"errors"
	"fmt"
	"sort"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
)

// Env is an evaluation context.  Lookups that miss in an Env continue in its
// parent.
type Env struct {
	parent *Env
	vars   map[string]interface{}
}

// NewEnv returns an empty environment enclosed by parent, which may be nil.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		vars:   make(map[string]interface{}),
	}
}

// NewGlobalEnv returns an empty environment whose parent holds the builtin
// functions and the constants T, F and pi.
func NewGlobalEnv() *Env {
	base := NewEnv(nil)
	for _, b := range DefaultBuiltins() {
		base.vars[b.Name] = b
	}
	base.vars["T"] = Logicals(true)
	base.vars["F"] = Logicals(false)
	base.vars["pi"] = Doubles(3.141592653589793)
	return NewEnv(base)
}

// Parent returns the enclosing environment, or nil.
func (env *Env) Parent() *Env {
	return env.parent
}

// Get returns the value bound to name in env or an enclosing environment.
func (env *Env) Get(name string) (interface{}, bool) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Put binds name to v in env.  An existing binding of name in env is
// replaced; bindings in enclosing environments are shadowed.
func (env *Env) Put(name string, v interface{}) {
	env.vars[name] = v
}

// Names returns the sorted names bound directly in env.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.vars))
	for name := range env.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupFunction finds the nearest binding of name that is a function,
// skipping other values the way R does for call heads.
func (env *Env) lookupFunction(name string) (*Builtin, bool) {
	for e := env; e != nil; e = e.parent {
		if b, ok := e.vars[name].(*Builtin); ok {
			return b, true
		}
	}
	return nil, false
}

// Evaluate evaluates expr in env.  The result is a *Vector, a *List, a tree
// (ast.Node) or a *Builtin.  Errors are *ast.Error values.
func (env *Env) Evaluate(expr ast.Node) (interface{}, error) {
	r := astutil.Walk[result](expr, evaluator{env: env})
	return r.val, r.err
}

// EvaluateAll evaluates each of exprs in order and returns the last value.
func (env *Env) EvaluateAll(exprs []ast.Node) (interface{}, error) {
	var last interface{} = Null()
	for _, expr := range exprs {
		v, err := env.Evaluate(expr)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

type result struct {
	val interface{}
	err error
}

type evaluator struct {
	env *Env
}

func (e evaluator) VisitConstant(c *ast.Constant) result {
	return result{val: FromConstant(c)}
}

func (e evaluator) VisitSymbol(s *ast.Symbol) result {
	v, ok := e.env.Get(s.Name)
	if !ok {
		return result{err: ast.Errorf(ast.UnboundSymbol, s.Source, "object '%s' not found", s.Name)}
	}
	return result{val: v}
}

func (e evaluator) VisitMissing(m *ast.Missing) result {
	return result{err: ast.Errorf(ast.MissingArgument, m.Source, "argument is missing, with no default")}
}

func (e evaluator) VisitParamList(p *ast.ParamList) result {
	return result{err: ast.Errorf(ast.EvalError, p.Source, "a parameter list is not an expression")}
}

func (e evaluator) VisitCall(c *ast.Call) result {
	fn, err := e.function(c)
	if err != nil {
		return result{err: err}
	}
	var args []Arg
	if !fn.special {
		args = make([]Arg, len(c.Args))
		for i, arg := range c.Args {
			v, err := e.env.Evaluate(arg.Value)
			if err != nil {
				return result{err: err}
			}
			args[i] = Arg{Name: arg.Name, Value: v}
		}
	}
	v, err := fn.fn(e.env, c, args)
	if err != nil {
		return result{err: callError(fn.Name, c, err)}
	}
	return result{val: v}
}

func (e evaluator) function(c *ast.Call) (*Builtin, error) {
	if sym, ok := c.Head.(*ast.Symbol); ok {
		fn, ok := e.env.lookupFunction(sym.Name)
		if !ok {
			return nil, ast.Errorf(ast.UnboundSymbol, astutil.SourceOf(c), "could not find function \"%s\"", sym.Name)
		}
		return fn, nil
	}
	v, err := e.env.Evaluate(c.Head)
	if err != nil {
		return nil, err
	}
	fn, ok := v.(*Builtin)
	if !ok {
		return nil, ast.Errorf(ast.EvalError, astutil.SourceOf(c), "attempt to apply non-function")
	}
	return fn, nil
}

// callError attaches the call location to errors raised by a builtin.
// Classified errors from nested evaluation pass through unchanged.
func callError(name string, c *ast.Call, err error) error {
	var aerr *ast.Error
	if errors.As(err, &aerr) {
		if aerr.Source == nil {
			return &ast.Error{Kind: aerr.Kind, Source: astutil.SourceOf(c), Err: aerr.Err}
		}
		return err
	}
	return &ast.Error{
		Kind:   ast.EvalError,
		Source: astutil.SourceOf(c),
		Err:    fmt.Errorf("%s: %w", name, err),
	}
}
