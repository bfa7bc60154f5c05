// Copyright © 2026 The rexpr authors

package astutil

import "github.com/luthersystems/rexpr/ast"

// RewriteFunc transforms a node whose children have already been rewritten.
// Returning the node unchanged keeps it.
type RewriteFunc func(ast.Node) (ast.Node, error)

// Rewrite transforms a tree bottom-up.  Children are rewritten first and fn
// is then applied to the parent.  A parent whose children all come back
// identical (the same pointer) is passed to fn as is, so unchanged subtrees
// are shared between the input and the output rather than copied.  The
// first error stops the rewrite.
func Rewrite(node ast.Node, fn RewriteFunc) (ast.Node, error) {
	res := Walk[rewritten](node, &rewriter{fn: fn})
	return res.node, res.err
}

type rewritten struct {
	node ast.Node
	err  error
}

type rewriter struct {
	fn RewriteFunc
}

func (r *rewriter) apply(node ast.Node) rewritten {
	out, err := r.fn(node)
	return rewritten{out, err}
}

func (r *rewriter) VisitConstant(c *ast.Constant) rewritten { return r.apply(c) }
func (r *rewriter) VisitSymbol(s *ast.Symbol) rewritten     { return r.apply(s) }
func (r *rewriter) VisitMissing(m *ast.Missing) rewritten   { return r.apply(m) }

func (r *rewriter) VisitCall(c *ast.Call) rewritten {
	head := Walk[rewritten](c.Head, r)
	if head.err != nil {
		return head
	}
	var args []ast.Arg
	for i, arg := range c.Args {
		res := Walk[rewritten](arg.Value, r)
		if res.err != nil {
			return res
		}
		if args == nil && res.node != arg.Value {
			args = make([]ast.Arg, len(c.Args))
			copy(args, c.Args[:i])
		}
		if args != nil {
			args[i] = ast.Arg{Name: arg.Name, Value: res.node}
		}
	}
	if head.node == c.Head && args == nil {
		return r.apply(c)
	}
	if args == nil {
		args = c.Args
	}
	return r.apply(&ast.Call{Head: head.node, Args: args, Source: c.Source})
}

func (r *rewriter) VisitParamList(p *ast.ParamList) rewritten {
	var params []ast.Param
	for i, param := range p.Params {
		res := Walk[rewritten](param.Default, r)
		if res.err != nil {
			return res
		}
		if params == nil && res.node != param.Default {
			params = make([]ast.Param, len(p.Params))
			copy(params, p.Params[:i])
		}
		if params != nil {
			params[i] = ast.Param{Name: param.Name, Default: res.node}
		}
	}
	if params == nil {
		return r.apply(p)
	}
	return r.apply(&ast.ParamList{Params: params, Source: p.Source})
}
