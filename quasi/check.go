// Copyright © 2026 The rexpr authors

package quasi

import (
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
)

// CheckEscapes reports every malformed marker in node without evaluating
// anything: escapes and splices without exactly one positional argument,
// named splices, and splices outside argument lists.  Errors are in source
// order.  Expressions inside an escape are code to be evaluated and are not
// checked.
func CheckEscapes(node ast.Node) []error {
	c := &checker{}
	astutil.Walk[struct{}](node, c)
	return c.errs
}

type checker struct {
	errs []error
}

func (c *checker) VisitConstant(*ast.Constant) struct{} { return struct{}{} }
func (c *checker) VisitSymbol(*ast.Symbol) struct{}     { return struct{}{} }
func (c *checker) VisitMissing(*ast.Missing) struct{}   { return struct{}{} }

func (c *checker) VisitCall(call *ast.Call) struct{} {
	switch kind, _ := markerOf(call); kind {
	case markerEscape:
		if _, err := checkArity(call); err != nil {
			c.errs = append(c.errs, err)
		}
		return struct{}{}
	case markerSplice:
		if _, err := checkArity(call); err != nil {
			c.errs = append(c.errs, err)
		} else {
			c.errs = append(c.errs, ast.Errorf(ast.MalformedEscape, astutil.SourceOf(call),
				"%s() used outside an argument list", SpliceName))
		}
		return struct{}{}
	}
	astutil.Walk[struct{}](call.Head, c)
	for _, arg := range call.Args {
		kind, marker := markerOf(arg.Value)
		if kind != markerSplice {
			astutil.Walk[struct{}](arg.Value, c)
			continue
		}
		if _, err := checkArity(marker); err != nil {
			c.errs = append(c.errs, err)
		} else if arg.Name != "" {
			c.errs = append(c.errs, ast.Errorf(ast.MalformedEscape, astutil.SourceOf(marker),
				"%s() cannot be passed as named argument %s", SpliceName, arg.Name))
		}
	}
	return struct{}{}
}

func (c *checker) VisitParamList(p *ast.ParamList) struct{} {
	for _, param := range p.Params {
		astutil.Walk[struct{}](param.Default, c)
	}
	return struct{}{}
}
