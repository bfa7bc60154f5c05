// Copyright © 2026 The rexpr authors

package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/formatter"
)

// Vector is an atomic vector.  Elements hold bool, int, float64 or string
// values according to Type.  NULL is the empty vector of type ast.Null.
type Vector struct {
	Type  ast.ConstType
	Elems []interface{}
	// Names is nil or holds one name per element; "" marks an unnamed
	// element.
	Names []string
}

// List is a generic vector whose elements may be any value, including
// trees.
type List struct {
	Elems []interface{}
	Names []string
}

// Arg is an evaluated call argument.
type Arg struct {
	Name  string
	Value interface{}
}

// Null returns the NULL value.
func Null() *Vector {
	return &Vector{Type: ast.Null}
}

// Logicals returns a logical vector.
func Logicals(xs ...bool) *Vector {
	v := &Vector{Type: ast.Logical, Elems: make([]interface{}, len(xs))}
	for i, x := range xs {
		v.Elems[i] = x
	}
	return v
}

// Integers returns an integer vector.
func Integers(xs ...int) *Vector {
	v := &Vector{Type: ast.Integer, Elems: make([]interface{}, len(xs))}
	for i, x := range xs {
		v.Elems[i] = x
	}
	return v
}

// Doubles returns a double vector.
func Doubles(xs ...float64) *Vector {
	v := &Vector{Type: ast.Double, Elems: make([]interface{}, len(xs))}
	for i, x := range xs {
		v.Elems[i] = x
	}
	return v
}

// Strings returns a character vector.
func Strings(xs ...string) *Vector {
	v := &Vector{Type: ast.Character, Elems: make([]interface{}, len(xs))}
	for i, x := range xs {
		v.Elems[i] = x
	}
	return v
}

// FromConstant returns the length-one vector holding c.
func FromConstant(c *ast.Constant) *Vector {
	if c.Type == ast.Null {
		return Null()
	}
	return &Vector{Type: c.Type, Elems: []interface{}{c.Value()}}
}

// Len returns the number of elements.
func (v *Vector) Len() int {
	return len(v.Elems)
}

// Name returns the name of element i, or "".
func (v *Vector) Name(i int) string {
	if i < len(v.Names) {
		return v.Names[i]
	}
	return ""
}

// Constant returns element i as a constant.
func (v *Vector) Constant(i int) *ast.Constant {
	switch x := v.Elems[i].(type) {
	case bool:
		return ast.Bool(x)
	case int:
		return ast.Int(x)
	case float64:
		return ast.Num(x)
	case string:
		return ast.Str(x)
	}
	return ast.NullConst()
}

// QuoteNode implements ast.Quoter.  NULL and length-one vectors become
// constants.  Longer vectors have no constant form and must be spliced.
func (v *Vector) QuoteNode() (ast.Node, error) {
	switch v.Len() {
	case 0:
		if v.Type == ast.Null {
			return ast.NullConst(), nil
		}
	case 1:
		return v.Constant(0), nil
	}
	return nil, ast.Errorf(ast.UnsupportedLiteral, nil,
		"cannot embed a %d-element %s vector as a constant; splice it with ..()", v.Len(), v.Type)
}

// Splice returns one argument per element, keeping element names.
func (v *Vector) Splice() ([]ast.Arg, error) {
	args := make([]ast.Arg, v.Len())
	for i := range v.Elems {
		args[i] = ast.Arg{Name: v.Name(i), Value: v.Constant(i)}
	}
	return args, nil
}

// Len returns the number of elements.
func (l *List) Len() int {
	return len(l.Elems)
}

// Name returns the name of element i, or "".
func (l *List) Name(i int) string {
	if i < len(l.Names) {
		return l.Names[i]
	}
	return ""
}

// QuoteNode implements ast.Quoter.  Lists only enter trees by splicing.
func (l *List) QuoteNode() (ast.Node, error) {
	return nil, ast.Errorf(ast.UnsupportedLiteral, nil, "cannot embed a list as a constant; splice it with ..()")
}

// Splice returns one argument per element, keeping element names.
func (l *List) Splice() ([]ast.Arg, error) {
	args := make([]ast.Arg, l.Len())
	for i, x := range l.Elems {
		node, err := ast.Quote(x)
		if err != nil {
			return nil, fmt.Errorf("list element %d: %w", i+1, err)
		}
		args[i] = ast.Arg{Name: l.Name(i), Value: node}
	}
	return args, nil
}

// Format returns a source-like rendering of a value.
func Format(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case *Vector:
		return formatVector(v)
	case *List:
		items := make([]string, len(v.Elems))
		for i, x := range v.Elems {
			items[i] = withName(v.Name(i), Format(x))
		}
		return "list(" + strings.Join(items, ", ") + ")"
	case ast.Node:
		return formatter.Render(v)
	case *Builtin:
		return "<builtin " + v.Name + ">"
	}
	return fmt.Sprintf("<%T>", v)
}

func formatVector(v *Vector) string {
	if v.Len() == 0 {
		switch v.Type {
		case ast.Logical:
			return "logical(0)"
		case ast.Integer:
			return "integer(0)"
		case ast.Double:
			return "numeric(0)"
		case ast.Character:
			return "character(0)"
		}
		return "NULL"
	}
	if v.Len() == 1 && v.Name(0) == "" {
		return v.Constant(0).String()
	}
	items := make([]string, v.Len())
	for i := range v.Elems {
		items[i] = withName(v.Name(i), v.Constant(i).String())
	}
	return "c(" + strings.Join(items, ", ") + ")"
}

func withName(name, s string) string {
	if name == "" {
		return s
	}
	return ast.QuoteName(name) + " = " + s
}

// formatElem converts a vector element to its character form.
func formatElem(x interface{}) string {
	switch x := x.(type) {
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(x)
	case float64:
		return ast.FormatDouble(x)
	case string:
		return x
	}
	return "NULL"
}

// rank orders atomic types for coercion.
func rank(t ast.ConstType) int {
	switch t {
	case ast.Logical:
		return 1
	case ast.Integer:
		return 2
	case ast.Double:
		return 3
	case ast.Character:
		return 4
	}
	return 0
}

func coerce(x interface{}, to ast.ConstType) interface{} {
	switch to {
	case ast.Integer:
		if b, ok := x.(bool); ok {
			if b {
				return 1
			}
			return 0
		}
	case ast.Double:
		switch x := x.(type) {
		case bool:
			if x {
				return 1.0
			}
			return 0.0
		case int:
			return float64(x)
		}
	case ast.Character:
		return formatElem(x)
	}
	return x
}

// as returns v coerced to type t.  Names are kept.
func (v *Vector) as(t ast.ConstType) *Vector {
	if v.Type == t {
		return v
	}
	out := &Vector{Type: t, Elems: make([]interface{}, v.Len()), Names: v.Names}
	for i, x := range v.Elems {
		out.Elems[i] = coerce(x, t)
	}
	return out
}
