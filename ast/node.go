// Copyright © 2026 The rexpr authors

// Package ast defines the immutable expression tree.
//
// A tree is made of exactly five kinds of node: constants, symbols, the
// missing-argument sentinel, calls and parameter lists.  The Node interface is
// sealed so no other package can add a kind, which lets consumers dispatch on
// Kind (or use astutil.Walk) without a fallback case.
//
// Trees are never modified after construction.  Code that transforms a tree
// builds new parent nodes and may share unchanged children with the original.
package ast

import (
	"math"

	"github.com/luthersystems/rexpr/parser/token"
)

// Kind identifies the variant of a Node.
type Kind uint8

const (
	KindConstant Kind = iota + 1
	KindSymbol
	KindMissing
	KindCall
	KindParamList
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindSymbol:
		return "symbol"
	case KindMissing:
		return "missing"
	case KindCall:
		return "call"
	case KindParamList:
		return "paramlist"
	default:
		return "invalid"
	}
}

// Node is an element of an expression tree.
type Node interface {
	Kind() Kind
	// Pos returns the location the node was parsed from, or nil for
	// constructed nodes.
	Pos() *token.Location
	node()
}

// ConstType is the type of an atomic constant.
type ConstType uint8

const (
	Null ConstType = iota
	Logical
	Integer
	Double
	Character
)

func (t ConstType) String() string {
	switch t {
	case Null:
		return "NULL"
	case Logical:
		return "logical"
	case Integer:
		return "integer"
	case Double:
		return "double"
	case Character:
		return "character"
	default:
		return "invalid"
	}
}

// Constant is a self-evaluating atomic literal.  Only the field matching
// Type is meaningful.
type Constant struct {
	Type   ConstType
	Bool   bool
	Int    int
	Float  float64
	Str    string
	Source *token.Location
}

// Symbol is a reference to a name.  Name is never empty; the absence of an
// argument is represented by Missing instead.
type Symbol struct {
	Name   string
	Source *token.Location
}

// Missing marks an omitted argument, such as a parameter without a default.
// It has no name and cannot be evaluated.
type Missing struct {
	Source *token.Location
}

// Arg is an argument of a call.  An empty Name marks a positional argument.
type Arg struct {
	Name  string
	Value Node
}

// Call applies Head to Args.  Argument order is significant.
type Call struct {
	Head   Node
	Args   []Arg
	Source *token.Location
}

// Param is a formal parameter.  Default is a *Missing when the parameter has
// no default value.
type Param struct {
	Name    string
	Default Node
}

// ParamList is the formals of a function definition.
type ParamList struct {
	Params []Param
	Source *token.Location
}

func (*Constant) Kind() Kind  { return KindConstant }
func (*Symbol) Kind() Kind    { return KindSymbol }
func (*Missing) Kind() Kind   { return KindMissing }
func (*Call) Kind() Kind      { return KindCall }
func (*ParamList) Kind() Kind { return KindParamList }

func (c *Constant) Pos() *token.Location  { return c.Source }
func (s *Symbol) Pos() *token.Location    { return s.Source }
func (m *Missing) Pos() *token.Location   { return m.Source }
func (c *Call) Pos() *token.Location      { return c.Source }
func (p *ParamList) Pos() *token.Location { return p.Source }

func (*Constant) node()  {}
func (*Symbol) node()    {}
func (*Missing) node()   {}
func (*Call) node()      {}
func (*ParamList) node() {}

// NullConst returns the NULL constant.
func NullConst() *Constant {
	return &Constant{Type: Null}
}

// Bool returns a logical constant.
func Bool(b bool) *Constant {
	return &Constant{Type: Logical, Bool: b}
}

// Int returns an integer constant.
func Int(x int) *Constant {
	return &Constant{Type: Integer, Int: x}
}

// Num returns a double constant.
func Num(x float64) *Constant {
	return &Constant{Type: Double, Float: x}
}

// Str returns a string constant.
func Str(s string) *Constant {
	return &Constant{Type: Character, Str: s}
}

// Sym returns a symbol.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// MissingArg returns the missing-argument sentinel.
func MissingArg() *Missing {
	return &Missing{}
}

// NewCall returns a call of head with args.
func NewCall(head Node, args ...Arg) *Call {
	return &Call{Head: head, Args: args}
}

// CallN returns a call to the function name with positional arguments.
func CallN(name string, args ...Node) *Call {
	return NewCall(Sym(name), Positional(args...)...)
}

// Positional wraps nodes as unnamed arguments.
func Positional(nodes ...Node) []Arg {
	args := make([]Arg, len(nodes))
	for i, n := range nodes {
		args[i] = Arg{Value: n}
	}
	return args
}

// Named returns a named argument.
func Named(name string, value Node) Arg {
	return Arg{Name: name, Value: value}
}

// NewParamList returns a parameter list.
func NewParamList(params ...Param) *ParamList {
	return &ParamList{Params: params}
}

// Formal returns a parameter.  A nil default means no default.
func Formal(name string, def Node) Param {
	if def == nil {
		def = MissingArg()
	}
	return Param{Name: name, Default: def}
}

// Function returns the definition function(params) body.
func Function(params *ParamList, body Node) *Call {
	return CallN("function", params, body)
}

// HasDefault reports whether the parameter has a default value.
func (p Param) HasDefault() bool {
	return p.Default != nil && p.Default.Kind() != KindMissing
}

// Value returns the constant as a Go value: nil, bool, int, float64 or
// string.
func (c *Constant) Value() interface{} {
	switch c.Type {
	case Logical:
		return c.Bool
	case Integer:
		return c.Int
	case Double:
		return c.Float
	case Character:
		return c.Str
	default:
		return nil
	}
}

// IsNumber reports whether c is an integer or double constant.
func (c *Constant) IsNumber() bool {
	return c.Type == Integer || c.Type == Double
}

// Number returns the numeric value of an integer or double constant.
func (c *Constant) Number() float64 {
	if c.Type == Integer {
		return float64(c.Int)
	}
	if c.Type == Double {
		return c.Float
	}
	return math.NaN()
}

// ArgValues returns the values of the call arguments.
func (c *Call) ArgValues() []Node {
	vals := make([]Node, len(c.Args))
	for i, a := range c.Args {
		vals[i] = a.Value
	}
	return vals
}

// HeadName returns the name of the head symbol, or "" when the head is not a
// symbol.
func (c *Call) HeadName() string {
	if sym, ok := c.Head.(*Symbol); ok {
		return sym.Name
	}
	return ""
}
