// Copyright © 2026 The rexpr authors

package eval

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/formatter"
	"github.com/luthersystems/rexpr/quasi"
)

// Builtin is a function implemented in Go.  A special builtin receives its
// arguments unevaluated and reads them from the call.
type Builtin struct {
	Name    string
	Doc     string
	special bool
	fn      builtinFunc
}

type builtinFunc func(env *Env, call *ast.Call, args []Arg) (interface{}, error)

// IsSpecial reports whether b receives unevaluated arguments.
func (b *Builtin) IsSpecial() bool {
	return b.special
}

func builtin(name, doc string, fn builtinFunc) *Builtin {
	return &Builtin{Name: name, Doc: doc, fn: fn}
}

func special(name, doc string, fn builtinFunc) *Builtin {
	return &Builtin{Name: name, Doc: doc, special: true, fn: fn}
}

// DefaultBuiltins returns the builtin functions bound by NewGlobalEnv.
func DefaultBuiltins() []*Builtin {
	return []*Builtin{
		builtin("+", "Addition, or unary plus.", arithmetic(func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b })),
		builtin("-", "Subtraction, or negation.", arithmetic(func(a, b int) int { return a - b }, func(a, b float64) float64 { return a - b })),
		builtin("*", "Multiplication.", arithmetic(func(a, b int) int { return a * b }, func(a, b float64) float64 { return a * b })),
		builtin("/", "Division.", arithmetic(nil, func(a, b float64) float64 { return a / b })),
		builtin("^", "Exponentiation.", arithmetic(nil, math.Pow)),
		builtin("==", "Equality.", comparison(func(c int) bool { return c == 0 })),
		builtin("!=", "Inequality.", comparison(func(c int) bool { return c != 0 })),
		builtin("<", "Less than.", comparison(func(c int) bool { return c < 0 })),
		builtin(">", "Greater than.", comparison(func(c int) bool { return c > 0 })),
		builtin("<=", "Less than or equal.", comparison(func(c int) bool { return c <= 0 })),
		builtin(">=", "Greater than or equal.", comparison(func(c int) bool { return c >= 0 })),
		builtin("!", "Logical negation.", builtinNot),
		builtin("&", "Element-wise logical and.", logical(func(a, b bool) bool { return a && b })),
		builtin("|", "Element-wise logical or.", logical(func(a, b bool) bool { return a || b })),
		special("&&", "Short-circuit logical and.", shortCircuit(false)),
		special("||", "Short-circuit logical or.", shortCircuit(true)),
		builtin(":", "Integer sequence from:to.", builtinRange),
		builtin("c", "Combine values into a vector.", builtinC),
		builtin("list", "Build a list.", builtinList),
		builtin("length", "Number of elements.", builtinLength),
		builtin("names", "Element names.", builtinNames),
		builtin("sum", "Sum of all arguments.", builtinSum),
		builtin("paste", "Concatenate strings separated by sep.", paste(" ", true)),
		builtin("paste0", "Concatenate strings without a separator.", paste("", false)),
		builtin("as.name", "Convert a string to a symbol.", builtinAsName),
		builtin("as.symbol", "Convert a string to a symbol.", builtinAsName),
		builtin("call", "Build a call from a function name and arguments.", builtinCall),
		builtin("identity", "Return the argument.", builtinIdentity),
		builtin("(", "Grouping.", builtinIdentity),
		builtin("is.null", "Test for NULL.", builtinIsNull),
		builtin("eval", "Evaluate a tree.", builtinEval),
		builtin("deparse", "Render a value as source text.", builtinDeparse),
		special("$", "Element of a list or named vector.", builtinDollar),
		builtin("[[", "Single element by position or name.", builtinIndex),
		special("quote", "Return the argument unevaluated.", builtinQuote),
		special("bquote", "Quote the argument, evaluating .() and splicing ..() escapes.", builtinBquote),
		special("if", "Conditional.", builtinIf),
		special("{", "Evaluate each expression and return the last.", builtinBlock),
		special("function", "Function definitions are not evaluated.", unsupported("function definitions")),
		special("<-", "Assignment is not evaluated.", unsupported("assignment")),
		special("<<-", "Assignment is not evaluated.", unsupported("assignment")),
		special("=", "Assignment is not evaluated.", unsupported("assignment")),
		special("for", "Loops are not evaluated.", unsupported("loops")),
		special("while", "Loops are not evaluated.", unsupported("loops")),
		special("repeat", "Loops are not evaluated.", unsupported("loops")),
	}
}

func unsupported(what string) builtinFunc {
	return func(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
		return nil, fmt.Errorf("%s cannot be evaluated; evaluation does not modify its environment", what)
	}
}

func nargs(args []Arg, n int) error {
	if len(args) != n {
		return fmt.Errorf("%d arguments passed, %d required", len(args), n)
	}
	return nil
}

func vectorArg(x interface{}) (*Vector, error) {
	v, ok := x.(*Vector)
	if !ok {
		return nil, fmt.Errorf("argument is not an atomic vector: %s", Format(x))
	}
	return v, nil
}

// truth returns the condition value of x.
func truth(x interface{}) (bool, error) {
	v, err := vectorArg(x)
	if err != nil {
		return false, err
	}
	if v.Len() == 0 {
		return false, errors.New("argument is of length zero")
	}
	switch e := v.Elems[0].(type) {
	case bool:
		return e, nil
	case int:
		return e != 0, nil
	case float64:
		if math.IsNaN(e) {
			return false, errors.New("missing value where TRUE/FALSE needed")
		}
		return e != 0, nil
	}
	return false, errors.New("argument is not interpretable as logical")
}

func recycled(n, m int) int {
	if n == 0 || m == 0 {
		return 0
	}
	if n > m {
		return n
	}
	return m
}

func intLike(v *Vector) bool {
	return v.Type == ast.Null || v.Type == ast.Logical || v.Type == ast.Integer
}

func arithmetic(intOp func(a, b int) int, op func(a, b float64) float64) builtinFunc {
	return func(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
		switch len(args) {
		case 1:
			x, err := vectorArg(args[0].Value)
			if err != nil {
				return nil, err
			}
			return arith(Integers(0), x, intOp, op)
		case 2:
			a, err := vectorArg(args[0].Value)
			if err != nil {
				return nil, err
			}
			b, err := vectorArg(args[1].Value)
			if err != nil {
				return nil, err
			}
			return arith(a, b, intOp, op)
		}
		return nil, fmt.Errorf("operator needs one or two arguments")
	}
}

func arith(a, b *Vector, intOp func(a, b int) int, op func(a, b float64) float64) (*Vector, error) {
	if a.Type == ast.Character || b.Type == ast.Character {
		return nil, errors.New("non-numeric argument to binary operator")
	}
	n := recycled(a.Len(), b.Len())
	if intOp != nil && intLike(a) && intLike(b) {
		a, b = a.as(ast.Integer), b.as(ast.Integer)
		out := &Vector{Type: ast.Integer, Elems: make([]interface{}, n)}
		for i := 0; i < n; i++ {
			out.Elems[i] = intOp(a.Elems[i%a.Len()].(int), b.Elems[i%b.Len()].(int))
		}
		return out, nil
	}
	a, b = a.as(ast.Double), b.as(ast.Double)
	out := &Vector{Type: ast.Double, Elems: make([]interface{}, n)}
	for i := 0; i < n; i++ {
		out.Elems[i] = op(a.Elems[i%a.Len()].(float64), b.Elems[i%b.Len()].(float64))
	}
	return out, nil
}

func comparison(test func(c int) bool) builtinFunc {
	return func(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
		if err := nargs(args, 2); err != nil {
			return nil, err
		}
		a, err := vectorArg(args[0].Value)
		if err != nil {
			return nil, err
		}
		b, err := vectorArg(args[1].Value)
		if err != nil {
			return nil, err
		}
		n := recycled(a.Len(), b.Len())
		out := &Vector{Type: ast.Logical, Elems: make([]interface{}, n)}
		if a.Type == ast.Character || b.Type == ast.Character {
			a, b = a.as(ast.Character), b.as(ast.Character)
			for i := 0; i < n; i++ {
				out.Elems[i] = test(strings.Compare(a.Elems[i%a.Len()].(string), b.Elems[i%b.Len()].(string)))
			}
			return out, nil
		}
		a, b = a.as(ast.Double), b.as(ast.Double)
		for i := 0; i < n; i++ {
			x, y := a.Elems[i%a.Len()].(float64), b.Elems[i%b.Len()].(float64)
			switch {
			case math.IsNaN(x) || math.IsNaN(y):
				out.Elems[i] = false
			case x < y:
				out.Elems[i] = test(-1)
			case x > y:
				out.Elems[i] = test(1)
			default:
				out.Elems[i] = test(0)
			}
		}
		return out, nil
	}
}

func logicals(x interface{}) (*Vector, error) {
	v, err := vectorArg(x)
	if err != nil {
		return nil, err
	}
	if v.Type == ast.Character {
		return nil, errors.New("invalid argument type")
	}
	out := &Vector{Type: ast.Logical, Elems: make([]interface{}, v.Len()), Names: v.Names}
	for i, e := range v.Elems {
		switch e := e.(type) {
		case bool:
			out.Elems[i] = e
		case int:
			out.Elems[i] = e != 0
		case float64:
			out.Elems[i] = e != 0
		}
	}
	return out, nil
}

func builtinNot(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	v, err := logicals(args[0].Value)
	if err != nil {
		return nil, err
	}
	for i, e := range v.Elems {
		v.Elems[i] = !e.(bool)
	}
	return v, nil
}

func logical(op func(a, b bool) bool) builtinFunc {
	return func(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
		if err := nargs(args, 2); err != nil {
			return nil, err
		}
		a, err := logicals(args[0].Value)
		if err != nil {
			return nil, err
		}
		b, err := logicals(args[1].Value)
		if err != nil {
			return nil, err
		}
		n := recycled(a.Len(), b.Len())
		out := &Vector{Type: ast.Logical, Elems: make([]interface{}, n)}
		for i := 0; i < n; i++ {
			out.Elems[i] = op(a.Elems[i%a.Len()].(bool), b.Elems[i%b.Len()].(bool))
		}
		return out, nil
	}
}

// shortCircuit returns && (stopOn false) or || (stopOn true).
func shortCircuit(stopOn bool) builtinFunc {
	return func(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
		if len(call.Args) != 2 {
			return nil, fmt.Errorf("%d arguments passed, 2 required", len(call.Args))
		}
		for _, arg := range call.Args {
			v, err := env.Evaluate(arg.Value)
			if err != nil {
				return nil, err
			}
			b, err := truth(v)
			if err != nil {
				return nil, err
			}
			if b == stopOn {
				return Logicals(stopOn), nil
			}
		}
		return Logicals(!stopOn), nil
	}
}

// maxRangeLength bounds the length of a : sequence.
const maxRangeLength = 1 << 24

func builtinRange(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 2); err != nil {
		return nil, err
	}
	var bounds [2]float64
	integral := true
	for i, arg := range args {
		v, err := vectorArg(arg.Value)
		if err != nil {
			return nil, err
		}
		if v.Len() == 0 || v.Type == ast.Character {
			return nil, errors.New("argument of length 0 or non-numeric")
		}
		bounds[i] = coerce(v.Elems[0], ast.Double).(float64)
		if math.IsNaN(bounds[i]) || math.IsInf(bounds[i], 0) {
			return nil, errors.New("NA/NaN argument")
		}
		if bounds[i] != math.Trunc(bounds[i]) || math.Abs(bounds[i]) > 1<<53 {
			integral = false
		}
	}
	from, to := bounds[0], bounds[1]
	step := 1.0
	if to < from {
		step = -1
	}
	span := math.Floor(math.Abs(to - from))
	if span >= maxRangeLength {
		return nil, fmt.Errorf("result would be too long a vector (%g elements)", span+1)
	}
	n := int(span) + 1
	if integral {
		out := make([]int, n)
		for i := range out {
			out[i] = int(from + float64(i)*step)
		}
		return Integers(out...), nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return Doubles(out...), nil
}

func builtinC(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	typ := ast.Null
	for _, arg := range args {
		switch x := arg.Value.(type) {
		case *Vector:
			if rank(x.Type) > rank(typ) {
				typ = x.Type
			}
		case *List:
			return builtinList(env, call, flattenArgs(args))
		default:
			return builtinList(env, call, args)
		}
	}
	out := &Vector{Type: typ}
	named := false
	for _, arg := range args {
		v := arg.Value.(*Vector).as(typ)
		for i, e := range v.Elems {
			out.Elems = append(out.Elems, e)
			name := joinName(arg.Name, v.Name(i), i, v.Len())
			named = named || name != ""
			out.Names = append(out.Names, name)
		}
	}
	if !named {
		out.Names = nil
	}
	return out, nil
}

// flattenArgs expands list and vector arguments of c() into their elements.
func flattenArgs(args []Arg) []Arg {
	var out []Arg
	for _, arg := range args {
		switch x := arg.Value.(type) {
		case *List:
			for i, e := range x.Elems {
				out = append(out, Arg{Name: joinName(arg.Name, x.Name(i), i, x.Len()), Value: e})
			}
		case *Vector:
			for i := range x.Elems {
				elem := &Vector{Type: x.Type, Elems: x.Elems[i : i+1]}
				out = append(out, Arg{Name: joinName(arg.Name, x.Name(i), i, x.Len()), Value: elem})
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}

// joinName names element i of an n-element argument the way c() does.
func joinName(outer, inner string, i, n int) string {
	switch {
	case outer == "":
		return inner
	case inner != "":
		return outer + "." + inner
	case n == 1:
		return outer
	}
	return fmt.Sprintf("%s%d", outer, i+1)
}

func builtinList(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	l := &List{Elems: make([]interface{}, len(args))}
	named := false
	names := make([]string, len(args))
	for i, arg := range args {
		l.Elems[i] = arg.Value
		names[i] = arg.Name
		named = named || arg.Name != ""
	}
	if named {
		l.Names = names
	}
	return l, nil
}

func builtinLength(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	switch x := args[0].Value.(type) {
	case *Vector:
		return Integers(x.Len()), nil
	case *List:
		return Integers(x.Len()), nil
	case *ast.Call:
		return Integers(len(x.Args) + 1), nil
	}
	return Integers(1), nil
}

func builtinNames(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	var names []string
	switch x := args[0].Value.(type) {
	case *Vector:
		names = x.Names
	case *List:
		names = x.Names
	}
	if names == nil {
		return Null(), nil
	}
	return Strings(names...), nil
}

func builtinSum(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	acc := Integers(0)
	for _, arg := range args {
		v, err := vectorArg(arg.Value)
		if err != nil {
			return nil, err
		}
		if v.Type == ast.Character {
			return nil, errors.New("invalid 'type' (character) of argument")
		}
		for i := range v.Elems {
			elem := &Vector{Type: v.Type, Elems: v.Elems[i : i+1]}
			sum, err := arith(acc, elem, func(a, b int) int { return a + b }, func(a, b float64) float64 { return a + b })
			if err != nil {
				return nil, err
			}
			acc = sum
		}
	}
	return acc, nil
}

// paste builds paste and paste0.  Without hasSep a sep argument is pasted
// like any other value.
func paste(defaultSep string, hasSep bool) builtinFunc {
	return func(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
		sep := defaultSep
		collapse, hasCollapse := "", false
		var parts []*Vector
		n := 0
		for _, arg := range args {
			v, err := vectorArg(arg.Value)
			if err != nil {
				return nil, err
			}
			switch {
			case arg.Name == "sep" && hasSep:
				if v.Len() != 1 {
					return nil, errors.New("invalid separator")
				}
				sep = formatElem(v.Elems[0])
				continue
			case arg.Name == "collapse":
				if v.Len() != 1 {
					return nil, errors.New("invalid 'collapse' argument")
				}
				collapse, hasCollapse = formatElem(v.Elems[0]), true
				continue
			}
			if v.Len() == 0 {
				continue
			}
			parts = append(parts, v.as(ast.Character))
			if v.Len() > n {
				n = v.Len()
			}
		}
		out := make([]string, n)
		for i := range out {
			items := make([]string, len(parts))
			for j, p := range parts {
				items[j] = p.Elems[i%p.Len()].(string)
			}
			out[i] = strings.Join(items, sep)
		}
		if hasCollapse {
			return Strings(strings.Join(out, collapse)), nil
		}
		return Strings(out...), nil
	}
}

func builtinAsName(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	if sym, ok := args[0].Value.(*ast.Symbol); ok {
		return sym, nil
	}
	v, err := vectorArg(args[0].Value)
	if err != nil {
		return nil, err
	}
	if v.Len() == 0 {
		return nil, errors.New("invalid type/length (symbol/0) in vector allocation")
	}
	name := formatElem(v.Elems[0])
	if name == "" {
		return nil, errors.New("attempt to use zero-length variable name")
	}
	return ast.Sym(name), nil
}

func builtinCall(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if len(args) == 0 || args[0].Name != "" {
		return nil, errors.New("first argument must be a function name")
	}
	name, ok := args[0].Value.(*Vector)
	if !ok || name.Type != ast.Character || name.Len() != 1 {
		return nil, errors.New("first argument must be a character string")
	}
	out := &ast.Call{Head: ast.Sym(name.Elems[0].(string))}
	for _, arg := range args[1:] {
		node, err := ast.Quote(arg.Value)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, ast.Arg{Name: arg.Name, Value: node})
	}
	return out, nil
}

func builtinIdentity(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	return args[0].Value, nil
}

func builtinIsNull(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	v, ok := args[0].Value.(*Vector)
	return Logicals(ok && v.Type == ast.Null), nil
}

func builtinEval(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	if node, ok := args[0].Value.(ast.Node); ok {
		return env.Evaluate(node)
	}
	return args[0].Value, nil
}

func builtinDeparse(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 1); err != nil {
		return nil, err
	}
	if node, ok := args[0].Value.(ast.Node); ok {
		return Strings(formatter.Render(node)), nil
	}
	return Strings(Format(args[0].Value)), nil
}

func builtinDollar(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
	if len(call.Args) != 2 {
		return nil, fmt.Errorf("%d arguments passed, 2 required", len(call.Args))
	}
	var field string
	switch f := call.Args[1].Value.(type) {
	case *ast.Symbol:
		field = f.Name
	case *ast.Constant:
		if f.Type != ast.Character {
			return nil, errors.New("invalid subscript type")
		}
		field = f.Str
	default:
		return nil, errors.New("invalid subscript type")
	}
	x, err := env.Evaluate(call.Args[0].Value)
	if err != nil {
		return nil, err
	}
	return element(x, Strings(field))
}

func builtinIndex(env *Env, call *ast.Call, args []Arg) (interface{}, error) {
	if err := nargs(args, 2); err != nil {
		return nil, err
	}
	index, err := vectorArg(args[1].Value)
	if err != nil {
		return nil, err
	}
	if index.Len() != 1 {
		return nil, errors.New("subscript must select exactly one element")
	}
	v, err := element(args[0].Value, index)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("subscript out of bounds")
	}
	return v, nil
}

// element selects one element of a list or vector by 1-based position or
// by name.  A name that is not present selects nil.
func element(x interface{}, index *Vector) (interface{}, error) {
	var (
		n     int
		names []string
		get   func(i int) interface{}
	)
	switch x := x.(type) {
	case *List:
		n, names = x.Len(), x.Names
		get = func(i int) interface{} { return x.Elems[i] }
	case *Vector:
		n, names = x.Len(), x.Names
		get = func(i int) interface{} { return &Vector{Type: x.Type, Elems: x.Elems[i : i+1]} }
	default:
		return nil, errors.New("object is not subsettable")
	}
	if index.Type == ast.Character {
		name := index.Elems[0].(string)
		for i, nm := range names {
			if nm == name {
				return get(i), nil
			}
		}
		return Null(), nil
	}
	pos := int(coerce(index.Elems[0], ast.Double).(float64))
	if pos < 1 || pos > n {
		return nil, nil
	}
	return get(pos - 1), nil
}

func builtinQuote(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
	if len(call.Args) != 1 || call.Args[0].Name != "" {
		return nil, errors.New("quote takes exactly one argument")
	}
	return call.Args[0].Value, nil
}

func builtinBquote(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
	if len(call.Args) != 1 || call.Args[0].Name != "" {
		return nil, errors.New("bquote takes exactly one argument")
	}
	return quasi.Quasiquote(call.Args[0].Value, env)
}

func builtinIf(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
	if len(call.Args) < 2 || len(call.Args) > 3 {
		return nil, errors.New("malformed if")
	}
	cond, err := env.Evaluate(call.Args[0].Value)
	if err != nil {
		return nil, err
	}
	ok, err := truth(cond)
	if err != nil {
		return nil, err
	}
	switch {
	case ok:
		return env.Evaluate(call.Args[1].Value)
	case len(call.Args) == 3:
		return env.Evaluate(call.Args[2].Value)
	}
	return Null(), nil
}

func builtinBlock(env *Env, call *ast.Call, _ []Arg) (interface{}, error) {
	return env.EvaluateAll(call.ArgValues())
}
