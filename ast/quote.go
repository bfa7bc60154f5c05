// Copyright © 2026 The rexpr authors

package ast

import "reflect"

// Quoter is implemented by values that know how to represent themselves as
// a tree, such as evaluator vectors.
type Quoter interface {
	QuoteNode() (Node, error)
}

// Quote converts v into a tree.  A Node quotes to itself, so constants are
// fixed points of quoting.  Go scalars become constants and single-element
// slices become the constant of their element.  Anything longer is an
// UnsupportedLiteral error: a multi-element literal has to be built with a
// call such as c(1, 2).
func Quote(v interface{}) (Node, error) {
	switch v := v.(type) {
	case nil:
		return NullConst(), nil
	case Node:
		return v, nil
	case Quoter:
		return v.QuoteNode()
	case bool:
		return Bool(v), nil
	case int:
		return Int(v), nil
	case int32:
		return Int(int(v)), nil
	case int64:
		return Int(int(v)), nil
	case float32:
		return Num(float64(v)), nil
	case float64:
		return Num(v), nil
	case string:
		return Str(v), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() != 1 {
			return nil, Errorf(UnsupportedLiteral, nil,
				"cannot quote a %d-element %T as a constant; build it with a call", rv.Len(), v)
		}
		elem := rv.Index(0).Interface()
		if _, ok := elem.(Node); ok {
			return nil, Errorf(UnsupportedLiteral, nil, "cannot quote a sequence of trees as a constant")
		}
		return Quote(elem)
	}
	return nil, Errorf(UnsupportedLiteral, nil, "cannot quote value of type %T", v)
}

// MustQuote is like Quote but panics on error.  It is intended for literals
// known to be atomic.
func MustQuote(v interface{}) Node {
	n, err := Quote(v)
	if err != nil {
		panic(err)
	}
	return n
}
