// Copyright © 2026 The rexpr authors

package ast

import "math"

// Equal reports whether a and b are structurally equal.  Source locations
// are ignored.  Calls are equal when their heads are equal and their
// arguments are pairwise equal, names included, in the same order.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Constant:
		return constantEqual(a, b.(*Constant))
	case *Symbol:
		return a.Name == b.(*Symbol).Name
	case *Missing:
		return true
	case *Call:
		b := b.(*Call)
		if len(a.Args) != len(b.Args) || !Equal(a.Head, b.Head) {
			return false
		}
		for i := range a.Args {
			if a.Args[i].Name != b.Args[i].Name || !Equal(a.Args[i].Value, b.Args[i].Value) {
				return false
			}
		}
		return true
	case *ParamList:
		b := b.(*ParamList)
		if len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if a.Params[i].Name != b.Params[i].Name || !Equal(a.Params[i].Default, b.Params[i].Default) {
				return false
			}
		}
		return true
	}
	return false
}

func constantEqual(a, b *Constant) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case Null:
		return true
	case Logical:
		return a.Bool == b.Bool
	case Integer:
		return a.Int == b.Int
	case Double:
		if math.IsNaN(a.Float) {
			return math.IsNaN(b.Float)
		}
		return a.Float == b.Float
	case Character:
		return a.Str == b.Str
	}
	return false
}

// EqualAll reports whether two node sequences are pairwise equal.
func EqualAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
