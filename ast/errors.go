// Copyright © 2026 The rexpr authors

package ast

import (
	"fmt"

	"github.com/luthersystems/rexpr/parser/token"
)

// ErrorKind classifies the errors reported by rexpr packages.
type ErrorKind uint8

const (
	// MalformedEscape is an escape or splice marker with the wrong number of
	// arguments, or a splice used outside an argument list.
	MalformedEscape ErrorKind = iota + 1
	// UnparsableText is source text that cannot be tokenized or parsed.
	UnparsableText
	// UnsupportedLiteral is a value that cannot be represented by a Constant.
	UnsupportedLiteral
	// MissingArgument is an attempt to evaluate the missing-argument sentinel.
	MissingArgument
	// UnboundSymbol is a symbol with no binding in the evaluation context.
	UnboundSymbol
	// EvalError is any other evaluation failure.
	EvalError
)

// String returns the condition name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case MalformedEscape:
		return "malformed-escape"
	case UnparsableText:
		return "unparsable-text"
	case UnsupportedLiteral:
		return "unsupported-literal"
	case MissingArgument:
		return "missing-argument"
	case UnboundSymbol:
		return "unbound-symbol"
	case EvalError:
		return "eval-error"
	default:
		return "error"
	}
}

// Sentinels for use with errors.Is.
var (
	ErrMalformedEscape    = &Error{Kind: MalformedEscape}
	ErrUnparsableText     = &Error{Kind: UnparsableText}
	ErrUnsupportedLiteral = &Error{Kind: UnsupportedLiteral}
	ErrMissingArgument    = &Error{Kind: MissingArgument}
	ErrUnboundSymbol      = &Error{Kind: UnboundSymbol}
	ErrEval               = &Error{Kind: EvalError}
)

// Error is a classified error with an optional source location.
type Error struct {
	Kind   ErrorKind
	Source *token.Location
	Err    error
}

// Errorf returns an Error of the given kind.  source may be nil.
func Errorf(kind ErrorKind, source *token.Location, format string, v ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Source: source,
		Err:    fmt.Errorf(format, v...),
	}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

// Condition returns the condition name of the error kind (e.g.
// "malformed-escape").
func (e *Error) Condition() string {
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels (ErrMalformedEscape and friends).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil || t.Source != nil {
		return false
	}
	return t.Kind == e.Kind
}
