// Copyright © 2026 The rexpr authors

// Package diagnostic provides annotated error rendering for rexpr CLI
// output: a header line, the offending source line and a caret underline.
// It depends only on the ast package so that any command, the REPL and the
// linter front end can share it.
package diagnostic

import (
	"errors"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // path for reading source; display name if unreadable
	Line   int    // 1-based line number
	Col    int    // 1-based start column, in runes
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// SpanOf returns a span covering the token at loc.  A nil location yields
// the zero span.
func SpanOf(loc *token.Location) Span {
	if loc == nil {
		return Span{}
	}
	return Span{File: loc.File, Line: loc.Line, Col: loc.Col}
}

// Diagnostic represents a single error, warning, or note with optional
// source annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines
}

// FromError converts err into an error diagnostic.  A classified *ast.Error
// contributes its condition name and source location.
func FromError(err error) Diagnostic {
	d := Diagnostic{Severity: SeverityError, Message: err.Error()}
	var aerr *ast.Error
	if !errors.As(err, &aerr) {
		return d
	}
	d.Message = aerr.Condition()
	if aerr.Err != nil {
		d.Message += ": " + aerr.Err.Error()
	}
	if aerr.Source != nil && aerr.Source.File != "" {
		d.Spans = append(d.Spans, SpanOf(aerr.Source))
	}
	return d
}
