// Copyright © 2026 The rexpr authors

package cmd

import (
	"io"

	"github.com/luthersystems/rexpr/diagnostic"
	"github.com/luthersystems/rexpr/lint"
)

// noteWidth wraps long notes in rendered diagnostics.
const noteWidth = 72

func (a *app) colorMode() diagnostic.ColorMode {
	return diagnostic.ParseColorMode(a.v.GetString(keyColor))
}

func (a *app) newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: a.colorMode(), NoteWidth: noteWidth}
}

// lintDiagToDiagnostic converts a lint.Diagnostic to a diagnostic.Diagnostic.
func lintDiagToDiagnostic(ld lint.Diagnostic) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Message:  ld.Message + " (" + ld.Analyzer + ")",
	}
	switch ld.Severity {
	case lint.SeverityError:
		d.Severity = diagnostic.SeverityError
	case lint.SeverityInfo:
		d.Severity = diagnostic.SeverityNote
	}
	if ld.Pos.Line > 0 {
		d.Spans = append(d.Spans, diagnostic.Span{
			File: ld.Pos.File,
			Line: ld.Pos.Line,
			Col:  ld.Pos.Col,
		})
	}
	d.Notes = append(d.Notes, ld.Notes...)
	d.Notes = append(d.Notes, "to suppress: add \"# nolint: "+ld.Analyzer+"\" as a comment on this line")
	return d
}

// renderLintDiagnostics renders lint diagnostics with diagnostic formatting.
func (a *app) renderLintDiagnostics(w io.Writer, diags []lint.Diagnostic) {
	ds := make([]diagnostic.Diagnostic, len(diags))
	for i, ld := range diags {
		ds[i] = lintDiagToDiagnostic(ld)
	}
	_ = a.newRenderer().RenderAll(w, ds)
}

// renderError renders err with diagnostic formatting.  hints are appended
// as notes.
func (a *app) renderError(w io.Writer, err error, hints ...string) {
	d := diagnostic.FromError(err)
	d.Notes = append(d.Notes, hints...)
	_ = a.newRenderer().Render(w, d)
}
