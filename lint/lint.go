// Copyright © 2026 The rexpr authors

// Package lint provides static analysis for rexpr source files.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives the parsed trees of one file and reports diagnostics.  The
// framework handles parsing, running analyzers, collecting results,
// suppression and output formatting.
//
// Embedders can define custom analyzers alongside the built-in set.
package lint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/luthersystems/rexpr/analysis"
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/parser/token"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "deprecated-token").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// Filename is the source file being analyzed.
	Filename string

	// Nodes are the top-level parsed expressions.
	Nodes []ast.Node

	// Comments are the comment tokens of the file in source order.
	Comments []*token.Token

	// Scope holds the names visible to the file before its first
	// expression: builtins, plus workspace definitions when the linter was
	// given any.  Analyzers must not modify it; use analysis.NewScope to
	// extend it.
	Scope *analysis.Scope

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	p.diagnostics = append(p.diagnostics, d)
}

// ReportWithNotes records a diagnostic with additional hint text.
func (p *Pass) ReportWithNotes(d Diagnostic, notes ...string) {
	d.Notes = append(d.Notes, notes...)
	p.Report(d)
}

// Reportf is a convenience for reporting a diagnostic at a position.
func (p *Pass) Reportf(source *token.Location, format string, args ...interface{}) {
	p.Report(Diagnostic{
		Pos:     PositionOf(source),
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Pos is the source location of the problem.
	Pos Position `json:"pos"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty"`
}

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// PositionOf converts a token location.  A nil location yields the zero
// Position.
func PositionOf(loc *token.Location) Position {
	if loc == nil {
		return Position{}
	}
	return Position{File: loc.File, Line: loc.Line, Col: loc.Col}
}

// String returns the position in file:line format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style: file:line: message (analyzer)
// with optional note lines appended.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s (%s)", d.Pos, d.Message, d.Analyzer)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer

	// Externals are symbols defined elsewhere in the workspace.  They are
	// visible to every linted file.
	Externals []analysis.ExternalSymbol

	// Logger receives debug output.  A nil Logger discards it.
	Logger logrus.FieldLogger

	// Concurrency bounds the number of files LintFiles processes at once.
	// Values below one mean no bound.
	Concurrency int
}

func (l *Linter) logger() logrus.FieldLogger {
	if l.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard
	}
	return l.Logger
}

// LintFile parses and analyzes a single source file and returns all
// diagnostics sorted by position.
func (l *Linter) LintFile(source []byte, filename string) ([]Diagnostic, error) {
	f, err := parser.ParseFile(filename, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return l.LintParsed(f)
}

// LintParsed analyzes an already parsed file.
func (l *Linter) LintParsed(f *parser.File) ([]Diagnostic, error) {
	log := l.logger().WithField("file", f.Name)
	scope := analysis.WorkspaceScope(l.Externals)

	var all []Diagnostic
	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			Filename: f.Name,
			Nodes:    f.Nodes,
			Comments: f.Comments,
			Scope:    scope,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", f.Name, analyzer.Name, err)
		}
		log.WithFields(logrus.Fields{
			"analyzer":    analyzer.Name,
			"diagnostics": len(pass.diagnostics),
		}).Debug("analyzer finished")
		// Set file on diagnostics that don't have one
		for i := range pass.diagnostics {
			if pass.diagnostics[i].Pos.File == "" {
				pass.diagnostics[i].Pos.File = f.Name
			}
		}
		all = append(all, pass.diagnostics...)
	}

	before := len(all)
	all = filterSuppressed(all, f.Comments)
	if n := before - len(all); n > 0 {
		log.WithField("suppressed", n).Debug("nolint directives applied")
	}
	SortDiagnostics(all)
	return all, nil
}

// LintFiles lints each of paths concurrently.  The result holds the
// diagnostics of all files sorted by position.  The first read, parse or
// analyzer error cancels the remaining work and is returned.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]Diagnostic, error) {
	results := make([][]Diagnostic, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path) //#nosec G304
			if err != nil {
				return err
			}
			diags, err := l.LintFile(src, path)
			if err != nil {
				return err
			}
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []Diagnostic
	for _, diags := range results {
		all = append(all, diags...)
	}
	SortDiagnostics(all)
	return all, nil
}

// SortDiagnostics sorts diags by file, line and column.  The order of
// diagnostics at the same position is preserved.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Pos, diags[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Col < b.Col
	})
}

// filterSuppressed removes diagnostics on lines with # nolint comments.
func filterSuppressed(diags []Diagnostic, comments []*token.Token) []Diagnostic {
	directives := nolintLines(comments)
	if len(directives) == 0 {
		return diags
	}
	var filtered []Diagnostic
	for _, d := range diags {
		dir, ok := directives[d.Pos.Line]
		if !ok || !dir.suppresses(d.Analyzer) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
