// Copyright © 2026 The rexpr authors

package lint

import (
	"errors"
	"sort"
	"strings"

	"github.com/luthersystems/rexpr/analysis"
	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
	"github.com/luthersystems/rexpr/quasi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// AnalyzerDeprecatedToken warns about T and F, which are ordinary variables
// that any code can rebind.
var AnalyzerDeprecatedToken = &Analyzer{
	Name:     "deprecated-token",
	Severity: SeverityWarning,
	Doc:      "Warn when the symbols T or F are used in place of TRUE or FALSE.\n\nT and F are ordinary variables bound in the base environment. Any code can assign to them, so a program that reads them can silently change meaning. TRUE and FALSE are reserved constants.",
	Run: func(pass *Pass) error {
		for _, node := range pass.Nodes {
			for _, sym := range analysis.DeprecatedTokens(node) {
				pass.ReportWithNotes(Diagnostic{
					Pos:     PositionOf(sym.Source),
					Message: "use of deprecated token " + sym.Name,
				}, "use "+analysis.Replacement(sym.Name)+" instead")
			}
		}
		return nil
	},
}

// AnalyzerEscapeArity reports malformed quasiquotation markers.
var AnalyzerEscapeArity = &Analyzer{
	Name:     "escape-arity",
	Severity: SeverityError,
	Doc:      "Check that .() and ..() markers take exactly one unnamed argument.\n\nA malformed marker makes quasiquotation fail at run time. Splices are only valid as unnamed arguments of a call.",
	Run: func(pass *Pass) error {
		for _, node := range pass.Nodes {
			for _, err := range quasi.CheckEscapes(node) {
				var qerr *ast.Error
				if !errors.As(err, &qerr) {
					return err
				}
				msg := qerr.Kind.String()
				if qerr.Err != nil {
					msg = qerr.Err.Error()
				}
				pass.Reportf(qerr.Source, "%s", msg)
			}
		}
		return nil
	},
}

// AnalyzerGlobalReference reports names a file reads without defining them.
var AnalyzerGlobalReference = &Analyzer{
	Name:     "global-reference",
	Severity: SeverityInfo,
	Doc:      "Report free variables and functions that are neither builtins nor defined in the workspace.\n\nReferences are resolved in evaluation order, so a name read before its assignment is reported. Pass --workspace to make definitions from other files visible.",
	Run: func(pass *Pass) error {
		scope := analysis.NewScope(analysis.ScopeGlobal, pass.Scope, nil)
		globals := analysis.GlobalReferencesIn(pass.Nodes, scope)
		seen := make(map[string]bool)
		for _, ref := range globals.Refs {
			if seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
			what := "variable"
			if ref.Function {
				what = "function"
			}
			pass.Reportf(ref.Source, "reference to undefined %s %s", what, ast.QuoteName(ref.Name))
		}
		return nil
	},
}

// AnalyzerBuiltinShadow warns when code assigns to the name of a builtin.
var AnalyzerBuiltinShadow = &Analyzer{
	Name:     "builtin-shadow",
	Severity: SeverityWarning,
	Doc:      "Warn when an assignment rebinds the name of a builtin function or constant.\n\nShadowing c, list or T changes the meaning of every later use of the name in the same environment.",
	Run: func(pass *Pass) error {
		astutil.InspectAll(pass.Nodes, func(node ast.Node) bool {
			call, ok := node.(*ast.Call)
			if !ok || !astutil.IsCallTo(call, "<-", "=", "<<-") || len(call.Args) != 2 {
				return true
			}
			target, ok := call.Args[0].Value.(*ast.Symbol)
			if !ok || !analysis.IsBuiltin(target.Name) {
				return true
			}
			pass.Reportf(astutil.SourceOf(target), "assignment to %s shadows a builtin", ast.QuoteName(target.Name))
			return true
		})
		return nil
	},
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerDeprecatedToken,
		AnalyzerEscapeArity,
		AnalyzerGlobalReference,
		AnalyzerBuiltinShadow,
	}
}

// SelectAnalyzers returns the default analyzers with the given names, in
// default order.  Unknown names are returned as the second value.
func SelectAnalyzers(names []string) ([]*Analyzer, []string) {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[strings.TrimSpace(name)] = true
	}
	var selected []*Analyzer
	for _, a := range DefaultAnalyzers() {
		if want[a.Name] {
			selected = append(selected, a)
			delete(want, a.Name)
		}
	}
	var unknown []string
	for name := range want {
		if name != "" {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return selected, unknown
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
// Each entry is the analyzer name followed by its full description wrapped
// to width columns.
func AnalyzerDoc(width int) string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		b.WriteString("  " + a.Name + " (" + a.Severity.String() + ")\n")
		for _, para := range strings.Split(a.Doc, "\n\n") {
			b.WriteString(indent.String(wordwrap.String(para, width-4), 4))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// AnalyzerSummary returns one line per analyzer with the first line of its
// documentation.
func AnalyzerSummary() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		summary := strings.SplitN(a.Doc, "\n", 2)[0]
		b.WriteString("  " + a.Name + "\n    " + summary + "\n\n")
	}
	return b.String()
}
