// Copyright © 2026 The rexpr authors

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/luthersystems/rexpr/analysis"
	"github.com/luthersystems/rexpr/lint"
	"github.com/luthersystems/rexpr/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type lintOptions struct {
	json        bool
	list        bool
	excludes    []string
	workspace   string
	concurrency int
}

func newLintCommand(a *app) *cobra.Command {
	var opts lintOptions
	cmd := &cobra.Command{
		Use:   "lint [flags] [files...]",
		Short: "Run static analysis checks on rexpr source files",
		Long: `Run static analysis checks on rexpr source files.

The linter reports likely mistakes in R code, similar to "go vet" for Go.
Each check is an independent analyzer that examines the parsed trees and
reports diagnostics.  The linter does not report style issues; use
"rexpr fmt" for that.

With no files, reads from stdin.  With files, analyzes each file and reports
all findings to stderr.

Exit codes:
  0  No errors or warnings (info findings do not fail)
  1  One or more errors or warnings were reported
  2  Bad invocation (invalid flags, unreadable or unparsable files)

To suppress a specific diagnostic, add a comment on the same line:
  x <- T  # nolint: deprecated-token

To suppress all checks on a line:
  x <- T  # nolint

Available checks (use --checks to select specific ones):

` + lint.AnalyzerSummary() + `Examples:
  rexpr lint file.R                              # Lint a single file
  rexpr lint --json file.R                       # Output diagnostics as JSON
  rexpr lint --checks=escape-arity file.R        # Run only specific checks
  rexpr lint --list                              # List available checks
  rexpr lint --workspace . ./...                 # Resolve names across files
  rexpr lint --exclude=vendor ./...              # Exclude a directory
  cat file.R | rexpr lint                        # Lint from stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()

			if opts.list {
				for _, name := range lint.AnalyzerNames() {
					fmt.Fprintln(out, name) //nolint:errcheck // best-effort output
				}
				return nil
			}

			analyzers, err := a.selectAnalyzers()
			if err != nil {
				fmt.Fprintln(errOut, "rexpr lint:", err) //nolint:errcheck // best-effort output
				return &exitError{code: 2}
			}

			externals := a.cfg.resolveExternals()
			if opts.workspace != "" {
				ws, err := analysis.ScanWorkspace(opts.workspace)
				if err != nil {
					fmt.Fprintln(errOut, "rexpr lint: scanning workspace:", err) //nolint:errcheck // best-effort output
					return &exitError{code: 2}
				}
				a.log.WithFields(logrus.Fields{
					"root":    opts.workspace,
					"symbols": len(ws),
				}).Debug("workspace scanned")
				externals = append(externals, ws...)
			}

			l := &lint.Linter{
				Analyzers:   analyzers,
				Externals:   externals,
				Logger:      a.log,
				Concurrency: opts.concurrency,
			}

			var diags []lint.Diagnostic
			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				diags, err = l.LintFile(src, repl.SourceName)
				if err != nil {
					a.renderError(errOut, err)
					return &exitError{code: 2}
				}
			} else {
				paths, err := expandArgs(args, opts.excludes)
				if err != nil {
					fmt.Fprintln(errOut, "rexpr lint:", err) //nolint:errcheck // best-effort output
					return &exitError{code: 2}
				}
				diags, err = l.LintFiles(cmd.Context(), paths)
				if err != nil {
					a.renderError(errOut, err)
					return &exitError{code: 2}
				}
			}

			if opts.json {
				if err := lint.FormatJSON(out, diags); err != nil {
					return err
				}
			} else {
				a.renderLintDiagnostics(errOut, diags)
			}
			if failing(diags) {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.json, "json", false, "Output diagnostics as JSON.")
	flags.StringSlice("checks", nil, "Comma-separated list of checks to run (default: all).")
	flags.BoolVar(&opts.list, "list", false, "List available checks and exit.")
	flags.StringArrayVar(&opts.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	flags.StringVar(&opts.workspace, "workspace", "",
		"Directory whose top-level definitions are visible to every linted file.")
	flags.IntVar(&opts.concurrency, "concurrency", 0,
		"Maximum number of files linted at once (default: no limit).")
	a.bind(keyLintChecks, flags.Lookup("checks"))
	return cmd
}

// selectAnalyzers returns the analyzers named by the lint.checks setting,
// or all of them when it is empty.
func (a *app) selectAnalyzers() ([]*lint.Analyzer, error) {
	var names []string
	for _, item := range a.v.GetStringSlice(keyLintChecks) {
		for _, name := range strings.Split(item, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return lint.DefaultAnalyzers(), nil
	}
	selected, unknown := lint.SelectAnalyzers(names)
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown check: %s", strings.Join(unknown, ", "))
	}
	return selected, nil
}

// failing reports whether any diagnostic is an error or a warning.
func failing(diags []lint.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == lint.SeverityError || d.Severity == lint.SeverityWarning {
			return true
		}
	}
	return false
}
