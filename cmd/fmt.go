// Copyright © 2026 The rexpr authors

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/rexpr/analysis"
	"github.com/luthersystems/rexpr/formatter"
	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type fmtOptions struct {
	write    bool
	diff     bool
	list     bool
	fix      bool
	excludes []string
}

// format renders src canonically.  With fix set, reads of T and F are
// replaced by TRUE and FALSE first.
func (opts *fmtOptions) format(src []byte, name string, cfg *formatter.Config) ([]byte, error) {
	if !opts.fix {
		return formatter.FormatFile(src, name, cfg)
	}
	nodes, err := parser.Parse(name, src)
	if err != nil {
		return nil, err
	}
	nodes, _, err = analysis.FixDeprecatedTokens(nodes)
	if err != nil {
		return nil, err
	}
	return []byte(formatter.RenderAll(nodes, cfg)), nil
}

func newFmtCommand(a *app) *cobra.Command {
	var opts fmtOptions
	cmd := &cobra.Command{
		Use:   "fmt [flags] [files...]",
		Short: "Format rexpr source files",
		Long: `Format R source files, similar to gofmt for Go.

Every expression is parsed and rendered back in canonical form: operators
spaced, redundant parentheses removed, parentheses added where precedence
requires them and blocks indented.  The formatter is idempotent.  Comments
are not part of the expression trees and are dropped.

With no files, reads from stdin and writes to stdout.
With files, prints formatted output to stdout unless -w is given.

Modes:
  (default)   Print formatted code to stdout
  -w          Write result back to source file
  -d          Display a diff of changes
  -l          List files that would be changed

With --fix, reads of the deprecated tokens T and F are rewritten to TRUE
and FALSE unless the file rebinds them.

Examples:
  rexpr fmt file.R                 Print formatted output
  rexpr fmt -w ./...               Format all source files in place
  rexpr fmt -d file.R              Show what would change
  rexpr fmt -l ./...               List files needing formatting
  cat file.R | rexpr fmt           Format from stdin
  rexpr fmt --indent-size 4 f.R    Use 4-space indentation
  rexpr fmt --fix -w ./...         Replace T and F in place`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.formatConfig()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				src, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				res, err := opts.format(src, repl.SourceName, cfg)
				if err != nil {
					a.renderError(cmd.ErrOrStderr(), err)
					return &exitError{code: 1}
				}
				_, err = out.Write(res)
				return err
			}

			expanded, err := expandArgs(args, opts.excludes)
			if err != nil {
				return err
			}
			code := 0
			for _, path := range expanded {
				changed, err := opts.fmtFile(out, path, cfg)
				if err != nil {
					a.renderError(cmd.ErrOrStderr(), err)
					code = 1
				} else if opts.list && changed {
					code = 1
				}
				a.log.WithFields(logrus.Fields{"file": path, "changed": changed}).Debug("formatted")
			}
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.write, "write", "w", false,
		"Write result to (source) file instead of stdout.")
	flags.BoolVarP(&opts.diff, "diff", "d", false,
		"Display diffs instead of rewriting files.")
	flags.BoolVarP(&opts.list, "list", "l", false,
		"List files whose formatting differs from rexpr fmt's.")
	flags.BoolVar(&opts.fix, "fix", false,
		"Replace the deprecated tokens T and F with TRUE and FALSE.")
	flags.Int("indent-size", formatter.DefaultConfig().IndentSize,
		"Number of spaces per indentation level.")
	flags.Bool("inline-blocks", false,
		"Render blocks on one line with statements separated by \"; \".")
	flags.StringArrayVar(&opts.excludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
	a.bind(keyIndentSize, flags.Lookup("indent-size"))
	a.bind(keyInlineBlocks, flags.Lookup("inline-blocks"))
	return cmd
}

func (a *app) formatConfig() *formatter.Config {
	cfg := formatter.DefaultConfig()
	if n := a.v.GetInt(keyIndentSize); n > 0 {
		cfg.IndentSize = n
	}
	cfg.InlineBlocks = a.v.GetBool(keyInlineBlocks)
	return cfg
}

func (opts *fmtOptions) fmtFile(w io.Writer, path string, cfg *formatter.Config) (bool, error) {
	src, err := os.ReadFile(path) //#nosec G304
	if err != nil {
		return false, err
	}
	out, err := opts.format(src, path, cfg)
	if err != nil {
		return false, err
	}

	changed := string(src) != string(out)

	if opts.list {
		if changed {
			fmt.Fprintln(w, path) //nolint:errcheck // best-effort output
		}
		return changed, nil
	}

	if opts.diff {
		if changed {
			printUnifiedDiff(w, path, src, out)
		}
		return changed, nil
	}

	if opts.write {
		if !changed {
			return false, nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return false, err
		}
		return true, os.WriteFile(path, out, info.Mode().Perm())
	}

	_, err = w.Write(out)
	return changed, err
}

// printUnifiedDiff writes a simple line-by-line diff.
func printUnifiedDiff(w io.Writer, path string, original, formatted []byte) {
	fmt.Fprintf(w, "--- %s\n", path) //nolint:errcheck // best-effort output
	fmt.Fprintf(w, "+++ %s\n", path) //nolint:errcheck // best-effort output

	origLines := splitLines(original)
	fmtLines := splitLines(formatted)

	i, j := 0, 0
	for i < len(origLines) || j < len(fmtLines) {
		switch {
		case i < len(origLines) && j < len(fmtLines) && origLines[i] == fmtLines[j]:
			fmt.Fprintf(w, " %s\n", origLines[i]) //nolint:errcheck // best-effort output
			i++
			j++
		case i < len(origLines):
			fmt.Fprintf(w, "-%s\n", origLines[i]) //nolint:errcheck // best-effort output
			i++
		default:
			fmt.Fprintf(w, "+%s\n", fmtLines[j]) //nolint:errcheck // best-effort output
			j++
		}
	}
}

func splitLines(data []byte) []string {
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return lines
}
