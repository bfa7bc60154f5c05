// Copyright © 2026 The rexpr authors

package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/luthersystems/rexpr/docs"
	"github.com/luthersystems/rexpr/eval"
	"github.com/luthersystems/rexpr/lint"
	"github.com/spf13/cobra"
)

func newDocCommand(a *app) *cobra.Command {
	var checks, guide bool
	cmd := &cobra.Command{
		Use:   "doc [flags] [NAME]",
		Short: "Show documentation for builtins and lint checks",
		Long: `Show documentation for the builtin functions of the evaluator.

With no arguments, lists every builtin with a one-line description.  With
a NAME, shows the documentation of that builtin.  Builtins marked
"special" receive their arguments unevaluated.

Use --checks to show the full documentation of the lint checks and
--guide to show the language guide: syntax, operator precedence and
quasiquotation.

Examples:
  rexpr doc                  List builtins
  rexpr doc bquote           Show docs for bquote
  rexpr doc --checks         Describe the lint checks
  rexpr doc --guide          Show the language guide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if guide {
				_, err := io.WriteString(out, docs.LangGuide)
				return err
			}
			if checks {
				_, err := io.WriteString(out, lint.AnalyzerDoc(noteWidth))
				return err
			}
			builtins := visibleBuiltins(a.cfg.newEnv())
			if len(args) == 0 {
				listBuiltins(out, builtins)
				return nil
			}
			b, ok := builtins[args[0]]
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "rexpr doc: no builtin named %s\n", args[0]) //nolint:errcheck // best-effort output
				return &exitError{code: 1}
			}
			kind := "builtin"
			if b.IsSpecial() {
				kind = "special builtin"
			}
			fmt.Fprintf(out, "%s (%s)\n\n    %s\n", b.Name, kind, b.Doc) //nolint:errcheck // best-effort output
			return nil
		},
	}
	cmd.Flags().BoolVar(&checks, "checks", false, "Show documentation for the lint checks.")
	cmd.Flags().BoolVar(&guide, "guide", false, "Show the language guide.")
	return cmd
}

// visibleBuiltins returns the nearest builtin bound to each name in env or
// its parents.
func visibleBuiltins(env *eval.Env) map[string]*eval.Builtin {
	builtins := make(map[string]*eval.Builtin)
	for e := env; e != nil; e = e.Parent() {
		for _, name := range e.Names() {
			if _, shadowed := builtins[name]; shadowed {
				continue
			}
			if v, _ := e.Get(name); isBuiltin(v) {
				builtins[name] = v.(*eval.Builtin)
			}
		}
	}
	return builtins
}

func listBuiltins(w io.Writer, builtins map[string]*eval.Builtin) {
	names := make([]string, 0, len(builtins))
	width := 0
	for name := range builtins {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-*s  %s\n", width, name, builtins[name].Doc) //nolint:errcheck // best-effort output
	}
}
