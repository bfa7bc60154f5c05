// Copyright © 2026 The rexpr authors

package cmd

import (
	"github.com/luthersystems/rexpr/repl"
	"github.com/spf13/cobra"
)

func newEvalCommand(a *app) *cobra.Command {
	var opts execOptions
	cmd := &cobra.Command{
		Use:   "eval [flags] [files...]",
		Short: "Evaluate expressions and print their values",
		Long: `Evaluate each expression and print its value as source text.

The evaluator covers arithmetic, comparison and logical operators, vectors
and lists, paste, quote, bquote, eval, if and blocks.  An assignment to a
symbol at the top level binds the name for the expressions that follow it.
Function definitions and loops are not evaluated.

Input is read from -e expressions, from files, or from stdin.

Examples:
  rexpr eval -e 'paste("a", "b", sep = "-")'     "a-b"
  rexpr eval -e 'x <- 2' -e 'x * 21'             42
  rexpr eval -e 'bquote(f(.(1 + 2)))'            f(3)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, repl.ModeEval, &opts, args)
		},
	}
	opts.addFlags(cmd)
	return cmd
}
