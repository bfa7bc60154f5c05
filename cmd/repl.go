// Copyright © 2026 The rexpr authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/rexpr/repl"
	"github.com/spf13/cobra"
)

func newReplCommand(a *app) *cobra.Command {
	var evalMode bool
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive rexpr session",
		Long: `Start an interactive read-eval-print loop.

Each complete expression is quasiquoted and the resulting tree is printed.
With --eval expressions are evaluated instead.  An assignment to a symbol
binds the name for the rest of the session.  Incomplete expressions
continue on the next line.

Line editing, tab completion of bound names and command history are
supported via readline.  Ctrl-C discards the current input; Ctrl-D exits.

Example session:
  rexpr> x <- 1 + 2
  rexpr> f(.(x), y)
  f(3, y)
  rexpr> xs <- list(a = 1, b = quote(z))
  rexpr> g(..(xs))
  g(a = 1, b = z)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := repl.ModeExpand
			if evalMode {
				mode = repl.ModeEval
			}
			return repl.RunRepl(filepath.Base(os.Args[0])+"> ",
				repl.WithStderr(cmd.ErrOrStderr()),
				repl.WithMode(mode),
				repl.WithEnv(a.cfg.newEnv()),
				repl.WithLogger(a.log),
				repl.WithColor(a.colorMode()),
			)
		},
	}
	cmd.Flags().BoolVar(&evalMode, "eval", false, "Evaluate expressions instead of expanding them.")
	return cmd
}
