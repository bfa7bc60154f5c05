// Copyright © 2026 The rexpr authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/repl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// execOptions are the input flags shared by expand and eval.
type execOptions struct {
	exprs []string
	sets  []string
}

func (opts *execOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.exprs, "expr", "e", nil,
		"Expression to process instead of files (may be repeated).")
	flags.StringArrayVar(&opts.sets, "set", nil,
		"Bind name=expr before processing input (may be repeated).")
}

func newExpandCommand(a *app) *cobra.Command {
	var opts execOptions
	cmd := &cobra.Command{
		Use:   "expand [flags] [files...]",
		Short: "Quasiquote expressions and print the resulting trees",
		Long: `Quasiquote each expression and print the resulting tree as source.

Within an expression .(x) is replaced by the value of x, and ..(xs)
splices the elements of the vector or list xs into the enclosing argument
list.  Everything else is kept unevaluated.  An assignment to a symbol at
the top level binds the name for the expressions that follow it.

Input is read from -e expressions, from files, or from stdin.

Examples:
  rexpr expand -e 'f(.(1 + 2))'                  f(3)
  rexpr expand --set 'xs=c(a = 1, b = 2)' -e 'g(..(xs))'
                                                 g(a = 1, b = 2)
  rexpr expand template.R                        Expand a file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, repl.ModeExpand, &opts, args)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// execute runs every input expression through a session in mode and prints
// the results.
func (a *app) execute(cmd *cobra.Command, mode repl.Mode, opts *execOptions, args []string) error {
	session := repl.NewSession(a.cfg.newEnv(), mode, a.log)
	session.SetFormatConfig(a.formatConfig())
	errOut := cmd.ErrOrStderr()

	for _, set := range opts.sets {
		if err := a.bindSetting(session, set); err != nil {
			a.renderError(errOut, err, "--set takes the form name=expr")
			return &exitError{code: 1}
		}
	}

	files, err := a.inputs(cmd, opts, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, f := range files {
		for _, node := range f.Nodes {
			text, err := session.Exec(node)
			if err != nil {
				a.renderError(errOut, err)
				return &exitError{code: 1}
			}
			if text != "" {
				fmt.Fprintln(out, text) //nolint:errcheck // best-effort output
			}
		}
		a.log.WithFields(logrus.Fields{
			"source": f.Name,
			"mode":   mode,
			"exprs":  len(f.Nodes),
		}).Debug("processed")
	}
	return nil
}

// bindSetting evaluates the expression of a name=expr setting and binds the
// result in the session environment.
func (a *app) bindSetting(session *repl.Session, set string) error {
	name, src, ok := strings.Cut(set, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("invalid setting %q", set)
	}
	f, err := parser.ParseFile("--set "+name, []byte(src))
	if err != nil {
		return err
	}
	if len(f.Nodes) != 1 {
		return fmt.Errorf("setting %s: expected one expression (got %d)", name, len(f.Nodes))
	}
	v, err := session.Env().Evaluate(f.Nodes[0])
	if err != nil {
		return err
	}
	session.Env().Put(name, v)
	return nil
}

// inputs parses the -e expressions, or the named files, or stdin.
func (a *app) inputs(cmd *cobra.Command, opts *execOptions, args []string) ([]*parser.File, error) {
	errOut := cmd.ErrOrStderr()
	parse := func(name string, src []byte) (*parser.File, error) {
		f, err := parser.ParseFile(name, src)
		if err != nil {
			a.renderError(errOut, err)
			return nil, &exitError{code: 1}
		}
		return f, nil
	}

	var files []*parser.File
	switch {
	case len(opts.exprs) > 0:
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot combine -e with file arguments")
		}
		for _, expr := range opts.exprs {
			f, err := parse("-e", []byte(expr))
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	case len(args) > 0:
		for _, path := range args {
			src, err := os.ReadFile(path) //#nosec G304
			if err != nil {
				return nil, err
			}
			f, err := parse(path, src)
			if err != nil {
				return nil, err
			}
			files = append(files, f)
		}
	default:
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		f, err := parse(repl.SourceName, src)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
