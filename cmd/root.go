// Copyright © 2026 The rexpr authors

// Package cmd implements the rexpr command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys.  Each can be set in the config file, through the
// environment (REXPR_LOG_LEVEL, REXPR_FMT_INDENT_SIZE, ...) or by the flag
// bound to it.
const (
	keyLogLevel     = "log-level"
	keyColor        = "color"
	keyIndentSize   = "fmt.indent-size"
	keyInlineBlocks = "fmt.inline-blocks"
	keyLintChecks   = "lint.checks"
)

// app is the state shared by the commands of one command tree.
type app struct {
	cfg     cmdConfig
	v       *viper.Viper
	log     *logrus.Logger
	cfgFile string
}

// exitError makes Execute exit with code.  Its message, if any, has already
// been reported.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCommand returns the rexpr command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}
	for _, opt := range opts {
		opt(&a.cfg)
	}

	root := &cobra.Command{
		Use:   "rexpr",
		Short: "rexpr: R expressions as data",
		Long: `rexpr parses R-flavoured source into immutable expression trees and
provides tools built on them: a formatter, a linter, quasiquotation and a
small evaluator.

Getting started:
  rexpr fmt file.R                 Print file.R in canonical form
  rexpr lint ./...                 Run static analysis checks
  rexpr expand -e 'f(.(1 + 2))'    Quasiquote an expression
  rexpr eval -e 'paste("a", "b")'  Evaluate an expression
  rexpr repl                       Start an interactive session
  rexpr doc paste                  Show documentation for a builtin

Quasiquotation:
  Inside an expanded expression .(x) is replaced by the value of x and
  ..(xs) splices the elements of xs into the surrounding argument list.

Configuration is read from $HOME/.rexpr.yaml (or --config) and from
REXPR_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.rexpr.yaml)")
	flags.String("color", "auto", `Control colored output: "auto", "always", or "never".`)
	flags.String("log-level", "warning", "Logging level (debug, info, warning, error).")
	a.bind(keyColor, flags.Lookup("color"))
	a.bind(keyLogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		newFmtCommand(a),
		newLintCommand(a),
		newExpandCommand(a),
		newEvalCommand(a),
		newReplCommand(a),
		newDocCommand(a),
	)
	return root
}

// Execute runs the command tree and exits on failure.  This is called by
// main.main().
func Execute() {
	err := NewRootCommand().Execute()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintln(os.Stderr, "rexpr:", err)
	os.Exit(2)
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
		a.v.SetConfigName(".rexpr")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("REXPR")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	readErr := a.v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if readErr != nil && (a.cfgFile != "" || !errors.As(readErr, &notFound)) {
		return fmt.Errorf("reading config: %w", readErr)
	}

	level, err := logrus.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	a.log.SetLevel(level)
	if readErr == nil {
		a.log.WithField("file", a.v.ConfigFileUsed()).Debug("using config file")
	}
	return nil
}

func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
