// Copyright © 2026 The rexpr authors

// Package repl implements the interactive rexpr shell.  Each complete
// expression typed at the prompt is expanded (or evaluated) against a
// session environment that assignments extend.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/rexpr/diagnostic"
	"github.com/luthersystems/rexpr/eval"
	"github.com/sirupsen/logrus"
)

type config struct {
	stdin   io.ReadCloser
	stderr  io.Writer
	mode    Mode
	env     *eval.Env
	log     logrus.FieldLogger
	color   diagnostic.ColorMode
	history string
}

func newConfig(opts ...Option) *config {
	config := &config{history: historyPath()}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr allows overriding the output of the REPL.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithMode selects expansion or evaluation of input expressions.
func WithMode(mode Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// WithEnv runs the REPL in env instead of a fresh global environment.
func WithEnv(env *eval.Env) Option {
	return func(c *config) {
		c.env = env
	}
}

// WithLogger sets the logger of the session.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithColor controls colored error output.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithHistoryFile sets the history file.  An empty path disables history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.history = path
	}
}

// RunRepl reads expressions until end of input.  prompt is shown for new
// expressions and a blank prompt of the same width for continuation lines.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	out := cfg.stderr
	if out == nil {
		out = os.Stderr
	}
	cont := strings.Repeat(" ", len(prompt))
	session := NewSession(cfg.env, cfg.mode, cfg.log)
	renderer := &diagnostic.Renderer{Color: cfg.color}

	ensureHistoryFilePermissions(cfg.history)
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       cfg.history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: session.Env()},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	for {
		if session.Pending() {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}
		line, err := rl.ReadSlice()
		if errors.Is(err, readline.ErrInterrupt) {
			session.Reset()
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		results, err := session.Feed(string(line))
		for _, r := range results {
			fmt.Fprintln(out, r) //nolint:errcheck // best-effort REPL output
		}
		if err != nil {
			_ = renderer.Render(out, diagnostic.FromError(err))
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rexpr_history")
}

// ensureHistoryFilePermissions creates the history file if needed and
// restricts it to the current user.  Errors are ignored; readline reports
// its own.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o600) //#nosec G304
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0o600)
}
