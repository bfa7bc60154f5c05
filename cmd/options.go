// Copyright © 2026 The rexpr authors

package cmd

import (
	"github.com/luthersystems/rexpr/analysis"
	"github.com/luthersystems/rexpr/eval"
)

// Option configures NewRootCommand for programs that embed the rexpr
// commands.
type Option func(*cmdConfig)

type cmdConfig struct {
	env       *eval.Env
	externals []analysis.ExternalSymbol
}

// WithEnv injects the environment used by expand, eval and repl.  Its
// bindings are visible to every expression.  For the lint command every
// name bound in env or its parents counts as defined.
func WithEnv(env *eval.Env) Option {
	return func(c *cmdConfig) { c.env = env }
}

// WithExternals declares symbols defined outside the linted files, such as
// functions provided by the embedding program.
func WithExternals(externals ...analysis.ExternalSymbol) Option {
	return func(c *cmdConfig) { c.externals = append(c.externals, externals...) }
}

// newEnv returns a fresh environment for one command invocation, enclosed
// by the injected environment when there is one.
func (c *cmdConfig) newEnv() *eval.Env {
	if c.env != nil {
		return eval.NewEnv(c.env)
	}
	return eval.NewGlobalEnv()
}

// resolveExternals returns the injected externals plus the names bound in
// the injected environment.
func (c *cmdConfig) resolveExternals() []analysis.ExternalSymbol {
	exts := append([]analysis.ExternalSymbol(nil), c.externals...)
	for env := c.env; env != nil; env = env.Parent() {
		for _, name := range env.Names() {
			kind := analysis.SymVariable
			if v, _ := env.Get(name); isBuiltin(v) {
				kind = analysis.SymFunction
			}
			exts = append(exts, analysis.ExternalSymbol{Name: name, Kind: kind})
		}
	}
	return exts
}

func isBuiltin(v interface{}) bool {
	_, ok := v.(*eval.Builtin)
	return ok
}
