// Copyright © 2026 The rexpr authors

package repl

import (
	"testing"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/eval"
	"github.com/luthersystems/rexpr/formatter"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedAll feeds each line and returns the output of the last one.
func feedAll(t *testing.T, s *Session, lines ...string) []string {
	t.Helper()
	var out []string
	for _, line := range lines {
		var err error
		out, err = s.Feed(line)
		require.NoError(t, err, line)
	}
	return out
}

func TestSessionExpand(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"no markers", []string{"f(x, 1 + 2)"}, []string{"f(x, 1 + 2)"}},
		{"escape", []string{"x <- 2", "f(.(x), y)"}, []string{"f(2, y)"}},
		{"splice", []string{"xs <- c(1, 2)", "g(a, ..(xs))"}, []string{"g(a, 1, 2)"}},
		{"bound tree", []string{"e <- quote(a + b)", ".(e) * 2"}, []string{"`*`(a + b, 2)"}},
		{"assignment prints nothing", []string{"x <- 1"}, nil},
		{"several per line", []string{"a; b"}, []string{"a", "b"}},
		{"derived target", []string{"names(x) <- \"a\""}, []string{"names(x) <- \"a\""}},
		{"equals assignment", []string{"n = 3", "rep(.(n))"}, []string{"rep(3)"}},
		{"blank line", []string{""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil, ModeExpand, nil)
			assert.Equal(t, tt.want, feedAll(t, s, tt.lines...))
			assert.False(t, s.Pending())
		})
	}
}

func TestSessionEval(t *testing.T) {
	s := NewSession(nil, ModeEval, nil)
	assert.Equal(t, []string{"3"}, feedAll(t, s, "1 + 2"))
	assert.Equal(t, []string{"c(1L, 2L, 3L)"}, feedAll(t, s, "x <- 1:3", "x"))
	assert.Equal(t, []string{"\"a b\""}, feedAll(t, s, "paste(\"a\", \"b\")"))
}

func TestSessionContinuation(t *testing.T) {
	s := NewSession(nil, ModeExpand, nil)
	out, err := s.Feed("f(1,")
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.True(t, s.Pending())

	out, err = s.Feed("")
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.True(t, s.Pending())

	out, err = s.Feed("  2)")
	require.NoError(t, err)
	assert.Equal(t, []string{"f(1, 2)"}, out)
	assert.False(t, s.Pending())
}

func TestSessionReset(t *testing.T) {
	s := NewSession(nil, ModeExpand, nil)
	_, err := s.Feed("function(x) {")
	require.NoError(t, err)
	require.True(t, s.Pending())
	s.Reset()
	assert.False(t, s.Pending())
	assert.Equal(t, []string{"y"}, feedAll(t, s, "y"))
}

func TestSessionErrors(t *testing.T) {
	s := NewSession(nil, ModeExpand, nil)

	_, err := s.Feed("f(1))")
	assert.ErrorIs(t, err, ast.ErrUnparsableText)
	assert.False(t, s.Pending())

	out, err := s.Feed("a; f(.(nope)); b")
	assert.ErrorIs(t, err, ast.ErrUnboundSymbol)
	assert.Equal(t, []string{"a"}, out)

	_, err = s.Feed("f(.(1, 2))")
	assert.ErrorIs(t, err, ast.ErrMalformedEscape)

	_, err = s.Feed("y <- nope")
	assert.ErrorIs(t, err, ast.ErrUnboundSymbol)
	_, ok := s.Env().Get("y")
	assert.False(t, ok)
}

func TestSessionUsesEnv(t *testing.T) {
	env := eval.NewGlobalEnv()
	env.Put("k", eval.Strings("v"))
	s := NewSession(env, ModeExpand, nil)
	assert.Equal(t, []string{"f(\"v\")"}, feedAll(t, s, "f(.(k))"))

	feedAll(t, s, "z <- TRUE")
	v, ok := env.Get("z")
	require.True(t, ok)
	assert.Equal(t, "TRUE", eval.Format(v))
}

func TestSessionFormatConfig(t *testing.T) {
	s := NewSession(nil, ModeExpand, nil)
	assert.Equal(t, []string{"{\n  a\n  b\n}"}, feedAll(t, s, "{ a; b }"))
	s.SetFormatConfig(&formatter.Config{IndentSize: 2, InlineBlocks: true})
	assert.Equal(t, []string{"{ a; b }"}, feedAll(t, s, "{ a; b }"))
}

func TestSessionLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := NewSession(nil, ModeExpand, logger)
	feedAll(t, s, "x <- (", "1)")

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "incomplete input", entries[0].Message)
	assert.Equal(t, "bound", entries[1].Message)
	assert.Equal(t, "x", entries[1].Data["name"])
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "expand", ModeExpand.String())
	assert.Equal(t, "eval", ModeEval.String())
}
