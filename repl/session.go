// Copyright © 2026 The rexpr authors

package repl

import (
	"errors"
	"io"
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/eval"
	"github.com/luthersystems/rexpr/formatter"
	"github.com/luthersystems/rexpr/parser"
	"github.com/luthersystems/rexpr/parser/rdparser"
	"github.com/luthersystems/rexpr/quasi"
	"github.com/sirupsen/logrus"
)

// Mode selects what a session does with an expression that is not an
// assignment.
type Mode int

const (
	// ModeExpand quasiquotes the expression and prints the resulting tree.
	ModeExpand Mode = iota
	// ModeEval evaluates the expression and prints its value.
	ModeEval
)

func (m Mode) String() string {
	if m == ModeEval {
		return "eval"
	}
	return "expand"
}

// SourceName labels the locations of interactive input.
const SourceName = "<stdin>"

// Session holds the state of an interactive session: its environment and
// any incomplete input.  A Session is not safe for concurrent use.
type Session struct {
	env     *eval.Env
	mode    Mode
	log     logrus.FieldLogger
	fmt     *formatter.Config
	pending []string
}

// NewSession returns a session that binds into env.  A nil env is replaced
// by eval.NewGlobalEnv() and a nil logger discards its output.
func NewSession(env *eval.Env, mode Mode, log logrus.FieldLogger) *Session {
	if env == nil {
		env = eval.NewGlobalEnv()
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &Session{env: env, mode: mode, log: log}
}

// Env returns the session environment.
func (s *Session) Env() *eval.Env {
	return s.env
}

// Pending reports whether the session holds an incomplete expression.
func (s *Session) Pending() bool {
	return len(s.pending) > 0
}

// SetFormatConfig sets how expanded trees are rendered.  A nil cfg selects
// formatter.DefaultConfig().
func (s *Session) SetFormatConfig(cfg *formatter.Config) {
	s.fmt = cfg
}

// Reset discards incomplete input.
func (s *Session) Reset() {
	s.pending = nil
}

// Feed adds a line of input.  When the accumulated input is incomplete Feed
// returns no output and Pending reports true.  Otherwise every expression in
// the input is executed in order and the printed results are returned.
// Execution stops at the first error; the results of earlier expressions
// are still returned.
func (s *Session) Feed(line string) ([]string, error) {
	if !s.Pending() && strings.TrimSpace(line) == "" {
		return nil, nil
	}
	s.pending = append(s.pending, line)
	src := strings.Join(s.pending, "\n")
	f, err := parser.ParseFile(SourceName, []byte(src))
	if errors.Is(err, rdparser.ErrUnexpectedEOF) {
		s.log.WithField("lines", len(s.pending)).Debug("incomplete input")
		return nil, nil
	}
	s.pending = nil
	if err != nil {
		return nil, err
	}
	var out []string
	for _, node := range f.Nodes {
		text, err := s.Exec(node)
		if err != nil {
			return out, err
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

// Exec executes one expression.  An assignment to a symbol with <-, <<- or
// = evaluates its value and binds it in the session environment; it prints
// nothing.  Other expressions are handled according to the session mode.
func (s *Session) Exec(node ast.Node) (string, error) {
	if name, value, ok := binding(node); ok {
		v, err := s.env.Evaluate(value)
		if err != nil {
			return "", err
		}
		s.env.Put(name, v)
		s.log.WithField("name", name).Debug("bound")
		return "", nil
	}
	if s.mode == ModeEval {
		v, err := s.env.Evaluate(node)
		if err != nil {
			return "", err
		}
		return eval.Format(v), nil
	}
	out, err := quasi.Quasiquote(node, s.env)
	if err != nil {
		return "", err
	}
	return formatter.RenderConfig(out, s.fmt), nil
}

func binding(node ast.Node) (string, ast.Node, bool) {
	call, ok := node.(*ast.Call)
	if !ok || len(call.Args) != 2 {
		return "", nil, false
	}
	switch call.HeadName() {
	case "<-", "<<-", "=":
	default:
		return "", nil, false
	}
	target, ok := call.Args[0].Value.(*ast.Symbol)
	if !ok {
		return "", nil, false
	}
	return target.Name, call.Args[1].Value, true
}
