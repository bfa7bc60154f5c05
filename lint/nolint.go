// Copyright © 2026 The rexpr authors

package lint

import (
	"strings"

	"github.com/luthersystems/rexpr/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// nolintDirective is a parsed "# nolint" or "# nolint: a, b" comment.  An
// empty list of checks suppresses every analyzer.
type nolintDirective struct {
	checks []string
	bare   bool
}

func (d *nolintDirective) suppresses(analyzer string) bool {
	if len(d.checks) == 0 {
		return true
	}
	for _, name := range d.checks {
		if name == analyzer {
			return true
		}
	}
	return false
}

// nolintLines maps line numbers to the directive of the comment on that
// line.
func nolintLines(comments []*token.Token) map[int]*nolintDirective {
	lines := make(map[int]*nolintDirective)
	for _, tok := range comments {
		if tok == nil || tok.Source == nil {
			continue
		}
		if dir := parseNolint(tok.Text); dir != nil {
			lines[tok.Source.Line] = dir
		}
	}
	return lines
}

var nolintGrammar = newNolintParser()

//	directive := 'nolint' ( ':' name ( ',' name )* )?
//	name      := /[A-Za-z][A-Za-z0-9_-]*/
func newNolintParser() parsec.Parser {
	keyword := parsec.Token(`nolint\b`, "NOLINT")
	colon := parsec.Atom(":", "COLON")
	comma := parsec.Atom(",", "COMMA")
	name := parsec.Token(`[A-Za-z][A-Za-z0-9_-]*`, "NAME")
	names := parsec.Kleene(nil, name, comma)
	checks := parsec.And(nil, colon, names)
	return parsec.And(nolintNode, keyword, parsec.Maybe(nil, checks))
}

func nolintNode(nodes []parsec.ParsecNode) parsec.ParsecNode {
	dir := &nolintDirective{bare: true}
	for _, n := range nodes[1:] {
		dir.collect(n)
	}
	return dir
}

func (d *nolintDirective) collect(n parsec.ParsecNode) {
	switch n := n.(type) {
	case *parsec.Terminal:
		switch n.Name {
		case "COLON":
			d.bare = false
		case "NAME":
			d.checks = append(d.checks, n.Value)
		}
	case []parsec.ParsecNode:
		for _, c := range n {
			d.collect(c)
		}
	}
}

// parseNolint returns the directive of a comment, or nil when the comment is
// not a nolint directive.  Text after a list of checks is an explanation and
// is ignored.  A bare "nolint" must end the comment.
func parseNolint(comment string) *nolintDirective {
	text := strings.TrimLeft(strings.TrimSpace(comment), "#")
	node, rest := nolintGrammar(parsec.NewScanner([]byte(text)))
	dir, ok := node.(*nolintDirective)
	if !ok {
		return nil
	}
	if dir.bare {
		if _, rest = rest.SkipWS(); !rest.Endof() {
			return nil
		}
	}
	return dir
}
