// Copyright © 2026 The rexpr authors

package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/luthersystems/rexpr/parser/grammar"
)

// String returns node in prefix form, e.g. `<-`(x, `+`(a, 1)).  Operators
// and syntax are never rendered infix, so the output is unambiguous and is
// meant for debugging and test failure messages.  Use the formatter package
// for idiomatic source text.
func String(node Node) string {
	var b strings.Builder
	writePrefix(&b, node)
	return b.String()
}

func writePrefix(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Constant:
		b.WriteString(n.String())
	case *Symbol:
		b.WriteString(QuoteName(n.Name))
	case *Missing:
		b.WriteString("<missing>")
	case *Call:
		writePrefix(b, n.Head)
		b.WriteByte('(')
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if arg.Name != "" {
				b.WriteString(QuoteName(arg.Name))
				b.WriteString(" = ")
			}
			writePrefix(b, arg.Value)
		}
		b.WriteByte(')')
	case *ParamList:
		b.WriteByte('[')
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(QuoteName(p.Name))
			if p.HasDefault() {
				b.WriteString(" = ")
				writePrefix(b, p.Default)
			}
		}
		b.WriteByte(']')
	}
}

func (c *Constant) String() string {
	switch c.Type {
	case Null:
		return "NULL"
	case Logical:
		if c.Bool {
			return "TRUE"
		}
		return "FALSE"
	case Integer:
		return strconv.Itoa(c.Int) + "L"
	case Double:
		return FormatDouble(c.Float)
	case Character:
		return strconv.Quote(c.Str)
	}
	return "<invalid>"
}

// FormatDouble formats x so that it reads back as the same double.
func FormatDouble(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Inf"
	case math.IsInf(x, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// QuoteName returns name as it must be written in source: bare when it is a
// syntactic name, otherwise between backticks.
func QuoteName(name string) string {
	if grammar.IsSyntacticName(name) {
		return name
	}
	var b strings.Builder
	b.WriteByte('`')
	for _, c := range name {
		switch c {
		case '`', '\\':
			b.WriteByte('\\')
			b.WriteRune(c)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(c)
		}
	}
	b.WriteByte('`')
	return b.String()
}
