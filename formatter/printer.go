// Copyright © 2026 The rexpr authors

package formatter

import (
	"strings"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/astutil"
	"github.com/luthersystems/rexpr/parser/grammar"
)

// precPrimary is the binding of closed forms: names, constants, calls,
// brackets and braces.
const precPrimary grammar.Precedence = 1 << 16

// form is a rendered expression together with what the parser needs to
// know to read it back in context.
type form struct {
	text string
	// prec is the binding power of the outermost construct.
	prec grammar.Precedence
	// open is the lowest precedence of a prefix construct left open at the
	// right end of the text.  A following binary operator binding at least
	// as loosely would be captured by it.
	open grammar.Precedence
	// prefix is set when the outermost construct is a prefix operator or a
	// keyword form, which the parser accepts in any operand position.
	prefix bool
	// openIf is set when the text ends with an if that has no else.
	openIf bool
}

func primary(text string) form {
	return form{text: text, prec: precPrimary, open: precPrimary}
}

type printer struct {
	cfg   *Config
	depth int
}

func newPrinter(cfg *Config) *printer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &printer{cfg: cfg}
}

func (p *printer) expr(node ast.Node) form {
	return astutil.Walk[form](node, p)
}

func (p *printer) VisitConstant(c *ast.Constant) form {
	if c.IsNumber() && (c.Number() < 0 || (c.Type == ast.Double && strings.HasPrefix(c.String(), "-"))) {
		// reads back as a folded unary minus
		return form{text: c.String(), prec: grammar.PrecUnary, open: grammar.PrecUnary, prefix: true}
	}
	return primary(c.String())
}

func (p *printer) VisitSymbol(s *ast.Symbol) form {
	return primary(ast.QuoteName(s.Name))
}

func (p *printer) VisitMissing(*ast.Missing) form {
	return primary("")
}

func (p *printer) VisitParamList(l *ast.ParamList) form {
	return primary("(" + p.params(l) + ")")
}

func (p *printer) VisitCall(c *ast.Call) form {
	if f, ok := p.syntax(c); ok {
		return f
	}
	return p.call(c)
}

// syntax renders calls that have surface syntax of their own.  It returns
// false when c must be written as an ordinary call.
func (p *printer) syntax(c *ast.Call) (form, bool) {
	name := c.HeadName()
	if name == "" {
		return form{}, false
	}
	n := len(c.Args)
	switch name {
	case "(":
		if n == 1 && positional(c) {
			return primary("(" + p.expr(c.Args[0].Value).text + ")"), true
		}
	case "{":
		if positional(c) {
			return p.block(c), true
		}
	case "[", "[[":
		if n >= 1 && c.Args[0].Name == "" {
			return p.index(c, name), true
		}
	case "if":
		if (n == 2 || n == 3) && positional(c) {
			return p.ifElse(c), true
		}
	case "for":
		if _, ok := c.Args[0].Value.(*ast.Symbol); ok && n == 3 && positional(c) {
			return p.forLoop(c), true
		}
	case "while":
		if n == 2 && positional(c) {
			cond := p.expr(c.Args[0].Value)
			return p.keyword("while ("+cond.text+") ", c.Args[1].Value), true
		}
	case "repeat":
		if n == 1 && positional(c) {
			return p.keyword("repeat ", c.Args[0].Value), true
		}
	case "break", "next":
		if n == 0 {
			return primary(name), true
		}
	case "function":
		if isFunction(c) {
			params := c.Args[0].Value.(*ast.ParamList)
			return p.keyword("function("+p.params(params)+") ", c.Args[1].Value), true
		}
	default:
		if !positional(c) {
			return form{}, false
		}
		if op, ok := grammar.BinaryByName(name); ok && n == 2 {
			return p.binary(op, c)
		}
		if op, ok := grammar.Unary(name); ok && n == 1 {
			return p.unary(op, c)
		}
	}
	return form{}, false
}

func (p *printer) binary(op grammar.Operator, c *ast.Call) (form, bool) {
	lnode, rnode := c.Args[0].Value, c.Args[1].Value
	switch op.Name {
	case "$", "@":
		if !isName(rnode) {
			return form{}, false
		}
	case "::", ":::":
		if !isName(lnode) || !isName(rnode) {
			return form{}, false
		}
	}
	left, right := p.expr(lnode), p.expr(rnode)
	leftOK := (left.prec > op.Prec || (left.prec == op.Prec && op.Assoc == grammar.AssocLeft)) &&
		left.open > op.Prec
	rightOK := right.prefix || right.prec > op.Prec ||
		(right.prec == op.Prec && op.Assoc == grammar.AssocRight)
	if !leftOK || !rightOK {
		return form{}, false
	}
	sep := " " + op.Text + " "
	switch op.Name {
	case "$", "@", "::", ":::", ":", "^":
		sep = op.Text
	}
	return form{
		text:   left.text + sep + right.text,
		prec:   op.Prec,
		open:   right.open,
		openIf: right.openIf,
	}, true
}

func (p *printer) unary(op grammar.Operator, c *ast.Call) (form, bool) {
	operand := c.Args[0].Value
	if k, ok := operand.(*ast.Constant); ok && k.IsNumber() && op.Name == "-" {
		// -1 would read back as a negative constant
		return form{}, false
	}
	x := p.expr(operand)
	if !x.prefix && x.prec < op.Prec {
		return form{}, false
	}
	open := op.Prec
	if x.open < open {
		open = x.open
	}
	return form{
		text:   op.Text + x.text,
		prec:   op.Prec,
		open:   open,
		prefix: true,
		openIf: x.openIf,
	}, true
}

// keyword renders a form that starts with a keyword and ends with an
// expression extending as far right as possible.
func (p *printer) keyword(header string, body ast.Node) form {
	b := p.expr(body)
	return form{
		text:   header + b.text,
		prec:   grammar.PrecLowest,
		open:   grammar.PrecLowest,
		prefix: true,
		openIf: b.openIf,
	}
}

func (p *printer) ifElse(c *ast.Call) form {
	cond := p.expr(c.Args[0].Value)
	header := "if (" + cond.text + ") "
	if len(c.Args) == 2 {
		f := p.keyword(header, c.Args[1].Value)
		f.openIf = true
		return f
	}
	then := p.expr(c.Args[1].Value)
	thenText := then.text
	if then.openIf {
		// the else would bind to the inner if
		if !p.closable(c.Args[1].Value, then) {
			return p.call(c)
		}
		thenText = p.closed(c.Args[1].Value, then)
	}
	return p.keyword(header+thenText+" else ", c.Args[2].Value)
}

func (p *printer) forLoop(c *ast.Call) form {
	v := c.Args[0].Value.(*ast.Symbol)
	seq := p.expr(c.Args[1].Value)
	return p.keyword("for ("+ast.QuoteName(v.Name)+" in "+seq.text+") ", c.Args[2].Value)
}

func (p *printer) block(c *ast.Call) form {
	if len(c.Args) == 0 {
		return primary("{}")
	}
	p.depth++
	stmts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		stmts[i] = p.expr(arg.Value).text
	}
	p.depth--
	if p.cfg.InlineBlocks {
		return primary("{ " + strings.Join(stmts, "; ") + " }")
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, stmt := range stmts {
		b.WriteString(p.indent(p.depth + 1))
		b.WriteString(stmt)
		b.WriteByte('\n')
	}
	b.WriteString(p.indent(p.depth))
	b.WriteString("}")
	return primary(b.String())
}

func (p *printer) indent(depth int) string {
	size := p.cfg.IndentSize
	if size < 0 {
		size = 0
	}
	return strings.Repeat(" ", depth*size)
}

func (p *printer) index(c *ast.Call, name string) form {
	obj := c.Args[0].Value
	of := p.expr(obj)
	if !p.closable(obj, of) {
		return p.call(c)
	}
	text := p.head(obj, of)
	closer := "]"
	if name == "[[" {
		closer = "]]"
	}
	return primary(text + name + p.args(c.Args[1:]) + closer)
}

// call renders c in prefix form: head(args).
func (p *printer) call(c *ast.Call) form {
	head := p.head(c.Head, p.expr(c.Head))
	return primary(head + "(" + p.args(c.Args) + ")")
}

// head renders the operand of a postfix call or index.
func (p *printer) head(node ast.Node, f form) string {
	if f.prec > grammar.PrecPostfix && f.open > grammar.PrecPostfix {
		return f.text
	}
	return p.closed(node, f)
}

// closable reports whether node can be written as the operand of a postfix
// call or index without parentheses that would read back as a ( call.
func (p *printer) closable(node ast.Node, f form) bool {
	if f.prec > grammar.PrecPostfix && f.open > grammar.PrecPostfix {
		return true
	}
	c, ok := node.(*ast.Call)
	return ok && !isFunction(c)
}

// closed renders node as a closed form.  Calls switch to prefix form; the
// remaining cases, a function definition or a negative number, have no
// closed rendering and are parenthesized.
func (p *printer) closed(node ast.Node, f form) string {
	if c, ok := node.(*ast.Call); ok && !isFunction(c) {
		return p.call(c).text
	}
	return "(" + f.text + ")"
}

func (p *printer) args(args []ast.Arg) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		value := p.operand(arg.Value, grammar.PrecLeftAssign)
		if arg.Name != "" {
			value = ast.QuoteName(arg.Name) + " = " + value
		}
		parts[i] = value
	}
	return strings.Join(parts, ", ")
}

func (p *printer) params(l *ast.ParamList) string {
	parts := make([]string, len(l.Params))
	for i, param := range l.Params {
		parts[i] = ast.QuoteName(param.Name)
		if param.HasDefault() {
			parts[i] += " = " + p.operand(param.Default, grammar.PrecLeftAssign)
		}
	}
	return strings.Join(parts, ", ")
}

// operand renders node where the parser reads an expression binding at
// least as tightly as minPrec, such as a call argument.
func (p *printer) operand(node ast.Node, minPrec grammar.Precedence) string {
	f := p.expr(node)
	if f.prefix || f.prec >= minPrec {
		return f.text
	}
	return p.closed(node, f)
}

func positional(c *ast.Call) bool {
	for _, arg := range c.Args {
		if arg.Name != "" {
			return false
		}
	}
	return true
}

func isFunction(c *ast.Call) bool {
	if c.HeadName() != "function" || len(c.Args) != 2 || !positional(c) {
		return false
	}
	_, ok := c.Args[0].Value.(*ast.ParamList)
	return ok
}

// isName reports whether node can follow $ or @.
func isName(node ast.Node) bool {
	switch n := node.(type) {
	case *ast.Symbol:
		return true
	case *ast.Constant:
		return n.Type == ast.Character
	}
	return false
}
