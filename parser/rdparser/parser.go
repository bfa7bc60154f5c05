// Copyright © 2026 The rexpr authors

// Package rdparser is a recursive descent parser for rexpr source text.
// Binary operators are parsed by precedence climbing over the table in the
// grammar package.
package rdparser

import (
	"errors"
	"io"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/grammar"
	"github.com/luthersystems/rexpr/parser/token"
)

// ErrUnexpectedEOF is wrapped by the error returned when input ends in the
// middle of an expression.  Interactive callers use it to ask for another
// line.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// context determines whether newlines are significant.
type context uint8

const (
	// newlines end statements
	ctxStatement context = iota
	// inside ( [ [[ and the headers of function, if, for and while
	ctxParen
)

// Parser parses a token stream into expression trees.
type Parser struct {
	src *TokenSource
	ctx []context
}

// NewFromSource returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New returns a Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Comments returns the comment tokens consumed so far.
func (p *Parser) Comments() []*token.Token {
	return p.src.Comments
}

// ParseProgram parses every top-level expression until EOF.
func (p *Parser) ParseProgram() ([]ast.Node, error) {
	var nodes []ast.Node
	for {
		node, err := p.Parse()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
}

// Parse parses the next top-level expression.  Parse returns io.EOF when
// the input holds no further expression.
func (p *Parser) Parse() (ast.Node, error) {
	p.skipSeparators()
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	node, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.endStatement(token.EOF); err != nil {
		return nil, err
	}
	return node, nil
}

// ParseExpression parses a single expression.  Unlike Parse,
// ParseExpression requires an expression to be present.
func (p *Parser) ParseExpression() (ast.Node, error) {
	return p.parseExpr(grammar.PrecLowest)
}

func (p *Parser) parseExpr(minPrec grammar.Precedence) (ast.Node, error) {
	start := p.peek().Source
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Type {
		case token.PAREN_L, token.BRACKET_L, token.DBRACKET_L:
			if grammar.PrecPostfix < minPrec {
				return left, nil
			}
			left, err = p.parsePostfix(left, start)
			if err != nil {
				return nil, err
			}
		case token.OPERATOR:
			op, ok := grammar.Binary(tok.Text)
			if !ok {
				return nil, p.unexpected(tok)
			}
			if op.Prec < minPrec {
				return left, nil
			}
			p.next()
			p.skipNewlines()
			rprec := op.Prec + 1
			if op.Assoc == grammar.AssocRight {
				rprec = op.Prec
			}
			right, err := p.parseExpr(rprec)
			if err != nil {
				return nil, err
			}
			lhs, rhs := left, right
			if op.Swap {
				lhs, rhs = rhs, lhs
			}
			left = &ast.Call{
				Head:   &ast.Symbol{Name: op.Name, Source: tok.Source},
				Args:   ast.Positional(lhs, rhs),
				Source: start,
			}
			if op.Assoc == grammar.AssocNone {
				if next := p.peek(); next.Type == token.OPERATOR {
					if nop, ok := grammar.Binary(next.Text); ok && nop.Prec == op.Prec {
						return nil, p.unexpected(next)
					}
				}
			}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parsePrefix() (ast.Node, error) {
	tok := p.peek()
	switch tok.Type {
	case token.NUMBER, token.INT, token.HEX:
		p.next()
		return parseNumber(tok)
	case token.STRING:
		p.next()
		s, err := unquoteString(tok.Text)
		if err != nil {
			return nil, ast.Errorf(ast.UnparsableText, tok.Source, "%v", err)
		}
		return &ast.Constant{Type: ast.Character, Str: s, Source: tok.Source}, nil
	case token.TRUE, token.FALSE:
		p.next()
		return &ast.Constant{Type: ast.Logical, Bool: tok.Type == token.TRUE, Source: tok.Source}, nil
	case token.NULL:
		p.next()
		return &ast.Constant{Type: ast.Null, Source: tok.Source}, nil
	case token.INF, token.NAN:
		p.next()
		return parseNumber(tok)
	case token.SYMBOL:
		p.next()
		return &ast.Symbol{Name: tok.Text, Source: tok.Source}, nil
	case token.SYMBOL_QUOTED:
		p.next()
		return &ast.Symbol{Name: unquoteName(tok.Text), Source: tok.Source}, nil
	case token.PAREN_L:
		return p.parseParen()
	case token.BRACE_L:
		return p.parseBlock()
	case token.OPERATOR:
		return p.parseUnary()
	case token.FUNCTION:
		return p.parseFunction()
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.REPEAT:
		p.next()
		p.skipNewlines()
		body, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		return p.call("repeat", tok, body), nil
	case token.BREAK, token.NEXT:
		p.next()
		return p.call(tok.Text, tok), nil
	default:
		return nil, p.unexpected(tok)
	}
}

func (p *Parser) parseUnary() (ast.Node, error) {
	tok := p.peek()
	op, ok := grammar.Unary(tok.Text)
	if !ok {
		return nil, p.unexpected(tok)
	}
	p.next()
	p.skipNewlines()
	operand, err := p.parseExpr(op.Prec)
	if err != nil {
		return nil, err
	}
	// Negative numeric literals are constants, not calls to `-`.
	if c, ok := operand.(*ast.Constant); ok && op.Name == "-" {
		switch c.Type {
		case ast.Integer:
			return &ast.Constant{Type: ast.Integer, Int: -c.Int, Source: tok.Source}, nil
		case ast.Double:
			return &ast.Constant{Type: ast.Double, Float: -c.Float, Source: tok.Source}, nil
		}
	}
	return p.call(op.Name, tok, operand), nil
}

func (p *Parser) parseParen() (ast.Node, error) {
	open := p.next()
	p.push(ctxParen)
	inner, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PAREN_R); err != nil {
		return nil, err
	}
	p.pop()
	return p.call("(", open, inner), nil
}

func (p *Parser) parseBlock() (ast.Node, error) {
	open := p.next()
	p.push(ctxStatement)
	var stmts []ast.Node
	for {
		p.skipSeparators()
		if p.peek().Type == token.BRACE_R {
			p.next()
			break
		}
		stmt, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if err := p.endStatement(token.BRACE_R); err != nil {
			return nil, err
		}
	}
	p.pop()
	return p.call("{", open, stmts...), nil
}

func (p *Parser) parsePostfix(left ast.Node, start *token.Location) (ast.Node, error) {
	open := p.next()
	switch open.Type {
	case token.PAREN_L:
		args, err := p.parseArgs(token.PAREN_R, false)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Head: left, Args: args, Source: start}, nil
	default:
		args, err := p.parseArgs(token.BRACKET_R, open.Type == token.DBRACKET_L)
		if err != nil {
			return nil, err
		}
		args = append([]ast.Arg{{Value: left}}, args...)
		name := "["
		if open.Type == token.DBRACKET_L {
			name = "[["
		}
		return &ast.Call{
			Head:   &ast.Symbol{Name: name, Source: open.Source},
			Args:   args,
			Source: start,
		}, nil
	}
}

// parseArgs parses call arguments after the opening bracket has been
// consumed.  A [[ call is closed by two ] tokens.
func (p *Parser) parseArgs(closer token.Type, double bool) ([]ast.Arg, error) {
	p.push(ctxParen)
	var args []ast.Arg
	if p.peek().Type != closer {
		for {
			arg, err := p.parseArg(closer)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != token.COMMA {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(closer); err != nil {
		return nil, err
	}
	if double {
		if _, err := p.expect(token.BRACKET_R); err != nil {
			return nil, err
		}
	}
	p.pop()
	return args, nil
}

func (p *Parser) parseArg(closer token.Type) (ast.Arg, error) {
	var arg ast.Arg
	tok := p.peek()
	switch tok.Type {
	case token.SYMBOL, token.SYMBOL_QUOTED, token.STRING, token.NULL:
		if eq := p.peekAt(1); eq.Type == token.OPERATOR && eq.Text == "=" {
			name, err := argName(tok)
			if err != nil {
				return arg, err
			}
			arg.Name = name
			p.next()
			p.next()
			tok = p.peek()
		}
	}
	if tok.Type == token.COMMA || tok.Type == closer {
		return arg, ast.Errorf(ast.UnparsableText, tok.Source, "empty argument in call")
	}
	value, err := p.parseExpr(grammar.PrecLeftAssign)
	if err != nil {
		return arg, err
	}
	arg.Value = value
	return arg, nil
}

func argName(tok *token.Token) (string, error) {
	switch tok.Type {
	case token.SYMBOL_QUOTED:
		return unquoteName(tok.Text), nil
	case token.STRING:
		s, err := unquoteString(tok.Text)
		if err != nil {
			return "", ast.Errorf(ast.UnparsableText, tok.Source, "%v", err)
		}
		return s, nil
	default:
		return tok.Text, nil
	}
}

func (p *Parser) parseFunction() (ast.Node, error) {
	fn := p.next()
	open, err := p.expect(token.PAREN_L)
	if err != nil {
		return nil, err
	}
	p.push(ctxParen)
	params := &ast.ParamList{Source: open.Source}
	seen := make(map[string]bool)
	for p.peek().Type != token.PAREN_R {
		tok := p.peek()
		var name string
		switch tok.Type {
		case token.SYMBOL:
			name = tok.Text
		case token.SYMBOL_QUOTED:
			name = unquoteName(tok.Text)
		default:
			return nil, p.unexpected(tok)
		}
		if seen[name] {
			return nil, ast.Errorf(ast.UnparsableText, tok.Source, "repeated formal argument '%s'", name)
		}
		seen[name] = true
		p.next()
		param := ast.Param{Name: name, Default: &ast.Missing{Source: tok.Source}}
		if eq := p.peek(); eq.Type == token.OPERATOR && eq.Text == "=" {
			p.next()
			if next := p.peek(); next.Type == token.COMMA || next.Type == token.PAREN_R {
				return nil, ast.Errorf(ast.UnparsableText, next.Source, "empty default for formal argument '%s'", name)
			}
			def, err := p.parseExpr(grammar.PrecLeftAssign)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		params.Params = append(params.Params, param)
		if p.peek().Type != token.COMMA {
			break
		}
		p.next()
	}
	if _, err := p.expect(token.PAREN_R); err != nil {
		return nil, err
	}
	p.pop()
	p.skipNewlines()
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return p.call("function", fn, params, body), nil
}

// parseCondition parses the parenthesized header of if and while.
func (p *Parser) parseCondition() (ast.Node, error) {
	if _, err := p.expect(token.PAREN_L); err != nil {
		return nil, err
	}
	p.push(ctxParen)
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PAREN_R); err != nil {
		return nil, err
	}
	p.pop()
	p.skipNewlines()
	return cond, nil
}

func (p *Parser) parseIf() (ast.Node, error) {
	kw := p.next()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.acceptElse() {
		return p.call("if", kw, cond, then), nil
	}
	p.skipNewlines()
	els, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return p.call("if", kw, cond, then, els), nil
}

// acceptElse consumes an else keyword that continues an if.  At top level
// the else must be on the same line; inside braces and parentheses it may
// follow on a later line.
func (p *Parser) acceptElse() bool {
	i := 0
	if len(p.ctx) > 0 {
		for p.src.PeekAt(i).Type == token.NEWLINE {
			i++
		}
	}
	if p.src.PeekAt(i).Type != token.ELSE {
		return false
	}
	for ; i >= 0; i-- {
		p.src.scan()
	}
	return true
}

func (p *Parser) parseFor() (ast.Node, error) {
	kw := p.next()
	if _, err := p.expect(token.PAREN_L); err != nil {
		return nil, err
	}
	p.push(ctxParen)
	tok := p.peek()
	var v ast.Node
	switch tok.Type {
	case token.SYMBOL:
		v = &ast.Symbol{Name: tok.Text, Source: tok.Source}
	case token.SYMBOL_QUOTED:
		v = &ast.Symbol{Name: unquoteName(tok.Text), Source: tok.Source}
	default:
		return nil, p.unexpected(tok)
	}
	p.next()
	if _, err := p.expect(token.IN); err != nil {
		return nil, err
	}
	seq, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.PAREN_R); err != nil {
		return nil, err
	}
	p.pop()
	p.skipNewlines()
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return p.call("for", kw, v, seq, body), nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	kw := p.next()
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return p.call("while", kw, cond, body), nil
}

func (p *Parser) call(name string, tok *token.Token, args ...ast.Node) *ast.Call {
	return &ast.Call{
		Head:   &ast.Symbol{Name: name, Source: tok.Source},
		Args:   ast.Positional(args...),
		Source: tok.Source,
	}
}

func (p *Parser) push(c context) {
	p.ctx = append(p.ctx, c)
}

func (p *Parser) pop() {
	p.ctx = p.ctx[:len(p.ctx)-1]
}

func (p *Parser) inParens() bool {
	return len(p.ctx) > 0 && p.ctx[len(p.ctx)-1] == ctxParen
}

// peek returns the next significant token.  Newlines are insignificant
// inside parentheses and brackets.
func (p *Parser) peek() *token.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(i int) *token.Token {
	skip := p.inParens()
	for j := 0; ; j++ {
		tok := p.src.PeekAt(j)
		if skip && tok.Type == token.NEWLINE {
			continue
		}
		if i == 0 || tok.Type == token.EOF {
			return tok
		}
		i--
	}
}

// next consumes and returns the next significant token.
func (p *Parser) next() *token.Token {
	if p.inParens() {
		p.skipNewlines()
	}
	p.src.scan()
	return p.src.Token
}

func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	tok := p.peek()
	if tok.Type != typ {
		return nil, p.unexpected(tok)
	}
	return p.next(), nil
}

func (p *Parser) skipNewlines() {
	for p.src.AcceptType(token.NEWLINE) {
	}
}

func (p *Parser) skipSeparators() {
	for p.src.AcceptType(token.NEWLINE, token.SEMICOLON) {
	}
}

// endStatement consumes the separator after a statement.  The closer of
// the enclosing block is left for the caller.
func (p *Parser) endStatement(closer token.Type) error {
	tok := p.src.Peek()
	switch tok.Type {
	case token.NEWLINE, token.SEMICOLON:
		p.src.scan()
		return nil
	case token.EOF:
		if closer == token.EOF {
			return nil
		}
	case closer:
		return nil
	}
	return p.unexpected(tok)
}

func (p *Parser) unexpected(tok *token.Token) error {
	switch tok.Type {
	case token.EOF:
		return &ast.Error{Kind: ast.UnparsableText, Source: tok.Source, Err: ErrUnexpectedEOF}
	case token.ERROR, token.INVALID:
		return ast.Errorf(ast.UnparsableText, tok.Source, "%s", tok.Text)
	}
	return ast.Errorf(ast.UnparsableText, tok.Source, "unexpected %s", describe(tok))
}

func describe(tok *token.Token) string {
	switch tok.Type {
	case token.SYMBOL, token.SYMBOL_QUOTED:
		return "symbol"
	case token.NUMBER, token.INT, token.HEX:
		return "numeric constant"
	case token.STRING:
		return "string constant"
	case token.NEWLINE:
		return "end of line"
	default:
		return "'" + tok.Text + "'"
	}
}
