// Copyright © 2026 The rexpr authors

// Package lexer splits rexpr source text into tokens.
package lexer

import (
	"errors"
	"fmt"

	"github.com/luthersystems/rexpr/parser/grammar"
	"github.com/luthersystems/rexpr/parser/token"
)

type Lexer struct {
	scanner   *token.Scanner
	operators []string
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner:   s,
		operators: grammar.OperatorTexts(),
	}
}

// Tokenize reads every token from src, stopping at EOF.  Comment and newline
// tokens are included.  The first ERROR or INVALID token is returned as an
// error carrying its location.
func Tokenize(name string, src []byte) ([]*token.Token, error) {
	lex := New(token.NewScanner(name, src))
	var toks []*token.Token
	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ERROR, token.INVALID:
			return toks, &token.LocationError{Err: errors.New(tok.Text), Source: tok.Source}
		}
		toks = append(toks, tok)
	}
}

// ReadToken returns the next token.  At the end of input ReadToken returns
// an EOF token, repeatedly.
func (lex *Lexer) ReadToken() *token.Token {
	lex.scanner.AcceptSeqBlank()
	lex.scanner.Ignore()
	if lex.scanner.EOF() {
		return lex.scanner.EmitToken(token.EOF)
	}
	c, ok := lex.scanner.Peek()
	if !ok {
		_ = lex.scanner.ScanRune()
		return lex.errorf("%v", lex.scanner.Err())
	}
	switch {
	case c == '\n':
		return lex.charToken(token.NEWLINE)
	case c == ';':
		return lex.charToken(token.SEMICOLON)
	case c == ',':
		return lex.charToken(token.COMMA)
	case c == '(':
		return lex.charToken(token.PAREN_L)
	case c == ')':
		return lex.charToken(token.PAREN_R)
	case c == '{':
		return lex.charToken(token.BRACE_L)
	case c == '}':
		return lex.charToken(token.BRACE_R)
	case c == '[':
		if lex.scanner.AcceptString("[[") {
			return lex.scanner.EmitToken(token.DBRACKET_L)
		}
		return lex.charToken(token.BRACKET_L)
	case c == ']':
		return lex.charToken(token.BRACKET_R)
	case c == '#':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.scanner.EmitToken(token.COMMENT)
	case c == '"' || c == '\'':
		return lex.readString(c)
	case c == '`':
		return lex.readQuotedSymbol()
	case isDigit(c):
		return lex.readNumber()
	case c == '.':
		if next, ok := lex.scanner.PeekN(1); ok && isDigit(next) {
			return lex.readNumber()
		}
		return lex.readSymbol()
	case grammar.IsNameStart(c):
		return lex.readSymbol()
	case c == '%':
		return lex.readSpecial()
	}
	for _, op := range lex.operators {
		if lex.scanner.AcceptString(op) {
			return lex.scanner.EmitToken(token.OPERATOR)
		}
	}
	_ = lex.scanner.ScanRune()
	return lex.emit(token.INVALID, fmt.Sprintf("unexpected text starting with %q", c))
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	_ = lex.scanner.ScanRune()
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}

// readString scans a quoted string.  Escape sequences are validated by the
// parser; the lexer only needs to find the closing quote.
func (lex *Lexer) readString(quote rune) *token.Token {
	_ = lex.scanner.ScanRune()
	for {
		if !lex.scanner.Accept(func(c rune) bool { return true }) {
			if lex.scanner.Err() != nil {
				return lex.errorf("%v", lex.scanner.Err())
			}
			return lex.errorf("unterminated string literal")
		}
		switch lex.scanner.Rune() {
		case quote:
			return lex.scanner.EmitToken(token.STRING)
		case '\\':
			if !lex.scanner.Accept(func(c rune) bool { return true }) {
				return lex.errorf("unterminated string literal")
			}
		}
	}
}

func (lex *Lexer) readQuotedSymbol() *token.Token {
	_ = lex.scanner.ScanRune()
	for {
		if !lex.scanner.Accept(func(c rune) bool { return c != '\n' }) {
			return lex.errorf("unterminated backtick name")
		}
		switch lex.scanner.Rune() {
		case '`':
			tok := lex.scanner.EmitToken(token.SYMBOL_QUOTED)
			if tok.Text == "``" {
				tok.Type = token.ERROR
				tok.Text = "attempt to use zero-length variable name"
			}
			return tok
		case '\\':
			if !lex.scanner.Accept(func(c rune) bool { return c != '\n' }) {
				return lex.errorf("unterminated backtick name")
			}
		}
	}
}

func (lex *Lexer) readSymbol() *token.Token {
	lex.scanner.AcceptSeq(grammar.IsNameRune)
	tok := lex.scanner.EmitToken(token.SYMBOL)
	if typ, ok := token.Keywords[tok.Text]; ok {
		tok.Type = typ
	}
	return tok
}

func (lex *Lexer) readSpecial() *token.Token {
	_ = lex.scanner.ScanRune()
	lex.scanner.AcceptSeq(func(c rune) bool { return c != '%' && c != '\n' })
	if !lex.scanner.AcceptRune('%') {
		return lex.errorf("unterminated %%operator%%")
	}
	return lex.scanner.EmitToken(token.OPERATOR)
}

func (lex *Lexer) readNumber() *token.Token {
	if lex.scanner.AcceptString("0x") || lex.scanner.AcceptString("0X") {
		if lex.scanner.AcceptSeq(isHexDigit) == 0 {
			return lex.errorf("invalid hexadecimal literal %q", lex.scanner.Text())
		}
		if lex.scanner.AcceptRune('L') {
			return lex.checkNumberEnd(token.INT)
		}
		return lex.checkNumberEnd(token.HEX)
	}
	digits := lex.scanner.AcceptSeqDigit()
	if lex.scanner.AcceptRune('.') {
		digits += lex.scanner.AcceptSeqDigit()
	}
	if digits == 0 {
		return lex.errorf("invalid numeric literal %q", lex.scanner.Text())
	}
	if lex.scanner.AcceptAny("eE") {
		lex.scanner.AcceptAny("+-")
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.errorf("invalid floating point literal starting: %v", lex.scanner.Text())
		}
	}
	if lex.scanner.AcceptRune('L') {
		return lex.checkNumberEnd(token.INT)
	}
	return lex.checkNumberEnd(token.NUMBER)
}

// checkNumberEnd rejects numbers that run straight into a name, like 1x.
func (lex *Lexer) checkNumberEnd(typ token.Type) *token.Token {
	if c, ok := lex.scanner.Peek(); ok && grammar.IsNameRune(c) {
		_ = lex.scanner.ScanRune()
		return lex.errorf("unexpected symbol in numeric literal %q", lex.scanner.Text())
	}
	return lex.scanner.EmitToken(typ)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
