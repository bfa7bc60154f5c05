// Copyright © 2026 The rexpr authors

package rdparser

import (
	"github.com/luthersystems/rexpr/parser/lexer"
	"github.com/luthersystems/rexpr/parser/token"
)

// TokenStream is an arbitrary sequence of tokens.  Typically a TokenStream
// is a *lexer.Lexer.  When no more tokens can be generated ReadToken returns
// a token with type token.EOF, repeatedly.
type TokenStream interface {
	ReadToken() *token.Token
}

// TokenGenerator implements TokenStream.  The function is called any time a
// TokenSource wants a token.
type TokenGenerator func() *token.Token

// ReadToken implements TokenStream.
func (fn TokenGenerator) ReadToken() *token.Token {
	return fn()
}

// TokenSlice returns a TokenStream over a fixed slice of tokens.  The stream
// ends with an EOF token located after the last token.
func TokenSlice(toks []*token.Token) TokenStream {
	pos := &token.Location{}
	return TokenGenerator(func() *token.Token {
		if len(toks) == 0 {
			return &token.Token{Type: token.EOF, Source: pos}
		}
		tok := toks[0]
		toks = toks[1:]
		if tok.Source != nil {
			pos = tok.Source
		}
		return tok
	})
}

// TokenSource adds lookahead to a TokenStream.  Comment tokens never reach
// the parser; they are collected in Comments so that callers such as lint
// can inspect them.
type TokenSource struct {
	lex      TokenStream
	Token    *token.Token
	peek     []*token.Token
	Comments []*token.Token
}

// NewTokenStreamSource returns a TokenSource reading from stream.
func NewTokenStreamSource(stream TokenStream) *TokenSource {
	return &TokenSource{
		lex: stream,
	}
}

// NewTokenSource returns a TokenSource that lexes tokens from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	return NewTokenStreamSource(lexer.New(scanner))
}

// Peek returns the next token without consuming it.
func (s *TokenSource) Peek() *token.Token {
	return s.PeekAt(0)
}

// PeekAt returns the token i positions ahead of the next one.  Lookahead
// never reads past EOF.
func (s *TokenSource) PeekAt(i int) *token.Token {
	for len(s.peek) <= i {
		if n := len(s.peek); n > 0 && s.peek[n-1].Type == token.EOF {
			return s.peek[n-1]
		}
		tok := s.lex.ReadToken()
		if tok.Type == token.COMMENT {
			s.Comments = append(s.Comments, tok)
			continue
		}
		s.peek = append(s.peek, tok)
	}
	return s.peek[i]
}

// Accept consumes the next token if fn returns true for it.
func (s *TokenSource) Accept(fn func(*token.Token) bool) bool {
	if fn(s.Peek()) {
		s.scan()
		return true
	}
	return false
}

// AcceptType consumes the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek().Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan consumes the next token and stores it in s.Token.  Scan returns false
// at EOF, leaving the EOF token in s.Token.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek()
		return false
	}
	s.scan()
	return true
}

// IsEOF reports whether the stream is exhausted.
func (s *TokenSource) IsEOF() bool {
	return s.Peek().Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek()
	s.peek = s.peek[1:]
}
