// Copyright © 2026 The rexpr authors

package token

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from source text.  The entire
// text is held in memory; tokens are slices of it.
type Scanner struct {
	file string
	src  []byte

	start     int // start of the current token
	startLine int
	startCol  int

	pos  int // index of c in src
	next int // index of the rune following c
	line int // line of the rune at next
	col  int // column of the rune at next
	c    rune
	err  error
}

// NewScanner initializes and returns a new Scanner over src.  The file name
// is only used to label token locations.
func NewScanner(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.next])
}

// Rune returns the last rune that was scanned.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned.  Peek returns a false second
// value at EOF or when the next bytes are not valid utf-8.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.src) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// PeekN returns the rune n positions past the next one (PeekN(0) == Peek()).
func (s *Scanner) PeekN(n int) (rune, bool) {
	i := s.next
	for {
		if i >= len(s.src) {
			return 0, false
		}
		c, size := utf8.DecodeRune(s.src[i:])
		if c == utf8.RuneError && size == 1 {
			return utf8.RuneError, false
		}
		if n == 0 {
			return c, true
		}
		n--
		i += size
	}
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  ScanRune returns io.EOF at the end of the input.
func (s *Scanner) ScanRune() error {
	if s.err != nil {
		return s.err
	}
	if s.next >= len(s.src) {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		s.err = fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
		return s.err
	}
	s.c = c
	s.pos = s.next
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// Err returns the decoding error that stopped the scanner, if any.
func (s *Scanner) Err() error {
	return s.err
}

// EOF returns true when every byte of the input has been scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

func (s *Scanner) Accept(fn func(rune) bool) bool {
	peek, ok := s.Peek()
	if !ok {
		return false
	}
	if fn(peek) {
		return s.ScanRune() == nil
	}
	return false
}

func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

func (s *Scanner) AcceptDigit() bool {
	return s.Accept(func(r rune) bool { return '0' <= r && r <= '9' })
}

func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

func (s *Scanner) AcceptSeqDigit() int {
	var n int
	for s.AcceptDigit() {
		n++
	}
	return n
}

// AcceptSeqBlank accepts horizontal whitespace.  Newlines are significant to
// the grammar and are never consumed by AcceptSeqBlank.
func (s *Scanner) AcceptSeqBlank() int {
	return s.AcceptSeq(func(r rune) bool { return r != '\n' && unicode.IsSpace(r) })
}

// AcceptString accepts literal in its entirety or not at all.
func (s *Scanner) AcceptString(literal string) bool {
	i := 0
	for _, c := range literal {
		r, ok := s.PeekN(i)
		if !ok || r != c {
			return false
		}
		i++
	}
	for range literal {
		if s.ScanRune() != nil {
			return false
		}
	}
	return true
}

// LocStart returns a Location referencing the beginning of the current token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the next rune to be scanned.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}
