// Copyright © 2026 The rexpr authors

package token

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEOF(t *testing.T) {
	s := NewScanner("test", []byte("xy"))
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.True(t, s.EOF())
	assert.Equal(t, io.EOF, s.ScanRune())
	tok := s.EmitToken(SYMBOL)
	assert.Equal(t, "xy", tok.Text)
	assert.Equal(t, "", s.Text())
}

func TestScannerAcceptSeq(t *testing.T) {
	s := NewScanner("test", []byte("aaab"))
	n := s.AcceptSeq(func(c rune) bool { return c == 'a' })
	assert.Equal(t, 3, n)
	assert.Equal(t, "aaa", s.Text())
	assert.True(t, s.AcceptRune('b'))
	assert.False(t, s.Accept(func(rune) bool { return true }))
	assert.True(t, s.EOF())
}

func TestScannerAcceptString(t *testing.T) {
	s := NewScanner("test", []byte("<<-x"))
	assert.False(t, s.AcceptString("<-"))
	assert.Equal(t, "", s.Text())
	assert.True(t, s.AcceptString("<<-"))
	assert.Equal(t, "<<-", s.Text())
}

func TestScannerLocations(t *testing.T) {
	s := NewScanner("test", []byte("ab\n  cd"))
	s.AcceptSeq(func(c rune) bool { return c != '\n' })
	first := s.EmitToken(SYMBOL)
	s.AcceptRune('\n')
	s.Ignore()
	s.AcceptSeqBlank()
	s.Ignore()
	s.AcceptSeq(func(c rune) bool { return true })
	second := s.EmitToken(SYMBOL)

	assert.Equal(t, "ab", first.Text)
	assert.Equal(t, &Location{File: "test", Pos: 0, Line: 1, Col: 1}, first.Source)
	assert.Equal(t, "cd", second.Text)
	assert.Equal(t, &Location{File: "test", Pos: 5, Line: 2, Col: 3}, second.Source)
}

func TestScannerBlankStopsAtNewline(t *testing.T) {
	s := NewScanner("test", []byte(" \t\nx"))
	assert.Equal(t, 2, s.AcceptSeqBlank())
	r, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, '\n', r)
}

func TestScannerInvalidUTF8(t *testing.T) {
	s := NewScanner("test", []byte{'a', 0xff})
	require.NoError(t, s.ScanRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	err := s.ScanRune()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid utf-8")
	assert.Equal(t, err, s.Err())
}

func TestScannerPeekN(t *testing.T) {
	s := NewScanner("test", []byte("héllo"))
	r, ok := s.PeekN(1)
	assert.True(t, ok)
	assert.Equal(t, 'é', r)
	_, ok = s.PeekN(10)
	assert.False(t, ok)
}
