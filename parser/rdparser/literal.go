// Copyright © 2026 The rexpr authors

package rdparser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/luthersystems/rexpr/ast"
	"github.com/luthersystems/rexpr/parser/token"
)

// maxExactInt is the largest integer a double represents exactly.
const maxExactInt = 1 << 53

func parseNumber(tok *token.Token) (ast.Node, error) {
	c := &ast.Constant{Type: ast.Double, Source: tok.Source}
	text := tok.Text
	switch tok.Type {
	case token.INF:
		c.Float = math.Inf(1)
	case token.NAN:
		c.Float = math.NaN()
	case token.HEX:
		c.Float = parseHex(text[2:])
	case token.NUMBER:
		x, err := parseFloat(text)
		if err != nil {
			return nil, ast.Errorf(ast.UnparsableText, tok.Source, "invalid numeric literal %q", text)
		}
		c.Float = x
	case token.INT:
		text = strings.TrimSuffix(text, "L")
		if n, ok := parseExactInt(text); ok {
			c.Type = ast.Integer
			c.Int = n
			return c, nil
		}
		var x float64
		if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
			x = parseHex(text[2:])
		} else {
			var err error
			x, err = parseFloat(text)
			if err != nil {
				return nil, ast.Errorf(ast.UnparsableText, tok.Source, "invalid numeric literal %q", tok.Text)
			}
		}
		// A non-integral or huge value with an L suffix stays a double.
		c.Float = x
		if x == math.Trunc(x) && math.Abs(x) <= maxExactInt {
			c.Type = ast.Integer
			c.Int = int(x)
			c.Float = 0
		}
	default:
		return nil, ast.Errorf(ast.UnparsableText, tok.Source, "unexpected %s", describe(tok))
	}
	return c, nil
}

// parseExactInt parses a decimal or hex integer literal without going
// through float64.
func parseExactInt(text string) (int, bool) {
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text, base = text[2:], 16
	}
	n, err := strconv.ParseInt(text, base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func parseFloat(text string) (float64, error) {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return x, nil
		}
		return 0, err
	}
	return x, nil
}

func parseHex(digits string) float64 {
	var x float64
	for _, c := range digits {
		x = x*16 + float64(hexValue(c))
	}
	return x
}

func hexValue(c rune) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// unquoteString decodes a single or double quoted string literal.
func unquoteString(text string) (string, error) {
	if len(text) < 2 {
		return "", fmt.Errorf("malformed string literal %s", text)
	}
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("unterminated escape in %s", text)
		}
		e := body[i]
		i++
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '\\', '"', '\'', '`', ' ', '\n':
			b.WriteByte(e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := int(e - '0')
			for k := 0; k < 2 && i < len(body) && '0' <= body[i] && body[i] <= '7'; k++ {
				n = n*8 + int(body[i]-'0')
				i++
			}
			b.WriteByte(byte(n))
		case 'x':
			n, width := readHex(body[i:], 2)
			if width == 0 {
				return "", fmt.Errorf("'\\x' used without hex digits in %s", text)
			}
			i += width
			b.WriteByte(byte(n))
		case 'u', 'U':
			limit := 4
			if e == 'U' {
				limit = 8
			}
			var n, width int
			if i < len(body) && body[i] == '{' {
				end := strings.IndexByte(body[i:], '}')
				if end < 0 {
					return "", fmt.Errorf("invalid \\%c{xxxx} sequence in %s", e, text)
				}
				n, width = readHex(body[i+1:i+end], limit)
				if width != end-1 {
					return "", fmt.Errorf("invalid \\%c{xxxx} sequence in %s", e, text)
				}
				i += end + 1
			} else {
				n, width = readHex(body[i:], limit)
				i += width
			}
			if width == 0 || !utf8.ValidRune(rune(n)) {
				return "", fmt.Errorf("invalid \\%c sequence in %s", e, text)
			}
			b.WriteRune(rune(n))
		default:
			return "", fmt.Errorf("'\\%c' is an unrecognized escape in character string %s", e, text)
		}
	}
	return b.String(), nil
}

// readHex reads up to limit hex digits from s.
func readHex(s string, limit int) (n, width int) {
	for width < limit && width < len(s) {
		v := hexValue(rune(s[width]))
		if v < 0 {
			break
		}
		n = n*16 + v
		width++
	}
	return n, width
}

// unquoteName decodes a backtick quoted name.
func unquoteName(text string) string {
	body := text[1 : len(text)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			c = body[i]
			if c == 'n' {
				c = '\n'
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
