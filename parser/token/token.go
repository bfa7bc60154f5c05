// Copyright © 2026 The rexpr authors

package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Text == "" {
		return tok.Type.String()
	}
	return fmt.Sprintf("%s %q", tok.Type, tok.Text)
}

type Type uint

// Type constants used by the rexpr lexer and parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	NEWLINE
	SEMICOLON
	COMMENT

	// Atomic expressions & literals
	SYMBOL
	SYMBOL_QUOTED // `backtick name`
	NUMBER
	INT // 5L
	HEX
	STRING
	TRUE
	FALSE
	NULL
	INF
	NAN

	// Keywords
	FUNCTION
	IF
	ELSE
	FOR
	IN
	WHILE
	REPEAT
	BREAK
	NEXT

	// Operators; the text of an OPERATOR token names it in the grammar table.
	OPERATOR

	// Delimiters
	COMMA
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R
	BRACKET_L
	BRACKET_R
	DBRACKET_L // [[

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:       "invalid",
		ERROR:         "error",
		EOF:           "EOF",
		NEWLINE:       "newline",
		SEMICOLON:     ";",
		COMMENT:       "#",
		SYMBOL:        "symbol",
		SYMBOL_QUOTED: "quoted-symbol",
		NUMBER:        "number",
		INT:           "integer",
		HEX:           "hex",
		STRING:        "string",
		TRUE:          "TRUE",
		FALSE:         "FALSE",
		NULL:          "NULL",
		INF:           "Inf",
		NAN:           "NaN",
		FUNCTION:      "function",
		IF:            "if",
		ELSE:          "else",
		FOR:           "for",
		IN:            "in",
		WHILE:         "while",
		REPEAT:        "repeat",
		BREAK:         "break",
		NEXT:          "next",
		OPERATOR:      "operator",
		COMMA:         ",",
		PAREN_L:       "(",
		PAREN_R:       ")",
		BRACE_L:       "{",
		BRACE_R:       "}",
		BRACKET_L:     "[",
		BRACKET_R:     "]",
		DBRACKET_L:    "[[",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]Type{
	"TRUE":     TRUE,
	"FALSE":    FALSE,
	"NULL":     NULL,
	"Inf":      INF,
	"NaN":      NAN,
	"function": FUNCTION,
	"if":       IF,
	"else":     ELSE,
	"for":      FOR,
	"in":       IN,
	"while":    WHILE,
	"repeat":   REPEAT,
	"break":    BREAK,
	"next":     NEXT,
}

// IsKeyword reports whether name is a reserved word that cannot be used as
// a bare symbol.
func IsKeyword(name string) bool {
	_, ok := Keywords[name]
	return ok
}

type Location struct {
	File string // a name representing the source stream
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}

func (err *LocationError) Unwrap() error {
	return err.Err
}
