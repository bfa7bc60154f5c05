// Copyright © 2026 The rexpr authors

// Package grammar is the operator table shared by the lexer, the parser and
// the formatter.  It records the precedence and associativity of every
// operator the surface syntax knows about, and which names are produced by
// syntax rather than by ordinary function calls.
package grammar

import (
	"sort"
	"strings"
	"unicode"

	"github.com/luthersystems/rexpr/parser/token"
)

// Precedence is an operator binding power.  Higher binds tighter.
type Precedence int

// Precedence levels, loosest first.
const (
	PrecLowest      Precedence = 0
	PrecEqAssign    Precedence = 10  // =
	PrecLeftAssign  Precedence = 20  // <- <<-
	PrecRightAssign Precedence = 30  // -> ->>
	PrecTilde       Precedence = 40  // ~
	PrecOr          Precedence = 50  // | ||
	PrecAnd         Precedence = 60  // & &&
	PrecNot         Precedence = 70  // !
	PrecCompare     Precedence = 80  // == != < > <= >=
	PrecSum         Precedence = 90  // + -
	PrecProduct     Precedence = 100 // * /
	PrecSpecial     Precedence = 110 // %any%
	PrecRange       Precedence = 120 // :
	PrecUnary       Precedence = 130 // unary + -
	PrecPower       Precedence = 140 // ^
	PrecPostfix     Precedence = 150 // f() x[] x[[]]
	PrecDollar      Precedence = 160 // $ @
	PrecNamespace   Precedence = 170 // :: :::
)

// Assoc is the associativity of a binary operator.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// Operator describes one operator of the surface syntax.
type Operator struct {
	// Text is the operator as written in source.
	Text string
	// Name is the head symbol of the call the operator produces.  It differs
	// from Text for right assignment (-> produces <-) and ** (produces ^).
	Name  string
	Prec  Precedence
	Assoc Assoc
	// Swap is set when the operands are reversed in the tree (x -> y is
	// `<-`(y, x)).
	Swap bool
}

var binaryOps = map[string]Operator{
	"=":   {Text: "=", Name: "=", Prec: PrecEqAssign, Assoc: AssocRight},
	"<-":  {Text: "<-", Name: "<-", Prec: PrecLeftAssign, Assoc: AssocRight},
	"<<-": {Text: "<<-", Name: "<<-", Prec: PrecLeftAssign, Assoc: AssocRight},
	"->":  {Text: "->", Name: "<-", Prec: PrecRightAssign, Assoc: AssocLeft, Swap: true},
	"->>": {Text: "->>", Name: "<<-", Prec: PrecRightAssign, Assoc: AssocLeft, Swap: true},
	"~":   {Text: "~", Name: "~", Prec: PrecTilde, Assoc: AssocLeft},
	"||":  {Text: "||", Name: "||", Prec: PrecOr, Assoc: AssocLeft},
	"|":   {Text: "|", Name: "|", Prec: PrecOr, Assoc: AssocLeft},
	"&&":  {Text: "&&", Name: "&&", Prec: PrecAnd, Assoc: AssocLeft},
	"&":   {Text: "&", Name: "&", Prec: PrecAnd, Assoc: AssocLeft},
	"==":  {Text: "==", Name: "==", Prec: PrecCompare, Assoc: AssocNone},
	"!=":  {Text: "!=", Name: "!=", Prec: PrecCompare, Assoc: AssocNone},
	"<":   {Text: "<", Name: "<", Prec: PrecCompare, Assoc: AssocNone},
	">":   {Text: ">", Name: ">", Prec: PrecCompare, Assoc: AssocNone},
	"<=":  {Text: "<=", Name: "<=", Prec: PrecCompare, Assoc: AssocNone},
	">=":  {Text: ">=", Name: ">=", Prec: PrecCompare, Assoc: AssocNone},
	"+":   {Text: "+", Name: "+", Prec: PrecSum, Assoc: AssocLeft},
	"-":   {Text: "-", Name: "-", Prec: PrecSum, Assoc: AssocLeft},
	"*":   {Text: "*", Name: "*", Prec: PrecProduct, Assoc: AssocLeft},
	"/":   {Text: "/", Name: "/", Prec: PrecProduct, Assoc: AssocLeft},
	":":   {Text: ":", Name: ":", Prec: PrecRange, Assoc: AssocLeft},
	"^":   {Text: "^", Name: "^", Prec: PrecPower, Assoc: AssocRight},
	"**":  {Text: "**", Name: "^", Prec: PrecPower, Assoc: AssocRight},
	"$":   {Text: "$", Name: "$", Prec: PrecDollar, Assoc: AssocLeft},
	"@":   {Text: "@", Name: "@", Prec: PrecDollar, Assoc: AssocLeft},
	"::":  {Text: "::", Name: "::", Prec: PrecNamespace, Assoc: AssocNone},
	":::": {Text: ":::", Name: ":::", Prec: PrecNamespace, Assoc: AssocNone},
}

var unaryOps = map[string]Operator{
	"-": {Text: "-", Name: "-", Prec: PrecUnary, Assoc: AssocRight},
	"+": {Text: "+", Name: "+", Prec: PrecUnary, Assoc: AssocRight},
	"!": {Text: "!", Name: "!", Prec: PrecNot, Assoc: AssocRight},
	"~": {Text: "~", Name: "~", Prec: PrecTilde, Assoc: AssocRight},
}

// syntaxHeads are call heads produced by syntax other than operators.
var syntaxHeads = map[string]bool{
	"(":        true,
	"{":        true,
	"[":        true,
	"[[":       true,
	"if":       true,
	"for":      true,
	"while":    true,
	"repeat":   true,
	"break":    true,
	"next":     true,
	"function": true,
}

// Binary returns the binary operator written as text.  Any %name% operator
// is accepted at special precedence.
func Binary(text string) (Operator, bool) {
	if op, ok := binaryOps[text]; ok {
		return op, true
	}
	if IsSpecial(text) {
		return Operator{Text: text, Name: text, Prec: PrecSpecial, Assoc: AssocLeft}, true
	}
	return Operator{}, false
}

// Unary returns the prefix operator written as text.
func Unary(text string) (Operator, bool) {
	op, ok := unaryOps[text]
	return op, ok
}

// BinaryByName returns the operator that renders a call whose head is name.
// Reversed forms (-> ->> **) are never returned since the tree only holds
// their canonical names.
func BinaryByName(name string) (Operator, bool) {
	op, ok := Binary(name)
	if !ok || op.Name != name || op.Swap {
		return Operator{}, false
	}
	return op, true
}

// IsSpecial reports whether text is a user-defined %op% operator.
func IsSpecial(text string) bool {
	return len(text) >= 2 && strings.HasPrefix(text, "%") && strings.HasSuffix(text, "%") &&
		!strings.ContainsAny(text[1:len(text)-1], "%\n")
}

// IsSyntaxHead reports whether name is introduced by syntax, either as an
// operator or as one of the bracket and keyword forms.
func IsSyntaxHead(name string) bool {
	if syntaxHeads[name] {
		return true
	}
	if _, ok := binaryOps[name]; ok {
		return true
	}
	if _, ok := unaryOps[name]; ok {
		return true
	}
	return IsSpecial(name)
}

// OperatorTexts returns every fixed operator spelling, longest first, so a
// lexer can perform longest-match scanning.
func OperatorTexts() []string {
	seen := make(map[string]bool)
	var texts []string
	for text := range binaryOps {
		seen[text] = true
		texts = append(texts, text)
	}
	for text := range unaryOps {
		if !seen[text] {
			texts = append(texts, text)
		}
	}
	sort.Slice(texts, func(i, j int) bool {
		if len(texts[i]) != len(texts[j]) {
			return len(texts[i]) > len(texts[j])
		}
		return texts[i] < texts[j]
	})
	return texts
}

// IsSyntacticName reports whether name can be written as a bare identifier.
// Other names must be quoted with backticks.
func IsSyntacticName(name string) bool {
	if name == "" || token.IsKeyword(name) {
		return false
	}
	for i, c := range name {
		switch {
		case unicode.IsLetter(c):
		case c == '.':
			if i == 0 && len(name) > 1 && isDigit(rune(name[1])) {
				return false
			}
		case isDigit(c) || c == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// IsNameStart reports whether c may begin an identifier.
func IsNameStart(c rune) bool {
	return unicode.IsLetter(c) || c == '.'
}

// IsNameRune reports whether c may continue an identifier.
func IsNameRune(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c) || c == '.' || c == '_'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
