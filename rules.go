// rules.go
//
// The shared "first matching rule wins" scanning engine.
//
// Both lexer levels (the main scanner and the string sub-scanner) run the
// same loop: try an ordered table of (kind, matcher) rules at the current
// offset and take the first hit. Order is part of the grammar contract;
// there is no longest-match disambiguation, so e.g. "==" must be declared
// before "=". Keywords are NOT disambiguated here; the main lexer matches
// them as identifiers and reclassifies by map lookup afterwards.
package nolang

import "unicode/utf8"

// matcher reports how far a rule matches at src[at:]. It returns the end
// offset of the match, or -1 when the rule does not apply.
type matcher func(src string, at int) int

// rule pairs a kind with a matcher. The kind parameter lets the main lexer
// and the string sub-lexer share one engine while keeping their kind enums
// apart: string fragments never leak out of the sub-lexer.
type rule[K any] struct {
	kind  K
	match matcher
}

// matchAt tries each rule in table order and returns the first match.
func matchAt[K any](rules []rule[K], src string, at int) (K, int, bool) {
	for _, r := range rules {
		if end := r.match(src, at); end >= 0 {
			return r.kind, end, true
		}
	}
	var zero K
	return zero, 0, false
}

// -----------------------------------------------------------------------------
// matcher constructors
// -----------------------------------------------------------------------------

func lit(s string) matcher {
	return func(src string, at int) int {
		if at+len(s) <= len(src) && src[at:at+len(s)] == s {
			return at + len(s)
		}
		return -1
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func matchDigits(src string, at int) int {
	i := at
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i == at {
		return -1
	}
	return i
}

func matchIdent(src string, at int) int {
	if at >= len(src) || !isAlpha(src[at]) {
		return -1
	}
	i := at + 1
	for i < len(src) && isAlphaNum(src[i]) {
		i++
	}
	return i
}

func matchSpaceRun(src string, at int) int {
	i := at
	for i < len(src) && isSpace(src[i]) {
		i++
	}
	if i == at {
		return -1
	}
	return i
}

// matchEscSimple matches a backslash followed by one of the short escape
// letters (a b f n r t v 0).
func matchEscSimple(src string, at int) int {
	if at+2 > len(src) || src[at] != '\\' {
		return -1
	}
	switch src[at+1] {
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '0':
		return at + 2
	}
	return -1
}

// matchEscHex matches a backslash, the given introducer letter, and exactly
// n hex digits ("\xHH", "\uHHHH").
func matchEscHex(introducer byte, n int) matcher {
	return func(src string, at int) int {
		if at+2+n > len(src) || src[at] != '\\' || src[at+1] != introducer {
			return -1
		}
		for i := 0; i < n; i++ {
			if !isHex(src[at+2+i]) {
				return -1
			}
		}
		return at + 2 + n
	}
}

// matchEscBraceHex matches "\u{H…H}" with one or more hex digits.
func matchEscBraceHex(src string, at int) int {
	if at+4 > len(src) || src[at] != '\\' || src[at+1] != 'u' || src[at+2] != '{' {
		return -1
	}
	i := at + 3
	for i < len(src) && isHex(src[i]) {
		i++
	}
	if i == at+3 || i >= len(src) || src[i] != '}' {
		return -1
	}
	return i + 1
}

// matchEscOther matches a backslash followed by any single rune that no
// dedicated escape rule claims. Such sequences pass through literally.
func matchEscOther(src string, at int) int {
	if at+2 > len(src) || src[at] != '\\' {
		return -1
	}
	switch src[at+1] {
	case 'a', 'b', 'f', 'n', 'r', 't', 'v', '0', 'x', 'u', '"', '\\':
		return -1
	}
	_, size := utf8.DecodeRuneInString(src[at+1:])
	return at + 1 + size
}

// matchPlainChar matches any single rune except a quote or a backslash.
func matchPlainChar(src string, at int) int {
	if at >= len(src) || src[at] == '"' || src[at] == '\\' {
		return -1
	}
	_, size := utf8.DecodeRuneInString(src[at:])
	return at + size
}

// -----------------------------------------------------------------------------
// rule tables
// -----------------------------------------------------------------------------

// lexRules is the main lexer's rule table. Declaration order encodes
// priority: TRUEDIV has no single-character fallback, and EQ must be tried
// before ASSIGN.
var lexRules = []rule[TokenKind]{
	{INTEGER, matchDigits},
	{PLUS, lit("+")},
	{MINUS, lit("-")},
	{LT, lit("<")},
	{STAR, lit("*")},
	{DOT, lit(".")},
	{TRUEDIV, lit("//")},
	{EQ, lit("==")},
	{ASSIGN, lit("=")},
	{IDENTIFIER, matchIdent},
	{LCURLY, lit("{")},
	{LPAREN, lit("(")},
	{RPAREN, lit(")")},
	{RCURLY, lit("}")},
	{COMMA, lit(",")},
	{SEMICOLON, lit(";")},
	{STRING, lit(`"`)},
}

// Fragment kinds recognised inside a string literal. These never leave the
// string sub-lexer, so they live in their own enum.
type stringFrag int

const (
	escQuote stringFrag = iota
	escEsc
	escSimple
	escHex8
	escHex16
	escHexAny
	escOther
	plainChar
	closingQuote
)

// stringRules is the sub-lexer's rule table, tried in order at each offset
// inside a literal. The fixed-width hex forms are tried before the
// brace-delimited one so that "\u{…}" falls through to escHexAny.
var stringRules = []rule[stringFrag]{
	{escQuote, lit(`\"`)},
	{escEsc, lit(`\\`)},
	{escSimple, matchEscSimple},
	{escHex8, matchEscHex('x', 2)},
	{escHex16, matchEscHex('u', 4)},
	{escHexAny, matchEscBraceHex},
	{escOther, matchEscOther},
	{plainChar, matchPlainChar},
	{closingQuote, lit(`"`)},
}
