// strlexer.go
//
// The nested scanner for string literal interiors.
package nolang

import (
	"strconv"
	"unicode/utf8"
)

// lexString scans a string literal whose opening quote sits at l.idx,
// decodes its escape sequences and returns a single STRING token spanning
// from the opening to the closing quote inclusive. The token's Text is the
// decoded value with the quotes stripped.
func (l *Lexer) lexString() (Token, error) {
	start := l.idx
	at := start + 1 // past the opening quote

	var buf []byte
	for {
		if at >= len(l.src) {
			d := l.errAt(start, "unterminated string")
			d.atEOF = true // more input could still close the literal
			return Token{}, d
		}
		frag, end, ok := matchAt(stringRules, l.src, at)
		if !ok {
			return Token{}, l.errAt(at, "unrecognized token")
		}
		text := l.src[at:end]
		at = end

		if frag == closingQuote {
			break
		}
		switch frag {
		case escQuote:
			buf = append(buf, '"')
		case escEsc:
			buf = append(buf, '\\')
		case escSimple:
			buf = append(buf, shortEscapes[text[1]])
		case escHex8, escHex16:
			buf = appendCodePoint(buf, text[2:])
		case escHexAny:
			buf = appendCodePoint(buf, text[3:len(text)-1])
		default: // escOther, plainChar: pass through as written
			buf = append(buf, text...)
		}
	}

	val := string(buf)
	if !utf8.ValidString(val) {
		return Token{}, l.errAt(start, "malformed string")
	}
	rng := l.pos.rangeFor(start, at)
	l.idx = at
	return Token{Kind: STRING, Text: val, Range: rng}, nil
}

// shortEscapes maps the single-letter escapes to their control characters.
var shortEscapes = map[byte]byte{
	'a': '\a',
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
	'0': 0,
}

// appendCodePoint decodes hex digits as a numeric code point and appends its
// UTF-8 byte representation. The encoding itself is unchecked: values such as
// surrogate halves get whatever bytes the bit-packing produces, and the
// whole-literal validity check in lexString rejects them afterwards.
func appendCodePoint(dst []byte, hex string) []byte {
	cp, err := strconv.ParseUint(hex, 16, 64)
	if err != nil || cp >= 1<<21 {
		// Not representable in four UTF-8 bytes; force the validity check
		// to fail.
		return append(dst, 0xFF)
	}
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst, 0xC0|byte(cp>>6), 0x80|byte(cp&0x3F))
	case cp < 0x10000:
		return append(dst, 0xE0|byte(cp>>12), 0x80|byte(cp>>6&0x3F), 0x80|byte(cp&0x3F))
	default:
		return append(dst, 0xF0|byte(cp>>18), 0x80|byte(cp>>12&0x3F), 0x80|byte(cp>>6&0x3F), 0x80|byte(cp&0x3F))
	}
}
