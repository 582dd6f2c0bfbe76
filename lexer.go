// lexer.go
//
// The nolang tokenizer.
//
// The lexer is pull-based: the parser asks for one token at a time via
// Next(). Statement termination is automatic: whenever a skipped whitespace
// run contains a newline and the previously emitted token could legally end
// a statement (closing brace, closing paren, identifier, integer literal),
// a synthetic SEMICOLON token is emitted covering the whitespace run. A
// newline after an operator, comma or opening bracket therefore never
// terminates a statement.
package nolang

import "strings"

// Lexer scans one source text. It owns only its own cursor state; separate
// instances are fully independent and an instance may be discarded and
// recreated freely after an error.
type Lexer struct {
	filename string
	src      string
	idx      int
	pos      *posTracker
	lastKind TokenKind // kind of the previously emitted token; EOF before any
}

// NewLexer creates a lexer over src. The filename is used only in
// diagnostics.
func NewLexer(filename, src string) *Lexer {
	return &Lexer{filename: filename, src: src, pos: newPosTracker(src)}
}

// terminates reports whether a statement may end after a token of kind k,
// making a following newline act as a terminator.
func terminates(k TokenKind) bool {
	switch k {
	case RCURLY, RPAREN, IDENTIFIER, INTEGER:
		return true
	}
	return false
}

// Next returns the next token. End of input yields a token with Kind EOF on
// this and every later call; it is not an error.
func (l *Lexer) Next() (Token, error) {
	for {
		if l.idx >= len(l.src) {
			rng := l.pos.rangeFor(l.idx, l.idx)
			return Token{Kind: EOF, Range: rng}, nil
		}
		end := matchSpaceRun(l.src, l.idx)
		if end < 0 {
			break
		}
		span := l.src[l.idx:end]
		rng := l.pos.rangeFor(l.idx, end)
		l.idx = end
		if strings.Contains(span, "\n") && terminates(l.lastKind) {
			l.lastKind = SEMICOLON
			return Token{Kind: SEMICOLON, Text: span, Range: rng}, nil
		}
	}

	kind, end, ok := matchAt(lexRules, l.src, l.idx)
	if !ok {
		return Token{}, l.errAt(l.idx, "unrecognized token")
	}
	if kind == STRING {
		tok, err := l.lexString()
		if err != nil {
			return Token{}, err
		}
		l.lastKind = STRING
		return tok, nil
	}

	text := l.src[l.idx:end]
	if kw, found := keywords[text]; found {
		kind = kw
	}
	rng := l.pos.rangeFor(l.idx, end)
	l.idx = end
	l.lastKind = kind
	return Token{Kind: kind, Text: text, Range: rng}, nil
}

// Tokenize scans the remaining input and returns all tokens up to but not
// including the EOF sentinel.
func (l *Lexer) Tokenize() ([]Token, error) {
	var out []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

// errAt builds a lexical diagnostic pointing at the given byte offset.
func (l *Lexer) errAt(off int, msg string) *Diagnostic {
	line, col := l.pos.pos(off)
	return &Diagnostic{
		Kind:     DiagLex,
		Msg:      msg,
		Filename: l.filename,
		Line:     lineAt(l.src, line),
		Lineno:   line,
		StartCol: col,
		EndCol:   col + 1,
	}
}
