// diag.go
//
// User-facing lex/parse diagnostics with caret rendering.
//
// Both error kinds the front end can produce are carried by one value type,
// *Diagnostic, discriminated by Kind. A diagnostic is an ordinary error
// value: the first offending token aborts the invocation that produced it,
// nothing is collected or retried, and the lexer/parser hold no state that
// would survive into a later call.
//
// Rendering follows the usual caret convention: the offending source line,
// then a line of (StartCol-1) spaces and (EndCol-StartCol) carets.
package nolang

import (
	"fmt"
	"strings"
)

// DiagKind discriminates the two error classes of the front end.
type DiagKind int

const (
	// DiagLex covers unrecognized tokens, unterminated string literals and
	// malformed decoded text.
	DiagLex DiagKind = iota
	// DiagParse covers tokens rejected by the grammar.
	DiagParse
)

func (k DiagKind) String() string {
	if k == DiagLex {
		return "LEXICAL ERROR"
	}
	return "PARSE ERROR"
}

// Diagnostic describes a single lexing or parsing failure. Columns are
// 1-based and half-open: [StartCol, EndCol) spans the offending text within
// Line, the source line it appeared on.
type Diagnostic struct {
	Kind     DiagKind
	Msg      string
	Filename string
	Line     string // offending source line text, no trailing newline
	Lineno   int    // 1-based
	StartCol int
	EndCol   int

	atEOF bool
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s in %s at %d:%d: %s", d.Kind, d.Filename, d.Lineno, d.StartCol, d.Msg)
}

// Caret renders the offending line followed by a caret line pointing at the
// column range.
func (d *Diagnostic) Caret() string {
	pad := d.StartCol - 1
	if pad < 0 {
		pad = 0
	}
	n := d.EndCol - d.StartCol
	if n < 1 {
		n = 1
	}
	return d.Line + "\n" + strings.Repeat(" ", pad) + strings.Repeat("^", n)
}

// IsIncomplete reports whether err is a diagnostic caused purely by the
// input ending too early (an unterminated string, or the parser rejecting
// end-of-input). A REPL can treat such errors as "keep reading" rather than
// failures; see cmd/nolang.
func IsIncomplete(err error) bool {
	d, ok := err.(*Diagnostic)
	return ok && d.atEOF
}
