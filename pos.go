// pos.go
//
// Incremental byte-offset to (line, column) bookkeeping.
package nolang

import "strings"

// posTracker converts byte offsets into 1-based line/column pairs. It only
// ever scans forward, so the cost of a query is proportional to the distance
// advanced since the previous one, never to the size of the whole source.
// Offsets passed to it must be non-decreasing; the lexer always advances
// contiguously through the input.
type posTracker struct {
	src    string
	idx    int // everything before idx has been scanned
	line   int // 1-based line number at idx
	lastNL int // byte index of the last newline before idx, or -1
}

func newPosTracker(src string) *posTracker {
	return &posTracker{src: src, line: 1, lastNL: -1}
}

// rangeFor returns the SourceRange for [start, end) and advances the tracker
// past end. Line and Col describe the start of the range.
func (t *posTracker) rangeFor(start, end int) SourceRange {
	t.advanceTo(start)
	r := SourceRange{Start: start, End: end, Line: t.line, Col: start - t.lastNL}
	t.advanceTo(end)
	return r
}

// pos returns the 1-based line/column of the given offset.
func (t *posTracker) pos(off int) (line, col int) {
	t.advanceTo(off)
	return t.line, off - t.lastNL
}

func (t *posTracker) advanceTo(off int) {
	for ; t.idx < off && t.idx < len(t.src); t.idx++ {
		if t.src[t.idx] == '\n' {
			t.line++
			t.lastNL = t.idx
		}
	}
	if off > t.idx {
		t.idx = off
	}
}

// lineAt returns the text of the given 1-based source line without its
// trailing newline. Used only on the diagnostic path.
func lineAt(src string, lineno int) string {
	lines := strings.Split(src, "\n")
	if lineno < 1 || lineno > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[lineno-1], "\r")
}
