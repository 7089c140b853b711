package ast

import (
	"fmt"
	"unicode/utf8"
)

// InputLocation is either a single byte position or a half-open byte span
// [start, end) into the source text.
type InputLocation struct {
	start  int
	end    int
	isSpan bool
}

func Pos(pos int) InputLocation {
	return InputLocation{start: pos, end: pos}
}

func Span(start, end int) InputLocation {
	return InputLocation{start: start, end: end, isSpan: true}
}

func (l InputLocation) IsSpan() bool { return l.isSpan }

func (l InputLocation) Start() int { return l.start }

// End is the exclusive end of a span; for a position it equals Start.
func (l InputLocation) End() int { return l.end }

func (l InputLocation) String() string {
	if l.isSpan {
		return fmt.Sprintf("%d..%d", l.start, l.end)
	}
	return fmt.Sprintf("%d", l.start)
}

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// StartPosition resolves the location's start against source.
func (l InputLocation) StartPosition(source []byte) Position {
	return positionAt(source, l.start)
}

// EndPosition resolves the location's end against source.
func (l InputLocation) EndPosition(source []byte) Position {
	return positionAt(source, l.end)
}

func positionAt(source []byte, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	pos := Position{Line: 1, Column: 1}
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(source[i:])
		if i+size > offset {
			break
		}
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		i += size
	}
	return pos
}

// LineCol is the 1-based line and column of the location's start.
func (l InputLocation) LineCol(source []byte) (line, column int) {
	p := l.StartPosition(source)
	return p.Line, p.Column
}
