package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatError renders err against the source it came from:
//
//	error: syntax error at 4: expected integer, local
//	  --> main.ina:1:5
//	   |
//	 1 | x = )
//	   |     ^
//
// Errors other than *ParseError render as a single line.
func FormatError(err error, filename string, source []byte) string {
	if err == nil {
		return ""
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		return fmt.Sprintf("error: %s: %v\n", filename, err)
	}

	var b strings.Builder
	pos := perr.Position(source)
	fmt.Fprintf(&b, "%s: %s\n", severityOf(perr), strings.TrimPrefix(perr.Error(), "parser: "))
	fmt.Fprintf(&b, "  --> %s:%d:%d\n", filename, pos.Line, pos.Column)

	line := sourceLine(source, pos.Line)
	width := len(fmt.Sprintf("%d", pos.Line))
	gutter := strings.Repeat(" ", width)
	fmt.Fprintf(&b, " %s |\n", gutter)
	fmt.Fprintf(&b, " %*d | %s\n", width, pos.Line, line)

	underline := 1
	if perr.Location.IsSpan() {
		end := perr.Location.EndPosition(source)
		if end.Line == pos.Line && end.Column > pos.Column {
			underline = end.Column - pos.Column
		}
	}
	lineWidth := utf8.RuneCountInString(line)
	padding := min(pos.Column-1, lineWidth)
	fmt.Fprintf(&b, " %s | %s%s\n", gutter, strings.Repeat(" ", padding), strings.Repeat("^", underline))
	return b.String()
}

func severityOf(perr *ParseError) string {
	if perr.Kind == AstGeneration {
		return "internal error"
	}
	return "error"
}

func sourceLine(source []byte, line int) string {
	lines := strings.Split(string(source), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
