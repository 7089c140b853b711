package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// Error describes where and why the source failed to match the grammar.
// Positives are the rules that were expected at Pos; Negatives are rules that
// matched where they were forbidden.
type Error struct {
	Positives []Rule
	Negatives []Rule
	Pos       int
	// Reach is the furthest byte any terminal was tested against.
	Reach int
	// Length is the size of the source in bytes.
	Length int
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "grammar: unexpected input at byte %d", e.Pos)
	if len(e.Positives) > 0 {
		b.WriteString("; expected ")
		b.WriteString(joinRules(e.Positives))
	}
	if len(e.Negatives) > 0 {
		b.WriteString("; unexpected ")
		b.WriteString(joinRules(e.Negatives))
	}
	return b.String()
}

// AtEnd reports whether matching ran out of input, meaning more text could
// still complete the source.
func (e *Error) AtEnd() bool {
	return e.Reach >= e.Length
}

func joinRules(rules []Rule) string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.String()
	}
	return strings.Join(names, ", ")
}

// ErrDepthExceeded is matched by errors.Is for every *DepthError.
var ErrDepthExceeded = errors.New("grammar: maximum nesting depth exceeded")

// DepthError reports that rule nesting passed the configured ceiling.
type DepthError struct {
	Pos   int
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("grammar: nesting deeper than %d rules at byte %d", e.Limit, e.Pos)
}

func (e *DepthError) Unwrap() error { return ErrDepthExceeded }
