package grammar

import (
	"strings"
	"unicode/utf8"
)

// Expr is a parsing expression. Rules are built from expressions and refer to
// each other through Ref.
type Expr interface {
	match(s *state, pos int) (int, bool)
	each(fn func(Expr))
}

type literal string

// Lit matches the exact text s.
func Lit(s string) Expr { return literal(s) }

func (l literal) match(s *state, pos int) (int, bool) {
	if strings.HasPrefix(s.text[pos:], string(l)) {
		return pos + len(l), true
	}
	s.probe(pos)
	return pos, false
}

func (literal) each(func(Expr)) {}

type charRange struct {
	lo, hi rune
}

// Range matches a single rune in [lo, hi].
func Range(lo, hi rune) Expr { return charRange{lo: lo, hi: hi} }

func (c charRange) match(s *state, pos int) (int, bool) {
	r, size := utf8.DecodeRuneInString(s.text[pos:])
	if size == 0 || r < c.lo || r > c.hi {
		s.probe(pos)
		return pos, false
	}
	return pos + size, true
}

func (charRange) each(func(Expr)) {}

type anyChar struct{}

// AnyChar matches any single rune.
func AnyChar() Expr { return anyChar{} }

func (anyChar) match(s *state, pos int) (int, bool) {
	_, size := utf8.DecodeRuneInString(s.text[pos:])
	if size == 0 {
		s.probe(pos)
		return pos, false
	}
	return pos + size, true
}

func (anyChar) each(func(Expr)) {}

type sequence []Expr

// Seq matches every expression in order. Outside atomic rules, trivia is
// skipped between items.
func Seq(items ...Expr) Expr { return sequence(items) }

func (e sequence) match(s *state, pos int) (int, bool) {
	mark := len(s.stack)
	cur := pos
	for i, item := range e {
		if i > 0 {
			cur = s.skip(cur)
		}
		next, ok := item.match(s, cur)
		if !ok {
			s.stack = s.stack[:mark]
			return pos, false
		}
		cur = next
	}
	return cur, true
}

func (e sequence) each(fn func(Expr)) {
	for _, item := range e {
		fn(item)
	}
}

type choice []Expr

// Choice matches the first alternative that succeeds.
func Choice(alts ...Expr) Expr { return choice(alts) }

func (e choice) match(s *state, pos int) (int, bool) {
	for _, alt := range e {
		if next, ok := alt.match(s, pos); ok {
			return next, true
		}
	}
	return pos, false
}

func (e choice) each(fn func(Expr)) {
	for _, alt := range e {
		fn(alt)
	}
}

type optional struct {
	expr Expr
}

// Optional matches expr or nothing.
func Optional(expr Expr) Expr { return optional{expr: expr} }

func (o optional) match(s *state, pos int) (int, bool) {
	if next, ok := o.expr.match(s, pos); ok {
		return next, true
	}
	return pos, true
}

func (o optional) each(fn func(Expr)) { fn(o.expr) }

type repeat struct {
	expr Expr
	min  int
}

// ZeroOrMore matches expr as many times as possible.
func ZeroOrMore(expr Expr) Expr { return repeat{expr: expr} }

// OneOrMore matches expr at least once.
func OneOrMore(expr Expr) Expr { return repeat{expr: expr, min: 1} }

func (r repeat) match(s *state, pos int) (int, bool) {
	mark := len(s.stack)
	cur := pos
	count := 0
	for {
		start := cur
		if count > 0 {
			start = s.skip(cur)
		}
		next, ok := r.expr.match(s, start)
		if !ok {
			break
		}
		count++
		if next == start {
			// An empty match would repeat forever.
			cur = next
			break
		}
		cur = next
	}
	if count < r.min {
		s.stack = s.stack[:mark]
		return pos, false
	}
	return cur, true
}

func (r repeat) each(fn func(Expr)) { fn(r.expr) }

type lookahead struct {
	expr     Expr
	negative bool
}

// Ahead succeeds when expr matches, consuming nothing.
func Ahead(expr Expr) Expr { return lookahead{expr: expr} }

// NotAhead succeeds when expr does not match, consuming nothing.
func NotAhead(expr Expr) Expr { return lookahead{expr: expr, negative: true} }

func (l lookahead) match(s *state, pos int) (int, bool) {
	mark := len(s.stack)
	saved := s.lookahead
	switch {
	case l.negative && saved == lookaheadNegative:
		s.lookahead = lookaheadPositive
	case l.negative:
		s.lookahead = lookaheadNegative
	case saved != lookaheadNegative:
		s.lookahead = lookaheadPositive
	}
	_, ok := l.expr.match(s, pos)
	s.lookahead = saved
	s.stack = s.stack[:mark]
	if l.negative {
		ok = !ok
	}
	return pos, ok
}

func (l lookahead) each(fn func(Expr)) { fn(l.expr) }

type ref Rule

// Ref matches the named rule.
func Ref(rule Rule) Expr { return ref(rule) }

func (r ref) match(s *state, pos int) (int, bool) { return s.call(Rule(r), pos) }

func (ref) each(func(Expr)) {}

type startOfInput struct{}

// StartOfInput matches the empty string at byte 0.
func StartOfInput() Expr { return startOfInput{} }

func (startOfInput) match(_ *state, pos int) (int, bool) { return pos, pos == 0 }

func (startOfInput) each(func(Expr)) {}

type endOfInput struct{}

// EndOfInput matches the empty string at the end of the source.
func EndOfInput() Expr { return endOfInput{} }

func (endOfInput) match(s *state, pos int) (int, bool) {
	if pos == len(s.text) {
		return pos, true
	}
	s.probe(pos)
	return pos, false
}

func (endOfInput) each(func(Expr)) {}

type tight struct {
	expr Expr
}

// NoSkip matches expr without skipping trivia between its items. Unlike an
// atomic rule it produces no node of its own.
func NoSkip(expr Expr) Expr { return tight{expr: expr} }

func (t tight) match(s *state, pos int) (int, bool) {
	saved := s.atomic
	s.atomic = true
	next, ok := t.expr.match(s, pos)
	s.atomic = saved
	return next, ok
}

func (t tight) each(fn func(Expr)) { fn(t.expr) }
