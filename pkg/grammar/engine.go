package grammar

import (
	"fmt"
	"sort"
)

// Kind selects how a rule treats trivia and whether it produces nodes.
type Kind int

const (
	// Normal rules produce a node and skip trivia between sequence items.
	Normal Kind = iota
	// Silent rules produce no node; their children are attached to the parent.
	Silent
	// Atomic rules produce a node, skip no trivia and hide inner rules.
	Atomic
	// CompoundAtomic rules skip no trivia but keep inner rule nodes.
	CompoundAtomic
)

// DefaultMaxDepth bounds rule nesting during a parse.
const DefaultMaxDepth = 2048

type ruleDef struct {
	kind Kind
	body Expr
}

// Grammar is a set of rule definitions plus the trivia skipped between
// tokens of non-atomic rules.
type Grammar struct {
	rules  [ruleCount]*ruleDef
	trivia Expr
}

// New returns an empty grammar.
func New() *Grammar {
	return &Grammar{}
}

// Define installs the body for rule, replacing any previous definition.
func (g *Grammar) Define(rule Rule, kind Kind, body Expr) {
	if rule <= ruleInvalid || rule >= ruleCount {
		panic(fmt.Sprintf("grammar: cannot define %s", rule))
	}
	g.rules[rule] = &ruleDef{kind: kind, body: body}
}

// SetTrivia sets the expression skipped implicitly between items.
func (g *Grammar) SetTrivia(expr Expr) {
	g.trivia = expr
}

// Validate reports rules that are referenced but never defined.
func (g *Grammar) Validate() error {
	missing := make(map[Rule]struct{})
	var walk func(Expr)
	walk = func(e Expr) {
		if r, ok := e.(ref); ok {
			if g.rules[Rule(r)] == nil {
				missing[Rule(r)] = struct{}{}
			}
			return
		}
		e.each(walk)
	}
	for _, def := range g.rules {
		if def != nil {
			walk(def.body)
		}
	}
	if g.trivia != nil {
		walk(g.trivia)
	}
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for r := range missing {
		names = append(names, r.String())
	}
	sort.Strings(names)
	return fmt.Errorf("grammar: undefined rules: %v", names)
}

// Option configures a single parse.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth bounds rule nesting. Values <= 0 keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// Parse matches source against the start rule and returns the resulting
// forest. On failure the error is a *Error or a *DepthError.
func (g *Grammar) Parse(start Rule, source []byte, opts ...Option) (tree *Tree, err error) {
	cfg := config{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}
	s := &state{
		g:        g,
		text:     string(source),
		maxDepth: cfg.maxDepth,
		memo:     make(map[memoKey]memoEntry),
	}
	defer func() {
		if r := recover(); r != nil {
			exceeded, ok := r.(depthExceeded)
			if !ok {
				panic(r)
			}
			tree = nil
			err = &DepthError{Pos: exceeded.pos, Limit: cfg.maxDepth}
		}
	}()
	if _, ok := s.call(start, 0); !ok {
		return nil, s.failure()
	}
	return &Tree{nodes: s.stack}, nil
}

type lookaheadMode int

const (
	lookaheadNone lookaheadMode = iota
	lookaheadPositive
	lookaheadNegative
)

type memoKey struct {
	rule   Rule
	pos    int
	atomic bool
	quiet  bool
}

type memoEntry struct {
	end   int
	ok    bool
	nodes []*Node
}

type depthExceeded struct {
	pos int
}

type state struct {
	g    *Grammar
	text string

	stack     []*Node
	atomic    bool
	quiet     bool
	skipping  bool
	lookahead lookaheadMode

	depth    int
	maxDepth int
	memo     map[memoKey]memoEntry

	attemptPos int
	positives  []Rule
	negatives  []Rule
	reach      int
}

func (s *state) call(rule Rule, pos int) (int, bool) {
	def := s.g.rules[rule]
	if def == nil {
		panic(fmt.Sprintf("grammar: rule %s is not defined", rule))
	}
	s.depth++
	defer func() { s.depth-- }()
	if s.depth > s.maxDepth {
		panic(depthExceeded{pos: pos})
	}

	key := memoKey{rule: rule, pos: pos, atomic: s.atomic, quiet: s.quiet}
	if entry, ok := s.memo[key]; ok {
		if entry.ok {
			s.stack = append(s.stack, entry.nodes...)
		}
		return entry.end, entry.ok
	}

	savedAtomic, savedQuiet := s.atomic, s.quiet
	switch def.kind {
	case Atomic:
		s.atomic = true
		s.quiet = true
	case CompoundAtomic:
		s.atomic = true
	}
	tracked := def.kind != Silent && !savedQuiet && !s.skipping
	posIndex, negIndex := len(s.positives), len(s.negatives)
	prevAttempts := s.attemptsAt(pos)
	mark := len(s.stack)

	end, ok := def.body.match(s, pos)
	s.atomic, s.quiet = savedAtomic, savedQuiet
	if !ok {
		s.stack = s.stack[:mark]
	}

	if ok && def.kind != Silent && !s.quiet {
		children := append([]*Node(nil), s.stack[mark:]...)
		s.stack = append(s.stack[:mark], &Node{rule: rule, start: pos, end: end, children: children})
	}
	if tracked && ok == (s.lookahead == lookaheadNegative) {
		s.track(rule, pos, posIndex, negIndex, prevAttempts)
	}

	entry := memoEntry{end: end, ok: ok}
	if ok {
		entry.nodes = append([]*Node(nil), s.stack[mark:]...)
	} else {
		entry.end = pos
	}
	s.memo[key] = entry
	if !ok {
		return pos, false
	}
	return end, true
}

func (s *state) skip(pos int) int {
	if s.atomic || s.g.trivia == nil {
		return pos
	}
	savedAtomic, savedQuiet, savedSkipping := s.atomic, s.quiet, s.skipping
	s.atomic, s.quiet, s.skipping = true, true, true
	defer func() {
		s.atomic, s.quiet, s.skipping = savedAtomic, savedQuiet, savedSkipping
	}()
	for {
		next, ok := s.g.trivia.match(s, pos)
		if !ok || next == pos {
			return pos
		}
		pos = next
	}
}

// probe records how far terminal matching has looked into the source.
func (s *state) probe(pos int) {
	if !s.skipping && pos > s.reach {
		s.reach = pos
	}
}

func (s *state) attemptsAt(pos int) int {
	if s.attemptPos != pos {
		return 0
	}
	return len(s.positives) + len(s.negatives)
}

func (s *state) track(rule Rule, pos, posIndex, negIndex, prevAttempts int) {
	// A failing child that made exactly one attempt is more precise than the
	// rule that called it.
	curr := s.attemptsAt(pos)
	if curr > prevAttempts && curr-prevAttempts == 1 {
		return
	}
	if pos == s.attemptPos {
		s.positives = s.positives[:min(posIndex, len(s.positives))]
		s.negatives = s.negatives[:min(negIndex, len(s.negatives))]
	}
	if pos > s.attemptPos {
		s.positives = s.positives[:0]
		s.negatives = s.negatives[:0]
		s.attemptPos = pos
	}
	if pos != s.attemptPos {
		return
	}
	if s.lookahead == lookaheadNegative {
		s.negatives = append(s.negatives, rule)
	} else {
		s.positives = append(s.positives, rule)
	}
}

func (s *state) failure() *Error {
	pos := s.attemptPos
	if pos > len(s.text) {
		pos = len(s.text)
	}
	return &Error{
		Positives: dedupe(s.positives),
		Negatives: dedupe(s.negatives),
		Pos:       pos,
		Reach:     s.reach,
		Length:    len(s.text),
	}
}

func dedupe(rules []Rule) []Rule {
	if len(rules) == 0 {
		return nil
	}
	seen := make(map[Rule]struct{}, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
