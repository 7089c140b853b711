package parser

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
	"baik/interpreter-go/pkg/logging"
)

// DefaultMaxNesting bounds how deeply Terms may nest before parsing fails
// with a NestingTooDeep error.
const DefaultMaxNesting = 256

// Upper bounds for Options. Larger settings are clamped so that the grammar
// engine always fails with NestingTooDeep before the goroutine stack runs out.
const (
	MaxNestingLimit   = 4096
	MaxRuleDepthLimit = MaxNestingLimit * ruleFramesPerTerm
)

// ruleFramesPerTerm approximates how many grammar rule frames one level of
// Term nesting costs.
const ruleFramesPerTerm = 16

// Mode selects the grammar entry point.
type Mode int

const (
	// ModeInput parses an interactive statement stream.
	ModeInput Mode = iota
	// ModeFile parses a whole source file, including type, trait and impl
	// definitions.
	ModeFile
)

func (m Mode) String() string {
	if m == ModeFile {
		return "file"
	}
	return "input"
}

// ParseMode resolves a mode name ("input" or "file").
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "file":
		return ModeFile, nil
	case "input":
		return ModeInput, nil
	default:
		return ModeInput, fmt.Errorf("parser: unknown mode %q", name)
	}
}

func (m Mode) startRule() grammar.Rule {
	if m == ModeFile {
		return grammar.File
	}
	return grammar.Input
}

// Options configures a Parser. The zero value is usable.
type Options struct {
	// MaxNesting bounds Term nesting; <= 0 selects DefaultMaxNesting and
	// values above MaxNestingLimit are clamped to it.
	MaxNesting int
	// MaxRuleDepth bounds grammar rule nesting; <= 0 derives a ceiling from
	// MaxNesting. Values above MaxRuleDepthLimit are clamped to it.
	MaxRuleDepth int
	Logger       *slog.Logger
}

// Parser turns Baik source into Terms. A Parser holds no per-call state and
// may be shared between goroutines.
type Parser struct {
	grammar      *grammar.Grammar
	maxNesting   int
	maxRuleDepth int
	logger       *slog.Logger
}

// New constructs a parser for the Baik grammar.
func New(opts Options) *Parser {
	nesting := opts.MaxNesting
	if nesting <= 0 {
		nesting = DefaultMaxNesting
	}
	nesting = min(nesting, MaxNestingLimit)
	ruleDepth := opts.MaxRuleDepth
	if ruleDepth <= 0 {
		ruleDepth = max(grammar.DefaultMaxDepth, nesting*ruleFramesPerTerm)
	}
	ruleDepth = min(ruleDepth, MaxRuleDepthLimit)
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Parser{
		grammar:      grammar.Baik(),
		maxNesting:   nesting,
		maxRuleDepth: ruleDepth,
		logger:       logger,
	}
}

var defaultParser = New(Options{})

// Input parses source as an interactive statement stream.
func Input(source string) ([]*ast.Term, error) {
	return defaultParser.ParseInput([]byte(source))
}

// File parses source as a whole file.
func File(source string) ([]*ast.Term, error) {
	return defaultParser.ParseFile([]byte(source))
}

func (p *Parser) ParseInput(source []byte) ([]*ast.Term, error) {
	return p.Parse(ModeInput, source)
}

func (p *Parser) ParseFile(source []byte) ([]*ast.Term, error) {
	return p.Parse(ModeFile, source)
}

// Parse converts source into its ordered list of top-level Terms. On error
// no Terms are returned; the error is a *ParseError.
func (p *Parser) Parse(mode Mode, source []byte) ([]*ast.Term, error) {
	if p == nil || p.grammar == nil {
		return nil, fmt.Errorf("parser: nil parser")
	}
	p.logger.Debug("parse started", "mode", mode, "bytes", len(source))

	if offset := invalidUTF8(source); offset >= 0 {
		perr := &ParseError{Kind: GrammarMismatch, Location: ast.Pos(offset), Detail: "invalid UTF-8 encoding"}
		p.logger.Debug("source rejected", "mode", mode, "error", perr)
		return nil, perr
	}

	tree, err := p.grammar.Parse(mode.startRule(), source, grammar.WithMaxDepth(p.maxRuleDepth))
	if err != nil {
		perr := classifyGrammarError(err, p.maxNesting)
		p.logger.Debug("grammar rejected source", "mode", mode, "error", perr)
		return nil, perr
	}

	c := &converter{source: source, maxDepth: p.maxNesting}
	nodes := tree.Nodes()
	terms := make([]*ast.Term, 0, len(nodes))
	for _, node := range nodes {
		if node.Rule() == grammar.EOI {
			break
		}
		term, err := c.parseTerm(node)
		if err != nil {
			p.logger.Debug("conversion failed", "mode", mode, "rule", node.Rule(), "error", err)
			return nil, err
		}
		terms = append(terms, term)
	}
	p.logger.Debug("parse finished", "mode", mode, "terms", len(terms))
	return terms, nil
}

// invalidUTF8 returns the offset of the first byte that is not part of a
// valid UTF-8 sequence, or -1.
func invalidUTF8(source []byte) int {
	for i := 0; i < len(source); {
		r, size := utf8.DecodeRune(source[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
