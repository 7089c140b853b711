package parser

import (
	"errors"
	"fmt"
	"strings"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// GrammarMismatch is a syntax error in the user's source.
	GrammarMismatch ErrorKind = iota + 1
	// AstGeneration means the grammar produced a node the converter does not
	// accept. It points at a defect in this package, never at the source.
	AstGeneration
	// NestingTooDeep means the source nests deeper than the configured limit.
	NestingTooDeep
	// InvalidLiteral is a literal the grammar accepts but whose value cannot
	// be represented, such as an integer overflowing 64 bits.
	InvalidLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarMismatch:
		return "GrammarMismatch"
	case AstGeneration:
		return "AstGeneration"
	case NestingTooDeep:
		return "NestingTooDeep"
	case InvalidLiteral:
		return "InvalidLiteral"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrGrammarMismatch = errors.New("parser: grammar mismatch")
	ErrAstGeneration   = errors.New("parser: ast generation")
	ErrNestingTooDeep  = errors.New("parser: nesting too deep")
	ErrInvalidLiteral  = errors.New("parser: invalid literal")
)

// ParseError is the single error type returned by Parse.
//
// GrammarMismatch fills Positives, Negatives and a position Location.
// AstGeneration and InvalidLiteral fill Rule and a span Location.
// NestingTooDeep fills Rule, Location and Limit.
type ParseError struct {
	Kind      ErrorKind
	Positives []grammar.Rule
	Negatives []grammar.Rule
	Rule      grammar.Rule
	Location  ast.InputLocation
	Limit     int
	Detail    string
	Err       error

	incomplete bool
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parser: ")
	switch e.Kind {
	case GrammarMismatch:
		fmt.Fprintf(&b, "syntax error at %s", e.Location)
		if len(e.Positives) > 0 {
			b.WriteString(": expected ")
			b.WriteString(describeRules(e.Positives))
		}
		if len(e.Negatives) > 0 {
			b.WriteString(": unexpected ")
			b.WriteString(describeRules(e.Negatives))
		}
	case AstGeneration:
		fmt.Fprintf(&b, "cannot build syntax tree from %s at %s", e.Rule, e.Location)
	case NestingTooDeep:
		fmt.Fprintf(&b, "nesting too deep at %s (limit %d)", e.Location, e.Limit)
	case InvalidLiteral:
		fmt.Fprintf(&b, "invalid %s literal at %s", e.Rule, e.Location)
	default:
		fmt.Fprintf(&b, "error at %s", e.Location)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrGrammarMismatch:
		return e.Kind == GrammarMismatch
	case ErrAstGeneration:
		return e.Kind == AstGeneration
	case ErrNestingTooDeep:
		return e.Kind == NestingTooDeep
	case ErrInvalidLiteral:
		return e.Kind == InvalidLiteral
	}
	return false
}

// Position resolves the error location to a line and column in source.
func (e *ParseError) Position(source []byte) ast.Position {
	return e.Location.StartPosition(source)
}

// IsIncomplete reports whether err is a syntax error caused by the source
// ending early, so that appending more text could make it parse.
func IsIncomplete(err error) bool {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return false
	}
	return perr.Kind == GrammarMismatch && perr.incomplete
}

// classifyGrammarError wraps a grammar failure. Depth failures report the
// Term nesting limit the caller configured, with the rule depth as detail.
func classifyGrammarError(err error, maxNesting int) error {
	var mismatch *grammar.Error
	if errors.As(err, &mismatch) {
		return &ParseError{
			Kind:       GrammarMismatch,
			Positives:  mismatch.Positives,
			Negatives:  mismatch.Negatives,
			Location:   ast.Pos(mismatch.Pos),
			Err:        err,
			incomplete: mismatch.AtEnd(),
		}
	}
	var depth *grammar.DepthError
	if errors.As(err, &depth) {
		return &ParseError{
			Kind:     NestingTooDeep,
			Location: ast.Pos(depth.Pos),
			Limit:    maxNesting,
			Detail:   fmt.Sprintf("grammar rule depth %d exceeded", depth.Limit),
			Err:      err,
		}
	}
	return fmt.Errorf("parser: %w", err)
}

func unexpectedRule(node *grammar.Node) *ParseError {
	return &ParseError{
		Kind:     AstGeneration,
		Rule:     node.Rule(),
		Location: locationOf(node),
	}
}

func malformed(node *grammar.Node, format string, args ...any) *ParseError {
	perr := unexpectedRule(node)
	perr.Detail = fmt.Sprintf(format, args...)
	return perr
}

func invalidLiteral(node *grammar.Node, err error) *ParseError {
	return &ParseError{
		Kind:     InvalidLiteral,
		Rule:     node.Rule(),
		Location: locationOf(node),
		Detail:   err.Error(),
		Err:      err,
	}
}

func describeRules(rules []grammar.Rule) string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = describeRule(r)
	}
	return strings.Join(names, ", ")
}

func describeRule(r grammar.Rule) string {
	switch r {
	case grammar.EOI:
		return "end of input"
	case grammar.Typename:
		return "type name"
	case grammar.TypeSpec:
		return "type spec"
	case grammar.MethodNameWithPredicate:
		return "predicate method name"
	case grammar.MethodName:
		return "method name"
	case grammar.Ident:
		return "identifier"
	case grammar.Local:
		return "local"
	}
	return strings.ReplaceAll(r.String(), "_", " ")
}
