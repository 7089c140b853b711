package parser

import (
	"errors"
	"testing"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

func parseTree(t *testing.T, start grammar.Rule, source string) ([]*grammar.Node, []byte) {
	t.Helper()
	src := []byte(source)
	tree, err := grammar.Baik().Parse(start, src)
	if err != nil {
		t.Fatalf("grammar parse of %q failed: %v", source, err)
	}
	return tree.Nodes(), src
}

func TestConverterRejectsUnexpectedRules(t *testing.T) {
	nodes, src := parseTree(t, grammar.Input, "123")
	if len(nodes) != 2 || nodes[1].Rule() != grammar.EOI {
		t.Fatalf("expected integer followed by EOI, got %v", nodes)
	}
	c := &converter{source: src, maxDepth: DefaultMaxNesting}

	checks := []struct {
		name string
		run  func() error
	}{
		{"atom", func() error { _, err := c.parseAtom(nodes[0]); return err }},
		{"boolean", func() error { _, err := c.parseBoolean(nodes[0]); return err }},
		{"float", func() error { _, err := c.parseFloat(nodes[0]); return err }},
		{"string", func() error { _, err := c.parseString(nodes[0]); return err }},
		{"identifier", func() error { _, err := c.parseIdentifier(nodes[0]); return err }},
		{"type spec", func() error { _, err := c.parseTypeSpec(nodes[0]); return err }},
		{"binary", func() error { _, err := c.parseBinaryOperator(nodes[0]); return err }},
		{"unary", func() error { _, err := c.parseUnaryOperator(nodes[0]); return err }},
		{"term", func() error { _, err := c.parseTerm(nodes[1]); return err }},
	}
	for _, check := range checks {
		err := check.run()
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("%s: expected *ParseError, got %v", check.name, err)
		}
		if perr.Kind != AstGeneration {
			t.Fatalf("%s: expected AstGeneration, got %s", check.name, perr.Kind)
		}
		if errors.Is(err, ErrGrammarMismatch) {
			t.Fatalf("%s: internal error reported as a syntax error", check.name)
		}
	}
}

func TestConverterReportsRuleAndLocation(t *testing.T) {
	nodes, src := parseTree(t, grammar.Input, "  :wat")
	c := &converter{source: src, maxDepth: DefaultMaxNesting}
	_, err := c.parseInteger(nodes[0])
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Rule != grammar.Atom {
		t.Fatalf("expected rule atom, got %s", perr.Rule)
	}
	if perr.Location != ast.Span(2, 6) {
		t.Fatalf("expected span 2..6, got %s", perr.Location)
	}
}

func TestIdentifierForms(t *testing.T) {
	cases := []struct {
		source    string
		start     grammar.Rule
		path      []int
		value     string
		predicate bool
	}{
		// declaration: [ident, assign, term]
		{"speed = 1", grammar.Input, []int{0, 0}, "speed", false},
		// constructor property: [keyword, term]
		{"T { name: 1 }", grammar.Input, []int{0, 1, 0}, "name", false},
		// def valid?() {}
		{"impl T do def valid? {} end", grammar.File, []int{0, 1, 0, 0}, "valid?", true},
		// instance block holding a property read
		{"impl T do def get { @name } end", grammar.File, []int{0, 1, 0, 2, 0}, "name", false},
	}
	for _, tc := range cases {
		nodes, src := parseTree(t, tc.start, tc.source)
		node := nodes[0]
		for _, i := range tc.path[1:] {
			node = node.Child(i)
			if node == nil {
				t.Fatalf("%s: missing child %d", tc.source, i)
			}
		}
		c := &converter{source: src}
		id, err := c.parseIdentifier(node)
		if err != nil {
			t.Fatalf("%s: %v", tc.source, err)
		}
		if id.Value() != tc.value || id.HasPredicate() != tc.predicate {
			t.Fatalf("%s: expected %q (predicate %v), got %q (predicate %v)", tc.source, tc.value, tc.predicate, id.Value(), id.HasPredicate())
		}
	}
}
