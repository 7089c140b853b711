package parser

import "baik/interpreter-go/pkg/grammar"

// expectRule fails unless node was produced by one of the given rules.
func expectRule(node *grammar.Node, rules ...grammar.Rule) error {
	if node == nil {
		return &ParseError{Kind: AstGeneration, Detail: "missing node"}
	}
	for _, r := range rules {
		if node.Rule() == r {
			return nil
		}
	}
	return unexpectedRule(node)
}

// childAt returns the i-th child of parent, failing when it is missing or
// was produced by an unexpected rule.
func childAt(parent *grammar.Node, i int, rules ...grammar.Rule) (*grammar.Node, error) {
	child := parent.Child(i)
	if child == nil {
		return nil, malformed(parent, "missing child %d", i)
	}
	if len(rules) > 0 {
		if err := expectRule(child, rules...); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// singleChild unwraps a node that holds exactly one child.
func singleChild(node *grammar.Node, rules ...grammar.Rule) (*grammar.Node, error) {
	if node.ChildCount() != 1 {
		return nil, malformed(node, "expected one child, found %d", node.ChildCount())
	}
	return childAt(node, 0, rules...)
}
