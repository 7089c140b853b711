package parser

import (
	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

func locationOf(node *grammar.Node) ast.InputLocation {
	if node == nil {
		return ast.InputLocation{}
	}
	return ast.Span(node.StartByte(), node.EndByte())
}

func sliceContent(node *grammar.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(source)
}
