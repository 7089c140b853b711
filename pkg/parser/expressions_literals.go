package parser

import (
	"strconv"
	"strings"

	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

// Leaf converters. Each accepts exactly the rules it documents and reports
// any other rule as an AstGeneration error.

// parseAtom reads `:name` atoms and `name:` keywords used as map keys.
func (c *converter) parseAtom(node *grammar.Node) (*ast.Atom, error) {
	text := sliceContent(node, c.source)
	switch node.Rule() {
	case grammar.Atom:
		if len(text) < 2 {
			return nil, malformed(node, "empty atom")
		}
		return ast.NewAtom(text[1:], locationOf(node)), nil
	case grammar.Keyword:
		if len(text) < 2 {
			return nil, malformed(node, "empty keyword")
		}
		return ast.NewAtom(text[:len(text)-1], locationOf(node)), nil
	case grammar.Ident:
		return ast.NewAtom(text, locationOf(node)), nil
	default:
		return nil, unexpectedRule(node)
	}
}

func (c *converter) parseBoolean(node *grammar.Node) (*ast.Boolean, error) {
	if err := expectRule(node, grammar.Boolean); err != nil {
		return nil, err
	}
	inner, err := singleChild(node, grammar.BooleanTrue, grammar.BooleanFalse)
	if err != nil {
		return nil, err
	}
	return ast.NewBoolean(inner.Rule() == grammar.BooleanTrue, locationOf(node)), nil
}

var integerRadix = map[grammar.Rule]int{
	grammar.IntegerDecimal:     10,
	grammar.IntegerZero:        10,
	grammar.IntegerHexadecimal: 16,
	grammar.IntegerOctal:       8,
	grammar.IntegerBinary:      2,
}

func (c *converter) parseInteger(node *grammar.Node) (*ast.Integer, error) {
	if err := expectRule(node, grammar.Integer); err != nil {
		return nil, err
	}
	inner, err := singleChild(node)
	if err != nil {
		return nil, err
	}
	radix, ok := integerRadix[inner.Rule()]
	if !ok {
		return nil, unexpectedRule(inner)
	}
	digits := strings.ReplaceAll(sliceContent(inner, c.source), "_", "")
	if digits == "" {
		return nil, malformed(inner, "integer literal has no digits")
	}
	value, err := strconv.ParseInt(digits, radix, 64)
	if err != nil {
		return nil, invalidLiteral(node, err)
	}
	return ast.NewInteger(value, radix, locationOf(node)), nil
}

func (c *converter) parseFloat(node *grammar.Node) (*ast.Float, error) {
	if err := expectRule(node, grammar.Float); err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(sliceContent(node, c.source), 64)
	if err != nil {
		return nil, invalidLiteral(node, err)
	}
	return ast.NewFloat(value, locationOf(node)), nil
}

// parseString keeps the text between the delimiters verbatim; escapes are
// not processed.
func (c *converter) parseString(node *grammar.Node) (*ast.String, error) {
	if err := expectRule(node, grammar.String); err != nil {
		return nil, err
	}
	inner, err := singleChild(node, grammar.StringDouble, grammar.StringSingle)
	if err != nil {
		return nil, err
	}
	return ast.NewString(sliceContent(inner, c.source), locationOf(node)), nil
}

func (c *converter) parseLocal(node *grammar.Node) (*ast.Local, error) {
	if err := expectRule(node, grammar.Local); err != nil {
		return nil, err
	}
	return ast.NewLocal(sliceContent(node, c.source), locationOf(node)), nil
}

func (c *converter) parseTy(node *grammar.Node) (*ast.Ty, error) {
	if err := expectRule(node, grammar.Typename); err != nil {
		return nil, err
	}
	return ast.NewTy(sliceContent(node, c.source), locationOf(node)), nil
}

// parseIdentifier accepts plain names, `name:` keywords, `name?` predicate
// method names and `@name` property reads.
func (c *converter) parseIdentifier(node *grammar.Node) (*ast.Identifier, error) {
	text := sliceContent(node, c.source)
	loc := locationOf(node)
	switch node.Rule() {
	case grammar.Ident, grammar.MethodName:
		return ast.NewIdentifier(text, false, loc), nil
	case grammar.Keyword:
		if text == "" {
			return nil, malformed(node, "empty keyword")
		}
		return ast.NewIdentifier(text[:len(text)-1], false, loc), nil
	case grammar.MethodNameWithPredicate:
		return ast.NewIdentifier(text, true, loc), nil
	case grammar.PropertyGet:
		if text == "" {
			return nil, malformed(node, "empty property name")
		}
		return ast.NewIdentifier(text[1:], false, loc), nil
	default:
		return nil, unexpectedRule(node)
	}
}

func (c *converter) parseTypeSpec(node *grammar.Node) (*ast.TypeSpec, error) {
	if err := expectRule(node, grammar.TypeSpec); err != nil {
		return nil, err
	}
	types := make([]*ast.Ty, 0, node.ChildCount())
	for _, child := range node.Children() {
		ty, err := c.parseTy(child)
		if err != nil {
			return nil, err
		}
		types = append(types, ty)
	}
	return ast.NewTypeSpec(types, locationOf(node)), nil
}

var binaryOperators = map[grammar.Rule]ast.BinaryOperator{
	grammar.BitwiseAnd:         ast.BitwiseAnd,
	grammar.BitwiseOr:          ast.BitwiseOr,
	grammar.BitwiseXor:         ast.BitwiseXor,
	grammar.Divide:             ast.Divide,
	grammar.Exponent:           ast.Exponent,
	grammar.Minus:              ast.Minus,
	grammar.Modulus:            ast.Modulus,
	grammar.Multiply:           ast.Multiply,
	grammar.Plus:               ast.Plus,
	grammar.ShiftLeft:          ast.ShiftLeft,
	grammar.ShiftRight:         ast.ShiftRight,
	grammar.Equal:              ast.Equal,
	grammar.GreaterThan:        ast.GreaterThan,
	grammar.GreaterThanOrEqual: ast.GreaterThanOrEqual,
	grammar.LessThan:           ast.LessThan,
	grammar.LessThanOrEqual:    ast.LessThanOrEqual,
	grammar.LogicalAnd:         ast.LogicalAnd,
	grammar.LogicalOr:          ast.LogicalOr,
	grammar.NotEqual:           ast.NotEqual,
}

var unaryOperators = map[grammar.Rule]ast.UnaryOperator{
	grammar.LogicalNot: ast.UnaryLogicalNot,
	grammar.Minus:      ast.UnaryMinus,
	grammar.Plus:       ast.UnaryPlus,
}

func (c *converter) parseBinaryOperator(node *grammar.Node) (*ast.Binary, error) {
	op, ok := binaryOperators[node.Rule()]
	if !ok {
		return nil, unexpectedRule(node)
	}
	return ast.NewBinary(op, locationOf(node)), nil
}

func (c *converter) parseUnaryOperator(node *grammar.Node) (*ast.Unary, error) {
	op, ok := unaryOperators[node.Rule()]
	if !ok {
		return nil, unexpectedRule(node)
	}
	return ast.NewUnary(op, locationOf(node)), nil
}
