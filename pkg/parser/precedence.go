package parser

import (
	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

type associativity int

const (
	assocLeft associativity = iota
	assocRight
)

type precedence struct {
	level int
	assoc associativity
}

// infixPrecedence orders operators from loosest (1) to tightest (10).
var infixPrecedence = map[grammar.Rule]precedence{
	grammar.LogicalOr:          {1, assocLeft},
	grammar.LogicalAnd:         {2, assocLeft},
	grammar.Equal:              {3, assocRight},
	grammar.NotEqual:           {3, assocRight},
	grammar.GreaterThanOrEqual: {4, assocLeft},
	grammar.LessThanOrEqual:    {4, assocLeft},
	grammar.GreaterThan:        {4, assocLeft},
	grammar.LessThan:           {4, assocLeft},
	grammar.BitwiseXor:         {5, assocLeft},
	grammar.BitwiseOr:          {5, assocLeft},
	grammar.BitwiseAnd:         {6, assocLeft},
	grammar.ShiftRight:         {7, assocLeft},
	grammar.ShiftLeft:          {7, assocLeft},
	grammar.Plus:               {8, assocLeft},
	grammar.Minus:              {8, assocLeft},
	grammar.Modulus:            {9, assocLeft},
	grammar.Divide:             {9, assocLeft},
	grammar.Multiply:           {9, assocLeft},
	grammar.Exponent:           {10, assocRight},
}

// climber folds the flat operand/operator children of an infix node.
type climber struct {
	c     *converter
	items []*grammar.Node
	pos   int
}

func (c *converter) parseInfix(node *grammar.Node) (*ast.Term, error) {
	if err := expectRule(node, grammar.Infix, grammar.InstanceInfix); err != nil {
		return nil, err
	}
	items := node.Children()
	if len(items) < 3 || len(items)%2 == 0 {
		return nil, malformed(node, "infix expression with %d children", len(items))
	}
	lhs, err := c.parseTerm(items[0])
	if err != nil {
		return nil, err
	}
	cl := &climber{c: c, items: items, pos: 1}
	return cl.climb(lhs, 1)
}

func (cl *climber) peek() (*grammar.Node, precedence, error) {
	op := cl.items[cl.pos]
	prec, ok := infixPrecedence[op.Rule()]
	if !ok {
		return nil, precedence{}, unexpectedRule(op)
	}
	return op, prec, nil
}

// climb extends lhs with every following operator that binds at least as
// tightly as minLevel.
func (cl *climber) climb(lhs *ast.Term, minLevel int) (*ast.Term, error) {
	if err := cl.c.enter(cl.items[cl.pos]); err != nil {
		return nil, err
	}
	defer cl.c.leave()

	for cl.pos < len(cl.items) {
		opNode, prec, err := cl.peek()
		if err != nil {
			return nil, err
		}
		if prec.level < minLevel {
			break
		}
		op, err := cl.c.parseBinaryOperator(opNode)
		if err != nil {
			return nil, err
		}
		rhs, err := cl.c.parseTerm(cl.items[cl.pos+1])
		if err != nil {
			return nil, err
		}
		cl.pos += 2

		for cl.pos < len(cl.items) {
			_, next, err := cl.peek()
			if err != nil {
				return nil, err
			}
			if next.level > prec.level {
				rhs, err = cl.climb(rhs, prec.level+1)
			} else if next.level == prec.level && next.assoc == assocRight {
				rhs, err = cl.climb(rhs, prec.level)
			} else {
				break
			}
			if err != nil {
				return nil, err
			}
		}
		lhs = ast.NewBinaryTerm(op, lhs, rhs)
	}
	return lhs, nil
}
