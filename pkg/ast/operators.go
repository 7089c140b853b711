package ast

import "fmt"

// BinaryOperator enumerates the infix operators.
type BinaryOperator int

const (
	BitwiseAnd BinaryOperator = iota
	BitwiseOr
	BitwiseXor
	Divide
	Exponent
	Minus
	Modulus
	Multiply
	Plus
	ShiftLeft
	ShiftRight
	Equal
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	LogicalAnd
	LogicalOr
	NotEqual
)

var binaryOperatorTokens = [...]string{
	BitwiseAnd:         "&",
	BitwiseOr:          "|",
	BitwiseXor:         "^",
	Divide:             "/",
	Exponent:           "**",
	Minus:              "-",
	Modulus:            "%",
	Multiply:           "*",
	Plus:               "+",
	ShiftLeft:          "<<",
	ShiftRight:         ">>",
	Equal:              "==",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	LogicalAnd:         "&&",
	LogicalOr:          "||",
	NotEqual:           "!=",
}

// BinaryOperators lists every binary operator in declaration order.
func BinaryOperators() []BinaryOperator {
	ops := make([]BinaryOperator, len(binaryOperatorTokens))
	for i := range ops {
		ops[i] = BinaryOperator(i)
	}
	return ops
}

// String returns the operator's source token.
func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryOperatorTokens) {
		return binaryOperatorTokens[op]
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

func (op BinaryOperator) IsArithmetic() bool {
	return op >= BitwiseAnd && op <= ShiftRight
}

func (op BinaryOperator) IsLogical() bool {
	return op >= Equal && op <= NotEqual
}

// UnaryOperator enumerates the prefix operators.
type UnaryOperator int

const (
	UnaryLogicalNot UnaryOperator = iota
	UnaryMinus
	UnaryPlus
)

var unaryOperatorTokens = [...]string{
	UnaryLogicalNot: "!",
	UnaryMinus:      "-",
	UnaryPlus:       "+",
}

// UnaryOperators lists every unary operator in declaration order.
func UnaryOperators() []UnaryOperator {
	return []UnaryOperator{UnaryLogicalNot, UnaryMinus, UnaryPlus}
}

func (op UnaryOperator) String() string {
	if op >= 0 && int(op) < len(unaryOperatorTokens) {
		return unaryOperatorTokens[op]
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

func (op UnaryOperator) IsArithmetic() bool {
	return op == UnaryMinus || op == UnaryPlus
}

func (op UnaryOperator) IsLogical() bool {
	return op == UnaryLogicalNot
}
