package grammar

import "fmt"

// Rule identifies a grammar rule. Every node in a parse tree is tagged with
// the rule that produced it.
type Rule int

const (
	ruleInvalid Rule = iota

	EOI
	Input
	File

	// Silent helpers. They never appear as node tags.
	Definition
	Term
	InstanceTerm
	Operand
	InstanceOperand
	InfixOperand
	Receiver
	Literal
	BinaryOperator
	UnaryOperator
	MethodSegment
	CallArguments
	Reserved

	Array
	Atom
	Boolean
	BooleanTrue
	BooleanFalse
	Float
	Integer
	IntegerDecimal
	IntegerHexadecimal
	IntegerOctal
	IntegerBinary
	IntegerZero
	String
	StringDouble
	StringSingle
	Map
	MapPair
	Local
	Ident
	Keyword
	Typename
	TypeSpec
	MethodName
	MethodNameWithPredicate
	PropertyGet
	PropertySet
	PropertyAssignment
	CallLocal
	CallArgument
	CallMethod
	Constructor
	ConstructorProperty
	Declaration
	Assign
	Function
	FunctionClause
	ArgumentList
	Argument
	Block
	InstanceBlock
	IfExpression
	Infix
	InstanceInfix
	Unary

	LogicalNot
	Plus
	Minus
	Multiply
	Divide
	Modulus
	Exponent
	ShiftLeft
	ShiftRight
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LogicalAnd
	LogicalOr
	Equal
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual

	TypeDef
	TypeBody
	TraitDef
	TraitBounds
	TraitBody
	ImplDef
	ImplBody
	DefPublicMethod
	DefPrivateMethod
	DefStaticMethod
	DefPublicSpec
	DefStaticSpec
	ReturnType

	ruleCount
)

var ruleNames = [...]string{
	ruleInvalid:             "invalid",
	EOI:                     "EOI",
	Input:                   "input",
	File:                    "file",
	Definition:              "definition",
	Term:                    "term",
	InstanceTerm:            "instance_term",
	Operand:                 "operand",
	InstanceOperand:         "instance_operand",
	InfixOperand:            "infix_operand",
	Receiver:                "receiver",
	Literal:                 "literal",
	BinaryOperator:          "binary_operator",
	UnaryOperator:           "unary_operator",
	MethodSegment:           "method_segment",
	CallArguments:           "call_arguments",
	Reserved:                "reserved",
	Array:                   "array",
	Atom:                    "atom",
	Boolean:                 "boolean",
	BooleanTrue:             "boolean_true",
	BooleanFalse:            "boolean_false",
	Float:                   "float",
	Integer:                 "integer",
	IntegerDecimal:          "integer_decimal",
	IntegerHexadecimal:      "integer_hexadecimal",
	IntegerOctal:            "integer_octal",
	IntegerBinary:           "integer_binary",
	IntegerZero:             "integer_zero",
	String:                  "string",
	StringDouble:            "string_double",
	StringSingle:            "string_single",
	Map:                     "map",
	MapPair:                 "map_pair",
	Local:                   "local",
	Ident:                   "ident",
	Keyword:                 "keyword",
	Typename:                "typename",
	TypeSpec:                "typespec",
	MethodName:              "methodname",
	MethodNameWithPredicate: "methodnamewithpredicate",
	PropertyGet:             "property_get",
	PropertySet:             "property_set",
	PropertyAssignment:      "property_assignment",
	CallLocal:               "call_local",
	CallArgument:            "call_argument",
	CallMethod:              "call_method",
	Constructor:             "constructor",
	ConstructorProperty:     "constructor_property",
	Declaration:             "declaration",
	Assign:                  "assign",
	Function:                "function",
	FunctionClause:          "function_clause",
	ArgumentList:            "argument_list",
	Argument:                "argument",
	Block:                   "block",
	InstanceBlock:           "instance_block",
	IfExpression:            "if_expression",
	Infix:                   "infix",
	InstanceInfix:           "instance_infix",
	Unary:                   "unary",
	LogicalNot:              "logical_not",
	Plus:                    "plus",
	Minus:                   "minus",
	Multiply:                "multiply",
	Divide:                  "divide",
	Modulus:                 "modulus",
	Exponent:                "exponent",
	ShiftLeft:               "shift_left",
	ShiftRight:              "shift_right",
	BitwiseAnd:              "bitwise_and",
	BitwiseOr:               "bitwise_or",
	BitwiseXor:              "bitwise_xor",
	LogicalAnd:              "logical_and",
	LogicalOr:               "logical_or",
	Equal:                   "equal",
	NotEqual:                "not_equal",
	GreaterThan:             "greater_than",
	GreaterThanOrEqual:      "greater_than_or_equal",
	LessThan:                "less_than",
	LessThanOrEqual:         "less_than_or_equal",
	TypeDef:                 "typedef",
	TypeBody:                "type_body",
	TraitDef:                "traitdef",
	TraitBounds:             "trait_bounds",
	TraitBody:               "trait_body",
	ImplDef:                 "impldef",
	ImplBody:                "impl_body",
	DefPublicMethod:         "defpublicmethod",
	DefPrivateMethod:        "defprivatemethod",
	DefStaticMethod:         "defstaticmethod",
	DefPublicSpec:           "defpublicspec",
	DefStaticSpec:           "defstaticspec",
	ReturnType:              "return_type",
}

func (r Rule) String() string {
	if r >= 0 && r < ruleCount {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", int(r))
}

// LookupRule resolves a rule by its grammar name.
func LookupRule(name string) (Rule, bool) {
	for r := ruleInvalid + 1; r < ruleCount; r++ {
		if ruleNames[r] == name {
			return r, true
		}
	}
	return ruleInvalid, false
}
