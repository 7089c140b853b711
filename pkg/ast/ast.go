package ast

// NodeType identifies the variant held by a Term.
type NodeType string

const (
	NodeAtom             NodeType = "Atom"
	NodeBoolean          NodeType = "Boolean"
	NodeFloat            NodeType = "Float"
	NodeInteger          NodeType = "Integer"
	NodeString           NodeType = "String"
	NodeTy               NodeType = "Ty"
	NodeArray            NodeType = "Array"
	NodeMap              NodeType = "Map"
	NodeBinary           NodeType = "Binary"
	NodeUnary            NodeType = "Unary"
	NodeConstructor      NodeType = "Constructor"
	NodeCall             NodeType = "Call"
	NodeDeclaration      NodeType = "Declaration"
	NodeFunction         NodeType = "Function"
	NodeIf               NodeType = "If"
	NodeLocal            NodeType = "Local"
	NodeMethodCall       NodeType = "MethodCall"
	NodePropertyGet      NodeType = "PropertyGet"
	NodePropertySet      NodeType = "PropertySet"
	NodeTypeDef          NodeType = "TypeDef"
	NodeTraitDef         NodeType = "TraitDef"
	NodeImplDef          NodeType = "ImplDef"
	NodePublicMethod     NodeType = "PublicMethod"
	NodePublicMethodSpec NodeType = "PublicMethodSpec"
	NodePrivateMethod    NodeType = "PrivateMethod"
	NodeStaticMethod     NodeType = "StaticMethod"
	NodeStaticMethodSpec NodeType = "StaticMethodSpec"
)

// NodeTypes lists every Term variant.
func NodeTypes() []NodeType {
	return []NodeType{
		NodeAtom, NodeBoolean, NodeFloat, NodeInteger, NodeString, NodeTy,
		NodeArray, NodeMap, NodeBinary, NodeUnary, NodeConstructor, NodeCall,
		NodeDeclaration, NodeFunction, NodeIf, NodeLocal, NodeMethodCall,
		NodePropertyGet, NodePropertySet, NodeTypeDef, NodeTraitDef, NodeImplDef,
		NodePublicMethod, NodePublicMethodSpec, NodePrivateMethod, NodeStaticMethod,
		NodeStaticMethodSpec,
	}
}

// Term is a node of the syntax tree. The payload is fixed at construction
// and only reachable through the typed accessors.
type Term struct {
	location InputLocation
	inner    payload
}

type payload interface {
	nodeType() NodeType
}

type arrayPayload struct{ elements []*Term }

type atomPayload struct{ atom *Atom }

type binaryPayload struct {
	op       *Binary
	lhs, rhs *Term
}

type booleanPayload struct{ boolean *Boolean }

type callPayload struct {
	callee *Term
	args   []*Term
}

type constructorPayload struct {
	ty         *Ty
	properties []Property
}

type declarationPayload struct {
	name  *Identifier
	value *Term
}

type floatPayload struct{ float *Float }

type functionPayload struct{ function *Function }

type ifPayload struct {
	test     *Term
	positive []*Term
	negative []*Term
}

type implPayload struct {
	ty   *Ty
	body []*Term
}

type integerPayload struct{ integer *Integer }

type localPayload struct{ local *Local }

type mapPayload struct{ entries []MapEntry }

type methodCallPayload struct {
	receiver *Term
	name     *Identifier
	args     []*Term
}

type propertyGetPayload struct{ name *Identifier }

type propertySetPayload struct{ properties []Property }

type stringPayload struct{ str *String }

type traitPayload struct {
	ty     *Ty
	bounds *TypeSpec
	body   []*Term
}

type tyPayload struct{ ty *Ty }

type typeDefPayload struct {
	ty         *Ty
	properties []Argument
	body       []*Term
}

type unaryPayload struct {
	op      *Unary
	operand *Term
}

// methodPayload backs PublicMethod, PrivateMethod and StaticMethod.
type methodPayload struct {
	kind NodeType
	name *Identifier
	args []Argument
	body []*Term
}

// specPayload backs PublicMethodSpec and StaticMethodSpec. returns is nil
// for predicate signatures.
type specPayload struct {
	kind    NodeType
	name    *Identifier
	args    []Argument
	returns *TypeSpec
}

func (arrayPayload) nodeType() NodeType       { return NodeArray }
func (atomPayload) nodeType() NodeType        { return NodeAtom }
func (binaryPayload) nodeType() NodeType      { return NodeBinary }
func (booleanPayload) nodeType() NodeType     { return NodeBoolean }
func (callPayload) nodeType() NodeType        { return NodeCall }
func (constructorPayload) nodeType() NodeType { return NodeConstructor }
func (declarationPayload) nodeType() NodeType { return NodeDeclaration }
func (floatPayload) nodeType() NodeType       { return NodeFloat }
func (functionPayload) nodeType() NodeType    { return NodeFunction }
func (ifPayload) nodeType() NodeType          { return NodeIf }
func (implPayload) nodeType() NodeType        { return NodeImplDef }
func (integerPayload) nodeType() NodeType     { return NodeInteger }
func (localPayload) nodeType() NodeType       { return NodeLocal }
func (mapPayload) nodeType() NodeType         { return NodeMap }
func (methodCallPayload) nodeType() NodeType  { return NodeMethodCall }
func (propertyGetPayload) nodeType() NodeType { return NodePropertyGet }
func (propertySetPayload) nodeType() NodeType { return NodePropertySet }
func (stringPayload) nodeType() NodeType      { return NodeString }
func (traitPayload) nodeType() NodeType       { return NodeTraitDef }
func (tyPayload) nodeType() NodeType          { return NodeTy }
func (typeDefPayload) nodeType() NodeType     { return NodeTypeDef }
func (unaryPayload) nodeType() NodeType       { return NodeUnary }
func (p methodPayload) nodeType() NodeType    { return p.kind }
func (p specPayload) nodeType() NodeType      { return p.kind }

func NewArrayTerm(location InputLocation, elements []*Term) *Term {
	return &Term{location: location, inner: arrayPayload{elements: elements}}
}

func NewAtomTerm(location InputLocation, atom *Atom) *Term {
	return &Term{location: location, inner: atomPayload{atom: atom}}
}

// NewBinaryTerm locates the expression at its operator token.
func NewBinaryTerm(op *Binary, lhs, rhs *Term) *Term {
	return &Term{location: op.Location(), inner: binaryPayload{op: op, lhs: lhs, rhs: rhs}}
}

func NewBooleanTerm(location InputLocation, boolean *Boolean) *Term {
	return &Term{location: location, inner: booleanPayload{boolean: boolean}}
}

func NewCallTerm(location InputLocation, callee *Term, args []*Term) *Term {
	return &Term{location: location, inner: callPayload{callee: callee, args: args}}
}

func NewConstructorTerm(location InputLocation, ty *Ty, properties []Property) *Term {
	return &Term{location: location, inner: constructorPayload{ty: ty, properties: properties}}
}

func NewDeclarationTerm(location InputLocation, name *Identifier, value *Term) *Term {
	return &Term{location: location, inner: declarationPayload{name: name, value: value}}
}

func NewFloatTerm(location InputLocation, float *Float) *Term {
	return &Term{location: location, inner: floatPayload{float: float}}
}

func NewFunctionTerm(location InputLocation, function *Function) *Term {
	return &Term{location: location, inner: functionPayload{function: function}}
}

func NewIfTerm(location InputLocation, test *Term, positive, negative []*Term) *Term {
	if negative == nil {
		negative = []*Term{}
	}
	return &Term{location: location, inner: ifPayload{test: test, positive: positive, negative: negative}}
}

func NewImplDefTerm(location InputLocation, ty *Ty, body []*Term) *Term {
	return &Term{location: location, inner: implPayload{ty: ty, body: body}}
}

func NewIntegerTerm(location InputLocation, integer *Integer) *Term {
	return &Term{location: location, inner: integerPayload{integer: integer}}
}

func NewLocalTerm(location InputLocation, local *Local) *Term {
	return &Term{location: location, inner: localPayload{local: local}}
}

func NewMapTerm(location InputLocation, entries []MapEntry) *Term {
	return &Term{location: location, inner: mapPayload{entries: entries}}
}

// NewMethodCallTerm locates the call at its receiver.
func NewMethodCallTerm(receiver *Term, name *Identifier, args []*Term) *Term {
	return &Term{location: receiver.Location(), inner: methodCallPayload{receiver: receiver, name: name, args: args}}
}

func NewPropertyGetTerm(location InputLocation, name *Identifier) *Term {
	return &Term{location: location, inner: propertyGetPayload{name: name}}
}

func NewPropertySetTerm(location InputLocation, properties []Property) *Term {
	return &Term{location: location, inner: propertySetPayload{properties: properties}}
}

func NewStringTerm(location InputLocation, str *String) *Term {
	return &Term{location: location, inner: stringPayload{str: str}}
}

func NewTraitDefTerm(location InputLocation, ty *Ty, bounds *TypeSpec, body []*Term) *Term {
	return &Term{location: location, inner: traitPayload{ty: ty, bounds: bounds, body: body}}
}

func NewTyTerm(location InputLocation, ty *Ty) *Term {
	return &Term{location: location, inner: tyPayload{ty: ty}}
}

func NewTypeDefTerm(location InputLocation, ty *Ty, properties []Argument, body []*Term) *Term {
	return &Term{location: location, inner: typeDefPayload{ty: ty, properties: properties, body: body}}
}

func NewUnaryTerm(location InputLocation, op *Unary, operand *Term) *Term {
	return &Term{location: location, inner: unaryPayload{op: op, operand: operand}}
}

func NewPublicMethodTerm(location InputLocation, name *Identifier, args []Argument, body []*Term) *Term {
	return &Term{location: location, inner: methodPayload{kind: NodePublicMethod, name: name, args: args, body: body}}
}

func NewPrivateMethodTerm(location InputLocation, name *Identifier, args []Argument, body []*Term) *Term {
	return &Term{location: location, inner: methodPayload{kind: NodePrivateMethod, name: name, args: args, body: body}}
}

func NewStaticMethodTerm(location InputLocation, name *Identifier, args []Argument, body []*Term) *Term {
	return &Term{location: location, inner: methodPayload{kind: NodeStaticMethod, name: name, args: args, body: body}}
}

// NewPublicMethodSpecTerm builds a signature-only method. returns is nil for
// predicate methods.
func NewPublicMethodSpecTerm(location InputLocation, name *Identifier, args []Argument, returns *TypeSpec) *Term {
	return &Term{location: location, inner: specPayload{kind: NodePublicMethodSpec, name: name, args: args, returns: returns}}
}

func NewStaticMethodSpecTerm(location InputLocation, name *Identifier, args []Argument, returns *TypeSpec) *Term {
	return &Term{location: location, inner: specPayload{kind: NodeStaticMethodSpec, name: name, args: args, returns: returns}}
}

func (t *Term) String() string {
	return Format(t)
}
