package ast

// Accessors return the payload of one variant and report whether the Term
// holds that variant. They are safe on any Term, including nil.

func (t *Term) payload() payload {
	if t == nil {
		return nil
	}
	return t.inner
}

// NodeType reports the variant held by the Term. A nil Term has no type.
func (t *Term) NodeType() NodeType {
	if p := t.payload(); p != nil {
		return p.nodeType()
	}
	return ""
}

func (t *Term) Location() InputLocation {
	if t == nil {
		return InputLocation{}
	}
	return t.location
}

func (t *Term) Array() ([]*Term, bool) {
	p, ok := t.payload().(arrayPayload)
	return p.elements, ok
}

func (t *Term) Atom() (*Atom, bool) {
	p, ok := t.payload().(atomPayload)
	return p.atom, ok
}

func (t *Term) Binary() (op *Binary, lhs, rhs *Term, ok bool) {
	p, ok := t.payload().(binaryPayload)
	return p.op, p.lhs, p.rhs, ok
}

func (t *Term) Boolean() (*Boolean, bool) {
	p, ok := t.payload().(booleanPayload)
	return p.boolean, ok
}

func (t *Term) Call() (callee *Term, args []*Term, ok bool) {
	p, ok := t.payload().(callPayload)
	return p.callee, p.args, ok
}

func (t *Term) Constructor() (ty *Ty, properties []Property, ok bool) {
	p, ok := t.payload().(constructorPayload)
	return p.ty, p.properties, ok
}

func (t *Term) Declaration() (name *Identifier, value *Term, ok bool) {
	p, ok := t.payload().(declarationPayload)
	return p.name, p.value, ok
}

func (t *Term) Float() (*Float, bool) {
	p, ok := t.payload().(floatPayload)
	return p.float, ok
}

func (t *Term) Function() (*Function, bool) {
	p, ok := t.payload().(functionPayload)
	return p.function, ok
}

// If returns the test and both branches. negative is empty, not nil, when
// the source has no else clause.
func (t *Term) If() (test *Term, positive, negative []*Term, ok bool) {
	p, ok := t.payload().(ifPayload)
	return p.test, p.positive, p.negative, ok
}

func (t *Term) ImplDef() (ty *Ty, body []*Term, ok bool) {
	p, ok := t.payload().(implPayload)
	return p.ty, p.body, ok
}

func (t *Term) Integer() (*Integer, bool) {
	p, ok := t.payload().(integerPayload)
	return p.integer, ok
}

func (t *Term) Local() (*Local, bool) {
	p, ok := t.payload().(localPayload)
	return p.local, ok
}

func (t *Term) Map() ([]MapEntry, bool) {
	p, ok := t.payload().(mapPayload)
	return p.entries, ok
}

func (t *Term) MethodCall() (receiver *Term, name *Identifier, args []*Term, ok bool) {
	p, ok := t.payload().(methodCallPayload)
	return p.receiver, p.name, p.args, ok
}

func (t *Term) PropertyGet() (*Identifier, bool) {
	p, ok := t.payload().(propertyGetPayload)
	return p.name, ok
}

func (t *Term) PropertySet() ([]Property, bool) {
	p, ok := t.payload().(propertySetPayload)
	return p.properties, ok
}

func (t *Term) PublicMethod() (name *Identifier, args []Argument, body []*Term, ok bool) {
	return t.method(NodePublicMethod)
}

func (t *Term) PrivateMethod() (name *Identifier, args []Argument, body []*Term, ok bool) {
	return t.method(NodePrivateMethod)
}

func (t *Term) StaticMethod() (name *Identifier, args []Argument, body []*Term, ok bool) {
	return t.method(NodeStaticMethod)
}

func (t *Term) method(kind NodeType) (*Identifier, []Argument, []*Term, bool) {
	p, ok := t.payload().(methodPayload)
	if !ok || p.kind != kind {
		return nil, nil, nil, false
	}
	return p.name, p.args, p.body, true
}

// PublicMethodSpec returns a signature. returns is nil when the name is a
// predicate.
func (t *Term) PublicMethodSpec() (name *Identifier, args []Argument, returns *TypeSpec, ok bool) {
	return t.spec(NodePublicMethodSpec)
}

func (t *Term) StaticMethodSpec() (name *Identifier, args []Argument, returns *TypeSpec, ok bool) {
	return t.spec(NodeStaticMethodSpec)
}

func (t *Term) spec(kind NodeType) (*Identifier, []Argument, *TypeSpec, bool) {
	p, ok := t.payload().(specPayload)
	if !ok || p.kind != kind {
		return nil, nil, nil, false
	}
	return p.name, p.args, p.returns, true
}

// StringLiteral returns the String payload.
func (t *Term) StringLiteral() (*String, bool) {
	p, ok := t.payload().(stringPayload)
	return p.str, ok
}

// TraitDef returns the trait's type, its bounds (nil when none were written)
// and its body.
func (t *Term) TraitDef() (ty *Ty, bounds *TypeSpec, body []*Term, ok bool) {
	p, ok := t.payload().(traitPayload)
	return p.ty, p.bounds, p.body, ok
}

func (t *Term) Ty() (*Ty, bool) {
	p, ok := t.payload().(tyPayload)
	return p.ty, ok
}

func (t *Term) TypeDef() (ty *Ty, properties []Argument, body []*Term, ok bool) {
	p, ok := t.payload().(typeDefPayload)
	return p.ty, p.properties, p.body, ok
}

func (t *Term) Unary() (op *Unary, operand *Term, ok bool) {
	p, ok := t.payload().(unaryPayload)
	return p.op, p.operand, ok
}
