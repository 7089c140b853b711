package ast

// Leaf values. Each carries the location of the grammar node it was read
// from, independently of the Term that wraps it.

type Atom struct {
	value    string
	location InputLocation
}

func NewAtom(value string, location InputLocation) *Atom {
	return &Atom{value: value, location: location}
}

func (a *Atom) Value() string           { return a.value }
func (a *Atom) Location() InputLocation { return a.location }

type Boolean struct {
	value    bool
	location InputLocation
}

func NewBoolean(value bool, location InputLocation) *Boolean {
	return &Boolean{value: value, location: location}
}

func (b *Boolean) Value() bool             { return b.value }
func (b *Boolean) Location() InputLocation { return b.location }

type Float struct {
	value    float64
	location InputLocation
}

func NewFloat(value float64, location InputLocation) *Float {
	return &Float{value: value, location: location}
}

func (f *Float) Value() float64          { return f.value }
func (f *Float) Location() InputLocation { return f.location }

// Integer keeps the radix the literal was written in next to its value.
type Integer struct {
	value    int64
	radix    int
	location InputLocation
}

func NewInteger(value int64, radix int, location InputLocation) *Integer {
	return &Integer{value: value, radix: radix, location: location}
}

func (i *Integer) Value() int64            { return i.value }
func (i *Integer) Radix() int              { return i.radix }
func (i *Integer) Location() InputLocation { return i.location }

type String struct {
	value    string
	location InputLocation
}

func NewString(value string, location InputLocation) *String {
	return &String{value: value, location: location}
}

func (s *String) Value() string           { return s.value }
func (s *String) Location() InputLocation { return s.location }

// Identifier is a name. HasPredicate is set for names written with a
// trailing '?'.
type Identifier struct {
	value        string
	hasPredicate bool
	location     InputLocation
}

func NewIdentifier(value string, hasPredicate bool, location InputLocation) *Identifier {
	return &Identifier{value: value, hasPredicate: hasPredicate, location: location}
}

func (i *Identifier) Value() string           { return i.value }
func (i *Identifier) HasPredicate() bool      { return i.hasPredicate }
func (i *Identifier) Location() InputLocation { return i.location }

type Local struct {
	value    string
	location InputLocation
}

func NewLocal(value string, location InputLocation) *Local {
	return &Local{value: value, location: location}
}

func (l *Local) Value() string           { return l.value }
func (l *Local) Location() InputLocation { return l.location }

// Ty is a type name, possibly qualified (My.Greeter).
type Ty struct {
	value    string
	location InputLocation
}

func NewTy(value string, location InputLocation) *Ty {
	return &Ty{value: value, location: location}
}

func (t *Ty) Value() string           { return t.value }
func (t *Ty) Location() InputLocation { return t.location }

// TypeSpec is an ordered, possibly empty, list of types.
type TypeSpec struct {
	types    []*Ty
	location InputLocation
}

func NewTypeSpec(types []*Ty, location InputLocation) *TypeSpec {
	return &TypeSpec{types: types, location: location}
}

func (t *TypeSpec) Types() []*Ty            { return t.types }
func (t *TypeSpec) Location() InputLocation { return t.location }

type Binary struct {
	op       BinaryOperator
	location InputLocation
}

func NewBinary(op BinaryOperator, location InputLocation) *Binary {
	return &Binary{op: op, location: location}
}

func (b *Binary) Operator() BinaryOperator { return b.op }
func (b *Binary) Location() InputLocation  { return b.location }

type Unary struct {
	op       UnaryOperator
	location InputLocation
}

func NewUnary(op UnaryOperator, location InputLocation) *Unary {
	return &Unary{op: op, location: location}
}

func (u *Unary) Operator() UnaryOperator { return u.op }
func (u *Unary) Location() InputLocation { return u.location }

// Composite payload pieces.

// Argument is a (name, type spec) pair from an argument or property list.
type Argument struct {
	name *Identifier
	spec *TypeSpec
}

func NewArgument(name *Identifier, spec *TypeSpec) Argument {
	return Argument{name: name, spec: spec}
}

func (a Argument) Name() *Identifier   { return a.name }
func (a Argument) TypeSpec() *TypeSpec { return a.spec }

type MapEntry struct {
	key   *Term
	value *Term
}

func NewMapEntry(key, value *Term) MapEntry {
	return MapEntry{key: key, value: value}
}

func (e MapEntry) Key() *Term   { return e.key }
func (e MapEntry) Value() *Term { return e.value }

// Property is a named value in a constructor or property assignment.
type Property struct {
	name  *Identifier
	value *Term
}

func NewProperty(name *Identifier, value *Term) Property {
	return Property{name: name, value: value}
}

func (p Property) Name() *Identifier { return p.name }
func (p Property) Value() *Term      { return p.value }

// Clause is one arm of a function: its arguments and body.
type Clause struct {
	arguments []Argument
	body      []*Term
}

func NewClause(arguments []Argument, body []*Term) Clause {
	return Clause{arguments: arguments, body: body}
}

func (c Clause) Arguments() []Argument { return c.arguments }
func (c Clause) Body() []*Term         { return c.body }

// Function is a non-empty ordered list of clauses.
type Function struct {
	clauses []Clause
}

func NewFunction(clauses []Clause) *Function {
	return &Function{clauses: clauses}
}

func (f *Function) Clauses() []Clause { return f.clauses }
