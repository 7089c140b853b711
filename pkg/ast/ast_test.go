package ast

import (
	"reflect"
	"testing"
)

func TestBinaryOperatorClassification(t *testing.T) {
	ops := BinaryOperators()
	if len(ops) != 19 {
		t.Fatalf("expected 19 binary operators, got %d", len(ops))
	}
	seen := make(map[string]bool)
	for _, op := range ops {
		if op.IsArithmetic() == op.IsLogical() {
			t.Fatalf("%s: expected exactly one classification", op)
		}
		if seen[op.String()] {
			t.Fatalf("duplicate token %q", op.String())
		}
		seen[op.String()] = true
	}
	logical := []BinaryOperator{Equal, GreaterThan, GreaterThanOrEqual, LessThan, LessThanOrEqual, LogicalAnd, LogicalOr, NotEqual}
	for _, op := range logical {
		if !op.IsLogical() {
			t.Fatalf("%s: expected logical", op)
		}
	}
	if ShiftLeft.String() != "<<" || ShiftRight.String() != ">>" {
		t.Fatalf("unexpected shift tokens %q %q", ShiftLeft, ShiftRight)
	}
	if got := BinaryOperator(99).String(); got != "BinaryOperator(99)" {
		t.Fatalf("unexpected out of range token %q", got)
	}
}

func TestUnaryOperatorClassification(t *testing.T) {
	for _, op := range UnaryOperators() {
		if op.IsArithmetic() == op.IsLogical() {
			t.Fatalf("%s: expected exactly one classification", op)
		}
	}
	if !UnaryLogicalNot.IsLogical() || !UnaryMinus.IsArithmetic() || !UnaryPlus.IsArithmetic() {
		t.Fatalf("unexpected unary classification")
	}
}

func TestAccessorsReportVariant(t *testing.T) {
	loc := Span(0, 5)
	term := NewAtomTerm(loc, NewAtom("hello", loc))

	if term.NodeType() != NodeAtom {
		t.Fatalf("expected Atom, got %s", term.NodeType())
	}
	atom, ok := term.Atom()
	if !ok || atom.Value() != "hello" {
		t.Fatalf("expected atom hello, got %v %v", atom, ok)
	}
	if _, ok := term.Integer(); ok {
		t.Fatalf("expected Integer accessor to report absence")
	}
	if _, _, _, ok := term.Binary(); ok {
		t.Fatalf("expected Binary accessor to report absence")
	}
	if _, _, _, ok := term.PublicMethod(); ok {
		t.Fatalf("expected PublicMethod accessor to report absence")
	}
}

func TestAccessorsOnNilTerm(t *testing.T) {
	var term *Term
	if term.NodeType() != "" {
		t.Fatalf("expected no node type for nil")
	}
	if term.Location() != (InputLocation{}) {
		t.Fatalf("expected zero location for nil")
	}
	if _, ok := term.Array(); ok {
		t.Fatalf("expected Array accessor to report absence")
	}
	if got := Format(term); got != "<nil>" {
		t.Fatalf("expected <nil>, got %q", got)
	}
}

func TestMethodKindsAreDistinct(t *testing.T) {
	name := NewIdentifier("run", false, Span(4, 7))
	private := NewPrivateMethodTerm(Span(0, 12), name, nil, nil)
	if _, _, _, ok := private.PrivateMethod(); !ok {
		t.Fatalf("expected private method")
	}
	if _, _, _, ok := private.PublicMethod(); ok {
		t.Fatalf("private method reported as public")
	}
	if _, _, _, ok := private.StaticMethod(); ok {
		t.Fatalf("private method reported as static")
	}

	spec := NewStaticMethodSpecTerm(Span(0, 12), name, nil, nil)
	_, _, returns, ok := spec.StaticMethodSpec()
	if !ok || returns != nil {
		t.Fatalf("expected static spec without return type, got %v %v", returns, ok)
	}
	if _, _, _, ok := spec.PublicMethodSpec(); ok {
		t.Fatalf("static spec reported as public")
	}
}

func TestIfNegativeBranchIsNeverNil(t *testing.T) {
	test := NewBooleanTerm(Span(5, 10), NewBoolean(true, Span(5, 10)))
	term := NewIfTerm(Span(0, 20), test, []*Term{}, nil)
	_, _, negative, ok := term.If()
	if !ok || negative == nil || len(negative) != 0 {
		t.Fatalf("expected empty negative branch, got %v", negative)
	}
}

func TestCompositeLocations(t *testing.T) {
	lhs := NewLocalTerm(Span(0, 1), NewLocal("a", Span(0, 1)))
	rhs := NewLocalTerm(Span(4, 5), NewLocal("b", Span(4, 5)))
	binary := NewBinaryTerm(NewBinary(Plus, Span(2, 3)), lhs, rhs)
	if binary.Location() != Span(2, 3) {
		t.Fatalf("expected binary at its operator, got %s", binary.Location())
	}
	call := NewMethodCallTerm(lhs, NewIdentifier("len", false, Span(2, 5)), nil)
	if call.Location() != lhs.Location() {
		t.Fatalf("expected method call at its receiver, got %s", call.Location())
	}
}

func TestLocationResolution(t *testing.T) {
	source := []byte("a = 1\nbé = 22\n")
	loc := Span(10, 12)
	if !loc.IsSpan() || loc.String() != "10..12" {
		t.Fatalf("unexpected span %s", loc)
	}
	line, col := loc.LineCol(source)
	if line != 2 || col != 4 {
		t.Fatalf("expected 2:4, got %d:%d", line, col)
	}
	if got := loc.EndPosition(source); got != (Position{Line: 2, Column: 6}) {
		t.Fatalf("expected end 2:6, got %s", got)
	}
	pos := Pos(3)
	if pos.IsSpan() || pos.End() != 3 || pos.String() != "3" {
		t.Fatalf("unexpected position %s", pos)
	}
	if got := Pos(100).StartPosition(source); got != (Position{Line: 3, Column: 1}) {
		t.Fatalf("expected clamp to 3:1, got %s", got)
	}
}

func TestFormat(t *testing.T) {
	at := func(start, end int) InputLocation { return Span(start, end) }
	local := func(name string) *Term { return NewLocalTerm(at(0, 1), NewLocal(name, at(0, 1))) }
	integer := func(v int64, radix int) *Term {
		return NewIntegerTerm(at(0, 1), NewInteger(v, radix, at(0, 1)))
	}

	cases := []struct {
		term *Term
		want string
	}{
		{integer(31, 16), "0x1f"},
		{integer(5, 2), "0b101"},
		{integer(-8, 8), "-0o10"},
		{NewFloatTerm(at(0, 3), NewFloat(1.5, at(0, 3))), "1.5"},
		{NewStringTerm(at(0, 4), NewString(`a"b`, at(0, 4))), `"a\"b"`},
		{NewBooleanTerm(at(0, 5), NewBoolean(false, at(0, 5))), "salah"},
		{NewArrayTerm(at(0, 2), []*Term{}), "[]"},
		{NewMapTerm(at(0, 2), []MapEntry{NewMapEntry(local("k"), integer(1, 10))}), "{k => 1}"},
		{NewUnaryTerm(at(0, 2), NewUnary(UnaryLogicalNot, at(0, 1)), local("a")), "(! a)"},
		{NewCallTerm(at(0, 3), local("f"), []*Term{integer(1, 10)}), "(call f 1)"},
		{NewPropertyGetTerm(at(0, 5), NewIdentifier("name", false, at(1, 5))), "@name"},
		{
			NewTraitDefTerm(at(0, 10), NewTy("T", at(6, 7)), NewTypeSpec([]*Ty{NewTy("A", at(9, 10)), NewTy("B", at(13, 14))}, at(9, 14)), nil),
			"(trait T A+B)",
		},
		{
			NewPublicMethodSpecTerm(at(0, 10), NewIdentifier("ok?", true, at(4, 7)), []Argument{NewArgument(NewIdentifier("x", false, at(8, 9)), NewTypeSpec(nil, at(9, 9)))}, nil),
			"(def spec ok? (x))",
		},
		{
			NewFunctionTerm(at(0, 10), NewFunction([]Clause{NewClause(nil, []*Term{local("a")})})),
			"(fn (clause () a))",
		},
	}
	for _, tc := range cases {
		if got := Format(tc.term); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
	if got := FormatAll([]*Term{local("a"), local("b")}); got != "a\nb" {
		t.Fatalf("unexpected FormatAll output %q", got)
	}
}

func TestWalkAndCount(t *testing.T) {
	loc := Span(0, 1)
	one := NewIntegerTerm(loc, NewInteger(1, 10, loc))
	two := NewIntegerTerm(loc, NewInteger(2, 10, loc))
	sum := NewBinaryTerm(NewBinary(Plus, loc), one, two)
	decl := NewDeclarationTerm(loc, NewIdentifier("x", false, loc), NewArrayTerm(loc, []*Term{sum}))

	var visited []NodeType
	Walk(decl, func(n *Term) bool {
		visited = append(visited, n.NodeType())
		return n.NodeType() != NodeBinary
	})
	if want := []NodeType{NodeDeclaration, NodeArray, NodeBinary}; !reflect.DeepEqual(visited, want) {
		t.Fatalf("expected %v, got %v", want, visited)
	}

	counts := Count([]*Term{decl, one})
	want := map[NodeType]int{NodeDeclaration: 1, NodeArray: 1, NodeBinary: 1, NodeInteger: 3}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("expected %v, got %v", want, counts)
	}
}

func TestNodeTypesAreUnique(t *testing.T) {
	seen := make(map[NodeType]bool)
	for _, nt := range NodeTypes() {
		if seen[nt] {
			t.Fatalf("duplicate node type %s", nt)
		}
		seen[nt] = true
	}
	if len(seen) != 27 {
		t.Fatalf("expected 27 node types, got %d", len(seen))
	}
}
