package grammar

import (
	"errors"
	"reflect"
	"testing"
)

func TestBaikValidates(t *testing.T) {
	if err := Baik().Validate(); err != nil {
		t.Fatalf("Baik grammar has undefined rules: %v", err)
	}
	if Baik() != Baik() {
		t.Fatalf("expected Baik to return a shared grammar")
	}
}

func TestBaikEmptyInput(t *testing.T) {
	for _, start := range []Rule{Input, File} {
		tree, err := Baik().Parse(start, []byte("  # only a comment\n"))
		if err != nil {
			t.Fatalf("%s: %v", start, err)
		}
		if got, want := rulesOf(tree.Nodes()), []Rule{EOI}; !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: expected %v, got %v", start, want, got)
		}
	}
}

func TestBaikNodeShapes(t *testing.T) {
	cases := []struct {
		source   string
		start    Rule
		top      Rule
		children []Rule
	}{
		{"1 + 2", Input, Infix, []Rule{Integer, Plus, Integer}},
		{"a ** b >= c", Input, Infix, []Rule{Local, Exponent, Local, GreaterThanOrEqual, Local}},
		{"x << 1", Input, Infix, []Rule{Local, ShiftLeft, Integer}},
		{"!a", Input, Unary, []Rule{LogicalNot, Local}},
		{"0x1F", Input, Integer, []Rule{IntegerHexadecimal}},
		{"0", Input, Integer, []Rule{IntegerZero}},
		{`"hi"`, Input, String, []Rule{StringDouble}},
		{"'hi'", Input, String, []Rule{StringSingle}},
		{"salah", Input, Boolean, []Rule{BooleanFalse}},
		{"benarx", Input, Local, []Rule{}},
		{"f(1, 2)", Input, CallLocal, []Rule{Local, CallArgument, CallArgument}},
		{"a.b(1).c", Input, CallMethod, []Rule{Local, Ident, CallArgument, Ident}},
		{"x = 1", Input, Declaration, []Rule{Ident, Assign, Integer}},
		{"T { a: 1 }", Input, Constructor, []Rule{Typename, ConstructorProperty}},
		{"{ a: 1, 2 => 3 }", Input, Map, []Rule{MapPair, MapPair}},
		{"jika a { b } lainnya { c }", Input, IfExpression, []Rule{Local, Block, Block}},
		{"fn (a) { a } (b) { b }", Input, Function, []Rule{FunctionClause, FunctionClause}},
		{"trait T: A + B", File, TraitDef, []Rule{Typename, TraitBounds, TraitBody}},
		{"type T(a: A) do end", File, TypeDef, []Rule{Typename, ArgumentList, TypeBody}},
		{"impl T do defs make { 1 } end", File, ImplDef, []Rule{Typename, ImplBody}},
	}
	for _, tc := range cases {
		tree, err := Baik().Parse(tc.start, []byte(tc.source))
		if err != nil {
			t.Fatalf("%q: %v", tc.source, err)
		}
		nodes := tree.Nodes()
		if len(nodes) != 2 {
			t.Fatalf("%q: expected one node and EOI, got %v", tc.source, nodes)
		}
		if nodes[0].Rule() != tc.top {
			t.Fatalf("%q: expected %s, got %s", tc.source, tc.top, nodes[0].Rule())
		}
		if got := rulesOf(nodes[0].Children()); !reflect.DeepEqual(got, tc.children) {
			t.Fatalf("%q: expected children %v, got %v", tc.source, tc.children, got)
		}
	}
}

func TestBaikIntegerPrefixIsOutsideDigits(t *testing.T) {
	src := []byte("0b1010_1010")
	tree, err := Baik().Parse(Input, src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	digits := tree.Nodes()[0].Child(0)
	if got := digits.Utf8Text(src); got != "1010_1010" {
		t.Fatalf("expected digits without prefix, got %q", got)
	}
}

func TestBaikTraitSpecs(t *testing.T) {
	src := []byte("trait T do\n  def name(): String\n  def ok?(x)\n  defs make(): T\nend")
	tree, err := Baik().Parse(File, src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	body := tree.Nodes()[0].Child(2)
	if got, want := rulesOf(body.Children()), []Rule{DefPublicSpec, DefPublicSpec, DefStaticSpec}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got, want := rulesOf(body.Child(0).Children()), []Rule{MethodName, ArgumentList, ReturnType}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got, want := rulesOf(body.Child(1).Children()), []Rule{MethodNameWithPredicate, ArgumentList}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestBaikRejectsReservedNames(t *testing.T) {
	for _, source := range []string{"end", "jika = 1", "def"} {
		_, err := Baik().Parse(Input, []byte(source))
		var gerr *Error
		if !errors.As(err, &gerr) {
			t.Fatalf("%q: expected *Error, got %v", source, err)
		}
	}
}

func TestBaikInputRejectsDefinitions(t *testing.T) {
	if _, err := Baik().Parse(Input, []byte("impl T do end")); err == nil {
		t.Fatalf("expected impl to be rejected in input mode")
	}
	if _, err := Baik().Parse(File, []byte("impl T do end")); err != nil {
		t.Fatalf("expected impl to parse in file mode: %v", err)
	}
}
