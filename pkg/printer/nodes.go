package printer

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"baik/interpreter-go/pkg/ast"
)

type builder struct {
	source []byte
}

func str(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func integer(value int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(value, 10)}
}

func boolean(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

func float(value float64) *yaml.Node {
	text := strconv.FormatFloat(value, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eEIN") {
		text += ".0"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: text}
}

func null() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	if items == nil {
		items = []*yaml.Node{}
	}
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}

// mapping pairs keys with values: mapping("a", x, "b", y).
func mapping(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Content = append(n.Content, str(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return n
}

func (b *builder) terms(terms []*ast.Term) *yaml.Node {
	items := make([]*yaml.Node, len(terms))
	for i, t := range terms {
		items[i] = b.term(t)
	}
	return sequence(items...)
}

func (b *builder) location(loc ast.InputLocation) *yaml.Node {
	n := mapping("start", integer(int64(loc.Start())), "end", integer(int64(loc.End())))
	if b.source != nil {
		line, column := loc.LineCol(b.source)
		n.Content = append(n.Content,
			str("line"), integer(int64(line)),
			str("column"), integer(int64(column)),
		)
	}
	return n
}

func (b *builder) typeSpec(spec *ast.TypeSpec) *yaml.Node {
	if spec == nil {
		return null()
	}
	items := make([]*yaml.Node, len(spec.Types()))
	for i, ty := range spec.Types() {
		items[i] = str(ty.Value())
	}
	return sequence(items...)
}

func (b *builder) arguments(args []ast.Argument) *yaml.Node {
	items := make([]*yaml.Node, len(args))
	for i, arg := range args {
		items[i] = mapping("name", str(arg.Name().Value()), "types", b.typeSpec(arg.TypeSpec()))
	}
	return sequence(items...)
}

func (b *builder) properties(props []ast.Property) *yaml.Node {
	items := make([]*yaml.Node, len(props))
	for i, prop := range props {
		items[i] = mapping("name", str(prop.Name().Value()), "value", b.term(prop.Value()))
	}
	return sequence(items...)
}

func (b *builder) name(id *ast.Identifier) *yaml.Node {
	return str(id.Value())
}

// term renders one Term as a mapping whose first keys are its node type and
// location.
func (b *builder) term(t *ast.Term) *yaml.Node {
	if t == nil {
		return null()
	}
	n := mapping("type", str(string(t.NodeType())), "location", b.location(t.Location()))
	add := func(pairs ...any) {
		n.Content = append(n.Content, mapping(pairs...).Content...)
	}

	switch t.NodeType() {
	case ast.NodeAtom:
		v, _ := t.Atom()
		add("value", str(v.Value()))
	case ast.NodeBoolean:
		v, _ := t.Boolean()
		add("value", boolean(v.Value()))
	case ast.NodeFloat:
		v, _ := t.Float()
		add("value", float(v.Value()))
	case ast.NodeInteger:
		v, _ := t.Integer()
		add("value", integer(v.Value()), "radix", integer(int64(v.Radix())))
	case ast.NodeString:
		v, _ := t.StringLiteral()
		add("value", str(v.Value()))
	case ast.NodeTy:
		v, _ := t.Ty()
		add("name", str(v.Value()))
	case ast.NodeLocal:
		v, _ := t.Local()
		add("name", str(v.Value()))
	case ast.NodeArray:
		elements, _ := t.Array()
		add("elements", b.terms(elements))
	case ast.NodeMap:
		entries, _ := t.Map()
		items := make([]*yaml.Node, len(entries))
		for i, e := range entries {
			items[i] = mapping("key", b.term(e.Key()), "value", b.term(e.Value()))
		}
		add("entries", sequence(items...))
	case ast.NodeBinary:
		op, lhs, rhs, _ := t.Binary()
		add("operator", str(op.Operator().String()), "lhs", b.term(lhs), "rhs", b.term(rhs))
	case ast.NodeUnary:
		op, operand, _ := t.Unary()
		add("operator", str(op.Operator().String()), "operand", b.term(operand))
	case ast.NodeConstructor:
		ty, props, _ := t.Constructor()
		add("name", str(ty.Value()), "properties", b.properties(props))
	case ast.NodeCall:
		callee, args, _ := t.Call()
		add("callee", b.term(callee), "arguments", b.terms(args))
	case ast.NodeDeclaration:
		name, value, _ := t.Declaration()
		add("name", b.name(name), "value", b.term(value))
	case ast.NodeFunction:
		fn, _ := t.Function()
		clauses := make([]*yaml.Node, len(fn.Clauses()))
		for i, c := range fn.Clauses() {
			clauses[i] = mapping("arguments", b.arguments(c.Arguments()), "body", b.terms(c.Body()))
		}
		add("clauses", sequence(clauses...))
	case ast.NodeIf:
		test, positive, negative, _ := t.If()
		add("test", b.term(test), "positive", b.terms(positive), "negative", b.terms(negative))
	case ast.NodeMethodCall:
		receiver, name, args, _ := t.MethodCall()
		add("receiver", b.term(receiver), "name", b.name(name), "arguments", b.terms(args))
	case ast.NodePropertyGet:
		name, _ := t.PropertyGet()
		add("name", b.name(name))
	case ast.NodePropertySet:
		props, _ := t.PropertySet()
		add("properties", b.properties(props))
	case ast.NodeTypeDef:
		ty, props, body, _ := t.TypeDef()
		add("name", str(ty.Value()), "properties", b.arguments(props), "body", b.terms(body))
	case ast.NodeTraitDef:
		ty, bounds, body, _ := t.TraitDef()
		add("name", str(ty.Value()), "bounds", b.typeSpec(bounds), "body", b.terms(body))
	case ast.NodeImplDef:
		ty, body, _ := t.ImplDef()
		add("name", str(ty.Value()), "body", b.terms(body))
	case ast.NodePublicMethod, ast.NodePrivateMethod, ast.NodeStaticMethod:
		name, args, body := methodParts(t)
		add("name", b.name(name), "predicate", boolean(name.HasPredicate()),
			"arguments", b.arguments(args), "body", b.terms(body))
	case ast.NodePublicMethodSpec, ast.NodeStaticMethodSpec:
		name, args, returns := specParts(t)
		add("name", b.name(name), "predicate", boolean(name.HasPredicate()),
			"arguments", b.arguments(args), "returns", b.typeSpec(returns))
	}
	return n
}

func methodParts(t *ast.Term) (*ast.Identifier, []ast.Argument, []*ast.Term) {
	if name, args, body, ok := t.PublicMethod(); ok {
		return name, args, body
	}
	if name, args, body, ok := t.PrivateMethod(); ok {
		return name, args, body
	}
	name, args, body, _ := t.StaticMethod()
	return name, args, body
}

func specParts(t *ast.Term) (*ast.Identifier, []ast.Argument, *ast.TypeSpec) {
	if name, args, returns, ok := t.PublicMethodSpec(); ok {
		return name, args, returns
	}
	name, args, returns, _ := t.StaticMethodSpec()
	return name, args, returns
}
