package ast

import (
	"strconv"
	"strings"
)

// Format renders a Term as a location-free S-expression. Two Terms with
// the same structure format identically regardless of how the source
// grouped them.
func Format(t *Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

// FormatAll formats each Term on its own line.
func FormatAll(terms []*Term) string {
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeTerm(&b, t)
	}
	return b.String()
}

func writeTerm(b *strings.Builder, t *Term) {
	switch p := t.payload().(type) {
	case nil:
		b.WriteString("<nil>")
	case arrayPayload:
		b.WriteByte('[')
		writeTerms(b, p.elements, false)
		b.WriteByte(']')
	case atomPayload:
		b.WriteByte(':')
		b.WriteString(p.atom.Value())
	case binaryPayload:
		b.WriteByte('(')
		b.WriteString(p.op.Operator().String())
		b.WriteByte(' ')
		writeTerm(b, p.lhs)
		b.WriteByte(' ')
		writeTerm(b, p.rhs)
		b.WriteByte(')')
	case booleanPayload:
		if p.boolean.Value() {
			b.WriteString("benar")
		} else {
			b.WriteString("salah")
		}
	case callPayload:
		b.WriteString("(call ")
		writeTerm(b, p.callee)
		writeTerms(b, p.args, true)
		b.WriteByte(')')
	case constructorPayload:
		b.WriteString("(new ")
		b.WriteString(p.ty.Value())
		writeProperties(b, p.properties)
		b.WriteByte(')')
	case declarationPayload:
		b.WriteString("(= ")
		b.WriteString(p.name.Value())
		b.WriteByte(' ')
		writeTerm(b, p.value)
		b.WriteByte(')')
	case floatPayload:
		b.WriteString(strconv.FormatFloat(p.float.Value(), 'g', -1, 64))
	case functionPayload:
		b.WriteString("(fn")
		for _, clause := range p.function.Clauses() {
			b.WriteString(" (clause ")
			writeArguments(b, clause.Arguments())
			writeTerms(b, clause.Body(), true)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case ifPayload:
		b.WriteString("(jika ")
		writeTerm(b, p.test)
		b.WriteString(" (")
		writeTerms(b, p.positive, false)
		b.WriteString(") (")
		writeTerms(b, p.negative, false)
		b.WriteString("))")
	case implPayload:
		b.WriteString("(impl ")
		b.WriteString(p.ty.Value())
		writeTerms(b, p.body, true)
		b.WriteByte(')')
	case integerPayload:
		writeInteger(b, p.integer)
	case localPayload:
		b.WriteString(p.local.Value())
	case mapPayload:
		b.WriteByte('{')
		for i, entry := range p.entries {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTerm(b, entry.Key())
			b.WriteString(" => ")
			writeTerm(b, entry.Value())
		}
		b.WriteByte('}')
	case methodCallPayload:
		b.WriteString("(. ")
		writeTerm(b, p.receiver)
		b.WriteByte(' ')
		b.WriteString(p.name.Value())
		writeTerms(b, p.args, true)
		b.WriteByte(')')
	case propertyGetPayload:
		b.WriteByte('@')
		b.WriteString(p.name.Value())
	case propertySetPayload:
		b.WriteString("(@=")
		writeProperties(b, p.properties)
		b.WriteByte(')')
	case stringPayload:
		b.WriteString(strconv.Quote(p.str.Value()))
	case traitPayload:
		b.WriteString("(trait ")
		b.WriteString(p.ty.Value())
		if p.bounds != nil {
			b.WriteByte(' ')
			writeTypeSpec(b, p.bounds)
		}
		writeTerms(b, p.body, true)
		b.WriteByte(')')
	case tyPayload:
		b.WriteString(p.ty.Value())
	case typeDefPayload:
		b.WriteString("(type ")
		b.WriteString(p.ty.Value())
		b.WriteByte(' ')
		writeArguments(b, p.properties)
		writeTerms(b, p.body, true)
		b.WriteByte(')')
	case unaryPayload:
		b.WriteByte('(')
		b.WriteString(p.op.Operator().String())
		b.WriteByte(' ')
		writeTerm(b, p.operand)
		b.WriteByte(')')
	case methodPayload:
		b.WriteByte('(')
		b.WriteString(methodKeyword(p.kind))
		b.WriteByte(' ')
		b.WriteString(identifierText(p.name))
		b.WriteByte(' ')
		writeArguments(b, p.args)
		writeTerms(b, p.body, true)
		b.WriteByte(')')
	case specPayload:
		b.WriteByte('(')
		b.WriteString(methodKeyword(p.kind))
		b.WriteString(" spec ")
		b.WriteString(identifierText(p.name))
		b.WriteByte(' ')
		writeArguments(b, p.args)
		if p.returns != nil {
			b.WriteByte(' ')
			writeTypeSpec(b, p.returns)
		}
		b.WriteByte(')')
	}
}

func writeTerms(b *strings.Builder, terms []*Term, leadingSpace bool) {
	for i, t := range terms {
		if i > 0 || leadingSpace {
			b.WriteByte(' ')
		}
		writeTerm(b, t)
	}
}

func writeProperties(b *strings.Builder, properties []Property) {
	for _, prop := range properties {
		b.WriteString(" (")
		b.WriteString(prop.Name().Value())
		b.WriteByte(' ')
		writeTerm(b, prop.Value())
		b.WriteByte(')')
	}
}

func writeArguments(b *strings.Builder, args []Argument) {
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(arg.Name().Value())
		if spec := arg.TypeSpec(); spec != nil && len(spec.Types()) > 0 {
			b.WriteByte(':')
			writeTypeSpec(b, spec)
		}
	}
	b.WriteByte(')')
}

func writeTypeSpec(b *strings.Builder, spec *TypeSpec) {
	for i, ty := range spec.Types() {
		if i > 0 {
			b.WriteByte('+')
		}
		b.WriteString(ty.Value())
	}
}

func writeInteger(b *strings.Builder, i *Integer) {
	value := i.Value()
	if value < 0 {
		b.WriteByte('-')
		value = -value
	}
	switch i.Radix() {
	case 16:
		b.WriteString("0x")
	case 8:
		b.WriteString("0o")
	case 2:
		b.WriteString("0b")
	}
	radix := i.Radix()
	if radix < 2 || radix > 36 {
		radix = 10
	}
	b.WriteString(strconv.FormatInt(value, radix))
}

func identifierText(id *Identifier) string {
	if id == nil {
		return ""
	}
	return id.Value()
}

func methodKeyword(kind NodeType) string {
	switch kind {
	case NodePrivateMethod:
		return "defp"
	case NodeStaticMethod, NodeStaticMethodSpec:
		return "defs"
	default:
		return "def"
	}
}
