package ast

// Walk visits t and its descendants depth-first in source order. When visit
// returns false the children of that Term are skipped.
func Walk(t *Term, visit func(*Term) bool) {
	if t == nil || !visit(t) {
		return
	}
	for _, child := range children(t) {
		Walk(child, visit)
	}
}

func children(t *Term) []*Term {
	switch p := t.payload().(type) {
	case arrayPayload:
		return p.elements
	case binaryPayload:
		return []*Term{p.lhs, p.rhs}
	case callPayload:
		return append([]*Term{p.callee}, p.args...)
	case constructorPayload:
		return propertyValues(p.properties)
	case declarationPayload:
		return []*Term{p.value}
	case functionPayload:
		var out []*Term
		for _, clause := range p.function.Clauses() {
			out = append(out, clause.Body()...)
		}
		return out
	case ifPayload:
		out := append([]*Term{p.test}, p.positive...)
		return append(out, p.negative...)
	case implPayload:
		return p.body
	case mapPayload:
		out := make([]*Term, 0, len(p.entries)*2)
		for _, entry := range p.entries {
			out = append(out, entry.Key(), entry.Value())
		}
		return out
	case methodCallPayload:
		return append([]*Term{p.receiver}, p.args...)
	case propertySetPayload:
		return propertyValues(p.properties)
	case traitPayload:
		return p.body
	case typeDefPayload:
		return p.body
	case unaryPayload:
		return []*Term{p.operand}
	case methodPayload:
		return p.body
	default:
		return nil
	}
}

func propertyValues(properties []Property) []*Term {
	out := make([]*Term, len(properties))
	for i, prop := range properties {
		out[i] = prop.Value()
	}
	return out
}

// Count returns the number of Terms of each type under the given roots.
func Count(terms []*Term) map[NodeType]int {
	counts := make(map[NodeType]int)
	for _, t := range terms {
		Walk(t, func(n *Term) bool {
			counts[n.NodeType()]++
			return true
		})
	}
	return counts
}
