package parser

import (
	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

// converter builds Terms from the nodes of one parse tree.
type converter struct {
	source   []byte
	maxDepth int
	depth    int
}

func (c *converter) enter(node *grammar.Node) error {
	c.depth++
	if c.maxDepth > 0 && c.depth > c.maxDepth {
		return &ParseError{
			Kind:     NestingTooDeep,
			Rule:     node.Rule(),
			Location: locationOf(node),
			Limit:    c.maxDepth,
		}
	}
	return nil
}

func (c *converter) leave() { c.depth-- }

func (c *converter) parseTerm(node *grammar.Node) (*ast.Term, error) {
	if node == nil {
		return nil, &ParseError{Kind: AstGeneration, Detail: "nil term node"}
	}
	if err := c.enter(node); err != nil {
		return nil, err
	}
	defer c.leave()

	loc := locationOf(node)
	switch node.Rule() {
	case grammar.Array:
		return c.parseArray(node)
	case grammar.Map:
		return c.parseMap(node)
	case grammar.Atom:
		atom, err := c.parseAtom(node)
		if err != nil {
			return nil, err
		}
		return ast.NewAtomTerm(loc, atom), nil
	case grammar.Boolean:
		boolean, err := c.parseBoolean(node)
		if err != nil {
			return nil, err
		}
		return ast.NewBooleanTerm(loc, boolean), nil
	case grammar.Float:
		float, err := c.parseFloat(node)
		if err != nil {
			return nil, err
		}
		return ast.NewFloatTerm(loc, float), nil
	case grammar.Integer:
		integer, err := c.parseInteger(node)
		if err != nil {
			return nil, err
		}
		return ast.NewIntegerTerm(loc, integer), nil
	case grammar.String:
		str, err := c.parseString(node)
		if err != nil {
			return nil, err
		}
		return ast.NewStringTerm(loc, str), nil
	case grammar.Local:
		local, err := c.parseLocal(node)
		if err != nil {
			return nil, err
		}
		return ast.NewLocalTerm(loc, local), nil
	case grammar.Typename:
		ty, err := c.parseTy(node)
		if err != nil {
			return nil, err
		}
		return ast.NewTyTerm(loc, ty), nil
	case grammar.CallLocal:
		return c.parseCallLocal(node)
	case grammar.CallMethod:
		return c.parseCallMethod(node)
	case grammar.Constructor:
		return c.parseConstructor(node)
	case grammar.Declaration:
		return c.parseDeclaration(node)
	case grammar.IfExpression:
		return c.parseIf(node)
	case grammar.Function:
		return c.parseFunction(node)
	case grammar.Infix, grammar.InstanceInfix:
		return c.parseInfix(node)
	case grammar.Unary:
		return c.parseUnary(node)
	case grammar.PropertyGet:
		name, err := c.parseIdentifier(node)
		if err != nil {
			return nil, err
		}
		return ast.NewPropertyGetTerm(loc, name), nil
	case grammar.PropertySet:
		return c.parsePropertySet(node)
	case grammar.TypeDef:
		return c.parseTypeDef(node)
	case grammar.TraitDef:
		return c.parseTraitDef(node)
	case grammar.ImplDef:
		return c.parseImplDef(node)
	case grammar.DefPublicMethod, grammar.DefPrivateMethod, grammar.DefStaticMethod:
		return c.parseMethod(node)
	case grammar.DefPublicSpec, grammar.DefStaticSpec:
		return c.parseMethodSpec(node)
	default:
		return nil, unexpectedRule(node)
	}
}

// parseTerms converts every child of node; the result is never nil.
func (c *converter) parseTerms(nodes []*grammar.Node) ([]*ast.Term, error) {
	terms := make([]*ast.Term, 0, len(nodes))
	for _, child := range nodes {
		term, err := c.parseTerm(child)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func (c *converter) parseArray(node *grammar.Node) (*ast.Term, error) {
	elements, err := c.parseTerms(node.Children())
	if err != nil {
		return nil, err
	}
	return ast.NewArrayTerm(locationOf(node), elements), nil
}

// parseMap reads `key: value` and `key => value` pairs. Keyword keys become
// atoms.
func (c *converter) parseMap(node *grammar.Node) (*ast.Term, error) {
	entries := make([]ast.MapEntry, 0, node.ChildCount())
	for _, pair := range node.Children() {
		if err := expectRule(pair, grammar.MapPair); err != nil {
			return nil, err
		}
		if pair.ChildCount() != 2 {
			return nil, malformed(pair, "map pair with %d children", pair.ChildCount())
		}
		keyNode, valueNode := pair.Child(0), pair.Child(1)
		var key *ast.Term
		if keyNode.Rule() == grammar.Keyword {
			atom, err := c.parseAtom(keyNode)
			if err != nil {
				return nil, err
			}
			key = ast.NewAtomTerm(locationOf(keyNode), atom)
		} else {
			var err error
			key, err = c.parseTerm(keyNode)
			if err != nil {
				return nil, err
			}
		}
		value, err := c.parseTerm(valueNode)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.NewMapEntry(key, value))
	}
	return ast.NewMapTerm(locationOf(node), entries), nil
}

// parseCallArgument unwraps the argument node before converting it.
func (c *converter) parseCallArgument(node *grammar.Node) (*ast.Term, error) {
	if err := expectRule(node, grammar.CallArgument); err != nil {
		return nil, err
	}
	inner, err := singleChild(node)
	if err != nil {
		return nil, err
	}
	return c.parseTerm(inner)
}

func (c *converter) parseCallLocal(node *grammar.Node) (*ast.Term, error) {
	calleeNode, err := childAt(node, 0, grammar.Local)
	if err != nil {
		return nil, err
	}
	callee, err := c.parseTerm(calleeNode)
	if err != nil {
		return nil, err
	}
	children := node.Children()
	args := make([]*ast.Term, 0, len(children)-1)
	for _, child := range children[1:] {
		arg, err := c.parseCallArgument(child)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return ast.NewCallTerm(locationOf(node), callee, args), nil
}

func (c *converter) parseCallMethod(node *grammar.Node) (*ast.Term, error) {
	children := node.Children()
	if len(children) < 2 {
		return nil, malformed(node, "method call without a method")
	}
	receiver, err := c.parseTerm(children[0])
	if err != nil {
		return nil, err
	}
	return c.unrollMethodCall(receiver, children[1:])
}

// unrollMethodCall consumes one method name and its arguments from rest,
// wraps receiver in a MethodCall and continues with the remaining segments,
// so the last call written ends up outermost.
func (c *converter) unrollMethodCall(receiver *ast.Term, rest []*grammar.Node) (*ast.Term, error) {
	if err := c.enter(rest[0]); err != nil {
		return nil, err
	}
	defer c.leave()

	if err := expectRule(rest[0], grammar.Ident); err != nil {
		return nil, err
	}
	name, err := c.parseIdentifier(rest[0])
	if err != nil {
		return nil, err
	}
	i := 1
	args := make([]*ast.Term, 0)
	for i < len(rest) && rest[i].Rule() == grammar.CallArgument {
		arg, err := c.parseCallArgument(rest[i])
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		i++
	}
	call := ast.NewMethodCallTerm(receiver, name, args)
	if i == len(rest) {
		return call, nil
	}
	if rest[i].Rule() != grammar.Ident {
		return nil, unexpectedRule(rest[i])
	}
	return c.unrollMethodCall(call, rest[i:])
}

func (c *converter) parseConstructor(node *grammar.Node) (*ast.Term, error) {
	tyNode, err := childAt(node, 0, grammar.Typename)
	if err != nil {
		return nil, err
	}
	ty, err := c.parseTy(tyNode)
	if err != nil {
		return nil, err
	}
	properties, err := c.parseProperties(node.Children()[1:], grammar.ConstructorProperty)
	if err != nil {
		return nil, err
	}
	return ast.NewConstructorTerm(locationOf(node), ty, properties), nil
}

func (c *converter) parsePropertySet(node *grammar.Node) (*ast.Term, error) {
	properties, err := c.parseProperties(node.Children(), grammar.PropertyAssignment)
	if err != nil {
		return nil, err
	}
	return ast.NewPropertySetTerm(locationOf(node), properties), nil
}

// parseProperties reads `name: value` pairs tagged with rule.
func (c *converter) parseProperties(nodes []*grammar.Node, rule grammar.Rule) ([]ast.Property, error) {
	properties := make([]ast.Property, 0, len(nodes))
	for _, prop := range nodes {
		if err := expectRule(prop, rule); err != nil {
			return nil, err
		}
		if prop.ChildCount() != 2 {
			return nil, malformed(prop, "property with %d children", prop.ChildCount())
		}
		keyNode, err := childAt(prop, 0, grammar.Keyword)
		if err != nil {
			return nil, err
		}
		name, err := c.parseIdentifier(keyNode)
		if err != nil {
			return nil, err
		}
		value, err := c.parseTerm(prop.Child(1))
		if err != nil {
			return nil, err
		}
		properties = append(properties, ast.NewProperty(name, value))
	}
	return properties, nil
}

func (c *converter) parseDeclaration(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 3 {
		return nil, malformed(node, "declaration with %d children", node.ChildCount())
	}
	identNode, err := childAt(node, 0, grammar.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := childAt(node, 1, grammar.Assign); err != nil {
		return nil, err
	}
	name, err := c.parseIdentifier(identNode)
	if err != nil {
		return nil, err
	}
	value, err := c.parseTerm(node.Child(2))
	if err != nil {
		return nil, err
	}
	return ast.NewDeclarationTerm(locationOf(node), name, value), nil
}

func (c *converter) parseIf(node *grammar.Node) (*ast.Term, error) {
	count := node.ChildCount()
	if count != 2 && count != 3 {
		return nil, malformed(node, "if expression with %d children", count)
	}
	test, err := c.parseTerm(node.Child(0))
	if err != nil {
		return nil, err
	}
	positive, err := c.parseBlock(node.Child(1))
	if err != nil {
		return nil, err
	}
	negative := make([]*ast.Term, 0)
	if count == 3 {
		negative, err = c.parseBlock(node.Child(2))
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfTerm(locationOf(node), test, positive, negative), nil
}

func (c *converter) parseBlock(node *grammar.Node) ([]*ast.Term, error) {
	if err := expectRule(node, grammar.Block, grammar.InstanceBlock); err != nil {
		return nil, err
	}
	return c.parseTerms(node.Children())
}

func (c *converter) parseUnary(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 2 {
		return nil, malformed(node, "unary expression with %d children", node.ChildCount())
	}
	op, err := c.parseUnaryOperator(node.Child(0))
	if err != nil {
		return nil, err
	}
	operand, err := c.parseTerm(node.Child(1))
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryTerm(locationOf(node), op, operand), nil
}

func (c *converter) parseFunction(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() == 0 {
		return nil, malformed(node, "function without clauses")
	}
	clauses := make([]ast.Clause, 0, node.ChildCount())
	for _, clauseNode := range node.Children() {
		if err := expectRule(clauseNode, grammar.FunctionClause); err != nil {
			return nil, err
		}
		if clauseNode.ChildCount() != 2 {
			return nil, malformed(clauseNode, "function clause with %d children", clauseNode.ChildCount())
		}
		args, err := c.parseArgumentList(clauseNode.Child(0))
		if err != nil {
			return nil, err
		}
		body, err := c.parseBlock(clauseNode.Child(1))
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, ast.NewClause(args, body))
	}
	return ast.NewFunctionTerm(locationOf(node), ast.NewFunction(clauses)), nil
}
