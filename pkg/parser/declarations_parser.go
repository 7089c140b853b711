package parser

import (
	"baik/interpreter-go/pkg/ast"
	"baik/interpreter-go/pkg/grammar"
)

// parseArgumentList reads `(name: Type, other)` lists shared by functions,
// methods and type properties. An absent list yields no arguments.
func (c *converter) parseArgumentList(node *grammar.Node) ([]ast.Argument, error) {
	if err := expectRule(node, grammar.ArgumentList); err != nil {
		return nil, err
	}
	args := make([]ast.Argument, 0, node.ChildCount())
	for _, argNode := range node.Children() {
		if err := expectRule(argNode, grammar.Argument); err != nil {
			return nil, err
		}
		if argNode.ChildCount() != 2 {
			return nil, malformed(argNode, "argument with %d children", argNode.ChildCount())
		}
		nameNode, err := childAt(argNode, 0, grammar.Keyword, grammar.Ident)
		if err != nil {
			return nil, err
		}
		name, err := c.parseIdentifier(nameNode)
		if err != nil {
			return nil, err
		}
		spec, err := c.parseTypeSpec(argNode.Child(1))
		if err != nil {
			return nil, err
		}
		args = append(args, ast.NewArgument(name, spec))
	}
	return args, nil
}

func (c *converter) parseTypeDef(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 3 {
		return nil, malformed(node, "type definition with %d children", node.ChildCount())
	}
	tyNode, err := childAt(node, 0, grammar.Typename)
	if err != nil {
		return nil, err
	}
	ty, err := c.parseTy(tyNode)
	if err != nil {
		return nil, err
	}
	properties, err := c.parseArgumentList(node.Child(1))
	if err != nil {
		return nil, err
	}
	body, err := c.parseDefinitionBody(node.Child(2), grammar.TypeBody)
	if err != nil {
		return nil, err
	}
	return ast.NewTypeDefTerm(locationOf(node), ty, properties, body), nil
}

// parseTraitDef leaves the bounds nil when the trait declares none.
func (c *converter) parseTraitDef(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 3 {
		return nil, malformed(node, "trait definition with %d children", node.ChildCount())
	}
	tyNode, err := childAt(node, 0, grammar.Typename)
	if err != nil {
		return nil, err
	}
	ty, err := c.parseTy(tyNode)
	if err != nil {
		return nil, err
	}
	boundsNode, err := childAt(node, 1, grammar.TraitBounds)
	if err != nil {
		return nil, err
	}
	var bounds *ast.TypeSpec
	switch boundsNode.ChildCount() {
	case 0:
	case 1:
		bounds, err = c.parseTypeSpec(boundsNode.Child(0))
		if err != nil {
			return nil, err
		}
	default:
		return nil, malformed(boundsNode, "trait bounds with %d children", boundsNode.ChildCount())
	}
	body, err := c.parseDefinitionBody(node.Child(2), grammar.TraitBody)
	if err != nil {
		return nil, err
	}
	return ast.NewTraitDefTerm(locationOf(node), ty, bounds, body), nil
}

func (c *converter) parseImplDef(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 2 {
		return nil, malformed(node, "impl definition with %d children", node.ChildCount())
	}
	tyNode, err := childAt(node, 0, grammar.Typename)
	if err != nil {
		return nil, err
	}
	ty, err := c.parseTy(tyNode)
	if err != nil {
		return nil, err
	}
	body, err := c.parseDefinitionBody(node.Child(1), grammar.ImplBody)
	if err != nil {
		return nil, err
	}
	return ast.NewImplDefTerm(locationOf(node), ty, body), nil
}

func (c *converter) parseDefinitionBody(node *grammar.Node, rule grammar.Rule) ([]*ast.Term, error) {
	if err := expectRule(node, rule); err != nil {
		return nil, err
	}
	return c.parseTerms(node.Children())
}

// parseMethod handles def, defp and defs. Instance methods take an instance
// block, static methods a plain block.
func (c *converter) parseMethod(node *grammar.Node) (*ast.Term, error) {
	if node.ChildCount() != 3 {
		return nil, malformed(node, "method definition with %d children", node.ChildCount())
	}
	nameNode, err := childAt(node, 0, grammar.MethodName, grammar.MethodNameWithPredicate)
	if err != nil {
		return nil, err
	}
	name, err := c.parseIdentifier(nameNode)
	if err != nil {
		return nil, err
	}
	args, err := c.parseArgumentList(node.Child(1))
	if err != nil {
		return nil, err
	}
	blockRule := grammar.InstanceBlock
	if node.Rule() == grammar.DefStaticMethod {
		blockRule = grammar.Block
	}
	if err := expectRule(node.Child(2), blockRule); err != nil {
		return nil, err
	}
	body, err := c.parseBlock(node.Child(2))
	if err != nil {
		return nil, err
	}

	loc := locationOf(node)
	switch node.Rule() {
	case grammar.DefPublicMethod:
		return ast.NewPublicMethodTerm(loc, name, args, body), nil
	case grammar.DefPrivateMethod:
		return ast.NewPrivateMethodTerm(loc, name, args, body), nil
	case grammar.DefStaticMethod:
		return ast.NewStaticMethodTerm(loc, name, args, body), nil
	default:
		return nil, unexpectedRule(node)
	}
}

// parseMethodSpec reads a signature without a body. Predicate names carry
// no return type; every other name is followed by one.
func (c *converter) parseMethodSpec(node *grammar.Node) (*ast.Term, error) {
	nameNode, err := childAt(node, 0, grammar.MethodName, grammar.MethodNameWithPredicate)
	if err != nil {
		return nil, err
	}
	name, err := c.parseIdentifier(nameNode)
	if err != nil {
		return nil, err
	}
	args, err := c.parseArgumentList(node.Child(1))
	if err != nil {
		return nil, err
	}

	var returns *ast.TypeSpec
	if name.HasPredicate() {
		if node.ChildCount() != 2 {
			return nil, malformed(node, "predicate spec with a return type")
		}
	} else {
		if node.ChildCount() != 3 {
			return nil, malformed(node, "spec without a return type")
		}
		returnNode, err := childAt(node, 2, grammar.ReturnType)
		if err != nil {
			return nil, err
		}
		specNode, err := singleChild(returnNode, grammar.TypeSpec)
		if err != nil {
			return nil, err
		}
		returns, err = c.parseTypeSpec(specNode)
		if err != nil {
			return nil, err
		}
	}

	loc := locationOf(node)
	switch node.Rule() {
	case grammar.DefPublicSpec:
		return ast.NewPublicMethodSpecTerm(loc, name, args, returns), nil
	case grammar.DefStaticSpec:
		return ast.NewStaticMethodSpecTerm(loc, name, args, returns), nil
	default:
		return nil, unexpectedRule(node)
	}
}
