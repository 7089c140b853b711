package grammar

import "sync"

var baikGrammar = sync.OnceValue(buildBaik)

// Baik returns the grammar of the Baik language. The grammar is shared
// between callers and must not be redefined.
func Baik() *Grammar {
	return baikGrammar()
}

var reservedWords = []string{
	"benar", "salah", "jika", "lainnya", "fn",
	"defp", "defs", "def", "type", "trait", "impl", "do", "end",
}

func buildBaik() *Grammar {
	g := New()

	digit := Range('0', '9')
	lower := Range('a', 'z')
	upper := Range('A', 'Z')
	identChar := Choice(lower, upper, digit, Lit("_"))
	identBody := Seq(Choice(lower, Lit("_")), ZeroOrMore(identChar))
	word := func(w string) Expr {
		return NoSkip(Seq(Lit(w), NotAhead(identChar)))
	}
	commaList := func(item Expr) Expr {
		return Optional(Seq(item, ZeroOrMore(Seq(Lit(","), item)), Optional(Lit(","))))
	}
	parens := func(item Expr) Expr {
		return Seq(Lit("("), item, Lit(")"))
	}

	g.SetTrivia(Choice(
		Lit(" "), Lit("\t"), Lit("\r"), Lit("\n"), Lit(";"),
		Seq(Lit("#"), ZeroOrMore(Seq(NotAhead(Lit("\n")), AnyChar()))),
	))

	// Entry points.
	g.Define(EOI, Normal, EndOfInput())
	g.Define(Input, Silent, Seq(StartOfInput(), ZeroOrMore(Ref(Term)), Ref(EOI)))
	g.Define(File, Silent, Seq(StartOfInput(), ZeroOrMore(Choice(Ref(Definition), Ref(Term))), Ref(EOI)))
	g.Define(Definition, Silent, Choice(Ref(TypeDef), Ref(TraitDef), Ref(ImplDef)))

	// Terms.
	g.Define(Term, Silent, Choice(
		Ref(Declaration), Ref(IfExpression), Ref(Function), Ref(Infix), Ref(Unary), Ref(Operand),
	))
	g.Define(InstanceTerm, Silent, Choice(
		Ref(PropertySet), Ref(InstanceInfix), Ref(Term), Ref(PropertyGet),
	))
	g.Define(Operand, Silent, Choice(
		Ref(CallMethod), Ref(Constructor), Ref(CallLocal), parens(Ref(Term)),
		Ref(Literal), Ref(Typename), Ref(Local),
	))
	g.Define(Receiver, Silent, Choice(
		Ref(Constructor), Ref(CallLocal), parens(Ref(Term)),
		Ref(Literal), Ref(Typename), Ref(Local),
	))
	g.Define(Literal, Silent, Choice(
		Ref(Float), Ref(Integer), Ref(String), Ref(Atom), Ref(Boolean), Ref(Array), Ref(Map),
	))
	g.Define(InfixOperand, Silent, Choice(Ref(Unary), Ref(Operand)))
	g.Define(InstanceOperand, Silent, Choice(Ref(PropertyGet), Ref(Unary), Ref(Operand)))

	g.Define(Infix, Normal, Seq(Ref(InfixOperand), OneOrMore(Seq(Ref(BinaryOperator), Ref(InfixOperand)))))
	g.Define(InstanceInfix, Normal, Seq(Ref(InstanceOperand), OneOrMore(Seq(Ref(BinaryOperator), Ref(InstanceOperand)))))
	g.Define(Unary, Normal, Seq(Ref(UnaryOperator), Choice(Ref(Unary), Ref(Operand))))

	// Operators. Longer tokens come first where they share a prefix.
	g.Define(BinaryOperator, Silent, Choice(
		Ref(Exponent), Ref(Multiply), Ref(Divide), Ref(Modulus), Ref(Plus), Ref(Minus),
		Ref(ShiftLeft), Ref(ShiftRight), Ref(LogicalAnd), Ref(BitwiseAnd),
		Ref(LogicalOr), Ref(BitwiseOr), Ref(BitwiseXor), Ref(Equal), Ref(NotEqual),
		Ref(GreaterThanOrEqual), Ref(LessThanOrEqual), Ref(GreaterThan), Ref(LessThan),
	))
	g.Define(UnaryOperator, Silent, Choice(Ref(LogicalNot), Ref(Plus), Ref(Minus)))
	for rule, token := range map[Rule]string{
		Exponent:           "**",
		Multiply:           "*",
		Divide:             "/",
		Modulus:            "%",
		Plus:               "+",
		Minus:              "-",
		ShiftLeft:          "<<",
		ShiftRight:         ">>",
		LogicalAnd:         "&&",
		BitwiseAnd:         "&",
		LogicalOr:          "||",
		BitwiseOr:          "|",
		BitwiseXor:         "^",
		Equal:              "==",
		NotEqual:           "!=",
		GreaterThanOrEqual: ">=",
		LessThanOrEqual:    "<=",
		GreaterThan:        ">",
		LessThan:           "<",
	} {
		g.Define(rule, Atomic, Lit(token))
	}
	g.Define(LogicalNot, Atomic, Seq(Lit("!"), NotAhead(Lit("="))))

	// Literals.
	g.Define(Array, Normal, Seq(Lit("["), commaList(Ref(Term)), Lit("]")))
	g.Define(Map, Normal, Seq(Lit("{"), commaList(Ref(MapPair)), Lit("}")))
	g.Define(MapPair, Normal, Choice(
		Seq(Ref(Keyword), Ref(Term)),
		Seq(Ref(Term), Lit("=>"), Ref(Term)),
	))
	g.Define(Atom, Atomic, Seq(
		Lit(":"), Choice(lower, upper, Lit("_")), ZeroOrMore(identChar),
		Optional(Choice(Lit("?"), Lit("!"))),
	))
	g.Define(Boolean, Normal, Choice(Ref(BooleanTrue), Ref(BooleanFalse)))
	g.Define(BooleanTrue, Atomic, word("benar"))
	g.Define(BooleanFalse, Atomic, word("salah"))

	digits := OneOrMore(digit)
	exponent := Seq(Choice(Lit("e"), Lit("E")), Optional(Choice(Lit("+"), Lit("-"))), digits)
	g.Define(Float, Atomic, Seq(
		Choice(
			Seq(digits, Lit("."), digits, Optional(exponent)),
			Seq(digits, exponent),
		),
		NotAhead(identChar),
	))

	hex := Choice(digit, Range('a', 'f'), Range('A', 'F'))
	oct := Range('0', '7')
	bin := Range('0', '1')
	grouped := func(d Expr) Expr { return Seq(d, ZeroOrMore(Choice(d, Lit("_")))) }
	g.Define(Integer, CompoundAtomic, Seq(
		Choice(
			Seq(Lit("0x"), Ref(IntegerHexadecimal)),
			Seq(Lit("0o"), Ref(IntegerOctal)),
			Seq(Lit("0b"), Ref(IntegerBinary)),
			Ref(IntegerDecimal),
			Ref(IntegerZero),
		),
		NotAhead(identChar),
	))
	g.Define(IntegerHexadecimal, Atomic, grouped(hex))
	g.Define(IntegerOctal, Atomic, grouped(oct))
	g.Define(IntegerBinary, Atomic, grouped(bin))
	g.Define(IntegerDecimal, Atomic, Seq(Range('1', '9'), ZeroOrMore(Choice(digit, Lit("_")))))
	g.Define(IntegerZero, Atomic, Lit("0"))

	g.Define(String, CompoundAtomic, Choice(
		Seq(Lit(`"`), Ref(StringDouble), Lit(`"`)),
		Seq(Lit(`'`), Ref(StringSingle), Lit(`'`)),
	))
	stringBody := func(quote string) Expr {
		return ZeroOrMore(Choice(
			Seq(Lit(`\`), AnyChar()),
			Seq(NotAhead(Lit(quote)), AnyChar()),
		))
	}
	g.Define(StringDouble, Atomic, stringBody(`"`))
	g.Define(StringSingle, Atomic, stringBody(`'`))

	// Names.
	reserved := make([]Expr, len(reservedWords))
	for i, w := range reservedWords {
		reserved[i] = Seq(Lit(w), NotAhead(identChar))
	}
	g.Define(Reserved, Atomic, Choice(reserved...))
	g.Define(Local, Atomic, Seq(NotAhead(Ref(Reserved)), identBody))
	g.Define(Ident, Atomic, Seq(NotAhead(Ref(Reserved)), identBody))
	g.Define(MethodName, Atomic, Seq(NotAhead(Ref(Reserved)), identBody))
	g.Define(MethodNameWithPredicate, Atomic, Seq(identBody, Lit("?")))
	g.Define(Keyword, Atomic, Seq(identBody, Lit(":"), NotAhead(Lit(":"))))
	typeSegment := Seq(upper, ZeroOrMore(identChar))
	g.Define(Typename, Atomic, Seq(typeSegment, ZeroOrMore(Seq(Lit("."), typeSegment))))
	g.Define(TypeSpec, Normal, Optional(Seq(Ref(Typename), ZeroOrMore(Seq(Lit("+"), Ref(Typename))))))

	// Properties.
	g.Define(PropertyGet, Atomic, Seq(Lit("@"), identBody))
	g.Define(PropertySet, Normal, Seq(
		Lit("@{"), Ref(PropertyAssignment), ZeroOrMore(Seq(Lit(","), Ref(PropertyAssignment))),
		Optional(Lit(",")), Lit("}"),
	))
	g.Define(PropertyAssignment, Normal, Seq(Ref(Keyword), Ref(InstanceTerm)))

	// Calls and construction.
	g.Define(CallArguments, Silent, parens(commaList(Ref(CallArgument))))
	g.Define(CallArgument, Normal, Ref(Term))
	g.Define(CallLocal, Normal, Seq(Ref(Local), Ref(CallArguments)))
	g.Define(MethodSegment, Silent, Seq(Lit("."), Ref(Ident), Optional(Ref(CallArguments))))
	g.Define(CallMethod, Normal, Seq(Ref(Receiver), OneOrMore(Ref(MethodSegment))))
	g.Define(Constructor, Normal, Seq(Ref(Typename), Lit("{"), commaList(Ref(ConstructorProperty)), Lit("}")))
	g.Define(ConstructorProperty, Normal, Seq(Ref(Keyword), Ref(Term)))
	g.Define(Declaration, Normal, Seq(Ref(Ident), Ref(Assign), Ref(Term)))
	g.Define(Assign, Atomic, Seq(Lit("="), NotAhead(Choice(Lit("="), Lit(">")))))

	// Control flow and functions.
	g.Define(Block, Normal, Choice(
		Seq(Lit("{"), ZeroOrMore(Ref(Term)), Lit("}")),
		Seq(word("do"), ZeroOrMore(Ref(Term)), word("end")),
	))
	g.Define(InstanceBlock, Normal, Choice(
		Seq(Lit("{"), ZeroOrMore(Ref(InstanceTerm)), Lit("}")),
		Seq(word("do"), ZeroOrMore(Ref(InstanceTerm)), word("end")),
	))
	g.Define(IfExpression, Normal, Seq(
		word("jika"), Ref(Term), Ref(Block),
		Optional(Seq(word("lainnya"), Ref(Block))),
	))
	g.Define(Function, Normal, Seq(
		word("fn"), Ref(FunctionClause),
		ZeroOrMore(Seq(Ahead(Lit("(")), Ref(FunctionClause))),
	))
	g.Define(FunctionClause, Normal, Seq(Ref(ArgumentList), Ref(Block)))
	g.Define(ArgumentList, Normal, Optional(parens(commaList(Ref(Argument)))))
	g.Define(Argument, Normal, Choice(
		Seq(Ref(Keyword), Ref(TypeSpec)),
		Seq(Ref(Ident), Ahead(Choice(Lit(","), Lit(")"))), Ref(TypeSpec)),
	))

	// Definitions.
	methodName := Choice(Ref(MethodNameWithPredicate), Ref(MethodName))
	signature := Choice(
		Seq(Ref(MethodNameWithPredicate), Ref(ArgumentList)),
		Seq(Ref(MethodName), Ref(ArgumentList), Ref(ReturnType)),
	)
	body := func(items ...Expr) Expr {
		return Optional(Seq(word("do"), ZeroOrMore(Choice(items...)), word("end")))
	}
	g.Define(TypeDef, Normal, Seq(word("type"), Ref(Typename), Ref(ArgumentList), Ref(TypeBody)))
	g.Define(TypeBody, Normal, body(Ref(ImplDef), Ref(DefStaticMethod), Ref(DefPrivateMethod), Ref(DefPublicMethod)))
	g.Define(TraitDef, Normal, Seq(word("trait"), Ref(Typename), Ref(TraitBounds), Ref(TraitBody)))
	g.Define(TraitBounds, Normal, Optional(Seq(Lit(":"), Ref(TypeSpec))))
	g.Define(TraitBody, Normal, body(Ref(DefStaticMethod), Ref(DefStaticSpec), Ref(DefPublicMethod), Ref(DefPublicSpec)))
	g.Define(ImplDef, Normal, Seq(word("impl"), Ref(Typename), Ref(ImplBody)))
	g.Define(ImplBody, Normal, body(Ref(DefStaticMethod), Ref(DefPrivateMethod), Ref(DefPublicMethod)))
	g.Define(DefPublicMethod, Normal, Seq(word("def"), methodName, Ref(ArgumentList), Ref(InstanceBlock)))
	g.Define(DefPrivateMethod, Normal, Seq(word("defp"), methodName, Ref(ArgumentList), Ref(InstanceBlock)))
	g.Define(DefStaticMethod, Normal, Seq(word("defs"), methodName, Ref(ArgumentList), Ref(Block)))
	g.Define(DefPublicSpec, Normal, Seq(word("def"), signature))
	g.Define(DefStaticSpec, Normal, Seq(word("defs"), signature))
	g.Define(ReturnType, Normal, Seq(Lit(":"), Ref(TypeSpec)))

	return g
}
