package syntax

// IdentifierName is a simple name in expression or type position.
type IdentifierName struct {
	Base
	Name string
}

// QualifiedName is "Left::Right".
type QualifiedName struct {
	Base
	Left  Expression // *IdentifierName or *QualifiedName
	Right *IdentifierName
}

type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralUint
	LiteralFloat
	LiteralHalf
	LiteralDouble
	LiteralBool
	LiteralString
)

type Literal struct {
	Base
	LitKind LiteralKind
	Text    string
}

type Binary struct {
	Base
	Op    Operator
	Left  Expression
	Right Expression
}

// Assignment is "Left op= Right"; Op is OpAssign for plain assignment.
type Assignment struct {
	Base
	Op    Operator
	Left  Expression
	Right Expression
}

type PrefixUnary struct {
	Base
	Op      Operator
	Operand Expression
}

type PostfixUnary struct {
	Base
	Op      Operator
	Operand Expression
}

// Invocation calls a free function: f(a), N::f(a).
type Invocation struct {
	Base
	Target    Expression // *IdentifierName or *QualifiedName
	Arguments []Expression
}

// MethodInvocation calls a member: tex.Sample(s, uv).
type MethodInvocation struct {
	Base
	Target    Expression
	Name      *IdentifierName
	Arguments []Expression
}

// NumericConstructor is float3(a, b, c) and friends.
type NumericConstructor struct {
	Base
	Type      Type
	Arguments []Expression
}

// FieldAccess is "Target.Name": struct field or swizzle.
type FieldAccess struct {
	Base
	Target Expression
	Name   *IdentifierName
}

type ElementAccess struct {
	Base
	Target Expression
	Index  Expression
}

// Compound is the comma operator.
type Compound struct {
	Base
	Left  Expression
	Right Expression
}

type Parenthesized struct {
	Base
	Expression Expression
}

type Conditional struct {
	Base
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

type Cast struct {
	Base
	Type       Type
	Expression Expression
}

// InitializerList is a brace initializer: { 1, 2, 3 }.
type InitializerList struct {
	Base
	Elements []Expression
}

// Compile is "compile vs_5_0 Entry(args)" inside a technique pass.
type Compile struct {
	Base
	Profile    string
	Invocation *Invocation
}

// Missing stands in for an expression the front end could not recover.
type Missing struct{ Base }

func (*IdentifierName) Kind() Kind     { return KindIdentifierName }
func (*QualifiedName) Kind() Kind      { return KindQualifiedName }
func (*Literal) Kind() Kind            { return KindLiteral }
func (*Binary) Kind() Kind             { return KindBinary }
func (*Assignment) Kind() Kind         { return KindAssignment }
func (*PrefixUnary) Kind() Kind        { return KindPrefixUnary }
func (*PostfixUnary) Kind() Kind       { return KindPostfixUnary }
func (*Invocation) Kind() Kind         { return KindInvocation }
func (*MethodInvocation) Kind() Kind   { return KindMethodInvocation }
func (*NumericConstructor) Kind() Kind { return KindNumericConstructor }
func (*FieldAccess) Kind() Kind        { return KindFieldAccess }
func (*ElementAccess) Kind() Kind      { return KindElementAccess }
func (*Compound) Kind() Kind           { return KindCompound }
func (*Parenthesized) Kind() Kind      { return KindParenthesized }
func (*Conditional) Kind() Kind        { return KindConditional }
func (*Cast) Kind() Kind               { return KindCast }
func (*InitializerList) Kind() Kind    { return KindInitializerList }
func (*Compile) Kind() Kind            { return KindCompile }
func (*Missing) Kind() Kind            { return KindMissing }

func (*IdentifierName) expressionNode()     {}
func (*QualifiedName) expressionNode()      {}
func (*Literal) expressionNode()            {}
func (*Binary) expressionNode()             {}
func (*Assignment) expressionNode()         {}
func (*PrefixUnary) expressionNode()        {}
func (*PostfixUnary) expressionNode()       {}
func (*Invocation) expressionNode()         {}
func (*MethodInvocation) expressionNode()   {}
func (*NumericConstructor) expressionNode() {}
func (*FieldAccess) expressionNode()        {}
func (*ElementAccess) expressionNode()      {}
func (*Compound) expressionNode()           {}
func (*Parenthesized) expressionNode()      {}
func (*Conditional) expressionNode()        {}
func (*Cast) expressionNode()               {}
func (*InitializerList) expressionNode()    {}
func (*Compile) expressionNode()            {}
func (*Missing) expressionNode()            {}

// Names double as user type references.
func (*IdentifierName) typeNode() {}
func (*QualifiedName) typeNode()  {}

func (*IdentifierName) Children() []Node { return nil }
func (*Literal) Children() []Node        { return nil }
func (*Missing) Children() []Node        { return nil }

func (n *QualifiedName) Children() []Node { return appendNonNil(nil, n.Left, n.Right) }
func (n *Binary) Children() []Node        { return appendNonNil(nil, n.Left, n.Right) }
func (n *Assignment) Children() []Node    { return appendNonNil(nil, n.Left, n.Right) }
func (n *PrefixUnary) Children() []Node   { return appendNonNil(nil, n.Operand) }
func (n *PostfixUnary) Children() []Node  { return appendNonNil(nil, n.Operand) }
func (n *FieldAccess) Children() []Node   { return appendNonNil(nil, n.Target, n.Name) }
func (n *ElementAccess) Children() []Node { return appendNonNil(nil, n.Target, n.Index) }
func (n *Compound) Children() []Node      { return appendNonNil(nil, n.Left, n.Right) }
func (n *Parenthesized) Children() []Node { return appendNonNil(nil, n.Expression) }
func (n *Cast) Children() []Node          { return appendNonNil(nil, n.Type, n.Expression) }
func (n *Compile) Children() []Node       { return appendNonNil(nil, n.Invocation) }

func (n *Conditional) Children() []Node {
	return appendNonNil(nil, n.Condition, n.WhenTrue, n.WhenFalse)
}

func (n *Invocation) Children() []Node {
	return appendExprs(appendNonNil(nil, n.Target), n.Arguments)
}

func (n *MethodInvocation) Children() []Node {
	return appendExprs(appendNonNil(nil, n.Target, n.Name), n.Arguments)
}

func (n *NumericConstructor) Children() []Node {
	return appendExprs(appendNonNil(nil, n.Type), n.Arguments)
}

func (n *InitializerList) Children() []Node {
	return appendExprs(nil, n.Elements)
}

func appendExprs(out []Node, exprs []Expression) []Node {
	for _, e := range exprs {
		out = appendNonNil(out, e)
	}
	return out
}
