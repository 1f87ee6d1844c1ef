package bound

import (
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

type Literal struct {
	ExprBase
	Text string
}

// VariableExpression references a variable, parameter or field.
type VariableExpression struct {
	ExprBase
	Symbol symbols.SymbolID
}

// Name is a bare name that does not denote a value: a call target, a
// namespace qualifier or an unresolved identifier. Candidates lists what the
// name resolved to; Symbol is the one finally chosen, if any.
type Name struct {
	ExprBase
	Symbol     symbols.SymbolID
	Candidates []symbols.SymbolID
}

// FunctionInvocation is a call of a free function. Function is NoSymbolID
// when resolution failed; for ambiguous calls it is the top candidate.
type FunctionInvocation struct {
	ExprBase
	Target    *Name
	Function  symbols.SymbolID
	Arguments []Expression
}

type MethodInvocation struct {
	ExprBase
	Target    Expression
	Method    symbols.SymbolID
	Arguments []Expression
}

type NumericConstructorInvocation struct {
	ExprBase
	TypeRef   Expression
	Arguments []Expression
}

// FieldExpression reads a struct or class field.
type FieldExpression struct {
	ExprBase
	Target Expression
	Field  symbols.SymbolID
}

// SwizzleExpression selects vector or matrix components.
type SwizzleExpression struct {
	ExprBase
	Target  Expression
	Swizzle string
}

type ElementAccess struct {
	ExprBase
	Target Expression
	Index  Expression
}

type Binary struct {
	ExprBase
	Op    syntax.Operator
	Left  Expression
	Right Expression
}

type Unary struct {
	ExprBase
	Op      syntax.Operator
	Postfix bool
	Operand Expression
}

type Assignment struct {
	ExprBase
	Op    syntax.Operator
	Left  Expression
	Right Expression
}

type Conditional struct {
	ExprBase
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

// Compound is the comma operator; its type is the type of Right.
type Compound struct {
	ExprBase
	Left  Expression
	Right Expression
}

type Parenthesized struct {
	ExprBase
	Expression Expression
}

type Cast struct {
	ExprBase
	TypeRef    Expression
	Expression Expression
}

type InitializerList struct {
	ExprBase
	Elements []Expression
}

// Compile is a technique pass "compile profile Entry(args)".
type Compile struct {
	ExprBase
	Profile    string
	Invocation *FunctionInvocation
}

// Type references. Their Type() is the referenced type itself.
type (
	IntrinsicScalarType        struct{ ExprBase }
	IntrinsicVectorType        struct{ ExprBase }
	IntrinsicMatrixType        struct{ ExprBase }
	IntrinsicObjectType        struct{ ExprBase }
	IntrinsicGenericVectorType struct{ ExprBase }
	IntrinsicGenericMatrixType struct{ ExprBase }
	// IntrinsicKeywordType is void or string.
	IntrinsicKeywordType struct{ ExprBase }
	// StructTypeReference names a user struct or class.
	StructTypeReference struct{ ExprBase }
)

// Error stands for an expression that failed to bind; its type is the
// error sentinel.
type Error struct {
	ExprBase
}

func (*Literal) Kind() Kind                      { return KindLiteral }
func (*VariableExpression) Kind() Kind           { return KindVariableExpression }
func (*Name) Kind() Kind                         { return KindName }
func (*FunctionInvocation) Kind() Kind           { return KindFunctionInvocation }
func (*MethodInvocation) Kind() Kind             { return KindMethodInvocation }
func (*NumericConstructorInvocation) Kind() Kind { return KindNumericConstructorInvocation }
func (*FieldExpression) Kind() Kind              { return KindFieldExpression }
func (*SwizzleExpression) Kind() Kind            { return KindSwizzleExpression }
func (*ElementAccess) Kind() Kind                { return KindElementAccess }
func (*Binary) Kind() Kind                       { return KindBinary }
func (*Unary) Kind() Kind                        { return KindUnary }
func (*Assignment) Kind() Kind                   { return KindAssignment }
func (*Conditional) Kind() Kind                  { return KindConditional }
func (*Compound) Kind() Kind                     { return KindCompound }
func (*Parenthesized) Kind() Kind                { return KindParenthesized }
func (*Cast) Kind() Kind                         { return KindCast }
func (*InitializerList) Kind() Kind              { return KindInitializerList }
func (*Compile) Kind() Kind                      { return KindCompile }
func (*IntrinsicScalarType) Kind() Kind          { return KindIntrinsicScalarType }
func (*IntrinsicVectorType) Kind() Kind          { return KindIntrinsicVectorType }
func (*IntrinsicMatrixType) Kind() Kind          { return KindIntrinsicMatrixType }
func (*IntrinsicObjectType) Kind() Kind          { return KindIntrinsicObjectType }
func (*IntrinsicGenericVectorType) Kind() Kind   { return KindIntrinsicGenericVectorType }
func (*IntrinsicGenericMatrixType) Kind() Kind   { return KindIntrinsicGenericMatrixType }
func (*IntrinsicKeywordType) Kind() Kind         { return KindIntrinsicKeywordType }
func (*StructTypeReference) Kind() Kind          { return KindStructTypeReference }
func (*Error) Kind() Kind                        { return KindError }

func (*Literal) Children() []Node                    { return nil }
func (*VariableExpression) Children() []Node         { return nil }
func (*Name) Children() []Node                       { return nil }
func (*IntrinsicScalarType) Children() []Node        { return nil }
func (*IntrinsicVectorType) Children() []Node        { return nil }
func (*IntrinsicMatrixType) Children() []Node        { return nil }
func (*IntrinsicObjectType) Children() []Node        { return nil }
func (*IntrinsicGenericVectorType) Children() []Node { return nil }
func (*IntrinsicGenericMatrixType) Children() []Node { return nil }
func (*IntrinsicKeywordType) Children() []Node       { return nil }
func (*StructTypeReference) Children() []Node        { return nil }
func (*Error) Children() []Node                      { return nil }

func exprNodes(out []Node, exprs []Expression) []Node {
	for _, e := range exprs {
		out = appendNonNil(out, e)
	}
	return out
}

func (n *FunctionInvocation) Children() []Node {
	return exprNodes(appendNonNil(nil, n.Target), n.Arguments)
}

func (n *MethodInvocation) Children() []Node {
	return exprNodes(appendNonNil(nil, n.Target), n.Arguments)
}

func (n *NumericConstructorInvocation) Children() []Node {
	return exprNodes(appendNonNil(nil, n.TypeRef), n.Arguments)
}

func (n *FieldExpression) Children() []Node   { return appendNonNil(nil, n.Target) }
func (n *SwizzleExpression) Children() []Node { return appendNonNil(nil, n.Target) }
func (n *ElementAccess) Children() []Node     { return appendNonNil(nil, n.Target, n.Index) }
func (n *Binary) Children() []Node            { return appendNonNil(nil, n.Left, n.Right) }
func (n *Unary) Children() []Node             { return appendNonNil(nil, n.Operand) }
func (n *Assignment) Children() []Node        { return appendNonNil(nil, n.Left, n.Right) }
func (n *Compound) Children() []Node          { return appendNonNil(nil, n.Left, n.Right) }
func (n *Parenthesized) Children() []Node     { return appendNonNil(nil, n.Expression) }
func (n *Cast) Children() []Node              { return appendNonNil(nil, n.TypeRef, n.Expression) }
func (n *InitializerList) Children() []Node   { return exprNodes(nil, n.Elements) }
func (n *Compile) Children() []Node           { return appendNonNil(nil, n.Invocation) }

func (n *Conditional) Children() []Node {
	return appendNonNil(nil, n.Condition, n.WhenTrue, n.WhenFalse)
}
