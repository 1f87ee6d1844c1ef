package bound

import (
	"hlsltools/internal/symbols"
)

type CompilationUnit struct {
	Base
	Declarations []Node
}

type Parameter struct {
	Base
	Symbol   symbols.SymbolID
	TypeRef  Expression
	Semantic *Semantic
	Default  Expression
}

// FunctionDeclaration is a bound prototype. Function may be shared with a
// later definition.
type FunctionDeclaration struct {
	Base
	Function   symbols.SymbolID
	ReturnType Expression
	Parameters []*Parameter
	Semantic   *Semantic
}

// FunctionDefinition is a function with a body. Body is attached right
// after the node is recorded so that the body can be bound in the
// function's scope.
type FunctionDefinition struct {
	Base
	Function   symbols.SymbolID
	ReturnType Expression
	Parameters []*Parameter
	Semantic   *Semantic
	Body       *Block
}

type StructType struct {
	Base
	Symbol symbols.SymbolID
	Fields []*MultipleVariableDeclarations
}

type ClassType struct {
	Base
	Symbol  symbols.SymbolID
	Fields  []*MultipleVariableDeclarations
	Methods []Node
}

type Namespace struct {
	Base
	Symbol       symbols.SymbolID
	Declarations []Node
}

type ConstantBuffer struct {
	Base
	Symbol symbols.SymbolID
	Fields []*MultipleVariableDeclarations
}

type Technique struct {
	Base
	Symbol symbols.SymbolID
	Passes []*Pass
}

type Pass struct {
	Base
	Symbol      symbols.SymbolID
	Assignments []*StateAssignment
}

type StateAssignment struct {
	Base
	Name  string
	Value Expression
}

// Semantic is a bound ": NAME" annotation. Symbol is the intrinsic
// semantic or a user semantic created for unknown names.
type Semantic struct {
	Base
	Symbol symbols.SymbolID
}

func (*CompilationUnit) Kind() Kind     { return KindCompilationUnit }
func (*Parameter) Kind() Kind           { return KindParameter }
func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }
func (*FunctionDefinition) Kind() Kind  { return KindFunctionDefinition }
func (*StructType) Kind() Kind          { return KindStructType }
func (*ClassType) Kind() Kind           { return KindClassType }
func (*Namespace) Kind() Kind           { return KindNamespace }
func (*ConstantBuffer) Kind() Kind      { return KindConstantBuffer }
func (*Technique) Kind() Kind           { return KindTechnique }
func (*Pass) Kind() Kind                { return KindPass }
func (*StateAssignment) Kind() Kind     { return KindStateAssignment }
func (*Semantic) Kind() Kind            { return KindSemantic }

func (n *CompilationUnit) Children() []Node { return appendNonNil(nil, n.Declarations...) }
func (n *Namespace) Children() []Node       { return appendNonNil(nil, n.Declarations...) }
func (*Semantic) Children() []Node          { return nil }

func (n *Parameter) Children() []Node {
	return appendNonNil(nil, n.TypeRef, n.Semantic, n.Default)
}

func (n *FunctionDeclaration) Children() []Node {
	out := appendNonNil(nil, n.ReturnType)
	for _, p := range n.Parameters {
		out = appendNonNil(out, p)
	}
	return appendNonNil(out, n.Semantic)
}

func (n *FunctionDefinition) Children() []Node {
	out := appendNonNil(nil, n.ReturnType)
	for _, p := range n.Parameters {
		out = appendNonNil(out, p)
	}
	return appendNonNil(out, n.Semantic, n.Body)
}

func fieldNodes(fields []*MultipleVariableDeclarations) []Node {
	out := make([]Node, 0, len(fields))
	for _, f := range fields {
		out = appendNonNil(out, f)
	}
	return out
}

func (n *StructType) Children() []Node     { return fieldNodes(n.Fields) }
func (n *ConstantBuffer) Children() []Node { return fieldNodes(n.Fields) }

func (n *ClassType) Children() []Node {
	return appendNonNil(fieldNodes(n.Fields), n.Methods...)
}

func (n *Technique) Children() []Node {
	out := make([]Node, 0, len(n.Passes))
	for _, p := range n.Passes {
		out = appendNonNil(out, p)
	}
	return out
}

func (n *Pass) Children() []Node {
	out := make([]Node, 0, len(n.Assignments))
	for _, a := range n.Assignments {
		out = appendNonNil(out, a)
	}
	return out
}

func (n *StateAssignment) Children() []Node { return appendNonNil(nil, n.Value) }
