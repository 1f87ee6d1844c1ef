package syntax

// CompilationUnit is the root of one parsed file.
type CompilationUnit struct {
	Base
	Declarations []Declaration
}

// IdentifierDeclarationName is the name token of a declaration.
type IdentifierDeclarationName struct {
	Base
	Name string
}

// Semantic is a ": NAME" annotation on a parameter, field, variable or
// function return value.
type Semantic struct {
	Base
	Name string
}

// FunctionDeclaration is a prototype without a body.
type FunctionDeclaration struct {
	Base
	ReturnType Type
	Name       Expression // *IdentifierName or *QualifiedName
	Parameters []*Parameter
	Semantic   *Semantic
}

// FunctionDefinition is a function with a body.
type FunctionDefinition struct {
	Base
	ReturnType Type
	Name       Expression // *IdentifierName or *QualifiedName
	Parameters []*Parameter
	Semantic   *Semantic
	Body       *Block
}

type Parameter struct {
	Base
	Modifier   ParameterModifier
	Type       Type
	Declarator *VariableDeclarator
}

// VariableDeclaration declares one or more variables of a type. It is also a
// statement when it appears inside a function body.
type VariableDeclaration struct {
	Base
	Modifiers   []string // static, const, uniform, groupshared, ...
	Type        Type
	Declarators []*VariableDeclarator
}

type VariableDeclarator struct {
	Base
	Name        *IdentifierDeclarationName
	ArraySizes  []Expression
	Semantic    *Semantic
	Initializer Expression
}

type StructType struct {
	Base
	Name   *IdentifierDeclarationName
	Fields []*VariableDeclaration
}

// ClassType is a class with fields and methods.
type ClassType struct {
	Base
	Name    *IdentifierDeclarationName
	Fields  []*VariableDeclaration
	Methods []Declaration // *FunctionDeclaration or *FunctionDefinition
}

type Namespace struct {
	Base
	Name         *IdentifierDeclarationName
	Declarations []Declaration
}

// ConstantBuffer is a cbuffer/tbuffer block; its fields are globals.
type ConstantBuffer struct {
	Base
	Name     *IdentifierDeclarationName
	Register string
	Fields   []*VariableDeclaration
}

type Technique struct {
	Base
	Keyword string // technique, technique10, technique11
	Name    *IdentifierDeclarationName
	Passes  []*Pass
}

type Pass struct {
	Base
	Name        *IdentifierDeclarationName
	Assignments []*StateAssignment
}

// StateAssignment is "Name = value;" inside a pass. Value is nil when the
// right-hand side is an unparsed state constant; ValueText keeps its text.
type StateAssignment struct {
	Base
	Name      string
	Value     Expression
	ValueText string
}

func (*CompilationUnit) Kind() Kind           { return KindCompilationUnit }
func (*IdentifierDeclarationName) Kind() Kind { return KindIdentifierDeclarationName }
func (*Semantic) Kind() Kind                  { return KindSemantic }
func (*FunctionDeclaration) Kind() Kind       { return KindFunctionDeclaration }
func (*FunctionDefinition) Kind() Kind        { return KindFunctionDefinition }
func (*Parameter) Kind() Kind                 { return KindParameter }
func (*VariableDeclaration) Kind() Kind       { return KindVariableDeclaration }
func (*VariableDeclarator) Kind() Kind        { return KindVariableDeclarator }
func (*StructType) Kind() Kind                { return KindStructType }
func (*ClassType) Kind() Kind                 { return KindClassType }
func (*Namespace) Kind() Kind                 { return KindNamespace }
func (*ConstantBuffer) Kind() Kind            { return KindConstantBuffer }
func (*Technique) Kind() Kind                 { return KindTechnique }
func (*Pass) Kind() Kind                      { return KindPass }
func (*StateAssignment) Kind() Kind           { return KindStateAssignment }

func (*FunctionDeclaration) declarationNode() {}
func (*FunctionDefinition) declarationNode()  {}
func (*VariableDeclaration) declarationNode() {}
func (*StructType) declarationNode()          {}
func (*ClassType) declarationNode()           {}
func (*Namespace) declarationNode()           {}
func (*ConstantBuffer) declarationNode()      {}
func (*Technique) declarationNode()           {}

func (*VariableDeclaration) statementNode() {}

func (n *CompilationUnit) Children() []Node {
	out := make([]Node, 0, len(n.Declarations))
	for _, d := range n.Declarations {
		out = appendNonNil(out, d)
	}
	return out
}

func (*IdentifierDeclarationName) Children() []Node { return nil }
func (*Semantic) Children() []Node                  { return nil }

func (n *FunctionDeclaration) Children() []Node {
	out := appendNonNil(nil, n.ReturnType, n.Name)
	for _, p := range n.Parameters {
		out = appendNonNil(out, p)
	}
	return appendNonNil(out, n.Semantic)
}

func (n *FunctionDefinition) Children() []Node {
	out := appendNonNil(nil, n.ReturnType, n.Name)
	for _, p := range n.Parameters {
		out = appendNonNil(out, p)
	}
	return appendNonNil(out, n.Semantic, n.Body)
}

func (n *Parameter) Children() []Node {
	return appendNonNil(nil, n.Type, n.Declarator)
}

func (n *VariableDeclaration) Children() []Node {
	out := appendNonNil(nil, n.Type)
	for _, d := range n.Declarators {
		out = appendNonNil(out, d)
	}
	return out
}

func (n *VariableDeclarator) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, s := range n.ArraySizes {
		out = appendNonNil(out, s)
	}
	return appendNonNil(out, n.Semantic, n.Initializer)
}

func (n *StructType) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, f := range n.Fields {
		out = appendNonNil(out, f)
	}
	return out
}

func (n *ClassType) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, f := range n.Fields {
		out = appendNonNil(out, f)
	}
	for _, m := range n.Methods {
		out = appendNonNil(out, m)
	}
	return out
}

func (n *Namespace) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, d := range n.Declarations {
		out = appendNonNil(out, d)
	}
	return out
}

func (n *ConstantBuffer) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, f := range n.Fields {
		out = appendNonNil(out, f)
	}
	return out
}

func (n *Technique) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, p := range n.Passes {
		out = appendNonNil(out, p)
	}
	return out
}

func (n *Pass) Children() []Node {
	out := appendNonNil(nil, n.Name)
	for _, a := range n.Assignments {
		out = appendNonNil(out, a)
	}
	return out
}

func (n *StateAssignment) Children() []Node {
	return appendNonNil(nil, n.Value)
}
