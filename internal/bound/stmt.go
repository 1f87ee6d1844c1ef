package bound

import (
	"hlsltools/internal/symbols"
)

type Block struct {
	Base
	Statements []Statement
}

type Break struct{ Base }

type Continue struct{ Base }

type Discard struct{ Base }

type Do struct {
	Base
	Body      Statement
	Condition Expression
}

type ExpressionStatement struct {
	Base
	Expression Expression
}

// For is a for loop. Declaration lives in the enclosing scope; the rest is
// bound in the loop's own scope.
type For struct {
	Base
	Declaration  *MultipleVariableDeclarations
	Initializer  Expression
	Condition    Expression
	Incrementors []Expression
	Body         Statement
}

// If binds the else statement in the same scope as the then statement.
type If struct {
	Base
	Condition   Expression
	Consequence Statement
	Alternative Statement
}

type Return struct {
	Base
	Expression Expression
}

type Switch struct {
	Base
	Expression Expression
	Sections   []*SwitchSection
}

type SwitchSection struct {
	Base
	Labels     []*SwitchLabel
	Statements []Statement
}

// SwitchLabel is a case label; Expression is nil for default.
type SwitchLabel struct {
	Base
	Expression Expression
}

type While struct {
	Base
	Condition Expression
	Body      Statement
}

// NoOp is an empty statement.
type NoOp struct{ Base }

// MultipleVariableDeclarations is one declaration statement with one or more
// declarators.
type MultipleVariableDeclarations struct {
	Base
	TypeRef      Expression
	Declarations []*VariableDeclaration
}

type VariableDeclaration struct {
	Base
	Symbol      symbols.SymbolID
	ArraySizes  []Expression
	Semantic    *Semantic
	Initializer Expression
}

func (*Block) Kind() Kind                        { return KindBlock }
func (*Break) Kind() Kind                        { return KindBreak }
func (*Continue) Kind() Kind                     { return KindContinue }
func (*Discard) Kind() Kind                      { return KindDiscard }
func (*Do) Kind() Kind                           { return KindDo }
func (*ExpressionStatement) Kind() Kind          { return KindExpressionStatement }
func (*For) Kind() Kind                          { return KindFor }
func (*If) Kind() Kind                           { return KindIf }
func (*Return) Kind() Kind                       { return KindReturn }
func (*Switch) Kind() Kind                       { return KindSwitch }
func (*SwitchSection) Kind() Kind                { return KindSwitchSection }
func (*SwitchLabel) Kind() Kind                  { return KindSwitchLabel }
func (*While) Kind() Kind                        { return KindWhile }
func (*NoOp) Kind() Kind                         { return KindNoOp }
func (*MultipleVariableDeclarations) Kind() Kind { return KindMultipleVariableDeclarations }
func (*VariableDeclaration) Kind() Kind          { return KindVariableDeclaration }

func (*Block) statementNode()                        {}
func (*Break) statementNode()                        {}
func (*Continue) statementNode()                     {}
func (*Discard) statementNode()                      {}
func (*Do) statementNode()                           {}
func (*ExpressionStatement) statementNode()          {}
func (*For) statementNode()                          {}
func (*If) statementNode()                           {}
func (*Return) statementNode()                       {}
func (*Switch) statementNode()                       {}
func (*While) statementNode()                        {}
func (*NoOp) statementNode()                         {}
func (*MultipleVariableDeclarations) statementNode() {}
func (*VariableDeclaration) statementNode()          {}

func (n *Block) Children() []Node {
	out := make([]Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		out = appendNonNil(out, s)
	}
	return out
}

func (*Break) Children() []Node    { return nil }
func (*Continue) Children() []Node { return nil }
func (*Discard) Children() []Node  { return nil }
func (*NoOp) Children() []Node     { return nil }

func (n *Do) Children() []Node                  { return appendNonNil(nil, n.Body, n.Condition) }
func (n *ExpressionStatement) Children() []Node { return appendNonNil(nil, n.Expression) }
func (n *Return) Children() []Node              { return appendNonNil(nil, n.Expression) }
func (n *SwitchLabel) Children() []Node         { return appendNonNil(nil, n.Expression) }
func (n *While) Children() []Node               { return appendNonNil(nil, n.Condition, n.Body) }

func (n *For) Children() []Node {
	out := appendNonNil(nil, n.Declaration, n.Initializer, n.Condition)
	for _, e := range n.Incrementors {
		out = appendNonNil(out, e)
	}
	return appendNonNil(out, n.Body)
}

func (n *If) Children() []Node {
	return appendNonNil(nil, n.Condition, n.Consequence, n.Alternative)
}

func (n *Switch) Children() []Node {
	out := appendNonNil(nil, n.Expression)
	for _, s := range n.Sections {
		out = appendNonNil(out, s)
	}
	return out
}

func (n *SwitchSection) Children() []Node {
	out := make([]Node, 0, len(n.Labels)+len(n.Statements))
	for _, l := range n.Labels {
		out = appendNonNil(out, l)
	}
	for _, s := range n.Statements {
		out = appendNonNil(out, s)
	}
	return out
}

func (n *MultipleVariableDeclarations) Children() []Node {
	out := appendNonNil(nil, n.TypeRef)
	for _, d := range n.Declarations {
		out = appendNonNil(out, d)
	}
	return out
}

func (n *VariableDeclaration) Children() []Node {
	out := make([]Node, 0, len(n.ArraySizes)+2)
	for _, s := range n.ArraySizes {
		out = appendNonNil(out, s)
	}
	return appendNonNil(out, n.Semantic, n.Initializer)
}
