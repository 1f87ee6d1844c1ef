package syntax

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

// For is a for loop. At most one of Declaration and Initializer is set.
type For struct {
	Base
	Declaration  *VariableDeclaration
	Initializer  Expression
	Condition    Expression
	Incrementors []Expression
	Body         Statement
}

type If struct {
	Base
	Condition Expression
	Statement Statement
	Else      *ElseClause
}

type ElseClause struct {
	Base
	Statement Statement
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

// SwitchSection groups consecutive labels with the statements that follow.
type SwitchSection struct {
	Base
	Labels     []SwitchLabel
	Statements []Statement
}

// SwitchLabel is *CaseSwitchLabel or *DefaultSwitchLabel.
type SwitchLabel interface {
	Node
	switchLabelNode()
}

type CaseSwitchLabel struct {
	Base
	Value Expression
}

type DefaultSwitchLabel struct{ Base }

type While struct {
	Base
	Condition Expression
	Body      Statement
}

type EmptyStatement struct{ Base }

func (*Block) Kind() Kind               { return KindBlock }
func (*Break) Kind() Kind               { return KindBreak }
func (*Continue) Kind() Kind            { return KindContinue }
func (*Discard) Kind() Kind             { return KindDiscard }
func (*Do) Kind() Kind                  { return KindDo }
func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }
func (*For) Kind() Kind                 { return KindFor }
func (*If) Kind() Kind                  { return KindIf }
func (*ElseClause) Kind() Kind          { return KindElseClause }
func (*Return) Kind() Kind              { return KindReturn }
func (*Switch) Kind() Kind              { return KindSwitch }
func (*SwitchSection) Kind() Kind       { return KindSwitchSection }
func (*CaseSwitchLabel) Kind() Kind     { return KindCaseSwitchLabel }
func (*DefaultSwitchLabel) Kind() Kind  { return KindDefaultSwitchLabel }
func (*While) Kind() Kind               { return KindWhile }
func (*EmptyStatement) Kind() Kind      { return KindEmptyStatement }

func (*Block) statementNode()               {}
func (*Break) statementNode()               {}
func (*Continue) statementNode()            {}
func (*Discard) statementNode()             {}
func (*Do) statementNode()                  {}
func (*ExpressionStatement) statementNode() {}
func (*For) statementNode()                 {}
func (*If) statementNode()                  {}
func (*Return) statementNode()              {}
func (*Switch) statementNode()              {}
func (*While) statementNode()               {}
func (*EmptyStatement) statementNode()      {}

func (*CaseSwitchLabel) switchLabelNode()    {}
func (*DefaultSwitchLabel) switchLabelNode() {}

func (n *Block) Children() []Node {
	out := make([]Node, 0, len(n.Statements))
	for _, s := range n.Statements {
		out = appendNonNil(out, s)
	}
	return out
}

func (*Break) Children() []Node              { return nil }
func (*Continue) Children() []Node           { return nil }
func (*Discard) Children() []Node            { return nil }
func (*DefaultSwitchLabel) Children() []Node { return nil }
func (*EmptyStatement) Children() []Node     { return nil }

func (n *Do) Children() []Node                  { return appendNonNil(nil, n.Body, n.Condition) }
func (n *ExpressionStatement) Children() []Node { return appendNonNil(nil, n.Expression) }
func (n *ElseClause) Children() []Node          { return appendNonNil(nil, n.Statement) }
func (n *Return) Children() []Node              { return appendNonNil(nil, n.Expression) }
func (n *CaseSwitchLabel) Children() []Node     { return appendNonNil(nil, n.Value) }
func (n *While) Children() []Node               { return appendNonNil(nil, n.Condition, n.Body) }

func (n *For) Children() []Node {
	out := appendNonNil(nil, n.Declaration, n.Initializer, n.Condition)
	for _, e := range n.Incrementors {
		out = appendNonNil(out, e)
	}
	return appendNonNil(out, n.Body)
}

func (n *If) Children() []Node {
	return appendNonNil(nil, n.Condition, n.Statement, n.Else)
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
