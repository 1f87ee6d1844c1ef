package binder

import (
	"fmt"

	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// bindStatement dispatches on the closed set of statement syntax. A kind
// without a case means the binder lags behind the grammar and panics.
func (b *Binder) bindStatement(s syntax.Statement) bound.Statement {
	if syntax.IsNil(s) {
		return nil
	}
	switch n := s.(type) {
	case *syntax.Block:
		return bindNode(b, n, b.bindBlock)
	case *syntax.Break:
		return bindNode(b, n, func(n *syntax.Break) *bound.Break { return &bound.Break{Base: bound.From(n)} })
	case *syntax.Continue:
		return bindNode(b, n, func(n *syntax.Continue) *bound.Continue { return &bound.Continue{Base: bound.From(n)} })
	case *syntax.Discard:
		return bindNode(b, n, func(n *syntax.Discard) *bound.Discard { return &bound.Discard{Base: bound.From(n)} })
	case *syntax.EmptyStatement:
		return bindNode(b, n, func(n *syntax.EmptyStatement) *bound.NoOp { return &bound.NoOp{Base: bound.From(n)} })
	case *syntax.Do:
		return bindNode(b, n, b.bindDo)
	case *syntax.ExpressionStatement:
		return bindNode(b, n, func(n *syntax.ExpressionStatement) *bound.ExpressionStatement {
			return &bound.ExpressionStatement{Base: bound.From(n), Expression: b.bindExpression(n.Expression)}
		})
	case *syntax.For:
		return bindNode(b, n, b.bindFor)
	case *syntax.If:
		return bindNode(b, n, b.bindIf)
	case *syntax.Return:
		return bindNode(b, n, b.bindReturn)
	case *syntax.Switch:
		return bindNode(b, n, b.bindSwitch)
	case *syntax.While:
		return bindNode(b, n, b.bindWhile)
	case *syntax.VariableDeclaration:
		return bindNode(b, n, func(n *syntax.VariableDeclaration) *bound.MultipleVariableDeclarations {
			return b.bindVariables(n, symbols.SymbolVariable)
		})
	default:
		panic(fmt.Sprintf("binder: unsupported statement kind %s", s.Kind()))
	}
}

func (b *Binder) bindStatements(stmts []syntax.Statement) []bound.Statement {
	out := make([]bound.Statement, 0, len(stmts))
	for _, s := range stmts {
		if st := b.bindStatement(s); st != nil {
			out = append(out, st)
		}
	}
	return out
}

// bindBlock opens a block scope.
func (b *Binder) bindBlock(n *syntax.Block) *bound.Block {
	inner := b.child(symbols.ScopeBlock, n, symbols.NoSymbolID)
	return inner.bindBlockIn(n)
}

// bindBlockIn binds the block's statements directly in b's scope. Function
// bodies use it so that parameters and top-level locals share a scope.
func (b *Binder) bindBlockIn(n *syntax.Block) *bound.Block {
	block := &bound.Block{Base: bound.From(n)}
	b.shared.recordScope(block, b.scope)
	block.Statements = b.bindStatements(n.Statements)
	return block
}

func (b *Binder) bindDo(n *syntax.Do) *bound.Do {
	return &bound.Do{
		Base:      bound.From(n),
		Body:      b.bindStatement(n.Body),
		Condition: b.bindCondition(n.Condition),
	}
}

func (b *Binder) bindWhile(n *syntax.While) *bound.While {
	return &bound.While{
		Base:      bound.From(n),
		Condition: b.bindCondition(n.Condition),
		Body:      b.bindStatement(n.Body),
	}
}

// bindFor binds the loop declaration in the enclosing scope. Redeclaring a
// name already active there retires the earlier symbol with a warning. The
// remaining parts are bound in the loop's own scope.
func (b *Binder) bindFor(n *syntax.For) *bound.For {
	out := &bound.For{Base: bound.From(n)}

	if n.Declaration != nil {
		for _, d := range n.Declaration.Declarators {
			if d == nil || d.Name == nil {
				continue
			}
			for _, prev := range b.table().LookupLocal(b.scope, d.Name.Name) {
				ps := b.table().Symbol(prev)
				if ps == nil || ps.Kind.IsInvocable() {
					continue
				}
				b.table().Remove(b.scope, prev)
				b.warnf(diag.SemaLoopVariableConflict, d.Name.Span(),
					"'%s': loop control variable conflicts with a previous declaration in the outer scope; most recent declaration will be used",
					d.Name.Name).
					WithNote(ps.Span, "see previous declaration of '"+d.Name.Name+"'").
					Emit()
			}
		}
		out.Declaration = bindNode(b, n.Declaration, func(d *syntax.VariableDeclaration) *bound.MultipleVariableDeclarations {
			return b.bindVariables(d, symbols.SymbolVariable)
		})
	}

	loop := b.child(symbols.ScopeFor, n, symbols.NoSymbolID)
	b.shared.recordScope(out, loop.scope)
	if !syntax.IsNil(n.Initializer) {
		out.Initializer = loop.bindExpression(n.Initializer)
	}
	if !syntax.IsNil(n.Condition) {
		out.Condition = loop.bindCondition(n.Condition)
	}
	out.Incrementors = make([]bound.Expression, 0, len(n.Incrementors))
	for _, inc := range n.Incrementors {
		if !syntax.IsNil(inc) {
			out.Incrementors = append(out.Incrementors, loop.bindExpression(inc))
		}
	}
	out.Body = loop.bindStatement(n.Body)
	return out
}

// bindIf binds both branches in b's scope; else opens no scope of its own.
func (b *Binder) bindIf(n *syntax.If) *bound.If {
	out := &bound.If{
		Base:        bound.From(n),
		Condition:   b.bindCondition(n.Condition),
		Consequence: b.bindStatement(n.Statement),
	}
	if n.Else != nil {
		out.Alternative = b.bindStatement(n.Else.Statement)
	}
	return out
}

func (b *Binder) bindReturn(n *syntax.Return) *bound.Return {
	out := &bound.Return{Base: bound.From(n)}
	if !syntax.IsNil(n.Expression) {
		out.Expression = b.bindExpression(n.Expression)
	}

	fn := b.table().Symbol(b.function)
	if fn == nil {
		return out
	}
	ret := fn.Type
	isVoid := false
	if info := b.table().TypeInfo(ret); info != nil && info.Kind == symbols.TypeVoid {
		isVoid = true
	}
	switch {
	case out.Expression == nil && !isVoid && ret != b.errorType():
		b.errorf(diag.SemaReturnTypeMismatch, n.Span(), "'%s': function must return a value", fn.Name).Emit()
	case out.Expression != nil && isVoid:
		if out.Expression.Type() != ret {
			b.errorf(diag.SemaReturnTypeMismatch, n.Span(), "'%s': void function returning a value", fn.Name).Emit()
		}
	case out.Expression != nil:
		b.checkConversion(out.Expression, ret, n.Expression.Span())
	}
	return out
}

// bindSwitch opens one scope shared by every section. Labels of a section
// are bound before its statements.
func (b *Binder) bindSwitch(n *syntax.Switch) *bound.Switch {
	out := &bound.Switch{Base: bound.From(n), Expression: b.bindExpression(n.Expression)}
	if info := b.table().TypeInfo(out.Expression.Type()); !info.IsError() && (info.Kind != symbols.TypeScalar || info.Scalar.Class() == symbols.ClassFloat) {
		b.errorf(diag.SemaCannotConvert, n.Expression.Span(),
			"switch statement expression must be an integral scalar, got '%s'", b.table().TypeName(out.Expression.Type())).Emit()
	}

	inner := b.child(symbols.ScopeSwitch, n, symbols.NoSymbolID)
	b.shared.recordScope(out, inner.scope)
	out.Sections = make([]*bound.SwitchSection, 0, len(n.Sections))
	for _, sec := range n.Sections {
		if sec == nil {
			continue
		}
		out.Sections = append(out.Sections, bindNode(inner, sec, inner.bindSwitchSection))
	}
	return out
}

func (b *Binder) bindSwitchSection(n *syntax.SwitchSection) *bound.SwitchSection {
	out := &bound.SwitchSection{Base: bound.From(n)}
	out.Labels = make([]*bound.SwitchLabel, 0, len(n.Labels))
	for _, l := range n.Labels {
		switch l := l.(type) {
		case *syntax.CaseSwitchLabel:
			out.Labels = append(out.Labels, bindNode(b, l, func(l *syntax.CaseSwitchLabel) *bound.SwitchLabel {
				return &bound.SwitchLabel{Base: bound.From(l), Expression: b.bindExpression(l.Value)}
			}))
		case *syntax.DefaultSwitchLabel:
			out.Labels = append(out.Labels, bindNode(b, l, func(l *syntax.DefaultSwitchLabel) *bound.SwitchLabel {
				return &bound.SwitchLabel{Base: bound.From(l)}
			}))
		}
	}
	out.Statements = b.bindStatements(n.Statements)
	return out
}

// bindCondition binds a branch or loop condition, which must be a scalar.
func (b *Binder) bindCondition(e syntax.Expression) bound.Expression {
	cond := b.bindExpression(e)
	info := b.table().TypeInfo(cond.Type())
	if info.IsError() {
		return cond
	}
	if !info.IsNumeric() || info.Components() > 1 {
		b.errorf(diag.SemaCannotConvert, e.Span(), "cannot convert from '%s' to 'bool'", b.table().TypeName(cond.Type())).Emit()
	}
	return cond
}
