// Package binder turns a syntax tree into the bound tree.
//
// A Binder is tied to one lexical scope. Nested constructs (blocks, for and
// switch statements, function bodies, type bodies, namespaces) get their own
// Binder whose scope is a child of the parent's; name lookup walks the scope
// parent chain in the symbol table. All binders of one pass write into the
// same SharedState.
package binder

import (
	"context"
	"fmt"

	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
	"hlsltools/internal/trace"
)

// Binder binds syntax within one scope.
type Binder struct {
	shared *SharedState
	scope  symbols.ScopeID
	// function is the function whose body is being bound, for return checks.
	function symbols.SymbolID
	// owner becomes the Parent of declared symbols.
	owner symbols.SymbolID
}

// Bind binds root into table and returns the bound compilation unit with the
// state that produced it. Binding always runs to completion; problems in the
// source end up in bag.
func Bind(ctx context.Context, root *syntax.CompilationUnit, table *symbols.Table, bag *diag.Bag) (*bound.CompilationUnit, *SharedState) {
	shared := NewSharedState(table, bag)
	_, span := trace.Start(ctx, trace.ScopePass, "bind")
	shared.span = span

	b := &Binder{shared: shared, scope: table.Root}
	unit := b.bindCompilationUnit(root)

	span.Set("syntax_nodes", len(shared.BoundFromSyntax)).
		Set("diagnostics", shared.Diagnostics.Len()).
		End()
	return unit, shared
}

// New returns a binder over scope that writes into shared.
func New(shared *SharedState, scope symbols.ScopeID) *Binder {
	return &Binder{shared: shared, scope: scope}
}

// Scope is the scope this binder declares into.
func (b *Binder) Scope() symbols.ScopeID { return b.scope }

func (b *Binder) table() *symbols.Table { return b.shared.Table }

func (b *Binder) builtins() *symbols.Builtins { return b.shared.Table.Builtins() }

func (b *Binder) errorType() symbols.SymbolID { return b.builtins().Error }

// child opens a nested scope of kind for node and returns its binder.
func (b *Binder) child(kind symbols.ScopeKind, node syntax.Node, owner symbols.SymbolID) *Binder {
	var sp source.Span
	if !syntax.IsNil(node) {
		sp = node.Span()
	}
	scope := b.table().NewScope(kind, b.scope, owner, node, sp)
	return b.within(scope)
}

// within returns a binder over an existing scope, keeping function and
// owner context.
func (b *Binder) within(scope symbols.ScopeID) *Binder {
	return &Binder{
		shared:   b.shared,
		scope:    scope,
		function: b.function,
		owner:    b.owner,
	}
}

// bindNode runs fn and records the result against syn.
func bindNode[S syntax.Node, B bound.Node](b *Binder, syn S, fn func(S) B) B {
	out := fn(syn)
	b.shared.record(syn, out)
	return out
}

func (b *Binder) errorf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportError(b.shared.reporter, code, sp, fmt.Sprintf(format, args...))
}

func (b *Binder) warnf(code diag.Code, sp source.Span, format string, args ...any) *diag.ReportBuilder {
	return diag.ReportWarning(b.shared.reporter, code, sp, fmt.Sprintf(format, args...))
}

func spanOf(n syntax.Node) source.Span {
	if syntax.IsNil(n) {
		return source.Span{}
	}
	return n.Span()
}

// declare adds id to the binder's scope after reporting a clash with a
// non-function symbol of the same name. Both symbols stay in the scope.
func (b *Binder) declare(id symbols.SymbolID, sp source.Span) {
	sym := b.table().Symbol(id)
	name := sym.Name
	if name != "" {
		for _, prev := range b.table().LookupLocal(b.scope, name) {
			ps := b.table().Symbol(prev)
			if ps == nil || ps.Kind.IsInvocable() {
				continue
			}
			b.errorf(diag.SemaRedefinition, sp, "redefinition of '%s'", name).
				WithNote(ps.Span, "see previous definition of '"+name+"'").
				Emit()
			break
		}
	}
	b.table().Declare(b.scope, id)
}
