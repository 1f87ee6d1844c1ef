package binder

import (
	"strings"

	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
	"hlsltools/internal/trace"
)

// SharedState is the ledger every nested binder of one compilation writes
// to. It is owned by a single binding pass and must not be shared between
// compilations.
type SharedState struct {
	Table *symbols.Table

	// BoundFromSyntax maps every visited syntax node to the node bound from it.
	BoundFromSyntax map[syntax.Node]bound.Node
	// ScopeFromBound maps scope-introducing bound nodes to their scope.
	ScopeFromBound map[bound.Node]symbols.ScopeID

	// Diagnostics collects reports in emission order.
	Diagnostics *diag.Bag

	reporter      diag.Reporter
	span          *trace.Span
	userSemantics map[string]symbols.SymbolID
}

// NewSharedState prepares the ledger for one binding pass. A nil bag gets
// an unbounded one.
func NewSharedState(table *symbols.Table, bag *diag.Bag) *SharedState {
	if bag == nil {
		bag = diag.NewBag(0)
	}
	return &SharedState{
		Table:           table,
		BoundFromSyntax: make(map[syntax.Node]bound.Node),
		ScopeFromBound:  make(map[bound.Node]symbols.ScopeID),
		Diagnostics:     bag,
		reporter:        diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
		userSemantics:   make(map[string]symbols.SymbolID),
	}
}

// record stores the syntax→bound link. A syntax node is bound once; a
// second record for the same node is a binder bug.
func (s *SharedState) record(syn syntax.Node, n bound.Node) {
	if syntax.IsNil(syn) || bound.IsNil(n) {
		return
	}
	if prev, ok := s.BoundFromSyntax[syn]; ok && prev != n {
		panic("binder: syntax node " + syn.Kind().String() + " bound twice")
	}
	s.BoundFromSyntax[syn] = n
}

func (s *SharedState) recordScope(n bound.Node, scope symbols.ScopeID) {
	s.ScopeFromBound[n] = scope
}

func (s *SharedState) point(name, detail string) {
	s.span.Point(trace.ScopeNode, name, detail)
}

// userSemantic returns the shared symbol for a semantic the intrinsic
// catalog does not know. Names compare case-insensitively.
func (s *SharedState) userSemantic(name string, sp source.Span) symbols.SymbolID {
	key := strings.ToUpper(name)
	if id, ok := s.userSemantics[key]; ok {
		return id
	}
	id := s.Table.NewSymbol(&symbols.Symbol{
		Kind: symbols.SymbolSemantic,
		Name: name,
		Span: sp,
	})
	s.userSemantics[key] = id
	return id
}
