// Package bound is the typed tree the binder produces. Every node owns its
// children exclusively and remembers the syntax node it was bound from.
package bound

import (
	"reflect"

	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// Node is implemented by every bound node; the set is closed.
type Node interface {
	Kind() Kind
	Syntax() syntax.Node
	Children() []Node
	boundNode()
}

type Statement interface {
	Node
	statementNode()
}

// Expression is a bound node with a resolved type. Type never returns
// NoSymbolID; failures carry the error type.
type Expression interface {
	Node
	Type() symbols.SymbolID
	expressionNode()
}

// Base records the originating syntax node.
type Base struct {
	syntax syntax.Node
}

// From builds a Base for a node bound from syn.
func From(syn syntax.Node) Base { return Base{syntax: syn} }

func (b *Base) Syntax() syntax.Node { return b.syntax }
func (*Base) boundNode()            {}

// ExprBase is Base plus the resolved type.
type ExprBase struct {
	Base
	typ symbols.SymbolID
}

// Typed builds an ExprBase of type typ.
func Typed(syn syntax.Node, typ symbols.SymbolID) ExprBase {
	return ExprBase{Base: From(syn), typ: typ}
}

func (e *ExprBase) Type() symbols.SymbolID { return e.typ }
func (*ExprBase) expressionNode()          {}

func appendNonNil(out []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if IsNil(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// IsNil reports whether n is absent, including typed nil pointers.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Walk visits n and its descendants depth-first. If f returns false the
// children of that node are skipped.
func Walk(n Node, f func(Node) bool) {
	if IsNil(n) || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, f)
	}
}
