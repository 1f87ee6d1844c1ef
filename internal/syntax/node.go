package syntax

import (
	"reflect"

	"hlsltools/internal/source"
)

// Node is implemented by every syntax node. The set of implementations is
// closed; switch on Kind() to dispatch.
type Node interface {
	Kind() Kind
	Span() source.Span
	Parent() Node
	// Children returns the direct child nodes in source order.
	Children() []Node
	base() *Base
}

// Statement is a node that may appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that produces a value. Type syntax also implements
// Expression because HLSL constructor and cast forms use types in
// expression position.
type Expression interface {
	Node
	expressionNode()
}

// Type is a node naming a type.
type Type interface {
	Expression
	typeNode()
}

// Declaration is a node allowed at namespace or compilation-unit level.
type Declaration interface {
	Node
	declarationNode()
}

// Base carries the span and parent link shared by all nodes.
type Base struct {
	span   source.Span
	parent Node
}

// At builds a Base for a node covering sp.
func At(sp source.Span) Base {
	return Base{span: sp}
}

func (b *Base) Span() source.Span { return b.span }
func (b *Base) Parent() Node      { return b.parent }
func (b *Base) base() *Base       { return b }

// ParameterModifier is the direction keyword written on a parameter.
type ParameterModifier uint8

const (
	ModifierNone ParameterModifier = iota
	ModifierIn
	ModifierOut
	ModifierInOut
	ModifierUniform
)

func (m ParameterModifier) String() string {
	switch m {
	case ModifierIn:
		return "in"
	case ModifierOut:
		return "out"
	case ModifierInOut:
		return "inout"
	case ModifierUniform:
		return "uniform"
	}
	return ""
}

// ParseModifier maps a keyword to its modifier.
func ParseModifier(word string) (ParameterModifier, bool) {
	switch word {
	case "in":
		return ModifierIn, true
	case "out":
		return ModifierOut, true
	case "inout":
		return ModifierInOut, true
	case "uniform":
		return ModifierUniform, true
	}
	return ModifierNone, false
}

// appendNonNil appends nodes skipping typed nils.
func appendNonNil(out []Node, nodes ...Node) []Node {
	for _, n := range nodes {
		if isNil(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IsNil reports whether n is absent, including typed nil pointers stored in
// an interface.
func IsNil(n Node) bool { return isNil(n) }
