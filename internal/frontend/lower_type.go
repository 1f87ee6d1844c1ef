package frontend

import (
	"fmt"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"

	"hlsltools/internal/syntax"
)

// typ lowers a type specifier. It returns nil after reporting when the
// construct has no HLSL counterpart.
func (l *lowerer) typ(n *sitter.Node) syntax.Type {
	switch n.Type() {
	case "primitive_type":
		return &syntax.PredefinedType{Base: syntax.At(l.span(n)), Name: l.text(n)}
	case "sized_type_specifier":
		name := l.text(n)
		switch name {
		case "unsigned", "unsigned int":
			name = "uint"
		}
		return &syntax.PredefinedType{Base: syntax.At(l.span(n)), Name: name}
	case "type_identifier", "identifier":
		name := l.text(n)
		if isIntrinsicType(name) {
			return &syntax.PredefinedType{Base: syntax.At(l.span(n)), Name: name}
		}
		return &syntax.IdentifierName{Base: syntax.At(l.span(n)), Name: name}
	case "template_type", "template_function":
		return l.templateType(n)
	case "qualified_identifier":
		if q, ok := l.qualified(n).(syntax.Type); ok {
			return q
		}
		return nil
	case "struct_specifier", "class_specifier":
		name := n.ChildByFieldName("name")
		if name == nil {
			l.unsupported(n, "anonymous struct types")
			return nil
		}
		return &syntax.IdentifierName{Base: syntax.At(l.span(name)), Name: l.text(name)}
	case "type_descriptor":
		if d := n.ChildByFieldName("declarator"); d != nil {
			l.unsupported(d, "abstract declarators")
		}
		if t := n.ChildByFieldName("type"); t != nil {
			return l.typ(t)
		}
	case "ERROR":
		return nil
	}
	l.unsupported(n, fmt.Sprintf("'%s' types", n.Type()))
	return nil
}

// templateType lowers Name<args>: vector<T, N> and matrix<T, R, C> become
// generic numeric types, anything else an object type with one argument
// such as Texture2D<float4>.
func (l *lowerer) templateType(n *sitter.Node) syntax.Type {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		l.unsupported(n, "unnamed template types")
		return nil
	}
	name := l.text(nameNode)
	args := named(n.ChildByFieldName("arguments"))
	sp := syntax.At(l.span(n))

	switch name {
	case "vector":
		if len(args) != 2 {
			l.unsupported(n, "vector types without an element type and size")
			return nil
		}
		size, ok := l.dimension(args[1])
		if !ok {
			return nil
		}
		return &syntax.GenericVectorType{Base: sp, Element: l.element(args[0]), Size: size}
	case "matrix":
		if len(args) != 3 {
			l.unsupported(n, "matrix types without an element type and dimensions")
			return nil
		}
		rows, ok := l.dimension(args[1])
		if !ok {
			return nil
		}
		cols, ok := l.dimension(args[2])
		if !ok {
			return nil
		}
		return &syntax.GenericMatrixType{Base: sp, Element: l.element(args[0]), Rows: rows, Cols: cols}
	}

	out := &syntax.PredefinedType{Base: sp, Name: name}
	switch {
	case len(args) == 1 && args[0].Type() == "type_descriptor":
		out.Argument = l.typ(args[0])
	case len(args) > 0:
		l.unsupported(n, "template arguments other than a single type")
	}
	return out
}

func (l *lowerer) element(n *sitter.Node) *syntax.PredefinedType {
	t := l.typ(n)
	if p, ok := t.(*syntax.PredefinedType); ok {
		return p
	}
	if t != nil {
		l.unsupported(n, "non-scalar element types")
	}
	return nil
}

func (l *lowerer) dimension(n *sitter.Node) (int, bool) {
	if n.Type() == "number_literal" {
		if v, err := strconv.Atoi(l.text(n)); err == nil {
			return v, true
		}
	}
	l.unsupported(n, "dimensions other than integer literals")
	return 0, false
}

// qualified folds the right-nested C++ form a::(b::c) into the left-nested
// QualifiedName chain ((a::b)::c).
func (l *lowerer) qualified(n *sitter.Node) syntax.Expression {
	var parts []*sitter.Node
	for cur := n; cur != nil; {
		if cur.Type() != "qualified_identifier" {
			parts = append(parts, cur)
			break
		}
		if scope := cur.ChildByFieldName("scope"); scope != nil {
			parts = append(parts, scope)
		}
		cur = cur.ChildByFieldName("name")
	}
	if len(parts) == 0 {
		return &syntax.Missing{Base: syntax.At(l.span(n))}
	}
	var left syntax.Expression = l.ident(parts[0])
	for _, p := range parts[1:] {
		right := l.ident(p)
		left = &syntax.QualifiedName{Base: syntax.At(left.Span().Cover(right.Span())), Left: left, Right: right}
	}
	return left
}

func (l *lowerer) ident(n *sitter.Node) *syntax.IdentifierName {
	return &syntax.IdentifierName{Base: syntax.At(l.span(n)), Name: l.text(n)}
}
