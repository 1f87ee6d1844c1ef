package frontend

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"hlsltools/internal/syntax"
	"hlsltools/internal/token"
)

func (l *lowerer) missing(n *sitter.Node) *syntax.Missing {
	return &syntax.Missing{Base: syntax.At(l.span(n))}
}

// expr lowers an expression node. Unsupported forms are reported and
// replaced by Missing so that binding can continue.
func (l *lowerer) expr(n *sitter.Node) syntax.Expression {
	if n == nil {
		return nil
	}
	if n.IsMissing() {
		return l.missing(n)
	}
	sp := syntax.At(l.span(n))
	switch n.Type() {
	case "identifier":
		return l.ident(n)
	case "qualified_identifier":
		return l.qualified(n)
	case "number_literal":
		return literalOf(token.IntLit, l.text(n), l.span(n))
	case "true":
		return literalOf(token.KwTrue, l.text(n), l.span(n))
	case "false":
		return literalOf(token.KwFalse, l.text(n), l.span(n))
	case "string_literal", "concatenated_string":
		return literalOf(token.StringLit, l.text(n), l.span(n))

	case "binary_expression":
		op := syntax.BinaryOperator(l.text(n.ChildByFieldName("operator")))
		if op == syntax.OpInvalid {
			l.unsupported(n, fmt.Sprintf("'%s' operators", l.text(n.ChildByFieldName("operator"))))
			return l.missing(n)
		}
		return &syntax.Binary{Base: sp, Op: op, Left: l.expr(n.ChildByFieldName("left")), Right: l.expr(n.ChildByFieldName("right"))}
	case "assignment_expression":
		op := syntax.AssignmentOperator(l.text(n.ChildByFieldName("operator")))
		if op == syntax.OpInvalid {
			l.unsupported(n, fmt.Sprintf("'%s' assignments", l.text(n.ChildByFieldName("operator"))))
			return l.missing(n)
		}
		return &syntax.Assignment{Base: sp, Op: op, Left: l.expr(n.ChildByFieldName("left")), Right: l.expr(n.ChildByFieldName("right"))}
	case "update_expression":
		opNode, arg := n.ChildByFieldName("operator"), n.ChildByFieldName("argument")
		op := syntax.UnaryOperator(l.text(opNode))
		if opNode.StartByte() < arg.StartByte() {
			return &syntax.PrefixUnary{Base: sp, Op: op, Operand: l.expr(arg)}
		}
		return &syntax.PostfixUnary{Base: sp, Op: op, Operand: l.expr(arg)}
	case "unary_expression":
		op := syntax.UnaryOperator(l.text(n.ChildByFieldName("operator")))
		if op == syntax.OpInvalid {
			l.unsupported(n, fmt.Sprintf("'%s' operators", l.text(n.ChildByFieldName("operator"))))
			return l.missing(n)
		}
		return &syntax.PrefixUnary{Base: sp, Op: op, Operand: l.expr(n.ChildByFieldName("argument"))}

	case "call_expression":
		return l.call(n)
	case "field_expression":
		if op := n.ChildByFieldName("operator"); op != nil && l.text(op) != "." {
			l.unsupported(n, "pointer member accesses")
			return l.missing(n)
		}
		return &syntax.FieldAccess{Base: sp, Target: l.expr(n.ChildByFieldName("argument")), Name: l.ident(n.ChildByFieldName("field"))}
	case "subscript_expression":
		return l.subscript(n)
	case "conditional_expression":
		return &syntax.Conditional{
			Base:      sp,
			Condition: l.expr(n.ChildByFieldName("condition")),
			WhenTrue:  l.expr(n.ChildByFieldName("consequence")),
			WhenFalse: l.expr(n.ChildByFieldName("alternative")),
		}
	case "comma_expression":
		return &syntax.Compound{Base: sp, Left: l.expr(n.ChildByFieldName("left")), Right: l.expr(n.ChildByFieldName("right"))}
	case "parenthesized_expression":
		inner := named(n)
		if len(inner) != 1 {
			return l.missing(n)
		}
		return &syntax.Parenthesized{Base: sp, Expression: l.expr(inner[0])}
	case "cast_expression":
		t := l.typ(n.ChildByFieldName("type"))
		if t == nil {
			return l.missing(n)
		}
		return &syntax.Cast{Base: sp, Type: t, Expression: l.expr(n.ChildByFieldName("value"))}
	case "initializer_list":
		list := &syntax.InitializerList{Base: sp}
		for _, c := range named(n) {
			list.Elements = append(list.Elements, l.expr(c))
		}
		return list

	case "primitive_type", "type_identifier", "template_type", "sized_type_specifier":
		if t := l.typ(n); t != nil {
			return t
		}
		return l.missing(n)
	case "ERROR":
		return l.missing(n)
	}
	l.unsupported(n, fmt.Sprintf("'%s' expressions", n.Type()))
	return l.missing(n)
}

func (l *lowerer) arguments(n *sitter.Node) []syntax.Expression {
	var out []syntax.Expression
	for _, c := range named(n) {
		out = append(out, l.expr(c))
	}
	return out
}

// call distinguishes method calls, constructor calls of built-in types and
// plain function calls by the shape of the callee.
func (l *lowerer) call(n *sitter.Node) syntax.Expression {
	sp := syntax.At(l.span(n))
	fn := n.ChildByFieldName("function")
	args := l.arguments(n.ChildByFieldName("arguments"))
	switch fn.Type() {
	case "field_expression":
		return &syntax.MethodInvocation{
			Base:      sp,
			Target:    l.expr(fn.ChildByFieldName("argument")),
			Name:      l.ident(fn.ChildByFieldName("field")),
			Arguments: args,
		}
	case "identifier":
		if isIntrinsicType(l.text(fn)) {
			return &syntax.NumericConstructor{Base: sp, Type: l.typ(fn), Arguments: args}
		}
		return &syntax.Invocation{Base: sp, Target: l.ident(fn), Arguments: args}
	case "qualified_identifier":
		return &syntax.Invocation{Base: sp, Target: l.qualified(fn), Arguments: args}
	case "primitive_type", "type_identifier", "template_type", "template_function", "sized_type_specifier":
		t := l.typ(fn)
		if t == nil {
			return l.missing(n)
		}
		return &syntax.NumericConstructor{Base: sp, Type: t, Arguments: args}
	case "ERROR":
		return l.missing(n)
	}
	l.unsupported(fn, fmt.Sprintf("'%s' callees", fn.Type()))
	return l.missing(n)
}

func (l *lowerer) subscript(n *sitter.Node) syntax.Expression {
	sp := syntax.At(l.span(n))
	target := l.expr(n.ChildByFieldName("argument"))
	var indices []*sitter.Node
	if idx := n.ChildByFieldName("index"); idx != nil {
		indices = append(indices, idx)
	} else {
		indices = named(n.ChildByFieldName("indices"))
	}
	if len(indices) != 1 {
		l.unsupported(n, "multi-dimensional subscripts")
		return l.missing(n)
	}
	return &syntax.ElementAccess{Base: sp, Target: target, Index: l.expr(indices[0])}
}
