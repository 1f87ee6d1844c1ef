package frontend

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

func (l *lowerer) block(n *sitter.Node) *syntax.Block {
	b := &syntax.Block{Base: syntax.At(l.span(n))}
	for _, c := range named(n) {
		if s := l.stmt(c); s != nil {
			b.Statements = append(b.Statements, s)
		}
	}
	return b
}

func (l *lowerer) empty(n *sitter.Node) *syntax.EmptyStatement {
	return &syntax.EmptyStatement{Base: syntax.At(l.span(n))}
}

func (l *lowerer) stmt(n *sitter.Node) syntax.Statement {
	if n == nil {
		return nil
	}
	sp := syntax.At(l.span(n))
	switch n.Type() {
	case "compound_statement":
		return l.block(n)
	case "declaration":
		if v := l.localDeclaration(n); v != nil {
			return v
		}
		return l.empty(n)
	case "expression_statement":
		inner := named(n)
		if len(inner) == 0 {
			return l.empty(n)
		}
		if inner[0].Type() == "identifier" && l.text(inner[0]) == "discard" {
			return &syntax.Discard{Base: sp}
		}
		return &syntax.ExpressionStatement{Base: sp, Expression: l.expr(inner[0])}
	case "if_statement":
		out := &syntax.If{
			Base:      sp,
			Condition: l.condition(n.ChildByFieldName("condition")),
			Statement: l.stmt(n.ChildByFieldName("consequence")),
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			body := alt
			if alt.Type() == "else_clause" {
				if inner := named(alt); len(inner) > 0 {
					body = inner[0]
				}
			}
			out.Else = &syntax.ElseClause{Base: syntax.At(l.span(alt)), Statement: l.stmt(body)}
		}
		return out
	case "for_statement":
		return l.forStmt(n)
	case "while_statement":
		return &syntax.While{
			Base:      sp,
			Condition: l.condition(n.ChildByFieldName("condition")),
			Body:      l.stmt(n.ChildByFieldName("body")),
		}
	case "do_statement":
		return &syntax.Do{
			Base:      sp,
			Body:      l.stmt(n.ChildByFieldName("body")),
			Condition: l.condition(n.ChildByFieldName("condition")),
		}
	case "return_statement":
		out := &syntax.Return{Base: sp}
		if inner := named(n); len(inner) > 0 {
			out.Expression = l.expr(inner[0])
		}
		return out
	case "break_statement":
		return &syntax.Break{Base: sp}
	case "continue_statement":
		return &syntax.Continue{Base: sp}
	case "switch_statement":
		return l.switchStmt(n)
	case "ERROR":
		return l.empty(n)
	}
	l.unsupported(n, fmt.Sprintf("'%s' statements", n.Type()))
	return l.empty(n)
}

// condition unwraps the parentheses around if, while, do and switch
// conditions.
func (l *lowerer) condition(n *sitter.Node) syntax.Expression {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "condition_clause":
		v := n.ChildByFieldName("value")
		if v == nil {
			if inner := named(n); len(inner) > 0 {
				v = inner[0]
			}
		}
		if v == nil {
			return l.missing(n)
		}
		if v.Type() == "declaration" || n.ChildByFieldName("initializer") != nil {
			l.unsupported(n, "declarations in conditions")
			return l.missing(n)
		}
		return l.expr(v)
	case "parenthesized_expression":
		if inner := named(n); len(inner) == 1 {
			return l.expr(inner[0])
		}
		return l.missing(n)
	}
	return l.expr(n)
}

func (l *lowerer) forStmt(n *sitter.Node) *syntax.For {
	out := &syntax.For{Base: syntax.At(l.span(n)), Body: l.stmt(n.ChildByFieldName("body"))}
	if init := n.ChildByFieldName("initializer"); init != nil {
		if init.Type() == "declaration" {
			out.Declaration = l.localDeclaration(init)
		} else {
			out.Initializer = l.expr(init)
		}
	}
	if cond := n.ChildByFieldName("condition"); cond != nil {
		out.Condition = l.expr(cond)
	}
	for _, upd := range fields(n, "update") {
		out.Incrementors = append(out.Incrementors, l.commaList(upd)...)
	}
	return out
}

// commaList splits "i++, j--" into its operands.
func (l *lowerer) commaList(n *sitter.Node) []syntax.Expression {
	if n.Type() != "comma_expression" {
		return []syntax.Expression{l.expr(n)}
	}
	return append(l.commaList(n.ChildByFieldName("left")), l.commaList(n.ChildByFieldName("right"))...)
}

// switchStmt groups case_statement nodes into sections. Consecutive labels
// without statements share the section of the next label.
func (l *lowerer) switchStmt(n *sitter.Node) *syntax.Switch {
	out := &syntax.Switch{Base: syntax.At(l.span(n)), Expression: l.condition(n.ChildByFieldName("condition"))}
	var cur *syntax.SwitchSection
	for _, c := range named(n.ChildByFieldName("body")) {
		if c.Type() != "case_statement" {
			if c.Type() != "ERROR" {
				l.unsupported(c, "statements outside case labels")
			}
			continue
		}
		value := c.ChildByFieldName("value")
		var label syntax.SwitchLabel
		if value != nil {
			label = &syntax.CaseSwitchLabel{
				Base:  syntax.At(source.Span{File: l.file.ID, Start: c.StartByte(), End: value.EndByte()}),
				Value: l.expr(value),
			}
		} else {
			label = &syntax.DefaultSwitchLabel{
				Base: syntax.At(source.Span{File: l.file.ID, Start: c.StartByte(), End: c.StartByte() + uint32(len("default"))}),
			}
		}

		if cur == nil || len(cur.Statements) > 0 {
			cur = &syntax.SwitchSection{Base: syntax.At(l.span(c))}
			out.Sections = append(out.Sections, cur)
		}
		cur.Labels = append(cur.Labels, label)
		cur.Base = syntax.At(cur.Span().Cover(l.span(c)))
		for _, s := range named(c) {
			if value != nil && s.StartByte() == value.StartByte() && s.EndByte() == value.EndByte() {
				continue
			}
			if st := l.stmt(s); st != nil {
				cur.Statements = append(cur.Statements, st)
			}
		}
	}
	return out
}
