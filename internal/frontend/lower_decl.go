package frontend

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"hlsltools/internal/diag"
	"hlsltools/internal/syntax"
)

func (l *lowerer) declarations(list *sitter.Node) []syntax.Declaration {
	var out []syntax.Declaration
	for _, c := range named(list) {
		out = append(out, l.topLevel(c)...)
	}
	return out
}

func (l *lowerer) topLevel(n *sitter.Node) []syntax.Declaration {
	switch n.Type() {
	case "function_definition":
		if fn := l.functionDefinition(n); fn != nil {
			return []syntax.Declaration{fn}
		}
		return nil
	case "declaration":
		return l.declaration(n)
	case "struct_specifier", "class_specifier":
		if n.ChildByFieldName("body") == nil {
			l.unsupported(n, "forward type declarations")
			return nil
		}
		return []syntax.Declaration{l.aggregate(n)}
	case "namespace_definition":
		return []syntax.Declaration{l.namespace(n)}
	case "expression_statement":
		if len(named(n)) == 0 {
			return nil
		}
		l.unsupported(n, "statements outside functions")
		return nil
	case "ERROR":
		return nil
	case "type_definition":
		l.unsupported(n, "typedefs")
		return nil
	case "template_declaration":
		l.unsupported(n, "templates")
		return nil
	}
	l.unsupported(n, fmt.Sprintf("'%s' declarations", n.Type()))
	return nil
}

func (l *lowerer) namespace(n *sitter.Node) *syntax.Namespace {
	ns := &syntax.Namespace{Base: syntax.At(l.span(n))}
	if name := n.ChildByFieldName("name"); name != nil {
		ns.Name = l.declName(name)
	}
	ns.Declarations = l.declarations(n.ChildByFieldName("body"))
	return ns
}

func (l *lowerer) declName(n *sitter.Node) *syntax.IdentifierDeclarationName {
	return &syntax.IdentifierDeclarationName{Base: syntax.At(l.span(n)), Name: l.text(n)}
}

// declaration lowers a C++ simple declaration: prototypes, globals, and
// "struct S { ... } s;" which yields the struct followed by the variable.
func (l *lowerer) declaration(n *sitter.Node) []syntax.Declaration {
	var out []syntax.Declaration
	typeNode := n.ChildByFieldName("type")
	if typeNode != nil && (typeNode.Type() == "struct_specifier" || typeNode.Type() == "class_specifier") &&
		typeNode.ChildByFieldName("body") != nil {
		out = append(out, l.aggregate(typeNode))
	}

	var vars []*sitter.Node
	for _, d := range fields(n, "declarator") {
		if d.Type() == "function_declarator" {
			if fn := l.functionDeclaration(n, d); fn != nil {
				out = append(out, fn)
			}
			continue
		}
		vars = append(vars, d)
	}
	if len(vars) > 0 {
		out = append(out, l.variables(n, vars))
	}
	return out
}

// variables lowers the declarators of one declaration. Modifiers are the
// C++ specifiers plus the masked HLSL ones in front of the type.
func (l *lowerer) variables(n *sitter.Node, declarators []*sitter.Node) *syntax.VariableDeclaration {
	typeNode := n.ChildByFieldName("type")
	v := &syntax.VariableDeclaration{Base: syntax.At(l.span(n))}
	v.Modifiers = append(v.Modifiers, l.m.modifiersBefore(n.StartByte())...)
	if typeNode != nil {
		v.Modifiers = append(v.Modifiers, l.m.modifiersWithin(n.StartByte(), typeNode.StartByte())...)
		v.Type = l.typ(typeNode)
	}
	v.Modifiers = append(v.Modifiers, l.specifiers(n)...)
	for _, d := range declarators {
		if vd := l.declarator(d); vd != nil {
			v.Declarators = append(v.Declarators, vd)
		}
	}
	return v
}

// localDeclaration lowers a declaration in statement position, where only
// variables are allowed.
func (l *lowerer) localDeclaration(n *sitter.Node) *syntax.VariableDeclaration {
	var vars []*sitter.Node
	for _, d := range fields(n, "declarator") {
		if d.Type() == "function_declarator" {
			l.unsupported(d, "local function declarations")
			continue
		}
		vars = append(vars, d)
	}
	if typeNode := n.ChildByFieldName("type"); typeNode != nil && typeNode.ChildByFieldName("body") != nil {
		l.unsupported(typeNode, "local type definitions")
	}
	if len(vars) == 0 {
		return nil
	}
	return l.variables(n, vars)
}

// declarator lowers "name", "name[2][3]", "name = value" and their field
// forms. The semantic follows the name and its array sizes.
func (l *lowerer) declarator(n *sitter.Node) *syntax.VariableDeclarator {
	vd := &syntax.VariableDeclarator{Base: syntax.At(l.span(n))}
	inner := n
	if n.Type() == "init_declarator" {
		inner = n.ChildByFieldName("declarator")
		vd.Initializer = l.initializer(n.ChildByFieldName("value"))
	}
	if inner == nil {
		return nil
	}
	leaf := inner
	var sizes []syntax.Expression
	for leaf.Type() == "array_declarator" {
		var size syntax.Expression
		if s := leaf.ChildByFieldName("size"); s != nil {
			size = l.expr(s)
		}
		sizes = append(sizes, size)
		leaf = leaf.ChildByFieldName("declarator")
	}
	for i, j := 0, len(sizes)-1; i < j; i, j = i+1, j-1 {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	}
	vd.ArraySizes = sizes

	switch leaf.Type() {
	case "identifier", "field_identifier":
		vd.Name = l.declName(leaf)
	case "ERROR":
		return nil
	default:
		l.unsupported(leaf, fmt.Sprintf("'%s' declarators", leaf.Type()))
		return nil
	}
	if sem := l.m.semanticAfter(inner.EndByte()); sem != nil {
		vd.Semantic = sem
		if n.Type() != "init_declarator" {
			vd.Base = syntax.At(l.span(n).Cover(sem.Span()))
		}
	}
	return vd
}

func (l *lowerer) initializer(n *sitter.Node) syntax.Expression {
	if n == nil {
		return nil
	}
	if n.Type() == "argument_list" {
		l.unsupported(n, "constructor-style initializers")
		return &syntax.Missing{Base: syntax.At(l.span(n))}
	}
	return l.expr(n)
}

func (l *lowerer) functionDeclaration(decl, fd *sitter.Node) *syntax.FunctionDeclaration {
	name := l.functionName(fd.ChildByFieldName("declarator"))
	if name == nil {
		return nil
	}
	out := &syntax.FunctionDeclaration{
		Base:       syntax.At(l.span(decl)),
		Name:       name,
		Parameters: l.parameters(fd.ChildByFieldName("parameters")),
		Semantic:   l.m.semanticAfter(fd.EndByte()),
	}
	if t := decl.ChildByFieldName("type"); t != nil {
		out.ReturnType = l.typ(t)
	}
	return out
}

func (l *lowerer) functionDefinition(n *sitter.Node) *syntax.FunctionDefinition {
	fd := n.ChildByFieldName("declarator")
	if fd == nil || fd.Type() != "function_declarator" {
		if fd != nil {
			l.unsupported(fd, fmt.Sprintf("'%s' function declarators", fd.Type()))
		}
		return nil
	}
	name := l.functionName(fd.ChildByFieldName("declarator"))
	if name == nil {
		return nil
	}
	out := &syntax.FunctionDefinition{
		Base:       syntax.At(l.span(n)),
		Name:       name,
		Parameters: l.parameters(fd.ChildByFieldName("parameters")),
		Semantic:   l.m.semanticAfter(fd.EndByte()),
	}
	if t := n.ChildByFieldName("type"); t != nil {
		out.ReturnType = l.typ(t)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		out.Body = l.block(body)
	}
	return out
}

func (l *lowerer) functionName(n *sitter.Node) syntax.Expression {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "field_identifier":
		return &syntax.IdentifierName{Base: syntax.At(l.span(n)), Name: l.text(n)}
	case "qualified_identifier":
		return l.qualified(n)
	}
	l.unsupported(n, fmt.Sprintf("'%s' function names", n.Type()))
	return nil
}

func (l *lowerer) parameters(list *sitter.Node) []*syntax.Parameter {
	params := named(list)
	if len(params) == 1 && params[0].ChildByFieldName("declarator") == nil {
		if t := params[0].ChildByFieldName("type"); t != nil && l.text(t) == "void" {
			return nil
		}
	}
	var out []*syntax.Parameter
	for _, p := range params {
		switch p.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
			out = append(out, l.parameter(p))
		case "ERROR":
		default:
			l.unsupported(p, fmt.Sprintf("'%s' parameters", p.Type()))
		}
	}
	return out
}

func (l *lowerer) parameter(n *sitter.Node) *syntax.Parameter {
	p := &syntax.Parameter{Base: syntax.At(l.span(n))}
	typeNode := n.ChildByFieldName("type")
	words := l.m.modifiersBefore(n.StartByte())
	if typeNode != nil {
		words = append(words, l.m.modifiersWithin(n.StartByte(), typeNode.StartByte())...)
		p.Type = l.typ(typeNode)
	}
	p.Modifier = l.direction(n, words)

	if d := n.ChildByFieldName("declarator"); d != nil {
		p.Declarator = l.declarator(d)
	}
	if def := n.ChildByFieldName("default_value"); def != nil && p.Declarator != nil {
		p.Declarator.Initializer = l.expr(def)
	}
	if p.Declarator != nil && p.Declarator.Semantic != nil {
		p.Base = syntax.At(p.Span().Cover(p.Declarator.Semantic.Span()))
	}
	return p
}

// direction folds the parameter keywords into one modifier; "in out" is
// inout.
func (l *lowerer) direction(n *sitter.Node, words []string) syntax.ParameterModifier {
	dir := syntax.ModifierNone
	for _, w := range words {
		m, ok := syntax.ParseModifier(w)
		if !ok {
			continue
		}
		switch {
		case dir == syntax.ModifierNone || dir == m:
			dir = m
		case (dir == syntax.ModifierIn && m == syntax.ModifierOut) || (dir == syntax.ModifierOut && m == syntax.ModifierIn):
			dir = syntax.ModifierInOut
		case dir == syntax.ModifierInOut && (m == syntax.ModifierIn || m == syntax.ModifierOut):
		default:
			l.report(diag.SynUnknownDirection, l.span(n), fmt.Sprintf("conflicting parameter modifiers '%s' and '%s'", dir, m))
		}
	}
	return dir
}

// aggregate lowers a struct or class body. A struct with methods becomes a
// class.
func (l *lowerer) aggregate(n *sitter.Node) syntax.Declaration {
	var (
		fieldDecls []*syntax.VariableDeclaration
		methods    []syntax.Declaration
	)
	for _, c := range named(n.ChildByFieldName("body")) {
		switch c.Type() {
		case "field_declaration", "declaration":
			var vars []*sitter.Node
			for _, d := range fields(c, "declarator") {
				if d.Type() == "function_declarator" {
					if fn := l.functionDeclaration(c, d); fn != nil {
						methods = append(methods, fn)
					}
					continue
				}
				vars = append(vars, d)
			}
			if len(vars) > 0 {
				fieldDecls = append(fieldDecls, l.variables(c, vars))
			}
		case "function_definition":
			if fn := l.functionDefinition(c); fn != nil {
				methods = append(methods, fn)
			}
		case "access_specifier", "ERROR":
		default:
			l.unsupported(c, fmt.Sprintf("'%s' members", c.Type()))
		}
	}

	var name *syntax.IdentifierDeclarationName
	if nn := n.ChildByFieldName("name"); nn != nil {
		name = l.declName(nn)
	}
	if n.Type() == "class_specifier" || len(methods) > 0 {
		return &syntax.ClassType{Base: syntax.At(l.span(n)), Name: name, Fields: fieldDecls, Methods: methods}
	}
	return &syntax.StructType{Base: syntax.At(l.span(n)), Name: name, Fields: fieldDecls}
}
