// Package testkit holds helpers shared by package tests: a syntax tree
// builder that hands out distinct spans, and structural checks over bound
// trees.
package testkit

import (
	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

// Builder assembles syntax trees without a parser. Every leaf gets a fresh
// span after the previous one; composite nodes cover their children plus a
// token of their own, so spans nest the way parsed ones do.
type Builder struct {
	File source.FileID
	pos  uint32
}

func NewBuilder() *Builder { return &Builder{File: 1} }

func (b *Builder) tok(text string) source.Span {
	n := uint32(len(text)) //nolint:gosec // test input
	if n == 0 {
		n = 1
	}
	sp := source.Span{File: b.File, Start: b.pos, End: b.pos + n}
	b.pos += n + 1
	return sp
}

func (b *Builder) cover(own string, nodes ...syntax.Node) syntax.Base {
	sp := b.tok(own)
	for _, n := range nodes {
		if syntax.IsNil(n) {
			continue
		}
		sp = sp.Cover(n.Span())
	}
	return syntax.At(sp)
}

func exprNodes(es []syntax.Expression) []syntax.Node {
	out := make([]syntax.Node, 0, len(es))
	for _, e := range es {
		out = append(out, e)
	}
	return out
}

func (b *Builder) Ident(name string) *syntax.IdentifierName {
	return &syntax.IdentifierName{Base: syntax.At(b.tok(name)), Name: name}
}

// Qualified builds "a::b::c".
func (b *Builder) Qualified(parts ...string) syntax.Expression {
	var left syntax.Expression = b.Ident(parts[0])
	for _, p := range parts[1:] {
		right := b.Ident(p)
		left = &syntax.QualifiedName{Base: b.cover("::", left, right), Left: left, Right: right}
	}
	return left
}

func (b *Builder) DeclName(name string) *syntax.IdentifierDeclarationName {
	return &syntax.IdentifierDeclarationName{Base: syntax.At(b.tok(name)), Name: name}
}

// Type builds a predefined type such as "float4" or "Texture2D".
func (b *Builder) Type(name string) *syntax.PredefinedType {
	return &syntax.PredefinedType{Base: syntax.At(b.tok(name)), Name: name}
}

func (b *Builder) VectorOf(elem string, n int) *syntax.GenericVectorType {
	el := b.Type(elem)
	return &syntax.GenericVectorType{Base: b.cover("vector", el), Element: el, Size: n}
}

func (b *Builder) MatrixOf(elem string, rows, cols int) *syntax.GenericMatrixType {
	el := b.Type(elem)
	return &syntax.GenericMatrixType{Base: b.cover("matrix", el), Element: el, Rows: rows, Cols: cols}
}

func (b *Builder) Lit(kind syntax.LiteralKind, text string) *syntax.Literal {
	return &syntax.Literal{Base: syntax.At(b.tok(text)), LitKind: kind, Text: text}
}

func (b *Builder) Int(text string) *syntax.Literal   { return b.Lit(syntax.LiteralInt, text) }
func (b *Builder) Float(text string) *syntax.Literal { return b.Lit(syntax.LiteralFloat, text) }
func (b *Builder) Bool(text string) *syntax.Literal  { return b.Lit(syntax.LiteralBool, text) }

func (b *Builder) Binary(op syntax.Operator, l, r syntax.Expression) *syntax.Binary {
	return &syntax.Binary{Base: b.cover(op.String(), l, r), Op: op, Left: l, Right: r}
}

func (b *Builder) Assign(op syntax.Operator, l, r syntax.Expression) *syntax.Assignment {
	return &syntax.Assignment{Base: b.cover("=", l, r), Op: op, Left: l, Right: r}
}

func (b *Builder) Prefix(op syntax.Operator, e syntax.Expression) *syntax.PrefixUnary {
	return &syntax.PrefixUnary{Base: b.cover(op.String(), e), Op: op, Operand: e}
}

func (b *Builder) Postfix(op syntax.Operator, e syntax.Expression) *syntax.PostfixUnary {
	return &syntax.PostfixUnary{Base: b.cover(op.String(), e), Op: op, Operand: e}
}

// Call builds "target(args)"; target is an identifier or qualified name.
func (b *Builder) Call(target syntax.Expression, args ...syntax.Expression) *syntax.Invocation {
	nodes := append([]syntax.Node{target}, exprNodes(args)...)
	return &syntax.Invocation{Base: b.cover("()", nodes...), Target: target, Arguments: args}
}

func (b *Builder) MethodCall(target syntax.Expression, name string, args ...syntax.Expression) *syntax.MethodInvocation {
	id := b.Ident(name)
	nodes := append([]syntax.Node{target, id}, exprNodes(args)...)
	return &syntax.MethodInvocation{Base: b.cover("()", nodes...), Target: target, Name: id, Arguments: args}
}

func (b *Builder) Construct(t syntax.Type, args ...syntax.Expression) *syntax.NumericConstructor {
	nodes := append([]syntax.Node{t}, exprNodes(args)...)
	return &syntax.NumericConstructor{Base: b.cover("()", nodes...), Type: t, Arguments: args}
}

func (b *Builder) Field(target syntax.Expression, name string) *syntax.FieldAccess {
	id := b.Ident(name)
	return &syntax.FieldAccess{Base: b.cover(".", target, id), Target: target, Name: id}
}

func (b *Builder) Index(target, index syntax.Expression) *syntax.ElementAccess {
	return &syntax.ElementAccess{Base: b.cover("[]", target, index), Target: target, Index: index}
}

func (b *Builder) Paren(e syntax.Expression) *syntax.Parenthesized {
	return &syntax.Parenthesized{Base: b.cover("()", e), Expression: e}
}

func (b *Builder) Cast(t syntax.Type, e syntax.Expression) *syntax.Cast {
	return &syntax.Cast{Base: b.cover("()", t, e), Type: t, Expression: e}
}

func (b *Builder) Cond(c, t, f syntax.Expression) *syntax.Conditional {
	return &syntax.Conditional{Base: b.cover("?:", c, t, f), Condition: c, WhenTrue: t, WhenFalse: f}
}

func (b *Builder) List(elems ...syntax.Expression) *syntax.InitializerList {
	return &syntax.InitializerList{Base: b.cover("{}", exprNodes(elems)...), Elements: elems}
}

func (b *Builder) Compile(profile string, call *syntax.Invocation) *syntax.Compile {
	return &syntax.Compile{Base: b.cover("compile "+profile, call), Profile: profile, Invocation: call}
}

// Declarator builds "name[sizes] = init"; init may be nil.
func (b *Builder) Declarator(name string, init syntax.Expression, sizes ...syntax.Expression) *syntax.VariableDeclarator {
	dn := b.DeclName(name)
	nodes := append([]syntax.Node{dn, init}, exprNodes(sizes)...)
	return &syntax.VariableDeclarator{Base: b.cover("", nodes...), Name: dn, ArraySizes: sizes, Initializer: init}
}

func (b *Builder) WithSemantic(d *syntax.VariableDeclarator, name string) *syntax.VariableDeclarator {
	d.Semantic = &syntax.Semantic{Base: syntax.At(b.tok(name)), Name: name}
	return d
}

func (b *Builder) Vars(mods []string, t syntax.Type, decls ...*syntax.VariableDeclarator) *syntax.VariableDeclaration {
	nodes := []syntax.Node{t}
	for _, d := range decls {
		nodes = append(nodes, d)
	}
	return &syntax.VariableDeclaration{Base: b.cover(";", nodes...), Modifiers: mods, Type: t, Declarators: decls}
}

// Var builds "t name = init;" with one declarator.
func (b *Builder) Var(t syntax.Type, name string, init syntax.Expression) *syntax.VariableDeclaration {
	return b.Vars(nil, t, b.Declarator(name, init))
}

func (b *Builder) Param(mod syntax.ParameterModifier, t syntax.Type, name string) *syntax.Parameter {
	d := b.Declarator(name, nil)
	return &syntax.Parameter{Base: b.cover("", t, d), Modifier: mod, Type: t, Declarator: d}
}

func paramNodes(nodes []syntax.Node, params []*syntax.Parameter) []syntax.Node {
	for _, p := range params {
		nodes = append(nodes, p)
	}
	return nodes
}

// Func builds a function definition. name is a plain or "::" separated name.
func (b *Builder) Func(ret syntax.Type, name syntax.Expression, params []*syntax.Parameter, body *syntax.Block) *syntax.FunctionDefinition {
	nodes := paramNodes([]syntax.Node{ret, name, body}, params)
	return &syntax.FunctionDefinition{Base: b.cover("", nodes...), ReturnType: ret, Name: name, Parameters: params, Body: body}
}

func (b *Builder) Proto(ret syntax.Type, name syntax.Expression, params ...*syntax.Parameter) *syntax.FunctionDeclaration {
	nodes := paramNodes([]syntax.Node{ret, name}, params)
	return &syntax.FunctionDeclaration{Base: b.cover(";", nodes...), ReturnType: ret, Name: name, Parameters: params}
}

func (b *Builder) Block(stmts ...syntax.Statement) *syntax.Block {
	nodes := make([]syntax.Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, s)
	}
	return &syntax.Block{Base: b.cover("{}", nodes...), Statements: stmts}
}

func (b *Builder) Expr(e syntax.Expression) *syntax.ExpressionStatement {
	return &syntax.ExpressionStatement{Base: b.cover(";", e), Expression: e}
}

func (b *Builder) Return(e syntax.Expression) *syntax.Return {
	if e == nil {
		return &syntax.Return{Base: b.cover("return")}
	}
	return &syntax.Return{Base: b.cover("return", e), Expression: e}
}

func (b *Builder) If(cond syntax.Expression, then, els syntax.Statement) *syntax.If {
	n := &syntax.If{Condition: cond, Statement: then}
	if els != nil {
		n.Else = &syntax.ElseClause{Base: b.cover("else", els), Statement: els}
		n.Base = b.cover("if", cond, then, n.Else)
		return n
	}
	n.Base = b.cover("if", cond, then)
	return n
}

func (b *Builder) For(decl *syntax.VariableDeclaration, cond syntax.Expression, incs []syntax.Expression, body syntax.Statement) *syntax.For {
	n := &syntax.For{Condition: cond, Incrementors: incs, Body: body}
	nodes := append([]syntax.Node{cond, body}, exprNodes(incs)...)
	if decl != nil {
		n.Declaration = decl
		nodes = append(nodes, decl)
	}
	n.Base = b.cover("for", nodes...)
	return n
}

func (b *Builder) While(cond syntax.Expression, body syntax.Statement) *syntax.While {
	return &syntax.While{Base: b.cover("while", cond, body), Condition: cond, Body: body}
}

func (b *Builder) Switch(e syntax.Expression, sections ...*syntax.SwitchSection) *syntax.Switch {
	nodes := []syntax.Node{e}
	for _, s := range sections {
		nodes = append(nodes, s)
	}
	return &syntax.Switch{Base: b.cover("switch", nodes...), Expression: e, Sections: sections}
}

// Case builds a section with one label; a nil value means "default".
func (b *Builder) Case(value syntax.Expression, stmts ...syntax.Statement) *syntax.SwitchSection {
	var label syntax.SwitchLabel
	if value == nil {
		label = &syntax.DefaultSwitchLabel{Base: b.cover("default:")}
	} else {
		label = &syntax.CaseSwitchLabel{Base: b.cover("case", value), Value: value}
	}
	nodes := []syntax.Node{label}
	for _, s := range stmts {
		nodes = append(nodes, s)
	}
	return &syntax.SwitchSection{Base: b.cover("", nodes...), Labels: []syntax.SwitchLabel{label}, Statements: stmts}
}

func (b *Builder) Break() *syntax.Break { return &syntax.Break{Base: b.cover("break;")} }

func (b *Builder) Struct(name string, fields ...*syntax.VariableDeclaration) *syntax.StructType {
	dn := b.DeclName(name)
	nodes := []syntax.Node{dn}
	for _, f := range fields {
		nodes = append(nodes, f)
	}
	return &syntax.StructType{Base: b.cover("struct", nodes...), Name: dn, Fields: fields}
}

func (b *Builder) Class(name string, fields []*syntax.VariableDeclaration, methods ...syntax.Declaration) *syntax.ClassType {
	dn := b.DeclName(name)
	nodes := []syntax.Node{dn}
	for _, f := range fields {
		nodes = append(nodes, f)
	}
	for _, m := range methods {
		nodes = append(nodes, m)
	}
	return &syntax.ClassType{Base: b.cover("class", nodes...), Name: dn, Fields: fields, Methods: methods}
}

func (b *Builder) Namespace(name string, decls ...syntax.Declaration) *syntax.Namespace {
	dn := b.DeclName(name)
	nodes := []syntax.Node{dn}
	for _, d := range decls {
		nodes = append(nodes, d)
	}
	return &syntax.Namespace{Base: b.cover("namespace", nodes...), Name: dn, Declarations: decls}
}

// CBuffer builds a constant buffer; an empty name leaves it anonymous.
func (b *Builder) CBuffer(name string, fields ...*syntax.VariableDeclaration) *syntax.ConstantBuffer {
	var dn *syntax.IdentifierDeclarationName
	nodes := []syntax.Node{}
	if name != "" {
		dn = b.DeclName(name)
		nodes = append(nodes, dn)
	}
	for _, f := range fields {
		nodes = append(nodes, f)
	}
	return &syntax.ConstantBuffer{Base: b.cover("cbuffer", nodes...), Name: dn, Fields: fields}
}

func (b *Builder) Technique(name string, passes ...*syntax.Pass) *syntax.Technique {
	dn := b.DeclName(name)
	nodes := []syntax.Node{dn}
	for _, p := range passes {
		nodes = append(nodes, p)
	}
	return &syntax.Technique{Base: b.cover("technique", nodes...), Keyword: "technique10", Name: dn, Passes: passes}
}

func (b *Builder) Pass(name string, states ...*syntax.StateAssignment) *syntax.Pass {
	dn := b.DeclName(name)
	nodes := []syntax.Node{dn}
	for _, s := range states {
		nodes = append(nodes, s)
	}
	return &syntax.Pass{Base: b.cover("pass", nodes...), Name: dn, Assignments: states}
}

func (b *Builder) State(name string, value syntax.Expression) *syntax.StateAssignment {
	return &syntax.StateAssignment{Base: b.cover(name, value), Name: name, Value: value}
}

// Unit wraps decls in a compilation unit and links parents.
func (b *Builder) Unit(decls ...syntax.Declaration) *syntax.Tree {
	nodes := make([]syntax.Node, 0, len(decls))
	for _, d := range decls {
		nodes = append(nodes, d)
	}
	root := &syntax.CompilationUnit{Base: b.cover("", nodes...), Declarations: decls}
	return syntax.NewTree(b.File, root)
}
