package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

func (b *Binder) bindCompilationUnit(root *syntax.CompilationUnit) *bound.CompilationUnit {
	if root == nil {
		return &bound.CompilationUnit{}
	}
	return bindNode(b, root, func(n *syntax.CompilationUnit) *bound.CompilationUnit {
		unit := &bound.CompilationUnit{Base: bound.From(n)}
		b.shared.recordScope(unit, b.scope)
		unit.Declarations = b.bindDeclarations(n.Declarations)
		return unit
	})
}

func (b *Binder) bindDeclarations(decls []syntax.Declaration) []bound.Node {
	out := make([]bound.Node, 0, len(decls))
	for _, d := range decls {
		if syntax.IsNil(d) {
			continue
		}
		out = append(out, b.bindDeclaration(d))
	}
	return out
}

// bindDeclaration dispatches on the closed set of top-level declarations.
func (b *Binder) bindDeclaration(d syntax.Declaration) bound.Node {
	b.shared.point("bind:"+d.Kind().String(), "")
	switch n := d.(type) {
	case *syntax.FunctionDeclaration:
		return bindNode(b, n, b.bindFunctionDeclaration)
	case *syntax.FunctionDefinition:
		return b.bindFunctionDefinition(n)
	case *syntax.VariableDeclaration:
		return bindNode(b, n, func(n *syntax.VariableDeclaration) *bound.MultipleVariableDeclarations {
			return b.bindVariables(n, symbols.SymbolVariable)
		})
	case *syntax.StructType:
		return bindNode(b, n, b.bindStructType)
	case *syntax.ClassType:
		return bindNode(b, n, b.bindClassType)
	case *syntax.Namespace:
		return bindNode(b, n, b.bindNamespace)
	case *syntax.ConstantBuffer:
		return bindNode(b, n, b.bindConstantBuffer)
	case *syntax.Technique:
		return bindNode(b, n, b.bindTechnique)
	default:
		panic("binder: unsupported declaration " + d.Kind().String())
	}
}

func declName(n *syntax.IdentifierDeclarationName) (string, source.Span) {
	if n == nil {
		return "", source.Span{}
	}
	return n.Name, n.Span()
}

// newTypeSymbol declares a struct or class type with its member scope.
func (b *Binder) newTypeSymbol(decl syntax.Node, name *syntax.IdentifierDeclarationName, kind symbols.TypeKind) (symbols.SymbolID, *Binder) {
	text, sp := declName(name)
	id := b.table().NewSymbol(&symbols.Symbol{
		Kind:     symbols.SymbolType,
		Name:     text,
		Parent:   b.owner,
		Scope:    b.scope,
		Span:     sp,
		Decl:     decl,
		TypeInfo: &symbols.TypeInfo{Kind: kind},
	})
	// Declared before the body so that members can refer to the type.
	b.declare(id, sp)
	members := b.child(symbols.ScopeType, decl, id)
	b.table().Symbol(id).Members = members.scope
	members.owner = id
	members.function = symbols.NoSymbolID
	return id, members
}

func (b *Binder) bindStructType(n *syntax.StructType) *bound.StructType {
	id, members := b.newTypeSymbol(n, n.Name, symbols.TypeStruct)
	st := &bound.StructType{Base: bound.From(n), Symbol: id}
	b.shared.recordScope(st, members.scope)
	st.Fields = members.bindFields(n.Fields)
	return st
}

func (b *Binder) bindFields(fields []*syntax.VariableDeclaration) []*bound.MultipleVariableDeclarations {
	out := make([]*bound.MultipleVariableDeclarations, 0, len(fields))
	for _, f := range fields {
		if f == nil {
			continue
		}
		out = append(out, bindNode(b, f, func(n *syntax.VariableDeclaration) *bound.MultipleVariableDeclarations {
			return b.bindVariables(n, symbols.SymbolField)
		}))
	}
	return out
}

// bindClassType declares every method before binding any body so that
// methods can call each other regardless of order. Method parameters are
// resolved lazily on first use.
func (b *Binder) bindClassType(n *syntax.ClassType) *bound.ClassType {
	id, members := b.newTypeSymbol(n, n.Name, symbols.TypeClass)
	ct := &bound.ClassType{Base: bound.From(n), Symbol: id}
	b.shared.recordScope(ct, members.scope)
	ct.Fields = members.bindFields(n.Fields)

	for _, m := range n.Methods {
		members.declareMethod(m)
	}
	ct.Methods = make([]bound.Node, 0, len(n.Methods))
	for _, m := range n.Methods {
		if syntax.IsNil(m) {
			continue
		}
		ct.Methods = append(ct.Methods, members.bindDeclaration(m))
	}
	return ct
}

func (b *Binder) bindNamespace(n *syntax.Namespace) *bound.Namespace {
	text, sp := declName(n.Name)
	id := symbols.NoSymbolID
	for _, prev := range b.table().LookupLocal(b.scope, text) {
		if sym := b.table().Symbol(prev); sym != nil && sym.Kind == symbols.SymbolNamespace {
			id = prev
			break
		}
	}
	var inner *Binder
	if id.IsValid() {
		// A reopened namespace continues its first scope.
		inner = b.within(b.table().Symbol(id).Members)
	} else {
		id = b.table().NewSymbol(&symbols.Symbol{
			Kind:   symbols.SymbolNamespace,
			Name:   text,
			Parent: b.owner,
			Scope:  b.scope,
			Span:   sp,
			Decl:   n,
		})
		b.declare(id, sp)
		inner = b.child(symbols.ScopeNamespace, n, id)
		b.table().Symbol(id).Members = inner.scope
	}
	inner.owner = id

	ns := &bound.Namespace{Base: bound.From(n), Symbol: id}
	b.shared.recordScope(ns, inner.scope)
	ns.Declarations = inner.bindDeclarations(n.Declarations)
	return ns
}

// bindConstantBuffer declares the buffer's fields as variables of the
// enclosing scope, parented to the buffer symbol.
func (b *Binder) bindConstantBuffer(n *syntax.ConstantBuffer) *bound.ConstantBuffer {
	text, sp := declName(n.Name)
	id := b.table().NewSymbol(&symbols.Symbol{
		Kind:   symbols.SymbolConstantBuffer,
		Name:   text,
		Parent: b.owner,
		Scope:  b.scope,
		Span:   sp,
		Decl:   n,
	})
	if text != "" {
		b.declare(id, sp)
	}
	fields := b.within(b.scope)
	fields.owner = id

	cb := &bound.ConstantBuffer{Base: bound.From(n), Symbol: id}
	cb.Fields = make([]*bound.MultipleVariableDeclarations, 0, len(n.Fields))
	for _, f := range n.Fields {
		if f == nil {
			continue
		}
		cb.Fields = append(cb.Fields, bindNode(fields, f, func(n *syntax.VariableDeclaration) *bound.MultipleVariableDeclarations {
			return fields.bindVariables(n, symbols.SymbolVariable)
		}))
	}
	return cb
}

// bindVariables binds a declaration statement, field list or global
// declaration. Each declarator becomes a symbol of kind in the current scope.
func (b *Binder) bindVariables(n *syntax.VariableDeclaration, kind symbols.SymbolKind) *bound.MultipleVariableDeclarations {
	out := &bound.MultipleVariableDeclarations{
		Base:    bound.From(n),
		TypeRef: b.bindType(n.Type),
	}
	typ := b.errorType()
	if out.TypeRef != nil {
		typ = out.TypeRef.Type()
	}
	flags := modifierFlags(n.Modifiers)
	out.Declarations = make([]*bound.VariableDeclaration, 0, len(n.Declarators))
	for _, d := range n.Declarators {
		if d == nil {
			continue
		}
		out.Declarations = append(out.Declarations, bindNode(b, d, func(d *syntax.VariableDeclarator) *bound.VariableDeclaration {
			return b.bindDeclarator(d, typ, kind, flags)
		}))
	}
	return out
}

func modifierFlags(mods []string) symbols.SymbolFlags {
	var flags symbols.SymbolFlags
	for _, m := range mods {
		switch m {
		case "static":
			flags |= symbols.SymbolFlagStatic
		case "const":
			flags |= symbols.SymbolFlagConst
		case "uniform":
			flags |= symbols.SymbolFlagUniform
		}
	}
	return flags
}

func (b *Binder) bindDeclarator(d *syntax.VariableDeclarator, elem symbols.SymbolID, kind symbols.SymbolKind, flags symbols.SymbolFlags) *bound.VariableDeclaration {
	text, sp := declName(d.Name)
	decl := &bound.VariableDeclaration{Base: bound.From(d)}

	decl.ArraySizes = make([]bound.Expression, 0, len(d.ArraySizes))
	for _, size := range d.ArraySizes {
		if syntax.IsNil(size) {
			continue
		}
		decl.ArraySizes = append(decl.ArraySizes, b.bindExpression(size))
	}
	typ := b.arrayOf(elem, decl.ArraySizes)
	if info := b.table().TypeInfo(elem); info != nil && info.Kind == symbols.TypeVoid {
		b.errorf(diag.SemaVoidVariable, sp, "'%s': void variables are illegal", text).Emit()
		typ = b.errorType()
	}

	decl.Symbol = b.table().NewSymbol(&symbols.Symbol{
		Kind:   kind,
		Name:   text,
		Flags:  flags,
		Parent: b.owner,
		Scope:  b.scope,
		Type:   typ,
		Span:   sp,
		Decl:   d,
	})
	b.declare(decl.Symbol, sp)

	if d.Semantic != nil {
		decl.Semantic = b.bindSemantic(d.Semantic)
	}
	if !syntax.IsNil(d.Initializer) {
		decl.Initializer = b.bindInitializer(d.Initializer, typ)
	}
	return decl
}

// bindSemantic resolves a ": NAME" annotation against the intrinsic catalog,
// falling back to a per-compilation user semantic.
func (b *Binder) bindSemantic(n *syntax.Semantic) *bound.Semantic {
	return bindNode(b, n, func(n *syntax.Semantic) *bound.Semantic {
		id := b.table().LookupSemantic(n.Name)
		if !id.IsValid() {
			id = b.shared.userSemantic(n.Name, n.Span())
		}
		return &bound.Semantic{Base: bound.From(n), Symbol: id}
	})
}
