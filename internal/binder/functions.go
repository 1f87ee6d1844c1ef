package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/signatures"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// parameterList is the signature of a function header before its symbol
// exists.
type parameterList struct {
	types []symbols.SymbolID
	dirs  []symbols.Direction
}

func (p parameterList) ParameterCount() int                        { return len(p.types) }
func (p parameterList) ParameterType(i int) symbols.SymbolID       { return p.types[i] }
func (p parameterList) ParameterDirection(i int) symbols.Direction { return p.dirs[i] }
func (parameterList) HasVariadicParameter() bool                   { return false }

type header struct {
	name     string
	nameSpan source.Span
	ret      bound.Expression
	params   []*bound.Parameter
}

func (h *header) returnType(errType symbols.SymbolID) symbols.SymbolID {
	if h.ret == nil {
		return errType
	}
	return h.ret.Type()
}

func (h *header) signature(t *symbols.Table) parameterList {
	pl := parameterList{
		types: make([]symbols.SymbolID, 0, len(h.params)),
		dirs:  make([]symbols.Direction, 0, len(h.params)),
	}
	for _, p := range h.params {
		sym := t.Symbol(p.Symbol)
		pl.types = append(pl.types, sym.Type)
		pl.dirs = append(pl.dirs, sym.Direction)
	}
	return pl
}

func (h *header) parameterIDs() []symbols.SymbolID {
	ids := make([]symbols.SymbolID, 0, len(h.params))
	for _, p := range h.params {
		ids = append(ids, p.Symbol)
	}
	return ids
}

// functionTarget returns the binder for the scope a function name lives in.
// "N::f" and "C::f" target the members of N or C.
func (b *Binder) functionTarget(name syntax.Expression) (*Binder, string, source.Span) {
	switch n := name.(type) {
	case *syntax.IdentifierName:
		return b, n.Name, n.Span()
	case *syntax.QualifiedName:
		container := b.resolveContainer(n.Left)
		if sym := b.table().Symbol(container); sym != nil {
			target := b.within(sym.Members)
			target.owner = container
			return target, n.Right.Name, n.Right.Span()
		}
		return b, n.Right.Name, n.Right.Span()
	}
	return b, "", spanOf(name)
}

func (b *Binder) bindHeader(name string, sp source.Span, ret syntax.Type, params []*syntax.Parameter) *header {
	h := &header{name: name, nameSpan: sp, ret: b.bindType(ret)}
	h.params = make([]*bound.Parameter, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		h.params = append(h.params, b.bindParameter(p))
	}
	return h
}

// bindParameter is memoised: lazily resolved methods bind their parameters
// before the method declaration itself is reached.
func (b *Binder) bindParameter(p *syntax.Parameter) *bound.Parameter {
	if n, ok := b.shared.BoundFromSyntax[p]; ok {
		return n.(*bound.Parameter)
	}
	return bindNode(b, p, func(p *syntax.Parameter) *bound.Parameter {
		out := &bound.Parameter{Base: bound.From(p), TypeRef: b.bindType(p.Type)}
		typ := b.errorType()
		if out.TypeRef != nil {
			typ = out.TypeRef.Type()
		}

		var (
			name  string
			sp    = p.Span()
			sizes []bound.Expression
		)
		d := p.Declarator
		if d != nil {
			name, sp = declName(d.Name)
			for _, size := range d.ArraySizes {
				if !syntax.IsNil(size) {
					sizes = append(sizes, b.bindExpression(size))
				}
			}
			typ = b.arrayOf(typ, sizes)
		}

		var flags symbols.SymbolFlags
		if p.Modifier == syntax.ModifierUniform {
			flags |= symbols.SymbolFlagUniform
		}
		out.Symbol = b.table().NewSymbol(&symbols.Symbol{
			Kind:      symbols.SymbolParameter,
			Name:      name,
			Flags:     flags,
			Type:      typ,
			Direction: symbols.DirectionOf(p.Modifier),
			Span:      sp,
			Decl:      p,
		})

		if d != nil && d.Semantic != nil {
			out.Semantic = b.bindSemantic(d.Semantic)
		}
		if d != nil && !syntax.IsNil(d.Initializer) {
			out.Default = b.bindInitializer(d.Initializer, typ)
		}
		return out
	})
}

// functionSymbol finds the function a header belongs to, merging a
// definition with an earlier prototype of the same parameter list, or
// declares a new one.
func (b *Binder) functionSymbol(decl syntax.Node, h *header, defined bool) symbols.SymbolID {
	t := b.table()
	ret := h.returnType(b.errorType())
	local := h.signature(t)

	for _, id := range t.LookupLocal(b.scope, h.name) {
		if prev := t.Symbol(id); prev == nil || !prev.Kind.IsInvocable() {
			continue
		}
		if !signatures.SameParameters(signatures.NewFunctionSignature(t, id), local) {
			continue
		}
		// Re-read: the signature may have resolved lazy parameters.
		prev := t.Symbol(id)
		if prev.Type != ret {
			b.errorf(diag.SemaPrototypeMismatch, h.nameSpan,
				"'%s': function return value type '%s' does not match the declaration's '%s'",
				h.name, t.TypeName(ret), t.TypeName(prev.Type)).
				WithNote(prev.Span, "see declaration of '"+h.name+"'").
				Emit()
		}
		if defined {
			if prev.Flags&symbols.SymbolFlagDefined != 0 {
				b.errorf(diag.SemaRedefinition, h.nameSpan, "'%s': function already has a body", h.name).
					WithNote(prev.Span, "see previous definition of '"+h.name+"'").
					Emit()
			}
			prev.Flags |= symbols.SymbolFlagDefined
			prev.Decl = decl
			prev.Span = h.nameSpan
			// Calls resolve against the prototype; lookups afterwards see
			// the definition's parameters.
			prev.Invocable = symbols.Eager(h.parameterIDs(), false)
		}
		b.adoptParameters(id, h)
		return id
	}

	kind := symbols.SymbolFunction
	if owner := t.Symbol(b.owner); owner != nil && owner.Kind == symbols.SymbolType {
		kind = symbols.SymbolMethod
	}
	var flags symbols.SymbolFlags
	if defined {
		flags |= symbols.SymbolFlagDefined
	}
	id := t.NewSymbol(&symbols.Symbol{
		Kind:      kind,
		Name:      h.name,
		Flags:     flags,
		Parent:    b.owner,
		Scope:     b.scope,
		Type:      ret,
		Span:      h.nameSpan,
		Decl:      decl,
		Invocable: symbols.Eager(h.parameterIDs(), false),
	})
	b.adoptParameters(id, h)
	b.declare(id, h.nameSpan)
	return id
}

func (b *Binder) adoptParameters(fn symbols.SymbolID, h *header) {
	for _, p := range h.params {
		b.table().Symbol(p.Symbol).Parent = fn
	}
}

func (b *Binder) bindFunctionDeclaration(n *syntax.FunctionDeclaration) *bound.FunctionDeclaration {
	target, name, sp := b.functionTarget(n.Name)
	h := target.bindHeader(name, sp, n.ReturnType, n.Parameters)
	out := &bound.FunctionDeclaration{
		Base:       bound.From(n),
		Function:   target.functionSymbol(n, h, false),
		ReturnType: h.ret,
		Parameters: h.params,
	}
	if n.Semantic != nil {
		out.Semantic = target.bindSemantic(n.Semantic)
	}
	return out
}

// bindFunctionDefinition records the definition before binding its body so
// that the body is bound against a registered node.
func (b *Binder) bindFunctionDefinition(n *syntax.FunctionDefinition) *bound.FunctionDefinition {
	target, name, sp := b.functionTarget(n.Name)
	h := target.bindHeader(name, sp, n.ReturnType, n.Parameters)
	fn := target.functionSymbol(n, h, true)
	def := &bound.FunctionDefinition{
		Base:       bound.From(n),
		Function:   fn,
		ReturnType: h.ret,
		Parameters: h.params,
	}
	b.shared.record(n, def)
	if n.Semantic != nil {
		def.Semantic = target.bindSemantic(n.Semantic)
	}

	body := target.child(symbols.ScopeFunction, n, fn)
	body.function = fn
	b.shared.recordScope(def, body.scope)
	for _, p := range h.params {
		sym := b.table().Symbol(p.Symbol)
		sym.Scope = body.scope
		if sym.Name != "" {
			body.declare(p.Symbol, sym.Span)
		}
	}
	if n.Body != nil {
		def.Body = bindNode(body, n.Body, body.bindBlockIn)
	}
	return def
}

// declareMethod creates the symbol of a class method ahead of its body.
// Its parameters are bound on first use.
func (b *Binder) declareMethod(m syntax.Declaration) {
	var (
		name   syntax.Expression
		ret    syntax.Type
		params []*syntax.Parameter
	)
	switch n := m.(type) {
	case *syntax.FunctionDeclaration:
		name, ret, params = n.Name, n.ReturnType, n.Parameters
	case *syntax.FunctionDefinition:
		name, ret, params = n.Name, n.ReturnType, n.Parameters
	default:
		return
	}
	ident, ok := name.(*syntax.IdentifierName)
	if !ok {
		return
	}

	typ := b.errorType()
	if ref := b.bindType(ret); ref != nil {
		typ = ref.Type()
	}
	id := b.table().NewSymbol(&symbols.Symbol{
		Kind:   symbols.SymbolMethod,
		Name:   ident.Name,
		Parent: b.owner,
		Scope:  b.scope,
		Type:   typ,
		Span:   ident.Span(),
		Decl:   m,
	})
	b.table().Symbol(id).Invocable = symbols.Lazy(func() []symbols.SymbolID {
		ids := make([]symbols.SymbolID, 0, len(params))
		for _, p := range params {
			if p == nil {
				continue
			}
			bp := b.bindParameter(p)
			b.table().Symbol(bp.Symbol).Parent = id
			ids = append(ids, bp.Symbol)
		}
		return ids
	}, false)
	b.declare(id, ident.Span())
}
