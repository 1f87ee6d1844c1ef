package binder

import (
	"strings"

	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/overload"
	"hlsltools/internal/signatures"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// callable is a signature that knows the symbol it was built from.
type callable interface {
	signatures.Signature
	function() symbols.SymbolID
}

type functionSignature struct {
	signatures.FunctionSignature
}

func (s functionSignature) function() symbols.SymbolID { return s.Symbol }

// entryPointSignature exposes only the uniform parameters of a function.
// "compile ps_4_0 PS(1)" passes values for uniforms; varying inputs come
// from the pipeline.
type entryPointSignature struct {
	fn    symbols.SymbolID
	types []symbols.SymbolID
	dirs  []symbols.Direction
}

func newEntryPointSignature(t *symbols.Table, fn symbols.SymbolID) entryPointSignature {
	out := entryPointSignature{fn: fn}
	sym := t.Symbol(fn)
	if sym == nil || sym.Invocable == nil {
		return out
	}
	for _, id := range sym.Invocable.Parameters() {
		p := t.Symbol(id)
		if p == nil || p.Flags&symbols.SymbolFlagUniform == 0 {
			continue
		}
		out.types = append(out.types, p.Type)
		out.dirs = append(out.dirs, p.Direction)
	}
	return out
}

func (s entryPointSignature) ParameterCount() int                        { return len(s.types) }
func (s entryPointSignature) ParameterType(i int) symbols.SymbolID       { return s.types[i] }
func (s entryPointSignature) ParameterDirection(i int) symbols.Direction { return s.dirs[i] }
func (entryPointSignature) HasVariadicParameter() bool                   { return false }
func (s entryPointSignature) function() symbols.SymbolID                 { return s.fn }

func (b *Binder) bindArguments(args []syntax.Expression) ([]bound.Expression, []signatures.Argument) {
	exprs := make([]bound.Expression, 0, len(args))
	shapes := make([]signatures.Argument, 0, len(args))
	for _, a := range args {
		arg := b.bindExpression(a)
		exprs = append(exprs, arg)
		shapes = append(shapes, signatures.Argument{
			Type:     arg.Type(),
			Writable: isLValue(b.table(), arg),
			Literal:  b.isIntLiteral(arg),
		})
	}
	return exprs, shapes
}

func (b *Binder) isIntLiteral(e bound.Expression) bool {
	lit, ok := e.(*bound.Literal)
	return ok && lit.Type() == b.builtins().Scalar(symbols.ScalarInt)
}

// bindInvocation binds "f(args)" and "N::f(args)". With entryPoint set the
// call is the target of a compile expression.
func (b *Binder) bindInvocation(n *syntax.Invocation, entryPoint bool) *bound.FunctionInvocation {
	var (
		name string
		ids  []symbols.SymbolID
	)
	switch t := n.Target.(type) {
	case *syntax.IdentifierName:
		name = t.Name
		ids = b.table().Lookup(b.scope, t.Name)
	case *syntax.QualifiedName:
		name = t.Right.Name
		ids = b.resolveQualified(t)
	}
	target := &bound.Name{ExprBase: bound.Typed(n.Target, b.errorType()), Candidates: ids}
	b.shared.record(n.Target, target)

	args, shapes := b.bindArguments(n.Arguments)
	out := &bound.FunctionInvocation{Target: target, Arguments: args}

	fns := make([]symbols.SymbolID, 0, len(ids))
	for _, id := range ids {
		if sym := b.table().Symbol(id); sym != nil && sym.Kind.IsInvocable() {
			fns = append(fns, id)
		}
	}
	switch {
	case len(ids) == 0:
		b.errorf(diag.SemaUndeclaredIdentifier, spanOf(n.Target), "undeclared identifier '%s'", name).Emit()
	case len(fns) == 0:
		target.Symbol = ids[0]
		b.errorf(diag.SemaNotCallable, spanOf(n.Target), "'%s': not a function", name).Emit()
	case entryPoint:
		sigs := make([]entryPointSignature, 0, len(fns))
		for _, id := range fns {
			sigs = append(sigs, newEntryPointSignature(b.table(), id))
		}
		out.Function = resolveCall(b, n.Span(), name, sigs, shapes)
	default:
		sigs := make([]functionSignature, 0, len(fns))
		for _, s := range signatures.Signatures(b.table(), fns) {
			sigs = append(sigs, functionSignature{s})
		}
		out.Function = resolveCall(b, n.Span(), name, sigs, shapes)
	}

	if out.Function.IsValid() {
		target.Symbol = out.Function
	}
	out.ExprBase = bound.Typed(n, b.returnType(out.Function))
	return out
}

// bindMethodInvocation binds "obj.Method(args)" against the members of the
// object's type.
func (b *Binder) bindMethodInvocation(n *syntax.MethodInvocation) *bound.MethodInvocation {
	target := b.bindExpression(n.Target)
	args, shapes := b.bindArguments(n.Arguments)
	out := &bound.MethodInvocation{Target: target, Arguments: args}

	name := ""
	if n.Name != nil {
		name = n.Name.Name
	}
	typ := b.table().Symbol(target.Type())
	switch {
	case typ == nil || typ.TypeInfo.IsError():
	case !typ.Members.IsValid():
		b.errorf(diag.SemaInvalidMember, spanOf(n.Name), "invalid subscript '%s'", name).Emit()
	default:
		fns := make([]symbols.SymbolID, 0, 4)
		for _, id := range b.table().LookupLocal(typ.Members, name) {
			if sym := b.table().Symbol(id); sym != nil && sym.Kind.IsInvocable() {
				fns = append(fns, id)
			}
		}
		if len(fns) == 0 {
			b.errorf(diag.SemaInvalidMember, spanOf(n.Name), "'%s': no method named '%s'", typ.Name, name).Emit()
			break
		}
		sigs := make([]functionSignature, 0, len(fns))
		for _, s := range signatures.Signatures(b.table(), fns) {
			sigs = append(sigs, functionSignature{s})
		}
		out.Method = resolveCall(b, n.Span(), name, sigs, shapes)
	}
	out.ExprBase = bound.Typed(n, b.returnType(out.Method))
	return out
}

func (b *Binder) returnType(fn symbols.SymbolID) symbols.SymbolID {
	if sym := b.table().Symbol(fn); sym != nil && sym.Type.IsValid() {
		return sym.Type
	}
	return b.errorType()
}

// resolveCall runs overload resolution and reports why a call failed. An
// ambiguous call still yields its top-ranked candidate.
func resolveCall[S callable](b *Binder, sp source.Span, name string, sigs []S, args []signatures.Argument) symbols.SymbolID {
	t := b.table()
	res := overload.Perform(t, sigs, args)
	if best, ok := res.Best(); ok {
		return best.function()
	}
	if res.Ambiguous() {
		cands := res.Candidates()
		rep := b.errorf(diag.SemaAmbiguousCall, sp, "'%s': ambiguous function call", name)
		for _, c := range cands {
			if c.Score != cands[0].Score {
				break
			}
			rep.WithNote(t.Symbol(c.Signature.function()).Span, "could be '"+describeFunction(t, c.Signature.function())+"'")
		}
		rep.Emit()
		sel, _ := res.Selected()
		return sel.function()
	}

	writable := make([]signatures.Argument, len(args))
	for i, a := range args {
		writable[i] = signatures.Argument{Type: a.Type, Writable: true, Literal: a.Literal}
	}
	if sel, ok := overload.Perform(t, sigs, writable).Selected(); ok {
		b.errorf(diag.SemaOutArgNotLValue, sp, "'%s': output parameters require an l-value argument", name).Emit()
		return sel.function()
	}
	b.errorf(diag.SemaNoMatchingOverload, sp, "'%s': no matching %d parameter function", name, len(args)).Emit()
	return symbols.NoSymbolID
}

// describeFunction renders "float4 f(float2, out float)" for notes.
func describeFunction(t *symbols.Table, fn symbols.SymbolID) string {
	sym := t.Symbol(fn)
	if sym == nil {
		return "<unknown>"
	}
	var sb strings.Builder
	sb.WriteString(t.TypeName(sym.Type))
	sb.WriteByte(' ')
	sb.WriteString(sym.Name)
	sb.WriteByte('(')
	if sym.Invocable != nil {
		for i, id := range sym.Invocable.Parameters() {
			if i > 0 {
				sb.WriteString(", ")
			}
			p := t.Symbol(id)
			if p == nil {
				continue
			}
			if p.Direction != symbols.DirIn {
				sb.WriteString(p.Direction.String())
				sb.WriteByte(' ')
			}
			sb.WriteString(t.TypeName(p.Type))
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// bindTechnique declares the technique and its passes. Pass state values
// are bound inside the pass scope.
func (b *Binder) bindTechnique(n *syntax.Technique) *bound.Technique {
	text, sp := declName(n.Name)
	id := b.table().NewSymbol(&symbols.Symbol{
		Kind:   symbols.SymbolTechnique,
		Name:   text,
		Parent: b.owner,
		Scope:  b.scope,
		Span:   sp,
		Decl:   n,
	})
	if text != "" {
		b.declare(id, sp)
	}
	inner := b.child(symbols.ScopeTechnique, n, id)
	inner.owner = id
	b.table().Symbol(id).Members = inner.scope

	out := &bound.Technique{Base: bound.From(n), Symbol: id}
	b.shared.recordScope(out, inner.scope)
	out.Passes = make([]*bound.Pass, 0, len(n.Passes))
	for _, p := range n.Passes {
		if p == nil {
			continue
		}
		out.Passes = append(out.Passes, bindNode(inner, p, inner.bindPass))
	}
	return out
}

func (b *Binder) bindPass(n *syntax.Pass) *bound.Pass {
	text, sp := declName(n.Name)
	id := b.table().NewSymbol(&symbols.Symbol{
		Kind:   symbols.SymbolPass,
		Name:   text,
		Parent: b.owner,
		Scope:  b.scope,
		Span:   sp,
		Decl:   n,
	})
	if text != "" {
		b.declare(id, sp)
	}
	inner := b.child(symbols.ScopePass, n, id)
	inner.owner = id
	b.table().Symbol(id).Members = inner.scope

	out := &bound.Pass{Base: bound.From(n), Symbol: id}
	b.shared.recordScope(out, inner.scope)
	out.Assignments = make([]*bound.StateAssignment, 0, len(n.Assignments))
	for _, a := range n.Assignments {
		if a == nil {
			continue
		}
		out.Assignments = append(out.Assignments, bindNode(inner, a, func(a *syntax.StateAssignment) *bound.StateAssignment {
			sa := &bound.StateAssignment{Base: bound.From(a), Name: a.Name}
			if !syntax.IsNil(a.Value) {
				sa.Value = inner.bindExpression(a.Value)
			}
			return sa
		}))
	}
	return out
}
