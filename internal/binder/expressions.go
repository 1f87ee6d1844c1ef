package binder

import (
	"fmt"
	"strconv"
	"strings"

	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// bindExpression dispatches on the closed set of expression syntax. The
// result is never nil; failures produce nodes of the error type.
func (b *Binder) bindExpression(e syntax.Expression) bound.Expression {
	if syntax.IsNil(e) {
		return &bound.Error{ExprBase: bound.Typed(nil, b.errorType())}
	}
	switch n := e.(type) {
	case *syntax.Literal:
		return bindNode(b, n, b.bindLiteral)
	case *syntax.IdentifierName:
		return bindNode(b, n, b.bindIdentifier)
	case *syntax.QualifiedName:
		return bindNode(b, n, b.bindQualifiedName)
	case *syntax.Binary:
		return bindNode(b, n, b.bindBinary)
	case *syntax.Assignment:
		return bindNode(b, n, b.bindAssignment)
	case *syntax.PrefixUnary:
		return bindNode(b, n, func(n *syntax.PrefixUnary) *bound.Unary {
			return b.bindUnary(n, n.Op, n.Operand, false)
		})
	case *syntax.PostfixUnary:
		return bindNode(b, n, func(n *syntax.PostfixUnary) *bound.Unary {
			return b.bindUnary(n, n.Op, n.Operand, true)
		})
	case *syntax.Invocation:
		return bindNode(b, n, func(n *syntax.Invocation) *bound.FunctionInvocation {
			return b.bindInvocation(n, false)
		})
	case *syntax.MethodInvocation:
		return bindNode(b, n, b.bindMethodInvocation)
	case *syntax.NumericConstructor:
		return bindNode(b, n, b.bindNumericConstructor)
	case *syntax.FieldAccess:
		return bindNode(b, n, b.bindFieldAccess)
	case *syntax.ElementAccess:
		return bindNode(b, n, b.bindElementAccess)
	case *syntax.Compound:
		return bindNode(b, n, func(n *syntax.Compound) *bound.Compound {
			left := b.bindExpression(n.Left)
			right := b.bindExpression(n.Right)
			return &bound.Compound{ExprBase: bound.Typed(n, right.Type()), Left: left, Right: right}
		})
	case *syntax.Parenthesized:
		return bindNode(b, n, func(n *syntax.Parenthesized) *bound.Parenthesized {
			inner := b.bindExpression(n.Expression)
			return &bound.Parenthesized{ExprBase: bound.Typed(n, inner.Type()), Expression: inner}
		})
	case *syntax.Conditional:
		return bindNode(b, n, b.bindConditional)
	case *syntax.Cast:
		return bindNode(b, n, b.bindCast)
	case *syntax.InitializerList:
		// Without a target type a brace list has no type of its own.
		return b.bindInitializer(n, b.errorType())
	case *syntax.Compile:
		return bindNode(b, n, b.bindCompile)
	case *syntax.Missing:
		return bindNode(b, n, func(n *syntax.Missing) *bound.Error {
			return &bound.Error{ExprBase: bound.Typed(n, b.errorType())}
		})
	case *syntax.PredefinedType, *syntax.GenericVectorType, *syntax.GenericMatrixType:
		return b.bindType(e.(syntax.Type))
	default:
		panic(fmt.Sprintf("binder: unsupported expression kind %s", e.Kind()))
	}
}

func (b *Binder) bindLiteral(n *syntax.Literal) *bound.Literal {
	k := symbols.ScalarInt
	switch n.LitKind {
	case syntax.LiteralUint:
		k = symbols.ScalarUint
	case syntax.LiteralFloat:
		k = symbols.ScalarFloat
	case syntax.LiteralHalf:
		k = symbols.ScalarHalf
	case syntax.LiteralDouble:
		k = symbols.ScalarDouble
	case syntax.LiteralBool:
		k = symbols.ScalarBool
	case syntax.LiteralString:
		return &bound.Literal{ExprBase: bound.Typed(n, b.builtins().String), Text: n.Text}
	}
	return &bound.Literal{ExprBase: bound.Typed(n, b.builtins().Scalar(k)), Text: n.Text}
}

// arrayLength reads a constant array size; anything else counts as unsized.
func arrayLength(size bound.Expression) uint32 {
	lit, ok := size.(*bound.Literal)
	if !ok {
		return 0
	}
	text := strings.TrimRight(strings.ToLower(lit.Text), "ul")
	v, err := strconv.ParseUint(text, 0, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

// valueOf turns a resolved name into the expression it denotes.
func (b *Binder) valueOf(n syntax.Node, name string, ids []symbols.SymbolID) bound.Expression {
	if len(ids) == 0 {
		b.errorf(diag.SemaUndeclaredIdentifier, n.Span(), "undeclared identifier '%s'", name).Emit()
		return &bound.Name{ExprBase: bound.Typed(n, b.errorType())}
	}
	sym := b.table().Symbol(ids[0])
	switch sym.Kind {
	case symbols.SymbolVariable, symbols.SymbolParameter, symbols.SymbolField:
		return &bound.VariableExpression{ExprBase: bound.Typed(n, sym.Type), Symbol: ids[0]}
	case symbols.SymbolType:
		return b.typeRef(n, ids[0])
	default:
		return &bound.Name{ExprBase: bound.Typed(n, b.errorType()), Symbol: ids[0], Candidates: ids}
	}
}

func (b *Binder) bindIdentifier(n *syntax.IdentifierName) bound.Expression {
	return b.valueOf(n, n.Name, b.table().Lookup(b.scope, n.Name))
}

func (b *Binder) bindQualifiedName(n *syntax.QualifiedName) bound.Expression {
	return b.valueOf(n, n.Right.Name, b.resolveQualified(n))
}

// resolveContainer resolves the left side of "A::B" to a namespace or type
// and records it as a Name.
func (b *Binder) resolveContainer(e syntax.Expression) symbols.SymbolID {
	var (
		name string
		ids  []symbols.SymbolID
	)
	switch n := e.(type) {
	case *syntax.IdentifierName:
		name = n.Name
		ids = b.table().Lookup(b.scope, n.Name)
	case *syntax.QualifiedName:
		name = n.Right.Name
		ids = b.resolveQualified(n)
	default:
		return symbols.NoSymbolID
	}

	container := symbols.NoSymbolID
	for _, id := range ids {
		if sym := b.table().Symbol(id); sym != nil && sym.Members.IsValid() {
			container = id
			break
		}
	}
	if !container.IsValid() {
		if len(ids) == 0 {
			b.errorf(diag.SemaUndeclaredIdentifier, e.Span(), "undeclared identifier '%s'", name).Emit()
		} else {
			b.errorf(diag.SemaInvalidMember, e.Span(), "'%s' is not a namespace or type", name).Emit()
		}
	}
	b.shared.record(e, &bound.Name{ExprBase: bound.Typed(e, b.errorType()), Symbol: container, Candidates: ids})
	return container
}

// resolveQualified returns the members named by the right side of n.
func (b *Binder) resolveQualified(n *syntax.QualifiedName) []symbols.SymbolID {
	container := b.resolveContainer(n.Left)
	sym := b.table().Symbol(container)
	if sym == nil || n.Right == nil {
		return nil
	}
	return b.table().LookupLocal(sym.Members, n.Right.Name)
}

func (b *Binder) bindConditional(n *syntax.Conditional) *bound.Conditional {
	cond := b.bindCondition(n.Condition)
	whenTrue := b.bindExpression(n.WhenTrue)
	whenFalse := b.bindExpression(n.WhenFalse)
	typ := b.commonType(n, syntax.OpInvalid, whenTrue.Type(), whenFalse.Type())
	return &bound.Conditional{
		ExprBase:  bound.Typed(n, typ),
		Condition: cond,
		WhenTrue:  whenTrue,
		WhenFalse: whenFalse,
	}
}

// bindCast accepts any implicit conversion plus explicit conversions
// between numeric types of compatible component counts.
func (b *Binder) bindCast(n *syntax.Cast) *bound.Cast {
	ref := b.bindType(n.Type)
	inner := b.bindExpression(n.Expression)
	to := b.errorType()
	if ref != nil {
		to = ref.Type()
	}
	out := &bound.Cast{ExprBase: bound.Typed(n, to), TypeRef: ref, Expression: inner}

	from := inner.Type()
	if b.convertible(from, to) {
		return out
	}
	fi, ti := b.table().TypeInfo(from), b.table().TypeInfo(to)
	switch {
	case fi.IsNumeric() && ti.IsNumeric() && (fi.Components() == 1 || fi.Components() >= ti.Components()):
	case ti != nil && ti.Kind == symbols.TypeVoid:
	default:
		b.errorf(diag.SemaCannotConvert, n.Span(), "cannot convert from '%s' to '%s'",
			b.table().TypeName(from), b.table().TypeName(to)).Emit()
	}
	return out
}

// bindInitializer binds an initialiser against the declared type. Brace
// lists take the declared type; other expressions must convert to it.
func (b *Binder) bindInitializer(e syntax.Expression, target symbols.SymbolID) bound.Expression {
	list, ok := e.(*syntax.InitializerList)
	if !ok {
		init := b.bindExpression(e)
		b.checkConversion(init, target, e.Span())
		return init
	}
	return bindNode(b, list, func(n *syntax.InitializerList) *bound.InitializerList {
		out := &bound.InitializerList{ExprBase: bound.Typed(n, target)}
		elemTarget := b.errorType()
		if info := b.table().TypeInfo(target); info != nil && info.Kind == symbols.TypeArray {
			elemTarget = info.Element
		}
		out.Elements = make([]bound.Expression, 0, len(n.Elements))
		for _, el := range n.Elements {
			if syntax.IsNil(el) {
				continue
			}
			out.Elements = append(out.Elements, b.bindInitializer(el, elemTarget))
		}
		b.checkInitializerComponents(n, out, target)
		return out
	})
}

// checkInitializerComponents compares the flattened component count of a
// brace list with a numeric target.
func (b *Binder) checkInitializerComponents(n *syntax.InitializerList, list *bound.InitializerList, target symbols.SymbolID) {
	info := b.table().TypeInfo(target)
	if !info.IsNumeric() {
		return
	}
	total := 0
	for _, el := range list.Elements {
		ei := b.table().TypeInfo(el.Type())
		if ei.IsError() {
			return
		}
		total += ei.Components()
	}
	if total != info.Components() {
		b.errorf(diag.SemaCannotConvert, n.Span(), "initializer of %d components does not match type '%s' of %d components",
			total, b.table().TypeName(target), info.Components()).Emit()
	}
}

func (b *Binder) bindElementAccess(n *syntax.ElementAccess) *bound.ElementAccess {
	target := b.bindExpression(n.Target)
	index := b.bindExpression(n.Index)
	typ := b.errorType()
	info := b.table().TypeInfo(target.Type())
	switch {
	case info.IsError():
	case info.Kind == symbols.TypeArray:
		typ = info.Element
	case info.Kind == symbols.TypeVector:
		typ = b.builtins().Scalar(info.Scalar)
	case info.Kind == symbols.TypeMatrix:
		typ = b.builtins().Vector(info.Scalar, int(info.Cols))
	default:
		b.errorf(diag.SemaInvalidSubscript, n.Span(),
			"array, matrix, vector, or indexable object type expected in index expression, got '%s'",
			b.table().TypeName(target.Type())).Emit()
	}
	if ii := b.table().TypeInfo(index.Type()); !ii.IsError() && (!ii.IsNumeric() || ii.Components() != 1) {
		b.errorf(diag.SemaInvalidSubscript, n.Index.Span(), "index expression must be a scalar, got '%s'",
			b.table().TypeName(index.Type())).Emit()
	}
	return &bound.ElementAccess{ExprBase: bound.Typed(n, typ), Target: target, Index: index}
}

// bindNumericConstructor checks that the arguments supply exactly as many
// components as the constructed type has.
func (b *Binder) bindNumericConstructor(n *syntax.NumericConstructor) *bound.NumericConstructorInvocation {
	ref := b.bindType(n.Type)
	typ := b.errorType()
	if ref != nil {
		typ = ref.Type()
	}
	out := &bound.NumericConstructorInvocation{ExprBase: bound.Typed(n, typ), TypeRef: ref}
	out.Arguments = make([]bound.Expression, 0, len(n.Arguments))
	total := 0
	failed := false
	for _, a := range n.Arguments {
		arg := b.bindExpression(a)
		out.Arguments = append(out.Arguments, arg)
		ai := b.table().TypeInfo(arg.Type())
		switch {
		case ai.IsError():
			failed = true
		case !ai.IsNumeric():
			failed = true
			b.errorf(diag.SemaCannotConvert, a.Span(), "cannot convert from '%s' to a numeric component",
				b.table().TypeName(arg.Type())).Emit()
		default:
			total += ai.Components()
		}
	}
	info := b.table().TypeInfo(typ)
	if !failed && info.IsNumeric() && total != info.Components() {
		b.errorf(diag.SemaConstructorArgCount, n.Span(),
			"'%s': incorrect number of arguments to numeric-type constructor, expected %d components, got %d",
			b.table().TypeName(typ), info.Components(), total).Emit()
	}
	return out
}

// bindCompile binds "compile profile Entry(args)" from a technique pass.
func (b *Binder) bindCompile(n *syntax.Compile) *bound.Compile {
	if !knownProfile(n.Profile) {
		b.errorf(diag.SemaUnknownCompileTarget, n.Span(), "'%s': unknown compile target", n.Profile).Emit()
	}
	out := &bound.Compile{Profile: n.Profile}
	if n.Invocation != nil {
		out.Invocation = bindNode(b, n.Invocation, func(inv *syntax.Invocation) *bound.FunctionInvocation {
			return b.bindInvocation(inv, true)
		})
	}
	typ := b.errorType()
	if out.Invocation != nil && out.Invocation.Function.IsValid() {
		typ = out.Invocation.Type()
	}
	out.ExprBase = bound.Typed(n, typ)
	return out
}

var profileStages = []string{"vs", "ps", "gs", "hs", "ds", "cs", "lib"}

var profileVersions = map[string]bool{
	"1_1": true, "2_0": true, "2_a": true, "2_b": true, "3_0": true,
	"4_0": true, "4_0_level_9_1": true, "4_0_level_9_3": true, "4_1": true,
	"5_0": true, "5_1": true, "6_0": true, "6_1": true, "6_2": true,
	"6_3": true, "6_4": true, "6_5": true, "6_6": true, "6_7": true,
}

func knownProfile(p string) bool {
	stage, version, ok := strings.Cut(strings.ToLower(p), "_")
	if !ok {
		return false
	}
	for _, s := range profileStages {
		if s == stage {
			return profileVersions[version]
		}
	}
	return false
}
