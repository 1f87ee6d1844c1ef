package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// bindType binds a type reference. The result's Type() is the referenced
// type, or the error type when the name does not denote one.
func (b *Binder) bindType(t syntax.Type) bound.Expression {
	if syntax.IsNil(t) {
		return nil
	}
	// Method return and parameter types may already be bound by a lazy
	// signature.
	if n, ok := b.shared.BoundFromSyntax[t]; ok {
		return n.(bound.Expression)
	}
	switch n := t.(type) {
	case *syntax.PredefinedType:
		return bindNode(b, n, b.bindPredefinedType)
	case *syntax.GenericVectorType:
		return bindNode(b, n, b.bindGenericVectorType)
	case *syntax.GenericMatrixType:
		return bindNode(b, n, b.bindGenericMatrixType)
	case *syntax.IdentifierName:
		return bindNode(b, n, func(n *syntax.IdentifierName) bound.Expression {
			return b.typeByName(n, n.Name, b.table().Lookup(b.scope, n.Name))
		})
	case *syntax.QualifiedName:
		return bindNode(b, n, func(n *syntax.QualifiedName) bound.Expression {
			return b.typeByName(n, n.Right.Name, b.resolveQualified(n))
		})
	default:
		panic("binder: unsupported type syntax " + t.Kind().String())
	}
}

func (b *Binder) bindPredefinedType(n *syntax.PredefinedType) bound.Expression {
	if !syntax.IsNil(n.Argument) {
		// Texture2D<float4>: the element type is checked but not tracked.
		b.bindType(n.Argument)
	}
	ids := b.table().LookupLocal(b.table().IntrinsicScope(), n.Name)
	for _, id := range ids {
		if sym := b.table().Symbol(id); sym != nil && sym.Kind == symbols.SymbolType {
			switch n.Name {
			case "vector":
				return &bound.IntrinsicGenericVectorType{ExprBase: bound.Typed(n, id)}
			case "matrix":
				return &bound.IntrinsicGenericMatrixType{ExprBase: bound.Typed(n, id)}
			}
			return b.typeRef(n, id)
		}
	}
	b.errorf(diag.SemaNotAType, n.Span(), "'%s': unknown intrinsic type", n.Name).Emit()
	return &bound.Error{ExprBase: bound.Typed(n, b.errorType())}
}

func (b *Binder) elementScalar(el *syntax.PredefinedType) (symbols.ScalarKind, bool) {
	if el == nil {
		return symbols.ScalarFloat, true
	}
	ref := b.bindType(el)
	info := b.table().TypeInfo(ref.Type())
	if info == nil || info.Kind != symbols.TypeScalar {
		if !info.IsError() {
			b.errorf(diag.SemaNotAType, el.Span(), "'%s': vector and matrix elements must be scalar", el.Name).Emit()
		}
		return symbols.ScalarNone, false
	}
	return info.Scalar, true
}

func (b *Binder) bindGenericVectorType(n *syntax.GenericVectorType) bound.Expression {
	k, ok := b.elementScalar(n.Element)
	id := b.errorType()
	if ok {
		id = b.builtins().Vector(k, n.Size)
		if id == b.errorType() {
			b.errorf(diag.SemaNotAType, n.Span(), "vector dimension must be between 1 and 4, got %d", n.Size).Emit()
		}
	}
	return &bound.IntrinsicGenericVectorType{ExprBase: bound.Typed(n, id)}
}

func (b *Binder) bindGenericMatrixType(n *syntax.GenericMatrixType) bound.Expression {
	k, ok := b.elementScalar(n.Element)
	id := b.errorType()
	if ok {
		id = b.builtins().Matrix(k, n.Rows, n.Cols)
		if id == b.errorType() {
			b.errorf(diag.SemaNotAType, n.Span(), "matrix dimensions must be between 1 and 4, got %dx%d", n.Rows, n.Cols).Emit()
		}
	}
	return &bound.IntrinsicGenericMatrixType{ExprBase: bound.Typed(n, id)}
}

// typeByName picks the first type symbol among ids.
func (b *Binder) typeByName(n syntax.Node, name string, ids []symbols.SymbolID) bound.Expression {
	if len(ids) == 0 {
		b.errorf(diag.SemaUndeclaredIdentifier, n.Span(), "undeclared identifier '%s'", name).Emit()
		return &bound.Error{ExprBase: bound.Typed(n, b.errorType())}
	}
	for _, id := range ids {
		if sym := b.table().Symbol(id); sym != nil && sym.Kind == symbols.SymbolType {
			return b.typeRef(n, id)
		}
	}
	b.errorf(diag.SemaNotAType, n.Span(), "'%s' is not a type", name).Emit()
	return &bound.Error{ExprBase: bound.Typed(n, b.errorType())}
}

// typeRef builds the reference node matching the kind of type id.
func (b *Binder) typeRef(n syntax.Node, id symbols.SymbolID) bound.Expression {
	base := bound.Typed(n, id)
	info := b.table().TypeInfo(id)
	if info == nil {
		return &bound.Error{ExprBase: bound.Typed(n, b.errorType())}
	}
	switch info.Kind {
	case symbols.TypeScalar:
		return &bound.IntrinsicScalarType{ExprBase: base}
	case symbols.TypeVector:
		return &bound.IntrinsicVectorType{ExprBase: base}
	case symbols.TypeMatrix:
		return &bound.IntrinsicMatrixType{ExprBase: base}
	case symbols.TypeObject:
		return &bound.IntrinsicObjectType{ExprBase: base}
	case symbols.TypeVoid, symbols.TypeString:
		return &bound.IntrinsicKeywordType{ExprBase: base}
	case symbols.TypeStruct, symbols.TypeClass, symbols.TypeArray:
		return &bound.StructTypeReference{ExprBase: base}
	default:
		return &bound.Error{ExprBase: base}
	}
}

// arrayOf wraps elem in one array level per size, outermost first.
func (b *Binder) arrayOf(elem symbols.SymbolID, sizes []bound.Expression) symbols.SymbolID {
	t := elem
	for i := len(sizes) - 1; i >= 0; i-- {
		t = b.table().ArrayType(t, arrayLength(sizes[i]))
	}
	return t
}
