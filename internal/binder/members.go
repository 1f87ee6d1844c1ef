package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// bindFieldAccess binds "x.name": a field of a struct or class, or a
// swizzle of a scalar, vector or matrix.
func (b *Binder) bindFieldAccess(n *syntax.FieldAccess) bound.Expression {
	target := b.bindExpression(n.Target)
	name := ""
	if n.Name != nil {
		name = n.Name.Name
	}
	fail := func() bound.Expression {
		return &bound.FieldExpression{ExprBase: bound.Typed(n, b.errorType()), Target: target}
	}

	t := b.table()
	typ := t.Symbol(target.Type())
	if typ == nil || typ.TypeInfo.IsError() {
		return fail()
	}
	info := typ.TypeInfo
	switch info.Kind {
	case symbols.TypeStruct, symbols.TypeClass:
		for _, id := range t.LookupLocal(typ.Members, name) {
			if f := t.Symbol(id); f != nil && f.Kind == symbols.SymbolField {
				return &bound.FieldExpression{ExprBase: bound.Typed(n, f.Type), Target: target, Field: id}
			}
		}
	case symbols.TypeScalar, symbols.TypeVector:
		if idx, ok := vectorSwizzle(name, int(info.Cols)); ok {
			return &bound.SwizzleExpression{
				ExprBase: bound.Typed(n, b.swizzleType(info.Scalar, len(idx))),
				Target:   target,
				Swizzle:  name,
			}
		}
	case symbols.TypeMatrix:
		if idx, ok := matrixSwizzle(name, int(info.Rows), int(info.Cols)); ok {
			return &bound.SwizzleExpression{
				ExprBase: bound.Typed(n, b.swizzleType(info.Scalar, len(idx))),
				Target:   target,
				Swizzle:  name,
			}
		}
	}
	b.errorf(diag.SemaInvalidMember, spanOf(n.Name), "invalid subscript '%s'", name).Emit()
	return fail()
}

func (b *Binder) swizzleType(k symbols.ScalarKind, n int) symbols.SymbolID {
	if n == 1 {
		return b.builtins().Scalar(k)
	}
	return b.builtins().Vector(k, n)
}

// vectorSwizzle maps "xyzw" or "rgba" selectors to component indices. The
// two sets cannot be mixed.
func vectorSwizzle(s string, size int) ([]int, bool) {
	if len(s) == 0 || len(s) > 4 {
		return nil, false
	}
	const xyzw, rgba = "xyzw", "rgba"
	set := ""
	out := make([]int, 0, len(s))
	for i := range len(s) {
		c := s[i]
		idx := -1
		for _, cand := range []string{xyzw, rgba} {
			for j := range len(cand) {
				if cand[j] == c {
					if set != "" && set != cand {
						return nil, false
					}
					set, idx = cand, j
				}
			}
		}
		if idx < 0 || idx >= size {
			return nil, false
		}
		out = append(out, idx)
	}
	return out, true
}

// matrixSwizzle maps "_m00_m11" (zero-based) or "_11_22" (one-based)
// selectors to row*4+col indices.
func matrixSwizzle(s string, rows, cols int) ([]int, bool) {
	out := make([]int, 0, 4)
	for len(s) > 0 {
		if s[0] != '_' || len(out) == 4 {
			return nil, false
		}
		base := 1
		s = s[1:]
		if len(s) > 0 && s[0] == 'm' {
			base = 0
			s = s[1:]
		}
		if len(s) < 2 {
			return nil, false
		}
		r, c := int(s[0]-'0')-base, int(s[1]-'0')-base
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, false
		}
		out = append(out, r*4+c)
		s = s[2:]
	}
	return out, len(out) > 0
}

func repeats(idx []int) bool {
	seen := 0
	for _, i := range idx {
		if seen&(1<<i) != 0 {
			return true
		}
		seen |= 1 << i
	}
	return false
}

// isLValue reports whether e denotes writable storage.
func isLValue(t *symbols.Table, e bound.Expression) bool {
	switch n := e.(type) {
	case *bound.VariableExpression:
		sym := t.Symbol(n.Symbol)
		return sym != nil && sym.Flags&symbols.SymbolFlagConst == 0
	case *bound.FieldExpression:
		return n.Field.IsValid() && isLValue(t, n.Target)
	case *bound.ElementAccess:
		return isLValue(t, n.Target)
	case *bound.Parenthesized:
		return isLValue(t, n.Expression)
	case *bound.SwizzleExpression:
		if !isLValue(t, n.Target) {
			return false
		}
		info := t.TypeInfo(n.Target.Type())
		var (
			idx []int
			ok  bool
		)
		if info != nil && info.Kind == symbols.TypeMatrix {
			idx, ok = matrixSwizzle(n.Swizzle, int(info.Rows), int(info.Cols))
		} else if info != nil {
			idx, ok = vectorSwizzle(n.Swizzle, int(info.Cols))
		}
		return ok && !repeats(idx)
	}
	return false
}
