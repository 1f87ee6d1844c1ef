package binder

import (
	"hlsltools/internal/bound"
	"hlsltools/internal/diag"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

// scalarRank orders scalar kinds for mixed arithmetic; the higher rank wins.
var scalarRank = map[symbols.ScalarKind]int{
	symbols.ScalarBool:       1,
	symbols.ScalarMin12Int:   2,
	symbols.ScalarMin16Int:   3,
	symbols.ScalarMin16Uint:  4,
	symbols.ScalarInt:        5,
	symbols.ScalarUint:       6,
	symbols.ScalarInt64:      7,
	symbols.ScalarUint64:     8,
	symbols.ScalarMin10Float: 9,
	symbols.ScalarMin16Float: 10,
	symbols.ScalarHalf:       11,
	symbols.ScalarFloat:      12,
	symbols.ScalarDouble:     13,
}

func (b *Binder) bindBinary(n *syntax.Binary) *bound.Binary {
	left := b.bindExpression(n.Left)
	right := b.bindExpression(n.Right)
	return &bound.Binary{
		ExprBase: bound.Typed(n, b.binaryType(n, n.Op, left.Type(), right.Type())),
		Op:       n.Op,
		Left:     left,
		Right:    right,
	}
}

// binaryType computes the result type of "l op r", reporting operands the
// operator does not accept.
func (b *Binder) binaryType(n syntax.Node, op syntax.Operator, l, r symbols.SymbolID) symbols.SymbolID {
	t := b.table()
	li, ri := t.TypeInfo(l), t.TypeInfo(r)
	if li.IsError() || ri.IsError() {
		return b.errorType()
	}
	if !li.IsNumeric() || !ri.IsNumeric() {
		b.invalidOperands(n, op, l, r)
		return b.errorType()
	}
	if op.IsBitwise() && (li.Scalar.Class() == symbols.ClassFloat || ri.Scalar.Class() == symbols.ClassFloat) {
		b.invalidOperands(n, op, l, r)
		return b.errorType()
	}

	common := b.commonType(n, op, l, r)
	ci := t.TypeInfo(common)
	switch {
	case ci.IsError():
		return common
	case op.IsComparison() || op.IsLogical():
		return b.builtins().WithScalar(ci, symbols.ScalarBool)
	case ci.Scalar == symbols.ScalarBool:
		return b.builtins().WithScalar(ci, symbols.ScalarInt)
	}
	return common
}

func (b *Binder) invalidOperands(n syntax.Node, op syntax.Operator, l, r symbols.SymbolID) {
	b.errorf(diag.SemaInvalidOperands, spanOf(n), "'%s': invalid operand types '%s' and '%s'",
		op, b.table().TypeName(l), b.table().TypeName(r)).Emit()
}

// commonType is the type both operands convert to: the smaller of the two
// shapes, a scalar taking the other's shape, and the higher ranked scalar.
// Shrinking a shape warns about truncation.
func (b *Binder) commonType(n syntax.Node, op syntax.Operator, l, r symbols.SymbolID) symbols.SymbolID {
	t := b.table()
	li, ri := t.TypeInfo(l), t.TypeInfo(r)
	if li.IsError() || ri.IsError() {
		return b.errorType()
	}
	if !li.IsNumeric() || !ri.IsNumeric() {
		if l == r {
			return l
		}
		b.invalidOperands(n, op, l, r)
		return b.errorType()
	}

	k := li.Scalar
	if scalarRank[ri.Scalar] > scalarRank[k] {
		k = ri.Scalar
	}

	switch {
	case li.Components() == 1:
		return b.builtins().WithScalar(ri, k)
	case ri.Components() == 1:
		return b.builtins().WithScalar(li, k)
	case li.Kind == symbols.TypeVector && ri.Kind == symbols.TypeVector:
		cols := min(li.Cols, ri.Cols)
		if li.Cols != ri.Cols {
			b.truncation(spanOf(n))
		}
		return b.builtins().Vector(k, int(cols))
	case li.Kind == symbols.TypeMatrix && ri.Kind == symbols.TypeMatrix:
		rows, cols := min(li.Rows, ri.Rows), min(li.Cols, ri.Cols)
		if li.Rows != ri.Rows || li.Cols != ri.Cols {
			b.truncation(spanOf(n))
		}
		return b.builtins().Matrix(k, int(rows), int(cols))
	}

	// Vector against matrix works only for single row or column matrices.
	vec, mat := li, ri
	if vec.Kind == symbols.TypeMatrix {
		vec, mat = ri, li
	}
	if mat.Rows != 1 && mat.Cols != 1 {
		b.invalidOperands(n, op, l, r)
		return b.errorType()
	}
	size := min(int(vec.Cols), mat.Components())
	if int(vec.Cols) != mat.Components() {
		b.truncation(spanOf(n))
	}
	return b.builtins().Vector(k, size)
}

func (b *Binder) bindUnary(n syntax.Node, op syntax.Operator, operand syntax.Expression, postfix bool) *bound.Unary {
	e := b.bindExpression(operand)
	out := &bound.Unary{Op: op, Postfix: postfix, Operand: e}

	typ := e.Type()
	info := b.table().TypeInfo(typ)
	switch {
	case info.IsError():
		typ = b.errorType()
	case !info.IsNumeric():
		b.errorf(diag.SemaInvalidOperands, spanOf(n), "'%s': invalid operand type '%s'", op, b.table().TypeName(typ)).Emit()
		typ = b.errorType()
	case op == syntax.OpInc || op == syntax.OpDec:
		if !isLValue(b.table(), e) {
			b.errorf(diag.SemaOutArgNotLValue, spanOf(n), "'%s': l-value specifies const object", op).Emit()
		}
	case op == syntax.OpNot:
		typ = b.builtins().WithScalar(info, symbols.ScalarBool)
	case op == syntax.OpBitNot:
		if info.Scalar.Class() == symbols.ClassFloat {
			b.errorf(diag.SemaInvalidOperands, spanOf(n), "'%s': invalid operand type '%s'", op, b.table().TypeName(typ)).Emit()
			typ = b.errorType()
		}
	case info.Scalar == symbols.ScalarBool:
		typ = b.builtins().WithScalar(info, symbols.ScalarInt)
	}
	out.ExprBase = bound.Typed(n, typ)
	return out
}

// bindAssignment binds "l = r" and compound assignments. The result has
// the type of the left side.
func (b *Binder) bindAssignment(n *syntax.Assignment) *bound.Assignment {
	left := b.bindExpression(n.Left)
	right := b.bindExpression(n.Right)
	out := &bound.Assignment{ExprBase: bound.Typed(n, left.Type()), Op: n.Op, Left: left, Right: right}

	if b.table().TypeInfo(left.Type()).IsError() {
		return out
	}
	if !isLValue(b.table(), left) {
		b.errorf(diag.SemaOutArgNotLValue, spanOf(n.Left), "l-value specifies const object").Emit()
	}
	if n.Op == syntax.OpAssign {
		b.checkConversion(right, left.Type(), spanOf(n.Right))
		return out
	}
	if res := b.binaryType(n, n.Op, left.Type(), right.Type()); !b.table().TypeInfo(res).IsError() {
		b.checkConversionType(res, left.Type(), spanOf(n.Right))
	}
	return out
}
