package symbols

// Builtins indexes the intrinsic type singletons of the shared table.
type Builtins struct {
	Error  SymbolID
	Void   SymbolID
	String SymbolID

	scalars  [numScalarKinds]SymbolID
	vectors  [numScalarKinds][5]SymbolID
	matrices [numScalarKinds][5][5]SymbolID
	objects  [numObjectKinds]SymbolID

	semantics ScopeID
}

// Scalar returns the scalar type of kind k.
func (b *Builtins) Scalar(k ScalarKind) SymbolID {
	if k >= numScalarKinds {
		return b.Error
	}
	return b.scalars[k]
}

// Vector returns the vector type kN for n in 1..4.
func (b *Builtins) Vector(k ScalarKind, n int) SymbolID {
	if k >= numScalarKinds || n < 1 || n > 4 {
		return b.Error
	}
	return b.vectors[k][n]
}

// Matrix returns the matrix type kRxC for r, c in 1..4.
func (b *Builtins) Matrix(k ScalarKind, r, c int) SymbolID {
	if k >= numScalarKinds || r < 1 || r > 4 || c < 1 || c > 4 {
		return b.Error
	}
	return b.matrices[k][r][c]
}

func (b *Builtins) Object(k ObjectKind) SymbolID {
	if k >= numObjectKinds {
		return b.Error
	}
	return b.objects[k]
}

// Numeric returns the type of the given kind and shape with scalar k.
func (b *Builtins) Numeric(kind TypeKind, k ScalarKind, rows, cols int) SymbolID {
	switch kind {
	case TypeScalar:
		return b.Scalar(k)
	case TypeVector:
		return b.Vector(k, cols)
	case TypeMatrix:
		return b.Matrix(k, rows, cols)
	}
	return b.Error
}

// WithScalar returns a numeric type with the shape of t and scalar k.
func (b *Builtins) WithScalar(t *TypeInfo, k ScalarKind) SymbolID {
	if !t.IsNumeric() {
		return b.Error
	}
	return b.Numeric(t.Kind, k, int(t.Rows), int(t.Cols))
}
