package symbols

// TypeKind classifies type symbols.
type TypeKind uint8

const (
	// TypeError is the sentinel produced when a type cannot be determined.
	TypeError TypeKind = iota
	TypeVoid
	TypeScalar
	TypeVector
	TypeMatrix
	TypeObject
	TypeStruct
	TypeClass
	TypeString
	TypeArray
)

// ScalarKind enumerates HLSL scalar types.
type ScalarKind uint8

const (
	ScalarNone ScalarKind = iota
	ScalarBool
	ScalarInt
	ScalarUint
	ScalarHalf
	ScalarFloat
	ScalarDouble
	ScalarMin16Float
	ScalarMin10Float
	ScalarMin16Int
	ScalarMin12Int
	ScalarMin16Uint
	ScalarInt64
	ScalarUint64

	numScalarKinds
)

var scalarNames = [numScalarKinds]string{
	ScalarBool:       "bool",
	ScalarInt:        "int",
	ScalarUint:       "uint",
	ScalarHalf:       "half",
	ScalarFloat:      "float",
	ScalarDouble:     "double",
	ScalarMin16Float: "min16float",
	ScalarMin10Float: "min10float",
	ScalarMin16Int:   "min16int",
	ScalarMin12Int:   "min12int",
	ScalarMin16Uint:  "min16uint",
	ScalarInt64:      "int64_t",
	ScalarUint64:     "uint64_t",
}

func (k ScalarKind) String() string {
	if k < numScalarKinds {
		return scalarNames[k]
	}
	return "?"
}

// ScalarClass groups scalar kinds with the same conversion behaviour.
type ScalarClass uint8

const (
	ClassNone ScalarClass = iota
	ClassBool
	ClassSigned
	ClassUnsigned
	ClassFloat
)

func (k ScalarKind) Class() ScalarClass {
	switch k {
	case ScalarBool:
		return ClassBool
	case ScalarInt, ScalarMin16Int, ScalarMin12Int, ScalarInt64:
		return ClassSigned
	case ScalarUint, ScalarMin16Uint, ScalarUint64:
		return ClassUnsigned
	case ScalarHalf, ScalarFloat, ScalarDouble, ScalarMin16Float, ScalarMin10Float:
		return ClassFloat
	}
	return ClassNone
}

// Bits is the nominal precision used to order conversions.
func (k ScalarKind) Bits() int {
	switch k {
	case ScalarBool:
		return 1
	case ScalarMin10Float:
		return 10
	case ScalarMin12Int:
		return 12
	case ScalarHalf, ScalarMin16Float, ScalarMin16Int, ScalarMin16Uint:
		return 16
	case ScalarInt, ScalarUint, ScalarFloat:
		return 32
	case ScalarDouble, ScalarInt64, ScalarUint64:
		return 64
	}
	return 0
}

// ObjectKind enumerates the intrinsic object types.
type ObjectKind uint8

const (
	ObjectNone ObjectKind = iota
	ObjectTexture1D
	ObjectTexture2D
	ObjectTexture3D
	ObjectTextureCube
	ObjectSamplerState
	ObjectSamplerComparisonState

	numObjectKinds
)

var objectNames = [numObjectKinds]string{
	ObjectTexture1D:              "Texture1D",
	ObjectTexture2D:              "Texture2D",
	ObjectTexture3D:              "Texture3D",
	ObjectTextureCube:            "TextureCube",
	ObjectSamplerState:           "SamplerState",
	ObjectSamplerComparisonState: "SamplerComparisonState",
}

func (k ObjectKind) String() string {
	if k < numObjectKinds {
		return objectNames[k]
	}
	return "?"
}

// TypeInfo describes a type symbol.
type TypeInfo struct {
	Kind   TypeKind
	Scalar ScalarKind
	// Rows and Cols give the shape of numeric types: scalars are 1x1 and
	// vectors are 1xN.
	Rows   uint8
	Cols   uint8
	Object ObjectKind
	// Element is the scalar type of vectors and matrices, or the element
	// type of arrays.
	Element SymbolID
	Length  uint32
}

// IsNumeric reports whether t is a scalar, vector or matrix.
func (t *TypeInfo) IsNumeric() bool {
	if t == nil {
		return false
	}
	switch t.Kind {
	case TypeScalar, TypeVector, TypeMatrix:
		return true
	}
	return false
}

func (t *TypeInfo) IsError() bool { return t == nil || t.Kind == TypeError }

// Components is the number of scalar components of a numeric type.
func (t *TypeInfo) Components() int {
	if !t.IsNumeric() {
		return 0
	}
	return int(t.Rows) * int(t.Cols)
}
