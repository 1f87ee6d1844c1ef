package signatures

import (
	"hlsltools/internal/symbols"
)

// NumConversionBits is the width of each category's field in a
// ConversionType. Summing fewer than 1<<NumConversionBits contributions of
// one category never carries into the next one.
const NumConversionBits = 6

// MaxArguments is the number of arguments that can be scored without a field
// overflowing.
const MaxArguments = 1 << NumConversionBits

// ConversionType is a bit set of conversion categories. Each category owns
// one NumConversionBits-wide field, cheaper categories in lower fields, so
// comparing sums as integers compares the most expensive category first.
type ConversionType uint64

const (
	Identity ConversionType = 0

	Promotion ConversionType = 1 << ((iota - 1) * NumConversionBits)
	SignChange
	IntToFloat
	Narrowing
	FloatToInt
	BoolConversion
	ScalarSplat
	DimensionTruncation
)

func (c ConversionType) Has(cat ConversionType) bool {
	mask := cat * (MaxArguments - 1)
	return c&mask != 0
}

func (c ConversionType) String() string {
	if c == Identity {
		return "identity"
	}
	names := []struct {
		cat  ConversionType
		name string
	}{
		{Promotion, "promotion"},
		{SignChange, "sign change"},
		{IntToFloat, "int to float"},
		{Narrowing, "narrowing"},
		{FloatToInt, "float to int"},
		{BoolConversion, "bool conversion"},
		{ScalarSplat, "scalar splat"},
		{DimensionTruncation, "dimension truncation"},
	}
	out := ""
	for _, n := range names {
		if c.Has(n.cat) {
			if out != "" {
				out += "+"
			}
			out += n.name
		}
	}
	return out
}

// Conversion describes whether an argument adapts to a parameter and at
// what cost.
type Conversion struct {
	Exists bool
	Type   ConversionType
}

var none = Conversion{}

func exists(t ConversionType) Conversion { return Conversion{Exists: true, Type: t} }

// Argument is one call-site argument.
type Argument struct {
	Type symbols.SymbolID
	// Writable is true when the argument is an l-value that out and inout
	// parameters may store into.
	Writable bool
	// Literal marks an unsuffixed integer literal. It reaches unsigned
	// parameters without a sign change.
	Literal bool
}

// Args builds read-only arguments from types.
func Args(types ...symbols.SymbolID) []Argument {
	out := make([]Argument, len(types))
	for i, t := range types {
		out[i] = Argument{Type: t}
	}
	return out
}

// Classify computes the conversion of arg to a parameter of type param
// passed in direction dir. It is pure. Each category is counted at most once
// per argument, so scores of fewer than MaxArguments arguments never carry.
func Classify(types symbols.Lookup, arg Argument, param symbols.SymbolID, dir symbols.Direction) Conversion {
	var c Conversion
	switch dir {
	case symbols.DirOut:
		if !arg.Writable {
			return none
		}
		c = Implicit(types, param, arg.Type)
	case symbols.DirInOut:
		if !arg.Writable {
			return none
		}
		to := Implicit(types, arg.Type, param)
		back := Implicit(types, param, arg.Type)
		if !to.Exists || !back.Exists {
			return none
		}
		c = exists(saturate(to.Type) | saturate(back.Type))
	default:
		c = Implicit(types, arg.Type, param)
		if arg.Literal && c.Exists {
			c.Type &^= SignChange * (MaxArguments - 1)
		}
	}
	if !c.Exists {
		return none
	}
	return exists(saturate(c.Type))
}

// saturate caps every category field at a single contribution.
func saturate(c ConversionType) ConversionType {
	var out ConversionType
	for cat := Promotion; cat <= DimensionTruncation; cat <<= NumConversionBits {
		if c.Has(cat) {
			out |= cat
		}
	}
	return out
}

// Implicit classifies the implicit conversion from one type to another.
func Implicit(types symbols.Lookup, from, to symbols.SymbolID) Conversion {
	if from == to && from.IsValid() {
		if info := typeInfo(types, from); info != nil && info.Kind == symbols.TypeVoid {
			return none
		}
		return exists(Identity)
	}
	fi, ti := typeInfo(types, from), typeInfo(types, to)
	if fi == nil || ti == nil {
		return none
	}
	if fi.Kind == symbols.TypeError || ti.Kind == symbols.TypeError {
		return exists(Identity)
	}
	if !fi.IsNumeric() || !ti.IsNumeric() {
		if fi.Kind == symbols.TypeArray && ti.Kind == symbols.TypeArray && fi.Length == ti.Length {
			return Implicit(types, fi.Element, ti.Element)
		}
		return none
	}

	shape, ok := shapeConversion(fi, ti)
	if !ok {
		return none
	}
	return exists(shape + scalarConversion(fi.Scalar, ti.Scalar))
}

func typeInfo(types symbols.Lookup, id symbols.SymbolID) *symbols.TypeInfo {
	sym := types.Symbol(id)
	if sym == nil || sym.Kind != symbols.SymbolType {
		return nil
	}
	return sym.TypeInfo
}

func shapeConversion(from, to *symbols.TypeInfo) (ConversionType, bool) {
	switch from.Kind {
	case symbols.TypeScalar:
		switch {
		case to.Kind == symbols.TypeScalar:
			return Identity, true
		case to.Components() == 1:
			return Promotion, true
		default:
			return ScalarSplat, true
		}
	case symbols.TypeVector:
		switch to.Kind {
		case symbols.TypeScalar:
			if from.Cols == 1 {
				return Promotion, true
			}
			return DimensionTruncation, true
		case symbols.TypeVector:
			switch {
			case from.Cols == to.Cols:
				return Identity, true
			case from.Cols > to.Cols:
				return DimensionTruncation, true
			}
		case symbols.TypeMatrix:
			if from.Cols == to.Rows*to.Cols && (to.Rows == 1 || to.Cols == 1) {
				return Promotion, true
			}
		}
	case symbols.TypeMatrix:
		switch to.Kind {
		case symbols.TypeScalar:
			if from.Components() == 1 {
				return Promotion, true
			}
			return DimensionTruncation, true
		case symbols.TypeVector:
			if (from.Rows == 1 || from.Cols == 1) && from.Components() >= int(to.Cols) {
				if from.Components() == int(to.Cols) {
					return Promotion, true
				}
				return DimensionTruncation, true
			}
		case symbols.TypeMatrix:
			switch {
			case from.Rows == to.Rows && from.Cols == to.Cols:
				return Identity, true
			case from.Rows >= to.Rows && from.Cols >= to.Cols:
				return DimensionTruncation, true
			}
		}
	}
	return 0, false
}

func scalarConversion(from, to symbols.ScalarKind) ConversionType {
	if from == to {
		return Identity
	}
	fc, tc := from.Class(), to.Class()
	if fc == symbols.ClassBool || tc == symbols.ClassBool {
		return BoolConversion
	}
	var c ConversionType
	switch {
	case fc == symbols.ClassFloat && tc == symbols.ClassFloat:
		c = widthChange(from, to)
		if c == Identity {
			// same width, different flavour (half vs min16float)
			c = Promotion
		}
	case tc == symbols.ClassFloat:
		c = IntToFloat
		switch {
		case to.Bits() < 32:
			c += Narrowing
		case to.Bits() > 32:
			c += Promotion
		}
	case fc == symbols.ClassFloat:
		c = FloatToInt
	default:
		c = widthChange(from, to)
		if fc != tc {
			c += SignChange
		}
	}
	return c
}

func widthChange(from, to symbols.ScalarKind) ConversionType {
	switch {
	case to.Bits() > from.Bits():
		return Promotion
	case to.Bits() < from.Bits():
		return Narrowing
	}
	return Identity
}
