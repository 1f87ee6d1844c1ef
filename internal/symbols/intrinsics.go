package symbols

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"hlsltools/internal/source"
)

var (
	intrinsicTable *Table
	intrinsicOnce  sync.Once
)

// Intrinsics returns the process-wide table of intrinsic types, functions,
// object methods and semantics. It is built once and never written again,
// so any number of compilations may read it concurrently.
func Intrinsics() *Table {
	intrinsicOnce.Do(func() {
		intrinsicTable = buildIntrinsics()
	})
	return intrinsicTable
}

type intrinsicBuilder struct {
	t *Table
	b *Builtins
}

type param struct {
	name string
	typ  SymbolID
	dir  Direction
}

func in(name string, typ SymbolID) param  { return param{name: name, typ: typ} }
func out(name string, typ SymbolID) param { return param{name: name, typ: typ, dir: DirOut} }

func buildIntrinsics() *Table {
	t := newTable(Hints{Scopes: 16, Symbols: 4096})
	t.builtins = &Builtins{}
	t.Root = t.NewScope(ScopeIntrinsic, NoScopeID, NoSymbolID, nil, source.Span{})
	t.builtins.semantics = t.NewScope(ScopeSemantics, NoScopeID, NoSymbolID, nil, source.Span{})

	ib := &intrinsicBuilder{t: t, b: t.builtins}
	ib.types()
	ib.objects()
	ib.functions()
	ib.semantics()

	t.frozen = true
	return t
}

func (ib *intrinsicBuilder) typ(name string, info TypeInfo, declare bool) SymbolID {
	id := ib.t.NewSymbol(&Symbol{
		Kind:     SymbolType,
		Name:     name,
		Flags:    SymbolFlagIntrinsic,
		Scope:    ib.t.Root,
		TypeInfo: &info,
	})
	if declare {
		ib.t.Declare(ib.t.Root, id)
	}
	return id
}

func (ib *intrinsicBuilder) types() {
	b := ib.b
	b.Error = ib.typ("<error>", TypeInfo{Kind: TypeError}, false)
	b.Void = ib.typ("void", TypeInfo{Kind: TypeVoid}, true)
	b.String = ib.typ("string", TypeInfo{Kind: TypeString}, true)

	for k := ScalarBool; k < numScalarKinds; k++ {
		scalar := ib.typ(k.String(), TypeInfo{Kind: TypeScalar, Scalar: k, Rows: 1, Cols: 1}, true)
		b.scalars[k] = scalar
		for n := 1; n <= 4; n++ {
			b.vectors[k][n] = ib.typ(fmt.Sprintf("%s%d", k, n), TypeInfo{
				Kind: TypeVector, Scalar: k, Rows: 1, Cols: uint8(n), Element: scalar, //nolint:gosec // n <= 4
			}, true)
		}
		for r := 1; r <= 4; r++ {
			for c := 1; c <= 4; c++ {
				b.matrices[k][r][c] = ib.typ(fmt.Sprintf("%s%dx%d", k, r, c), TypeInfo{
					Kind: TypeMatrix, Scalar: k, Rows: uint8(r), Cols: uint8(c), Element: scalar, //nolint:gosec // r, c <= 4
				}, true)
			}
		}
	}

	ib.t.DeclareAlias(ib.t.Root, "dword", b.scalars[ScalarUint])
	ib.t.DeclareAlias(ib.t.Root, "vector", b.vectors[ScalarFloat][4])
	ib.t.DeclareAlias(ib.t.Root, "matrix", b.matrices[ScalarFloat][4][4])
}

func (ib *intrinsicBuilder) objects() {
	b := ib.b
	for k := ObjectTexture1D; k < numObjectKinds; k++ {
		id := ib.typ(k.String(), TypeInfo{Kind: TypeObject, Object: k}, true)
		members := ib.t.NewScope(ScopeType, ib.t.Root, id, nil, source.Span{})
		ib.t.Symbol(id).Members = members
		b.objects[k] = id
	}
	ib.t.DeclareAlias(ib.t.Root, "sampler", b.objects[ObjectSamplerState])

	f := func(k ScalarKind, n int) SymbolID {
		if n == 1 {
			return b.Scalar(k)
		}
		return b.Vector(k, n)
	}
	sampler := b.objects[ObjectSamplerState]
	cmpSampler := b.objects[ObjectSamplerComparisonState]
	float4 := b.Vector(ScalarFloat, 4)
	float := b.Scalar(ScalarFloat)

	textures := []struct {
		kind   ObjectKind
		coords int
		load   int // 0 when Load is not available
		dims   int
	}{
		{ObjectTexture1D, 1, 2, 1},
		{ObjectTexture2D, 2, 3, 2},
		{ObjectTexture3D, 3, 4, 3},
		{ObjectTextureCube, 3, 0, 2},
	}
	dimNames := []string{"width", "height", "depth"}
	for _, tex := range textures {
		owner := b.objects[tex.kind]
		coords := f(ScalarFloat, tex.coords)
		ib.method(owner, "Sample", "Samples the texture.", float4,
			in("s", sampler), in("location", coords))
		ib.method(owner, "SampleLevel", "Samples the texture at an explicit mip level.", float4,
			in("s", sampler), in("location", coords), in("lod", float))
		ib.method(owner, "SampleCmp", "Samples the texture and compares the result against a value.", float,
			in("s", cmpSampler), in("location", coords), in("compareValue", float))
		if tex.load > 0 {
			ib.method(owner, "Load", "Reads texel data without filtering.", float4,
				in("location", b.Vector(ScalarInt, tex.load)))
		}
		for _, k := range []ScalarKind{ScalarUint, ScalarFloat} {
			params := make([]param, 0, tex.dims)
			for i := range tex.dims {
				params = append(params, out(dimNames[i], b.Scalar(k)))
			}
			ib.method(owner, "GetDimensions", "Returns the dimensions of the texture.", b.Void, params...)
		}
	}
}

func (ib *intrinsicBuilder) method(owner SymbolID, name, doc string, ret SymbolID, params ...param) SymbolID {
	members := ib.t.Symbol(owner).Members
	id := ib.callable(SymbolMethod, members, owner, name, doc, ret, false, params)
	return id
}

func (ib *intrinsicBuilder) fn(name, doc string, ret SymbolID, params ...param) SymbolID {
	return ib.callable(SymbolFunction, ib.t.Root, NoSymbolID, name, doc, ret, false, params)
}

func (ib *intrinsicBuilder) callable(kind SymbolKind, scope ScopeID, parent SymbolID, name, doc string, ret SymbolID, variadic bool, params []param) SymbolID {
	id := ib.t.NewSymbol(&Symbol{
		Kind:          kind,
		Name:          name,
		Documentation: doc,
		Flags:         SymbolFlagIntrinsic,
		Parent:        parent,
		Scope:         scope,
		Type:          ret,
	})
	ids := make([]SymbolID, 0, len(params))
	for _, p := range params {
		ids = append(ids, ib.t.NewSymbol(&Symbol{
			Kind:      SymbolParameter,
			Name:      p.name,
			Flags:     SymbolFlagIntrinsic,
			Parent:    id,
			Type:      p.typ,
			Direction: p.dir,
		}))
	}
	ib.t.Symbol(id).Invocable = Eager(ids, variadic)
	ib.t.Declare(scope, id)
	return id
}

// shapes returns the scalar and the four vector types of k.
func (ib *intrinsicBuilder) shapes(k ScalarKind) []SymbolID {
	out := []SymbolID{ib.b.Scalar(k)}
	for n := 1; n <= 4; n++ {
		out = append(out, ib.b.Vector(k, n))
	}
	return out
}

// componentwise declares name(T, ... arity times) -> T (or ret(T)) for every
// scalar and vector shape of kinds.
func (ib *intrinsicBuilder) componentwise(name, doc string, arity int, kinds []ScalarKind, ret func(SymbolID) SymbolID) {
	argNames := []string{"x", "y", "s"}
	for _, k := range kinds {
		for _, t := range ib.shapes(k) {
			params := make([]param, 0, arity)
			for i := range arity {
				params = append(params, in(argNames[i], t))
			}
			r := t
			if ret != nil {
				r = ret(t)
			}
			ib.fn(name, doc, r, params...)
		}
	}
}

func (ib *intrinsicBuilder) functions() {
	b := ib.b
	floats := []ScalarKind{ScalarFloat, ScalarHalf}
	signedNumeric := []ScalarKind{ScalarFloat, ScalarHalf, ScalarInt}
	numeric := []ScalarKind{ScalarFloat, ScalarHalf, ScalarInt, ScalarUint}
	logical := []ScalarKind{ScalarBool, ScalarInt, ScalarUint, ScalarFloat, ScalarHalf}

	toScalar := func(k ScalarKind) func(SymbolID) SymbolID {
		return func(SymbolID) SymbolID { return b.Scalar(k) }
	}
	sameShape := func(k ScalarKind) func(SymbolID) SymbolID {
		return func(t SymbolID) SymbolID { return b.WithScalar(ib.t.TypeInfo(t), k) }
	}
	elem := func(t SymbolID) SymbolID { return b.Scalar(ib.t.TypeInfo(t).Scalar) }
	void := func(SymbolID) SymbolID { return b.Void }

	unaryFloat := map[string]string{
		"ceil":     "Returns the smallest integer value that is greater than or equal to x.",
		"cos":      "Returns the cosine of x.",
		"ddx":      "Returns the partial derivative of x with respect to the screen-space x-coordinate.",
		"ddy":      "Returns the partial derivative of x with respect to the screen-space y-coordinate.",
		"degrees":  "Converts x from radians to degrees.",
		"exp":      "Returns the base-e exponential of x.",
		"exp2":     "Returns the base-2 exponential of x.",
		"floor":    "Returns the largest integer that is less than or equal to x.",
		"frac":     "Returns the fractional part of x.",
		"log":      "Returns the base-e logarithm of x.",
		"log2":     "Returns the base-2 logarithm of x.",
		"radians":  "Converts x from degrees to radians.",
		"round":    "Rounds x to the nearest integer.",
		"rsqrt":    "Returns the reciprocal of the square root of x.",
		"saturate": "Clamps x to the range [0, 1].",
		"sin":      "Returns the sine of x.",
		"sqrt":     "Returns the square root of x.",
		"tan":      "Returns the tangent of x.",
	}
	for _, name := range slices.Sorted(maps.Keys(unaryFloat)) {
		ib.componentwise(name, unaryFloat[name], 1, floats, nil)
	}

	ib.componentwise("abs", "Returns the absolute value of x.", 1, signedNumeric, nil)
	ib.componentwise("sign", "Returns the sign of x.", 1, signedNumeric, sameShape(ScalarInt))
	ib.componentwise("all", "Determines if all components of x are non-zero.", 1, logical, toScalar(ScalarBool))
	ib.componentwise("any", "Determines if any component of x is non-zero.", 1, logical, toScalar(ScalarBool))
	ib.componentwise("isnan", "Determines if x is NaN.", 1, floats, sameShape(ScalarBool))
	ib.componentwise("clip", "Discards the current pixel if any component of x is less than zero.", 1, []ScalarKind{ScalarFloat}, void)
	ib.componentwise("asfloat", "Reinterprets the bit pattern of x as float.", 1, []ScalarKind{ScalarFloat, ScalarInt, ScalarUint}, sameShape(ScalarFloat))
	ib.componentwise("asint", "Reinterprets the bit pattern of x as int.", 1, []ScalarKind{ScalarFloat, ScalarUint}, sameShape(ScalarInt))
	ib.componentwise("asuint", "Reinterprets the bit pattern of x as uint.", 1, []ScalarKind{ScalarFloat, ScalarInt}, sameShape(ScalarUint))

	ib.componentwise("fmod", "Returns the floating-point remainder of x/y.", 2, floats, nil)
	ib.componentwise("pow", "Returns x raised to the power of y.", 2, floats, nil)
	ib.componentwise("step", "Returns 1 where x >= y, otherwise 0.", 2, floats, nil)
	ib.componentwise("max", "Returns the greater of x and y.", 2, numeric, nil)
	ib.componentwise("min", "Returns the lesser of x and y.", 2, numeric, nil)
	ib.componentwise("clamp", "Clamps x to the range [y, s].", 3, numeric, nil)
	ib.componentwise("lerp", "Linear interpolation between x and y by s.", 3, floats, nil)
	ib.componentwise("smoothstep", "Hermite interpolation between 0 and 1.", 3, floats, nil)
	ib.componentwise("dot", "Returns the dot product of two vectors.", 2, numeric, elem)
	ib.componentwise("distance", "Returns the distance between two points.", 2, floats, elem)
	ib.componentwise("length", "Returns the length of a vector.", 1, floats, elem)

	for _, k := range floats {
		for n := 1; n <= 4; n++ {
			v := b.Vector(k, n)
			ib.fn("normalize", "Normalizes a vector.", v, in("x", v))
			ib.fn("reflect", "Returns a reflection vector.", v, in("i", v), in("n", v))
		}
		v3 := b.Vector(k, 3)
		ib.fn("cross", "Returns the cross product of two 3D vectors.", v3, in("x", v3), in("y", v3))
	}

	for _, k := range []ScalarKind{ScalarFloat, ScalarInt} {
		for n := 1; n <= 4; n++ {
			m := b.Matrix(k, n, n)
			if k == ScalarFloat {
				ib.fn("determinant", "Returns the determinant of a square matrix.", b.Scalar(k), in("m", m))
			}
		}
		for r := 1; r <= 4; r++ {
			for c := 1; c <= 4; c++ {
				ib.fn("transpose", "Transposes a matrix.", b.Matrix(k, c, r), in("m", b.Matrix(k, r, c)))
			}
		}
	}

	for _, k := range []ScalarKind{ScalarFloat, ScalarHalf, ScalarInt} {
		ib.mul(k)
	}

	ib.callable(SymbolFunction, ib.t.Root, NoSymbolID, "printf",
		"Writes formatted output to the debug log.", b.Void, true,
		[]param{in("format", b.String)})
}

const mulDoc = "Multiplies x and y using matrix math."

// mul covers every scalar/vector/matrix pairing of one scalar kind.
func (ib *intrinsicBuilder) mul(k ScalarKind) {
	b := ib.b
	s := b.Scalar(k)
	ib.fn("mul", mulDoc, s, in("x", s), in("y", s))
	for n := 1; n <= 4; n++ {
		v := b.Vector(k, n)
		ib.fn("mul", mulDoc, v, in("x", s), in("y", v))
		ib.fn("mul", mulDoc, v, in("x", v), in("y", s))
		ib.fn("mul", mulDoc, s, in("x", v), in("y", v))
	}
	for r := 1; r <= 4; r++ {
		for c := 1; c <= 4; c++ {
			m := b.Matrix(k, r, c)
			ib.fn("mul", mulDoc, m, in("x", s), in("y", m))
			ib.fn("mul", mulDoc, m, in("x", m), in("y", s))
			ib.fn("mul", mulDoc, b.Vector(k, c), in("x", b.Vector(k, r)), in("y", m))
			ib.fn("mul", mulDoc, b.Vector(k, r), in("x", m), in("y", b.Vector(k, c)))
			for inner := 1; inner <= 4; inner++ {
				ib.fn("mul", mulDoc, b.Matrix(k, r, c), in("x", b.Matrix(k, r, inner)), in("y", b.Matrix(k, inner, c)))
			}
		}
	}
}

var semanticCatalog = []struct{ name, doc string }{
	{"SV_Position", "Vertex position in homogeneous space."},
	{"SV_Target", "Render target output of a pixel shader."},
	{"SV_Depth", "Depth buffer output of a pixel shader."},
	{"SV_VertexID", "Per-vertex identifier generated by the runtime."},
	{"SV_InstanceID", "Per-instance identifier generated by the runtime."},
	{"SV_DispatchThreadID", "Global thread index of a compute shader."},
	{"SV_GroupID", "Thread group index of a compute shader."},
	{"SV_GroupThreadID", "Thread index within its group."},
	{"SV_IsFrontFace", "Whether a primitive is front facing."},
	{"POSITION", "Vertex position in object space."},
	{"COLOR", "Diffuse or specular color."},
	{"TEXCOORD", "Texture coordinates."},
	{"NORMAL", "Normal vector."},
	{"TANGENT", "Tangent vector."},
	{"BINORMAL", "Binormal vector."},
	{"PSIZE", "Point size."},
	{"DEPTH", "Output depth."},
}

func (ib *intrinsicBuilder) semantics() {
	scope := ib.b.semantics
	for _, s := range semanticCatalog {
		id := ib.t.NewSymbol(&Symbol{
			Kind:          SymbolSemantic,
			Name:          s.name,
			Documentation: s.doc,
			Flags:         SymbolFlagIntrinsic,
			Scope:         scope,
		})
		ib.t.Declare(scope, id)
		if upper := strings.ToUpper(s.name); upper != s.name {
			ib.t.DeclareAlias(scope, upper, id)
		}
	}
}

// LookupSemantic finds the intrinsic semantic for name. Matching ignores case
// and a trailing index, so TEXCOORD3 and sv_target1 both resolve.
func (t *Table) LookupSemantic(name string) SymbolID {
	upper := strings.ToUpper(name)
	if ids := t.LookupLocal(t.SemanticScope(), upper); len(ids) > 0 {
		return ids[0]
	}
	trimmed := strings.TrimRight(upper, "0123456789")
	if trimmed == upper || trimmed == "" {
		return NoSymbolID
	}
	if ids := t.LookupLocal(t.SemanticScope(), trimmed); len(ids) > 0 {
		return ids[0]
	}
	return NoSymbolID
}
