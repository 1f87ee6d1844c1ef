package overload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/signatures"
	"hlsltools/internal/symbols"
)

type fakeSig struct {
	name     string
	params   []symbols.SymbolID
	variadic bool
}

func (f fakeSig) ParameterCount() int                    { return len(f.params) }
func (f fakeSig) ParameterType(i int) symbols.SymbolID   { return f.params[i] }
func (fakeSig) ParameterDirection(int) symbols.Direction { return symbols.DirIn }
func (f fakeSig) HasVariadicParameter() bool             { return f.variadic }

func sig(name string, params ...symbols.SymbolID) fakeSig {
	return fakeSig{name: name, params: params}
}

func names(r Result[fakeSig]) []string {
	out := make([]string, 0, len(r.Candidates()))
	for _, c := range r.Candidates() {
		out = append(out, c.Signature.name)
	}
	return out
}

func newTable() (*symbols.Table, symbols.SymbolID, symbols.SymbolID) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	return table, b.Scalar(symbols.ScalarInt), b.Scalar(symbols.ScalarFloat)
}

func TestTooManyArgumentsYieldsNothing(t *testing.T) {
	table, i, _ := newTable()
	params := make([]symbols.SymbolID, signatures.MaxArguments)
	types := make([]symbols.SymbolID, signatures.MaxArguments)
	for k := range params {
		params[k] = i
		types[k] = i
	}
	variadic := fakeSig{name: "v", variadic: true}

	r := Perform(table, []fakeSig{sig("exact", params...), variadic}, signatures.Args(types...))
	assert.Empty(t, r.Candidates())
	_, ok := r.Selected()
	assert.False(t, ok)

	// one fewer still scores
	r = Perform(table, []fakeSig{sig("exact", params[1:]...)}, signatures.Args(types[1:]...))
	assert.Len(t, r.Candidates(), 1)
}

func TestStrictlyLowerScoreIsUniqueBest(t *testing.T) {
	table, i, f := newTable()
	r := Perform(table, []fakeSig{sig("ff", f, f), sig("ii", i, i)}, signatures.Args(i, i))

	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, "ii", best.name)
	assert.Equal(t, []string{"ii", "ff"}, names(r))
	assert.False(t, r.Ambiguous())
}

func TestTieIsAmbiguousButListed(t *testing.T) {
	table, i, f := newTable()
	r := Perform(table, []fakeSig{sig("if", i, f), sig("fi", f, i)}, signatures.Args(i, i))

	_, ok := r.Best()
	assert.False(t, ok)
	assert.True(t, r.Ambiguous())
	assert.Equal(t, []string{"if", "fi"}, names(r), "ties keep input order")

	sel, ok := r.Selected()
	require.True(t, ok)
	assert.Equal(t, "if", sel.name)
}

func TestVariadicArity(t *testing.T) {
	table, i, f := newTable()
	b := table.Builtins()
	v := fakeSig{name: "v", params: []symbols.SymbolID{i, i}, variadic: true}

	r := Perform(table, []fakeSig{v}, signatures.Args(i, i))
	assert.Len(t, r.Candidates(), 1)

	r = Perform(table, []fakeSig{v}, signatures.Args(i, i, b.String, f, b.Object(symbols.ObjectTexture2D)))
	assert.Len(t, r.Candidates(), 1, "trailing arguments are not classified")

	r = Perform(table, []fakeSig{v}, signatures.Args(i))
	assert.Empty(t, r.Candidates())

	// rejected regardless of the trailing parameter's type
	r = Perform(table, []fakeSig{v}, nil)
	assert.Empty(t, r.Candidates())
}

func TestMissingConversionRejects(t *testing.T) {
	table, i, _ := newTable()
	b := table.Builtins()
	tex := b.Object(symbols.ObjectTexture2D)

	r := Perform(table, []fakeSig{sig("tex", tex, i), sig("ints", i, i)}, signatures.Args(i, i))
	assert.Equal(t, []string{"ints"}, names(r))

	r = Perform(table, []fakeSig{sig("two", i, i)}, signatures.Args(i))
	assert.Empty(t, r.Candidates())
}

func TestMixedLiteralCall(t *testing.T) {
	// f(1, 2.0) against f(int, int) and f(float, float): widening the int to
	// float is cheaper than truncating the float to int.
	table, i, f := newTable()
	r := Perform(table, []fakeSig{sig("f(int,int)", i, i), sig("f(float,float)", f, f)}, signatures.Args(i, f))
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, "f(float,float)", best.name)

	// with an exact match available the first overload wins outright
	r = Perform(table, []fakeSig{sig("f(int,int)", i, i), sig("f(float,float)", f, f)}, signatures.Args(i, i))
	best, ok = r.Best()
	require.True(t, ok)
	assert.Equal(t, "f(int,int)", best.name)
	assert.Less(t, r.Candidates()[0].Score, r.Candidates()[1].Score)
}

func TestIntrinsicResolution(t *testing.T) {
	table, i, f := newTable()
	b := table.Builtins()
	resolve := func(name string, args ...symbols.SymbolID) (signatures.FunctionSignature, bool) {
		sigs := signatures.Signatures(table, table.Lookup(table.Root, name))
		return Perform(table, sigs, signatures.Args(args...)).Best()
	}

	sin, ok := resolve("sin", i)
	require.True(t, ok)
	assert.Equal(t, f, sin.ReturnType, "sin(int) prefers float over half")

	m, ok := resolve("mul", b.Vector(symbols.ScalarFloat, 4), b.Matrix(symbols.ScalarFloat, 4, 4))
	require.True(t, ok)
	assert.Equal(t, b.Vector(symbols.ScalarFloat, 4), m.ReturnType)

	mx, ok := resolve("max", i, f)
	require.True(t, ok)
	assert.Equal(t, f, mx.ReturnType)

	d, ok := resolve("dot", b.Vector(symbols.ScalarFloat, 3), b.Vector(symbols.ScalarFloat, 3))
	require.True(t, ok)
	assert.Equal(t, f, d.ReturnType)

	_, ok = resolve("printf", b.String, i, f)
	assert.True(t, ok)
}

func TestOutParameterNeedsLValue(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	tex := b.Object(symbols.ObjectTexture2D)
	dims := table.LookupLocal(table.Symbol(tex).Members, "GetDimensions")
	sigs := signatures.Signatures(table, dims)
	u := b.Scalar(symbols.ScalarUint)

	r := Perform(table, sigs, signatures.Args(u, u))
	assert.Empty(t, r.Candidates())

	args := []signatures.Argument{{Type: u, Writable: true}, {Type: u, Writable: true}}
	best, ok := Perform(table, sigs, args).Best()
	require.True(t, ok)
	assert.Equal(t, u, best.ParameterType(0))
}
