package symbols

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/source"
)

func TestIntrinsicTypesAreSingletons(t *testing.T) {
	a := NewTable(Hints{})
	b := NewTable(Hints{})

	float3 := a.Lookup(a.Root, "float3")
	require.Len(t, float3, 1)
	assert.Equal(t, float3, b.Lookup(b.Root, "float3"))
	assert.Equal(t, a.Builtins().Vector(ScalarFloat, 3), float3[0])
	assert.True(t, a.IsIntrinsic(float3[0]))

	info := a.TypeInfo(float3[0])
	require.NotNil(t, info)
	assert.Equal(t, TypeVector, info.Kind)
	assert.Equal(t, 3, info.Components())

	assert.Equal(t, a.Builtins().Scalar(ScalarUint), a.Lookup(a.Root, "dword")[0])
	assert.Equal(t, a.Builtins().Vector(ScalarFloat, 4), a.Lookup(a.Root, "vector")[0])
	assert.Equal(t, "float4x4", a.TypeName(a.Lookup(a.Root, "matrix")[0]))
}

func TestCompilationIDsContinueAfterIntrinsics(t *testing.T) {
	table := NewTable(Hints{})
	id := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "x", Type: table.Builtins().Scalar(ScalarInt)})
	assert.False(t, table.IsIntrinsic(id))
	assert.Greater(t, uint32(id), uint32(table.symBase))
	assert.Equal(t, "x", table.Symbol(id).Name)
	assert.Nil(t, table.Symbol(NoSymbolID))
}

func TestDeclareIntoIntrinsicScopePanics(t *testing.T) {
	table := NewTable(Hints{})
	id := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "x"})
	assert.Panics(t, func() { table.Declare(table.IntrinsicScope(), id) })
}

func TestLookupWalksParents(t *testing.T) {
	table := NewTable(Hints{})
	outer := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "v"})
	table.Declare(table.Root, outer)

	block := table.NewScope(ScopeBlock, table.Root, NoSymbolID, nil, source.Span{})
	assert.Equal(t, []SymbolID{outer}, table.Lookup(block, "v"))
	assert.Empty(t, table.LookupLocal(block, "v"))

	inner := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "v"})
	table.Declare(block, inner)
	assert.Equal(t, []SymbolID{inner}, table.Lookup(block, "v"))
	assert.Contains(t, table.Scope(table.Root).Children, block)

	sin := table.Lookup(block, "sin")
	assert.NotEmpty(t, sin, "intrinsic functions are reachable from every scope")
}

func TestRemoveDropsFromActiveSet(t *testing.T) {
	table := NewTable(Hints{})
	a := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "i"})
	b := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "j"})
	table.Declare(table.Root, a)
	table.Declare(table.Root, b)

	require.True(t, table.Remove(table.Root, a))
	assert.False(t, table.Remove(table.Root, a))
	assert.Empty(t, table.LookupLocal(table.Root, "i"))
	assert.Equal(t, []SymbolID{b}, table.Scope(table.Root).Symbols)
	assert.Equal(t, "i", table.Symbol(a).Name, "removed symbols stay addressable")
}

func TestLazyInvocableResolvesOnce(t *testing.T) {
	var calls atomic.Int32
	inv := Lazy(func() []SymbolID {
		calls.Add(1)
		return []SymbolID{7, 8}
	}, false)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []SymbolID{7, 8}, inv.Parameters())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestLookupSemantic(t *testing.T) {
	table := NewTable(Hints{})
	pos := table.LookupSemantic("SV_Position")
	require.True(t, pos.IsValid())
	assert.Equal(t, pos, table.LookupSemantic("sv_position"))

	tex := table.LookupSemantic("TEXCOORD3")
	require.True(t, tex.IsValid())
	assert.Equal(t, "TEXCOORD", table.Symbol(tex).Name)
	assert.Equal(t, SymbolSemantic, table.Symbol(tex).Kind)

	assert.False(t, table.LookupSemantic("MY_SEMANTIC").IsValid())
	assert.False(t, table.LookupSemantic("42").IsValid())
}

func TestArrayTypeIsMemoised(t *testing.T) {
	table := NewTable(Hints{})
	float4 := table.Builtins().Vector(ScalarFloat, 4)
	a := table.ArrayType(float4, 8)
	assert.Equal(t, a, table.ArrayType(float4, 8))
	assert.Equal(t, "float4[8]", table.TypeName(a))
	assert.Equal(t, TypeArray, table.TypeInfo(a).Kind)
}

func TestIntrinsicObjectMethods(t *testing.T) {
	table := NewTable(Hints{})
	tex := table.Builtins().Object(ObjectTexture2D)
	members := table.Symbol(tex).Members
	require.True(t, members.IsValid())

	dims := table.LookupLocal(members, "GetDimensions")
	require.Len(t, dims, 2)
	for _, id := range dims {
		params := table.Symbol(id).Invocable.Parameters()
		require.Len(t, params, 2)
		assert.Equal(t, DirOut, table.Symbol(params[0]).Direction)
		assert.Equal(t, tex, table.Symbol(id).Parent)
	}
	assert.Len(t, table.LookupLocal(members, "Sample"), 1)
	assert.Empty(t, table.LookupLocal(table.Symbol(table.Builtins().Object(ObjectTextureCube)).Members, "Load"))
}

func TestPrintfIsVariadic(t *testing.T) {
	table := NewTable(Hints{})
	ids := table.Lookup(table.Root, "printf")
	require.Len(t, ids, 1)
	inv := table.Symbol(ids[0]).Invocable
	assert.True(t, inv.Variadic)
	assert.Len(t, inv.Parameters(), 1)
}

func TestParallelTables(t *testing.T) {
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table := NewTable(Hints{})
			id := table.NewSymbol(&Symbol{Kind: SymbolVariable, Name: "x"})
			table.Declare(table.Root, id)
			assert.NotEmpty(t, table.Lookup(table.Root, "mul"))
			assert.Equal(t, []SymbolID{id}, table.Lookup(table.Root, "x"))
		}()
	}
	wg.Wait()
}

func TestQualifiedName(t *testing.T) {
	table := NewTable(Hints{})
	ns := table.NewSymbol(&Symbol{Kind: SymbolNamespace, Name: "Lighting"})
	fn := table.NewSymbol(&Symbol{Kind: SymbolFunction, Name: "Diffuse", Parent: ns})
	assert.Equal(t, "Lighting::Diffuse", table.QualifiedName(fn))
}
