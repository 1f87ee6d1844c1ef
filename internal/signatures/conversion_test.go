package signatures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hlsltools/internal/symbols"
)

func TestCategoryOrder(t *testing.T) {
	order := []ConversionType{
		Identity, Promotion, SignChange, IntToFloat, Narrowing,
		FloatToInt, BoolConversion, ScalarSplat, DimensionTruncation,
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, uint64(order[i-1]), uint64(order[i]))
	}
	// 63 promotions still rank below one sign change.
	assert.Less(t, uint64(Promotion*(MaxArguments-1)), uint64(SignChange))
}

func TestImplicitScalars(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	s := b.Scalar

	cases := []struct {
		from, to symbols.ScalarKind
		want     ConversionType
	}{
		{symbols.ScalarFloat, symbols.ScalarFloat, Identity},
		{symbols.ScalarInt, symbols.ScalarUint, SignChange},
		{symbols.ScalarInt, symbols.ScalarFloat, IntToFloat},
		{symbols.ScalarInt, symbols.ScalarHalf, IntToFloat + Narrowing},
		{symbols.ScalarInt, symbols.ScalarDouble, IntToFloat + Promotion},
		{symbols.ScalarFloat, symbols.ScalarInt, FloatToInt},
		{symbols.ScalarHalf, symbols.ScalarFloat, Promotion},
		{symbols.ScalarFloat, symbols.ScalarHalf, Narrowing},
		{symbols.ScalarBool, symbols.ScalarFloat, BoolConversion},
		{symbols.ScalarInt64, symbols.ScalarInt, Narrowing},
	}
	for _, tc := range cases {
		c := Implicit(table, s(tc.from), s(tc.to))
		require.True(t, c.Exists, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.want, c.Type, "%s -> %s: got %s", tc.from, tc.to, c.Type)
	}
}

func TestImplicitShapes(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	float := b.Scalar(symbols.ScalarFloat)

	c := Implicit(table, float, b.Vector(symbols.ScalarFloat, 3))
	assert.Equal(t, exists(ScalarSplat), c)

	c = Implicit(table, b.Vector(symbols.ScalarFloat, 4), b.Vector(symbols.ScalarFloat, 3))
	assert.Equal(t, exists(DimensionTruncation), c)

	c = Implicit(table, b.Vector(symbols.ScalarFloat, 2), b.Vector(symbols.ScalarFloat, 3))
	assert.False(t, c.Exists)

	c = Implicit(table, b.Vector(symbols.ScalarFloat, 1), float)
	assert.Equal(t, exists(Promotion), c)

	c = Implicit(table, b.Matrix(symbols.ScalarFloat, 4, 4), b.Matrix(symbols.ScalarFloat, 3, 3))
	assert.Equal(t, exists(DimensionTruncation), c)

	c = Implicit(table, b.Vector(symbols.ScalarInt, 3), b.Vector(symbols.ScalarFloat, 3))
	assert.Equal(t, exists(IntToFloat), c)
}

func TestErrorVoidAndObjects(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	tex := b.Object(symbols.ObjectTexture2D)
	float := b.Scalar(symbols.ScalarFloat)

	assert.Equal(t, exists(Identity), Implicit(table, b.Error, tex))
	assert.Equal(t, exists(Identity), Implicit(table, float, b.Error))
	assert.False(t, Implicit(table, b.Void, b.Void).Exists)
	assert.False(t, Implicit(table, b.Void, float).Exists)
	assert.Equal(t, exists(Identity), Implicit(table, tex, tex))
	assert.False(t, Implicit(table, tex, b.Object(symbols.ObjectTexture3D)).Exists)
	assert.False(t, Implicit(table, float, tex).Exists)
	assert.False(t, Implicit(table, b.String, float).Exists)
}

func TestClassifyDirections(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	float := b.Scalar(symbols.ScalarFloat)
	u32 := b.Scalar(symbols.ScalarUint)

	rvalue := Argument{Type: u32}
	lvalue := Argument{Type: u32, Writable: true}

	assert.Equal(t, exists(IntToFloat), Classify(table, rvalue, float, symbols.DirIn))
	assert.False(t, Classify(table, rvalue, float, symbols.DirOut).Exists, "out needs an l-value")

	// out float into a uint variable converts back float -> uint
	assert.Equal(t, exists(FloatToInt), Classify(table, lvalue, float, symbols.DirOut))
	assert.Equal(t, exists(IntToFloat+FloatToInt), Classify(table, lvalue, float, symbols.DirInOut))
	assert.Equal(t, exists(Identity), Classify(table, lvalue, u32, symbols.DirInOut))
}

func TestClassifyCountsEachCategoryOncePerArgument(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	float := b.Scalar(symbols.ScalarFloat)
	half1 := Argument{Type: b.Vector(symbols.ScalarHalf, 1), Writable: true}

	// half1 -> float promotes both the shape and the width
	assert.Equal(t, exists(Promotion+Promotion), Implicit(table, half1.Type, float))
	assert.Equal(t, exists(Promotion), Classify(table, half1, float, symbols.DirIn))
	assert.Equal(t, exists(Promotion+Narrowing), Classify(table, half1, float, symbols.DirInOut))

	var sum ConversionType
	for range MaxArguments - 1 {
		sum += Classify(table, half1, float, symbols.DirInOut).Type
	}
	assert.False(t, sum.Has(SignChange), "promotions carried into sign change: %s", sum)
}

func TestClassifyIntegerLiteral(t *testing.T) {
	table := symbols.NewTable(symbols.Hints{})
	b := table.Builtins()
	i32, u32 := b.Scalar(symbols.ScalarInt), b.Scalar(symbols.ScalarUint)

	assert.Equal(t, exists(SignChange), Classify(table, Argument{Type: i32}, u32, symbols.DirIn))
	assert.Equal(t, exists(Identity), Classify(table, Argument{Type: i32, Literal: true}, u32, symbols.DirIn))
	assert.Equal(t, exists(ScalarSplat), Classify(table, Argument{Type: i32, Literal: true}, b.Vector(symbols.ScalarUint, 2), symbols.DirIn))
}

func TestConversionTypeString(t *testing.T) {
	assert.Equal(t, "identity", Identity.String())
	assert.Equal(t, "int to float+narrowing", (IntToFloat + Narrowing).String())
}

func TestArgs(t *testing.T) {
	args := Args(1, 2)
	require.Len(t, args, 2)
	assert.Equal(t, symbols.SymbolID(2), args[1].Type)
	assert.False(t, args[0].Writable)
}
