package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hlsltools/internal/bound"
	"hlsltools/internal/source"
	"hlsltools/internal/symbols"
	"hlsltools/internal/syntax"
)

func TestRecordRejectsSecondBinding(t *testing.T) {
	shared := NewSharedState(symbols.NewTable(symbols.Hints{}), nil)
	syn := &syntax.Break{}
	first := &bound.Break{Base: bound.From(syn)}

	shared.record(syn, first)
	assert.NotPanics(t, func() { shared.record(syn, first) })
	assert.Panics(t, func() { shared.record(syn, &bound.Break{Base: bound.From(syn)}) })
}

func TestUserSemanticsIgnoreCase(t *testing.T) {
	shared := NewSharedState(symbols.NewTable(symbols.Hints{}), nil)
	a := shared.userSemantic("Color_Out", source.Span{File: 1, Start: 0, End: 9})
	assert.Equal(t, a, shared.userSemantic("COLOR_OUT", source.Span{File: 1, Start: 20, End: 29}))
	assert.Equal(t, symbols.SymbolSemantic, shared.Table.Symbol(a).Kind)
}
