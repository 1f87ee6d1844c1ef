package signatures

import (
	"hlsltools/internal/symbols"
)

// Signature is the shape of anything callable.
type Signature interface {
	// ParameterCount is the number of fixed parameters; a trailing
	// variadic part is not counted.
	ParameterCount() int
	ParameterType(i int) symbols.SymbolID
	ParameterDirection(i int) symbols.Direction
	HasVariadicParameter() bool
}

// FunctionSignature adapts any invocable symbol (intrinsic or user function,
// method, technique entry point) to Signature.
type FunctionSignature struct {
	Symbol     symbols.SymbolID
	ReturnType symbols.SymbolID
	params     []paramShape
	variadic   bool
}

type paramShape struct {
	typ symbols.SymbolID
	dir symbols.Direction
}

// NewFunctionSignature snapshots the parameters of fn. Reading them forces
// the lazy parameter list of fn.
func NewFunctionSignature(types symbols.Lookup, fn symbols.SymbolID) FunctionSignature {
	sym := types.Symbol(fn)
	if sym == nil || sym.Invocable == nil {
		return FunctionSignature{Symbol: fn}
	}
	ret := sym.Type
	inv := sym.Invocable
	ids := inv.Parameters()
	params := make([]paramShape, 0, len(ids))
	for _, id := range ids {
		p := types.Symbol(id)
		if p == nil {
			params = append(params, paramShape{})
			continue
		}
		params = append(params, paramShape{typ: p.Type, dir: p.Direction})
	}
	return FunctionSignature{
		Symbol:     fn,
		ReturnType: ret,
		params:     params,
		variadic:   inv.Variadic,
	}
}

// Signatures builds signatures for every invocable in ids, skipping others.
func Signatures(types symbols.Lookup, ids []symbols.SymbolID) []FunctionSignature {
	out := make([]FunctionSignature, 0, len(ids))
	for _, id := range ids {
		sym := types.Symbol(id)
		if sym == nil || sym.Invocable == nil {
			continue
		}
		out = append(out, NewFunctionSignature(types, id))
	}
	return out
}

func (s FunctionSignature) ParameterCount() int { return len(s.params) }

func (s FunctionSignature) ParameterType(i int) symbols.SymbolID { return s.params[i].typ }

func (s FunctionSignature) ParameterDirection(i int) symbols.Direction { return s.params[i].dir }

func (s FunctionSignature) HasVariadicParameter() bool { return s.variadic }

// SameParameters reports whether a and b have identical parameter types and
// directions. Prototype and definition merging uses it.
func SameParameters(a, b Signature) bool {
	if a.ParameterCount() != b.ParameterCount() || a.HasVariadicParameter() != b.HasVariadicParameter() {
		return false
	}
	for i := range a.ParameterCount() {
		if a.ParameterType(i) != b.ParameterType(i) || a.ParameterDirection(i) != b.ParameterDirection(i) {
			return false
		}
	}
	return true
}
