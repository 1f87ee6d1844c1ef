package symbols

import (
	"sync"

	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolMethod
	SymbolVariable
	SymbolParameter
	SymbolField
	SymbolType
	SymbolNamespace
	SymbolTechnique
	SymbolPass
	SymbolSemantic
	SymbolConstantBuffer
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolVariable:
		return "variable"
	case SymbolParameter:
		return "parameter"
	case SymbolField:
		return "field"
	case SymbolType:
		return "type"
	case SymbolNamespace:
		return "namespace"
	case SymbolTechnique:
		return "technique"
	case SymbolPass:
		return "pass"
	case SymbolSemantic:
		return "semantic"
	case SymbolConstantBuffer:
		return "cbuffer"
	default:
		return "invalid"
	}
}

// IsInvocable reports whether symbols of this kind carry an Invocable.
func (k SymbolKind) IsInvocable() bool {
	return k == SymbolFunction || k == SymbolMethod
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	SymbolFlagIntrinsic SymbolFlags = 1 << iota
	SymbolFlagStatic
	SymbolFlagConst
	SymbolFlagUniform
	// SymbolFlagDefined marks a function whose body has been bound.
	SymbolFlagDefined
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolFlagIntrinsic != 0 {
		labels = append(labels, "intrinsic")
	}
	if f&SymbolFlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&SymbolFlagConst != 0 {
		labels = append(labels, "const")
	}
	if f&SymbolFlagUniform != 0 {
		labels = append(labels, "uniform")
	}
	if f&SymbolFlagDefined != 0 {
		labels = append(labels, "defined")
	}
	return labels
}

// Direction is the data flow of a parameter.
type Direction uint8

const (
	DirIn Direction = iota
	DirOut
	DirInOut
)

func (d Direction) String() string {
	switch d {
	case DirOut:
		return "out"
	case DirInOut:
		return "inout"
	}
	return "in"
}

// DirectionOf maps a parameter modifier; uniform and no modifier are "in".
func DirectionOf(m syntax.ParameterModifier) Direction {
	switch m {
	case syntax.ModifierOut:
		return DirOut
	case syntax.ModifierInOut:
		return DirInOut
	}
	return DirIn
}

// Symbol describes a named entity. Parent and scope links are IDs into the
// owning Table and are used for navigation only.
type Symbol struct {
	Kind          SymbolKind
	Name          string
	Documentation string
	Flags         SymbolFlags
	// Parent is the enclosing symbol (function for parameters, type for
	// fields and methods, namespace for its members).
	Parent SymbolID
	// Scope is the scope the symbol is declared in.
	Scope ScopeID
	// Members is the scope holding members of types, namespaces,
	// techniques and passes.
	Members ScopeID
	// Type is the value type of variables, parameters and fields and the
	// return type of functions and methods.
	Type      SymbolID
	Direction Direction
	Span      source.Span
	Decl      syntax.Node
	TypeInfo  *TypeInfo
	Invocable *Invocable
}

// Invocable is the callable part of functions and methods. The parameter
// list is computed on first use and memoised.
type Invocable struct {
	once     sync.Once
	resolve  func() []SymbolID
	params   []SymbolID
	Variadic bool
}

// Lazy returns an invocable whose parameters are produced by resolve on
// first access. resolve runs at most once.
func Lazy(resolve func() []SymbolID, variadic bool) *Invocable {
	return &Invocable{resolve: resolve, Variadic: variadic}
}

// Eager returns an invocable with a fixed parameter list.
func Eager(params []SymbolID, variadic bool) *Invocable {
	inv := &Invocable{params: params, Variadic: variadic}
	inv.once.Do(func() {})
	return inv
}

// Parameters returns the parameter symbols. For variadic invocables these
// are the fixed parameters only.
func (inv *Invocable) Parameters() []SymbolID {
	inv.once.Do(func() {
		if inv.resolve != nil {
			inv.params = inv.resolve()
			inv.resolve = nil
		}
	})
	return inv.params
}
