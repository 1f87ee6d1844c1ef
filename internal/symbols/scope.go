package symbols

import (
	"slices"

	"hlsltools/internal/source"
	"hlsltools/internal/syntax"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid   ScopeKind = iota
	ScopeIntrinsic           // shared root holding intrinsic types and functions
	ScopeSemantics           // intrinsic semantic catalog, not on any lookup chain
	ScopeGlobal              // compilation-unit level
	ScopeNamespace
	ScopeType // struct, class and object members
	ScopeFunction
	ScopeBlock
	ScopeFor
	ScopeSwitch
	ScopeTechnique
	ScopePass
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeIntrinsic:
		return "intrinsic"
	case ScopeSemantics:
		return "semantics"
	case ScopeGlobal:
		return "global"
	case ScopeNamespace:
		return "namespace"
	case ScopeType:
		return "type"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeFor:
		return "for"
	case ScopeSwitch:
		return "switch"
	case ScopeTechnique:
		return "technique"
	case ScopePass:
		return "pass"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a parent-child hierarchy. Symbols is the
// active set in declaration order; NameIndex mirrors it by name.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Owner     SymbolID
	Node      syntax.Node
	Span      source.Span
	NameIndex map[string][]SymbolID
	Symbols   []SymbolID
	Children  []ScopeID
}

func (s *Scope) add(name string, id SymbolID) {
	s.NameIndex[name] = append(s.NameIndex[name], id)
	s.Symbols = append(s.Symbols, id)
}

// alias indexes id under another name without adding it to the active
// set a second time.
func (s *Scope) alias(name string, id SymbolID) {
	s.NameIndex[name] = append(s.NameIndex[name], id)
}

func (s *Scope) remove(name string, id SymbolID) bool {
	ids, ok := s.NameIndex[name]
	if !ok {
		return false
	}
	idx := slices.Index(ids, id)
	if idx < 0 {
		return false
	}
	ids = slices.Delete(slices.Clone(ids), idx, idx+1)
	if len(ids) == 0 {
		delete(s.NameIndex, name)
	} else {
		s.NameIndex[name] = ids
	}
	if i := slices.Index(s.Symbols, id); i >= 0 {
		s.Symbols = slices.Delete(s.Symbols, i, i+1)
	}
	return true
}
