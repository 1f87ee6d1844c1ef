package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scopes stores allocated scopes in a compact slice-based arena. Index 0 is
// reserved for NoScopeID.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]Scope, 1, capacity+1),
	}
}

// New appends sc and returns its local index.
func (s *Scopes) New(sc Scope) uint32 {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	if sc.NameIndex == nil {
		sc.NameIndex = make(map[string][]SymbolID)
	}
	s.data = append(s.data, sc)
	return value
}

// Get returns the scope at a local index or nil.
func (s *Scopes) Get(index uint32) *Scope {
	if index == 0 || int(index) >= len(s.data) {
		return nil
	}
	return &s.data[index]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() uint32 { return uint32(len(s.data) - 1) } //nolint:gosec // bounded by New

// Symbols stores declared symbols in a compact arena.
type Symbols struct {
	data []Symbol
}

// NewSymbols creates a symbol arena with optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{
		data: make([]Symbol, 1, capacity+1),
	}
}

// New appends sym and returns its local index.
func (s *Symbols) New(sym *Symbol) uint32 {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	s.data = append(s.data, *sym)
	return value
}

// Get returns the symbol at a local index or nil.
func (s *Symbols) Get(index uint32) *Symbol {
	if index == 0 || int(index) >= len(s.data) {
		return nil
	}
	return &s.data[index]
}

// Len reports number of stored symbols excluding sentinel.
func (s *Symbols) Len() uint32 { return uint32(len(s.data) - 1) } //nolint:gosec // bounded by New
