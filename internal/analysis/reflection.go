package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// SymbolKind classifies a runtime symbol.
type SymbolKind string

const (
	KindFunc  SymbolKind = "func"
	KindType  SymbolKind = "type"
	KindConst SymbolKind = "const"
)

// Symbol describes one runtime symbol known to a reflection provider.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Signature string
}

// UnknownSymbolError is returned when a reflection provider is asked for a
// symbol it does not know.
type UnknownSymbolError struct {
	Name string
}

func (e UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Name)
}

// ReflectionProvider answers symbol queries for the analyzed runtime.
//
// Implementations must be safe for concurrent use: a single provider instance
// is shared by every scope built from one container.
type ReflectionProvider interface {
	// HasSymbol reports whether the provider knows the named symbol.
	HasSymbol(name string) bool

	// Symbol returns the named symbol, or an UnknownSymbolError.
	Symbol(name string) (Symbol, error)
}

// StaticReflectionProvider resolves symbols from a fixed in-memory table,
// without consulting the host runtime. It backs the static-reflection
// container variant.
type StaticReflectionProvider struct {
	mu      sync.RWMutex
	symbols map[string]Symbol
}

// NewStaticReflectionProvider creates a provider over the given symbols.
func NewStaticReflectionProvider(symbols []Symbol) *StaticReflectionProvider {
	table := make(map[string]Symbol, len(symbols))
	for _, sym := range symbols {
		table[sym.Name] = sym
	}
	return &StaticReflectionProvider{symbols: table}
}

// Add registers an additional symbol. Used by bootstrap actions that load
// auxiliary definitions after the container is built.
func (p *StaticReflectionProvider) Add(sym Symbol) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.symbols[sym.Name] = sym
}

func (p *StaticReflectionProvider) HasSymbol(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.symbols[name]
	return ok
}

func (p *StaticReflectionProvider) Symbol(name string) (Symbol, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sym, ok := p.symbols[name]
	if !ok {
		return Symbol{}, UnknownSymbolError{Name: name}
	}
	return sym, nil
}

// SymbolNames returns the names of all known symbols, sorted.
func (p *StaticReflectionProvider) SymbolNames() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.symbols))
	for name := range p.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
