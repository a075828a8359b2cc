package container

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/bedrockhq/bedrock/internal/analysis"
	"github.com/bedrockhq/bedrock/internal/stubset"
)

// FactoryFunc constructs one service. The container argument lets factories
// resolve their own dependencies; args carry the definition's configured
// arguments verbatim.
type FactoryFunc func(c *Container, args map[string]any) (any, error)

// FactoryRegistry maps factory names, as referenced from configuration
// files, to their constructors.
type FactoryRegistry struct {
	mu        sync.RWMutex
	factories map[string]FactoryFunc
}

// NewFactoryRegistry creates a registry pre-populated with the built-in
// bedrock factories.
func NewFactoryRegistry() *FactoryRegistry {
	r := &FactoryRegistry{factories: make(map[string]FactoryFunc)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces a named factory.
func (r *FactoryRegistry) Register(name string, factory FactoryFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Lookup resolves a factory by name.
func (r *FactoryRegistry) Lookup(name string) (FactoryFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// registerBuiltins installs the factories every bedrock configuration may
// reference. Config files select among them by name.
func registerBuiltins(r *FactoryRegistry) {
	r.Register("analysis.typeRegistry", newTypeRegistryFactory)
	r.Register("analysis.typeSpecifier", newTypeSpecifierFactory)
	r.Register("analysis.reflection.runtime", newRuntimeReflectionFactory)
	r.Register("analysis.reflection.static", newStaticReflectionFactory)
}

func newTypeRegistryFactory(_ *Container, args map[string]any) (any, error) {
	registry := analysis.NewTypeRegistry()
	types, ok := args["types"]
	if !ok {
		return registry, nil
	}
	table, ok := types.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be a map of name to type", "types")
	}
	for name, target := range table {
		fq, ok := target.(string)
		if !ok {
			return nil, fmt.Errorf("type %q must map to a string, got %T", name, target)
		}
		registry.Register(name, analysis.Type(fq))
	}
	return registry, nil
}

func newTypeSpecifierFactory(_ *Container, _ map[string]any) (any, error) {
	return &analysis.TypeSpecifier{}, nil
}

// newRuntimeReflectionFactory opens the stub database under the shared
// working directory. Bootstrap seeds it after the container is built.
func newRuntimeReflectionFactory(c *Container, args map[string]any) (any, error) {
	name := "stubs.db"
	if v, ok := args["database"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a string, got %T", "database", v)
		}
		name = s
	}
	store, err := stubset.Open(filepath.Join(c.WorkDir(), name))
	if err != nil {
		return nil, err
	}
	return stubset.NewProvider(store), nil
}

func newStaticReflectionFactory(_ *Container, args map[string]any) (any, error) {
	var symbols []analysis.Symbol
	if v, ok := args["symbols"]; ok {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("argument %q must be a list, got %T", "symbols", v)
		}
		for i, entry := range list {
			sym, err := symbolFromArg(entry)
			if err != nil {
				return nil, fmt.Errorf("symbols[%d]: %w", i, err)
			}
			symbols = append(symbols, sym)
		}
	}
	return analysis.NewStaticReflectionProvider(symbols), nil
}

func symbolFromArg(v any) (analysis.Symbol, error) {
	entry, ok := v.(map[string]any)
	if !ok {
		return analysis.Symbol{}, fmt.Errorf("expected a map, got %T", v)
	}
	name, _ := entry["name"].(string)
	if name == "" {
		return analysis.Symbol{}, fmt.Errorf("symbol name is required")
	}
	kind, _ := entry["kind"].(string)
	if kind == "" {
		kind = string(analysis.KindFunc)
	}
	signature, _ := entry["signature"].(string)
	return analysis.Symbol{
		Name:      name,
		Kind:      analysis.SymbolKind(kind),
		Signature: signature,
	}, nil
}
