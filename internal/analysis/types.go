package analysis

import (
	"fmt"
	"sort"
	"sync"
)

// Type identifies a resolved type by its fully qualified name.
type Type string

func (t Type) String() string { return string(t) }

// Diagnostic is a single finding reported by the engine against a file.
type Diagnostic struct {
	Message string
	Path    string
	Line    int
}

// String renders the diagnostic in the canonical path:line form used by
// reports and editor integrations.
func (d Diagnostic) String() string {
	if d.Path == "" {
		return fmt.Sprintf("%d: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("%s:%d: %s", d.Path, d.Line, d.Message)
}

// TypeRegistry is the process-wide catalogue of named types known to the
// engine. It is populated at container build time and by bootstrap actions,
// then treated as read-mostly during analysis.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]Type)}
}

// Register adds or replaces a named type.
func (r *TypeRegistry) Register(name string, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Lookup resolves a name to a registered type.
func (r *TypeRegistry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns all registered type names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered types.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
