package analysis

// TypeAliasResolver resolves configured type aliases against the registry.
// Aliases are global by convention: suites supply them once and the resolver
// is rebuilt per test, so alias changes never leak between cached containers.
type TypeAliasResolver struct {
	registry *TypeRegistry
	aliases  map[string]string
}

// NewTypeAliasResolver creates a resolver over the given alias table.
// The table is copied; later mutation of the argument has no effect.
func NewTypeAliasResolver(registry *TypeRegistry, aliases map[string]string) *TypeAliasResolver {
	copied := make(map[string]string, len(aliases))
	for alias, target := range aliases {
		copied[alias] = target
	}
	return &TypeAliasResolver{registry: registry, aliases: copied}
}

// HasAlias reports whether name is a configured alias.
func (r *TypeAliasResolver) HasAlias(name string) bool {
	_, ok := r.aliases[name]
	return ok
}

// Resolve maps an alias to its registered target type. Alias chains are
// followed until a registered type or an unknown name is reached.
func (r *TypeAliasResolver) Resolve(name string) (Type, bool) {
	seen := make(map[string]bool)
	for {
		if seen[name] {
			return "", false
		}
		seen[name] = true

		target, ok := r.aliases[name]
		if !ok {
			return r.registry.Lookup(name)
		}
		name = target
	}
}
