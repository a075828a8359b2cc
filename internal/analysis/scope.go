package analysis

import "fmt"

// TypeSpecifier narrows types based on conditional context. Test suites
// typically construct one with a few extension hooks and pass it to the
// scope factory.
type TypeSpecifier struct {
	// Extensions are consulted in order; the first hit wins.
	Extensions []TypeSpecifierExtension
}

// TypeSpecifierExtension narrows a type for one known predicate shape.
type TypeSpecifierExtension interface {
	Narrow(t Type, predicate string) (Type, bool)
}

// Specify narrows t under the given predicate, falling back to t unchanged
// when no extension applies.
func (s *TypeSpecifier) Specify(t Type, predicate string) Type {
	for _, ext := range s.Extensions {
		if narrowed, ok := ext.Narrow(t, predicate); ok {
			return narrowed
		}
	}
	return t
}

// Scope is the per-file analysis context: variable bindings resolved against
// the shared registry, reflection provider, and specifier.
type Scope struct {
	file       string
	registry   *TypeRegistry
	reflection ReflectionProvider
	specifier  *TypeSpecifier
	variables  map[string]Type
}

// File returns the path of the file this scope analyzes.
func (s *Scope) File() string { return s.file }

// Assign binds a variable name to a type within this scope.
func (s *Scope) Assign(name string, t Type) {
	s.variables[name] = t
}

// VariableType resolves a variable previously assigned in this scope.
func (s *Scope) VariableType(name string) (Type, error) {
	t, ok := s.variables[name]
	if !ok {
		return "", fmt.Errorf("variable %q is not defined in scope for %s", name, s.file)
	}
	return t, nil
}

// ResolveName resolves a type name through the registry, falling back to the
// reflection provider for runtime-declared types.
func (s *Scope) ResolveName(name string) (Type, error) {
	if t, ok := s.registry.Lookup(name); ok {
		return t, nil
	}
	if s.reflection.HasSymbol(name) {
		sym, err := s.reflection.Symbol(name)
		if err != nil {
			return "", err
		}
		return Type(sym.Name), nil
	}
	return "", fmt.Errorf("type %q is not known to the registry or the runtime", name)
}

// Specifier returns the type specifier shared by scopes from this factory.
func (s *Scope) Specifier() *TypeSpecifier { return s.specifier }

// ScopeFactory builds per-file scopes over one container's shared services.
// Factories are cheap; the harness builds a fresh one per test.
type ScopeFactory struct {
	registry   *TypeRegistry
	reflection ReflectionProvider
	specifier  *TypeSpecifier
}

// NewScopeFactory assembles a factory from its collaborator services.
func NewScopeFactory(registry *TypeRegistry, reflection ReflectionProvider, specifier *TypeSpecifier) *ScopeFactory {
	return &ScopeFactory{registry: registry, reflection: reflection, specifier: specifier}
}

// NewScope creates a fresh scope for the given file.
func (f *ScopeFactory) NewScope(file string) *Scope {
	return &Scope{
		file:       file,
		registry:   f.registry,
		reflection: f.reflection,
		specifier:  f.specifier,
		variables:  make(map[string]Type),
	}
}

// Reflection exposes the provider the factory's scopes resolve against.
func (f *ScopeFactory) Reflection() ReflectionProvider { return f.reflection }
