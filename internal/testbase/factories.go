package testbase

import (
	"github.com/bedrockhq/bedrock/internal/analysis"
	"github.com/bedrockhq/bedrock/internal/container"
)

// Service names the harness resolves from a built container.
const (
	ServiceTypeRegistry       = "typeRegistry"
	ServiceTypeSpecifier      = "typeSpecifier"
	ServiceReflectionProvider = "reflectionProvider"
)

// NewScopeFactory assembles a fresh scope factory from the container's
// shared services and the caller-supplied collaborators. Nil collaborators
// fall back to the container's own services. Never cached: every call
// returns a new factory.
func NewScopeFactory(c *container.Container, reflection analysis.ReflectionProvider, specifier *analysis.TypeSpecifier) (*analysis.ScopeFactory, error) {
	registry, err := container.GetAs[*analysis.TypeRegistry](c, ServiceTypeRegistry)
	if err != nil {
		return nil, err
	}
	if reflection == nil {
		reflection, err = ReflectionProvider(c)
		if err != nil {
			return nil, err
		}
	}
	if specifier == nil {
		specifier, err = container.GetAs[*analysis.TypeSpecifier](c, ServiceTypeSpecifier)
		if err != nil {
			return nil, err
		}
	}
	return analysis.NewScopeFactory(registry, reflection, specifier), nil
}

// NewTypeAliasResolver assembles a fresh alias resolver over the container's
// type registry and the caller-supplied global alias definitions.
func NewTypeAliasResolver(c *container.Container, aliases map[string]string) (*analysis.TypeAliasResolver, error) {
	registry, err := container.GetAs[*analysis.TypeRegistry](c, ServiceTypeRegistry)
	if err != nil {
		return nil, err
	}
	return analysis.NewTypeAliasResolver(registry, aliases), nil
}

// ReflectionProvider returns the container's reflection service.
func ReflectionProvider(c *container.Container) (analysis.ReflectionProvider, error) {
	return container.GetAs[analysis.ReflectionProvider](c, ServiceReflectionProvider)
}

// Broker returns the same reflection capability under its legacy name.
//
// Deprecated: use ReflectionProvider. Kept for rule suites written against
// the old accessor; scheduled for removal in the next major release.
func Broker(c *container.Container) (analysis.ReflectionProvider, error) {
	return ReflectionProvider(c)
}
