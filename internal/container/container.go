// Package container implements bedrock's configuration-driven service
// registry. A container is built once from an ordered list of config files
// and is immutable afterwards: definitions never change, and each service is
// constructed lazily at most once.
package container

import (
	"fmt"
	"sort"
	"sync"
)

// Container is an immutable, queryable registry of constructed services.
// Callers share one instance per configuration combination; they receive
// references, never ownership.
type Container struct {
	id      string
	workDir string
	params  map[string]any
	defs    map[string]*definition
}

// definition holds one service's factory and its lazily built value.
// The sync.Once guarantees at-most-once construction under concurrent Get.
type definition struct {
	factory FactoryFunc
	args    map[string]any

	once  sync.Once
	value any
	err   error
}

// ID returns the unique identifier of this container instance.
func (c *Container) ID() string { return c.id }

// WorkDir returns the working directory the container was built with.
func (c *Container) WorkDir() string { return c.workDir }

// Parameter returns a merged configuration parameter.
func (c *Container) Parameter(name string) (any, bool) {
	v, ok := c.params[name]
	return v, ok
}

// Has reports whether a service definition exists, without constructing it.
func (c *Container) Has(name string) bool {
	_, ok := c.defs[name]
	return ok
}

// Services returns all defined service names, sorted.
func (c *Container) Services() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get resolves a service by name, constructing it on first use. Repeated
// calls return the same value; a factory error is sticky for the container's
// lifetime, matching the no-rebuild contract of an immutable registry.
func (c *Container) Get(name string) (any, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, UnknownServiceError{Name: name}
	}

	def.once.Do(func() {
		value, err := def.factory(c, def.args)
		if err != nil {
			def.err = ConstructionError{Service: name, Err: err}
			return
		}
		def.value = value
	})

	if def.err != nil {
		return nil, def.err
	}
	return def.value, nil
}

// GetAs resolves a service and asserts its concrete type.
func GetAs[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, TypeMismatchError{
			Service:  name,
			Expected: fmt.Sprintf("%T", zero),
			Actual:   fmt.Sprintf("%T", v),
		}
	}
	return typed, nil
}
