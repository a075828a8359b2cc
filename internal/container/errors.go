package container

import "fmt"

// UnknownServiceError is returned by Get for a name no definition covers.
type UnknownServiceError struct {
	Name string
}

func (e UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service %q", e.Name)
}

// UnknownFactoryError reports a service definition referencing a factory
// that was never registered.
type UnknownFactoryError struct {
	Service string
	Factory string
}

func (e UnknownFactoryError) Error() string {
	return fmt.Sprintf("service %q references unregistered factory %q", e.Service, e.Factory)
}

// ConstructionError wraps a factory failure for one service.
type ConstructionError struct {
	Service string
	Err     error
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct service %q: %v", e.Service, e.Err)
}

func (e ConstructionError) Unwrap() error { return e.Err }

// TypeMismatchError reports a resolved service of an unexpected type.
type TypeMismatchError struct {
	Service  string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("service %q is %s, not %s", e.Service, e.Actual, e.Expected)
}

// BuildError wraps a failure to assemble a container from its configuration.
type BuildError struct {
	Source string
	Err    error
}

func (e BuildError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to build container from %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("failed to build container: %v", e.Err)
}

func (e BuildError) Unwrap() error { return e.Err }
