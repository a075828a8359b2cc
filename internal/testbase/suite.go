package testbase

import (
	"path/filepath"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/bedrockhq/bedrock/internal/container"
)

// ConfigContributor is the extension point for rule suites: implementations
// contribute configuration files beyond the harness defaults.
type ConfigContributor interface {
	// AdditionalConfigFiles returns extra configuration sources, in order.
	AdditionalConfigFiles() []string
}

// Suite is the embeddable base for rule test suites. Its default
// contribution is empty; embedding types override AdditionalConfigFiles to
// select a different container variant.
type Suite struct{}

// AdditionalConfigFiles implements ConfigContributor with no extra sources.
func (Suite) AdditionalConfigFiles() []string { return nil }

var defaultCache = NewCache()

// DefaultCache returns the process-wide cache behind the package-level
// helpers.
func DefaultCache() *Cache { return defaultCache }

// GetContainer returns the memoized container for the given suite, failing
// the test on any provisioning, build, or bootstrap error.
func GetContainer(t testing.TB, s ConfigContributor) *container.Container {
	t.Helper()
	c, err := defaultCache.ContainerFor(s)
	if err != nil {
		t.Fatalf("failed to obtain test container: %v", err)
	}
	return c
}

// Reset drops the process-wide cache. Teardown hook between independent
// harness runs.
func Reset() { defaultCache.Reset() }

// useStaticReflection selects the static-reflection container variant. Read
// at every Get, so flipping it before a call changes which entry is used.
var useStaticReflection atomic.Bool

// SetUseStaticReflectionProvider toggles the static-reflection variant for
// subsequent container requests.
func SetUseStaticReflectionProvider(v bool) { useStaticReflection.Store(v) }

// UseStaticReflectionProvider reports the current flag state.
func UseStaticReflectionProvider() bool { return useStaticReflection.Load() }

// BaseConfig returns the path of the base configuration every container
// includes.
func BaseConfig() string { return confPath("base.yaml") }

// StaticReflectionConfig returns the path of the static-reflection variant
// configuration.
func StaticReflectionConfig() string { return confPath("static-reflection.yaml") }

// confPath resolves a shipped configuration file relative to this source
// file, so the harness works from any test's working directory.
func confPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "conf", name)
}
