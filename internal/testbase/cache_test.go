package testbase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bedrockhq/bedrock/internal/container"
)

// countingBuilder wraps the real builder and records invocations.
type countingBuilder struct {
	builds   int
	failNext error
	inner    *container.Builder
}

func newCountingBuilder() *countingBuilder {
	return &countingBuilder{inner: container.NewBuilder(nil, nil)}
}

func (b *countingBuilder) build(workDir string, sources []string) (*container.Container, error) {
	b.builds++
	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return nil, err
	}
	return b.inner.Build(workDir, sources)
}

func writeExtraConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// extraConfig is a minimal suite-contributed file; it swaps in the static
// reflection provider so cache tests never touch the stub database.
const extraConfig = `
services:
  reflectionProvider:
    factory: analysis.reflection.static
`

func newTestCache(t *testing.T) (*Cache, *countingBuilder) {
	t.Helper()
	builder := newCountingBuilder()
	cache := NewCache(WithBuilder(builder.build), WithBootstrap(nil))
	return cache, builder
}

func setStaticReflection(t *testing.T, v bool) {
	t.Helper()
	prev := UseStaticReflectionProvider()
	SetUseStaticReflectionProvider(v)
	t.Cleanup(func() { SetUseStaticReflectionProvider(prev) })
}

func TestCache_SameConfigSameInstance(t *testing.T) {
	cache, builder := newTestCache(t)
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	first, err := cache.Get(extra)
	require.NoError(t, err)
	second, err := cache.Get(extra)
	require.NoError(t, err)
	third, err := cache.Get(extra)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, third)
	assert.Equal(t, 1, builder.builds, "builder must run exactly once per configuration")
	assert.Equal(t, 1, cache.Len())
}

func TestCache_DifferentConfigDifferentInstance(t *testing.T) {
	cache, builder := newTestCache(t)
	extraA := writeExtraConfig(t, "a.yaml", extraConfig)
	extraB := writeExtraConfig(t, "b.yaml", extraConfig)

	a, err := cache.Get([]string{extraA})
	require.NoError(t, err)
	b, err := cache.Get([]string{extraA, extraB})
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, builder.builds)
	assert.Equal(t, 2, cache.Len())
}

// Two suites, one contributing nothing and one contributing an extra file:
// distinct containers, each stable across repeated requests.
func TestCache_TwoSuitesScenario(t *testing.T) {
	setStaticReflection(t, true) // keep the default suite off the stub database

	cache, builder := newTestCache(t)
	suiteA := Suite{}
	suiteB := extraSuite{files: []string{writeExtraConfig(t, "extra.yaml", extraConfig)}}

	a1, err := cache.ContainerFor(suiteA)
	require.NoError(t, err)
	b1, err := cache.ContainerFor(suiteB)
	require.NoError(t, err)
	a2, err := cache.ContainerFor(suiteA)
	require.NoError(t, err)

	assert.NotSame(t, a1, b1)
	assert.Same(t, a1, a2)
	assert.Equal(t, 2, builder.builds)
}

// Flipping the static-reflection flag between two otherwise identical calls
// must route to two independently built entries.
func TestCache_FlagTogglesEntry(t *testing.T) {
	cache, builder := newTestCache(t)
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	setStaticReflection(t, false)
	plain, err := cache.Get(extra)
	require.NoError(t, err)

	SetUseStaticReflectionProvider(true)
	static, err := cache.Get(extra)
	require.NoError(t, err)

	assert.NotSame(t, plain, static)
	assert.Equal(t, 2, builder.builds)

	// Flipping back routes to the first entry without rebuilding.
	SetUseStaticReflectionProvider(false)
	again, err := cache.Get(extra)
	require.NoError(t, err)
	assert.Same(t, plain, again)
	assert.Equal(t, 2, builder.builds)
}

func TestCache_BuildFailureNotCached(t *testing.T) {
	cache, builder := newTestCache(t)
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	builder.failNext = errors.New("malformed configuration")
	_, err := cache.Get(extra)
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len(), "failed build must not be cached")

	// Same fingerprint retries the full build.
	built, err := cache.Get(extra)
	require.NoError(t, err)
	assert.NotNil(t, built)
	assert.Equal(t, 2, builder.builds)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_BootstrapRunsOncePerEntry(t *testing.T) {
	var ran []string
	actions := []BootstrapAction{
		{Name: "first", Run: func(*container.Container) error { ran = append(ran, "first"); return nil }},
		{Name: "gated-off", When: func() bool { return false }, Run: func(*container.Container) error {
			ran = append(ran, "gated-off")
			return nil
		}},
		{Name: "second", Run: func(*container.Container) error { ran = append(ran, "second"); return nil }},
	}

	builder := newCountingBuilder()
	cache := NewCache(WithBuilder(builder.build), WithBootstrap(actions))
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	for i := 0; i < 3; i++ {
		_, err := cache.Get(extra)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"first", "second"}, ran, "actions run once, in order, gated actions skipped")
}

func TestCache_BootstrapFailureNotCached(t *testing.T) {
	fail := true
	runs := 0
	actions := []BootstrapAction{{
		Name: "flaky-stubs",
		Run: func(*container.Container) error {
			runs++
			if fail {
				return errors.New("stub load failed")
			}
			return nil
		},
	}}

	builder := newCountingBuilder()
	cache := NewCache(WithBuilder(builder.build), WithBootstrap(actions))
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	_, err := cache.Get(extra)
	var bootErr BootstrapError
	require.ErrorAs(t, err, &bootErr)
	assert.Equal(t, "flaky-stubs", bootErr.Action)
	assert.Equal(t, 0, cache.Len())

	fail = false
	_, err = cache.Get(extra)
	require.NoError(t, err)
	assert.Equal(t, 2, builder.builds, "retry repeats the full build")
	assert.Equal(t, 2, runs)
}

func TestCache_Reset(t *testing.T) {
	cache, builder := newTestCache(t)
	extra := []string{writeExtraConfig(t, "extra.yaml", extraConfig)}

	first, err := cache.Get(extra)
	require.NoError(t, err)

	cache.Reset()
	assert.Equal(t, 0, cache.Len())

	second, err := cache.Get(extra)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, builder.builds)
}

func TestEffectiveSources_Order(t *testing.T) {
	setStaticReflection(t, false)
	sources := EffectiveSources([]string{"one.yaml", "two.yaml"})
	assert.Equal(t, []string{"one.yaml", "two.yaml", BaseConfig()}, sources)

	SetUseStaticReflectionProvider(true)
	sources = EffectiveSources([]string{"one.yaml"})
	assert.Equal(t, []string{"one.yaml", BaseConfig(), StaticReflectionConfig()}, sources)
}

// extraSuite overrides the Suite extension point.
type extraSuite struct {
	Suite
	files []string
}

func (s extraSuite) AdditionalConfigFiles() []string { return s.files }
