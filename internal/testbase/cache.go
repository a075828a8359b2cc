package testbase

import (
	"log/slog"
	"sync"

	"github.com/bedrockhq/bedrock/internal/config"
	"github.com/bedrockhq/bedrock/internal/container"
)

// BuildFunc constructs a container from a working directory and an ordered
// configuration source list.
type BuildFunc func(workDir string, sources []string) (*container.Container, error)

// Cache memoizes built containers by configuration fingerprint for the
// lifetime of the process. Entries are never evicted or revalidated:
// configuration files are assumed immutable for the run.
//
// The zero cost path is a map hit under the mutex; the lock also covers the
// build, so concurrent first requests for one fingerprint build at most once.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*container.Container
	build     BuildFunc
	bootstrap []BootstrapAction
	logger    *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithBuilder replaces the container build function.
func WithBuilder(build BuildFunc) Option {
	return func(c *Cache) { c.build = build }
}

// WithBootstrap replaces the bootstrap sequence run once per cache entry.
func WithBootstrap(actions []BootstrapAction) Option {
	return func(c *Cache) { c.bootstrap = actions }
}

// WithLogger sets the cache's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// NewCache creates an empty container cache with the default builder and
// bootstrap sequence.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]*container.Container),
		bootstrap: DefaultBootstrap(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.build == nil {
		c.build = container.NewBuilder(nil, c.logger).Build
	}
	return c
}

// Get returns the memoized container for the caller-contributed extra
// configuration files, building it on first use.
//
// The effective source list is extra + the base configuration + the
// static-reflection variant when the process-wide flag is set; the flag is
// read here, at call time. Repeated calls with an equal effective list
// return the identical container instance. Build or bootstrap failures
// leave no entry behind, so the next call retries the full build.
func (c *Cache) Get(extra []string) (*container.Container, error) {
	sources := EffectiveSources(extra)
	key := config.Fingerprint(sources)

	c.mu.Lock()
	defer c.mu.Unlock()

	if built, ok := c.entries[key]; ok {
		return built, nil
	}

	workDir, err := EnsureWorkDir()
	if err != nil {
		return nil, err
	}

	built, err := c.build(workDir, sources)
	if err != nil {
		return nil, err
	}

	if err := runBootstrap(built, c.bootstrap); err != nil {
		return nil, err
	}

	c.entries[key] = built
	c.logger.Debug("cached test container",
		"fingerprint", key[:12],
		"sources", len(sources),
		"container", built.ID())
	return built, nil
}

// ContainerFor returns the memoized container for a suite's contributed
// configuration.
func (c *Cache) ContainerFor(s ConfigContributor) (*container.Container, error) {
	return c.Get(s.AdditionalConfigFiles())
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached entry. Intended as a teardown hook between
// independent harness runs, not for use inside one run.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*container.Container)
}

// EffectiveSources appends the harness defaults to the caller-contributed
// list: the base configuration always, the static-reflection variant when
// the process-wide flag is set. Order is significant; it determines the
// fingerprint.
func EffectiveSources(extra []string) []string {
	sources := make([]string, 0, len(extra)+2)
	sources = append(sources, extra...)
	sources = append(sources, BaseConfig())
	if UseStaticReflectionProvider() {
		sources = append(sources, StaticReflectionConfig())
	}
	return sources
}
