package container

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bedrockhq/bedrock/internal/config"
)

// Builder assembles containers from ordered configuration source lists.
// One builder serves many builds; it holds no per-container state.
type Builder struct {
	factories *FactoryRegistry
	logger    *slog.Logger
}

// NewBuilder creates a builder over the given factory registry. A nil
// registry gets the built-in factories; a nil logger gets slog.Default.
func NewBuilder(factories *FactoryRegistry, logger *slog.Logger) *Builder {
	if factories == nil {
		factories = NewFactoryRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{factories: factories, logger: logger}
}

// Build loads, validates, and merges the ordered configuration sources and
// wires the resulting service definitions. The working directory is exposed
// to factories via Container.WorkDir and to services as the tmpDir
// parameter. Later sources override earlier ones.
func (b *Builder) Build(workDir string, sources []string) (*Container, error) {
	if len(sources) == 0 {
		return nil, BuildError{Err: fmt.Errorf("no configuration sources given")}
	}

	merged := &config.File{}
	for _, source := range sources {
		violations, err := config.Validate(source)
		if err != nil {
			return nil, BuildError{Source: source, Err: err}
		}
		if len(violations) > 0 {
			return nil, BuildError{Source: source, Err: violations[0]}
		}

		file, err := config.Load(source)
		if err != nil {
			return nil, BuildError{Source: source, Err: err}
		}
		merged = config.Merge(merged, file)
	}

	c := &Container{
		id:      uuid.NewString(),
		workDir: workDir,
		params:  merged.Parameters,
		defs:    make(map[string]*definition, len(merged.Services)),
	}
	if c.params == nil {
		c.params = make(map[string]any)
	}
	c.params["tmpDir"] = workDir

	for name, svc := range merged.Services {
		factory, ok := b.factories.Lookup(svc.Factory)
		if !ok {
			return nil, BuildError{Err: UnknownFactoryError{Service: name, Factory: svc.Factory}}
		}
		c.defs[name] = &definition{factory: factory, args: svc.Arguments}
	}

	b.logger.Debug("built container",
		"id", c.id,
		"sources", len(sources),
		"services", len(c.defs))

	return c, nil
}
