// Package config loads and validates bedrock container configuration files.
//
// Configuration is YAML: a file declares parameters, service definitions
// (factory references plus arguments), and optional includes resolved
// relative to the file. An ordered list of files is merged left to right;
// later files override parameters and replace same-named services.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Service declares one container service: the registered factory that builds
// it and the arguments handed to that factory.
type Service struct {
	Factory   string         `yaml:"factory"`
	Arguments map[string]any `yaml:"arguments,omitempty"`
}

// File is the parsed form of a single configuration file.
type File struct {
	Includes   []string           `yaml:"includes,omitempty"`
	Parameters map[string]any     `yaml:"parameters,omitempty"`
	Services   map[string]Service `yaml:"services,omitempty"`
}

// LoadError reports a configuration file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IncludeCycleError reports an include chain that revisits a file.
type IncludeCycleError struct {
	Path string
}

func (e *IncludeCycleError) Error() string {
	return fmt.Sprintf("config include cycle through %s", e.Path)
}

// Load reads one configuration file, resolving its includes depth-first.
// Included files contribute first, so the including file overrides them.
func Load(path string) (*File, error) {
	return load(path, make(map[string]bool))
}

func load(path string, active map[string]bool) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if active[abs] {
		return nil, &IncludeCycleError{Path: path}
	}
	active[abs] = true
	defer delete(active, abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(file.Includes) == 0 {
		return &file, nil
	}

	dir := filepath.Dir(abs)
	merged := &File{}
	for _, include := range file.Includes {
		if !filepath.IsAbs(include) {
			include = filepath.Join(dir, include)
		}
		included, err := load(include, active)
		if err != nil {
			return nil, err
		}
		merged = Merge(merged, included)
	}
	return Merge(merged, &file), nil
}

// Merge combines two parsed files; b wins on conflicts. Includes are already
// resolved by Load and are not carried into the result.
func Merge(a, b *File) *File {
	out := &File{
		Parameters: make(map[string]any, len(a.Parameters)+len(b.Parameters)),
		Services:   make(map[string]Service, len(a.Services)+len(b.Services)),
	}
	for k, v := range a.Parameters {
		out.Parameters[k] = v
	}
	for k, v := range b.Parameters {
		out.Parameters[k] = v
	}
	for k, v := range a.Services {
		out.Services[k] = v
	}
	for k, v := range b.Services {
		out.Services[k] = v
	}
	return out
}

// MergeAll merges an ordered list of parsed files, later files winning.
func MergeAll(files ...*File) *File {
	merged := &File{}
	for _, f := range files {
		merged = Merge(merged, f)
	}
	return merged
}
