package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "valid.yaml", `
includes: []
parameters:
  analysis.level: "strict"
services:
  typeRegistry:
    factory: analysis.typeRegistry
    arguments:
      types:
        int: builtin.int
`)

	violations, err := Validate(path)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidate_MissingFactory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "nofactory.yaml", `
services:
  typeRegistry:
    arguments: {}
`)

	violations, err := Validate(path)
	require.NoError(t, err)
	require.NotEmpty(t, violations)
	assert.Equal(t, path, violations[0].Path)
}

func TestValidate_EmptyFactory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "emptyfactory.yaml", `
services:
  typeRegistry:
    factory: ""
`)

	violations, err := Validate(path)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestValidate_UnknownServiceField(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "unknown.yaml", `
services:
  typeRegistry:
    factory: analysis.typeRegistry
    lifetime: scoped
`)

	violations, err := Validate(path)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestValidate_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "garbage.yaml", ":\n  - [\n")

	violations, err := Validate(path)
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}

func TestValidate_MissingFile(t *testing.T) {
	_, err := Validate(t.TempDir() + "/absent.yaml")

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateAll_Accumulates(t *testing.T) {
	dir := t.TempDir()
	good := writeConfig(t, dir, "good.yaml", "parameters: {a: 1}\n")
	bad1 := writeConfig(t, dir, "bad1.yaml", "services: {x: {arguments: {}}}\n")
	bad2 := writeConfig(t, dir, "bad2.yaml", "services: {y: {factory: \"\"}}\n")

	violations, err := ValidateAll([]string{good, bad1, bad2})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(violations), 2)
}
