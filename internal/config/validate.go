package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaCUE string

// ValidationError describes one schema violation in a configuration file.
type ValidationError struct {
	Path    string `json:"path"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

func (e ValidationError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", loc, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Validate checks one configuration file against the embedded CUE schema.
// A non-nil error means the file could not be read or the schema itself is
// broken; schema violations come back as the slice.
func Validate(path string) ([]ValidationError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}
	fileDef := schema.LookupPath(cue.ParsePath("#File"))
	if err := fileDef.Err(); err != nil {
		return nil, fmt.Errorf("invalid embedded schema: %w", err)
	}

	astFile, err := cueyaml.Extract(path, data)
	if err != nil {
		return cueErrorsToValidation(path, err), nil
	}

	doc := ctx.BuildFile(astFile)
	if err := doc.Err(); err != nil {
		return cueErrorsToValidation(path, err), nil
	}

	unified := fileDef.Unify(doc)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return cueErrorsToValidation(path, err), nil
	}

	return nil, nil
}

// ValidateAll validates an ordered list of files, accumulating violations.
func ValidateAll(paths []string) ([]ValidationError, error) {
	var all []ValidationError
	for _, path := range paths {
		errs, err := Validate(path)
		if err != nil {
			return nil, err
		}
		all = append(all, errs...)
	}
	return all, nil
}

func cueErrorsToValidation(path string, err error) []ValidationError {
	var out []ValidationError
	for _, e := range cueerrors.Errors(err) {
		ve := ValidationError{
			Path:    path,
			Field:   strings.Join(e.Path(), "."),
			Message: formatCUEMessage(e),
		}
		if pos := e.Position(); pos.IsValid() {
			ve.Line = pos.Line()
		}
		out = append(out, ve)
	}
	if len(out) == 0 {
		out = append(out, ValidationError{Path: path, Message: err.Error()})
	}
	return out
}

func formatCUEMessage(e cueerrors.Error) string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}
