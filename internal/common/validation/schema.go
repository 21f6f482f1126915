// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is a compiled JSON schema document.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// ValidationError is a single schema violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaError carries every violation found in a document.
type SchemaError struct {
	Schema string
	Errors []ValidationError
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return fmt.Sprintf("%s schema violation: %s", e.Schema, strings.Join(parts, "; "))
}

// CompileSchema parses a JSON schema given as a string.
func CompileSchema(name, schemaJSON string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompileSchema is CompileSchema for package-level schemas.
func MustCompileSchema(name, schemaJSON string) *Schema {
	s, err := CompileSchema(name, schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks doc, which is marshalled to JSON first.
func (s *Schema) Validate(doc interface{}) error {
	result, err := s.schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate against %s schema: %w", s.name, err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, ValidationError{Field: re.Field(), Message: re.Description()})
	}
	return &SchemaError{Schema: s.name, Errors: errs}
}
