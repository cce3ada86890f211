package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "grocery-assistant/internal/common/errors"
)

// Schema is a compiled JSON schema.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// ValidationError describes one failing field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// MustCompile compiles a schema given as a Go map and panics on invalid schemas.
// Schemas are package-level literals, so a failure is a programming error.
func MustCompile(name string, schema map[string]interface{}) *Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid schema %s: %v", name, err))
	}
	return &Schema{name: name, schema: compiled}
}

// Validate checks doc (raw JSON bytes) against the schema.
func (s *Schema) Validate(doc []byte) []ValidationError {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return []ValidationError{{Field: "(root)", Message: err.Error(), Code: "INVALID_JSON"}}
	}
	if result.Valid() {
		return nil
	}

	out := make([]ValidationError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		out = append(out, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out
}

// Check validates doc and folds the failures into an INVALID_REQUEST error.
func (s *Schema) Check(doc []byte) error {
	errs := s.Validate(doc)
	if len(errs) == 0 {
		return nil
	}

	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return apperrors.NewInvalidRequestError(strings.Join(parts, "; ")).
		WithMetadata("schema", s.name).
		WithMetadata("errors", errs)
}

// StringField builds a required, non-blank string property with a length limit.
func StringField(maxLength int) map[string]interface{} {
	return map[string]interface{}{
		"type":      "string",
		"minLength": 1,
		"maxLength": maxLength,
		"pattern":   `\S`,
	}
}

// Object builds an object schema; required names the mandatory properties.
func Object(properties map[string]interface{}, required ...string) map[string]interface{} {
	req := make([]interface{}, 0, len(required))
	for _, r := range required {
		req = append(req, r)
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   req,
	}
}
