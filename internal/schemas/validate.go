// Package schemas validates JSON documents against the canonical resume
// record schema.
package schemas

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/resume-formatter/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// rootField names violations that apply to the whole document
const rootField = "(root)"

// FieldError is one violation at a dotted field path
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in a document
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError reports a schema that could not be compiled or a
// document that could not be read
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var recordSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return compile(schemafiles.ResumeRecordFile, schemafiles.ResumeRecord)
})

func compile(name string, schema []byte) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return nil, &SchemaLoadError{Schema: name, Cause: err}
	}
	return compiled, nil
}

// ValidateRecordJSON validates JSON bytes against the canonical resume record schema
func ValidateRecordJSON(data []byte) error {
	schema, err := recordSchema()
	if err != nil {
		return err
	}
	return validate(schemafiles.ResumeRecordFile, schema, data)
}

// ValidateRecord marshals v and validates it against the canonical resume record schema
func ValidateRecord(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return ValidateRecordJSON(data)
}

// ValidateAgainst validates data against an arbitrary schema document
func ValidateAgainst(schema, data []byte) error {
	compiled, err := compile("(inline)", schema)
	if err != nil {
		return err
	}
	return validate("(inline)", compiled, data)
}

func validate(name string, schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Schema: name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = rootField
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}
