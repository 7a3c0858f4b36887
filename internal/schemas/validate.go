// Package schemas provides JSON Schema validation for documents accepted by
// the API, such as imported drafts.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed draft.schema.json
var draftSchemaSource string

// DraftSchema returns the JSON Schema for importable drafts.
func DraftSchema() string {
	return draftSchemaSource
}

var (
	draftSchemaOnce     sync.Once
	draftSchemaCompiled *gojsonschema.Schema
	draftSchemaErr      error
)

// draftSchema compiles the embedded schema on first use.
func draftSchema() (*gojsonschema.Schema, error) {
	draftSchemaOnce.Do(func() {
		draftSchemaCompiled, draftSchemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(draftSchemaSource))
		if draftSchemaErr != nil {
			draftSchemaErr = &SchemaLoadError{Path: "draft.schema.json", Message: "invalid embedded schema", Cause: draftSchemaErr}
		}
	})
	return draftSchemaCompiled, draftSchemaErr
}

// ValidationError lists every schema violation of a document
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

// FieldError is one violation. Rule names the failed keyword, e.g. "required".
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule,omitempty"`
	Message string `json:"message"`
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateDraftJSON checks an imported draft document. Malformed JSON is
// reported as a ValidationError on the root.
func ValidateDraftJSON(doc []byte) error {
	if !json.Valid(doc) {
		return &ValidationError{Errors: []FieldError{{Field: rootField, Rule: "syntax", Message: "document is not valid JSON"}}}
	}
	schema, err := draftSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &SchemaLoadError{Path: "draft.schema.json", Message: "document could not be loaded", Cause: err}
	}
	return resultError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "schema validation failed during load", Cause: err}
	}
	return resultError(result)
}

const rootField = "(root)"

// resultError converts a failed result into a ValidationError, or nil when valid.
func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = rootField
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Rule:    desc.Type(),
			Message: desc.Description(),
		})
	}
	return validationErr
}
