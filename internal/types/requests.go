// Package types defines the request and response bodies of the editing API.
package types

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared request validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate runs the validator tags on a request value.
func Validate(req any) error {
	return Validator().Struct(req)
}

// DescribeValidationError renders the first failed rule of a validator error.
func DescribeValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

// CreateDraftRequest optionally seeds a new draft with imported data.
// The raw body is also checked against the draft import schema.
type CreateDraftRequest struct {
	TemplateID string              `json:"template_id,omitempty" validate:"omitempty,max=64"`
	Fields     map[string][]string `json:"fields,omitempty" validate:"omitempty,max=100,dive,keys,min=1,max=64,endkeys,max=50"`
}

// SetFieldRequest replaces one field of one entry.
type SetFieldRequest struct {
	Value *string `json:"value" validate:"required"`
}

// ApplySuggestionRequest merges suggestion text into an entry's rich text.
// Field defaults to the section's body field.
type ApplySuggestionRequest struct {
	Field string `json:"field,omitempty" validate:"omitempty,max=64"`
	Text  string `json:"text" validate:"required,max=500"`
}

// SelectTemplateRequest picks the draft's template.
type SelectTemplateRequest struct {
	TemplateID string `json:"template_id" validate:"required,max=64"`
}

// SetPreferenceRequest sets one boolean preference.
type SetPreferenceRequest struct {
	Value *bool `json:"value" validate:"required"`
}
