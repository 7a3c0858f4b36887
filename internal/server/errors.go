// Package server provides the HTTP API of the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/section"
	"github.com/jonathan/resume-builder/internal/settings"
	"github.com/jonathan/resume-builder/internal/suggest"
)

// ErrDraftNotFound indicates the draft does not exist for the caller
type ErrDraftNotFound struct {
	ID uuid.UUID
}

func (e *ErrDraftNotFound) Error() string {
	return fmt.Sprintf("draft not found: %s", e.ID)
}

// ErrSectionNotFound indicates a section name that is not in the registry
type ErrSectionNotFound struct {
	Name string
}

func (e *ErrSectionNotFound) Error() string {
	return fmt.Sprintf("section not found: %s", e.Name)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that is not configured on this server
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		draftNotFound   *ErrDraftNotFound
		sectionNotFound *ErrSectionNotFound
		validation      *ErrValidation
		unavailable     *ErrUnavailable
		bounds          *section.BoundsError
		cardinality     *section.CardinalityError
		field           *section.FieldError
		unknownTemplate *form.UnknownTemplateError
		payment         *form.PaymentRequiredError
		unknownKey      *settings.UnknownKeyError
		generation      *suggest.GenerationError
		schemaErr       *schemas.ValidationError
		parseErr        *richtext.ParseError
	)

	switch {
	case errors.As(err, &draftNotFound),
		errors.As(err, &sectionNotFound),
		errors.As(err, &bounds),
		errors.As(err, &unknownKey):
		return http.StatusNotFound
	case errors.As(err, &cardinality):
		return http.StatusConflict
	case errors.As(err, &payment):
		return http.StatusPaymentRequired
	case errors.As(err, &validation),
		errors.As(err, &field),
		errors.As(err, &unknownTemplate),
		errors.As(err, &schemaErr),
		errors.As(err, &parseErr),
		errors.Is(err, richtext.ErrEmptySuggestion):
		return http.StatusBadRequest
	case errors.As(err, &generation):
		return http.StatusBadGateway
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
