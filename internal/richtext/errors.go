package richtext

import (
	"errors"
	"fmt"
)

// ErrEmptySuggestion is returned when a merge is requested with blank text.
var ErrEmptySuggestion = errors.New("suggestion text is empty")

// ParseError represents a failure to parse editor HTML
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rich text parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("rich text parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// PolicyError is returned for an unrecognised merge policy name
type PolicyError struct {
	Policy string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("unknown merge policy: %q", e.Policy)
}
