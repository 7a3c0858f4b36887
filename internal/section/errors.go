// Package section implements the repeated-entry editor behind every resume tab:
// parallel field sequences, the single-expansion accordion and suggestion merging.
package section

import "fmt"

// BoundsError is returned when an index is outside the section.
type BoundsError struct {
	Op    string
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: index %d out of bounds for %d entries", e.Op, e.Index, e.Len)
}

// CardinalityError is returned when removing the last remaining entry, or when
// adding beyond Max entries.
type CardinalityError struct {
	Op  string
	Min int
	Max int
}

func (e *CardinalityError) Error() string {
	if e.Max > 0 {
		return fmt.Sprintf("%s: section holds at most %d entries", e.Op, e.Max)
	}
	return fmt.Sprintf("%s: section must keep at least %d entry", e.Op, e.Min)
}

// FieldError is returned for a field key the section schema does not declare,
// or for an operation the field's kind does not support.
type FieldError struct {
	Section string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("field %q: %s", e.Field, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("section %s: field %q: %s", e.Section, e.Field, e.Message)
	}
	return fmt.Sprintf("section %s: unknown field %q", e.Section, e.Field)
}

// SchemaError represents an invalid section schema definition
type SchemaError struct {
	Section string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	prefix := "schema error"
	if e.Section != "" {
		prefix = fmt.Sprintf("schema error in section %s", e.Section)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}
