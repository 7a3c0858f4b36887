package section

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/richtext"
)

// FormData is the parent form that owns the section's sequences.
type FormData interface {
	UpdateFormData(key string, value []string)
}

// Card is the render model for one entry of the accordion.
type Card struct {
	Index     int               `json:"index"`
	Title     string            `json:"title"`
	Expanded  bool              `json:"expanded"`
	CanDelete bool              `json:"can_delete"`
	Values    map[string]string `json:"values"`
}

// Container composes a Section with its ActiveIndex under one schema.
// It is not safe for concurrent use; callers own it for the duration of one edit.
type Container struct {
	schema  *Schema
	section Section
	active  ActiveIndex
}

// NewContainer builds a container from stored form values and a stored active index.
// An active index beyond the section is clamped to the last entry.
func NewContainer(schema *Schema, values map[string][]string, active ActiveIndex) *Container {
	c := &Container{schema: schema, section: New(schema, values), active: active}
	n := c.section.Len()
	switch {
	case active < None:
		c.active = None
	case n == 0:
		c.active = None
	case int(active) >= n:
		c.active = ActiveIndex(n - 1)
	}
	return c
}

// Schema returns the section schema.
func (c *Container) Schema() *Schema { return c.schema }

// Section returns the current section value.
func (c *Container) Section() Section { return c.section }

// Active returns the expanded entry.
func (c *Container) Active() ActiveIndex { return c.active }

// Len returns the number of entries.
func (c *Container) Len() int { return c.section.Len() }

// EnsureInitialized gives an empty section its first entry and expands it.
// It reports whether anything changed.
func (c *Container) EnsureInitialized() bool {
	if c.section.Len() > 0 {
		return false
	}
	c.section = c.section.Append()
	c.active = 0
	return true
}

// MaxEntries bounds every section. Draft imports enforce the same cap.
const MaxEntries = 50

// Add appends an empty entry and makes it active. A full section is left
// unchanged and reported as a *CardinalityError.
func (c *Container) Add() (ActiveIndex, error) {
	if c.section.Len() >= MaxEntries {
		return c.active, &CardinalityError{Op: "add", Max: MaxEntries}
	}
	c.section = c.section.Append()
	c.active = OnInsert(c.section.Len())
	return c.active, nil
}

// Remove deletes entry i and adjusts the active index.
func (c *Container) Remove(i int) error {
	next, err := c.section.RemoveAt(i)
	if err != nil {
		return err
	}
	c.section = next
	c.active = OnRemove(i, c.active, next.Len())
	return nil
}

// Toggle expands entry i, or collapses it when it is already expanded.
func (c *Container) Toggle(i int) error {
	if i < 0 || i >= c.section.Len() {
		return &BoundsError{Op: "toggle", Index: i, Len: c.section.Len()}
	}
	c.active = OnToggle(i, c.active)
	return nil
}

// SetField stores a value typed by the user. Rich-text values are sanitized and
// normalized before they are stored.
func (c *Container) SetField(key string, i int, value string) error {
	field, ok := c.schema.Field(key)
	if !ok {
		return &FieldError{Section: c.schema.Name, Field: key}
	}
	if field.Kind == KindRichText {
		normalized, err := richtext.Normalize(value)
		if err != nil {
			return err
		}
		value = normalized
	}

	next, err := c.section.UpdateField(key, i, value)
	if err != nil {
		return err
	}
	c.section = next
	return nil
}

// SetRichText stores HTML from the editing widget into rich-text field key of
// entry i. Unlike SetField it rejects plain-text fields.
func (c *Container) SetRichText(key string, i int, html string) (string, error) {
	if _, _, err := c.richTextValue(key, i); err != nil {
		return "", err
	}
	if err := c.SetField(key, i, html); err != nil {
		return "", err
	}
	return c.section.Value(key, i)
}

// ApplySuggestion merges text into rich-text field key of entry i using the
// field's policy. It returns the new HTML and whether text is now selected.
func (c *Container) ApplySuggestion(key string, i int, text string) (string, bool, error) {
	field, current, err := c.richTextValue(key, i)
	if err != nil {
		return "", false, err
	}

	merged, err := richtext.Merge(current, text, field.Policy)
	if err != nil {
		return "", false, err
	}
	next, err := c.section.UpdateField(key, i, merged)
	if err != nil {
		return "", false, err
	}
	c.section = next

	selected, err := richtext.IsSelected(merged, strings.TrimSpace(text))
	if err != nil {
		return "", false, err
	}
	return merged, selected, nil
}

// IsSelected reports whether text is already present as a list item in field key of entry i.
func (c *Container) IsSelected(key string, i int, text string) (bool, error) {
	_, current, err := c.richTextValue(key, i)
	if err != nil {
		return false, err
	}
	return richtext.IsSelected(current, text)
}

func (c *Container) richTextValue(key string, i int) (Field, string, error) {
	field, ok := c.schema.Field(key)
	if !ok {
		return Field{}, "", &FieldError{Section: c.schema.Name, Field: key}
	}
	if field.Kind != KindRichText {
		return Field{}, "", &FieldError{Section: c.schema.Name, Field: key, Message: "suggestions require a rich-text field"}
	}
	current, err := c.section.Value(key, i)
	if err != nil {
		return Field{}, "", err
	}
	return field, current, nil
}

// Cards returns one card per entry. Delete is disabled while only MinEntries remain.
func (c *Container) Cards() []Card {
	n := c.section.Len()
	title := c.schema.TitleField().Key
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		entry, _ := c.section.Entry(i)
		cards = append(cards, Card{
			Index:     i,
			Title:     entry[title],
			Expanded:  c.active.Expanded(i),
			CanDelete: n > MinEntries,
			Values:    entry,
		})
	}
	return cards
}

// Commit hands every field sequence to the owning form.
func (c *Container) Commit(form FormData) {
	for key, seq := range c.section.Values() {
		form.UpdateFormData(key, seq)
	}
}
