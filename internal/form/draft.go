// Package form holds the resume draft that owns every section's field sequences,
// along with template selection and the profile-completion nudge.
package form

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/richtext"
	"github.com/jonathan/resume-builder/internal/section"
)

// Draft is one resume being edited.
type Draft struct {
	ID         uuid.UUID           `json:"id"`
	Owner      string              `json:"owner"`
	TemplateID string              `json:"template_id,omitempty"`
	Fields     map[string][]string `json:"fields"`
	Active     map[string]int      `json:"active"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// NewDraft returns an empty draft for owner.
func NewDraft(owner string) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.New(),
		Owner:     owner,
		Fields:    make(map[string][]string),
		Active:    make(map[string]int),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateFormData replaces the sequence stored under key.
func (d *Draft) UpdateFormData(key string, value []string) {
	if d.Fields == nil {
		d.Fields = make(map[string][]string)
	}
	d.Fields[key] = append([]string{}, value...)
}

// Container builds the editor for schema from the draft's stored state.
func (d *Draft) Container(schema *section.Schema) *section.Container {
	active := section.None
	if idx, ok := d.Active[schema.Name]; ok {
		active = section.ActiveIndex(idx)
	}
	return section.NewContainer(schema, d.Fields, active)
}

// Commit stores the container's sequences and active index back into the draft.
func (d *Draft) Commit(c *section.Container) {
	c.Commit(d)
	if d.Active == nil {
		d.Active = make(map[string]int)
	}
	d.Active[c.Schema().Name] = int(c.Active())
	d.UpdatedAt = time.Now().UTC()
}

// Initialize lazily gives every empty section of reg its first entry.
// It reports whether the draft changed.
func (d *Draft) Initialize(reg *section.Registry) bool {
	changed := false
	for _, schema := range reg.All() {
		c := d.Container(schema)
		if c.EnsureInitialized() {
			d.Commit(c)
			changed = true
		}
	}
	return changed
}

// Import seeds the draft with external form data. Every key must belong to a
// section of reg and no sequence may exceed section.MaxEntries. Rich-text
// values are normalized the same way edits are. Ragged sequences are padded,
// empty sections get their first entry, and every section mounts with its
// first entry expanded. On error the draft is left untouched.
func (d *Draft) Import(reg *section.Registry, fields map[string][]string) error {
	cleaned := make(map[string][]string, len(fields))
	for key, seq := range fields {
		field, ok := lookupField(reg, key)
		if !ok {
			return &section.FieldError{Field: key, Message: "not a field of any section"}
		}
		if len(seq) > section.MaxEntries {
			return &section.CardinalityError{Op: "import " + key, Max: section.MaxEntries}
		}
		if field.Kind != section.KindRichText {
			cleaned[key] = seq
			continue
		}
		out := make([]string, len(seq))
		for i, value := range seq {
			normalized, err := richtext.Normalize(value)
			if err != nil {
				return err
			}
			out[i] = normalized
		}
		cleaned[key] = out
	}
	for key, seq := range cleaned {
		d.UpdateFormData(key, seq)
	}

	for _, schema := range reg.All() {
		c := section.NewContainer(schema, d.Fields, 0)
		c.EnsureInitialized()
		d.Commit(c)
	}
	return nil
}

func lookupField(reg *section.Registry, key string) (section.Field, bool) {
	for _, schema := range reg.All() {
		if f, ok := schema.Field(key); ok {
			return f, true
		}
	}
	return section.Field{}, false
}
