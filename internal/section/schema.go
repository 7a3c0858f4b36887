package section

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"github.com/jonathan/resume-builder/internal/richtext"
	"gopkg.in/yaml.v3"
)

//go:embed schemas.yaml
var defaultSchemas []byte

// Role says what a field contributes to an entry card.
type Role string

const (
	// RoleTitle is the card heading.
	RoleTitle Role = "title"
	// RoleBody is the main rich-text content.
	RoleBody Role = "body"
	// RoleDetail is any additional field.
	RoleDetail Role = "detail"
)

// Kind is the editing widget used for a field.
type Kind string

const (
	KindText     Kind = "text"
	KindRichText Kind = "richtext"
)

// Field describes one parallel sequence of a section.
type Field struct {
	Key    string          `yaml:"key" json:"key"`
	Role   Role            `yaml:"role" json:"role"`
	Kind   Kind            `yaml:"kind" json:"kind"`
	Policy richtext.Policy `yaml:"policy,omitempty" json:"policy,omitempty"`
}

// Schema is the declarative description of a repeated section.
type Schema struct {
	Name   string  `yaml:"name" json:"name"`
	Label  string  `yaml:"label" json:"label"`
	Fields []Field `yaml:"fields" json:"fields"`
}

// Keys returns the field keys in declaration order.
func (s *Schema) Keys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Field looks up a field by key.
func (s *Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// TitleField returns the field with RoleTitle.
func (s *Schema) TitleField() Field {
	for _, f := range s.Fields {
		if f.Role == RoleTitle {
			return f
		}
	}
	return Field{}
}

// BodyField returns the first rich-text field with RoleBody, if any.
func (s *Schema) BodyField() (Field, bool) {
	for _, f := range s.Fields {
		if f.Role == RoleBody && f.Kind == KindRichText {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Schema) validate() error {
	if s.Name == "" {
		return &SchemaError{Message: "section name is required"}
	}
	if len(s.Fields) == 0 {
		return &SchemaError{Section: s.Name, Message: "at least one field is required"}
	}

	seen := make(map[string]bool, len(s.Fields))
	titles := 0
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Key == "" {
			return &SchemaError{Section: s.Name, Message: fmt.Sprintf("field %d has no key", i)}
		}
		if seen[f.Key] {
			return &SchemaError{Section: s.Name, Message: fmt.Sprintf("duplicate field key %q", f.Key)}
		}
		seen[f.Key] = true

		switch f.Role {
		case RoleTitle:
			titles++
		case RoleBody, RoleDetail:
		case "":
			f.Role = RoleDetail
		default:
			return &SchemaError{Section: s.Name, Message: fmt.Sprintf("field %q has unknown role %q", f.Key, f.Role)}
		}

		switch f.Kind {
		case "", KindText:
			f.Kind = KindText
			f.Policy = ""
		case KindRichText:
			policy, err := richtext.ParsePolicy(string(f.Policy))
			if err != nil {
				return &SchemaError{Section: s.Name, Message: fmt.Sprintf("field %q", f.Key), Cause: err}
			}
			f.Policy = policy
		default:
			return &SchemaError{Section: s.Name, Message: fmt.Sprintf("field %q has unknown kind %q", f.Key, f.Kind)}
		}
	}

	if titles != 1 {
		return &SchemaError{Section: s.Name, Message: fmt.Sprintf("expected exactly one title field, found %d", titles)}
	}
	return nil
}

// Registry holds the section schemas known to the editor.
type Registry struct {
	order    []string
	sections map[string]*Schema
}

type schemaFile struct {
	Sections []Schema `yaml:"sections"`
}

// LoadSchemas parses and validates a YAML schema file.
func LoadSchemas(r io.Reader) (*Registry, error) {
	var file schemaFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, &SchemaError{Message: "failed to parse schema file", Cause: err}
	}
	if len(file.Sections) == 0 {
		return nil, &SchemaError{Message: "schema file defines no sections"}
	}

	reg := &Registry{sections: make(map[string]*Schema, len(file.Sections))}
	keys := make(map[string]string)
	for i := range file.Sections {
		s := file.Sections[i]
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := reg.sections[s.Name]; dup {
			return nil, &SchemaError{Section: s.Name, Message: "duplicate section name"}
		}
		// Form keys are global to the draft, so two sections cannot share one.
		for _, k := range s.Keys() {
			if owner, taken := keys[k]; taken {
				return nil, &SchemaError{Section: s.Name, Message: fmt.Sprintf("field key %q already used by section %q", k, owner)}
			}
			keys[k] = s.Name
		}
		reg.sections[s.Name] = &s
		reg.order = append(reg.order, s.Name)
	}
	return reg, nil
}

// DefaultRegistry returns the built-in internship, certificate and other sections.
func DefaultRegistry() *Registry {
	reg, err := LoadSchemas(bytes.NewReader(defaultSchemas))
	if err != nil {
		panic(fmt.Sprintf("embedded section schemas are invalid: %v", err))
	}
	return reg
}

// Get returns the schema for name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.sections[name]
	return s, ok
}

// All returns every schema in file order.
func (r *Registry) All() []*Schema {
	out := make([]*Schema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sections[name])
	}
	return out
}

// Names returns the section names sorted alphabetically.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}
