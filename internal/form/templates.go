package form

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Template is a resume layout the user can pick.
type Template struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Premium bool   `yaml:"premium" json:"premium"`
}

// TemplateCatalog lists the available templates.
type TemplateCatalog struct {
	templates []Template
}

// DefaultTemplates returns the built-in catalog.
func DefaultTemplates() *TemplateCatalog {
	var file struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.NewDecoder(bytes.NewReader(defaultTemplates)).Decode(&file); err != nil {
		panic(fmt.Sprintf("embedded templates are invalid: %v", err))
	}
	return &TemplateCatalog{templates: file.Templates}
}

// All returns every template.
func (c *TemplateCatalog) All() []Template {
	return append([]Template(nil), c.templates...)
}

// Get finds a template by id.
func (c *TemplateCatalog) Get(id string) (Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Select sets the draft's template. Premium templates require an entitled owner;
// otherwise a PaymentRequiredError tells the client to open the payment modal.
func (c *TemplateCatalog) Select(d *Draft, id string, entitled bool) error {
	t, ok := c.Get(id)
	if !ok {
		return &UnknownTemplateError{ID: id}
	}
	if t.Premium && !entitled {
		return &PaymentRequiredError{TemplateID: id}
	}
	d.TemplateID = t.ID
	return nil
}
