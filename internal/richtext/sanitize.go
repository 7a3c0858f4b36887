package richtext

import "github.com/microcosm-cc/bluemonday"

var editorPolicy = newEditorPolicy()

// newEditorPolicy allows only the markup the resume editor toolbar can produce.
func newEditorPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "ul", "ol", "li", "b", "strong", "i", "em", "u", "s", "br")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	return p
}

// Sanitize strips markup the editor does not support, including scripts and event handlers.
func Sanitize(src string) string {
	return editorPolicy.Sanitize(src)
}

// Normalize sanitizes src and round-trips it through the document model so stored
// HTML has a single canonical form.
func Normalize(src string) (string, error) {
	doc, err := Parse(Sanitize(src))
	if err != nil {
		return "", err
	}
	return doc.Render(), nil
}
