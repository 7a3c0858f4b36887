// Package richtext models the HTML produced by the resume rich-text editor as a
// small typed document so bullet suggestions can be merged structurally.
package richtext

import "strings"

// BlockKind identifies the type of a top-level block.
type BlockKind string

const (
	// KindText is a bare text run that was not wrapped in any element.
	KindText BlockKind = "text"
	// KindParagraph is a <p> element; its inner HTML is kept verbatim.
	KindParagraph BlockKind = "paragraph"
	// KindList is a <ul> or <ol> element made of items.
	KindList BlockKind = "list"
	// KindRaw is any other element, preserved as outer HTML.
	KindRaw BlockKind = "raw"
)

// Item is a single list entry.
type Item struct {
	HTML string // inner HTML of the <li>
	Text string // plain text, used for selection matching
}

// Block is one top-level node of a Document.
type Block struct {
	Kind    BlockKind
	Text    string // KindText only
	HTML    string // KindParagraph inner HTML, KindRaw outer HTML
	Ordered bool   // KindList only
	Items   []Item // KindList only
}

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// IsEmpty reports whether the document renders to nothing.
func (d *Document) IsEmpty() bool {
	return d == nil || len(d.Blocks) == 0
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (d *Document) Clone() *Document {
	if d == nil {
		return &Document{}
	}
	out := &Document{Blocks: make([]Block, len(d.Blocks))}
	for i, b := range d.Blocks {
		out.Blocks[i] = b
		if b.Items != nil {
			out.Blocks[i].Items = append([]Item(nil), b.Items...)
		}
	}
	return out
}

// Items returns every list item in document order.
func (d *Document) Items() []Item {
	if d == nil {
		return nil
	}
	var items []Item
	for _, b := range d.Blocks {
		if b.Kind == KindList {
			items = append(items, b.Items...)
		}
	}
	return items
}

// HasItem reports whether any list item's plain text equals text.
func (d *Document) HasItem(text string) bool {
	want := normalizeText(text)
	for _, it := range d.Items() {
		if normalizeText(it.Text) == want {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.TrimSpace(s)
}
