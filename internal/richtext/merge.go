package richtext

import "strings"

// Policy decides what happens when a suggestion is clicked.
type Policy string

const (
	// PolicyToggle inserts the suggestion, or removes it if it is already present.
	PolicyToggle Policy = "toggle"
	// PolicyAdditive always inserts, so repeated clicks duplicate the item.
	PolicyAdditive Policy = "additive"
)

// ParsePolicy validates a policy name. An empty name selects PolicyToggle.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyToggle:
		return PolicyToggle, nil
	case PolicyAdditive:
		return PolicyAdditive, nil
	default:
		return "", &PolicyError{Policy: name}
	}
}

// Insert returns a copy of d with text added as a list item.
// The item goes at the end of the first unordered list; when there is none a new
// list is appended after the existing content.
func (d *Document) Insert(text string) *Document {
	out := d.Clone()
	item := NewItem(text)
	for i := range out.Blocks {
		if out.Blocks[i].Kind == KindList && !out.Blocks[i].Ordered {
			out.Blocks[i].Items = append(out.Blocks[i].Items, item)
			return out
		}
	}
	out.Blocks = append(out.Blocks, Block{Kind: KindList, Items: []Item{item}})
	return out
}

// Remove returns a copy of d without the first item whose text equals text.
// A list left with no items is dropped. The bool reports whether anything was removed.
func (d *Document) Remove(text string) (*Document, bool) {
	out := d.Clone()
	want := normalizeText(text)
	for bi := range out.Blocks {
		b := &out.Blocks[bi]
		if b.Kind != KindList {
			continue
		}
		for ii, it := range b.Items {
			if normalizeText(it.Text) != want {
				continue
			}
			b.Items = append(b.Items[:ii:ii], b.Items[ii+1:]...)
			if len(b.Items) == 0 {
				out.Blocks = append(out.Blocks[:bi:bi], out.Blocks[bi+1:]...)
			}
			return out, true
		}
	}
	return out, false
}

// Apply merges text into d under the given policy.
func (d *Document) Apply(text string, policy Policy) *Document {
	if policy == PolicyToggle {
		if out, removed := d.Remove(text); removed {
			return out
		}
	}
	return d.Insert(text)
}

// Merge parses current, merges text under policy and renders the result.
func Merge(current, text string, policy Policy) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySuggestion
	}
	doc, err := Parse(current)
	if err != nil {
		return "", err
	}
	return doc.Apply(strings.TrimSpace(text), policy).Render(), nil
}

// IsSelected reports whether current already contains text as a list item.
func IsSelected(current, text string) (bool, error) {
	doc, err := Parse(current)
	if err != nil {
		return false, err
	}
	return doc.HasItem(text), nil
}
