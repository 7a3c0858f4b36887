package richtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		current string
		text    string
		policy  Policy
		want    string
	}{
		{
			name:   "empty field starts a list",
			text:   "Led team of 5",
			policy: PolicyToggle,
			want:   "<ul><li>Led team of 5</li></ul>",
		},
		{
			name:    "appends to existing list",
			current: "<ul><li>A</li></ul>",
			text:    "B",
			policy:  PolicyToggle,
			want:    "<ul><li>A</li><li>B</li></ul>",
		},
		{
			name:    "toggle removes selected item and collapses list",
			current: "<ul><li>A</li></ul>",
			text:    "A",
			policy:  PolicyToggle,
			want:    "",
		},
		{
			name:    "toggle keeps remaining items",
			current: "<ul><li>A</li><li>B</li></ul>",
			text:    "A",
			policy:  PolicyToggle,
			want:    "<ul><li>B</li></ul>",
		},
		{
			name:    "additive duplicates selected item",
			current: "<ul><li>A</li></ul>",
			text:    "A",
			policy:  PolicyAdditive,
			want:    "<ul><li>A</li><li>A</li></ul>",
		},
		{
			name:    "paragraph content gets a new list after it",
			current: "<p>Intro</p>",
			text:    "B",
			policy:  PolicyToggle,
			want:    "<p>Intro</p><ul><li>B</li></ul>",
		},
		{
			name:    "bare text is preserved",
			current: "Hello",
			text:    "X",
			policy:  PolicyAdditive,
			want:    "Hello<ul><li>X</li></ul>",
		},
		{
			name:    "inserts into the first list only",
			current: "<ul><li>A</li></ul><p>mid</p><ul><li>C</li></ul>",
			text:    "B",
			policy:  PolicyToggle,
			want:    "<ul><li>A</li><li>B</li></ul><p>mid</p><ul><li>C</li></ul>",
		},
		{
			name:    "ordered lists are not extended",
			current: "<ol><li>A</li></ol>",
			text:    "B",
			policy:  PolicyToggle,
			want:    "<ol><li>A</li></ol><ul><li>B</li></ul>",
		},
		{
			name:   "suggestion text is escaped",
			text:   "R&D <lead>",
			policy: PolicyToggle,
			want:   "<ul><li>R&amp;D &lt;lead&gt;</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge(tt.current, tt.text, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_EmptySuggestion(t *testing.T) {
	_, err := Merge("<ul><li>A</li></ul>", "   ", PolicyToggle)
	assert.ErrorIs(t, err, ErrEmptySuggestion)
}

func TestIsSelected(t *testing.T) {
	selected, err := IsSelected("<ul><li><b>Shipped</b> v2</li></ul>", "Shipped v2")
	require.NoError(t, err)
	assert.True(t, selected)

	selected, err = IsSelected("<p>Shipped v2</p>", "Shipped v2")
	require.NoError(t, err)
	assert.False(t, selected, "paragraph text is not a list item")

	selected, err = IsSelected("<ul><li>R&amp;D</li></ul>", "R&D")
	require.NoError(t, err)
	assert.True(t, selected)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyToggle, p)

	p, err = ParsePolicy("Additive")
	require.NoError(t, err)
	assert.Equal(t, PolicyAdditive, p)

	_, err = ParsePolicy("append")
	var policyErr *PolicyError
	assert.ErrorAs(t, err, &policyErr)
}

func itemGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,16}[A-Za-z0-9]`)
}

func listHTML(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("<ul>")
	for _, it := range items {
		sb.WriteString("<li>" + it + "</li>")
	}
	sb.WriteString("</ul>")
	return sb.String()
}

func TestToggleTwiceRestoresContent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfDistinct(itemGen(), func(s string) string { return s }).Draw(t, "items")
		text := itemGen().Draw(t, "text")
		for _, it := range items {
			if it == text {
				t.Skip("text already selected")
			}
		}

		start := listHTML(items)
		once, err := Merge(start, text, PolicyToggle)
		if err != nil {
			t.Fatalf("first merge: %v", err)
		}
		twice, err := Merge(once, text, PolicyToggle)
		if err != nil {
			t.Fatalf("second merge: %v", err)
		}
		if twice != start {
			t.Fatalf("toggle twice = %q, want %q", twice, start)
		}
	})
}

func TestAdditiveMergeIsAlwaysSelected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(itemGen()).Draw(t, "items")
		text := itemGen().Draw(t, "text")
		merged, err := Merge(listHTML(items), text, PolicyAdditive)
		if err != nil {
			t.Fatalf("merge: %v", err)
		}
		selected, err := IsSelected(merged, text)
		if err != nil {
			t.Fatalf("is selected: %v", err)
		}
		if !selected {
			t.Fatalf("%q not selected in %q", text, merged)
		}
	})
}
