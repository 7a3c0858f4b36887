package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions("internship", "Platform intern", []string{"a", "b", "c", "d", "e", "f", "g"})
	output := buf.String()

	assert.Contains(t, output, "SUGGESTIONS")
	assert.Contains(t, output, "Platform intern")
	assert.Contains(t, output, "• e")
	assert.NotContains(t, output, "• f")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintSuggestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSuggestions("other", "", nil)

	assert.Contains(t, buf.String(), "(no suggestions)")
}

func TestPrintMerge(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMerge("<p>Intro</p>", "<p>Intro</p><ul><li>Shipped</li></ul>", "Shipped", true)
	output := buf.String()

	assert.Contains(t, output, "SUGGESTION MERGE")
	assert.Contains(t, output, "selected")
	assert.Contains(t, output, "(no list items)")
	assert.Contains(t, output, "• Shipped")
}

func TestPrintPreferences(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPreferences(map[string]bool{"b_key": false, "a_key": true})
	output := buf.String()

	assert.Contains(t, output, "✓ a_key")
	assert.Contains(t, output, "✗ b_key")
	assert.Less(t, strings.Index(output, "a_key"), strings.Index(output, "b_key"))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
