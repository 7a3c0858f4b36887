// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/richtext"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintSuggestions outputs the suggestions generated for one entry title.
func (p *Printer) PrintSuggestions(section, title string, suggestions []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Section:  %s\n", section))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", title))
	sb.WriteString("\n")

	if len(suggestions) == 0 {
		sb.WriteString("(no suggestions)")
		p.printBox("SUGGESTIONS", sb.String())
		return
	}

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", suggestions[i]))
	}
	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(suggestions)-maxItemsToShow))
	}

	p.printBox("SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMerge outputs the list items of a field before and after a suggestion
// click. Unparseable HTML is shown raw.
func (p *Printer) PrintMerge(before, after, text string, selected bool) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Suggestion: %s\n", text))
	state := "removed"
	if selected {
		state = "selected"
	}
	sb.WriteString(fmt.Sprintf("Result:     %s\n", state))
	sb.WriteString("\nBefore:\n")
	writeItems(&sb, before)
	sb.WriteString("\nAfter:\n")
	writeItems(&sb, after)

	p.printBox("SUGGESTION MERGE", strings.TrimSuffix(sb.String(), "\n"))
}

func writeItems(sb *strings.Builder, html string) {
	doc, err := richtext.Parse(html)
	if err != nil {
		sb.WriteString(fmt.Sprintf("  %s\n", html))
		return
	}
	items := doc.Items()
	if len(items) == 0 {
		sb.WriteString("  (no list items)\n")
		return
	}
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("  • %s\n", it.Text))
	}
}

// PrintPreferences outputs preference values sorted by key.
func (p *Printer) PrintPreferences(values map[string]bool) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		mark := "✗"
		if values[k] {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, k))
	}
	if len(keys) == 0 {
		sb.WriteString("(none)\n")
	}

	p.printBox("PREFERENCES", strings.TrimSuffix(sb.String(), "\n"))
}
