package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

// Render serializes the document back to editor HTML.
func (d *Document) Render() string {
	if d.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	for _, b := range d.Blocks {
		switch b.Kind {
		case KindText:
			sb.WriteString(html.EscapeString(b.Text))
		case KindParagraph:
			sb.WriteString("<p>")
			sb.WriteString(b.HTML)
			sb.WriteString("</p>")
		case KindList:
			tag := "ul"
			if b.Ordered {
				tag = "ol"
			}
			sb.WriteString("<" + tag + ">")
			for _, it := range b.Items {
				sb.WriteString("<li>")
				sb.WriteString(it.HTML)
				sb.WriteString("</li>")
			}
			sb.WriteString("</" + tag + ">")
		case KindRaw:
			sb.WriteString(b.HTML)
		}
	}
	return sb.String()
}

// NewItem builds a list item from plain suggestion text.
func NewItem(text string) Item {
	return Item{HTML: html.EscapeString(text), Text: text}
}
