package richtext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse converts editor HTML into a Document. Blank input yields an empty document.
// Parse does not sanitize; run Sanitize first for untrusted input.
func Parse(src string) (*Document, error) {
	doc := &Document{}
	if strings.TrimSpace(src) == "" {
		return doc, nil
	}

	q, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, &ParseError{Message: "failed to parse HTML", Cause: err}
	}

	var firstErr error
	q.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		if firstErr != nil {
			return
		}
		block, ok, err := parseBlock(s)
		if err != nil {
			firstErr = err
			return
		}
		if ok {
			doc.Blocks = append(doc.Blocks, block)
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}

	return doc, nil
}

func parseBlock(s *goquery.Selection) (Block, bool, error) {
	node := s.Get(0)
	switch node.Type {
	case html.TextNode:
		if strings.TrimSpace(node.Data) == "" {
			return Block{}, false, nil
		}
		return Block{Kind: KindText, Text: node.Data}, true, nil

	case html.ElementNode:
		switch node.DataAtom {
		case atom.Ul, atom.Ol:
			items, err := parseItems(s)
			if err != nil {
				return Block{}, false, err
			}
			return Block{Kind: KindList, Ordered: node.DataAtom == atom.Ol, Items: items}, true, nil
		case atom.P:
			inner, err := s.Html()
			if err != nil {
				return Block{}, false, &ParseError{Message: "failed to read paragraph", Cause: err}
			}
			return Block{Kind: KindParagraph, HTML: inner}, true, nil
		default:
			outer, err := goquery.OuterHtml(s)
			if err != nil {
				return Block{}, false, &ParseError{Message: "failed to read element", Cause: err}
			}
			return Block{Kind: KindRaw, HTML: outer}, true, nil
		}
	}

	// Comments and doctypes carry no content.
	return Block{}, false, nil
}

func parseItems(list *goquery.Selection) ([]Item, error) {
	items := make([]Item, 0)
	var firstErr error
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if firstErr != nil {
			return
		}
		inner, err := li.Html()
		if err != nil {
			firstErr = &ParseError{Message: "failed to read list item", Cause: err}
			return
		}
		items = append(items, Item{HTML: inner, Text: li.Text()})
	})
	return items, firstErr
}
