package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// voidElements never have an end tag and so never nest text.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// CleanHTML strips all markup from an HTML fragment and keeps only the text
// at nesting depth 0. Text inside any element is dropped, so badges nested
// in a table cell do not leak into its label.
func CleanHTML(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				depth++
			}
		case html.EndTagToken:
			if depth > 0 {
				depth--
			}
		}
	}
}

// normalizeSpace trims s and collapses runs of whitespace, including
// non-breaking spaces, into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// textLines returns the non-empty text nodes below sel in document order.
func textLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := normalizeSpace(n.Data); s != "" {
				lines = append(lines, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return lines
}

// firstText returns the first non-empty text node below sel.
func firstText(sel *goquery.Selection) string {
	if lines := textLines(sel.First()); len(lines) > 0 {
		return lines[0]
	}
	return ""
}

// ownText returns the top-level text of the first element in sel, falling
// back to its first text node when the label is wrapped in a child element.
func ownText(sel *goquery.Selection) string {
	inner, err := sel.First().Html()
	if err == nil {
		if s := normalizeSpace(CleanHTML(inner)); s != "" {
			return s
		}
	}
	return firstText(sel)
}
