// Package goquery extracts movies, reviews and charts from the movie site's
// HTML. Fields have no stable selectors, so most of them are located by
// their position relative to a known anchor node.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/reviewskim"
	"golang.org/x/net/html"
)

// parse parses an HTML document.
func parse(s string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return nil, reviewskim.Errorf(reviewskim.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// next returns the node following n in document order, descending into
// children first.
func next(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return after(n)
}

// after returns the first node following n's subtree in document order.
func after(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// prev returns the node preceding n in document order.
func prev(n *html.Node) *html.Node {
	p := n.PrevSibling
	if p == nil {
		return n.Parent
	}
	for p.LastChild != nil {
		p = p.LastChild
	}
	return p
}

// isBlank reports whether n carries no content: whitespace-only text,
// comments and doctype nodes.
func isBlank(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return strings.TrimSpace(n.Data) == ""
	case html.CommentNode, html.DoctypeNode:
		return true
	}
	return false
}

// isElement reports whether n is an element with the given tag.
func isElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == tag
}

// meaningful reports whether n is content rather than layout filler.
func meaningful(n *html.Node) bool {
	return !isBlank(n) && !isElement(n, "br")
}

// nextMeaningful returns n itself or the first meaningful node after it.
func nextMeaningful(n *html.Node) *html.Node {
	for ; n != nil; n = next(n) {
		if meaningful(n) {
			return n
		}
	}
	return nil
}

// prevMeaningful returns the first meaningful node before n.
func prevMeaningful(n *html.Node) *html.Node {
	for n = prev(n); n != nil; n = prev(n) {
		if meaningful(n) {
			return n
		}
	}
	return nil
}

// nextText returns n itself or the first non-blank text node after it.
func nextText(n *html.Node) *html.Node {
	for ; n != nil; n = next(n) {
		if n.Type == html.TextNode && !isBlank(n) {
			return n
		}
	}
	return nil
}

// scan returns n itself or the first node after it accepted by match.
// Scanning gives up at the first node accepted by stop.
func scan(n *html.Node, match, stop func(*html.Node) bool) *html.Node {
	for ; n != nil; n = next(n) {
		if match(n) {
			return n
		}
		if stop != nil && stop(n) {
			return nil
		}
	}
	return nil
}

// attr returns the value of attribute key on n.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hasClass reports whether n is an element carrying class.
func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// textContent returns the text below n with <br> rendered as a newline.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
		case isElement(n, "br"):
			b.WriteString("\n")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// paragraphs trims every line of s and drops empty ones.
func paragraphs(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = collapseSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
