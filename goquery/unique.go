package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/reviewskim"
	"golang.org/x/net/html"
)

// unique returns the single node in sel. Zero or several matches is a
// structural mismatch for field; the first match is never picked silently.
func unique(sel *goquery.Selection, field, what string) (*html.Node, error) {
	if n := sel.Length(); n != 1 {
		return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, field, "expected exactly one %s, found %d", what, n)
	}
	return sel.Get(0), nil
}

// withText keeps the elements of sel whose trimmed text equals text.
func withText(sel *goquery.Selection, text string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == text
	})
}

// labelValue returns the trimmed text following a label element such as
// <h4 class="inline">Budget:</h4>.
func labelValue(label *html.Node, field string) (string, error) {
	t := nextText(after(label))
	if t == nil {
		return "", reviewskim.Extractf(reviewskim.ESTRUCTURE, field, "no value after label")
	}
	return strings.TrimSpace(t.Data), nil
}
