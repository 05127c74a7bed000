package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/reviewskim"
	"golang.org/x/net/html"
)

// Ensure ChartExtractor implements reviewskim.ChartExtractor at compile time.
var _ reviewskim.ChartExtractor = (*ChartExtractor)(nil)

var (
	titleLinkRe = regexp.MustCompile(`^/title/tt(\d+)/`)
	chartYearRe = regexp.MustCompile(`^\((\d{4})`)
)

// ChartExtractor extracts ranked movie lists from chart pages.
type ChartExtractor struct{}

// NewChartExtractor creates a new ChartExtractor.
func NewChartExtractor() *ChartExtractor {
	return &ChartExtractor{}
}

// ExtractFixedChart extracts an all-time chart. The rows following the
// table row that holds the "Votes" header are the chart entries, of which
// the first size are taken. Fewer than size rows is an error.
func (e *ChartExtractor) ExtractFixedChart(src string, size int) (*reviewskim.ChartList, error) {
	doc, err := parse(src)
	if err != nil {
		return nil, err
	}

	var headers []*html.Node
	for _, root := range doc.Nodes {
		for n := root; n != nil; n = next(n) {
			if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "Votes" {
				headers = append(headers, n)
			}
		}
	}
	if len(headers) != 1 {
		return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, "chart", "expected exactly one \"Votes\" header, found %d", len(headers))
	}
	header := closest(headers[0], "tr")
	if header == nil {
		return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, "chart", "\"Votes\" header is not in a table row")
	}

	list := reviewskim.NewChartList()
	for row := header.NextSibling; row != nil && list.Len() < size; row = row.NextSibling {
		if !isElement(row, "tr") {
			continue
		}
		link := titleLink(doc.FindNodes(row))
		if link.Length() == 0 {
			return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, "chart", "row %d has no title link", list.Len())
		}
		if err := addEntry(list, link.Get(0)); err != nil {
			return nil, err
		}
	}
	if list.Len() < size {
		return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, "chart", "expected %d entries, found %d", size, list.Len())
	}
	return list, nil
}

// ExtractChartPage adds the movies of one box office listing page to list.
// Every ranking cell (td.number) identifies a movie through the title link
// in its row.
func (e *ChartExtractor) ExtractChartPage(src string, list *reviewskim.ChartList, limit int) (int, error) {
	doc, err := parse(src)
	if err != nil {
		return 0, err
	}

	before := list.Len()
	var failure error
	doc.Find("td.number").EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if list.Len() >= limit {
			return false
		}
		link := titleLink(cell.Closest("tr"))
		if link.Length() == 0 {
			failure = reviewskim.Extractf(reviewskim.ESTRUCTURE, "chart", "ranking cell %d has no title link", i)
			return false
		}
		if err := addEntry(list, link.Get(0)); err != nil {
			failure = err
			return false
		}
		return true
	})
	return list.Len() - before, failure
}

// titleLink returns the first movie link in row that carries the movie's
// name. Poster links point at the same movie but hold only an image.
func titleLink(row *goquery.Selection) *goquery.Selection {
	return row.Find(`a[href^="/title/tt"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) != ""
	}).First()
}

// addEntry adds the movie behind a title link followed by "(<year>)".
func addEntry(list *reviewskim.ChartList, link *html.Node) error {
	href, _ := attr(link, "href")
	match := titleLinkRe.FindStringSubmatch(href)
	if match == nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "chart", "unexpected title link %q", href)
	}
	id, err := strconv.Atoi(match[1])
	if err != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "chart", "unexpected title link %q", href)
	}

	name := collapseSpace(textContent(link))
	var year int
	if t := nextText(after(link)); t != nil {
		if m := chartYearRe.FindStringSubmatch(strings.TrimSpace(t.Data)); m != nil {
			year, _ = strconv.Atoi(m[1])
		}
	}
	if year == 0 {
		return reviewskim.Extractf(reviewskim.EPATTERN, "chart", "no year after %q", name)
	}

	list.Add(id, name, year)
	return nil
}

// closest returns the nearest ancestor of n with the given tag.
func closest(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, tag) {
			return p
		}
	}
	return nil
}
