package goquery

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/reviewskim"
)

// Ensure MovieExtractor implements reviewskim.MovieExtractor at compile time.
var _ reviewskim.MovieExtractor = (*MovieExtractor)(nil)

// dateLayout is the site's "<day> <month-name> <year>" date format.
const dateLayout = "2 January 2006"

var (
	titleRe       = regexp.MustCompile(`^(.+) \((\d{4})\) - (.+)$`)
	releaseDateRe = regexp.MustCompile(`^(\d{1,2} [A-Za-z]+ \d{4})\s*\(.*\)`)
	reviewCountRe = regexp.MustCompile(`^See all ([\d,]+) user reviews$`)
)

// MovieExtractor extracts movie metadata from a movie's main page.
type MovieExtractor struct{}

// NewMovieExtractor creates a new MovieExtractor.
func NewMovieExtractor() *MovieExtractor {
	return &MovieExtractor{}
}

// ExtractMovie parses the main page of movie id.
func (e *MovieExtractor) ExtractMovie(src string, pageURL string, id int) (*reviewskim.Movie, error) {
	doc, err := parse(src)
	if err != nil {
		return nil, err
	}

	movie := &reviewskim.Movie{ID: id, URL: pageURL}

	steps := []func(*goquery.Document, *reviewskim.Movie) error{
		extractReviewCount,
		extractTitle,
		extractReleaseDate,
		extractBudget,
		extractGross,
		extractDescription,
		extractPosters,
	}
	for _, step := range steps {
		if err := step(doc, movie); err != nil {
			var x *reviewskim.ExtractionError
			if errors.As(err, &x) {
				x.URL = pageURL
			}
			return nil, err
		}
	}

	if got := movie.ReleaseDate.Year(); got != movie.Year {
		return nil, &reviewskim.ExtractionError{
			Code:    reviewskim.ECONSISTENCY,
			Field:   "release_date",
			URL:     pageURL,
			Message: "release date year " + strconv.Itoa(got) + " does not match title year " + strconv.Itoa(movie.Year),
		}
	}

	return movie, nil
}

func extractTitle(doc *goquery.Document, m *reviewskim.Movie) error {
	n, err := unique(doc.Find("title"), "title", "<title>")
	if err != nil {
		return err
	}
	text := collapseSpace(textContent(n))
	match := titleRe.FindStringSubmatch(text)
	if match == nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "title", "unexpected title %q", text)
	}
	m.Name = match[1]
	m.Year, _ = strconv.Atoi(match[2])
	return nil
}

func extractReleaseDate(doc *goquery.Document, m *reviewskim.Movie) error {
	label, err := unique(withText(doc.Find("h4"), "Release Date:"), "release_date", `"Release Date:" label`)
	if err != nil {
		return err
	}
	value, err := labelValue(label, "release_date")
	if err != nil {
		return err
	}
	match := releaseDateRe.FindStringSubmatch(value)
	if match == nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "release_date", "unexpected release date %q", value)
	}
	date, err := time.Parse(dateLayout, match[1])
	if err != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "release_date", "unexpected release date %q", match[1])
	}
	m.ReleaseDate = date
	return nil
}

func extractReviewCount(doc *goquery.Document, m *reviewskim.Movie) error {
	links := doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return reviewCountRe.MatchString(collapseSpace(textContent(s.Get(0))))
	})
	n, err := unique(links, "review_count", `"See all N user reviews" link`)
	if err != nil {
		return err
	}
	text := collapseSpace(textContent(n))
	match := reviewCountRe.FindStringSubmatch(text)
	if match == nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "review_count", "unexpected review link %q", text)
	}
	count, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil || count <= 0 {
		return reviewskim.Extractf(reviewskim.EPATTERN, "review_count", "unexpected review count %q", match[1])
	}
	m.ReviewCount = count
	return nil
}

func extractBudget(doc *goquery.Document, m *reviewskim.Movie) error {
	value, err := moneyValue(doc, "Budget:", "budget")
	if err != nil {
		return err
	}
	// Budgets quoted in another currency are left unset.
	if !strings.HasPrefix(value, "$") {
		return nil
	}
	amount, err := ParseDollars(value)
	if err != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "budget", "%v", err)
	}
	m.Budget = &amount
	return nil
}

func extractGross(doc *goquery.Document, m *reviewskim.Movie) error {
	value, err := moneyValue(doc, "Gross:", "gross")
	if err != nil {
		return err
	}
	amount, err := ParseDollars(value)
	if err != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "gross", "%v", err)
	}
	m.Gross = amount
	return nil
}

// moneyValue returns the first token after an inline label like "Gross:".
func moneyValue(doc *goquery.Document, label, field string) (string, error) {
	n, err := unique(withText(doc.Find("h4.inline"), label), field, strconv.Quote(label)+" label")
	if err != nil {
		return "", err
	}
	value, err := labelValue(n, field)
	if err != nil {
		return "", err
	}
	return strings.Fields(value)[0], nil
}

// ParseDollars parses an amount such as "$12,345,678".
func ParseDollars(s string) (float64, error) {
	if !strings.HasPrefix(s, "$") {
		return 0, errors.New("amount " + strconv.Quote(s) + " is not in dollars")
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(s[1:], ",", ""), 64)
	if err != nil {
		return 0, errors.New("malformed amount " + strconv.Quote(s))
	}
	return amount, nil
}

func extractDescription(doc *goquery.Document, m *reviewskim.Movie) error {
	n, err := unique(doc.Find(`div[itemprop="description"]`), "description", "description block")
	if err != nil {
		return err
	}
	block := doc.FindNodes(n)
	if p := block.Find("p").First(); p.Length() > 0 {
		block = p
	}
	m.Description = collapseSpace(block.Text())
	return nil
}

func extractPosters(doc *goquery.Document, m *reviewskim.Movie) error {
	posters := doc.Find(`img[itemprop="image"]`).FilterFunction(func(_ int, s *goquery.Selection) bool {
		title, _ := s.Attr("title")
		return strings.Contains(title, "Poster")
	})
	n, err := unique(posters, "poster", "poster image")
	if err != nil {
		return err
	}
	src, ok := attr(n, "src")
	if !ok || src == "" {
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "poster", "poster image has no src")
	}
	full, err := FullPosterURL(src)
	if err != nil {
		return err
	}
	m.PosterThumbnailURL = src
	m.PosterURL = full
	return nil
}

// FullPosterURL derives the full-size poster URL from a thumbnail URL by
// cutting the size suffix that starts at "._V".
func FullPosterURL(thumbnail string) (string, error) {
	i := strings.Index(thumbnail, "._V")
	if i < 0 {
		return "", reviewskim.Extractf(reviewskim.EPATTERN, "poster", "thumbnail %q has no size suffix", thumbnail)
	}
	return thumbnail[:i] + ".jpg", nil
}
