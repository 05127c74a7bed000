package reviewskim

import (
	"fmt"
	"strings"
)

// DefaultBaseURL is the site all URLs are built against unless configured otherwise.
const DefaultBaseURL = "http://www.imdb.com"

// URLs builds the page URLs of the movie site.
// The zero value uses DefaultBaseURL.
type URLs struct {
	Base string
}

func (u URLs) base() string {
	if u.Base == "" {
		return DefaultBaseURL
	}
	return strings.TrimSuffix(u.Base, "/")
}

// Movie returns the main page URL of a movie. IDs are zero-padded to 7 digits.
func (u URLs) Movie(id int) string {
	return fmt.Sprintf("%s/title/tt%07d/", u.base(), id)
}

// Reviews returns the review-listing URL of a movie starting at offset start.
func (u URLs) Reviews(id, start int) string {
	return fmt.Sprintf("%sreviews?start=%d", u.Movie(id), start)
}

// Chart returns the URL of an all-time chart.
func (u URLs) Chart(kind ChartKind) string {
	return fmt.Sprintf("%s/chart/%s", u.base(), kind)
}

// BoxOffice returns the URL of a box office listing page for year,
// starting at the one-based position start.
func (u URLs) BoxOffice(year, start int) string {
	return fmt.Sprintf("%s/search/title?at=0&sort=boxoffice_gross_us&start=%d&title_type=feature&year=%d,%d",
		u.base(), start, year, year)
}
