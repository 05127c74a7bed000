package reviewskim

// MovieExtractor extracts movie metadata from a movie's main page.
type MovieExtractor interface {
	// ExtractMovie parses the main page HTML of movie id.
	// Any missing field fails the whole movie with an *ExtractionError.
	ExtractMovie(html string, pageURL string, id int) (*Movie, error)
}

// ReviewExtractor extracts reviews from one review-listing page.
type ReviewExtractor interface {
	// ExtractReviews parses a listing page in document order. Reviews are
	// ranked starting at rank; the returned page carries the rank to use
	// for the next page. A review that cannot be extracted is reported in
	// ReviewPage.Skipped and does not abort the page.
	ExtractReviews(html string, pageURL string, movieID int, rank int) (*ReviewPage, error)
}

// ChartExtractor extracts ranked movie lists from chart pages.
type ChartExtractor interface {
	// ExtractFixedChart parses an all-time chart holding exactly size entries.
	ExtractFixedChart(html string, size int) (*ChartList, error)

	// ExtractChartPage adds the entries of one box office listing page to
	// list, stopping once list holds limit entries. It returns how many
	// entries were added.
	ExtractChartPage(html string, list *ChartList, limit int) (int, error)
}
