package mock

import "github.com/fwojciec/reviewskim"

var (
	_ reviewskim.MovieExtractor  = (*MovieExtractor)(nil)
	_ reviewskim.ReviewExtractor = (*ReviewExtractor)(nil)
	_ reviewskim.ChartExtractor  = (*ChartExtractor)(nil)
)

// MovieExtractor is a mock implementation of reviewskim.MovieExtractor.
type MovieExtractor struct {
	ExtractMovieFn func(html string, pageURL string, id int) (*reviewskim.Movie, error)
}

func (e *MovieExtractor) ExtractMovie(html string, pageURL string, id int) (*reviewskim.Movie, error) {
	return e.ExtractMovieFn(html, pageURL, id)
}

// ReviewExtractor is a mock implementation of reviewskim.ReviewExtractor.
type ReviewExtractor struct {
	ExtractReviewsFn func(html string, pageURL string, movieID int, rank int) (*reviewskim.ReviewPage, error)
}

func (e *ReviewExtractor) ExtractReviews(html string, pageURL string, movieID int, rank int) (*reviewskim.ReviewPage, error) {
	return e.ExtractReviewsFn(html, pageURL, movieID, rank)
}

// ChartExtractor is a mock implementation of reviewskim.ChartExtractor.
type ChartExtractor struct {
	ExtractFixedChartFn func(html string, size int) (*reviewskim.ChartList, error)
	ExtractChartPageFn  func(html string, list *reviewskim.ChartList, limit int) (int, error)
}

func (e *ChartExtractor) ExtractFixedChart(html string, size int) (*reviewskim.ChartList, error) {
	return e.ExtractFixedChartFn(html, size)
}

func (e *ChartExtractor) ExtractChartPage(html string, list *reviewskim.ChartList, limit int) (int, error) {
	return e.ExtractChartPageFn(html, list, limit)
}
