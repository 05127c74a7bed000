package scrape

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

// ScrapeChart fetches and extracts an all-time chart.
func (s *Scraper) ScrapeChart(ctx context.Context, kind reviewskim.ChartKind) (*reviewskim.ChartList, error) {
	if kind != reviewskim.ChartTop && kind != reviewskim.ChartBottom {
		return nil, reviewskim.Errorf(reviewskim.EINVALID, "%q is not an all-time chart", kind)
	}

	chartURL := s.URLs.Chart(kind)
	html, err := s.fetch(ctx, chartURL, 0)
	if err != nil {
		return nil, err
	}
	list, err := s.ChartExtractor.ExtractFixedChart(html, reviewskim.FixedChartSize)
	if err != nil {
		return nil, locate(err, chartURL, 0)
	}
	return list, nil
}

// ScrapeBoxOffice collects the count highest-grossing movies of year. It
// walks the listing 50 movies at a time and stops early on a page that
// adds nothing new.
func (s *Scraper) ScrapeBoxOffice(ctx context.Context, year, count int) (*reviewskim.ChartList, error) {
	if count <= 0 {
		return nil, reviewskim.Errorf(reviewskim.EINVALID, "box office count must be positive, got %d", count)
	}

	list := reviewskim.NewChartList()
	for start := 1; list.Len() < count; start += reviewskim.ChartPageSize {
		pageURL := s.URLs.BoxOffice(year, start)
		html, err := s.fetch(ctx, pageURL, start)
		if err != nil {
			return nil, err
		}
		added, err := s.ChartExtractor.ExtractChartPage(html, list, count)
		if err != nil {
			return nil, locate(err, pageURL, start)
		}
		s.progress(ProgressEvent{Type: ProgressCompleted, Completed: list.Len(), Total: count, URL: pageURL})
		if added == 0 {
			break
		}
	}
	return list, nil
}
