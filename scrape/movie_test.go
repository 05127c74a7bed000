package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/mock"
	"github.com/fwojciec/reviewskim/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "http://movies.test"

// site fakes a movie with total reviews. Fetched pages carry their own URL
// as HTML so the extractor mocks can tell pages apart.
type site struct {
	total int

	// short optionally lowers the number of reviews on the page at an offset.
	short map[int]int
	// skip optionally marks reviews at an offset as failing extraction.
	skip map[int]int

	mu      sync.Mutex
	fetched []string
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, pageURL string) (string, error) {
			s.mu.Lock()
			s.fetched = append(s.fetched, pageURL)
			s.mu.Unlock()
			return pageURL, nil
		},
	}
}

func (s *site) scraper() *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher: s.fetcher(),
		MovieExtractor: &mock.MovieExtractor{
			ExtractMovieFn: func(_ string, pageURL string, id int) (*reviewskim.Movie, error) {
				return &reviewskim.Movie{ID: id, Name: "Movie", URL: pageURL, ReviewCount: s.total}, nil
			},
		},
		ReviewExtractor: &mock.ReviewExtractor{ExtractReviewsFn: s.extractReviews},
		URLs:            reviewskim.URLs{Base: testBase},
		RetryDelays:     []time.Duration{},
	}
}

func (s *site) extractReviews(html string, pageURL string, movieID int, rank int) (*reviewskim.ReviewPage, error) {
	u, err := url.Parse(html)
	if err != nil {
		return nil, err
	}
	offset, err := strconv.Atoi(u.Query().Get("start"))
	if err != nil {
		return nil, err
	}
	n := min(reviewskim.ReviewPageSize, s.total-offset)
	if short, ok := s.short[offset]; ok {
		n = short
	}

	page := &reviewskim.ReviewPage{Anchors: n, NextRank: rank}
	for i := range n {
		if i < s.skip[offset] {
			page.Skipped = append(page.Skipped, reviewskim.Extractf(reviewskim.EPATTERN, "date", "bad date"))
			continue
		}
		page.Reviews = append(page.Reviews, &reviewskim.Review{
			MovieID:    movieID,
			ReviewerID: offset + i + 1,
			Rank:       page.NextRank,
			URL:        pageURL,
		})
		page.NextRank++
	}
	return page, nil
}

func (s *site) fetchedURLs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fetched...)
}

func TestReviewOffsets(t *testing.T) {
	t.Parallel()

	t.Run("steps by ten below total", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []int{0, 10, 20}, scrape.ReviewOffsets(23, 0))
		assert.Equal(t, []int{0, 10}, scrape.ReviewOffsets(20, 0))
		assert.Equal(t, []int{0}, scrape.ReviewOffsets(1, 0))
	})

	t.Run("stops at limit", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []int{0, 10}, scrape.ReviewOffsets(1234, 20))
		assert.Equal(t, []int{0, 10, 20}, scrape.ReviewOffsets(23, 100))
	})
}

func TestScraper_ScrapeMovie(t *testing.T) {
	t.Parallel()

	t.Run("ranks 23 reviews across pages of 10, 10 and 3", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23}

		result, err := s.scraper().ScrapeMovie(context.Background(), 1408101, scrape.MovieOptions{})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Pages)
		require.Len(t, result.Reviews, 23)
		for i, r := range result.Reviews {
			assert.Equal(t, i, r.Rank)
			assert.Equal(t, i+1, r.ReviewerID)
		}
		assert.Equal(t, []string{
			testBase + "/title/tt1408101/",
			testBase + "/title/tt1408101/reviews?start=0",
			testBase + "/title/tt1408101/reviews?start=10",
			testBase + "/title/tt1408101/reviews?start=20",
		}, s.fetchedURLs())
	})

	t.Run("limit stops pagination", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 1234}

		result, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{Limit: 20})

		require.NoError(t, err)
		assert.Len(t, result.Reviews, 20)
		assert.Len(t, s.fetchedURLs(), 3)
	})

	t.Run("rejects limit that is not a multiple of page size", func(t *testing.T) {
		t.Parallel()

		for _, limit := range []int{15, -10} {
			s := &site{total: 23}

			_, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{Limit: limit})

			assert.Equal(t, reviewskim.EINVALID, reviewskim.ErrorCode(err))
			assert.Contains(t, reviewskim.ErrorMessage(err), "non-negative multiple of 10")
			assert.Empty(t, s.fetchedURLs())
		}
	})

	t.Run("concurrent fetching ranks reviews like sequential fetching", func(t *testing.T) {
		t.Parallel()

		sequential, err := (&site{total: 95}).scraper().ScrapeMovie(context.Background(), 7, scrape.MovieOptions{})
		require.NoError(t, err)

		s := &site{total: 95}
		scraper := s.scraper()
		scraper.Concurrency = 4
		concurrent, err := scraper.ScrapeMovie(context.Background(), 7, scrape.MovieOptions{})
		require.NoError(t, err)

		assert.Equal(t, sequential.Reviews, concurrent.Reviews)
		assert.Len(t, s.fetchedURLs(), 11)
	})

	t.Run("fails when reviews go missing", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23, short: map[int]int{10: 9}}

		_, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		require.Error(t, err)
		assert.Equal(t, reviewskim.ECONSISTENCY, reviewskim.ErrorCode(err))
		assert.Contains(t, err.Error(), "extracted 22 reviews and skipped 0")
		assert.Contains(t, err.Error(), "announces 23")
	})

	t.Run("skipped reviews count toward the total", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23, skip: map[int]int{10: 2}}

		result, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		require.NoError(t, err)
		assert.Len(t, result.Reviews, 21)
		require.Len(t, result.Skipped, 2)
		assert.Equal(t, 10, result.Skipped[0].Offset)
		for i, r := range result.Reviews {
			assert.Equal(t, i, r.Rank)
		}
	})

	t.Run("strict mode fails on a skipped review", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23, skip: map[int]int{20: 1}}
		scraper := s.scraper()
		scraper.Strict = true

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		var x *reviewskim.ExtractionError
		require.ErrorAs(t, err, &x)
		assert.Equal(t, reviewskim.EPATTERN, x.Code)
		assert.Equal(t, 20, x.Offset)
	})

	t.Run("strict mode fails on a short page before the last", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 20, short: map[int]int{0: 9}}
		scraper := s.scraper()
		scraper.Strict = true

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{Limit: 20})

		var x *reviewskim.ExtractionError
		require.ErrorAs(t, err, &x)
		assert.Equal(t, reviewskim.ECONSISTENCY, x.Code)
		assert.Equal(t, 0, x.Offset)
	})

	t.Run("reports fetch failure with url and offset", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23}
		scraper := s.scraper()
		var attempts int
		scraper.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, pageURL string) (string, error) {
				if pageURL == testBase+"/title/tt0000001/reviews?start=10" {
					attempts++
					return "", errors.New("HTTP 503")
				}
				return pageURL, nil
			},
		}
		scraper.RetryDelays = []time.Duration{0, 0}

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		var x *reviewskim.ExtractionError
		require.ErrorAs(t, err, &x)
		assert.Equal(t, reviewskim.EFETCH, x.Code)
		assert.Equal(t, 10, x.Offset)
		assert.Equal(t, testBase+"/title/tt0000001/reviews?start=10", x.URL)
		assert.Contains(t, x.Message, "HTTP 503")
		assert.Equal(t, 3, attempts)
	})

	t.Run("fails on movie extraction error", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23}
		scraper := s.scraper()
		scraper.MovieExtractor = &mock.MovieExtractor{
			ExtractMovieFn: func(_ string, _ string, _ int) (*reviewskim.Movie, error) {
				return nil, reviewskim.Extractf(reviewskim.ESTRUCTURE, "title", "missing")
			},
		}

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		assert.Equal(t, reviewskim.ESTRUCTURE, reviewskim.ErrorCode(err))
		assert.Len(t, s.fetchedURLs(), 1)
	})

	t.Run("waits for the rate limiter before each fetch", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 5}
		scraper := s.scraper()
		var domains []string
		scraper.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		require.NoError(t, err)
		assert.Equal(t, []string{"movies.test", "movies.test"}, domains)
	})

	t.Run("commits archive after success", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 12}
		var saved []string
		var committed, aborted bool
		store := &mock.PageStore{
			SaveFn: func(_ context.Context, page *reviewskim.Page) error {
				saved = append(saved, page.URL)
				return nil
			},
			CommitFn: func() error { committed = true; return nil },
			AbortFn:  func() error { aborted = true; return nil },
		}

		_, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{Store: store})

		require.NoError(t, err)
		assert.True(t, committed)
		assert.False(t, aborted)
		assert.Equal(t, []string{
			testBase + "/title/tt0000001/",
			testBase + "/title/tt0000001/reviews?start=0",
			testBase + "/title/tt0000001/reviews?start=10",
		}, saved)
	})

	t.Run("aborts archive after failure", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 12, short: map[int]int{10: 1}}
		var committed, aborted bool
		store := &mock.PageStore{
			SaveFn:   func(_ context.Context, _ *reviewskim.Page) error { return nil },
			CommitFn: func() error { committed = true; return nil },
			AbortFn:  func() error { aborted = true; return nil },
		}

		_, err := s.scraper().ScrapeMovie(context.Background(), 1, scrape.MovieOptions{Store: store})

		require.Error(t, err)
		assert.False(t, committed)
		assert.True(t, aborted)
	})

	t.Run("reports progress per page", func(t *testing.T) {
		t.Parallel()

		s := &site{total: 23}
		scraper := s.scraper()
		var events []scrape.ProgressEvent
		scraper.Progress = func(e scrape.ProgressEvent) { events = append(events, e) }

		_, err := scraper.ScrapeMovie(context.Background(), 1, scrape.MovieOptions{})

		require.NoError(t, err)
		require.Len(t, events, 5)
		assert.Equal(t, scrape.ProgressStarted, events[0].Type)
		assert.Equal(t, 3, events[0].Total)
		for i, e := range events[1:4] {
			assert.Equal(t, scrape.ProgressCompleted, e.Type)
			assert.Equal(t, i+1, e.Completed)
			assert.Equal(t, fmt.Sprintf("%s/title/tt0000001/reviews?start=%d", testBase, i*10), e.URL)
		}
		assert.Equal(t, scrape.ProgressFinished, events[4].Type)
	})
}
