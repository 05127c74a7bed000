package scrape

import (
	"context"
	"fmt"

	"github.com/fwojciec/reviewskim"
	"golang.org/x/sync/errgroup"
)

// MovieOptions control a single movie scrape.
type MovieOptions struct {
	// Limit caps the number of reviews fetched. It must be a positive
	// multiple of reviewskim.ReviewPageSize; zero fetches all reviews.
	Limit int

	// Store, if set, archives every fetched page. It is committed when the
	// scrape succeeds and aborted otherwise.
	Store reviewskim.PageStore
}

// Result holds a scraped movie and its reviews in rank order.
type Result struct {
	Movie   *reviewskim.Movie
	Reviews []*reviewskim.Review
	Skipped []*reviewskim.ExtractionError
	Pages   int
}

// ReviewOffsets returns the listing offsets to fetch for a movie with
// total reviews: 0, 10, 20, ... below total, and below limit when limit
// is positive.
func ReviewOffsets(total, limit int) []int {
	var offsets []int
	for n := 0; n < total; n += reviewskim.ReviewPageSize {
		if limit > 0 && n >= limit {
			break
		}
		offsets = append(offsets, n)
	}
	return offsets
}

// ScrapeMovie fetches and extracts a movie's main page and every review
// listing page. Reviews are ranked across pages in listing order. Without
// a limit, every review the movie page announces must be accounted for as
// either extracted or skipped.
func (s *Scraper) ScrapeMovie(ctx context.Context, id int, opts MovieOptions) (result *Result, err error) {
	if opts.Limit < 0 || opts.Limit%reviewskim.ReviewPageSize != 0 {
		return nil, reviewskim.Errorf(reviewskim.EINVALID, "review limit must be a non-negative multiple of %d, got %d", reviewskim.ReviewPageSize, opts.Limit)
	}

	if opts.Store != nil {
		defer func() {
			if err != nil {
				_ = opts.Store.Abort()
				return
			}
			if cerr := opts.Store.Commit(); cerr != nil {
				result, err = nil, fmt.Errorf("commit archive: %w", cerr)
			}
		}()
	}

	movieURL := s.URLs.Movie(id)
	html, err := s.fetch(ctx, movieURL, 0)
	if err != nil {
		return nil, err
	}
	if err := save(ctx, opts.Store, movieURL, html); err != nil {
		return nil, err
	}
	movie, err := s.MovieExtractor.ExtractMovie(html, movieURL, id)
	if err != nil {
		return nil, err
	}

	offsets := ReviewOffsets(movie.ReviewCount, opts.Limit)
	s.progress(ProgressEvent{Type: ProgressStarted, Total: len(offsets), URL: movieURL})

	pages, err := s.fetchReviewPages(ctx, id, offsets)
	if err != nil {
		return nil, err
	}

	result = &Result{Movie: movie, Pages: len(offsets)}
	rank := 0
	for i, offset := range offsets {
		pageURL := s.URLs.Reviews(id, offset)
		html, err := pages.get(ctx, i)
		if err != nil {
			return nil, err
		}
		if err := save(ctx, opts.Store, pageURL, html); err != nil {
			return nil, err
		}

		page, err := s.ReviewExtractor.ExtractReviews(html, pageURL, id, rank)
		if err != nil {
			return nil, locate(err, pageURL, offset)
		}
		for _, x := range page.Skipped {
			x.Offset = offset
			s.progress(ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(offsets), URL: pageURL, Error: x})
		}
		if s.Strict {
			if len(page.Skipped) > 0 {
				return nil, page.Skipped[0]
			}
			if i < len(offsets)-1 && page.Anchors < reviewskim.ReviewPageSize {
				return nil, &reviewskim.ExtractionError{
					Code:    reviewskim.ECONSISTENCY,
					Field:   "reviews",
					URL:     pageURL,
					Offset:  offset,
					Message: fmt.Sprintf("listing page holds %d reviews, expected %d", page.Anchors, reviewskim.ReviewPageSize),
				}
			}
		}

		result.Reviews = append(result.Reviews, page.Reviews...)
		result.Skipped = append(result.Skipped, page.Skipped...)
		rank = page.NextRank
		s.progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: len(offsets), URL: pageURL})
	}

	if opts.Limit == 0 {
		if got := len(result.Reviews) + len(result.Skipped); got != movie.ReviewCount {
			return nil, reviewskim.Errorf(reviewskim.ECONSISTENCY,
				"movie %d: extracted %d reviews and skipped %d, movie page announces %d",
				id, len(result.Reviews), len(result.Skipped), movie.ReviewCount)
		}
	}

	s.progress(ProgressEvent{Type: ProgressFinished, Completed: len(offsets), Total: len(offsets), URL: movieURL})
	return result, nil
}

// reviewPages hands out listing pages in offset order. Pages are either
// prefetched concurrently or fetched on demand.
type reviewPages struct {
	fetched []string
	fetch   func(ctx context.Context, i int) (string, error)
}

func (p *reviewPages) get(ctx context.Context, i int) (string, error) {
	if p.fetched != nil {
		return p.fetched[i], nil
	}
	return p.fetch(ctx, i)
}

func (s *Scraper) fetchReviewPages(ctx context.Context, id int, offsets []int) (*reviewPages, error) {
	fetchAt := func(ctx context.Context, i int) (string, error) {
		return s.fetch(ctx, s.URLs.Reviews(id, offsets[i]), offsets[i])
	}
	if s.Concurrency < 2 || len(offsets) < 2 {
		return &reviewPages{fetch: fetchAt}, nil
	}

	fetched := make([]string, len(offsets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i := range offsets {
		g.Go(func() error {
			html, err := fetchAt(gctx, i)
			if err != nil {
				return err
			}
			fetched[i] = html
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &reviewPages{fetched: fetched}, nil
}

func save(ctx context.Context, store reviewskim.PageStore, pageURL, html string) error {
	if store == nil {
		return nil
	}
	if err := store.Save(ctx, &reviewskim.Page{URL: pageURL, HTML: html}); err != nil {
		return fmt.Errorf("archive %s: %w", pageURL, err)
	}
	return nil
}
