// Package scrape drives page fetching for the extraction engine. It walks
// review listings and chart pages in order, retries failed fetches, and
// rate limits requests per domain.
package scrape

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/reviewskim"
)

// Scraper fetches movie, review and chart pages and extracts them.
type Scraper struct {
	Fetcher         reviewskim.Fetcher
	MovieExtractor  reviewskim.MovieExtractor
	ReviewExtractor reviewskim.ReviewExtractor
	ChartExtractor  reviewskim.ChartExtractor
	RateLimiter     reviewskim.DomainLimiter
	URLs            reviewskim.URLs

	// Concurrency is the number of review pages fetched at once.
	// Values below 2 fetch pages one at a time.
	Concurrency int

	// Strict fails a movie on the first review that cannot be extracted
	// and on any non-final listing page with fewer than a full page of
	// reviews.
	Strict bool

	RetryDelays []time.Duration
	Log         LogFunc
	Progress    ProgressFunc
}

// ProgressEvent reports progress while scraping a movie.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

func (s *Scraper) progress(event ProgressEvent) {
	if s.Progress != nil {
		s.Progress(event)
	}
}

func (s *Scraper) retryDelays() []time.Duration {
	if s.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return s.RetryDelays
}

// fetch retrieves a page, waiting for the rate limiter before every
// attempt. Exhausted retries are reported as EFETCH for url and offset.
func (s *Scraper) fetch(ctx context.Context, rawURL string, offset int) (string, error) {
	attempt := func(ctx context.Context, rawURL string) (string, error) {
		if s.RateLimiter != nil {
			if u, err := url.Parse(rawURL); err == nil {
				if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
					return "", err
				}
			}
		}
		return s.Fetcher.Fetch(ctx, rawURL)
	}

	html, err := FetchWithRetry(ctx, rawURL, attempt, s.Log, s.retryDelays())
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &reviewskim.ExtractionError{
			Code:    reviewskim.EFETCH,
			Field:   "page",
			URL:     rawURL,
			Offset:  offset,
			Message: err.Error(),
		}
	}
	return html, nil
}

// locate records where an extraction error happened.
func locate(err error, pageURL string, offset int) error {
	var x *reviewskim.ExtractionError
	if errors.As(err, &x) {
		x.URL = pageURL
		x.Offset = offset
	}
	return err
}
