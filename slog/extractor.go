package slog

import (
	"log/slog"

	"github.com/fwojciec/reviewskim"
)

// Ensure LoggingReviewExtractor implements reviewskim.ReviewExtractor.
var _ reviewskim.ReviewExtractor = (*LoggingReviewExtractor)(nil)

// LoggingReviewExtractor wraps a ReviewExtractor and reports every review
// that had to be skipped, since those never reach storage.
type LoggingReviewExtractor struct {
	next   reviewskim.ReviewExtractor
	logger *slog.Logger
}

// NewLoggingReviewExtractor creates a new LoggingReviewExtractor.
func NewLoggingReviewExtractor(next reviewskim.ReviewExtractor, logger *slog.Logger) *LoggingReviewExtractor {
	return &LoggingReviewExtractor{next: next, logger: logger}
}

func (e *LoggingReviewExtractor) ExtractReviews(html string, pageURL string, movieID int, rank int) (*reviewskim.ReviewPage, error) {
	page, err := e.next.ExtractReviews(html, pageURL, movieID, rank)
	if err != nil {
		e.logger.Error("extract reviews", "url", pageURL, "err", err)
		return nil, err
	}

	e.logger.Debug("extract reviews",
		"url", pageURL,
		"anchors", page.Anchors,
		"extracted", len(page.Reviews),
		"skipped", len(page.Skipped),
	)
	for _, x := range page.Skipped {
		e.logger.Warn("skipped review",
			"url", pageURL,
			"reviewer", x.ReviewerID,
			"field", x.Field,
			"code", x.Code,
			"err", x.Message,
		)
	}
	return page, nil
}
