package goquery

import (
	"errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/reviewskim"
)

// Ensure ReviewExtractor implements reviewskim.ReviewExtractor at compile time.
var _ reviewskim.ReviewExtractor = (*ReviewExtractor)(nil)

// ReviewExtractor extracts the reviews of one review-listing page.
type ReviewExtractor struct{}

// NewReviewExtractor creates a new ReviewExtractor.
func NewReviewExtractor() *ReviewExtractor {
	return &ReviewExtractor{}
}

// ExtractReviews extracts every review anchored on a user avatar, in
// document order. Ranks are assigned from rank upwards to successfully
// extracted reviews only.
func (e *ReviewExtractor) ExtractReviews(src string, pageURL string, movieID int, rank int) (*reviewskim.ReviewPage, error) {
	doc, err := parse(src)
	if err != nil {
		return nil, err
	}

	anchors := doc.Find("img.avatar")
	page := &reviewskim.ReviewPage{
		Anchors:  anchors.Length(),
		NextRank: rank,
	}

	anchors.Each(func(_ int, s *goquery.Selection) {
		review, err := extractReview(s.Get(0), movieID, pageURL)
		if err != nil {
			page.Skipped = append(page.Skipped, asExtractionError(err, pageURL))
			return
		}
		review.Rank = page.NextRank
		page.NextRank++
		page.Reviews = append(page.Reviews, review)
	})

	return page, nil
}

func asExtractionError(err error, pageURL string) *reviewskim.ExtractionError {
	var x *reviewskim.ExtractionError
	if errors.As(err, &x) {
		return x
	}
	return &reviewskim.ExtractionError{
		Code:    reviewskim.ErrorCode(err),
		Field:   "review",
		URL:     pageURL,
		Message: reviewskim.ErrorMessage(err),
	}
}
