package reviewskim

import (
	"context"
	"time"
)

// SpoilerMarker is the sentence the site puts in place of a review body
// when the review discusses plot details.
const SpoilerMarker = "*** This review may contain spoilers ***"

// ReviewPageSize is the number of reviews on one review-listing page.
const ReviewPageSize = 10

// Review represents a single user review of a movie.
type Review struct {
	MovieID    int       `json:"movieId"`
	ReviewerID int       `json:"reviewerId"`
	Reviewer   *string   `json:"reviewer,omitempty"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Score      *int      `json:"score,omitempty"`
	Likes      *int      `json:"likes,omitempty"`
	Dislikes   *int      `json:"dislikes,omitempty"`
	Place      *string   `json:"place,omitempty"`
	Text       string    `json:"text"`
	Spoilers   bool      `json:"spoilers"`
	Rank       int       `json:"rank"`
	URL        string    `json:"url"`

	// Set by the persistence layer.
	TextHash string `json:"textHash,omitempty"`
}

// Validate returns an error if the review contains invalid fields.
func (r *Review) Validate() error {
	if r.MovieID <= 0 {
		return Errorf(EINVALID, "review movie ID must be positive")
	}
	if r.ReviewerID <= 0 {
		return Errorf(EINVALID, "review reviewer ID must be positive")
	}
	if r.Date.IsZero() {
		return Errorf(EINVALID, "review date required")
	}
	if r.Score != nil && (*r.Score < 1 || *r.Score > 10) {
		return Errorf(EINVALID, "review score %d out of range", *r.Score)
	}
	if r.Dislikes != nil && *r.Dislikes < 0 {
		return Errorf(EINVALID, "review dislikes must not be negative")
	}
	if r.Rank < 0 {
		return Errorf(EINVALID, "review rank must not be negative")
	}
	if r.URL == "" {
		return Errorf(EINVALID, "review URL required")
	}
	return nil
}

// ReviewPage is the result of extracting one review-listing page.
type ReviewPage struct {
	Reviews []*Review

	// Skipped holds one error per anchor whose review could not be extracted.
	Skipped []*ExtractionError

	// Anchors is the number of review anchors found on the page.
	Anchors int

	// NextRank is the rank to hand to the next page.
	NextRank int
}

// ReviewService represents a service for reading stored reviews.
type ReviewService interface {
	// FindReviews retrieves reviews matching the filter ordered by rank.
	FindReviews(ctx context.Context, filter ReviewFilter) ([]*Review, error)

	// CountReviews returns the number of stored reviews for a movie.
	CountReviews(ctx context.Context, movieID int) (int, error)
}

// ReviewFilter represents a filter for FindReviews.
type ReviewFilter struct {
	MovieID    *int `json:"movieId"`
	ReviewerID *int `json:"reviewerId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
