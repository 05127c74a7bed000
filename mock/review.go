package mock

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

var _ reviewskim.ReviewService = (*ReviewService)(nil)

// ReviewService is a mock implementation of reviewskim.ReviewService.
type ReviewService struct {
	FindReviewsFn  func(ctx context.Context, filter reviewskim.ReviewFilter) ([]*reviewskim.Review, error)
	CountReviewsFn func(ctx context.Context, movieID int) (int, error)
}

func (s *ReviewService) FindReviews(ctx context.Context, filter reviewskim.ReviewFilter) ([]*reviewskim.Review, error) {
	return s.FindReviewsFn(ctx, filter)
}

func (s *ReviewService) CountReviews(ctx context.Context, movieID int) (int, error) {
	return s.CountReviewsFn(ctx, movieID)
}
