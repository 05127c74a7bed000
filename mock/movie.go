package mock

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

var _ reviewskim.MovieService = (*MovieService)(nil)

// MovieService is a mock implementation of reviewskim.MovieService.
type MovieService struct {
	CreateMovieFn   func(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error
	ReplaceMovieFn  func(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error
	FindMovieByIDFn func(ctx context.Context, id int) (*reviewskim.Movie, error)
	FindMoviesFn    func(ctx context.Context, filter reviewskim.MovieFilter) ([]*reviewskim.Movie, error)
	DeleteMovieFn   func(ctx context.Context, id int) error
}

func (s *MovieService) CreateMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error {
	return s.CreateMovieFn(ctx, movie, reviews)
}

func (s *MovieService) ReplaceMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error {
	return s.ReplaceMovieFn(ctx, movie, reviews)
}

func (s *MovieService) FindMovieByID(ctx context.Context, id int) (*reviewskim.Movie, error) {
	return s.FindMovieByIDFn(ctx, id)
}

func (s *MovieService) FindMovies(ctx context.Context, filter reviewskim.MovieFilter) ([]*reviewskim.Movie, error) {
	return s.FindMoviesFn(ctx, filter)
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int) error {
	return s.DeleteMovieFn(ctx, id)
}
