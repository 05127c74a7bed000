package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/reviewskim"
)

// Ensure LoggingMovieService implements reviewskim.MovieService.
var _ reviewskim.MovieService = (*LoggingMovieService)(nil)

// LoggingMovieService wraps a MovieService and logs writes.
type LoggingMovieService struct {
	next   reviewskim.MovieService
	logger *slog.Logger
}

// NewLoggingMovieService creates a new LoggingMovieService.
func NewLoggingMovieService(next reviewskim.MovieService, logger *slog.Logger) *LoggingMovieService {
	return &LoggingMovieService{next: next, logger: logger}
}

func (s *LoggingMovieService) CreateMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create movie",
			"id", movie.ID,
			"name", movie.Name,
			"reviews", len(reviews),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateMovie(ctx, movie, reviews)
}

func (s *LoggingMovieService) ReplaceMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace movie",
			"id", movie.ID,
			"name", movie.Name,
			"reviews", len(reviews),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceMovie(ctx, movie, reviews)
}

func (s *LoggingMovieService) FindMovieByID(ctx context.Context, id int) (*reviewskim.Movie, error) {
	return s.next.FindMovieByID(ctx, id)
}

func (s *LoggingMovieService) FindMovies(ctx context.Context, filter reviewskim.MovieFilter) ([]*reviewskim.Movie, error) {
	return s.next.FindMovies(ctx, filter)
}

func (s *LoggingMovieService) DeleteMovie(ctx context.Context, id int) (err error) {
	defer func() {
		s.logger.Info("delete movie", "id", id, "err", err)
	}()
	return s.next.DeleteMovie(ctx, id)
}
