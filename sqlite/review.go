package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/reviewskim"
)

// Compile-time interface verification.
var _ reviewskim.ReviewService = (*ReviewService)(nil)

// ReviewService implements reviewskim.ReviewService using SQLite.
// Reviews are written together with their movie by MovieService.
type ReviewService struct {
	db *DB
}

// NewReviewService creates a new ReviewService.
func NewReviewService(db *DB) *ReviewService {
	return &ReviewService{db: db}
}

// FindReviews retrieves reviews matching the filter ordered by movie and rank.
func (s *ReviewService) FindReviews(ctx context.Context, filter reviewskim.ReviewFilter) ([]*reviewskim.Review, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT movie_id, rank, reviewer_id, reviewer, title, date, score, likes, dislikes,
		place, text, text_hash, spoilers, url FROM reviews WHERE 1=1`)

	if filter.MovieID != nil {
		query.WriteString(" AND movie_id = ?")
		args = append(args, *filter.MovieID)
	}
	if filter.ReviewerID != nil {
		query.WriteString(" AND reviewer_id = ?")
		args = append(args, *filter.ReviewerID)
	}

	query.WriteString(" ORDER BY movie_id ASC, rank ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*reviewskim.Review
	for rows.Next() {
		var r reviewskim.Review
		var date string

		if err := rows.Scan(&r.MovieID, &r.Rank, &r.ReviewerID, &r.Reviewer, &r.Title, &date, &r.Score,
			&r.Likes, &r.Dislikes, &r.Place, &r.Text, &r.TextHash, &r.Spoilers, &r.URL); err != nil {
			return nil, err
		}
		if r.Date, err = parseTime(dateLayout, date, "date"); err != nil {
			return nil, err
		}

		reviews = append(reviews, &r)
	}

	return reviews, rows.Err()
}

// CountReviews returns the number of stored reviews for a movie.
func (s *ReviewService) CountReviews(ctx context.Context, movieID int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews WHERE movie_id = ?", movieID).Scan(&n)
	return n, err
}
