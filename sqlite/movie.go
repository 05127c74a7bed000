package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/reviewskim"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ reviewskim.MovieService = (*MovieService)(nil)

// MovieService implements reviewskim.MovieService using SQLite.
type MovieService struct {
	db *DB
}

// NewMovieService creates a new MovieService.
func NewMovieService(db *DB) *MovieService {
	return &MovieService{db: db}
}

const movieColumns = `id, name, year, release_date, budget, gross, description,
	poster_url, poster_thumbnail_url, review_count, url, run_id, created_at`

// CreateMovie stores a movie and its reviews in one transaction. The movie
// gets a fresh run ID and creation time; every review gets its text hash.
func (s *MovieService) CreateMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error {
	return s.store(ctx, movie, reviews, false)
}

// ReplaceMovie stores a movie and its reviews in place of any stored
// version. The old rows are removed in the same transaction, so a failed
// write leaves them untouched.
func (s *MovieService) ReplaceMovie(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review) error {
	return s.store(ctx, movie, reviews, true)
}

func (s *MovieService) store(ctx context.Context, movie *reviewskim.Movie, reviews []*reviewskim.Review, replace bool) error {
	if err := movie.Validate(); err != nil {
		return err
	}
	for _, r := range reviews {
		if r.MovieID != movie.ID {
			return reviewskim.Errorf(reviewskim.EINVALID, "review ranked %d belongs to movie %d, not %d", r.Rank, r.MovieID, movie.ID)
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", movie.ID); err != nil {
			return err
		}
	} else {
		var exists int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies WHERE id = ?", movie.ID).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return reviewskim.Errorf(reviewskim.ECONFLICT, "movie %d already exists", movie.ID)
		}
	}

	runID := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO movies (`+movieColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, movie.ID, movie.Name, movie.Year, movie.ReleaseDate.Format(dateLayout), movie.Budget, movie.Gross,
		movie.Description, movie.PosterURL, movie.PosterThumbnailURL, movie.ReviewCount, movie.URL,
		runID, createdAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reviews (movie_id, rank, reviewer_id, reviewer, title, date, score, likes, dislikes,
			place, text, text_hash, spoilers, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	hashes := make([]string, len(reviews))
	for i, r := range reviews {
		hashes[i] = hashText(r.Text)
		if _, err := stmt.ExecContext(ctx, r.MovieID, r.Rank, r.ReviewerID, r.Reviewer, r.Title,
			r.Date.Format(dateLayout), r.Score, r.Likes, r.Dislikes, r.Place, r.Text, hashes[i],
			r.Spoilers, r.URL); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	movie.RunID = runID
	movie.CreatedAt = createdAt
	for i, r := range reviews {
		r.TextHash = hashes[i]
	}
	return nil
}

// FindMovieByID retrieves a movie by its site-assigned ID.
func (s *MovieService) FindMovieByID(ctx context.Context, id int) (*reviewskim.Movie, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, reviewskim.Errorf(reviewskim.ENOTFOUND, "movie %d not found", id)
	}
	return movie, err
}

// FindMovies retrieves movies matching the filter, newest release first.
// Names match case-insensitively.
func (s *MovieService) FindMovies(ctx context.Context, filter reviewskim.MovieFilter) ([]*reviewskim.Movie, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + movieColumns + " FROM movies WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ? COLLATE NOCASE")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY release_date DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movies []*reviewskim.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	return movies, rows.Err()
}

// DeleteMovie permanently removes a movie; its reviews cascade.
func (s *MovieService) DeleteMovie(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return reviewskim.Errorf(reviewskim.ENOTFOUND, "movie %d not found", id)
	}

	return nil
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (*reviewskim.Movie, error) {
	var movie reviewskim.Movie
	var releaseDate, createdAt string

	if err := row.Scan(&movie.ID, &movie.Name, &movie.Year, &releaseDate, &movie.Budget, &movie.Gross,
		&movie.Description, &movie.PosterURL, &movie.PosterThumbnailURL, &movie.ReviewCount, &movie.URL,
		&movie.RunID, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if movie.ReleaseDate, err = parseTime(dateLayout, releaseDate, "release_date"); err != nil {
		return nil, err
	}
	if movie.CreatedAt, err = parseTime(time.RFC3339, createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &movie, nil
}
