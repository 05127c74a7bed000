package reviewskim

import (
	"context"
	"time"
)

// Movie represents the metadata scraped from a movie's main page.
type Movie struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	Year               int       `json:"year"`
	ReleaseDate        time.Time `json:"releaseDate"`
	Budget             *float64  `json:"budget,omitempty"` // nil when quoted in a non-dollar currency
	Gross              float64   `json:"gross"`
	Description        string    `json:"description"`
	PosterURL          string    `json:"posterUrl"`
	PosterThumbnailURL string    `json:"posterThumbnailUrl"`
	ReviewCount        int       `json:"reviewCount"`
	URL                string    `json:"url"`

	// Set by the persistence layer.
	RunID     string    `json:"runId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the movie contains invalid fields.
func (m *Movie) Validate() error {
	if m.ID <= 0 {
		return Errorf(EINVALID, "movie ID must be positive")
	}
	if m.Name == "" {
		return Errorf(EINVALID, "movie name required")
	}
	if m.URL == "" {
		return Errorf(EINVALID, "movie URL required")
	}
	if m.ReviewCount <= 0 {
		return Errorf(EINVALID, "movie review count must be positive")
	}
	if !m.ReleaseDate.IsZero() && m.ReleaseDate.Year() != m.Year {
		return Errorf(ECONSISTENCY, "release date year %d does not match title year %d", m.ReleaseDate.Year(), m.Year)
	}
	return nil
}

// MovieService represents a service for managing movies and their reviews.
type MovieService interface {
	// CreateMovie stores a movie together with all of its reviews.
	// Either everything is stored or nothing is.
	// Returns ECONFLICT if the movie already exists.
	CreateMovie(ctx context.Context, movie *Movie, reviews []*Review) error

	// ReplaceMovie stores a movie and its reviews, removing any stored
	// version of the movie in the same transaction.
	ReplaceMovie(ctx context.Context, movie *Movie, reviews []*Review) error

	// FindMovieByID retrieves a movie by its site-assigned ID.
	// Returns ENOTFOUND if the movie does not exist.
	FindMovieByID(ctx context.Context, id int) (*Movie, error)

	// FindMovies retrieves movies matching the filter, newest release first.
	FindMovies(ctx context.Context, filter MovieFilter) ([]*Movie, error)

	// DeleteMovie permanently removes a movie and all of its reviews.
	// Returns ENOTFOUND if the movie does not exist.
	DeleteMovie(ctx context.Context, id int) error
}

// MovieFilter represents a filter for FindMovies.
type MovieFilter struct {
	ID   *int    `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
