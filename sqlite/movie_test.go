package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newMovie(id int) *reviewskim.Movie {
	return &reviewskim.Movie{
		ID:                 id,
		Name:               "Iron Man 3",
		Year:               2013,
		ReleaseDate:        time.Date(2013, time.May, 3, 0, 0, 0, 0, time.UTC),
		Budget:             ptr(200000000.0),
		Gross:              408992272,
		Description:        "Tony Stark faces the Mandarin.",
		PosterURL:          "http://ia.media-imdb.com/images/M/abc.jpg",
		PosterThumbnailURL: "http://ia.media-imdb.com/images/M/abc._V1_SX214_.jpg",
		ReviewCount:        3,
		URL:                fmt.Sprintf("http://www.imdb.com/title/tt%07d/", id),
	}
}

func newReviews(movieID, n int) []*reviewskim.Review {
	reviews := make([]*reviewskim.Review, n)
	for i := range reviews {
		reviews[i] = &reviewskim.Review{
			MovieID:    movieID,
			ReviewerID: 1000 + i,
			Reviewer:   ptr(fmt.Sprintf("critic%d", i)),
			Title:      fmt.Sprintf("Review %d", i),
			Date:       time.Date(2013, time.May, 4+i, 0, 0, 0, 0, time.UTC),
			Score:      ptr(7),
			Likes:      ptr(12),
			Dislikes:   ptr(3),
			Place:      ptr("United Kingdom"),
			Text:       fmt.Sprintf("Thoughts %d.", i),
			Rank:       i,
			URL:        fmt.Sprintf("http://www.imdb.com/title/tt%07d/reviews?start=0", movieID),
		}
	}
	return reviews
}

func TestMovieService_CreateMovie(t *testing.T) {
	t.Parallel()

	t.Run("stores movie with run ID and creation time", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()

		movie := newMovie(1300854)
		reviews := newReviews(1300854, 3)

		require.NoError(t, svc.CreateMovie(ctx, movie, reviews))

		assert.NotEmpty(t, movie.RunID)
		assert.False(t, movie.CreatedAt.IsZero())
		for _, r := range reviews {
			assert.Len(t, r.TextHash, 16)
		}

		found, err := svc.FindMovieByID(ctx, 1300854)
		require.NoError(t, err)
		assert.Equal(t, movie, found)
	})

	t.Run("stores movie without budget", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()

		movie := newMovie(211915)
		movie.Budget = nil
		require.NoError(t, svc.CreateMovie(ctx, movie, nil))

		found, err := svc.FindMovieByID(ctx, 211915)
		require.NoError(t, err)
		assert.Nil(t, found.Budget)
	})

	t.Run("returns conflict for existing movie", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateMovie(ctx, newMovie(1), nil))

		err := svc.CreateMovie(ctx, newMovie(1), nil)

		assert.Equal(t, reviewskim.ECONFLICT, reviewskim.ErrorCode(err))
	})

	t.Run("returns error for invalid movie", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		movie := newMovie(1)
		movie.Name = ""

		err := sqlite.NewMovieService(db).CreateMovie(context.Background(), movie, nil)

		assert.Equal(t, reviewskim.EINVALID, reviewskim.ErrorCode(err))
	})

	t.Run("rejects reviews of another movie", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewMovieService(db).CreateMovie(context.Background(), newMovie(1), newReviews(2, 1))

		assert.Equal(t, reviewskim.EINVALID, reviewskim.ErrorCode(err))
	})

	t.Run("stores nothing when a review fails", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()

		reviews := newReviews(1, 3)
		reviews[2].Rank = 1

		err := svc.CreateMovie(ctx, newMovie(1), reviews)
		require.Error(t, err)

		_, err = svc.FindMovieByID(ctx, 1)
		assert.Equal(t, reviewskim.ENOTFOUND, reviewskim.ErrorCode(err))
		n, err := sqlite.NewReviewService(db).CountReviews(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestMovieService_ReplaceMovie(t *testing.T) {
	t.Parallel()

	t.Run("replaces stored movie and its reviews", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateMovie(ctx, newMovie(1), newReviews(1, 3)))

		updated := newMovie(1)
		updated.ReviewCount = 5
		require.NoError(t, svc.ReplaceMovie(ctx, updated, newReviews(1, 5)))

		got, err := svc.FindMovieByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, got.ReviewCount)
		assert.Equal(t, updated.RunID, got.RunID)
		n, err := sqlite.NewReviewService(db).CountReviews(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	})

	t.Run("stores movie that was not stored", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.ReplaceMovie(ctx, newMovie(1), newReviews(1, 2)))

		_, err := svc.FindMovieByID(ctx, 1)
		assert.NoError(t, err)
	})

	t.Run("keeps stored movie when the new reviews fail", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()
		original := newMovie(1)
		require.NoError(t, svc.CreateMovie(ctx, original, newReviews(1, 3)))

		reviews := newReviews(1, 4)
		reviews[3].Rank = 0

		err := svc.ReplaceMovie(ctx, newMovie(1), reviews)
		require.Error(t, err)

		got, err := svc.FindMovieByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, original.RunID, got.RunID)
		n, err := sqlite.NewReviewService(db).CountReviews(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})
}

func TestMovieService_FindMovieByID(t *testing.T) {
	t.Parallel()

	t.Run("returns not found for missing movie", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		_, err := sqlite.NewMovieService(db).FindMovieByID(context.Background(), 42)

		assert.Equal(t, reviewskim.ENOTFOUND, reviewskim.ErrorCode(err))
	})
}

func TestMovieService_FindMovies(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *sqlite.MovieService {
		t.Helper()
		svc := sqlite.NewMovieService(setupTestDB(t))
		ctx := context.Background()

		old := newMovie(1)
		old.Name, old.Year, old.ReleaseDate = "Superman", 1978, time.Date(1978, time.December, 15, 0, 0, 0, 0, time.UTC)
		remake := newMovie(2)
		remake.Name, remake.Year, remake.ReleaseDate = "Superman", 2006, time.Date(2006, time.June, 28, 0, 0, 0, 0, time.UTC)
		other := newMovie(3)

		for _, m := range []*reviewskim.Movie{old, remake, other} {
			require.NoError(t, svc.CreateMovie(ctx, m, nil))
		}
		return svc
	}

	t.Run("lists newest release first", func(t *testing.T) {
		t.Parallel()

		movies, err := seed(t).FindMovies(context.Background(), reviewskim.MovieFilter{})

		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, 3, movies[0].ID)
		assert.Equal(t, 2, movies[1].ID)
		assert.Equal(t, 1, movies[2].ID)
	})

	t.Run("filters by name ignoring case", func(t *testing.T) {
		t.Parallel()

		movies, err := seed(t).FindMovies(context.Background(), reviewskim.MovieFilter{Name: ptr("superman")})

		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, 2006, movies[0].Year)
		assert.Equal(t, 1978, movies[1].Year)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		movies, err := seed(t).FindMovies(context.Background(), reviewskim.MovieFilter{ID: ptr(1)})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, 1978, movies[0].Year)
	})

	t.Run("applies offset and limit", func(t *testing.T) {
		t.Parallel()

		movies, err := seed(t).FindMovies(context.Background(), reviewskim.MovieFilter{Offset: 1, Limit: 1})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, 2, movies[0].ID)
	})

	t.Run("applies offset without limit", func(t *testing.T) {
		t.Parallel()

		movies, err := seed(t).FindMovies(context.Background(), reviewskim.MovieFilter{Offset: 2})

		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, 1, movies[0].ID)
	})
}

func TestMovieService_DeleteMovie(t *testing.T) {
	t.Parallel()

	t.Run("removes movie and its reviews", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMovieService(db)
		ctx := context.Background()
		require.NoError(t, svc.CreateMovie(ctx, newMovie(1), newReviews(1, 3)))

		require.NoError(t, svc.DeleteMovie(ctx, 1))

		_, err := svc.FindMovieByID(ctx, 1)
		assert.Equal(t, reviewskim.ENOTFOUND, reviewskim.ErrorCode(err))
		n, err := sqlite.NewReviewService(db).CountReviews(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("returns not found for missing movie", func(t *testing.T) {
		t.Parallel()

		err := sqlite.NewMovieService(setupTestDB(t)).DeleteMovie(context.Background(), 1)

		assert.Equal(t, reviewskim.ENOTFOUND, reviewskim.ErrorCode(err))
	})
}
