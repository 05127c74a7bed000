package main

import (
	"fmt"

	"github.com/fwojciec/reviewskim"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter reviewskim.MovieFilter
	if c.Name != "" {
		filter.Name = &c.Name
	}

	movies, err := deps.Movies.FindMovies(deps.Ctx, filter)
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(movies) == 0 {
		fmt.Fprintln(deps.Stdout, "No movies found. Use 'reviewskim ingest' to add one.")
		return nil
	}

	for _, m := range movies {
		fmt.Fprintf(deps.Stdout, "tt%07d  %s (%d)  %d reviews\n", m.ID, m.Name, m.Year, m.ReviewCount)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	movie, err := deps.Movies.FindMovieByID(deps.Ctx, c.ID)
	if err != nil {
		printError(deps, err)
		return err
	}

	stored, err := deps.Reviews.CountReviews(deps.Ctx, c.ID)
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, reviewskim.FormatMovie(movie))
	fmt.Fprintf(deps.Stdout, "%d reviews stored, ingested %s\n", stored, movie.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// Run executes the reviews command.
func (c *ReviewsCmd) Run(deps *Dependencies) error {
	filter := reviewskim.ReviewFilter{
		MovieID: &c.ID,
		Offset:  c.Offset,
		Limit:   c.Limit,
	}
	if c.Reviewer != 0 {
		filter.ReviewerID = &c.Reviewer
	}

	reviews, err := deps.Reviews.FindReviews(deps.Ctx, filter)
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(reviews) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no reviews stored for tt%07d. Use 'reviewskim ingest %d' first.\n", c.ID, c.ID)
		return reviewskim.Errorf(reviewskim.ENOTFOUND, "no reviews stored for movie %d", c.ID)
	}

	fmt.Fprintln(deps.Stdout, reviewskim.FormatReviews(reviews))
	return nil
}
