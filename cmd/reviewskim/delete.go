package main

import (
	"fmt"

	"github.com/fwojciec/reviewskim"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return reviewskim.Errorf(reviewskim.EINVALID, "use --force to confirm deletion")
	}

	movie, err := deps.Movies.FindMovieByID(deps.Ctx, c.ID)
	if reviewskim.ErrorCode(err) == reviewskim.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: movie tt%07d not found. Use 'reviewskim list' to see stored movies.\n", c.ID)
		return err
	} else if err != nil {
		printError(deps, err)
		return err
	}

	if err := deps.Movies.DeleteMovie(deps.Ctx, c.ID); err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %q (tt%07d)\n", movie.Name, c.ID)
	return nil
}
