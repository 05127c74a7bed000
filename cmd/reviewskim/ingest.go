package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/fs"
	"github.com/fwojciec/reviewskim/scrape"
	rsslog "github.com/fwojciec/reviewskim/slog"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	opts := ingestOptions{
		Limit:       c.Limit,
		Force:       c.Force,
		Strict:      c.Strict,
		Concurrency: c.Concurrency,
		Archive:     c.Archive,
		Replay:      c.Replay,
	}

	var failed error
	for _, id := range c.IDs {
		if err := ingest(deps, id, opts); err != nil && failed == nil {
			failed = err
		}
	}
	return failed
}

type ingestOptions struct {
	Limit       int
	Force       bool
	Strict      bool
	Concurrency int
	Archive     string
	Replay      string
}

// ingest scrapes one movie and stores it with its reviews. A movie that is
// already stored is left alone unless Force is set, in which case it is
// replaced only once the new scrape has succeeded.
func ingest(deps *Dependencies, id int, opts ingestOptions) error {
	if !opts.Force {
		movie, err := deps.Movies.FindMovieByID(deps.Ctx, id)
		if err == nil {
			fmt.Fprintf(deps.Stdout, "Skipped %q (tt%07d): already stored, use --force to replace\n", movie.Name, id)
			return nil
		}
		if reviewskim.ErrorCode(err) != reviewskim.ENOTFOUND {
			printError(deps, err)
			return err
		}
	}

	s := *deps.Scraper
	s.Strict = opts.Strict
	s.Concurrency = opts.Concurrency
	s.Progress = func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "tt%07d: %d review pages\n", id, event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %v\n", event.Error)
		}
	}

	name := fmt.Sprintf("tt%07d", id)
	if opts.Replay != "" {
		s.Fetcher = rsslog.NewLoggingFetcher(fs.NewReplay(filepath.Join(opts.Replay, name)), deps.Logger)
		s.RateLimiter = nil
		s.RetryDelays = []time.Duration{}
	}

	movieOpts := scrape.MovieOptions{Limit: opts.Limit}
	if opts.Archive != "" {
		movieOpts.Store = fs.NewArchive(opts.Archive, name)
	}

	result, err := s.ScrapeMovie(deps.Ctx, id, movieOpts)
	if err != nil {
		printError(deps, err)
		return err
	}

	store := deps.Movies.CreateMovie
	if opts.Force {
		store = deps.Movies.ReplaceMovie
	}
	if err := store(deps.Ctx, result.Movie, result.Reviews); err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %q (%s): %d reviews, %d skipped\n",
		result.Movie.Name, name, len(result.Reviews), len(result.Skipped))
	return nil
}

// printError reports err on stderr with the extraction context when there
// is one.
func printError(deps *Dependencies, err error) {
	if reviewskim.ErrorCode(err) == reviewskim.EINTERNAL {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", reviewskim.ErrorMessage(err))
}
