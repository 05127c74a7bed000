package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Movies  reviewskim.MovieService
	Reviews reviewskim.ReviewService
	Charts  reviewskim.ChartService
	Scraper *scrape.Scraper

	// Queue orders the movies of the popular command. A Bloom filter
	// backed queue is used when nil.
	Queue reviewskim.MovieQueue
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string        `name:"db" env:"REVIEWSKIM_DB" default:"${db}" help:"SQLite database path"`
	BaseURL   string        `name:"base-url" env:"REVIEWSKIM_BASE_URL" default:"${base_url}" help:"Movie site base URL"`
	RPS       float64       `name:"rps" default:"1" help:"Requests per second per domain"`
	Timeout   time.Duration `default:"10s" help:"Timeout for a single page fetch"`
	UserAgent string        `name:"user-agent" env:"REVIEWSKIM_USER_AGENT" help:"User-Agent header for HTTP fetches"`
	Browser   bool          `help:"Fetch pages through headless Chrome"`
	Verbose   bool          `short:"v" help:"Log fetches and storage operations to stderr"`

	Config kong.ConfigFlag `help:"Load flag defaults from a YAML file"`

	Ingest  IngestCmd  `cmd:"" help:"Scrape movies with their reviews and store them"`
	List    ListCmd    `cmd:"" help:"List stored movies"`
	Show    ShowCmd    `cmd:"" help:"Show a stored movie"`
	Reviews ReviewsCmd `cmd:"" help:"Show the stored reviews of a movie"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored movie and its reviews"`
	Chart   ChartCmd   `cmd:"" help:"Scrape and store movie charts"`
	Popular PopularCmd `cmd:"" help:"Ingest every movie on the stored charts"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	IDs         []int  `arg:"" name:"id" help:"Movie IDs (the digits after tt)"`
	Limit       int    `short:"l" help:"Fetch at most this many reviews, a multiple of 10 (0 for all)"`
	Force       bool   `short:"f" help:"Replace movies that are already stored"`
	Strict      bool   `help:"Fail a movie on the first review that cannot be extracted"`
	Concurrency int    `short:"c" default:"4" help:"Review pages fetched at once"`
	Archive     string `type:"path" help:"Keep raw pages under this directory"`
	Replay      string `type:"existingdir" help:"Read pages from an archive directory instead of the site"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Name string `short:"n" help:"Only movies with this name"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID int `arg:"" help:"Movie ID"`
}

// ReviewsCmd is the "reviews" subcommand.
type ReviewsCmd struct {
	ID       int `arg:"" help:"Movie ID"`
	Reviewer int `help:"Only reviews by this reviewer ID"`
	Offset   int `help:"Skip this many reviews"`
	Limit    int `short:"l" default:"10" help:"Show at most this many reviews (0 for all)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    int  `arg:"" help:"Movie ID"`
	Force bool `help:"Confirm deletion"`
}

// ChartCmd is the "chart" subcommand.
type ChartCmd struct {
	Top       TopCmd       `cmd:"" help:"All-time top rated movies"`
	Bottom    BottomCmd    `cmd:"" help:"All-time bottom rated movies"`
	BoxOffice BoxOfficeCmd `cmd:"" name:"boxoffice" help:"Highest-grossing movies of a year"`
}

// TopCmd is the "chart top" subcommand.
type TopCmd struct {
	Cached bool `help:"Print the stored chart without scraping"`
}

// BottomCmd is the "chart bottom" subcommand.
type BottomCmd struct {
	Cached bool `help:"Print the stored chart without scraping"`
}

// BoxOfficeCmd is the "chart boxoffice" subcommand.
type BoxOfficeCmd struct {
	Year   int  `required:"" help:"Release year"`
	Count  int  `default:"100" help:"Number of movies"`
	Cached bool `help:"Print the stored chart without scraping"`
}

// PopularCmd is the "popular" subcommand.
type PopularCmd struct {
	Years       []int `default:"2013,2012" help:"Box office years to include"`
	Limit       int   `short:"l" help:"Fetch at most this many reviews per movie (0 for all)"`
	Concurrency int   `short:"c" default:"4" help:"Review pages fetched at once"`
}
