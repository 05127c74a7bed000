package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/goquery"
	rshttp "github.com/fwojciec/reviewskim/http"
	"github.com/fwojciec/reviewskim/rod"
	"github.com/fwojciec/reviewskim/scrape"
	rsslog "github.com/fwojciec/reviewskim/slog"
	"github.com/fwojciec/reviewskim/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher, if set before calling Run(), replaces the HTTP and browser
	// fetchers. Used for end-to-end testing.
	Fetcher reviewskim.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("reviewskim"),
		kong.Description("Scrape movie metadata, user reviews and charts into a local database"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"db": defaultDBPath(), "base_url": reviewskim.DefaultBaseURL},
		kong.Configuration(yamlConfig, defaultConfigPath()),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'reviewskim --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	if dir := filepath.Dir(cli.DB); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set REVIEWSKIM_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	deps.Movies = rsslog.NewLoggingMovieService(sqlite.NewMovieService(m.DB), logger)
	deps.Reviews = sqlite.NewReviewService(m.DB)
	deps.Charts = rsslog.NewLoggingChartService(sqlite.NewChartService(m.DB), logger)

	if needsScraper(kongCtx.Command()) {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli); err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}

		deps.Scraper = &scrape.Scraper{
			Fetcher:         rsslog.NewLoggingFetcher(fetcher, logger),
			MovieExtractor:  goquery.NewMovieExtractor(),
			ReviewExtractor: rsslog.NewLoggingReviewExtractor(goquery.NewReviewExtractor(), logger),
			ChartExtractor:  goquery.NewChartExtractor(),
			RateLimiter:     scrape.NewDomainLimiter(cli.RPS),
			URLs:            reviewskim.URLs{Base: cli.BaseURL},
			Log: func(format string, args ...any) {
				logger.Warn(fmt.Sprintf(format, args...))
			},
		}
	}

	return kongCtx.Run(deps)
}

func newFetcher(cli *CLI) (reviewskim.Fetcher, error) {
	if cli.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
	}
	return rshttp.NewFetcher(
		rshttp.WithTimeout(cli.Timeout),
		rshttp.WithUserAgent(cli.UserAgent),
	), nil
}

// needsScraper reports whether a command talks to the movie site.
func needsScraper(command string) bool {
	switch strings.Fields(command)[0] {
	case "ingest", "chart", "popular":
		return true
	}
	return false
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "reviewskim.db"
	}
	return filepath.Join(home, ".reviewskim", "reviewskim.db")
}
