package main

import (
	"fmt"

	"github.com/fwojciec/reviewskim"
)

// Run executes the chart top command.
func (c *TopCmd) Run(deps *Dependencies) error {
	return runFixedChart(deps, reviewskim.ChartTop, c.Cached)
}

// Run executes the chart bottom command.
func (c *BottomCmd) Run(deps *Dependencies) error {
	return runFixedChart(deps, reviewskim.ChartBottom, c.Cached)
}

func runFixedChart(deps *Dependencies, kind reviewskim.ChartKind, cached bool) error {
	if cached {
		return printStoredChart(deps, kind, 0)
	}

	list, err := deps.Scraper.ScrapeChart(deps.Ctx, kind)
	if err != nil {
		printError(deps, err)
		return err
	}
	return storeChart(deps, kind, 0, list)
}

// Run executes the chart boxoffice command.
func (c *BoxOfficeCmd) Run(deps *Dependencies) error {
	if c.Cached {
		return printStoredChart(deps, reviewskim.ChartBoxOffice, c.Year)
	}

	list, err := deps.Scraper.ScrapeBoxOffice(deps.Ctx, c.Year, c.Count)
	if err != nil {
		printError(deps, err)
		return err
	}
	if list.Len() < c.Count {
		fmt.Fprintf(deps.Stderr, "warning: listing ended after %d of %d movies\n", list.Len(), c.Count)
	}
	return storeChart(deps, reviewskim.ChartBoxOffice, c.Year, list)
}

func storeChart(deps *Dependencies, kind reviewskim.ChartKind, year int, list *reviewskim.ChartList) error {
	if err := deps.Charts.ReplaceChart(deps.Ctx, kind, year, list); err != nil {
		printError(deps, err)
		return err
	}
	printChart(deps, list)
	return nil
}

func printStoredChart(deps *Dependencies, kind reviewskim.ChartKind, year int) error {
	list, err := deps.Charts.FindChart(deps.Ctx, kind, year)
	if reviewskim.ErrorCode(err) == reviewskim.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: %s chart is not stored. Run 'reviewskim chart %s' first.\n", kind, kind)
		return err
	} else if err != nil {
		printError(deps, err)
		return err
	}
	printChart(deps, list)
	return nil
}

func printChart(deps *Dependencies, list *reviewskim.ChartList) {
	for _, e := range list.Entries() {
		fmt.Fprintf(deps.Stdout, "%3d. tt%07d  %s (%d)\n", e.Rank+1, e.MovieID, e.Name, e.Year)
	}
}
