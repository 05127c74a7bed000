package main

import (
	"fmt"

	"github.com/fwojciec/reviewskim"
	"github.com/fwojciec/reviewskim/scrape"
)

// chart identifies one stored chart.
type chart struct {
	kind reviewskim.ChartKind
	year int
}

// Run executes the popular command.
func (c *PopularCmd) Run(deps *Dependencies) error {
	charts := make([]chart, 0, len(c.Years)+2)
	for _, year := range c.Years {
		charts = append(charts, chart{reviewskim.ChartBoxOffice, year})
	}
	charts = append(charts, chart{kind: reviewskim.ChartTop}, chart{kind: reviewskim.ChartBottom})

	queue := deps.Queue
	if queue == nil {
		queue = scrape.NewQueue(uint(len(charts)*reviewskim.FixedChartSize), 0.001)
	}
	for _, ch := range charts {
		list, err := deps.Charts.FindChart(deps.Ctx, ch.kind, ch.year)
		if reviewskim.ErrorCode(err) == reviewskim.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "warning: %s chart %s is not stored, skipping\n", ch.kind, yearLabel(ch.year))
			continue
		} else if err != nil {
			printError(deps, err)
			return err
		}
		for _, id := range list.MovieIDs() {
			queue.Push(id)
		}
	}

	if queue.Len() == 0 {
		fmt.Fprintln(deps.Stderr, "error: no charts stored. Use 'reviewskim chart' first.")
		return reviewskim.Errorf(reviewskim.ENOTFOUND, "no charts stored")
	}

	fmt.Fprintf(deps.Stdout, "Ingesting %d movies\n", queue.Len())
	opts := ingestOptions{Limit: c.Limit, Concurrency: c.Concurrency}
	var ingested, failed int
	for {
		id, ok := queue.Pop()
		if !ok {
			break
		}
		if err := deps.Ctx.Err(); err != nil {
			return err
		}
		if err := ingest(deps, id, opts); err != nil {
			failed++
			continue
		}
		ingested++
	}

	fmt.Fprintf(deps.Stdout, "Done: %d ingested or already stored, %d failed\n", ingested, failed)
	if failed > 0 {
		return fmt.Errorf("%d movies could not be ingested", failed)
	}
	return nil
}

func yearLabel(year int) string {
	if year == 0 {
		return "(all time)"
	}
	return fmt.Sprint(year)
}
