package mock

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

var _ reviewskim.ChartService = (*ChartService)(nil)

// ChartService is a mock implementation of reviewskim.ChartService.
type ChartService struct {
	ReplaceChartFn func(ctx context.Context, kind reviewskim.ChartKind, year int, list *reviewskim.ChartList) error
	FindChartFn    func(ctx context.Context, kind reviewskim.ChartKind, year int) (*reviewskim.ChartList, error)
}

func (s *ChartService) ReplaceChart(ctx context.Context, kind reviewskim.ChartKind, year int, list *reviewskim.ChartList) error {
	return s.ReplaceChartFn(ctx, kind, year, list)
}

func (s *ChartService) FindChart(ctx context.Context, kind reviewskim.ChartKind, year int) (*reviewskim.ChartList, error) {
	return s.FindChartFn(ctx, kind, year)
}
