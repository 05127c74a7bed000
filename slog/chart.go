package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/reviewskim"
)

// Ensure LoggingChartService implements reviewskim.ChartService.
var _ reviewskim.ChartService = (*LoggingChartService)(nil)

// LoggingChartService wraps a ChartService and logs chart replacements.
type LoggingChartService struct {
	next   reviewskim.ChartService
	logger *slog.Logger
}

// NewLoggingChartService creates a new LoggingChartService.
func NewLoggingChartService(next reviewskim.ChartService, logger *slog.Logger) *LoggingChartService {
	return &LoggingChartService{next: next, logger: logger}
}

func (s *LoggingChartService) ReplaceChart(ctx context.Context, kind reviewskim.ChartKind, year int, list *reviewskim.ChartList) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("replace chart",
			"kind", kind,
			"year", year,
			"entries", list.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceChart(ctx, kind, year, list)
}

func (s *LoggingChartService) FindChart(ctx context.Context, kind reviewskim.ChartKind, year int) (*reviewskim.ChartList, error) {
	return s.next.FindChart(ctx, kind, year)
}
