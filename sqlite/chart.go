package sqlite

import (
	"context"

	"github.com/fwojciec/reviewskim"
)

// Compile-time interface verification.
var _ reviewskim.ChartService = (*ChartService)(nil)

// ChartService implements reviewskim.ChartService using SQLite.
type ChartService struct {
	db *DB
}

// NewChartService creates a new ChartService.
func NewChartService(db *DB) *ChartService {
	return &ChartService{db: db}
}

// ReplaceChart stores list as the chart for kind and year.
func (s *ChartService) ReplaceChart(ctx context.Context, kind reviewskim.ChartKind, year int, list *reviewskim.ChartList) error {
	if _, err := reviewskim.ParseChartKind(string(kind)); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM chart_entries WHERE kind = ? AND year = ?", kind, year); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chart_entries (kind, year, rank, movie_id, name, movie_year)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range list.Entries() {
		if _, err := stmt.ExecContext(ctx, kind, year, e.Rank, e.MovieID, e.Name, e.Year); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindChart retrieves a stored chart in rank order.
func (s *ChartService) FindChart(ctx context.Context, kind reviewskim.ChartKind, year int) (*reviewskim.ChartList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT movie_id, name, movie_year
		FROM chart_entries
		WHERE kind = ? AND year = ?
		ORDER BY rank ASC
	`, kind, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := reviewskim.NewChartList()
	for rows.Next() {
		var movieID, movieYear int
		var name string
		if err := rows.Scan(&movieID, &name, &movieYear); err != nil {
			return nil, err
		}
		list.Add(movieID, name, movieYear)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list.Len() == 0 {
		return nil, reviewskim.Errorf(reviewskim.ENOTFOUND, "%s chart for %d not found", kind, year)
	}
	return list, nil
}
