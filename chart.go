package reviewskim

import "context"

// ChartKind identifies a ranked movie listing.
type ChartKind string

// Supported charts.
const (
	ChartTop       ChartKind = "top"
	ChartBottom    ChartKind = "bottom"
	ChartBoxOffice ChartKind = "boxoffice"
)

// Chart page sizes.
const (
	// FixedChartSize is the number of entries taken from an all-time chart.
	FixedChartSize = 100

	// ChartPageSize is the number of entries on one box office listing page.
	ChartPageSize = 50
)

// ParseChartKind converts a name into a ChartKind.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(s); k {
	case ChartTop, ChartBottom, ChartBoxOffice:
		return k, nil
	}
	return "", Errorf(EINVALID, "unknown chart %q", s)
}

// ChartEntry is one ranked movie in a chart.
type ChartEntry struct {
	MovieID int    `json:"movieId"`
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	Year    int    `json:"year"`
}

// ChartList is an insertion-ordered mapping from movie ID to chart entry.
// The first entry added for an ID wins; later ones are ignored.
// The zero value is ready to use.
type ChartList struct {
	index   map[int]int
	entries []ChartEntry
}

// NewChartList returns an empty ChartList.
func NewChartList() *ChartList {
	return &ChartList{}
}

// Add appends an entry for movieID unless one already exists.
// The new entry's rank is its insertion position. It reports whether
// the entry was added.
func (l *ChartList) Add(movieID int, name string, year int) bool {
	if l.index == nil {
		l.index = make(map[int]int)
	}
	if _, ok := l.index[movieID]; ok {
		return false
	}
	l.index[movieID] = len(l.entries)
	l.entries = append(l.entries, ChartEntry{
		MovieID: movieID,
		Rank:    len(l.entries),
		Name:    name,
		Year:    year,
	})
	return true
}

// Get returns the entry for movieID.
func (l *ChartList) Get(movieID int) (ChartEntry, bool) {
	i, ok := l.index[movieID]
	if !ok {
		return ChartEntry{}, false
	}
	return l.entries[i], true
}

// Len returns the number of entries.
func (l *ChartList) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries in insertion order.
func (l *ChartList) Entries() []ChartEntry {
	out := make([]ChartEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// MovieIDs returns the movie IDs in insertion order.
func (l *ChartList) MovieIDs() []int {
	ids := make([]int, len(l.entries))
	for i, e := range l.entries {
		ids[i] = e.MovieID
	}
	return ids
}

// ChartService represents a service for storing scraped charts.
type ChartService interface {
	// ReplaceChart stores list as the chart for kind and year,
	// discarding any previously stored version. Year is zero for
	// all-time charts.
	ReplaceChart(ctx context.Context, kind ChartKind, year int, list *ChartList) error

	// FindChart retrieves a stored chart.
	// Returns ENOTFOUND if the chart has never been stored.
	FindChart(ctx context.Context, kind ChartKind, year int) (*ChartList, error)
}
