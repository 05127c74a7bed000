package reviewskim

import "context"

// Page is a raw fetched document kept for replaying an extraction.
type Page struct {
	URL  string
	HTML string
}

// PageStore archives the raw pages of one movie. Saved pages stay pending
// until Commit publishes them all at once. Abort drops them.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}
