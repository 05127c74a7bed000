package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/reviewskim"
)

// Ensure Replay implements reviewskim.Fetcher at compile time.
var _ reviewskim.Fetcher = (*Replay)(nil)

// Replay serves pages from a committed Archive directory instead of the
// network. A URL that was never archived is reported as ENOTFOUND.
type Replay struct {
	dir string
}

// NewReplay creates a Replay reading from dir.
func NewReplay(dir string) *Replay {
	return &Replay{dir: dir}
}

func (r *Replay) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel, err := PagePath(url)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(filepath.Join(r.dir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return "", reviewskim.Errorf(reviewskim.ENOTFOUND, "page %s is not archived", url)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Replay) Close() error {
	return nil
}
