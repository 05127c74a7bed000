package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/reviewskim"
)

// Ensure Archive implements reviewskim.PageStore at compile time.
var _ reviewskim.PageStore = (*Archive)(nil)

// Archive stores the raw pages of one scrape. Pages are written under
// baseDir/name.tmp and the directory replaces baseDir/name on Commit, so a
// failed scrape never leaves a partial archive behind.
type Archive struct {
	baseDir string
	name    string
}

// NewArchive creates an Archive for baseDir/name.
func NewArchive(baseDir, name string) *Archive {
	return &Archive{baseDir: baseDir, name: name}
}

// Dir returns the directory the archive occupies after Commit.
func (a *Archive) Dir() string {
	return filepath.Join(a.baseDir, a.name)
}

func (a *Archive) pendingDir() string {
	return filepath.Join(a.baseDir, a.name+".tmp")
}

func (a *Archive) Save(ctx context.Context, page *reviewskim.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := PagePath(page.URL)
	if err != nil {
		return err
	}

	full := filepath.Join(a.pendingDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(page.HTML), 0644)
}

func (a *Archive) Commit() error {
	if _, err := os.Stat(a.pendingDir()); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(a.Dir()); err != nil {
		return err
	}
	return os.Rename(a.pendingDir(), a.Dir())
}

func (a *Archive) Abort() error {
	return os.RemoveAll(a.pendingDir())
}
