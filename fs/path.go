// Package fs archives fetched pages on the local filesystem and replays
// them as a reviewskim.Fetcher.
package fs

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/reviewskim"
)

// PagePath converts a page URL to a relative file path. The query string
// becomes part of the file name so every review page gets its own file.
//
//	/title/tt1300854/                 → title/tt1300854/index.html
//	/title/tt1300854/reviews?start=10 → title/tt1300854/reviews_start_10.html
func PagePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", reviewskim.Errorf(reviewskim.EINVALID, "invalid page URL %q", rawURL)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	if p == "" || strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, "index")
	}

	query := u.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range query[k] {
			p += "_" + sanitize(k) + "_" + sanitize(v)
		}
	}
	return p + ".html", nil
}

// sanitize keeps a query key or value safe for a file name. Underscores
// separate keys from values, so they are replaced too.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '-'
	}, s)
}
