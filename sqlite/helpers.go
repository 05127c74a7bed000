package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
)

// dateLayout is the storage format of calendar dates.
const dateLayout = "2006-01-02"

// parseTime parses a stored timestamp or date in layout.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTime(layout, value, fieldName string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite only accepts OFFSET after LIMIT, so an offset alone gets an unbounded limit.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// hashText computes the xxHash of a review text as a hex string.
func hashText(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
