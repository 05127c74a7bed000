package reviewskim

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatReviews formats reviews for display.
// Optional fields that are absent are shown as "-".
// Reviews are separated by blank lines.
func FormatReviews(reviews []*Review) string {
	if len(reviews) == 0 {
		return ""
	}

	parts := make([]string, 0, len(reviews))
	for _, r := range reviews {
		var b strings.Builder
		fmt.Fprintf(&b, "#%d %s\n", r.Rank, r.Title)
		fmt.Fprintf(&b, "by %s (ur%d) from %s on %s, score %s, useful %s/%s",
			optString(r.Reviewer), r.ReviewerID, optString(r.Place), r.Date.Format("2 January 2006"),
			optInt(r.Score), optInt(r.Likes), optInt(r.Dislikes))
		if r.Spoilers {
			b.WriteString(" [spoilers]")
		}
		b.WriteString("\n")
		b.WriteString(r.Text)
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatMovie formats a movie's metadata for display.
func FormatMovie(m *Movie) string {
	budget := "-"
	if m.Budget != nil {
		budget = "$" + strconv.FormatFloat(*m.Budget, 'f', 0, 64)
	}
	return fmt.Sprintf("%s (%d) tt%07d\nreleased %s, budget %s, gross $%s, %d reviews\n%s\n%s",
		m.Name, m.Year, m.ID, m.ReleaseDate.Format("2 January 2006"), budget,
		strconv.FormatFloat(m.Gross, 'f', 0, 64), m.ReviewCount, m.URL, m.Description)
}

func optString(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optInt(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
