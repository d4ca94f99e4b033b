package library

import (
	"fmt"
	"strings"
)

// FormatReviews formats reviews as a tree, newest first
func FormatReviews(reviews []Review) string {
	if len(reviews) == 0 {
		return "No reviews yet"
	}

	var sb strings.Builder
	sb.WriteString("\nReview")
	if len(reviews) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(reviews))

	for i, r := range reviews {
		isLast := i == len(reviews)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s: %d/10 by %s\n", prefix, r.MovieTitle, r.Rating, r.Author)
		fmt.Fprintf(&sb, "%s%s\n", indent, r.Comment)
		if !r.CreatedAt.IsZero() {
			fmt.Fprintf(&sb, "%s%s\n", indent, r.CreatedAt.Format("2006-01-02 15:04"))
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}
