package catalog

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides tree-style console output for movies
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

var _ MovieFormatter = (*ConsoleFormatter)(nil)

// FormatMovieList formats a titled list of movies
func (f *ConsoleFormatter) FormatMovieList(title string, movies []Movie, options FormatOptions) string {
	if len(movies) == 0 {
		return "No movies found"
	}

	shown := movies
	if options.Limit > 0 && len(shown) > options.Limit {
		shown = shown[:options.Limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d):\n\n", title, len(movies))

	for i, movie := range shown {
		isLast := i == len(shown)-1
		f.formatMovie(&sb, movie, isLast, options)

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	if hidden := len(movies) - len(shown); hidden > 0 {
		fmt.Fprintf(&sb, "\n... and %d more\n", hidden)
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatGenres formats the genre list as id and name pairs
func (f *ConsoleFormatter) FormatGenres(genres []Genre) string {
	if len(genres) == 0 {
		return "No genres available"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nGenres (%d):\n\n", len(genres))
	for i, g := range genres {
		prefix := "├"
		if i == len(genres)-1 {
			prefix = "╰"
		}
		fmt.Fprintf(&sb, "%s── %5d  %s\n", prefix, g.ID, g.Name)
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatHighlights formats the popular and top rated sections
func (f *ConsoleFormatter) FormatHighlights(h *Highlights, options FormatOptions) string {
	if h == nil {
		return "No movies found"
	}
	return f.FormatMovieList("Popular", h.Popular, options) +
		f.FormatMovieList("Top Rated", h.TopRated, options)
}

func (f *ConsoleFormatter) formatMovie(sb *strings.Builder, movie Movie, isLast bool, options FormatOptions) {
	prefix := "├"
	indent := "│   "
	if isLast {
		prefix = "╰"
		indent = "    "
	}

	if movie.ReleaseYear > 0 {
		fmt.Fprintf(sb, "%s── %s (%d)\n", prefix, movie.Title, movie.ReleaseYear)
	} else {
		fmt.Fprintf(sb, "%s── %s\n", prefix, movie.Title)
	}

	info := fmt.Sprintf("ID: %d | Rating: %.1f", movie.ID, movie.Rating)
	if len(movie.Genres) > 0 {
		info += " | " + strings.Join(movie.Genres, ", ")
	}
	fmt.Fprintf(sb, "%s%s\n", indent, info)

	if !options.ShowDetails {
		return
	}

	if movie.Description != "" {
		fmt.Fprintf(sb, "%s%s\n", indent, truncate(movie.Description, 120))
	}
	fmt.Fprintf(sb, "%sPoster: %s\n", indent, movie.PosterURL)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
