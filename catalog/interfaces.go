package catalog

import (
	"context"

	"github.com/s0up4200/cinebrowse/tmdb"
)

// Source is the subset of the TMDB API the catalog reads from
type Source interface {
	GetGenres(ctx context.Context) ([]tmdb.Genre, error)
	GetPopular(ctx context.Context) ([]tmdb.Movie, error)
	GetTopRated(ctx context.Context) ([]tmdb.Movie, error)
	DiscoverByGenre(ctx context.Context, genreID int) ([]tmdb.Movie, error)
	SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error)
}

var _ Source = (*tmdb.Client)(nil)

// MovieFormatter defines the interface for formatting movie output
type MovieFormatter interface {
	FormatMovieList(title string, movies []Movie, options FormatOptions) string
	FormatGenres(genres []Genre) string
	FormatHighlights(h *Highlights, options FormatOptions) string
}

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
	Limit       int
}
