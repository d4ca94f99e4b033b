package tmdb

import (
	"context"
)

// API defines the interface for TMDB operations
type API interface {
	// TestConnection verifies the bearer token is accepted
	TestConnection(ctx context.Context) error

	// GetGenres retrieves the movie genre list
	GetGenres(ctx context.Context) ([]Genre, error)

	// GetPopular retrieves the popular movies collection
	GetPopular(ctx context.Context) ([]Movie, error)

	// GetTopRated retrieves the top rated movies collection
	GetTopRated(ctx context.Context) ([]Movie, error)

	// DiscoverByGenre retrieves movies of one genre, most popular first
	DiscoverByGenre(ctx context.Context, genreID int) ([]Movie, error)

	// SearchMovies retrieves movies matching a free-text query
	SearchMovies(ctx context.Context, query string) ([]Movie, error)
}

var _ API = (*Client)(nil)
