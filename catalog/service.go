package catalog

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinebrowse/tmdb"
)

// Service serves display-ready movie listings from a TMDB source
type Service struct {
	source Source
	genres *GenreCache
	mapper Mapper
	logger zerolog.Logger
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithMapper overrides the image base and placeholder URLs
func WithMapper(m Mapper) ServiceOption {
	return func(s *Service) {
		if m.ImageBaseURL != "" {
			s.mapper.ImageBaseURL = m.ImageBaseURL
		}
		if m.PlaceholderURL != "" {
			s.mapper.PlaceholderURL = m.PlaceholderURL
		}
	}
}

// NewService creates a catalog service reading from source
func NewService(source Source, logger zerolog.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		source: source,
		genres: NewGenreCache(source, logger),
		mapper: DefaultMapper,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenreIndex returns the cached genre index, fetching it on first use.
// It never fails; an unavailable genre list yields an empty index.
func (s *Service) GenreIndex(ctx context.Context) GenreIndex {
	return s.genres.Index(ctx)
}

// Genres fetches the genre list directly, returning an empty list on failure
func (s *Service) Genres(ctx context.Context) []Genre {
	raw, err := s.source.GetGenres(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch genres")
		return []Genre{}
	}

	return fromTMDBGenres(raw)
}

func fromTMDBGenres(raw []tmdb.Genre) []Genre {
	genres := make([]Genre, 0, len(raw))
	for _, g := range raw {
		genres = append(genres, Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

// Popular returns the popular movies collection
func (s *Service) Popular(ctx context.Context) ([]Movie, error) {
	return s.list(ctx, OpPopular, func(ctx context.Context) ([]tmdb.Movie, error) {
		return s.source.GetPopular(ctx)
	}, func(e *zerolog.Event) {})
}

// TopRated returns the top rated movies collection
func (s *Service) TopRated(ctx context.Context) ([]Movie, error) {
	return s.list(ctx, OpTopRated, func(ctx context.Context) ([]tmdb.Movie, error) {
		return s.source.GetTopRated(ctx)
	}, func(e *zerolog.Event) {})
}

// ByGenre returns movies of one genre, most popular first
func (s *Service) ByGenre(ctx context.Context, genreID int) ([]Movie, error) {
	return s.list(ctx, OpByGenre, func(ctx context.Context) ([]tmdb.Movie, error) {
		return s.source.DiscoverByGenre(ctx, genreID)
	}, func(e *zerolog.Event) {
		e.Int("genre_id", genreID)
	})
}

// Search returns movies matching query. Empty queries are passed through unchanged.
func (s *Service) Search(ctx context.Context, query string) ([]Movie, error) {
	return s.list(ctx, OpSearch, func(ctx context.Context) ([]tmdb.Movie, error) {
		return s.source.SearchMovies(ctx, query)
	}, func(e *zerolog.Event) {
		e.Str("query", query)
	})
}

// Highlights fetches popular and top rated movies in parallel.
// If either listing fails the whole call fails and nothing is returned.
func (s *Service) Highlights(ctx context.Context) (*Highlights, error) {
	// Resolve genres once so both branches share the index instead of racing for it.
	s.GenreIndex(ctx)

	var h Highlights
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := s.Popular(gctx)
		if err != nil {
			return err
		}
		h.Popular = movies
		return nil
	})

	g.Go(func() error {
		movies, err := s.TopRated(gctx)
		if err != nil {
			return err
		}
		h.TopRated = movies
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Service) list(
	ctx context.Context,
	op string,
	fetch func(context.Context) ([]tmdb.Movie, error),
	fields func(*zerolog.Event),
) ([]Movie, error) {
	genres := s.GenreIndex(ctx)

	raw, err := fetch(ctx)
	if err != nil {
		event := s.logger.Error().Err(err).Str("op", op)
		fields(event)
		event.Msg("Failed to fetch movie listing")
		return nil, newListingError(op)
	}

	movies := s.mapper.MapAll(raw, genres)

	s.logger.Debug().
		Str("op", op).
		Int("count", len(movies)).
		Msg("Fetched movie listing")

	return movies, nil
}
