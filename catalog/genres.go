package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/s0up4200/cinebrowse/tmdb"
)

const genreFlightKey = "genres"

// GenreFetcher loads the provider's genre list
type GenreFetcher interface {
	GetGenres(ctx context.Context) ([]tmdb.Genre, error)
}

// GenreCache lazily builds the genre index and keeps it for the life of the process.
// Concurrent first callers share one request. Failures are logged and yield an empty
// index that is not stored, so the next call tries again.
type GenreCache struct {
	fetcher GenreFetcher
	logger  zerolog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	index GenreIndex
	built bool
}

// NewGenreCache creates an empty genre cache
func NewGenreCache(fetcher GenreFetcher, logger zerolog.Logger) *GenreCache {
	return &GenreCache{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Index returns the genre index, fetching it on first use. The returned map must not be modified.
func (c *GenreCache) Index(ctx context.Context) GenreIndex {
	if index, ok := c.cached(); ok {
		return index
	}

	// The shared fetch outlives any single caller's context.
	ch := c.group.DoChan(genreFlightKey, func() (any, error) {
		if index, ok := c.cached(); ok {
			return index, nil
		}

		genres, err := c.fetcher.GetGenres(context.WithoutCancel(ctx))
		if err != nil {
			c.logger.Error().Err(err).Msg("Failed to fetch genre list")
			return nil, err
		}

		index := NewGenreIndex(fromTMDBGenres(genres))

		c.mu.Lock()
		c.index = index
		c.built = true
		c.mu.Unlock()

		c.logger.Debug().Int("count", len(index)).Msg("Built genre index")
		return index, nil
	})

	select {
	case <-ctx.Done():
		c.logger.Warn().Err(ctx.Err()).Msg("Gave up waiting for genre list")
		return GenreIndex{}
	case res := <-ch:
		if res.Err != nil {
			return GenreIndex{}
		}
		return res.Val.(GenreIndex)
	}
}

// Built reports whether the index has been fetched successfully
func (c *GenreCache) Built() bool {
	_, ok := c.cached()
	return ok
}

func (c *GenreCache) cached() (GenreIndex, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index, c.built
}
