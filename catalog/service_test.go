package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinebrowse/tmdb"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource is an in-memory Source with per-call hooks
type fakeSource struct {
	genres    []tmdb.Genre
	genresErr error
	genreGate chan struct{}
	genreHits atomic.Int32

	popular     []tmdb.Movie
	popularErr  error
	topRated    []tmdb.Movie
	topRatedErr error
	byGenre     map[int][]tmdb.Movie
	byGenreErr  error
	search      map[string][]tmdb.Movie
	searchErr   error

	mu           sync.Mutex
	genreQueries []int
	searches     []string
}

func (f *fakeSource) GetGenres(ctx context.Context) ([]tmdb.Genre, error) {
	f.genreHits.Add(1)
	if f.genreGate != nil {
		<-f.genreGate
	}
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres, nil
}

func (f *fakeSource) GetPopular(ctx context.Context) ([]tmdb.Movie, error) {
	return f.popular, f.popularErr
}

func (f *fakeSource) GetTopRated(ctx context.Context) ([]tmdb.Movie, error) {
	return f.topRated, f.topRatedErr
}

func (f *fakeSource) DiscoverByGenre(ctx context.Context, genreID int) ([]tmdb.Movie, error) {
	f.mu.Lock()
	f.genreQueries = append(f.genreQueries, genreID)
	f.mu.Unlock()
	return f.byGenre[genreID], f.byGenreErr
}

func (f *fakeSource) SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	return f.search[query], f.searchErr
}

func standardGenres() []tmdb.Genre {
	return []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}}
}

func TestServiceListings(t *testing.T) {
	src := &fakeSource{
		genres:   standardGenres(),
		popular:  []tmdb.Movie{{ID: 1, Title: "Pop", GenreIDs: []int{28, 999}, ReleaseDate: "2023-07-19"}},
		topRated: []tmdb.Movie{{ID: 2, Title: "Top", GenreIDs: []int{12}}},
		byGenre:  map[int][]tmdb.Movie{28: {{ID: 3, Title: "Act", GenreIDs: []int{28}}}},
		search:   map[string][]tmdb.Movie{"matrix": {{ID: 4, Title: "The Matrix", PosterPath: "/m.jpg"}}},
	}
	svc := NewService(src, zerolog.Nop())
	ctx := context.Background()

	popular, err := svc.Popular(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, []string{"Action"}, popular[0].Genres)
	assert.Equal(t, 2023, popular[0].ReleaseYear)

	top, err := svc.TopRated(ctx)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, []string{"Adventure"}, top[0].Genres)

	byGenre, err := svc.ByGenre(ctx, 28)
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Act", byGenre[0].Title)
	assert.Equal(t, []int{28}, src.genreQueries)

	found, err := svc.Search(ctx, "matrix")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/m.jpg", found[0].PosterURL)

	// The genre list is fetched once and reused by every listing.
	assert.Equal(t, int32(1), src.genreHits.Load())
}

func TestServiceSearchPassesQueryThrough(t *testing.T) {
	src := &fakeSource{genres: standardGenres()}
	svc := NewService(src, zerolog.Nop())

	movies, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	assert.Equal(t, []string{""}, src.searches)
}

func TestServiceGenreFailureDegrades(t *testing.T) {
	src := &fakeSource{
		genresErr: errUpstream,
		popular:   []tmdb.Movie{{ID: 1, Title: "Pop", GenreIDs: []int{28, 12}}},
	}
	svc := NewService(src, zerolog.Nop())

	movies, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, []string{}, movies[0].Genres)
}

func TestServiceListingFailures(t *testing.T) {
	tests := []struct {
		name    string
		src     *fakeSource
		call    func(ctx context.Context, s *Service) ([]Movie, error)
		wantMsg string
		wantOp  string
	}{
		{
			name:    "popular",
			src:     &fakeSource{popularErr: errUpstream},
			call:    func(ctx context.Context, s *Service) ([]Movie, error) { return s.Popular(ctx) },
			wantMsg: "Gagal mengambil film populer.",
			wantOp:  OpPopular,
		},
		{
			name:    "top rated",
			src:     &fakeSource{topRatedErr: errUpstream},
			call:    func(ctx context.Context, s *Service) ([]Movie, error) { return s.TopRated(ctx) },
			wantMsg: "Gagal mengambil film rating tertinggi.",
			wantOp:  OpTopRated,
		},
		{
			name:    "by genre",
			src:     &fakeSource{byGenreErr: errUpstream},
			call:    func(ctx context.Context, s *Service) ([]Movie, error) { return s.ByGenre(ctx, 35) },
			wantMsg: "Gagal mengambil film berdasarkan genre.",
			wantOp:  OpByGenre,
		},
		{
			name:    "popular without results",
			src:     &fakeSource{popularErr: fmt.Errorf("failed to parse response: %w", tmdb.ErrMissingResults)},
			call:    func(ctx context.Context, s *Service) ([]Movie, error) { return s.Popular(ctx) },
			wantMsg: "Gagal mengambil film populer.",
			wantOp:  OpPopular,
		},
		{
			name:    "search",
			src:     &fakeSource{searchErr: errUpstream},
			call:    func(ctx context.Context, s *Service) ([]Movie, error) { return s.Search(ctx, "x") },
			wantMsg: "Gagal melakukan pencarian film.",
			wantOp:  OpSearch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.src.genres = standardGenres()
			svc := NewService(tt.src, zerolog.Nop())

			movies, err := tt.call(context.Background(), svc)
			require.Error(t, err)
			assert.Nil(t, movies)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.ErrorIs(t, err, ErrListingFailed)
			assert.NotErrorIs(t, err, errUpstream)

			var listingErr *ListingError
			require.ErrorAs(t, err, &listingErr)
			assert.Equal(t, tt.wantOp, listingErr.Op)
		})
	}
}

func TestServiceGenres(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewService(&fakeSource{genres: standardGenres()}, zerolog.Nop())
		assert.Equal(t, []Genre{{ID: 28, Name: "Action"}, {ID: 12, Name: "Adventure"}},
			svc.Genres(context.Background()))
	})

	t.Run("failure returns empty list", func(t *testing.T) {
		svc := NewService(&fakeSource{genresErr: errUpstream}, zerolog.Nop())
		genres := svc.Genres(context.Background())
		assert.NotNil(t, genres)
		assert.Empty(t, genres)
	})

	t.Run("always issues a request", func(t *testing.T) {
		src := &fakeSource{genres: standardGenres()}
		svc := NewService(src, zerolog.Nop())
		svc.Genres(context.Background())
		svc.Genres(context.Background())
		assert.Equal(t, int32(2), src.genreHits.Load())
	})
}

func TestServiceHighlights(t *testing.T) {
	t.Run("both succeed", func(t *testing.T) {
		src := &fakeSource{
			genres:   standardGenres(),
			popular:  []tmdb.Movie{{ID: 1, Title: "Pop"}},
			topRated: []tmdb.Movie{{ID: 2, Title: "Top"}},
		}
		svc := NewService(src, zerolog.Nop())

		h, err := svc.Highlights(context.Background())
		require.NoError(t, err)
		require.NotNil(t, h)
		require.Len(t, h.Popular, 1)
		require.Len(t, h.TopRated, 1)
		assert.Equal(t, "Pop", h.Popular[0].Title)
		assert.Equal(t, "Top", h.TopRated[0].Title)
	})

	t.Run("top rated failure fails the whole call", func(t *testing.T) {
		src := &fakeSource{
			genres:      standardGenres(),
			popular:     []tmdb.Movie{{ID: 1, Title: "Pop"}},
			topRatedErr: errUpstream,
		}
		svc := NewService(src, zerolog.Nop())

		h, err := svc.Highlights(context.Background())
		require.Error(t, err)
		assert.Nil(t, h)
		assert.Equal(t, MsgTopRatedFailed, err.Error())
	})
}

func TestServiceWithMapper(t *testing.T) {
	src := &fakeSource{popular: []tmdb.Movie{{ID: 1, PosterPath: "/p.jpg"}, {ID: 2}}}
	svc := NewService(src, zerolog.Nop(), WithMapper(Mapper{ImageBaseURL: "https://img/w342"}))

	movies, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "https://img/w342/p.jpg", movies[0].PosterURL)
	assert.Equal(t, DefaultPlaceholderURL, movies[1].PosterURL)
}

func TestGenreCacheSingleFlight(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{genres: standardGenres(), genreGate: gate}
	cache := NewGenreCache(src, zerolog.Nop())

	const callers = 10
	results := make([]GenreIndex, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = cache.Index(context.Background())
		}()
	}

	// Let the callers pile up on the in-flight request before releasing it.
	require.Eventually(t, func() bool { return src.genreHits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), src.genreHits.Load())
	for _, idx := range results {
		assert.Equal(t, GenreIndex{28: "Action", 12: "Adventure"}, idx)
	}
	assert.True(t, cache.Built())
}

func TestGenreCacheCachesEmptySuccess(t *testing.T) {
	src := &fakeSource{genres: []tmdb.Genre{}}
	cache := NewGenreCache(src, zerolog.Nop())

	assert.Empty(t, cache.Index(context.Background()))
	assert.Empty(t, cache.Index(context.Background()))
	assert.Equal(t, int32(1), src.genreHits.Load())
	assert.True(t, cache.Built())
}

func TestGenreCacheRetriesAfterFailure(t *testing.T) {
	src := &fakeSource{genresErr: errUpstream}
	cache := NewGenreCache(src, zerolog.Nop())

	idx := cache.Index(context.Background())
	assert.NotNil(t, idx)
	assert.Empty(t, idx)
	assert.False(t, cache.Built())

	src.genresErr = nil
	src.genres = standardGenres()

	assert.Equal(t, GenreIndex{28: "Action", 12: "Adventure"}, cache.Index(context.Background()))
	assert.Equal(t, int32(2), src.genreHits.Load())
	assert.True(t, cache.Built())
}

func TestGenreCacheCancelledCallerGetsEmptyIndex(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{genres: standardGenres(), genreGate: gate}
	cache := NewGenreCache(src, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan GenreIndex, 1)
	go func() { done <- cache.Index(ctx) }()

	require.Eventually(t, func() bool { return src.genreHits.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case idx := <-done:
		assert.Empty(t, idx)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	// The shared fetch still completes and populates the cache.
	close(gate)
	require.Eventually(t, cache.Built, time.Second, 5*time.Millisecond)
	assert.Equal(t, GenreIndex{28: "Action", 12: "Adventure"}, cache.Index(context.Background()))
	assert.Equal(t, int32(1), src.genreHits.Load())
}
