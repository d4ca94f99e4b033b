// Package library holds the watchlist and reviews of one browsing session.
package library

import (
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/s0up4200/cinebrowse/catalog"
)

// WatchList is an ordered set of movies keyed by id. It is safe for concurrent use.
type WatchList struct {
	mu     sync.RWMutex
	movies []catalog.Movie
	index  map[int64]int
}

// NewWatchList creates an empty watchlist
func NewWatchList() *WatchList {
	return &WatchList{
		index: make(map[int64]int),
	}
}

// Add appends movie unless a movie with the same id is already listed
func (w *WatchList) Add(movie catalog.Movie) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.index[movie.ID]; ok {
		return false
	}
	w.index[movie.ID] = len(w.movies)
	w.movies = append(w.movies, movie)
	return true
}

// Remove drops the movie with id, reporting whether it was listed
func (w *WatchList) Remove(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	pos, ok := w.index[id]
	if !ok {
		return false
	}

	w.movies = append(w.movies[:pos], w.movies[pos+1:]...)
	delete(w.index, id)
	for i := pos; i < len(w.movies); i++ {
		w.index[w.movies[i].ID] = i
	}
	return true
}

// Contains reports whether a movie with id is listed
func (w *WatchList) Contains(id int64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.index[id]
	return ok
}

// Items returns a copy of the listed movies in the order they were added
func (w *WatchList) Items() []catalog.Movie {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]catalog.Movie, len(w.movies))
	copy(out, w.movies)
	return out
}

// Len returns the number of listed movies
func (w *WatchList) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.movies)
}

// Find returns listed movies whose title fuzzily matches query, best match first
func (w *WatchList) Find(query string) []catalog.Movie {
	items := w.Items()
	if query == "" {
		return items
	}

	matches := fuzzy.FindFrom(query, titleSource(items))
	out := make([]catalog.Movie, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}

type titleSource []catalog.Movie

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }
