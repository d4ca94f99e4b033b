package catalog

import (
	"time"

	"github.com/s0up4200/cinebrowse/tmdb"
)

const (
	// DefaultImageBaseURL is prefixed to relative poster paths
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	// DefaultPlaceholderURL is used for movies without a poster
	DefaultPlaceholderURL = "https://via.placeholder.com/500x750.png?text=No+Image"

	// UnknownGenre is the name given to ids missing from the index before they are dropped
	UnknownGenre = "Unknown"
)

var releaseDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	time.RFC3339,
}

// Mapper converts provider records into display-ready movies
type Mapper struct {
	ImageBaseURL   string
	PlaceholderURL string
}

// DefaultMapper uses the TMDB w500 image size and the stock placeholder
var DefaultMapper = Mapper{
	ImageBaseURL:   DefaultImageBaseURL,
	PlaceholderURL: DefaultPlaceholderURL,
}

// MapMovie maps a provider record with the default mapper
func MapMovie(m tmdb.Movie, genres GenreIndex) Movie {
	return DefaultMapper.Map(m, genres)
}

// Map converts m using genres to resolve genre names. It performs no I/O.
func (mp Mapper) Map(m tmdb.Movie, genres GenreIndex) Movie {
	return Movie{
		ID:               m.ID,
		Title:            m.Title,
		PosterURL:        mp.PosterURL(m.PosterPath),
		Description:      m.Overview,
		Genres:           GenreNames(m.GenreIDs, genres),
		ReleaseYear:      ReleaseYear(m.ReleaseDate),
		Rating:           m.VoteAverage,
		StreamingSources: []string{},
	}
}

// MapAll maps every record, preserving order
func (mp Mapper) MapAll(movies []tmdb.Movie, genres GenreIndex) []Movie {
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		out = append(out, mp.Map(m, genres))
	}
	return out
}

// PosterURL returns the absolute poster URL for path, or the placeholder when path is empty
func (mp Mapper) PosterURL(path string) string {
	if path == "" {
		return mp.PlaceholderURL
	}
	return mp.ImageBaseURL + path
}

// GenreNames resolves ids against genres, keeping order and dropping unknown ids
func GenreNames(ids []int, genres GenreIndex) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := genres[id]
		if !ok {
			name = UnknownGenre
		}
		if name == UnknownGenre {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ReleaseYear returns the year of a release date, or 0 when it is empty or malformed
func ReleaseYear(date string) int {
	if date == "" {
		return 0
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year()
		}
	}
	return 0
}
