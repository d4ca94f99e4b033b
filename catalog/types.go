package catalog

// Movie is a display-ready movie record
type Movie struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	PosterURL        string   `json:"posterUrl"`
	Description      string   `json:"description"`
	Genres           []string `json:"genres"`
	ReleaseYear      int      `json:"releaseYear"`
	Rating           float64  `json:"rating"`
	StreamingSources []string `json:"streamingSources"`
}

// Genre is a genre id with its display name
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreIndex maps genre ids to display names
type GenreIndex map[int]string

// NewGenreIndex builds an index from a genre list. Later duplicates win.
func NewGenreIndex(genres []Genre) GenreIndex {
	index := make(GenreIndex, len(genres))
	for _, g := range genres {
		index[g.ID] = g.Name
	}
	return index
}

// Highlights is the combined popular and top rated listing
type Highlights struct {
	Popular  []Movie `json:"popular"`
	TopRated []Movie `json:"topRated"`
}
