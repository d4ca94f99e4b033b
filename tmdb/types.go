package tmdb

// Movie is a movie record as returned by the list endpoints
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	PosterPath  string  `json:"poster_path"`
	Overview    string  `json:"overview"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
}

// Genre represents a TMDB movie genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MoviesResponse represents a paginated movie list response
type MoviesResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// HasMorePages checks if there are more pages after this one
func (r *MoviesResponse) HasMorePages() bool {
	return r.Page < r.TotalPages
}

// GenresResponse represents the genre list response
type GenresResponse struct {
	Genres []Genre `json:"genres"`
}

// statusResponse is the body TMDB sends with errors and from /authentication
type statusResponse struct {
	Success       bool   `json:"success"`
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
