package library

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/s0up4200/cinebrowse/catalog"
)

// Review ratings are whole numbers in the inclusive range [MinRating, MaxRating]
const (
	MinRating = 1
	MaxRating = 10
)

// Review is a user review of a movie
type Review struct {
	ID             string    `json:"id"`
	MovieID        int64     `json:"movieId"`
	MovieTitle     string    `json:"movieTitle"`
	MoviePosterURL string    `json:"moviePosterUrl"`
	Author         string    `json:"author"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Draft is the user-supplied part of a review
type Draft struct {
	Rating  int
	Comment string
}

// Validate checks the rating range and that a comment is present
func (d Draft) Validate() error {
	if d.Rating < MinRating || d.Rating > MaxRating {
		return ErrInvalidRating
	}
	if strings.TrimSpace(d.Comment) == "" {
		return ErrEmptyComment
	}
	return nil
}

// ReviewBook keeps reviews newest first. It is safe for concurrent use.
type ReviewBook struct {
	mu      sync.RWMutex
	reviews []Review
	now     func() time.Time
}

// NewReviewBook creates an empty review book
func NewReviewBook() *ReviewBook {
	return &ReviewBook{now: time.Now}
}

// Add records a review of movie by author
func (b *ReviewBook) Add(movie catalog.Movie, author string, draft Draft) (Review, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return Review{}, ErrNoAuthor
	}
	if err := draft.Validate(); err != nil {
		return Review{}, err
	}

	review := Review{
		ID:             uuid.NewString(),
		MovieID:        movie.ID,
		MovieTitle:     movie.Title,
		MoviePosterURL: movie.PosterURL,
		Author:         author,
		Rating:         draft.Rating,
		Comment:        strings.TrimSpace(draft.Comment),
		CreatedAt:      b.now(),
	}

	b.mu.Lock()
	b.reviews = append([]Review{review}, b.reviews...)
	b.mu.Unlock()

	return review, nil
}

// All returns every review, newest first
func (b *ReviewBook) All() []Review {
	return b.filter(func(Review) bool { return true })
}

// ForMovie returns reviews of one movie, newest first
func (b *ReviewBook) ForMovie(movieID int64) []Review {
	return b.filter(func(r Review) bool { return r.MovieID == movieID })
}

// ByAuthor returns reviews written by author, newest first. Matching ignores case.
func (b *ReviewBook) ByAuthor(author string) []Review {
	author = strings.TrimSpace(author)
	return b.filter(func(r Review) bool { return strings.EqualFold(r.Author, author) })
}

// Len returns the number of reviews
func (b *ReviewBook) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.reviews)
}

func (b *ReviewBook) filter(keep func(Review) bool) []Review {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Review, 0, len(b.reviews))
	for _, r := range b.reviews {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
