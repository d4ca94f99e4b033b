package library

import "errors"

var (
	// ErrNoAuthor is returned for reviews without an author name
	ErrNoAuthor = errors.New("review author is required")
	// ErrInvalidRating is returned for ratings outside 1 to 10
	ErrInvalidRating = errors.New("rating must be between 1 and 10")
	// ErrEmptyComment is returned for reviews without a comment
	ErrEmptyComment = errors.New("review comment is required")
)
