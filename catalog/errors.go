package catalog

import (
	"errors"
)

// ErrListingFailed matches every *ListingError via errors.Is
var ErrListingFailed = errors.New("movie listing failed")

// Listing operations, used for log fields and error messages
const (
	OpPopular  = "popular"
	OpTopRated = "top_rated"
	OpByGenre  = "by_genre"
	OpSearch   = "search"
)

// User-facing messages for failed listings
const (
	MsgPopularFailed  = "Gagal mengambil film populer."
	MsgTopRatedFailed = "Gagal mengambil film rating tertinggi."
	MsgByGenreFailed  = "Gagal mengambil film berdasarkan genre."
	MsgSearchFailed   = "Gagal melakukan pencarian film."
)

var listingMessages = map[string]string{
	OpPopular:  MsgPopularFailed,
	OpTopRated: MsgTopRatedFailed,
	OpByGenre:  MsgByGenreFailed,
	OpSearch:   MsgSearchFailed,
}

// ListingError is returned when a movie listing cannot be fetched.
// The underlying cause is logged, not carried.
type ListingError struct {
	Op      string
	Message string
}

func newListingError(op string) *ListingError {
	return &ListingError{Op: op, Message: listingMessages[op]}
}

// Error returns the user-facing message
func (e *ListingError) Error() string {
	return e.Message
}

// Is reports whether target is ErrListingFailed
func (e *ListingError) Is(target error) bool {
	return target == ErrListingFailed
}
