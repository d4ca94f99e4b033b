package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid tmdb configuration")
	// ErrUnauthorized indicates the bearer token was rejected
	ErrUnauthorized = errors.New("unauthorized: invalid bearer token")
	// ErrMissingResults indicates a listing response without a results array
	ErrMissingResults = errors.New("missing results")
	// ErrMissingGenres indicates a genre response without a genres array
	ErrMissingGenres = errors.New("missing genres")
)

// APIError represents a non-200 response from TMDB
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tmdb API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("tmdb API error: status %d: %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match rejected tokens
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.IsUnauthorized()
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
