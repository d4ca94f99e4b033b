// Package catalog turns raw TMDB listings into display-ready movies.
//
// Listings resolve genre ids through a process-wide genre index that is fetched once on
// first use. The genre index and the plain genre list degrade to empty values when the
// provider is unavailable; movie listings do not, and fail with a *ListingError whose
// message is safe to show to the user.
package catalog
