// Package tmdb provides a client for reading movie metadata from The Movie Database API.
//
// The client covers the small read-only surface cinebrowse needs: the genre list and the
// popular, top rated, discover-by-genre and search movie listings. It returns the provider's
// own record shapes; converting them into display-ready movies is the job of the catalog
// package.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := tmdb.NewClient(
//		"your-bearer-token",
//		logger,
//		tmdb.WithTimeout(15*time.Second),
//		tmdb.WithLanguage("id-ID"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	movies, err := client.GetPopular(ctx)
//
// # Authentication
//
// Every request carries the bearer token in the Authorization header. The token is fixed at
// construction time; a client never refreshes or swaps it.
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrInvalidConfig: missing or placeholder token, empty base URL
//   - ErrUnauthorized: the provider rejected the token
//   - APIError: any non-200 response, with the provider's status message
//
//	var apiErr *tmdb.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package tmdb
