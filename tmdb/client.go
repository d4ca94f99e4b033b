package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// PlaceholderToken is the value shipped in sample configs
	PlaceholderToken = "YOUR_TMDB_BEARER_TOKEN_HERE"

	defaultTimeout = 30 * time.Second
)

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	token      string
	language   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client authenticated with a bearer token
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: bearer token is required", ErrInvalidConfig)
	}
	if token == PlaceholderToken {
		return nil, fmt.Errorf("%w: bearer token is still the placeholder value", ErrInvalidConfig)
	}

	client := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	return client, nil
}

// doRequest performs an authenticated GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.language != "" {
		if params == nil {
			params = url.Values{}
		}
		params.Set("language", c.language)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("endpoint", endpoint).
		Msg("Making TMDB API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		var status statusResponse
		if json.Unmarshal(body, &status) == nil {
			apiErr.Message = status.StatusMessage
		}
		return nil, apiErr
	}

	return body, nil
}

// getMovies fetches one page of a movie list endpoint
func (c *Client) getMovies(ctx context.Context, endpoint string, params url.Values) ([]Movie, error) {
	body, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var response MoviesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Results == nil {
		return nil, fmt.Errorf("failed to parse response: %w", ErrMissingResults)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("count", len(response.Results)).
		Int("total", response.TotalResults).
		Bool("more_pages", response.HasMorePages()).
		Msg("Retrieved movies from TMDB")

	return response.Results, nil
}

// TestConnection verifies the bearer token against /authentication
func (c *Client) TestConnection(ctx context.Context) error {
	body, err := c.doRequest(ctx, "/authentication", nil)
	if err != nil {
		return err
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if !status.Success {
		return ErrUnauthorized
	}

	c.logger.Debug().Msg("Successfully connected to TMDB")
	return nil
}

// GetGenres retrieves the movie genre list
func (c *Client) GetGenres(ctx context.Context) ([]Genre, error) {
	body, err := c.doRequest(ctx, "/genre/movie/list", nil)
	if err != nil {
		return nil, err
	}

	var response GenresResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// An explicit empty list is a valid answer, a missing key is not.
	if response.Genres == nil {
		return nil, fmt.Errorf("failed to parse response: %w", ErrMissingGenres)
	}
	return response.Genres, nil
}

// GetPopular retrieves the popular movies collection
func (c *Client) GetPopular(ctx context.Context) ([]Movie, error) {
	return c.getMovies(ctx, "/movie/popular", nil)
}

// GetTopRated retrieves the top rated movies collection
func (c *Client) GetTopRated(ctx context.Context) ([]Movie, error) {
	return c.getMovies(ctx, "/movie/top_rated", nil)
}

// DiscoverByGenre retrieves movies tagged with genreID, most popular first
func (c *Client) DiscoverByGenre(ctx context.Context, genreID int) ([]Movie, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	return c.getMovies(ctx, "/discover/movie", params)
}

// SearchMovies retrieves movies matching query. The query is sent as-is.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.getMovies(ctx, "/search/movie", params)
}
