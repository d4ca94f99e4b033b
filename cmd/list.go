package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/s0up4200/cinebrowse/catalog"
)

var (
	// Listing flags
	filterExpr  string
	preset      string
	limit       int
	jsonOutput  bool
	showDetails bool
)

func addListingFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most N movies (0 uses display.limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print movies as JSON")
	cmd.Flags().BoolVar(&showDetails, "details", false, "show descriptions and poster URLs")
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := catalogSvc.Popular(cmd.Context())
		if err != nil {
			return err
		}
		return renderMovies(cmd, "Popular", movies)
	},
}

var topRatedCmd = &cobra.Command{
	Use:   "top-rated",
	Short: "List top rated movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		movies, err := catalogSvc.TopRated(cmd.Context())
		if err != nil {
			return err
		}
		return renderMovies(cmd, "Top Rated", movies)
	},
}

var genreCmd = &cobra.Command{
	Use:   "genre <id>",
	Short: "List the most popular movies of a genre",
	Long:  `List movies of one genre, most popular first. Run "cinebrowse genres" to see genre ids.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		genreID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid genre id '%s': must be a number", args[0])
		}

		movies, err := catalogSvc.ByGenre(cmd.Context(), genreID)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("Genre %d", genreID)
		if name, ok := catalogSvc.GenreIndex(cmd.Context())[genreID]; ok {
			title = name
		}
		return renderMovies(cmd, title, movies)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search movies by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		movies, err := catalogSvc.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		return renderMovies(cmd, fmt.Sprintf("Results for %q", query), movies)
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List movie genres and their ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		genres := catalogSvc.Genres(cmd.Context())
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), genres)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGenres(genres))
		return nil
	},
}

var highlightsCmd = &cobra.Command{
	Use:   "highlights",
	Short: "Show popular and top rated movies together",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := catalogSvc.Highlights(cmd.Context())
		if err != nil {
			return err
		}

		h.Popular, err = applyFilter(cmd.Context(), h.Popular)
		if err != nil {
			return err
		}
		h.TopRated, err = applyFilter(cmd.Context(), h.TopRated)
		if err != nil {
			return err
		}

		opts := formatOptions()
		if jsonOutput {
			h.Popular = truncateMovies(h.Popular, opts.Limit)
			h.TopRated = truncateMovies(h.TopRated, opts.Limit)
			return writeJSON(cmd.OutOrStdout(), h)
		}
		fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHighlights(h, opts))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{popularCmd, topRatedCmd, genreCmd, searchCmd, highlightsCmd} {
		addListingFlags(c)
		rootCmd.AddCommand(c)
	}

	genresCmd.Flags().BoolVar(&jsonOutput, "json", false, "print genres as JSON")
	rootCmd.AddCommand(genresCmd)
}

func renderMovies(cmd *cobra.Command, title string, movies []catalog.Movie) error {
	movies, err := applyFilter(cmd.Context(), movies)
	if err != nil {
		return err
	}

	opts := formatOptions()
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), truncateMovies(movies, opts.Limit))
	}

	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMovieList(title, movies, opts))
	return nil
}

// applyFilter narrows movies with the selected filter, if any
func applyFilter(ctx context.Context, movies []catalog.Movie) ([]catalog.Movie, error) {
	if filterExpr == "" && preset != "" {
		if _, ok := filterManager.GetFilter(preset); !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		return filterManager.EvaluateFilter(ctx, preset, movies)
	}

	expr := getFilterExpression()
	if expr == "" {
		return movies, nil
	}

	compiled, err := filterManager.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	logger.Debug().Str("filter", expr).Int("movies", len(movies)).Msg("Applying filter")
	return filterManager.Evaluate(ctx, compiled, movies)
}

// getFilterExpression picks the ad-hoc filter over the configured default
func getFilterExpression() string {
	if filterExpr != "" {
		return filterExpr
	}
	return cfg.Filter.DefaultExpression
}

func formatOptions() catalog.FormatOptions {
	opts := catalog.FormatOptions{
		ShowDetails: cfg.Display.ShowDetails || showDetails,
		Limit:       cfg.Display.Limit,
	}
	if limit > 0 {
		opts.Limit = limit
	}
	return opts
}

func truncateMovies(movies []catalog.Movie, n int) []catalog.Movie {
	if n > 0 && len(movies) > n {
		return movies[:n]
	}
	return movies
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
