package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinebrowse/tmdb"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to TMDB",
	Long:  `Verify the configured bearer token against TMDB and show how many genres are available.`,
	Args:  cobra.NoArgs,
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to TMDB at %s...\n", cfg.TMDB.BaseURL)

	if err := tmdbClient.TestConnection(cmd.Context()); err != nil {
		var apiErr *tmdb.APIError
		if errors.Is(err, tmdb.ErrUnauthorized) || (errors.As(err, &apiErr) && apiErr.IsUnauthorized()) {
			return fmt.Errorf("bearer token rejected: %w", err)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	fmt.Fprintln(out, "✓ Connection successful!")

	index := catalogSvc.GenreIndex(cmd.Context())
	fmt.Fprintf(out, "\nTMDB Statistics:\n")
	fmt.Fprintf(out, "- Genres: %d\n", len(index))
	if cfg.TMDB.Language != "" {
		fmt.Fprintf(out, "- Language: %s\n", cfg.TMDB.Language)
	}

	names := filterManager.ListFilters()
	if len(names) > 0 {
		fmt.Fprintf(out, "\nFilter presets:\n")
		for _, name := range names {
			fmt.Fprintf(out, "  • %s: %s\n", name, cfg.Filter.Presets[name].Description)
		}
	}

	return nil
}
