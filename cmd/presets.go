package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinebrowse/catalog"
)

var presetTitles int

// presetsCmd runs filter presets against the current highlights
var presetsCmd = &cobra.Command{
	Use:   "presets [name...]",
	Short: "Show how many popular and top rated movies each filter preset matches",
	Long: `Fetch popular and top rated movies and evaluate the configured filter presets
against them. With no arguments every preset is evaluated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(filterManager.ListFilters()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No filter presets configured")
			return nil
		}

		h, err := catalogSvc.Highlights(cmd.Context())
		if err != nil {
			return err
		}

		return runPresets(cmd.Context(), cmd.OutOrStdout(), mergeHighlights(h), args)
	},
}

func init() {
	presetsCmd.Flags().IntVar(&presetTitles, "titles", 3, "titles to show per preset (0 shows none)")
	rootCmd.AddCommand(presetsCmd)
}

// mergeHighlights joins both listings, dropping movies present in both
func mergeHighlights(h *catalog.Highlights) []catalog.Movie {
	seen := make(map[int64]struct{}, len(h.Popular)+len(h.TopRated))
	movies := make([]catalog.Movie, 0, len(h.Popular)+len(h.TopRated))
	for _, list := range [][]catalog.Movie{h.Popular, h.TopRated} {
		for _, m := range list {
			if _, ok := seen[m.ID]; ok {
				continue
			}
			seen[m.ID] = struct{}{}
			movies = append(movies, m)
		}
	}
	return movies
}

func runPresets(ctx context.Context, out io.Writer, movies []catalog.Movie, names []string) error {
	var (
		matches map[string][]catalog.Movie
		err     error
	)
	if len(names) == 0 {
		names = filterManager.ListFilters()
		matches, err = filterManager.EvaluateAll(ctx, movies)
	} else {
		matches, err = filterManager.EvaluateSelected(ctx, names, movies)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nPresets against %d movies:\n\n", len(movies))
	for i, name := range names {
		prefix, indent := "├", "│   "
		if i == len(names)-1 {
			prefix, indent = "╰", "    "
		}

		matched := matches[name]
		fmt.Fprintf(out, "%s── %s: %d match", prefix, name, len(matched))
		if len(matched) != 1 {
			fmt.Fprint(out, "es")
		}
		fmt.Fprintln(out)

		for j, m := range matched {
			if j == presetTitles {
				fmt.Fprintf(out, "%s... and %d more\n", indent, len(matched)-presetTitles)
				break
			}
			fmt.Fprintf(out, "%s%s\n", indent, m.Title)
		}
	}
	fmt.Fprintln(out)
	return nil
}
