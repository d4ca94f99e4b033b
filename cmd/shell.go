package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cinebrowse/catalog"
	"github.com/s0up4200/cinebrowse/filter"
	"github.com/s0up4200/cinebrowse/library"
)

var shellAuthor string

// movieCatalog is the part of catalog.Service the shell drives
type movieCatalog interface {
	Popular(ctx context.Context) ([]catalog.Movie, error)
	TopRated(ctx context.Context) ([]catalog.Movie, error)
	ByGenre(ctx context.Context, genreID int) ([]catalog.Movie, error)
	Search(ctx context.Context, query string) ([]catalog.Movie, error)
	Genres(ctx context.Context) []catalog.Genre
}

var _ movieCatalog = (*catalog.Service)(nil)

var errQuit = errors.New("quit")

const shellHelp = `Commands:
  popular                       list popular movies
  top                           list top rated movies
  genre <id>                    list movies of a genre
  genres                        list genre ids
  search <query>                search movies by title
  filter <expr>                 narrow the last listing with a filter expression
  show <n>                      show details and reviews of movie n
  add <n>                       add movie n of the last listing to the watchlist
  remove <n>                    remove entry n from the watchlist
  watchlist                     show the watchlist
  find <query>                  fuzzy search the watchlist
  author <name>                 set the name used for reviews
  review <n> <rating> <comment> review movie n of the last listing (rating 1-10)
  reviews [n]                   show all reviews, or reviews of movie n
  help                          show this help
  quit                          leave the shell`

// shellCmd represents the interactive shell
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Browse interactively with a session watchlist and reviews",
	Long: `Start an interactive session. The watchlist and reviews live in memory and
are discarded when the shell exits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession(catalogSvc, cmd.OutOrStdout())
		s.author = shellAuthor
		return s.run(cmd.Context(), os.Stdin)
	},
}

func init() {
	shellCmd.Flags().StringVar(&shellAuthor, "author", "", "name used for reviews")
	rootCmd.AddCommand(shellCmd)
}

// session is the state of one interactive shell
type session struct {
	catalog movieCatalog
	watch   *library.WatchList
	reviews *library.ReviewBook
	out     io.Writer
	author  string

	// last listing shown, addressed by 1-based position
	last []catalog.Movie
}

func newSession(c movieCatalog, out io.Writer) *session {
	return &session{
		catalog: c,
		watch:   library.NewWatchList(),
		reviews: library.NewReviewBook(),
		out:     out,
	}
}

func (s *session) run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, `cinebrowse shell. Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "cinebrowse> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(s.out)
			return nil
		}

		err := s.handle(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *session) handle(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	command, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch command {
	case "popular":
		return s.list(s.catalog.Popular(ctx))
	case "top", "top-rated":
		return s.list(s.catalog.TopRated(ctx))
	case "genre":
		if len(args) != 1 {
			return errors.New("usage: genre <id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid genre id '%s'", args[0])
		}
		return s.list(s.catalog.ByGenre(ctx, id))
	case "genres":
		fmt.Fprint(s.out, formatter.FormatGenres(s.catalog.Genres(ctx)))
		return nil
	case "search":
		if rest == "" {
			return errors.New("usage: search <query>")
		}
		return s.list(s.catalog.Search(ctx, rest))
	case "filter":
		return s.narrow(rest)
	case "show":
		return s.show(args)
	case "add":
		return s.add(args)
	case "remove":
		return s.remove(args)
	case "watchlist":
		s.printMovies("Watchlist", s.watch.Items())
		return nil
	case "find":
		s.printMovies("Watchlist matches", s.watch.Find(rest))
		return nil
	case "author":
		if rest == "" {
			return errors.New("usage: author <name>")
		}
		s.author = rest
		fmt.Fprintf(s.out, "Reviewing as %s\n", s.author)
		return nil
	case "review":
		return s.review(args)
	case "reviews":
		return s.showReviews(args)
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
		return nil
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command '%s' (try \"help\")", command)
	}
}

func (s *session) list(movies []catalog.Movie, err error) error {
	if err != nil {
		return err
	}
	s.last = movies
	s.printMovies("Movies", movies)
	return nil
}

func (s *session) printMovies(title string, movies []catalog.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(s.out, "No movies found")
		return
	}

	fmt.Fprintf(s.out, "\n%s (%d):\n", title, len(movies))
	for i, m := range movies {
		marker := " "
		if s.watch.Contains(m.ID) {
			marker = "*"
		}
		year := ""
		if m.ReleaseYear > 0 {
			year = fmt.Sprintf(" (%d)", m.ReleaseYear)
		}
		fmt.Fprintf(s.out, "%s%3d. %s%s  %.1f", marker, i+1, m.Title, year, m.Rating)
		if len(m.Genres) > 0 {
			fmt.Fprintf(s.out, "  [%s]", strings.Join(m.Genres, ", "))
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out)
}

// pick resolves a 1-based position in movies
func pick(movies []catalog.Movie, arg string) (catalog.Movie, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return catalog.Movie{}, fmt.Errorf("invalid number '%s'", arg)
	}
	if n < 1 || n > len(movies) {
		if len(movies) == 0 {
			return catalog.Movie{}, errors.New("nothing listed yet")
		}
		return catalog.Movie{}, fmt.Errorf("number must be between 1 and %d", len(movies))
	}
	return movies[n-1], nil
}

func (s *session) add(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: add <n>")
	}
	m, err := pick(s.last, args[0])
	if err != nil {
		return err
	}
	if !s.watch.Add(m) {
		fmt.Fprintf(s.out, "%s is already on your watchlist\n", m.Title)
		return nil
	}
	fmt.Fprintf(s.out, "Added %s to your watchlist\n", m.Title)
	return nil
}

func (s *session) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <n>")
	}
	m, err := pick(s.watch.Items(), args[0])
	if err != nil {
		return err
	}
	s.watch.Remove(m.ID)
	fmt.Fprintf(s.out, "Removed %s from your watchlist\n", m.Title)
	return nil
}

func (s *session) review(args []string) error {
	if len(args) < 3 {
		return errors.New("usage: review <n> <rating> <comment>")
	}
	m, err := pick(s.last, args[0])
	if err != nil {
		return err
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid rating '%s'", args[1])
	}

	r, err := s.reviews.Add(m, s.author, library.Draft{
		Rating:  rating,
		Comment: strings.Join(args[2:], " "),
	})
	if err != nil {
		if errors.Is(err, library.ErrNoAuthor) {
			return errors.New(`set your name first with "author <name>"`)
		}
		return err
	}

	logger.Debug().Str("review_id", r.ID).Int64("movie_id", m.ID).Msg("Review added")
	fmt.Fprintf(s.out, "Review of %s saved\n", m.Title)
	return nil
}

func (s *session) showReviews(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(s.out, library.FormatReviews(s.reviews.All()))
		return nil
	}
	m, err := pick(s.last, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(s.out, library.FormatReviews(s.reviews.ForMovie(m.ID)))
	return nil
}

// narrow filters the last listing in place. An empty expression keeps everything.
func (s *session) narrow(expression string) error {
	if len(s.last) == 0 {
		return errors.New("nothing listed yet")
	}
	predicate, err := filter.ParseAndCreateFilter(expression)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}
	s.last = filter.Apply(s.last, predicate)
	s.printMovies("Filtered", s.last)
	return nil
}

func (s *session) show(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: show <n>")
	}
	m, err := pick(s.last, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\n%s", m.Title)
	if m.ReleaseYear > 0 {
		fmt.Fprintf(s.out, " (%d)", m.ReleaseYear)
	}
	fmt.Fprintf(s.out, "\nRating: %.1f\n", m.Rating)
	if len(m.Genres) > 0 {
		fmt.Fprintf(s.out, "Genres: %s\n", strings.Join(m.Genres, ", "))
	}
	fmt.Fprintf(s.out, "Poster: %s\n", m.PosterURL)
	if m.Description != "" {
		fmt.Fprintf(s.out, "\n%s\n", m.Description)
	}

	if s.watch.Contains(m.ID) {
		fmt.Fprintln(s.out, "\n* On your watchlist")
	} else {
		fmt.Fprintln(s.out, "\n  Not on your watchlist")
	}
	fmt.Fprintln(s.out, library.FormatReviews(s.reviews.ForMovie(m.ID)))
	return nil
}
