// Package filter selects movies with expr-lang expressions.
//
// Expressions see the movie's fields as variables (Title, Year, Rating, Genres, ...)
// along with helpers such as hasGenre("Drama") and yearsAgo(5):
//
//	Rating >= 7.5 and hasAnyGenre("Action", "Thriller") and Year >= yearsAgo(10)
package filter

import (
	"strings"

	"github.com/s0up4200/cinebrowse/catalog"
)

var defaultCompiler = NewExprCompiler(WithCache(64))

// ParseAndCreateFilter compiles expression into a predicate. An empty expression matches everything.
func ParseAndCreateFilter(expression string) (func(catalog.Movie) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(catalog.Movie) bool { return true }, nil
	}

	compiled, err := defaultCompiler.Compile(expression)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate, nil
}

// Apply returns the movies matching predicate, in order
func Apply(movies []catalog.Movie, predicate func(catalog.Movie) bool) []catalog.Movie {
	out := make([]catalog.Movie, 0, len(movies))
	for _, m := range movies {
		if predicate(m) {
			out = append(out, m)
		}
	}
	return out
}
