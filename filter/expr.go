package filter

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/cinebrowse/catalog"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	extra      map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[string, CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.customFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		customFuncs: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	customFuncs map[string]any
	cache       *lruCache[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// Type-check against the environment of an empty movie
	env := createRuntimeEnvironment(catalog.Movie{Genres: []string{}}, c.customFuncs)
	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		extra:      c.customFuncs,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate reports whether movie matches. Runtime errors count as no match.
func (f *exprFilter) Evaluate(movie catalog.Movie) bool {
	ok, err := f.Match(movie)
	return err == nil && ok
}

// Match runs the filter against movie
func (f *exprFilter) Match(movie catalog.Movie) (bool, error) {
	result, err := expr.Run(f.program, createRuntimeEnvironment(movie, f.extra))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MovieTitle: movie.Title,
			Err:        err,
		}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the movie-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// Date helpers
	env["currentYear"] = func() int {
		return time.Now().Year()
	}
	env["yearsAgo"] = func(years int) int {
		return time.Now().Year() - years
	}
	// String helpers
	env["contains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createRuntimeEnvironment creates the evaluation environment for one movie
func createRuntimeEnvironment(movie catalog.Movie, extra map[string]any) map[string]any {
	env := make(map[string]any, 24+len(extra))

	addHelperFunctions(env)
	maps.Copy(env, extra)

	env["Movie"] = movie

	env["hasGenre"] = createHasGenreFunc(movie.Genres)
	env["hasAnyGenre"] = createHasAnyGenreFunc(movie.Genres)

	env["ID"] = movie.ID
	env["Title"] = movie.Title
	env["Year"] = movie.ReleaseYear
	env["Rating"] = movie.Rating
	env["Genres"] = movie.Genres
	env["Description"] = movie.Description
	env["PosterURL"] = movie.PosterURL
	env["HasPoster"] = movie.PosterURL != "" && movie.PosterURL != catalog.DefaultPlaceholderURL

	return env
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func createHasGenreFunc(genres []string) func(string) bool {
	lowerGenres := lowerAll(genres)
	return func(genre string) bool {
		return slices.Contains(lowerGenres, strings.ToLower(genre))
	}
}

func createHasAnyGenreFunc(genres []string) func(...string) bool {
	lowerGenres := lowerAll(genres)
	return func(candidates ...string) bool {
		for _, c := range candidates {
			if slices.Contains(lowerGenres, strings.ToLower(c)) {
				return true
			}
		}
		return false
	}
}
