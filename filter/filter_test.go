package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cinebrowse/catalog"
)

func testMovie() catalog.Movie {
	return catalog.Movie{
		ID:               603,
		Title:            "The Matrix",
		PosterURL:        "https://image.tmdb.org/t/p/w500/matrix.jpg",
		Description:      "A hacker discovers reality is a simulation.",
		Genres:           []string{"Action", "Science Fiction"},
		ReleaseYear:      1999,
		Rating:           8.2,
		StreamingSources: []string{},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{name: "valid expression", expression: `hasGenre("action")`},
		{name: "empty expression", expression: "  ", wantErr: true, errContains: "empty expression"},
		{name: "invalid syntax", expression: `hasGenre("unclosed`, wantErr: true},
		{name: "non boolean result", expression: `Year + 1`, wantErr: true},
		{name: "unknown variable", expression: `Watched == true`, wantErr: true},
		{name: "complex expression", expression: `hasGenre("Action") and Year > 1990 and Rating >= 7.0`},
		{name: "struct access", expression: `Movie.ReleaseYear == Year`},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, filter)
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	movie := testMovie()

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{"genre match ignores case", `hasGenre("science fiction")`, true},
		{"genre miss", `hasGenre("Drama")`, false},
		{"any genre", `hasAnyGenre("Drama", "action")`, true},
		{"any genre miss", `hasAnyGenre("Drama", "Horror")`, false},
		{"genre membership", `"Action" in Genres`, true},
		{"rating threshold", `Rating >= 8`, true},
		{"rating too high", `Rating > 9`, false},
		{"year", `Year == 1999`, true},
		{"years ago", `Year < yearsAgo(5)`, true},
		{"current year", `currentYear() >= 2024`, true},
		{"title contains", `contains(Title, "matrix")`, true},
		{"title prefix", `startsWith(Title, "the ")`, true},
		{"title suffix", `endsWith(Title, "trix")`, true},
		{"lower", `lower(Title) == "the matrix"`, true},
		{"upper", `upper(Title) == "THE MATRIX"`, true},
		{"description", `contains(Description, "simulation")`, true},
		{"has poster", `HasPoster`, true},
		{"id", `ID == 603`, true},
		{"combined", `hasGenre("Action") and (Rating > 9 or Year < 2000)`, true},
		{"negation", `not hasGenre("Action")`, false},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Evaluate(movie))
		})
	}
}

func TestHasPosterPlaceholder(t *testing.T) {
	f, err := NewExprCompiler().Compile(`HasPoster`)
	require.NoError(t, err)

	m := testMovie()
	m.PosterURL = catalog.DefaultPlaceholderURL
	assert.False(t, f.Evaluate(m))
}

func TestRuntimeErrorDoesNotMatch(t *testing.T) {
	f, err := NewExprCompiler().Compile(`Genres[5] == "Drama"`)
	require.NoError(t, err)

	movie := testMovie()
	assert.False(t, f.Evaluate(movie))

	_, err = f.Match(movie)
	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, "The Matrix", evalErr.MovieTitle)
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isClassic": func(year int) bool { return year > 0 && year < 2000 },
	}))

	f, err := compiler.Compile(`isClassic(Year)`)
	require.NoError(t, err)
	assert.True(t, f.Evaluate(testMovie()))
}

func TestParseAndCreateFilter(t *testing.T) {
	matchAll, err := ParseAndCreateFilter("")
	require.NoError(t, err)
	assert.True(t, matchAll(catalog.Movie{}))

	pred, err := ParseAndCreateFilter(`Rating > 8`)
	require.NoError(t, err)
	assert.True(t, pred(testMovie()))

	_, err = ParseAndCreateFilter(`Rating >`)
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	movies := generateTestMovies(10)
	got := Apply(movies, func(m catalog.Movie) bool { return m.ID%2 == 0 })
	require.Len(t, got, 5)
	assert.Equal(t, int64(0), got[0].ID)
	assert.Equal(t, int64(8), got[4].ID)
}

func TestConcurrentEvaluation(t *testing.T) {
	movies := generateTestMovies(1000)

	f, err := NewExprCompiler().Compile(`hasGenre("Action") and Rating > 5`)
	require.NoError(t, err)

	evaluator := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(50))
	got, err := evaluator.Evaluate(context.Background(), f, movies)
	require.NoError(t, err)

	want := evaluateSequential(f, movies)
	assert.Equal(t, want, got)
	assert.NotEmpty(t, got)
}

func TestConcurrentEvaluationCancelled(t *testing.T) {
	movies := generateTestMovies(500)
	f, err := NewExprCompiler().Compile(`Rating > 5`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evaluator := NewConcurrentEvaluator(WithBatchSize(10))
	_, err = evaluator.Evaluate(ctx, f, movies)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = evaluator.Evaluate(ctx, f, movies[:5])
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchEvaluation(t *testing.T) {
	movies := generateTestMovies(200)
	compiler := NewExprCompiler()

	filters := map[string]CompiledFilter{}
	for name, expr := range map[string]string{
		"action":  `hasGenre("Action")`,
		"good":    `Rating >= 8`,
		"nothing": `Year < 0`,
	} {
		f, err := compiler.Compile(expr)
		require.NoError(t, err)
		filters[name] = f
	}

	results, err := NewConcurrentEvaluator(WithBatchSize(20)).EvaluateBatch(context.Background(), filters, movies)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotEmpty(t, results["action"])
	assert.NotEmpty(t, results["good"])
	assert.Empty(t, results["nothing"])

	for _, m := range results["good"] {
		assert.GreaterOrEqual(t, m.Rating, 8.0)
	}
}

func TestFilterManager(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterFilters(map[string]string{
		"classics": `Year < 1980`,
		"top":      `Rating >= 8`,
	}))
	assert.Equal(t, []string{"classics", "top"}, m.ListFilters())

	err := m.RegisterFilters(map[string]string{"bad": `Rating >`, "ok": `Year > 1`})
	require.Error(t, err)
	_, exists := m.GetFilter("ok")
	assert.False(t, exists)

	movies := generateTestMovies(50)
	top, err := m.EvaluateFilter(context.Background(), "top", movies)
	require.NoError(t, err)
	for _, movie := range top {
		assert.GreaterOrEqual(t, movie.Rating, 8.0)
	}

	_, err = m.EvaluateFilter(context.Background(), "missing", movies)
	assert.ErrorIs(t, err, ErrFilterNotFound)

	all, err := m.EvaluateAll(context.Background(), movies)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	selected, err := m.EvaluateSelected(context.Background(), []string{"top"}, movies)
	require.NoError(t, err)
	assert.Len(t, selected, 1)

	_, err = m.EvaluateSelected(context.Background(), []string{"top", "missing"}, movies)
	assert.ErrorIs(t, err, ErrFilterNotFound)

	m.UnregisterFilter("top")
	assert.Equal(t, []string{"classics"}, m.ListFilters())
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`Rating > 5`)
	require.NoError(t, err)
	second, err := compiler.Compile(`  Rating > 5  `)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, compiler.Size())

	_, _ = compiler.Compile(`Year > 2000`)
	_, _ = compiler.Compile(`Year > 2010`)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Equal(t, 0, compiler.Size())
}

func TestLRUCacheEviction(t *testing.T) {
	c := newLRUCache[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Size())
}

func TestYearsAgo(t *testing.T) {
	env := map[string]any{}
	addHelperFunctions(env)
	yearsAgo := env["yearsAgo"].(func(int) int)
	assert.Equal(t, time.Now().Year()-5, yearsAgo(5))
}
