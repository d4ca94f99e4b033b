package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cinebrowse/catalog"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the maximum number of concurrent goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the list size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements both Evaluator and BatchEvaluator
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

var (
	_ Evaluator      = (*ConcurrentEvaluator)(nil)
	_ BatchEvaluator = (*ConcurrentEvaluator)(nil)
)

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the movies matching filter, preserving input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, movies []catalog.Movie) ([]catalog.Movie, error) {
	if len(movies) == 0 {
		return []catalog.Movie{}, nil
	}

	// For small movie lists, don't bother with concurrency
	if len(movies) < e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return evaluateSequential(filter, movies), nil
	}

	return e.evaluateConcurrent(ctx, filter, movies)
}

// EvaluateBatch evaluates every filter against movies. Filters that fail are left out of the result.
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, movies []catalog.Movie) (map[string][]catalog.Movie, error) {
	results := make(map[string][]catalog.Movie, len(filters))
	if len(filters) == 0 || len(movies) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	var mu sync.Mutex
	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(gctx, filter, movies)
			if err != nil {
				return nil
			}

			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateSequential(filter CompiledFilter, movies []catalog.Movie) []catalog.Movie {
	matches := make([]catalog.Movie, 0, len(movies)/4)
	for _, movie := range movies {
		if filter.Evaluate(movie) {
			matches = append(matches, movie)
		}
	}
	return matches
}

// evaluateConcurrent splits movies into chunks evaluated in parallel
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, movies []catalog.Movie) ([]catalog.Movie, error) {
	chunkSize := max(len(movies)/e.workerCount, e.batchSize)
	chunks := (len(movies) + chunkSize - 1) / chunkSize
	results := make([][]catalog.Movie, chunks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(movies))
		chunk := movies[start:end]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns its slot
			results[i] = evaluateSequential(filter, chunk)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}

	allMatches := make([]catalog.Movie, 0, total)
	for _, r := range results {
		allMatches = append(allMatches, r...)
	}
	return allMatches, nil
}
