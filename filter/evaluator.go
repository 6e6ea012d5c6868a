package filter

import (
	"context"
	"iter"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/sankaku/models"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*Evaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *Evaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *Evaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// Evaluator applies filters to slices of posts, splitting large slices across workers
type Evaluator struct {
	workerCount int
	batchSize   int
}

// NewEvaluator creates a new evaluator
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the posts matching f in their original order
func (e *Evaluator) Evaluate(ctx context.Context, f *Filter, posts []models.Post) ([]models.Post, error) {
	if len(posts) == 0 {
		return []models.Post{}, nil
	}

	if len(posts) < e.batchSize {
		return matching(f, posts), nil
	}

	chunkSize := max(len(posts)/e.workerCount, e.batchSize)
	chunks := make([][]models.Post, (len(posts)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(posts))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = matching(f, posts[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	matches := make([]models.Post, 0, total)
	for _, c := range chunks {
		matches = append(matches, c...)
	}
	return matches, nil
}

func matching(f *Filter, posts []models.Post) []models.Post {
	matches := make([]models.Post, 0, len(posts)/10)
	for _, post := range posts {
		if f.Match(post) {
			matches = append(matches, post)
		}
	}
	return matches
}

// Where yields the posts of seq that match f. Errors from seq and evaluation
// errors are yielded once and end the sequence.
func Where(f *Filter, seq iter.Seq2[models.Post, error]) iter.Seq2[models.Post, error] {
	return func(yield func(models.Post, error) bool) {
		for post, err := range seq {
			if err != nil {
				yield(post, err)
				return
			}
			ok, err := f.Eval(post)
			if err != nil {
				yield(post, err)
				return
			}
			if ok && !yield(post, nil) {
				return
			}
		}
	}
}
