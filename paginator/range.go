package paginator

import (
	"context"
	"fmt"
	"iter"
	"net/url"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/transport"
)

// Range iterates over the half-open item window [start, stop) with a step.
// Item g lives on page index g/limit at offset g%limit; page index 0 is the
// paginator's starting page. Only pages overlapping the window are fetched.
type Range[T any] struct {
	pages     *Paginator[T]
	firstPage int
	start     int
	stop      int
	step      int
}

// NewRange creates a bounded paginator. A step of 0 means 1.
func NewRange[T any](doer transport.Doer, rawURL string, params url.Values, start, stop, step int, opts ...Option) (*Range[T], error) {
	if step == 0 {
		step = 1
	}
	if start < 0 || stop < start || step < 0 {
		return nil, fmt.Errorf("%w: invalid item range [%d:%d:%d]", apierr.ErrConfig, start, stop, step)
	}

	p, err := New[T](doer, rawURL, params, opts...)
	if err != nil {
		return nil, err
	}

	return &Range[T]{
		pages:     p,
		firstPage: p.page,
		start:     start,
		stop:      stop,
		step:      step,
	}, nil
}

// Bounds returns the window and step of the range
func (r *Range[T]) Bounds() (start, stop, step int) {
	return r.start, r.stop, r.step
}

// All yields the items of the window in ascending order. Iteration ends early
// when the server runs out of results and stops after the first error.
func (r *Range[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		limit := r.pages.limit
		next := r.start

		for next < r.stop {
			pageIndex := next / limit
			pageStart := pageIndex * limit
			r.pages.page = r.firstPage + pageIndex

			page, ok, err := r.pages.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}

			pageEnd := pageStart + len(page.Items)
			for next < r.stop && next < pageEnd {
				if !yield(page.Items[next-pageStart], nil) {
					return
				}
				next += r.step
			}

			// a short page is the last one the server has
			if len(page.Items) < limit && next >= pageEnd {
				return
			}
		}
	}
}
