package paginator

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/ratelimit"
	"github.com/s0up4200/sankaku/transport"
)

// exhaustionCodes are error codes the server uses to say there is nothing more to show
var exhaustionCodes = map[string]struct{}{
	"snackbar__anonymous-recommendations-limit-reached": {},
	"snackbar__account_offset-forbidden":                {},
}

// Paginator walks the pages of a list endpoint, decoding each item into T.
// It is not safe for concurrent use; one request is in flight at a time.
type Paginator[T any] struct {
	doer    transport.Doer
	url     string
	params  url.Values
	header  http.Header
	limiter *ratelimit.Limiter
	logger  zerolog.Logger
	strict  bool

	page  int
	limit int
	lang  string
	done  bool
}

// New creates a paginator over rawURL. params are the encoded filters sent with every page.
func New[T any](doer transport.Doer, rawURL string, params url.Values, opts ...Option) (*Paginator[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := ValidateLimit(o.limit); err != nil {
		return nil, err
	}

	limiter, err := ratelimit.New(o.rps, o.rpm)
	if err != nil {
		return nil, err
	}

	base := make(url.Values, len(params))
	for k, v := range params {
		base[k] = append([]string(nil), v...)
	}

	return &Paginator[T]{
		doer:    doer,
		url:     rawURL,
		params:  base,
		header:  o.header,
		limiter: limiter,
		logger:  o.logger,
		strict:  o.strict,
		page:    o.page,
		limit:   o.limit,
		lang:    o.lang,
	}, nil
}

// Page returns the server page the next call to Next will request
func (p *Paginator[T]) Page() int {
	return p.page
}

// Limit returns the page size
func (p *Paginator[T]) Limit() int {
	return p.limit
}

// Done reports whether the paginator is exhausted
func (p *Paginator[T]) Done() bool {
	return p.done
}

// Next fetches the next page. It returns false once the server has no more results;
// after that every call returns false without issuing a request.
func (p *Paginator[T]) Next(ctx context.Context) (models.Page[T], bool, error) {
	if p.done {
		return models.Page[T]{}, false, nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return models.Page[T]{}, false, err
	}

	resp, err := p.doer.Get(ctx, p.url, p.query(), p.header)
	if err != nil {
		return models.Page[T]{}, false, fmt.Errorf("failed to fetch page %d: %w", p.page, err)
	}

	items, more, err := p.decode(resp)
	if err != nil {
		return models.Page[T]{}, false, err
	}
	if !more {
		p.done = true
		p.logger.Debug().
			Str("url", p.url).
			Int("page", p.page).
			Msg("No more pages")
		return models.Page[T]{}, false, nil
	}

	page := models.Page[T]{Number: p.page, Items: items}
	p.page++

	p.logger.Debug().
		Str("url", p.url).
		Int("page", page.Number).
		Int("items", len(items)).
		Msg("Fetched page")

	return page, true, nil
}

// Pages iterates over the remaining pages
func (p *Paginator[T]) Pages(ctx context.Context) iter.Seq2[models.Page[T], error] {
	return func(yield func(models.Page[T], error) bool) {
		for {
			page, ok, err := p.Next(ctx)
			if err != nil {
				yield(models.Page[T]{}, err)
				return
			}
			if !ok || !yield(page, nil) {
				return
			}
		}
	}
}

// All iterates over the items of the remaining pages. Iteration stops after the first error.
func (p *Paginator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for page, err := range p.Pages(ctx) {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range page.Items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}

func (p *Paginator[T]) query() url.Values {
	q := make(url.Values, len(p.params)+3)
	for k, v := range p.params {
		q[k] = v
	}
	q.Set("lang", p.lang)
	q.Set("page", strconv.Itoa(p.page))
	q.Set("limit", strconv.Itoa(p.limit))
	return q
}

// decode interprets a page response. more is false when the server signals the end.
func (p *Paginator[T]) decode(resp *transport.Response) (items []T, more bool, err error) {
	body := gjson.ParseBytes(resp.JSON)

	var data gjson.Result
	switch {
	case body.IsArray():
		data = body

	case body.IsObject():
		code := body.Get("code")
		if code.Exists() {
			if _, ok := exhaustionCodes[code.String()]; ok {
				return nil, false, nil
			}
			if body.Get("errorId").Exists() {
				return nil, false, p.serverError(resp, code.String())
			}
		}
		if !resp.OK {
			return nil, false, p.serverError(resp, "")
		}
		data = body.Get("data")
		if !data.Exists() || data.Type == gjson.Null {
			return nil, false, nil
		}
		if !data.IsArray() {
			return nil, false, p.serverError(resp, "unexpected data field")
		}

	default:
		return nil, false, p.serverError(resp, "unexpected response body")
	}

	if !resp.OK {
		return nil, false, p.serverError(resp, "")
	}
	if len(data.Array()) == 0 {
		return nil, false, nil
	}

	items, err = models.DecodeList[T]([]byte(data.Raw), p.strict)
	if err != nil {
		return nil, false, fmt.Errorf("page %d: %w", p.page, err)
	}
	return items, true, nil
}

func (p *Paginator[T]) serverError(resp *transport.Response, msg string) error {
	return &apierr.ServerError{
		Status:  resp.Status,
		Message: msg,
		Payload: resp.JSON,
	}
}

// ValidateLimit checks a page limit against the server's bounds. Failures wrap apierr.ErrConfig.
func ValidateLimit(limit int) error {
	if err := models.ValidateVar(limit, fmt.Sprintf("min=1,max=%d", MaxLimit)); err != nil {
		return fmt.Errorf("%w: page limit %d must be between 1 and %d", apierr.ErrConfig, limit, MaxLimit)
	}
	return nil
}
