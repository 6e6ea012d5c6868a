package sankaku

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
	"github.com/s0up4200/sankaku/ratelimit"
	"github.com/s0up4200/sankaku/transport"
)

const (
	// DefaultAPIURL is the base URL of the API
	DefaultAPIURL = "https://capi-v2.sankakucomplex.com"
	// DefaultLoginURL is the base URL of the login service
	DefaultLoginURL = "https://login.sankakucomplex.com"
	// DefaultTokenType is the token type assumed for bare access tokens
	DefaultTokenType = "Bearer"
)

// Client is the entry point to the API. It holds one sub-client per record kind
// and an optional session shared by all of them.
type Client struct {
	transport transport.Doer
	apiURL    string
	loginURL  string
	logger    zerolog.Logger
	opts      clientOptions

	session   atomic.Pointer[Session]
	closeOnce sync.Once
	closeErr  error

	Posts *PostClient
	AI    *AIClient
	Tags  *TagClient
	Books *BookClient
	Users *UserClient
}

// NewClient creates a new client. No request is made until an operation is called.
func NewClient(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := ratelimit.New(o.rps, o.rpm); err != nil {
		return nil, err
	}
	if err := paginator.ValidateLimit(o.pageLimit); err != nil {
		return nil, err
	}

	doer := o.doer
	if doer == nil {
		t, err := transport.New(
			transport.WithRetries(o.retries),
			transport.WithTimeout(o.timeout),
			transport.WithLogger(o.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
		doer = t
	}

	c := &Client{
		transport: doer,
		apiURL:    o.apiURL,
		loginURL:  o.loginURL,
		logger:    o.logger,
		opts:      o,
	}
	c.Posts = &PostClient{lister: lister[models.Post, query.PostFilters]{c: c, path: "/posts"}}
	c.AI = &AIClient{lister: lister[models.AIPost, query.None]{c: c, path: "/ai_posts"}}
	c.Tags = &TagClient{lister: lister[models.PageTag, query.TagFilters]{c: c, path: "/tags"}}
	c.Books = &BookClient{lister: lister[models.PageBook, query.BookFilters]{c: c, path: "/pools"}}
	c.Users = &UserClient{lister: lister[models.User, query.UserFilters]{c: c, path: "/users"}}

	return c, nil
}

// Close releases the transport. Calls after the first return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.Close()
	})
	return c.closeErr
}

// authHeader snapshots the current session into request headers
func (c *Client) authHeader() http.Header {
	s := c.session.Load()
	if s == nil {
		return nil
	}
	return http.Header{"Authorization": {s.Authorization()}}
}

// pageOptions returns the client defaults followed by caller overrides
func (c *Client) pageOptions(extra []paginator.Option) []paginator.Option {
	opts := []paginator.Option{
		paginator.WithLimit(c.opts.pageLimit),
		paginator.WithLang(c.opts.lang),
		paginator.WithRateLimit(c.opts.rps, c.opts.rpm),
		paginator.WithLogger(c.logger),
	}
	if h := c.authHeader(); h != nil {
		opts = append(opts, paginator.WithHeader(h))
	}
	if c.opts.strict {
		opts = append(opts, paginator.WithStrictDecoding())
	}
	return append(opts, extra...)
}

// Ref identifies a record by name or by numeric id
type Ref struct {
	Name string
	ID   int
}

// ByName references a record by its name
func ByName(name string) Ref {
	return Ref{Name: name}
}

// ByID references a record by its id
func ByID(id int) Ref {
	return Ref{ID: id}
}

// ParseRef treats all-digit input as an id and anything else as a name
func ParseRef(s string) Ref {
	if id, err := strconv.Atoi(s); err == nil && id > 0 {
		return ByID(id)
	}
	return ByName(s)
}

func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(r.ID)
}

// path returns the URL suffix selecting r under the given name and id segments.
// An empty id segment yields the bare id.
func (r Ref) path(name, id string) (string, error) {
	switch {
	case r.Name != "":
		return name + "/" + url.PathEscape(r.Name), nil
	case r.ID > 0:
		return strings.TrimPrefix(id+"/", "/") + strconv.Itoa(r.ID), nil
	default:
		return "", fmt.Errorf("%w: empty name and id", apierr.ErrConfig)
	}
}

// key is the value reported in not-found errors
func (r Ref) key() any {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// lister implements Browser for one list endpoint
type lister[T any, F query.Encoder] struct {
	c    *Client
	path string
}

func (l lister[T, F]) url() string {
	return l.c.apiURL + l.path
}

// Browse implements Browser
func (l lister[T, F]) Browse(ctx context.Context, filters F, opts ...paginator.Option) iter.Seq2[T, error] {
	p, err := l.Pages(filters, opts...)
	if err != nil {
		return errSeq[T](err)
	}
	return p.All(ctx)
}

// Pages implements Browser
func (l lister[T, F]) Pages(filters F, opts ...paginator.Option) (*paginator.Paginator[T], error) {
	return newPaginator[T](l.c, l.url(), filters, opts)
}

// Range implements Browser
func (l lister[T, F]) Range(filters F, start, stop, step int, opts ...paginator.Option) (*paginator.Range[T], error) {
	params, err := filters.Encode()
	if err != nil {
		return nil, err
	}
	return paginator.NewRange[T](l.c.transport, l.url(), params, start, stop, step, l.c.pageOptions(opts)...)
}

func newPaginator[T any](c *Client, rawURL string, filters query.Encoder, opts []paginator.Option) (*paginator.Paginator[T], error) {
	params, err := filters.Encode()
	if err != nil {
		return nil, err
	}
	return paginator.New[T](c.transport, rawURL, params, c.pageOptions(opts)...)
}

func browseURL[T any](ctx context.Context, c *Client, rawURL string, opts []paginator.Option) iter.Seq2[T, error] {
	p, err := newPaginator[T](c, rawURL, query.None{}, opts)
	if err != nil {
		return errSeq[T](err)
	}
	return p.All(ctx)
}

// getOne fetches a single record; a non-ok response becomes a NotFoundError for key
func getOne[T any](ctx context.Context, c *Client, rawURL string, key any) (T, error) {
	var zero T

	resp, err := c.transport.Get(ctx, rawURL, nil, c.authHeader())
	if err != nil {
		var se *apierr.ServerError
		if errors.As(err, &se) && se.Status >= http.StatusBadRequest {
			return zero, &apierr.NotFoundError{Status: se.Status, ID: key}
		}
		return zero, err
	}
	if !resp.OK {
		return zero, &apierr.NotFoundError{Status: resp.Status, ID: key}
	}

	return models.Decode[T](resp.JSON, c.opts.strict)
}

// errSeq yields err once
func errSeq[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// collect drains seq, stopping after limit items when limit > 0
func collect[T any](seq iter.Seq2[T, error], limit int) ([]T, error) {
	var items []T
	for item, err := range seq {
		if err != nil {
			return items, err
		}
		items = append(items, item)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}
