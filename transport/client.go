package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/s0up4200/sankaku/apierr"
)

const (
	// DefaultRetries is the default number of retries for transient failures
	DefaultRetries = 3

	// DefaultUserAgent mimics the browser the web client is served to
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/94.0.4606.85 YaBrowser/21.11.0.1996 " +
		"Yowser/2.5 Safari/537.36"

	jsonContentType = "application/json"
)

// Response is the uniform result of a request
type Response struct {
	Status int
	OK     bool
	JSON   json.RawMessage
}

// Doer is the transport surface the rest of the module depends on
type Doer interface {
	Get(ctx context.Context, rawURL string, params url.Values, header http.Header) (*Response, error)
	Post(ctx context.Context, rawURL string, body any, header http.Header) (*Response, error)
	Close() error
}

// Client is a retrying JSON transport holding a single connection pool
type Client struct {
	http      *retryablehttp.Client
	headers   http.Header
	logger    zerolog.Logger
	closeOnce sync.Once
}

var _ Doer = (*Client)(nil)

// New creates a new transport client
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		t, err := newHTTPTransport()
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Transport: t, Timeout: o.timeout}
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = httpClient
	rc.RetryMax = o.maxRetries
	rc.RetryWaitMin = o.retryWaitMin
	rc.RetryWaitMax = o.retryWaitMax
	rc.Backoff = retryablehttp.DefaultBackoff
	rc.CheckRetry = retryablehttp.DefaultRetryPolicy
	// Surface the last response instead of a "giving up" error so callers see its status.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{logger: o.logger}

	headers := defaultHeaders(o.userAgent)
	for k, v := range o.headers {
		headers[k] = v
	}

	return &Client{
		http:    rc,
		headers: headers,
		logger:  o.logger,
	}, nil
}

func defaultHeaders(userAgent string) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", userAgent)
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Requested-With", "com.android.browser")
	h.Set("Accept", "text/html,application/xhtml+xml,application/json,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	h.Set("Origin", "https://beta.sankakucomplex.com")
	return h
}

// Get sends a GET request with the given query parameters
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values, header http.Header) (*Response, error) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, rawURL, nil, header)
}

// Post sends a POST request with body encoded as JSON
func (c *Client) Post(ctx context.Context, rawURL string, body any, header http.Header) (*Response, error) {
	var raw []byte
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}
	return c.do(ctx, http.MethodPost, rawURL, raw, header)
}

// Close releases the connection pool. Calls after the first are no-ops.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.http.HTTPClient.CloseIdleConnections()
	})
	return nil
}

// do performs a request and normalizes the JSON body
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte, header http.Header) (*Response, error) {
	var rawBody any
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header[k] = v
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Msg("Sent request")

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != jsonContentType {
		return nil, &apierr.ServerError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("invalid response content type %q", mediaType),
		}
	}
	if !gjson.ValidBytes(payload) {
		return nil, &apierr.ServerError{
			Status:  resp.StatusCode,
			Message: "response contained invalid JSON",
			Payload: payload,
		}
	}

	c.logger.Trace().RawJSON("body", payload).Msg("Response body")

	return &Response{
		Status: resp.StatusCode,
		OK:     resp.StatusCode < http.StatusBadRequest,
		JSON:   payload,
	}, nil
}
