package transport

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	userAgent    string
	headers      http.Header
	httpClient   *http.Client
	logger       zerolog.Logger
}

func defaultOptions() clientOptions {
	return clientOptions{
		maxRetries:   DefaultRetries,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 8 * time.Second,
		userAgent:    DefaultUserAgent,
		logger:       zerolog.Nop(),
	}
}

// WithTimeout sets the HTTP client timeout. Zero leaves the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRetries sets the maximum number of retry attempts for transient failures.
func WithRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.maxRetries = retries
		}
	}
}

// WithRetryWait sets the bounds of the exponential backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(o *clientOptions) {
		o.retryWaitMin = minWait
		o.retryWaitMax = maxWait
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHeaders adds headers sent with every request.
func WithHeaders(header http.Header) Option {
	return func(o *clientOptions) {
		if o.headers == nil {
			o.headers = make(http.Header, len(header))
		}
		for k, v := range header {
			o.headers[k] = append([]string(nil), v...)
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Proxy discovery is skipped.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithLogger sets the logger used for request and retry logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}
