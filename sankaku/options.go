package sankaku

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/ratelimit"
	"github.com/s0up4200/sankaku/transport"
)

// Option configures a Client
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client
type clientOptions struct {
	logger    zerolog.Logger
	doer      transport.Doer
	retries   int
	timeout   time.Duration
	rps       int
	rpm       int
	pageLimit int
	lang      string
	apiURL    string
	loginURL  string
	strict    bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		logger:    zerolog.Nop(),
		retries:   transport.DefaultRetries,
		timeout:   30 * time.Second,
		rps:       ratelimit.DefaultRPS,
		pageLimit: paginator.DefaultLimit,
		lang:      paginator.DefaultLang,
		apiURL:    DefaultAPIURL,
		loginURL:  DefaultLoginURL,
	}
}

// WithLogger sets the logger used by the client and everything it creates
func WithLogger(logger zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTransport replaces the HTTP transport. The client takes ownership and closes it.
func WithTransport(doer transport.Doer) Option {
	return func(o *clientOptions) {
		o.doer = doer
	}
}

// WithRetries sets how many times transient failures are retried
func WithRetries(retries int) Option {
	return func(o *clientOptions) {
		if retries >= 0 {
			o.retries = retries
		}
	}
}

// WithTimeout sets the per-request timeout of the default transport
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRateLimit sets the throttle of every paginator. Exactly one of rps or rpm must be positive.
func WithRateLimit(rps, rpm int) Option {
	return func(o *clientOptions) {
		o.rps = rps
		o.rpm = rpm
	}
}

// WithPageLimit sets the default number of items per page
func WithPageLimit(limit int) Option {
	return func(o *clientOptions) {
		o.pageLimit = limit
	}
}

// WithLang sets the response language
func WithLang(lang string) Option {
	return func(o *clientOptions) {
		o.lang = lang
	}
}

// WithAPIURL overrides the API base URL
func WithAPIURL(apiURL string) Option {
	return func(o *clientOptions) {
		o.apiURL = strings.TrimSuffix(apiURL, "/")
	}
}

// WithLoginURL overrides the login base URL
func WithLoginURL(loginURL string) Option {
	return func(o *clientOptions) {
		o.loginURL = strings.TrimSuffix(loginURL, "/")
	}
}

// WithStrictDecoding rejects response fields the records do not declare
func WithStrictDecoding() Option {
	return func(o *clientOptions) {
		o.strict = true
	}
}
