package paginator

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/s0up4200/sankaku/ratelimit"
)

const (
	// DefaultPage is the first server page
	DefaultPage = 1
	// DefaultLimit is the default number of items per page
	DefaultLimit = 40
	// MaxLimit is the largest page size the server accepts
	MaxLimit = 100
	// DefaultLang is the default response language
	DefaultLang = "en"
)

// Option configures a paginator
type Option func(*options)

type options struct {
	page   int
	limit  int
	lang   string
	rps    int
	rpm    int
	header http.Header
	logger zerolog.Logger
	strict bool
}

func defaultOptions() options {
	return options{
		page:   DefaultPage,
		limit:  DefaultLimit,
		lang:   DefaultLang,
		rps:    ratelimit.DefaultRPS,
		logger: zerolog.Nop(),
	}
}

// WithPage sets the server page iteration starts from.
// The value is sent as-is; the server decides what an invalid page means.
func WithPage(page int) Option {
	return func(o *options) {
		o.page = page
	}
}

// WithLimit sets the number of items per page (1..100)
func WithLimit(limit int) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithLang sets the response language
func WithLang(lang string) Option {
	return func(o *options) {
		if lang != "" {
			o.lang = lang
		}
	}
}

// WithRateLimit sets the paginator's own throttle. Exactly one of rps or rpm must be positive.
func WithRateLimit(rps, rpm int) Option {
	return func(o *options) {
		o.rps = rps
		o.rpm = rpm
	}
}

// WithHeader adds headers sent with every page request
func WithHeader(header http.Header) Option {
	return func(o *options) {
		o.header = header
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStrictDecoding rejects items carrying fields the record does not declare
func WithStrictDecoding() Option {
	return func(o *options) {
		o.strict = true
	}
}
