package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
)

// DateLayout is the minute-precision layout of date range tokens
const DateLayout = "2006-01-02T15:04"

// rangeSeparator joins the bounds of a range token
const rangeSeparator = ".."

// Encoder converts a filter set into query parameters
type Encoder interface {
	Encode() (url.Values, error)
}

// rule is one entry of an encoding table
type rule[F any] struct {
	field  string
	encode func(f *F, b *builder) error
}

// builder accumulates tag tokens and top-level parameters
type builder struct {
	tokens []string
	values url.Values
}

func (b *builder) token(format string, args ...any) {
	b.tokens = append(b.tokens, fmt.Sprintf(format, args...))
}

func (b *builder) set(key, value string) {
	b.values.Set(key, value)
}

// encode walks the table in order and folds tokens into the "tags" parameter
func encode[F any](f *F, rules []rule[F]) (url.Values, error) {
	if err := models.Validate(f); err != nil {
		return nil, fmt.Errorf("%w: invalid filters: %v", apierr.ErrConfig, err)
	}

	b := &builder{values: url.Values{}}
	for _, r := range rules {
		if err := r.encode(f, b); err != nil {
			return nil, fmt.Errorf("%s: %w", r.field, err)
		}
	}
	if len(b.tokens) > 0 {
		b.values.Set("tags", strings.Join(b.tokens, " "))
	}
	return b.values, nil
}

// joinRange renders bounds as "a..b"; a single bound has no separator
func joinRange[T any](bounds []T, format func(T) string) string {
	parts := make([]string, len(bounds))
	for i, v := range bounds {
		parts[i] = format(v)
	}
	return strings.Join(parts, rangeSeparator)
}

// Shared rules, reused by every table that carries the field.

func tagsRule[F any](get func(*F) []string) rule[F] {
	return rule[F]{field: "tags", encode: func(f *F, b *builder) error {
		for _, t := range get(f) {
			if t = strings.TrimSpace(t); t != "" {
				b.tokens = append(b.tokens, t)
			}
		}
		return nil
	}}
}

func prefixRule[F any](field, prefix string, get func(*F) string) rule[F] {
	return rule[F]{field: field, encode: func(f *F, b *builder) error {
		if v := get(f); v != "" {
			b.token("%s:%s", prefix, v)
		}
		return nil
	}}
}

func repeatedRule[F any](field, prefix string, get func(*F) []string) rule[F] {
	return rule[F]{field: field, encode: func(f *F, b *builder) error {
		for _, v := range get(f) {
			b.token("%s:%s", prefix, v)
		}
		return nil
	}}
}

func paramRule[F any](field, key string, get func(*F) string) rule[F] {
	return rule[F]{field: field, encode: func(f *F, b *builder) error {
		if v := get(f); v != "" {
			b.set(key, v)
		}
		return nil
	}}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
