package query

import (
	"net/url"
	"strconv"

	"github.com/s0up4200/sankaku/models"
)

// UserFilters are the search parameters of the user pages
type UserFilters struct {
	Order models.UserOrder
	Level *models.UserLevel
}

var userRules = []rule[UserFilters]{
	paramRule("order", "order", func(f *UserFilters) string { return string(f.Order) }),
	{field: "level", encode: func(f *UserFilters, b *builder) error {
		if f.Level != nil {
			b.set("level", strconv.Itoa(int(*f.Level)))
		}
		return nil
	}},
}

// Encode implements Encoder
func (f UserFilters) Encode() (url.Values, error) {
	return encode(&f, userRules)
}

var _ Encoder = UserFilters{}

// None is an empty filter set for endpoints without search parameters
type None struct{}

// Encode implements Encoder
func (None) Encode() (url.Values, error) {
	return url.Values{}, nil
}
