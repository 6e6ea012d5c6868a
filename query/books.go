package query

import (
	"net/url"

	"github.com/s0up4200/sankaku/models"
)

// BookFilters are the search parameters of the book (pool) pages
type BookFilters struct {
	Tags           []string
	Order          models.BookOrder
	Rating         models.Rating `validate:"omitempty,oneof=s q e"`
	RecommendedFor string
	FavoritedBy    string
	AddedBy        []string
	Voted          string
}

var bookRules = []rule[BookFilters]{
	tagsRule(func(f *BookFilters) []string { return f.Tags }),
	prefixRule("order", "order", func(f *BookFilters) string { return string(f.Order) }),
	prefixRule("rating", "rating", func(f *BookFilters) string { return string(f.Rating) }),
	prefixRule("recommended_for", "recommended_for", func(f *BookFilters) string { return f.RecommendedFor }),
	prefixRule("favorited_by", "fav", func(f *BookFilters) string { return f.FavoritedBy }),
	repeatedRule("added_by", "user", func(f *BookFilters) []string { return f.AddedBy }),
	prefixRule("voted", "voted", func(f *BookFilters) string { return f.Voted }),
}

// Encode implements Encoder
func (f BookFilters) Encode() (url.Values, error) {
	return encode(&f, bookRules)
}

var _ Encoder = BookFilters{}
