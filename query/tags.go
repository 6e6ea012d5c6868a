package query

import (
	"net/url"
	"strconv"

	"github.com/s0up4200/sankaku/models"
)

// TagFilters are the search parameters of the tag pages.
// They are sent as top-level parameters, not as a tag string.
// SortDirection defaults to descending and is only sent with SortParameter.
type TagFilters struct {
	TagType       *models.TagType
	Order         models.TagOrder
	Rating        models.Rating `validate:"omitempty,oneof=s q e"`
	MaxPostCount  *int          `validate:"omitempty,min=0"`
	SortParameter models.SortParameter
	SortDirection models.SortDirection `validate:"omitempty,oneof=asc desc"`
}

var tagRules = []rule[TagFilters]{
	{field: "tag_type", encode: func(f *TagFilters, b *builder) error {
		if f.TagType != nil {
			b.set("types[]", strconv.Itoa(int(*f.TagType)))
		}
		return nil
	}},
	paramRule("order", "order", func(f *TagFilters) string { return string(f.Order) }),
	paramRule("rating", "rating", func(f *TagFilters) string { return string(f.Rating) }),
	{field: "max_post_count", encode: func(f *TagFilters, b *builder) error {
		if f.MaxPostCount != nil {
			b.set("amount", strconv.Itoa(*f.MaxPostCount))
		}
		return nil
	}},
	{field: "sort_parameter", encode: func(f *TagFilters, b *builder) error {
		if f.SortParameter == "" {
			return nil
		}
		dir := f.SortDirection
		if dir == "" {
			dir = models.SortDesc
		}
		b.set("sortBy", string(f.SortParameter))
		b.set("sortDirection", string(dir))
		return nil
	}},
}

// Encode implements Encoder
func (f TagFilters) Encode() (url.Values, error) {
	return encode(&f, tagRules)
}

var _ Encoder = TagFilters{}
