package query

import (
	"net/url"
	"time"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
)

// PostFilters are the search parameters of the post browsing pages.
// Zero values mean "unset" and contribute nothing to the query.
type PostFilters struct {
	Tags             []string
	Order            models.PostOrder
	Date             []time.Time             `validate:"max=2"`
	Rating           models.Rating           `validate:"omitempty,oneof=s q e"`
	Threshold        int                     `validate:"omitempty,min=1,max=100"`
	HidePostsInBooks models.HidePostsInBooks `validate:"omitempty,oneof=in-larger-tags always"`
	FileSize         models.FileSize
	FileType         models.FileType `validate:"omitempty,oneof=image gif video"`
	VideoDuration    []int           `validate:"max=2,dive,min=0"`
	RecommendedFor   string
	FavoritedBy      string
	AddedBy          []string
	Voted            string
}

var postRules = []rule[PostFilters]{
	tagsRule(func(f *PostFilters) []string { return f.Tags }),
	prefixRule("order", "order", func(f *PostFilters) string { return string(f.Order) }),
	{field: "date", encode: func(f *PostFilters, b *builder) error {
		if len(f.Date) > 0 {
			b.token("date:%s", joinRange(f.Date, func(t time.Time) string { return t.Format(DateLayout) }))
		}
		return nil
	}},
	prefixRule("rating", "rating", func(f *PostFilters) string { return string(f.Rating) }),
	{field: "threshold", encode: func(f *PostFilters, b *builder) error {
		if f.Threshold > 0 {
			b.token("threshold:%d", f.Threshold)
		}
		return nil
	}},
	paramRule("hide_posts_in_books", "hide_posts_in_books", func(f *PostFilters) string { return string(f.HidePostsInBooks) }),
	{field: "file_size", encode: func(f *PostFilters, b *builder) error {
		if f.FileSize != "" {
			b.token("%s", f.FileSize)
		}
		return nil
	}},
	{field: "file_type", encode: func(f *PostFilters, b *builder) error {
		// image is the server default and is never sent
		if f.FileType != "" && f.FileType != models.FileTypeImage {
			b.token("file_type:%s", f.FileType)
		}
		return nil
	}},
	{field: "video_duration", encode: func(f *PostFilters, b *builder) error {
		if len(f.VideoDuration) == 0 {
			return nil
		}
		if f.FileType != models.FileTypeVideo {
			return apierr.ErrVideoDuration
		}
		b.token("duration:%s", joinRange(f.VideoDuration, itoa))
		return nil
	}},
	prefixRule("recommended_for", "recommended_for", func(f *PostFilters) string { return f.RecommendedFor }),
	prefixRule("favorited_by", "fav", func(f *PostFilters) string { return f.FavoritedBy }),
	repeatedRule("added_by", "user", func(f *PostFilters) []string { return f.AddedBy }),
	prefixRule("voted", "voted", func(f *PostFilters) string { return f.Voted }),
}

// Encode implements Encoder
func (f PostFilters) Encode() (url.Values, error) {
	return encode(&f, postRules)
}

var _ Encoder = PostFilters{}
