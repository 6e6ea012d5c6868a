package sankaku

import (
	"context"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// TagClient browses tags and fetches a tag together with its wiki page
type TagClient struct {
	lister[models.PageTag, query.TagFilters]
}

// Get fetches a tag by name or id
func (t *TagClient) Get(ctx context.Context, ref Ref) (models.WikiTag, error) {
	suffix, err := ref.path("name", "id")
	if err != nil {
		return models.WikiTag{}, err
	}

	tw, err := getOne[models.TagAndWiki](ctx, t.c, t.c.apiURL+"/tag-and-wiki/"+suffix, ref.key())
	if err != nil {
		return models.WikiTag{}, err
	}
	return tw.WikiTag(), nil
}

// BrowseTags iterates over tags matching filters
func (c *Client) BrowseTags(ctx context.Context, filters query.TagFilters, opts ...paginator.Option) iter.Seq2[models.PageTag, error] {
	return c.Tags.Browse(ctx, filters, opts...)
}

// GetTag fetches a tag and its wiki page by name or id
func (c *Client) GetTag(ctx context.Context, ref Ref) (models.WikiTag, error) {
	return c.Tags.Get(ctx, ref)
}
