package sankaku

import (
	"context"
	"fmt"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// AIClient browses and fetches AI generated posts. The listing takes no filters.
type AIClient struct {
	lister[models.AIPost, query.None]
}

// Get fetches a single AI post by id
func (a *AIClient) Get(ctx context.Context, id int) (models.AIPost, error) {
	return getOne[models.AIPost](ctx, a.c, fmt.Sprintf("%s/%d", a.url(), id), id)
}

// BrowseAIPosts iterates over AI generated posts
func (c *Client) BrowseAIPosts(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.AIPost, error] {
	return c.AI.Browse(ctx, query.None{}, opts...)
}

// GetAIPost fetches a single AI post by id
func (c *Client) GetAIPost(ctx context.Context, id int) (models.AIPost, error) {
	return c.AI.Get(ctx, id)
}
