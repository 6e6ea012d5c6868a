package sankaku

import (
	"context"
	"fmt"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// PostClient browses and fetches posts
type PostClient struct {
	lister[models.Post, query.PostFilters]
}

// Get fetches a single post by id
func (p *PostClient) Get(ctx context.Context, id int) (models.Post, error) {
	return getOne[models.Post](ctx, p.c, fmt.Sprintf("%s/%d", p.url(), id), id)
}

// GetPostOption configures GetPost
type GetPostOption func(*getPostOptions)

type getPostOptions struct {
	similar  int
	comments bool
}

// WithSimilarPosts attaches up to n similar posts to the result
func WithSimilarPosts(n int) GetPostOption {
	return func(o *getPostOptions) {
		o.similar = n
	}
}

// WithComments attaches the comments of the post to the result
func WithComments() GetPostOption {
	return func(o *getPostOptions) {
		o.comments = true
	}
}

// BrowsePosts iterates over posts matching filters
func (c *Client) BrowsePosts(ctx context.Context, filters query.PostFilters, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	return c.Posts.Browse(ctx, filters, opts...)
}

// PostPages returns a page-level paginator over posts matching filters
func (c *Client) PostPages(filters query.PostFilters, opts ...paginator.Option) (*paginator.Paginator[models.Post], error) {
	return c.Posts.Pages(filters, opts...)
}

// PostRange returns a paginator over the posts in [start, stop)
func (c *Client) PostRange(filters query.PostFilters, start, stop, step int, opts ...paginator.Option) (*paginator.Range[models.Post], error) {
	return c.Posts.Range(filters, start, stop, step, opts...)
}

// GetPost fetches a post and, on request, its similar posts and comments.
// If a nested fetch fails the post is discarded and the error returned.
func (c *Client) GetPost(ctx context.Context, id int, opts ...GetPostOption) (models.Post, error) {
	var o getPostOptions
	for _, opt := range opts {
		opt(&o)
	}

	post, err := c.Posts.Get(ctx, id)
	if err != nil {
		return models.Post{}, err
	}

	if o.similar > 0 {
		similar, err := collect(c.GetSimilarPosts(ctx, id, paginator.WithLimit(min(o.similar, paginator.MaxLimit))), o.similar)
		if err != nil {
			return models.Post{}, fmt.Errorf("failed to get similar posts of post %d: %w", id, err)
		}
		post.SimilarPosts = similar
	}

	if o.comments {
		comments, err := collect(c.GetPostComments(ctx, id), 0)
		if err != nil {
			return models.Post{}, fmt.Errorf("failed to get comments of post %d: %w", id, err)
		}
		post.Comments = comments
	}

	return post, nil
}

// GetFavoritedPosts iterates over the posts favorited by the logged-in user
func (c *Client) GetFavoritedPosts(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	s, err := c.requireSession()
	if err != nil {
		return errSeq[models.Post](err)
	}
	return c.BrowsePosts(ctx, query.PostFilters{FavoritedBy: s.Profile.Name}, opts...)
}

// GetRecommendedPosts iterates over the posts recommended for the logged-in user
func (c *Client) GetRecommendedPosts(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	s, err := c.requireSession()
	if err != nil {
		return errSeq[models.Post](err)
	}
	return c.BrowsePosts(ctx, query.PostFilters{RecommendedFor: s.Profile.Name}, opts...)
}

// GetTopPosts iterates over posts ordered by quality
func (c *Client) GetTopPosts(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	return c.BrowsePosts(ctx, query.PostFilters{Order: models.PostOrderQuality}, opts...)
}

// GetPopularPosts iterates over posts ordered by popularity
func (c *Client) GetPopularPosts(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	return c.BrowsePosts(ctx, query.PostFilters{Order: models.PostOrderPopularity}, opts...)
}

// GetSimilarPosts iterates over the posts recommended for a post
func (c *Client) GetSimilarPosts(ctx context.Context, id int, opts ...paginator.Option) iter.Seq2[models.Post, error] {
	tag := fmt.Sprintf("recommended_for_post:%d", id)
	return c.BrowsePosts(ctx, query.PostFilters{Tags: []string{tag}}, opts...)
}

// GetPostComments iterates over the comments of a post
func (c *Client) GetPostComments(ctx context.Context, id int, opts ...paginator.Option) iter.Seq2[models.Comment, error] {
	return browseURL[models.Comment](ctx, c, fmt.Sprintf("%s/posts/%d/comments", c.apiURL, id), opts)
}
