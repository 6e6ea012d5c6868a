package sankaku

import (
	"context"
	"fmt"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// BookClient browses and fetches books (pools)
type BookClient struct {
	lister[models.PageBook, query.BookFilters]
}

// Get fetches a single book by id
func (b *BookClient) Get(ctx context.Context, id int) (models.Book, error) {
	return getOne[models.Book](ctx, b.c, fmt.Sprintf("%s/%d", b.url(), id), id)
}

// BrowseBooks iterates over books matching filters
func (c *Client) BrowseBooks(ctx context.Context, filters query.BookFilters, opts ...paginator.Option) iter.Seq2[models.PageBook, error] {
	return c.Books.Browse(ctx, filters, opts...)
}

// GetBook fetches a single book by id
func (c *Client) GetBook(ctx context.Context, id int) (models.Book, error) {
	return c.Books.Get(ctx, id)
}

// GetFavoritedBooks iterates over the books favorited by the logged-in user
func (c *Client) GetFavoritedBooks(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.PageBook, error] {
	s, err := c.requireSession()
	if err != nil {
		return errSeq[models.PageBook](err)
	}
	return c.BrowseBooks(ctx, query.BookFilters{FavoritedBy: s.Profile.Name}, opts...)
}

// GetRecommendedBooks iterates over the books recommended for the logged-in user
func (c *Client) GetRecommendedBooks(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.PageBook, error] {
	s, err := c.requireSession()
	if err != nil {
		return errSeq[models.PageBook](err)
	}
	return c.BrowseBooks(ctx, query.BookFilters{RecommendedFor: s.Profile.Name}, opts...)
}

// GetRecentlyReadBooks iterates over the books the logged-in user opened last
func (c *Client) GetRecentlyReadBooks(ctx context.Context, opts ...paginator.Option) iter.Seq2[models.PageBook, error] {
	s, err := c.requireSession()
	if err != nil {
		return errSeq[models.PageBook](err)
	}
	tag := fmt.Sprintf("read:@%d@", s.Profile.ID)
	return c.BrowseBooks(ctx, query.BookFilters{Tags: []string{tag}}, opts...)
}

// GetRelatedBooks iterates over the books that contain a post
func (c *Client) GetRelatedBooks(ctx context.Context, postID int, opts ...paginator.Option) iter.Seq2[models.PageBook, error] {
	return browseURL[models.PageBook](ctx, c, fmt.Sprintf("%s/post/%d/pools", c.apiURL, postID), opts)
}
