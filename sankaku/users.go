package sankaku

import (
	"context"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// UserClient browses and fetches user profiles
type UserClient struct {
	lister[models.User, query.UserFilters]
}

// Get fetches a user by name or id
func (u *UserClient) Get(ctx context.Context, ref Ref) (models.User, error) {
	suffix, err := ref.path("name", "")
	if err != nil {
		return models.User{}, err
	}
	return getOne[models.User](ctx, u.c, u.url()+"/"+suffix, ref.key())
}

// BrowseUsers iterates over users matching filters
func (c *Client) BrowseUsers(ctx context.Context, filters query.UserFilters, opts ...paginator.Option) iter.Seq2[models.User, error] {
	return c.Users.Browse(ctx, filters, opts...)
}

// GetUser fetches a user by name or id
func (c *Client) GetUser(ctx context.Context, ref Ref) (models.User, error) {
	return c.Users.Get(ctx, ref)
}
