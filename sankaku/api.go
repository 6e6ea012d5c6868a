package sankaku

import (
	"context"
	"iter"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
)

// Browser lists records of one kind
type Browser[T any, F query.Encoder] interface {
	// Browse iterates over matching records page by page
	Browse(ctx context.Context, filters F, opts ...paginator.Option) iter.Seq2[T, error]

	// Pages returns a paginator for page-level control
	Pages(filters F, opts ...paginator.Option) (*paginator.Paginator[T], error)

	// Range returns a paginator bounded to the item window [start, stop)
	Range(filters F, start, stop, step int, opts ...paginator.Option) (*paginator.Range[T], error)
}

// Getter fetches a single record by its key
type Getter[T any, K any] interface {
	Get(ctx context.Context, key K) (T, error)
}

var (
	_ Browser[models.Post, query.PostFilters]     = (*PostClient)(nil)
	_ Getter[models.Post, int]                    = (*PostClient)(nil)
	_ Browser[models.AIPost, query.None]          = (*AIClient)(nil)
	_ Getter[models.AIPost, int]                  = (*AIClient)(nil)
	_ Browser[models.PageTag, query.TagFilters]   = (*TagClient)(nil)
	_ Getter[models.WikiTag, Ref]                 = (*TagClient)(nil)
	_ Browser[models.PageBook, query.BookFilters] = (*BookClient)(nil)
	_ Getter[models.Book, int]                    = (*BookClient)(nil)
	_ Browser[models.User, query.UserFilters]     = (*UserClient)(nil)
	_ Getter[models.User, Ref]                    = (*UserClient)(nil)
)
