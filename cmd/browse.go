package cmd

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sankaku/filter"
	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/paginator"
	"github.com/s0up4200/sankaku/query"
	"github.com/s0up4200/sankaku/sankaku"
)

// Paging flags shared by every browse command
var (
	maxItems  int
	startPage int
	rangeSpec string
)

// Post filter flags
var (
	tags          []string
	order         string
	rating        string
	threshold     int
	hideInBooks   string
	fileSize      string
	fileType      string
	dates         []string
	duration      []int
	favoritedBy   string
	recommendedTo string
	addedBy       []string
	voted         string
	where         string
)

// Tag and user filter flags
var (
	tagType       string
	maxPostCount  int
	sortBy        string
	sortDirection string
	userLevel     string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse posts",
	Long: `Browse posts matching the given search parameters.

The --where flag filters the results locally with an expression, for example
  --where 'hasTag("blue_sky") and FavCount > 50'
or refers to a named filter from the config with --where @name.`,
	Args: cobra.NoArgs,
	RunE: runPosts,
}

var aiPostsCmd = &cobra.Command{
	Use:   "ai-posts",
	Short: "Browse AI generated posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := browseSeq[models.AIPost](cmd.Context(), client.AI, query.None{})
		if err != nil {
			return err
		}
		return printAll(cmd, seq, printAIPost)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Browse tags",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Browse books (pools)",
	Args:  cobra.NoArgs,
	RunE:  runBooks,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse users",
	Args:  cobra.NoArgs,
	RunE:  runUsers,
}

func init() {
	for _, c := range []*cobra.Command{postsCmd, aiPostsCmd, tagsCmd, booksCmd, usersCmd} {
		addPagingFlags(c)
		rootCmd.AddCommand(c)
	}

	for _, c := range []*cobra.Command{postsCmd, booksCmd} {
		c.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags to search for")
		c.Flags().StringVarP(&order, "order", "o", "", "sort order")
		c.Flags().StringVarP(&rating, "rating", "r", "", "rating: safe, questionable or explicit")
		c.Flags().StringVar(&favoritedBy, "fav", "", "only items favorited by this user")
		c.Flags().StringVar(&recommendedTo, "recommended-for", "", "only items recommended for this user")
		c.Flags().StringSliceVar(&addedBy, "user", nil, "only items uploaded by these users")
		c.Flags().StringVar(&voted, "voted", "", "only items voted by this user")
	}

	postsCmd.Flags().IntVar(&threshold, "threshold", 0, "minimum vote threshold (1-100)")
	postsCmd.Flags().StringVar(&hideInBooks, "hide-in-books", "", "hide posts in books: in-larger-tags or always")
	postsCmd.Flags().StringVar(&fileSize, "file-size", "", "file size or aspect ratio token, e.g. large or 16:9_aspect_ratio")
	postsCmd.Flags().StringVar(&fileType, "file-type", "", "file type: image, gif or video")
	postsCmd.Flags().StringSliceVar(&dates, "date", nil, "date or date range (YYYY-MM-DD[THH:MM])")
	postsCmd.Flags().IntSliceVar(&duration, "duration", nil, "video duration or range in seconds (requires --file-type video)")
	postsCmd.Flags().StringVarP(&where, "where", "w", "", "local filter expression or @name")

	tagsCmd.Flags().StringVar(&tagType, "type", "", "tag type, e.g. artist or character")
	tagsCmd.Flags().StringVarP(&order, "order", "o", "", "sort order")
	tagsCmd.Flags().StringVarP(&rating, "rating", "r", "", "rating: safe, questionable or explicit")
	tagsCmd.Flags().IntVar(&maxPostCount, "max-post-count", -1, "upper bound on the post count")
	tagsCmd.Flags().StringVar(&sortBy, "sort", "", "sort parameter, e.g. post_count")
	tagsCmd.Flags().StringVar(&sortDirection, "direction", "", "sort direction: asc or desc")

	usersCmd.Flags().StringVarP(&order, "order", "o", "", "sort order")
	usersCmd.Flags().StringVar(&userLevel, "level", "", "user level, e.g. member or moderator")
}

func addPagingFlags(c *cobra.Command) {
	c.Flags().IntVarP(&maxItems, "max", "n", 20, "maximum number of items to print (0 for all)")
	c.Flags().IntVar(&startPage, "page", 0, "page to start from")
	c.Flags().StringVar(&rangeSpec, "range", "", "item window start:stop[:step], counted from the start page")
}

func runPosts(cmd *cobra.Command, args []string) error {
	filters, err := postFilters()
	if err != nil {
		return err
	}

	seq, err := browseSeq[models.Post](cmd.Context(), client.Posts, filters)
	if err != nil {
		return err
	}

	if where != "" {
		f, err := namedFilters.Resolve(where)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		seq = filter.Where(f, seq)
	}

	return printAll(cmd, seq, printPost)
}

func runTags(cmd *cobra.Command, args []string) error {
	var filters query.TagFilters

	if tagType != "" {
		t, ok := models.ParseTagType(tagType)
		if !ok {
			return fmt.Errorf("unknown tag type %q", tagType)
		}
		filters.TagType = &t
	}
	r, err := parseRating(rating)
	if err != nil {
		return err
	}
	filters.Rating = r
	filters.Order = models.TagOrder(order)
	if maxPostCount >= 0 {
		filters.MaxPostCount = &maxPostCount
	}
	filters.SortParameter = models.SortParameter(sortBy)
	filters.SortDirection = models.SortDirection(sortDirection)

	seq, err := browseSeq[models.PageTag](cmd.Context(), client.Tags, filters)
	if err != nil {
		return err
	}
	return printAll(cmd, seq, printTag)
}

func runBooks(cmd *cobra.Command, args []string) error {
	r, err := parseRating(rating)
	if err != nil {
		return err
	}

	filters := query.BookFilters{
		Tags:           tags,
		Order:          models.BookOrder(order),
		Rating:         r,
		RecommendedFor: recommendedTo,
		FavoritedBy:    favoritedBy,
		AddedBy:        addedBy,
		Voted:          voted,
	}

	seq, err := browseSeq[models.PageBook](cmd.Context(), client.Books, filters)
	if err != nil {
		return err
	}
	return printAll(cmd, seq, printBook)
}

func runUsers(cmd *cobra.Command, args []string) error {
	filters := query.UserFilters{Order: models.UserOrder(order)}

	if userLevel != "" {
		l, ok := models.ParseUserLevel(userLevel)
		if !ok {
			return fmt.Errorf("unknown user level %q", userLevel)
		}
		filters.Level = &l
	}

	seq, err := browseSeq[models.User](cmd.Context(), client.Users, filters)
	if err != nil {
		return err
	}
	return printAll(cmd, seq, printUser)
}

func postFilters() (query.PostFilters, error) {
	r, err := parseRating(rating)
	if err != nil {
		return query.PostFilters{}, err
	}

	var date []time.Time
	for _, s := range dates {
		t, err := parseDate(s)
		if err != nil {
			return query.PostFilters{}, err
		}
		date = append(date, t)
	}

	return query.PostFilters{
		Tags:             tags,
		Order:            models.PostOrder(order),
		Date:             date,
		Rating:           r,
		Threshold:        threshold,
		HidePostsInBooks: models.HidePostsInBooks(hideInBooks),
		FileSize:         models.FileSize(fileSize),
		FileType:         models.FileType(fileType),
		VideoDuration:    duration,
		RecommendedFor:   recommendedTo,
		FavoritedBy:      favoritedBy,
		AddedBy:          addedBy,
		Voted:            voted,
	}, nil
}

// browseSeq starts browsing b with the paging flags applied
func browseSeq[T any, F query.Encoder](ctx context.Context, b sankaku.Browser[T, F], filters F) (iter.Seq2[T, error], error) {
	var opts []paginator.Option
	if startPage > 0 {
		opts = append(opts, paginator.WithPage(startPage))
	}

	if rangeSpec == "" {
		return b.Browse(ctx, filters, opts...), nil
	}

	start, stop, step, err := parseRange(rangeSpec)
	if err != nil {
		return nil, err
	}
	r, err := b.Range(filters, start, stop, step, opts...)
	if err != nil {
		return nil, err
	}
	return r.All(ctx), nil
}

// parseRange parses "start:stop[:step]"
func parseRange(s string) (start, stop, step int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid range %q: want start:stop[:step]", s)
	}

	bounds := make([]int, len(parts))
	for i, p := range parts {
		if bounds[i], err = strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return 0, 0, 0, fmt.Errorf("invalid range %q: %w", s, err)
		}
	}

	step = 1
	if len(bounds) == 3 {
		step = bounds[2]
	}
	return bounds[0], bounds[1], step, nil
}

func parseRating(s string) (models.Rating, error) {
	if s == "" {
		return "", nil
	}
	r, ok := models.ParseRating(s)
	if !ok {
		return "", fmt.Errorf("unknown rating %q", s)
	}
	return r, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{query.DateLayout, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD or YYYY-MM-DDTHH:MM", s)
}
