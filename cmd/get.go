package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/sankaku/models"
	"github.com/s0up4200/sankaku/sankaku"
)

// maxConcurrentFetches bounds the requests of "post ID..."
const maxConcurrentFetches = 3

var (
	withComments bool
	similarCount int
	booksOnly    bool
)

var postCmd = &cobra.Command{
	Use:   "post ID...",
	Short: "Show posts by id",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPost,
}

var aiPostCmd = &cobra.Command{
	Use:   "ai-post ID",
	Short: "Show an AI generated post by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		post, err := client.GetAIPost(cmd.Context(), id)
		if err != nil {
			return err
		}
		printAIPost(cmd.OutOrStdout(), post)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag NAME|ID",
	Short: "Show a tag and its wiki page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, err := client.GetTag(cmd.Context(), sankaku.ParseRef(args[0]))
		if err != nil {
			return err
		}
		printWikiTag(cmd.OutOrStdout(), tag)
		return nil
	},
}

var bookCmd = &cobra.Command{
	Use:   "book ID",
	Short: "Show a book (pool) by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		book, err := client.GetBook(cmd.Context(), id)
		if err != nil {
			return err
		}
		printFullBook(cmd.OutOrStdout(), book)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user NAME|ID",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := client.GetUser(cmd.Context(), sankaku.ParseRef(args[0]))
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments POST_ID",
	Short: "List the comments of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return printAll(cmd, client.GetPostComments(cmd.Context(), id), printComment)
	},
}

var relatedBooksCmd = &cobra.Command{
	Use:   "related-books POST_ID",
	Short: "List the books containing a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return printAll(cmd, client.GetRelatedBooks(cmd.Context(), id), printBook)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the profile of the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := client.Profile()
		if profile == nil {
			return fmt.Errorf("not logged in: set auth.login and auth.password or auth.access_token")
		}
		printProfile(cmd.OutOrStdout(), *profile)
		return nil
	},
}

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List the favorites of the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if booksOnly {
			return printAll(cmd, client.GetFavoritedBooks(cmd.Context()), printBook)
		}
		return printAll(cmd, client.GetFavoritedPosts(cmd.Context()), printPost)
	},
}

var recommendedCmd = &cobra.Command{
	Use:   "recommended",
	Short: "List recommendations for the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if booksOnly {
			return printAll(cmd, client.GetRecommendedBooks(cmd.Context()), printBook)
		}
		return printAll(cmd, client.GetRecommendedPosts(cmd.Context()), printPost)
	},
}

var readingCmd = &cobra.Command{
	Use:   "reading",
	Short: "List the books the logged-in account read recently",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAll(cmd, client.GetRecentlyReadBooks(cmd.Context()), printBook)
	},
}

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "List the highest rated posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAll(cmd, client.GetTopPosts(cmd.Context()), printPost)
	},
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List the most popular posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAll(cmd, client.GetPopularPosts(cmd.Context()), printPost)
	},
}

func init() {
	postCmd.Flags().BoolVar(&withComments, "comments", false, "include comments")
	postCmd.Flags().IntVar(&similarCount, "similar", 0, "include up to N similar posts")

	for _, c := range []*cobra.Command{favoritesCmd, recommendedCmd} {
		c.Flags().BoolVar(&booksOnly, "books", false, "list books instead of posts")
	}

	for _, c := range []*cobra.Command{commentsCmd, relatedBooksCmd, favoritesCmd, recommendedCmd, readingCmd, topCmd, popularCmd} {
		c.Flags().IntVarP(&maxItems, "max", "n", 20, "maximum number of items to print (0 for all)")
	}

	rootCmd.AddCommand(postCmd, aiPostCmd, tagCmd, bookCmd, userCmd, commentsCmd, relatedBooksCmd,
		whoamiCmd, favoritesCmd, recommendedCmd, readingCmd, topCmd, popularCmd)
}

// runPost fetches the posts concurrently and prints them in argument order
func runPost(cmd *cobra.Command, args []string) error {
	ids := make([]int, len(args))
	for i, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	var opts []sankaku.GetPostOption
	if withComments {
		opts = append(opts, sankaku.WithComments())
	}
	if similarCount > 0 {
		opts = append(opts, sankaku.WithSimilarPosts(similarCount))
	}

	posts := make([]models.Post, len(ids))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentFetches)

	for i, id := range ids {
		g.Go(func() error {
			post, err := client.GetPost(ctx, id, opts...)
			if err != nil {
				return fmt.Errorf("post %d: %w", id, err)
			}
			posts[i] = post
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, post := range posts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printPostDetails(w, post)
	}

	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
