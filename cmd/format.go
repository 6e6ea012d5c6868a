package cmd

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/sankaku/models"
)

const dateFormat = "2006-01-02"

// printAll prints the items of seq, stopping after --max items
func printAll[T any](cmd *cobra.Command, seq iter.Seq2[T, error], printItem func(io.Writer, T)) error {
	w := cmd.OutOrStdout()

	count := 0
	for item, err := range seq {
		if err != nil {
			return err
		}
		printItem(w, item)
		count++
		if maxItems > 0 && count >= maxItems {
			break
		}
	}

	if count == 0 {
		fmt.Fprintln(w, "No results.")
	}
	logger.Debug().Int("count", count).Msg("Listed items")

	return nil
}

func printPost(w io.Writer, p models.Post) {
	fmt.Fprintf(w, "• #%d [%s] %dx%d %s  fav:%d score:%d", p.ID, p.Rating, p.Width, p.Height, p.Extension(), p.FavCount, p.TotalScore)
	if p.VideoDuration != nil {
		fmt.Fprintf(w, " %.0fs", *p.VideoDuration)
	}
	fmt.Fprintln(w)
}

func printPostDetails(w io.Writer, p models.Post) {
	printPost(w, p)
	fmt.Fprintf(w, "  Created: %s by %s\n", p.CreatedAt.Format(dateFormat), orDash(p.Author.Name))
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  Tags: %s\n", strings.Join(p.TagNames(), ", "))
	}
	if p.FileURL != nil {
		fmt.Fprintf(w, "  File: %s\n", *p.FileURL)
	}
	if p.Source != nil && *p.Source != "" {
		fmt.Fprintf(w, "  Source: %s\n", *p.Source)
	}
	if len(p.SimilarPosts) > 0 {
		fmt.Fprintf(w, "  Similar (%d):\n", len(p.SimilarPosts))
		for _, s := range p.SimilarPosts {
			fmt.Fprint(w, "    ")
			printPost(w, s)
		}
	}
	if len(p.Comments) > 0 {
		fmt.Fprintf(w, "  Comments (%d):\n", len(p.Comments))
		for _, c := range p.Comments {
			fmt.Fprint(w, "    ")
			printComment(w, c)
		}
	}
}

func printAIPost(w io.Writer, p models.AIPost) {
	fmt.Fprintf(w, "• #%d [%s] %dx%d %s  created %s", p.ID, p.Rating, p.Width, p.Height, p.Extension(), p.CreatedAt.Format(dateFormat))
	if p.GenerationDirectives != nil && p.GenerationDirectives.Prompt != "" {
		fmt.Fprintf(w, "\n  Prompt: %s", p.GenerationDirectives.Prompt)
	}
	fmt.Fprintln(w)
}

func printTag(w io.Writer, t models.PageTag) {
	fmt.Fprintf(w, "• %s (%s) posts:%d books:%d\n", t.Name, t.Type, t.PostCount, t.PoolCount)
}

func printWikiTag(w io.Writer, t models.WikiTag) {
	fmt.Fprintf(w, "%s (%s) #%d\n", t.Name, t.Type, t.ID)
	fmt.Fprintf(w, "  Posts: %d  Books: %d\n", t.PostCount, t.PoolCount)
	for _, group := range []struct {
		label string
		tags  []models.PostTag
	}{
		{"Related", t.RelatedTags},
		{"Parents", t.ParentTags},
		{"Children", t.ChildTags},
		{"Aliases", t.AliasTags},
		{"Implies", t.ImpliedTags},
	} {
		if len(group.tags) == 0 {
			continue
		}
		names := make([]string, len(group.tags))
		for i, tag := range group.tags {
			names[i] = tag.Name
		}
		fmt.Fprintf(w, "  %s: %s\n", group.label, strings.Join(names, ", "))
	}
	if t.Wiki.Body != "" {
		fmt.Fprintf(w, "\n%s\n", t.Wiki.Body)
	}
}

func printBook(w io.Writer, b models.PageBook) {
	rating := "-"
	if b.Rating != nil {
		rating = b.Rating.String()
	}
	fmt.Fprintf(w, "• #%d %s [%s] pages:%d fav:%d\n", b.ID, orDash(b.Title()), rating, b.PostCount, b.FavCount)
}

func printFullBook(w io.Writer, b models.Book) {
	printBook(w, b.PageBook)
	if b.Author != nil {
		fmt.Fprintf(w, "  Author: %s\n", b.Author.Name)
	}
	fmt.Fprintf(w, "  Created: %s\n", b.CreatedAt.Format(dateFormat))
	if b.Description != "" {
		fmt.Fprintf(w, "  Description: %s\n", b.Description)
	}
	if b.Reading != nil {
		fmt.Fprintf(w, "  Reading: page %d (%d%%)\n", b.Reading.CurrentPage, b.Reading.Percent)
	}
	for _, child := range b.ChildPools {
		fmt.Fprint(w, "  ")
		printBook(w, child)
	}
}

func printUser(w io.Writer, u models.User) {
	fmt.Fprintf(w, "• %s #%d (%s) uploads:%d joined %s\n", u.Name, u.ID, u.Level, u.PostUploadCount, u.CreatedAt.Format(dateFormat))
}

func printProfile(w io.Writer, u models.ExtendedUser) {
	printUser(w, u.User)
	if u.Email != "" {
		fmt.Fprintf(w, "  Email: %s\n", u.Email)
	}
	fmt.Fprintf(w, "  Subscription level: %d\n", u.SubscriptionLevel)
	if len(u.BlacklistedTags) > 0 {
		fmt.Fprintf(w, "  Blacklisted tags: %s\n", strings.Join(u.BlacklistedTags, ", "))
	}
}

func printComment(w io.Writer, c models.Comment) {
	fmt.Fprintf(w, "• %s (%s): %s\n", orDash(c.Author.Name), c.CreatedAt.Format(dateFormat), strings.TrimSpace(c.Body))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
