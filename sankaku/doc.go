// Package sankaku provides a typed client for the Sankaku Complex API.
//
// A Client groups one sub-client per record kind (Posts, AI, Tags, Books, Users).
// Each sub-client implements Browser, Getter or both; the Client itself forwards
// the common operations and adds the shorthands that depend on the session.
//
// # Authentication
//
// Browsing works anonymously. Login accepts either a login and password or a
// bare access token; on success the session is swapped in atomically and every
// later request carries its Authorization header. Operations scoped to the
// logged-in user fail with apierr.ErrLoginRequired when there is no session.
//
// # Pagination
//
// Browse operations return an iter.Seq2 that fetches pages lazily and stops at
// the first error. Use the Pages and Range variants for page-level control or
// to read a window of items.
//
// # Usage
//
//	client, err := sankaku.NewClient(sankaku.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	filters := query.PostFilters{Tags: []string{"animated"}, Rating: models.RatingSafe}
//	for post, err := range client.BrowsePosts(ctx, filters) {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(post.ID, post.TagNames())
//	}
package sankaku
