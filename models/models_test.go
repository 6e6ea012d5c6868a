package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postJSON = `{
	"id": 22144775,
	"rating": "q",
	"status": "active",
	"author": {"id": 2, "name": "anonymous", "avatar": "URL", "avatar_rating": "s"},
	"sample_url": "URL",
	"sample_width": 1399,
	"sample_height": 941,
	"preview_url": "URL",
	"preview_width": 300,
	"preview_height": 202,
	"file_url": "URL",
	"width": 5242,
	"height": 3525,
	"file_size": 8608194,
	"file_type": "image/jpeg",
	"created_at": {"json_class": "Time", "s": 1604093590, "n": 0},
	"has_children": true,
	"has_comments": false,
	"has_notes": false,
	"is_favorited": false,
	"user_vote": null,
	"md5": "ab32849a455e9fca5e5fa24bd036d3e3",
	"parent_id": null,
	"change": 56235768,
	"fav_count": 92,
	"recommended_posts": -1,
	"recommended_score": 0,
	"vote_count": 20,
	"total_score": 94,
	"comment_count": null,
	"source": "",
	"in_visible_pool": false,
	"is_premium": false,
	"is_rating_locked": false,
	"is_note_locked": false,
	"is_status_locked": false,
	"redirect_to_signup": false,
	"sequence": null,
	"generation_directives": null,
	"tags": [],
	"video_duration": null
}`

const extendedUserJSON = `{
	"id": 17488,
	"name": "ABC",
	"avatar_url": "",
	"avatar_rating": "e",
	"last_logged_in_at": "2022-04-09T17:31:47.658Z",
	"favorite_count": 143,
	"subscriptions": [],
	"level": 20,
	"upload_limit": 381,
	"created_at": "2015-07-08T23:57:16.723Z",
	"favs_are_private": true,
	"credits": 0,
	"is_ai_beta": false,
	"email": "ABCDEFU@eksdee.xyz",
	"has_mail": false,
	"receive_dmails": true,
	"email_verification_status": "verified",
	"is_verified": true,
	"blacklist_is_hidden": true,
	"blacklisted_tags": [["loli"], ["shota"], ["yaoi"]],
	"blacklisted": ["loli\nshota\nyaoi"],
	"mfa_method": 1
}`

func TestDecodePost(t *testing.T) {
	post, err := Decode[Post]([]byte(postJSON), true)
	require.NoError(t, err)

	assert.Equal(t, 22144775, post.ID)
	assert.Equal(t, RatingQuestionable, post.Rating)
	assert.Equal(t, FileTypeImage, post.FileType())
	assert.Equal(t, "jpeg", post.Extension())
	assert.Equal(t, time.Date(2020, 10, 30, 21, 33, 10, 0, time.UTC), post.CreatedAt.Time)
	assert.Equal(t, 2, post.Author.ID)
	assert.Equal(t, RatingSafe, post.Author.AvatarRating)
	assert.Nil(t, post.UserVote)
	require.NotNil(t, post.Change)
	assert.Equal(t, 56235768, *post.Change)
	assert.Nil(t, post.VideoDuration)
	assert.Empty(t, post.Tags)
}

func TestDecodeUnknownFields(t *testing.T) {
	raw := []byte(`{"id": 1, "created_at": "2023-04-16T19:03:19.300Z", "brand_new_field": 42}`)

	t.Run("lenient", func(t *testing.T) {
		post, err := Decode[Post](raw, false)
		require.NoError(t, err)
		assert.Equal(t, 1, post.ID)
	})

	t.Run("strict", func(t *testing.T) {
		_, err := Decode[Post](raw, true)
		require.Error(t, err)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "models.Post", de.Type)
		assert.Contains(t, err.Error(), "brand_new_field")
	})
}

func TestDecodeRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "missing id", raw: `{"created_at": "2023-04-16T19:03:19.300Z"}`},
		{name: "missing created_at", raw: `{"id": 5}`},
		{name: "null created_at", raw: `{"id": 5, "created_at": {"json_class": "Time", "s": null, "n": 0}}`},
		{name: "unknown rating", raw: `{"id": 5, "created_at": "2023-04-16T19:03:19.300Z", "rating": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode[Post]([]byte(tt.raw), false)
			assert.Error(t, err)
		})
	}
}

func TestDecodeWrongShape(t *testing.T) {
	_, err := Decode[Post]([]byte(`{"id": "not-a-number"}`), false)
	assert.Error(t, err)

	_, err = DecodeList[Post]([]byte(`{"id": 1}`), false)
	assert.Error(t, err)
}

func TestDecodeList(t *testing.T) {
	raw := []byte(`[
		{"id": 1, "created_at": "2023-04-16T19:03:19.300Z", "file_type": "video/mp4", "video_duration": 12.5},
		{"id": 2, "created_at": {"json_class": "Time", "s": 1675452087, "n": 0}, "file_type": null}
	]`)

	posts, err := DecodeList[Post](raw, false)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, FileTypeVideo, posts[0].FileType())
	assert.Equal(t, "mp4", posts[0].Extension())
	require.NotNil(t, posts[0].VideoDuration)
	assert.InDelta(t, 12.5, *posts[0].VideoDuration, 0.001)

	assert.Equal(t, FileType(""), posts[1].FileType())
	assert.Equal(t, "", posts[1].Extension())

	_, err = DecodeList[Post]([]byte(`[{"id": 1, "created_at": "2023-04-16T19:03:19.300Z"}, {"id": 0}]`), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
}

func TestDecodeComment(t *testing.T) {
	raw := []byte(`{
		"id": 178711,
		"created_at": "2023-04-16T19:03:19.300Z",
		"post_id": 12345,
		"author": {"id": 99123, "name": "abcdef", "avatar": "", "avatar_rating": "q"},
		"body": "Hello, World!",
		"score": 3,
		"parent_id": null,
		"children": [],
		"deleted": false,
		"deleted_by": {},
		"updated_at": "2023-04-25T02:49:36.012Z",
		"can_reply": true,
		"reason": null
	}`)

	c, err := Decode[Comment](raw, true)
	require.NoError(t, err)
	assert.Equal(t, 12345, c.PostID)
	assert.Equal(t, time.Date(2023, 4, 16, 19, 3, 19, 300000000, time.UTC), c.CreatedAt.Time)
	assert.Equal(t, time.Date(2023, 4, 25, 2, 49, 36, 12000000, time.UTC), c.UpdatedAt.Time)
	assert.Nil(t, c.ParentID)
	assert.Empty(t, c.DeletedBy)
}

func TestDecodeAIPost(t *testing.T) {
	raw := []byte(`{
		"id": 131,
		"created_at": {"json_class": "Time", "s": 1675452087, "n": 0},
		"updated_at": {"json_class": "Time", "s": null, "n": 0},
		"rating": "s",
		"status": "active",
		"author": {"id": 1, "name": "System", "avatar": "URL", "avatar_rating": "s"},
		"file_type": "image/png",
		"post_associated_id": null,
		"generation_directives": {
			"width": 512, "height": 768, "prompt": "1girl",
			"batch_size": 1, "batch_count": 1, "sampling_steps": 20,
			"negative_prompt": "", "version": "v1"
		}
	}`)

	post, err := Decode[AIPost](raw, true)
	require.NoError(t, err)
	assert.True(t, post.UpdatedAt.IsZero())
	assert.Equal(t, "png", post.Extension())
	require.NotNil(t, post.GenerationDirectives)
	assert.Equal(t, "1girl", post.GenerationDirectives.Prompt)
	require.NotNil(t, post.GenerationDirectives.Version)
	assert.Equal(t, "v1", *post.GenerationDirectives.Version)
}

func TestDecodeExtendedUser(t *testing.T) {
	user, err := Decode[ExtendedUser]([]byte(extendedUserJSON), true)
	require.NoError(t, err)

	assert.Equal(t, 17488, user.ID)
	assert.Equal(t, "ABC", user.Name)
	assert.Equal(t, UserLevelMember, user.Level)
	assert.Equal(t, RatingExplicit, user.AvatarRating)
	assert.Equal(t, BlacklistedTags{"loli", "shota", "yaoi"}, user.BlacklistedTags)
	assert.Equal(t, []string{"loli\nshota\nyaoi"}, user.Blacklisted)
	require.NotNil(t, user.FavoriteCount)
	assert.Equal(t, 143, *user.FavoriteCount)
	assert.Nil(t, user.PoolVoteCount)
	assert.Equal(t, time.Date(2022, 4, 9, 17, 31, 47, 658000000, time.UTC), user.LastLoggedInAt.Time)
}

func TestIDList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want IDList
	}{
		{name: "comma separated", raw: `"209,3273,104803"`, want: IDList{209, 3273, 104803}},
		{name: "space separated", raw: `"34240 104803"`, want: IDList{34240, 104803}},
		{name: "empty string", raw: `""`, want: nil},
		{name: "null", raw: `null`, want: nil},
		{name: "malformed", raw: `"12,abc"`, want: nil},
		{name: "array", raw: `[1, 2]`, want: IDList{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got IDList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "ruby time", raw: `{"json_class":"Time","s":1604093590,"n":0}`, want: time.Date(2020, 10, 30, 21, 33, 10, 0, time.UTC)},
		{name: "ruby time without seconds", raw: `{"json_class":"Time","s":null,"n":0}`},
		{name: "minute precision", raw: `"2021-09-28 18:07"`, want: time.Date(2021, 9, 28, 18, 7, 0, 0, time.UTC)},
		{name: "rfc3339", raw: `"2023-07-06T12:36:01.109Z"`, want: time.Date(2023, 7, 6, 12, 36, 1, 109000000, time.UTC)},
		{name: "unix seconds", raw: `1604093590`, want: time.Date(2020, 10, 30, 21, 33, 10, 0, time.UTC)},
		{name: "null", raw: `null`},
		{name: "garbage", raw: `"yesterday"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.raw), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v want %v", ts.Time, tt.want)
		})
	}
}

func TestTagAndWiki(t *testing.T) {
	raw := []byte(`{
		"tag": {
			"id": 7, "name": "tail", "name_en": "tail", "name_ja": null, "type": 0,
			"count": 10, "tagName": "tail", "post_count": 10, "pool_count": 1,
			"series_count": 0, "total_post_count": 10, "total_pool_count": 1,
			"related_tags": [], "child_tags": [], "parent_tags": [],
			"alias_tags": [], "implied_tags": [], "translations": []
		},
		"wiki": {
			"id": 99, "title": "tail", "body": "A tail.",
			"created_at": {"json_class": "Time", "s": 1675452087, "n": 0},
			"updated_at": {"json_class": "Time", "s": null, "n": 0},
			"user": {"id": 1, "name": "System", "avatar": "", "avatar_rating": "s"},
			"is_locked": false, "version": 2
		}
	}`)

	tw, err := Decode[TagAndWiki](raw, true)
	require.NoError(t, err)

	tag := tw.WikiTag()
	assert.Equal(t, 7, tag.ID)
	assert.Equal(t, TagTypeGeneral, tag.Type)
	assert.Equal(t, 99, tag.Wiki.ID)
	require.NotNil(t, tag.Wiki.Author)
	assert.Equal(t, "System", tag.Wiki.Author.Name)
}

func TestPageBookTitle(t *testing.T) {
	en := "Book"
	empty := ""
	assert.Equal(t, "Book", PageBook{Name: &empty, NameEn: &en}.Title())
	assert.Equal(t, "", PageBook{}.Title())
}

func TestEnumParsing(t *testing.T) {
	r, ok := ParseRating("explicit")
	assert.True(t, ok)
	assert.Equal(t, RatingExplicit, r)

	_, ok = ParseRating("x")
	assert.False(t, ok)

	tt, ok := ParseTagType("Character")
	assert.True(t, ok)
	assert.Equal(t, TagTypeCharacter, tt)
	assert.Equal(t, "artist", TagTypeArtist.String())

	lvl, ok := ParseUserLevel("moderator")
	assert.True(t, ok)
	assert.Equal(t, UserLevelModerator, lvl)
	assert.Equal(t, "unknown", UserLevel(7).String())
}
