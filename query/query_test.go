package query

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/sankaku/apierr"
	"github.com/s0up4200/sankaku/models"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPostFiltersEncode(t *testing.T) {
	day := time.Date(2023, 4, 16, 19, 3, 0, 0, time.UTC)
	nextDay := day.Add(24 * time.Hour)

	tests := []struct {
		name    string
		filters PostFilters
		want    url.Values
	}{
		{
			name:    "empty filters contribute nothing",
			filters: PostFilters{},
			want:    url.Values{},
		},
		{
			name:    "enum filters",
			filters: PostFilters{Order: models.PostOrderPopularity, Rating: models.RatingSafe},
			want:    url.Values{"tags": {"order:popularity rating:s"}},
		},
		{
			name:    "image file type is suppressed",
			filters: PostFilters{FileType: models.FileTypeImage, Rating: models.RatingExplicit},
			want:    url.Values{"tags": {"rating:e"}},
		},
		{
			name:    "gif file type",
			filters: PostFilters{FileType: models.FileTypeGIF},
			want:    url.Values{"tags": {"file_type:gif"}},
		},
		{
			name:    "date range",
			filters: PostFilters{Date: []time.Time{day, nextDay}},
			want:    url.Values{"tags": {"date:2023-04-16T19:03..2023-04-17T19:03"}},
		},
		{
			name:    "single date has no separator",
			filters: PostFilters{Date: []time.Time{day}},
			want:    url.Values{"tags": {"date:2023-04-16T19:03"}},
		},
		{
			name:    "video duration range",
			filters: PostFilters{FileType: models.FileTypeVideo, VideoDuration: []int{1, 60}},
			want:    url.Values{"tags": {"file_type:video duration:1..60"}},
		},
		{
			name:    "single video duration has no separator",
			filters: PostFilters{FileType: models.FileTypeVideo, VideoDuration: []int{5}},
			want:    url.Values{"tags": {"file_type:video duration:5"}},
		},
		{
			name:    "fixed prefixes",
			filters: PostFilters{RecommendedFor: "alice", FavoritedBy: "bob", Voted: "carol"},
			want:    url.Values{"tags": {"recommended_for:alice fav:bob voted:carol"}},
		},
		{
			name:    "uploaders repeat the user prefix",
			filters: PostFilters{AddedBy: []string{"alice", "bob"}},
			want:    url.Values{"tags": {"user:alice user:bob"}},
		},
		{
			name:    "hide posts in books is a top-level key",
			filters: PostFilters{HidePostsInBooks: models.HideAlways},
			want:    url.Values{"hide_posts_in_books": {"always"}},
		},
		{
			name:    "file size and threshold",
			filters: PostFilters{Threshold: 3, FileSize: models.AspectRatio16x9},
			want:    url.Values{"tags": {"threshold:3 16:9_aspect_ratio"}},
		},
		{
			name: "tags come first and keep wire order",
			filters: PostFilters{
				Tags:          []string{"animated", " ", "tail"},
				Voted:         "dave",
				Order:         models.PostOrderQuality,
				FileType:      models.FileTypeVideo,
				VideoDuration: []int{10, 20},
				AddedBy:       []string{"eve"},
				Rating:        models.RatingQuestionable,
			},
			want: url.Values{"tags": {"animated tail order:quality rating:q file_type:video duration:10..20 user:eve voted:dave"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filters.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVideoDurationRequiresVideo(t *testing.T) {
	for _, ft := range []models.FileType{"", models.FileTypeImage, models.FileTypeGIF} {
		t.Run(string(ft), func(t *testing.T) {
			_, err := PostFilters{FileType: ft, VideoDuration: []int{1, 5}}.Encode()
			require.Error(t, err)
			assert.ErrorIs(t, err, apierr.ErrVideoDuration)
		})
	}
}

func TestPostFiltersValidation(t *testing.T) {
	tests := []struct {
		name    string
		filters PostFilters
	}{
		{name: "threshold too high", filters: PostFilters{Threshold: 101}},
		{name: "negative threshold", filters: PostFilters{Threshold: -1}},
		{name: "unknown rating", filters: PostFilters{Rating: "x"}},
		{name: "too many dates", filters: PostFilters{Date: []time.Time{{}, {}, {}}}},
		{name: "unknown hide mode", filters: PostFilters{HidePostsInBooks: "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.filters.Encode()
			require.Error(t, err)
			assert.ErrorIs(t, err, apierr.ErrConfig)
		})
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	f := PostFilters{
		Tags:          []string{"tail"},
		AddedBy:       []string{"alice"},
		FileType:      models.FileTypeVideo,
		VideoDuration: []int{5},
	}

	first, err := f.Encode()
	require.NoError(t, err)
	second, err := f.Encode()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"tail"}, f.Tags)
}

func TestBookFiltersEncode(t *testing.T) {
	got, err := BookFilters{
		Tags:           []string{"read:@1@"},
		Order:          models.BookOrderDate,
		Rating:         models.RatingSafe,
		RecommendedFor: "alice",
		FavoritedBy:    "bob",
		AddedBy:        []string{"carol", "dave"},
		Voted:          "eve",
	}.Encode()
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"tags": {"read:@1@ order:date rating:s recommended_for:alice fav:bob user:carol user:dave voted:eve"},
	}, got)

	empty, err := BookFilters{}.Encode()
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTagFiltersEncode(t *testing.T) {
	tests := []struct {
		name    string
		filters TagFilters
		want    url.Values
	}{
		{name: "empty", filters: TagFilters{}, want: url.Values{}},
		{
			name:    "type order rating amount",
			filters: TagFilters{TagType: ptr(models.TagTypeGeneral), Order: models.TagOrderQuality, Rating: models.RatingSafe, MaxPostCount: ptr(0)},
			want:    url.Values{"types[]": {"0"}, "order": {"quality"}, "rating": {"s"}, "amount": {"0"}},
		},
		{
			name:    "sort direction defaults to desc",
			filters: TagFilters{SortParameter: models.SortByPostCount},
			want:    url.Values{"sortBy": {"count"}, "sortDirection": {"desc"}},
		},
		{
			name:    "explicit sort direction",
			filters: TagFilters{SortParameter: models.SortByName, SortDirection: models.SortAsc},
			want:    url.Values{"sortBy": {"name"}, "sortDirection": {"asc"}},
		},
		{
			name:    "direction without parameter is ignored",
			filters: TagFilters{SortDirection: models.SortAsc},
			want:    url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.filters.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TagFilters{MaxPostCount: ptr(-1)}.Encode()
	assert.ErrorIs(t, err, apierr.ErrConfig)
}

func TestUserFiltersEncode(t *testing.T) {
	got, err := UserFilters{Order: models.UserOrderNewest, Level: ptr(models.UserLevelUnactivated)}.Encode()
	require.NoError(t, err)
	assert.Equal(t, url.Values{"order": {"newest"}, "level": {"0"}}, got)

	got, err = None{}.Encode()
	require.NoError(t, err)
	assert.Empty(t, got)
}
