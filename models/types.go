package models

import "strings"

// Rating represents the content rating of a post, book or tag
type Rating string

const (
	// RatingSafe marks safe content
	RatingSafe Rating = "s"
	// RatingQuestionable marks questionable content
	RatingQuestionable Rating = "q"
	// RatingExplicit marks explicit content
	RatingExplicit Rating = "e"
)

// String returns the wire value of the rating
func (r Rating) String() string {
	return string(r)
}

// Valid reports whether r is a known rating
func (r Rating) Valid() bool {
	switch r {
	case RatingSafe, RatingQuestionable, RatingExplicit:
		return true
	default:
		return false
	}
}

// ParseRating accepts both wire values ("s") and names ("safe")
func ParseRating(s string) (Rating, bool) {
	switch strings.ToLower(s) {
	case "s", "safe":
		return RatingSafe, true
	case "q", "questionable":
		return RatingQuestionable, true
	case "e", "explicit":
		return RatingExplicit, true
	default:
		return "", false
	}
}

// FileType represents the kind of media file attached to a post
type FileType string

const (
	// FileTypeImage covers jpeg, png and webp files
	FileTypeImage FileType = "image"
	// FileTypeGIF covers gif files
	FileTypeGIF FileType = "gif"
	// FileTypeVideo covers mp4 and webm files
	FileTypeVideo FileType = "video"
)

// FileSize represents a file size or aspect ratio search token
type FileSize string

const (
	FileSizeLarge     FileSize = "large_filesize"
	FileSizeHuge      FileSize = "extremely_large_filesize"
	FileSizeLong      FileSize = "long_image"
	FileSizeWallpaper FileSize = "wallpaper"
	AspectRatio16x9   FileSize = "16:9_aspect_ratio"
	AspectRatio4x3    FileSize = "4:3_aspect_ratio"
	AspectRatio3x2    FileSize = "3:2_aspect_ratio"
	AspectRatio1x1    FileSize = "1:1_aspect_ratio"
)

// PostOrder represents the sort order of posts
type PostOrder string

const (
	PostOrderPopularity        PostOrder = "popularity"
	PostOrderDate              PostOrder = "date"
	PostOrderQuality           PostOrder = "quality"
	PostOrderRandom            PostOrder = "random"
	PostOrderRecentlyFavorited PostOrder = "recently_favorited"
	PostOrderRecentlyVoted     PostOrder = "recently_voted"
)

// BookOrder represents the sort order of books
type BookOrder string

const (
	BookOrderPopularity        BookOrder = "popularity"
	BookOrderDate              BookOrder = "date"
	BookOrderQuality           BookOrder = "quality"
	BookOrderRandom            BookOrder = "random"
	BookOrderRecentlyFavorited BookOrder = "recently_favorited"
	BookOrderRecentlyVoted     BookOrder = "recently_voted"
)

// HidePostsInBooks controls whether posts belonging to books are listed
type HidePostsInBooks string

const (
	HideInLargerTags HidePostsInBooks = "in-larger-tags"
	HideAlways       HidePostsInBooks = "always"
)

// TagOrder represents the sort order of tags
type TagOrder string

const (
	TagOrderPopularity TagOrder = "popularity"
	TagOrderQuality    TagOrder = "quality"
)

// SortParameter represents the column tags are sorted by
type SortParameter string

const (
	SortByName      SortParameter = "name"
	SortByNameJa    SortParameter = "name_ja"
	SortByType      SortParameter = "type"
	SortByRating    SortParameter = "rating"
	SortByBookCount SortParameter = "pool_count"
	SortByPostCount SortParameter = "count"
)

// SortDirection represents ascending or descending sorting
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// TagType represents the category of a tag
type TagType int

const (
	TagTypeGeneral   TagType = 0
	TagTypeArtist    TagType = 1
	TagTypeStudio    TagType = 2
	TagTypeCopyright TagType = 3
	TagTypeCharacter TagType = 4
	TagTypeGenre     TagType = 5
	TagTypeMedium    TagType = 8
	TagTypeMeta      TagType = 9
)

var tagTypeNames = map[TagType]string{
	TagTypeGeneral:   "general",
	TagTypeArtist:    "artist",
	TagTypeStudio:    "studio",
	TagTypeCopyright: "copyright",
	TagTypeCharacter: "character",
	TagTypeGenre:     "genre",
	TagTypeMedium:    "medium",
	TagTypeMeta:      "meta",
}

// String returns the lowercase name of the tag type
func (t TagType) String() string {
	if name, ok := tagTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseTagType resolves a tag type from its name
func ParseTagType(s string) (TagType, bool) {
	s = strings.ToLower(s)
	for t, name := range tagTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// UserOrder represents the sort order of users
type UserOrder string

const (
	UserOrderPosts     UserOrder = "post_upload_count"
	UserOrderFavorites UserOrder = "favorite_count"
	UserOrderName      UserOrder = "name"
	UserOrderNewest    UserOrder = "newest"
	UserOrderOldest    UserOrder = "oldest"
	UserOrderLastSeen  UserOrder = "active"
)

// UserLevel represents the privilege level of an account
type UserLevel int

const (
	UserLevelUnactivated UserLevel = 0
	UserLevelBlocked     UserLevel = 10
	UserLevelMember      UserLevel = 20
	UserLevelPrivileged  UserLevel = 30
	UserLevelContributor UserLevel = 33
	UserLevelJanitor     UserLevel = 35
	UserLevelModerator   UserLevel = 40
	UserLevelSystem      UserLevel = 45
	UserLevelAdmin       UserLevel = 50
)

var userLevelNames = map[UserLevel]string{
	UserLevelUnactivated: "unactivated",
	UserLevelBlocked:     "blocked",
	UserLevelMember:      "member",
	UserLevelPrivileged:  "privileged",
	UserLevelContributor: "contributor",
	UserLevelJanitor:     "janitor",
	UserLevelModerator:   "moderator",
	UserLevelSystem:      "system",
	UserLevelAdmin:       "admin",
}

// String returns the lowercase name of the level
func (l UserLevel) String() string {
	if name, ok := userLevelNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseUserLevel resolves a user level from its name
func ParseUserLevel(s string) (UserLevel, bool) {
	s = strings.ToLower(s)
	for l, name := range userLevelNames {
		if name == s {
			return l, true
		}
	}
	return 0, false
}
