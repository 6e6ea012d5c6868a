package models

// BookState is the reading progress of the logged-in user in a book
type BookState struct {
	CurrentPage int       `json:"current_page"`
	Sequence    int       `json:"sequence"`
	PostID      int       `json:"post_id"`
	SeriesID    *int      `json:"series_id"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
	Percent     int       `json:"percent"`
}

// PageBook represents a book (pool) as listed on the book pages
type PageBook struct {
	ID               int        `json:"id" validate:"required"`
	Name             *string    `json:"name"`
	NameEn           *string    `json:"name_en"`
	NameJa           *string    `json:"name_ja"`
	Description      string     `json:"description"`
	DescriptionEn    *string    `json:"description_en"`
	DescriptionJa    *string    `json:"description_ja"`
	CreatedAt        Timestamp  `json:"created_at"`
	UpdatedAt        Timestamp  `json:"updated_at"`
	Author           *Author    `json:"author"`
	IsPublic         bool       `json:"is_public"`
	IsActive         bool       `json:"is_active"`
	IsFlagged        bool       `json:"is_flagged"`
	PostCount        int        `json:"post_count"`
	PagesCount       int        `json:"pages_count"`
	VisiblePostCount int        `json:"visible_post_count"`
	IsIntact         bool       `json:"is_intact"`
	Rating           *Rating    `json:"rating"`
	Reactions        []any      `json:"reactions"`
	ParentID         *int       `json:"parent_id"`
	HasChildren      *bool      `json:"has_children"`
	IsRatingLocked   bool       `json:"is_rating_locked"`
	FavCount         int        `json:"fav_count"`
	VoteCount        int        `json:"vote_count"`
	TotalScore       int        `json:"total_score"`
	CommentCount     *int       `json:"comment_count"`
	Tags             []PostTag  `json:"tags"`
	PostTags         []PostTag  `json:"post_tags"`
	ArtistTags       []PostTag  `json:"artist_tags"`
	GenreTags        []PostTag  `json:"genre_tags"`
	IsFavorited      bool       `json:"is_favorited"`
	UserVote         *int       `json:"user_vote"`
	Posts            []*Post    `json:"posts"`
	FileURL          *string    `json:"file_url"`
	SampleURL        *string    `json:"sample_url"`
	PreviewURL       *string    `json:"preview_url"`
	CoverPost        *Post      `json:"cover_post"`
	CoverPostID      *int       `json:"cover_post_id"`
	Reading          *BookState `json:"reading"`
	IsPremium        bool       `json:"is_premium"`
	IsPending        bool       `json:"is_pending"`
	IsRaw            bool       `json:"is_raw"`
	IsTrial          bool       `json:"is_trial"`
	RedirectToSignup bool       `json:"redirect_to_signup"`
	Locale           string     `json:"locale"`
	IsDeleted        bool       `json:"is_deleted"`
	ParentPool       *PageBook  `json:"parent_pool"`
}

// Title returns the first non-empty book name
func (b PageBook) Title() string {
	for _, name := range []*string{b.Name, b.NameEn, b.NameJa} {
		if name != nil && *name != "" {
			return *name
		}
	}
	return ""
}

// Book represents a single book with its child pools
type Book struct {
	PageBook

	ChildPools    []PageBook `json:"child_pools"`
	FlaggedByUser bool       `json:"flagged_by_user"`
	PremPostCount int        `json:"prem_post_count"`
}
