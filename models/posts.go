package models

import "strings"

// MIMEType is the "file_type" of a post, e.g. "image/jpeg"
type MIMEType string

// FileType returns the media kind before the slash
func (m MIMEType) FileType() FileType {
	if m == "" {
		return ""
	}
	kind, _, _ := strings.Cut(string(m), "/")
	return FileType(kind)
}

// Extension returns the subtype after the slash
func (m MIMEType) Extension() string {
	if m == "" {
		return ""
	}
	if i := strings.LastIndexByte(string(m), '/'); i >= 0 {
		return string(m[i+1:])
	}
	return string(m)
}

// BasePost holds the fields every kind of post carries
type BasePost struct {
	ID         int       `json:"id" validate:"required"`
	CreatedAt  Timestamp `json:"created_at" validate:"required"`
	Rating     Rating    `json:"rating" validate:"omitempty,oneof=s q e"`
	Status     string    `json:"status"`
	Author     Author    `json:"author"`
	FileURL    *string   `json:"file_url"`
	PreviewURL *string   `json:"preview_url"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	FileSize   int       `json:"file_size"`
	MIME       MIMEType  `json:"file_type"`
	MD5        string    `json:"md5"`
	Tags       []PostTag `json:"tags"`
}

// FileType returns the media kind of the attached file
func (p BasePost) FileType() FileType {
	return p.MIME.FileType()
}

// Extension returns the extension of the attached file
func (p BasePost) Extension() string {
	return p.MIME.Extension()
}

// TagNames returns the names of all tags on the post
func (p BasePost) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// Post represents a regular post
type Post struct {
	BasePost

	SampleURL            *string               `json:"sample_url"`
	SampleWidth          int                   `json:"sample_width"`
	SampleHeight         int                   `json:"sample_height"`
	PreviewWidth         *int                  `json:"preview_width"`
	PreviewHeight        *int                  `json:"preview_height"`
	HasChildren          bool                  `json:"has_children"`
	HasComments          bool                  `json:"has_comments"`
	HasNotes             bool                  `json:"has_notes"`
	IsFavorited          bool                  `json:"is_favorited"`
	UserVote             *int                  `json:"user_vote"`
	ParentID             *int                  `json:"parent_id"`
	Change               *int                  `json:"change"`
	FavCount             int                   `json:"fav_count"`
	RecommendedPosts     int                   `json:"recommended_posts"`
	RecommendedScore     int                   `json:"recommended_score"`
	VoteCount            int                   `json:"vote_count"`
	TotalScore           int                   `json:"total_score"`
	CommentCount         *int                  `json:"comment_count"`
	Source               *string               `json:"source"`
	InVisiblePool        bool                  `json:"in_visible_pool"`
	IsPremium            bool                  `json:"is_premium"`
	IsRatingLocked       bool                  `json:"is_rating_locked"`
	IsNoteLocked         bool                  `json:"is_note_locked"`
	IsStatusLocked       bool                  `json:"is_status_locked"`
	RedirectToSignup     bool                  `json:"redirect_to_signup"`
	Sequence             *int                  `json:"sequence"`
	VideoDuration        *float64              `json:"video_duration"`
	GenerationDirectives *GenerationDirectives `json:"generation_directives"`

	// Populated only by GetPost with the matching options
	SimilarPosts []Post    `json:"-"`
	Comments     []Comment `json:"-"`
}

// GenerationDirectives describes how an AI-assisted post was produced
type GenerationDirectives struct {
	Tags              []GenerationTag  `json:"tags"`
	AspectRatio       *AspectRatio     `json:"aspect_ratio"`
	Rating            *DirectiveRating `json:"rating"`
	NegativePrompt    *string          `json:"negative_prompt"`
	NaturalInput      *string          `json:"natural_input"`
	DenoisingStrength *int             `json:"denoising_strength"`
}

// GenerationTag is a tag referenced by generation directives
type GenerationTag struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	NameEn       string   `json:"name_en"`
	NameJa       *string  `json:"name_ja"`
	Type         TagType  `json:"type"`
	Count        int      `json:"count"`
	Rating       *Rating  `json:"rating"`
	TagName      string   `json:"tagName"`
	PoolCount    int      `json:"pool_count"`
	PostCount    int      `json:"post_count"`
	SeriesCount  int      `json:"series_count"`
	Translations []string `json:"tag_translations"`
}

// AspectRatio is the requested output shape of a generation
type AspectRatio struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// DirectiveRating is the rating requested for a generation
type DirectiveRating struct {
	Value   string `json:"value"`
	Default string `json:"default"`
}

// AIPost represents a post generated with the site's AI tooling
type AIPost struct {
	BasePost

	UpdatedAt            Timestamp               `json:"updated_at"`
	PostAssociatedID     *int                    `json:"post_associated_id"`
	GenerationDirectives *AIGenerationDirectives `json:"generation_directives"`
}

// AIGenerationDirectives holds the parameters of an AI generation
type AIGenerationDirectives struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Prompt         string  `json:"prompt"`
	BatchSize      int     `json:"batch_size"`
	BatchCount     int     `json:"batch_count"`
	SamplingSteps  int     `json:"sampling_steps"`
	NegativePrompt string  `json:"negative_prompt"`
	Version        *string `json:"version"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        int            `json:"id" validate:"required"`
	CreatedAt Timestamp      `json:"created_at"`
	UpdatedAt Timestamp      `json:"updated_at"`
	PostID    int            `json:"post_id"`
	Author    Author         `json:"author"`
	Body      string         `json:"body"`
	Score     int            `json:"score"`
	ParentID  *int           `json:"parent_id"`
	Children  []Comment      `json:"children"`
	Deleted   bool           `json:"deleted"`
	DeletedBy map[string]any `json:"deleted_by"`
	CanReply  bool           `json:"can_reply"`
	Reason    *string        `json:"reason"`
}
