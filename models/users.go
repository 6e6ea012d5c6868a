package models

import (
	"encoding/json"
	"fmt"
)

// Author represents the user credited for a post, wiki page or comment
type Author struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	AvatarRating Rating `json:"avatar_rating" validate:"omitempty,oneof=s q e"`
}

// User represents a public user profile
type User struct {
	ID                int       `json:"id" validate:"required"`
	Name              string    `json:"name" validate:"required"`
	Avatar            string    `json:"avatar_url"`
	AvatarRating      Rating    `json:"avatar_rating" validate:"omitempty,oneof=s q e"`
	Level             UserLevel `json:"level"`
	UploadLimit       int       `json:"upload_limit"`
	CreatedAt         Timestamp `json:"created_at"`
	LastLoggedInAt    Timestamp `json:"last_logged_in_at"`
	FavsArePrivate    bool      `json:"favs_are_private"`
	PostUploadCount   int       `json:"post_upload_count"`
	PoolUploadCount   int       `json:"pool_upload_count"`
	CommentCount      int       `json:"comment_count"`
	PostUpdateCount   int       `json:"post_update_count"`
	NoteUpdateCount   int       `json:"note_update_count"`
	WikiUpdateCount   int       `json:"wiki_update_count"`
	ForumPostCount    int       `json:"forum_post_count"`
	PoolUpdateCount   int       `json:"pool_update_count"`
	SeriesUpdateCount int       `json:"series_update_count"`
	TagUpdateCount    int       `json:"tag_update_count"`
	ArtistUpdateCount int       `json:"artist_update_count"`
	ShowPopupVersion  int       `json:"show_popup_version"`
	Credits           int       `json:"credits"`
	CreditsSubs       int       `json:"credits_subs"`
	IsAIBeta          bool      `json:"is_ai_beta"`

	FavoriteCount           *int     `json:"favorite_count"`
	PostFavoriteCount       *int     `json:"post_favorite_count"`
	PoolFavoriteCount       *int     `json:"pool_favorite_count"`
	VoteCount               *int     `json:"vote_count"`
	PostVoteCount           *int     `json:"post_vote_count"`
	PoolVoteCount           *int     `json:"pool_vote_count"`
	RecommendedPostsForUser *int     `json:"recommended_posts_for_user"`
	Subscriptions           []string `json:"subscriptions"`
}

// ExtendedUser represents the profile of the logged-in account
type ExtendedUser struct {
	User

	Email                   string          `json:"email"`
	HideAds                 bool            `json:"hide_ads"`
	SubscriptionLevel       int             `json:"subscription_level"`
	FilterContent           bool            `json:"filter_content"`
	HasMail                 bool            `json:"has_mail"`
	ReceiveDmails           bool            `json:"receive_dmails"`
	EmailVerificationStatus string          `json:"email_verification_status"`
	IsVerified              bool            `json:"is_verified"`
	VerificationsCount      int             `json:"verifications_count"`
	BlacklistIsHidden       bool            `json:"blacklist_is_hidden"`
	BlacklistedTags         BlacklistedTags `json:"blacklisted_tags"`
	Blacklisted             []string        `json:"blacklisted"`
	MFAMethod               int             `json:"mfa_method"`
}

// BlacklistedTags is a flat tag list decoded from the API's [["a"],["b"]] form
type BlacklistedTags []string

// UnmarshalJSON implements json.Unmarshaler
func (b *BlacklistedTags) UnmarshalJSON(data []byte) error {
	var nested []json.RawMessage
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("invalid blacklisted tags: %w", err)
	}

	tags := make(BlacklistedTags, 0, len(nested))
	for _, raw := range nested {
		var group []string
		if err := json.Unmarshal(raw, &group); err == nil {
			if len(group) > 0 {
				tags = append(tags, group[0])
			}
			continue
		}
		var tag string
		if err := json.Unmarshal(raw, &tag); err != nil {
			return fmt.Errorf("invalid blacklisted tag %s: %w", raw, err)
		}
		tags = append(tags, tag)
	}
	*b = tags
	return nil
}
