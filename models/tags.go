package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// BaseTag holds the fields every kind of tag carries
type BaseTag struct {
	ID          int     `json:"id" validate:"required"`
	Name        string  `json:"name"`
	NameEn      string  `json:"name_en"`
	NameJa      *string `json:"name_ja"`
	Type        TagType `json:"type"`
	PostCount   int     `json:"post_count"`
	PoolCount   int     `json:"pool_count"`
	SeriesCount int     `json:"series_count"`
	Rating      *Rating `json:"rating"`
}

// PostTag represents a tag attached to a post or book
type PostTag struct {
	BaseTag

	Count          int     `json:"count"`
	TagName        string  `json:"tagName"`
	TotalPostCount int     `json:"total_post_count"`
	TotalPoolCount int     `json:"total_pool_count"`
	Locale         *string `json:"locale"`
	Version        *int    `json:"version"`
}

// PageTag represents a tag as listed on the tag browsing pages
type PageTag struct {
	PostTag

	Translations []PageTagTranslation `json:"translations"`
	RelatedTags  []NestedTag          `json:"related_tags"`
	ChildTags    []NestedTag          `json:"child_tags"`
	ParentTags   []NestedTag          `json:"parent_tags"`
}

// PageTagTranslation is a translated tag name
type PageTagTranslation struct {
	Lang        string `json:"lang"`
	Translation string `json:"translation"`
	RootID      int    `json:"rootId"`
}

// NestedTag represents a tag related to another tag on a tag page
type NestedTag struct {
	ID                     int       `json:"id" validate:"required"`
	Name                   string    `json:"name"`
	NameEn                 string    `json:"nameEn"`
	NameJa                 *string   `json:"nameJa"`
	Type                   TagType   `json:"tagType"`
	PostCount              int       `json:"postCount"`
	PoolCount              int       `json:"poolCount"`
	SeriesCount            int       `json:"seriesCount"`
	Rating                 *Rating   `json:"rating"`
	CachedRelated          IDList    `json:"cachedRelated"`
	CachedRelatedExpiresOn Timestamp `json:"cachedRelatedExpiresOn"`
	PopularityAll          *float64  `json:"scTagPopularityAll"`
	QualityAll             *float64  `json:"scTagQualityAll"`
	PopularityEro          *float64  `json:"scTagPopularityEro"`
	PopularitySafe         *float64  `json:"scTagPopularitySafe"`
	QualityEro             *float64  `json:"scTagQualityEro"`
	QualitySafe            *float64  `json:"scTagQualitySafe"`
	ParentTags             IDList    `json:"parentTags"`
	ChildTags              IDList    `json:"childTags"`
	PremiumPostCount       int       `json:"premPostCount"`
	NonPremiumPostCount    int       `json:"nonPremPostCount"`
	PremiumPoolCount       int       `json:"premPoolCount"`
	NonPremiumPoolCount    int       `json:"nonPremPoolCount"`
	PremiumSeriesCount     int       `json:"premSeriesCount"`
	NonPremiumSeriesCount  int       `json:"nonPremSeriesCount"`
	IsTrained              bool      `json:"isTrained"`
	Child                  int       `json:"child"`
	Parent                 int       `json:"parent"`
	Version                *int      `json:"version"`
}

// IDList is a list of ids the API sends as a comma or space separated string.
// An empty or malformed value decodes to nil.
type IDList []int

// UnmarshalJSON implements json.Unmarshaler
func (l *IDList) UnmarshalJSON(data []byte) error {
	*l = nil

	var ids []int
	if err := json.Unmarshal(data, &ids); err == nil {
		if len(ids) > 0 {
			*l = ids
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil || s == "" {
		return nil
	}

	var fields []string
	if strings.Contains(s, ",") {
		fields = strings.Split(s, ",")
	} else {
		fields = strings.Fields(s)
	}

	parsed := make(IDList, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil
		}
		parsed = append(parsed, id)
	}
	*l = parsed
	return nil
}

// Wiki represents the wiki page of a tag
type Wiki struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	Author    *Author   `json:"user"`
	IsLocked  bool      `json:"is_locked"`
	Version   int       `json:"version"`
}

// WikiTagTranslation is a translated tag name shown on a wiki page
type WikiTagTranslation struct {
	Lang        string  `json:"lang"`
	Translation string  `json:"translation"`
	Status      int     `json:"status"`
	Opacity     float64 `json:"opacity"`
	ID          *int    `json:"id"`
}

// WikiTag represents a tag together with its wiki page
type WikiTag struct {
	PostTag

	RelatedTags  []PostTag            `json:"related_tags"`
	ChildTags    []PostTag            `json:"child_tags"`
	ParentTags   []PostTag            `json:"parent_tags"`
	AliasTags    []PostTag            `json:"alias_tags"`
	ImpliedTags  []PostTag            `json:"implied_tags"`
	Translations []WikiTagTranslation `json:"translations"`
	Wiki         Wiki                 `json:"-"`
}

// TagAndWiki is the envelope returned by the tag detail endpoint
type TagAndWiki struct {
	Tag  WikiTag `json:"tag"`
	Wiki Wiki    `json:"wiki"`
}

// WikiTag merges the envelope into a single record
func (tw TagAndWiki) WikiTag() WikiTag {
	tag := tw.Tag
	tag.Wiki = tw.Wiki
	return tag
}
