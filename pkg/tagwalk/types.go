package tagwalk

import (
	"time"
)

// Sluggable carries the URL identifier of a document.
type Sluggable struct {
	Slug string `json:"slug" yaml:"slug"`
}

// GetSlug returns the slug.
func (s Sluggable) GetSlug() string {
	return s.Slug
}

// Nameable carries the display name of a document.
type Nameable struct {
	Name string `json:"name" yaml:"name"`
}

// Statusable carries the publication status of a document.
type Statusable struct {
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// Timestampable carries creation and update times.
type Timestampable struct {
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Document is the field set shared by every named API resource.
type Document struct {
	Sluggable     `yaml:",inline"`
	Nameable      `yaml:",inline"`
	Statusable    `yaml:",inline"`
	Timestampable `yaml:",inline"`
}

// City represents a fashion week city.
type City struct {
	Document `yaml:",inline"`

	Position int `json:"position" yaml:"position"`
}

// Season represents a collection season (e.g. fall-winter-2019).
type Season struct {
	Document `yaml:",inline"`

	Shortname string `json:"shortname" yaml:"shortname"`
	Position  int    `json:"position"  yaml:"position"`
}

// Designer represents a fashion house or designer.
type Designer struct {
	Document `yaml:",inline"`

	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Talent      bool   `json:"talent"                yaml:"talent"`
	Country     string `json:"country,omitempty"     yaml:"country,omitempty"`
}

// Tag represents an editorial tag.
type Tag struct {
	Document `yaml:",inline"`

	Variants []string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Individual represents a person appearing in medias (model, influencer...).
type Individual struct {
	Document `yaml:",inline"`

	Gender      string `json:"gender,omitempty"      yaml:"gender,omitempty"`
	Instagram   string `json:"instagram,omitempty"   yaml:"instagram,omitempty"`
	Nationality string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
}

// Affiliation links a streetstyle to a brand or agency.
type Affiliation struct {
	Document `yaml:",inline"`

	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// File is an image attached to a media, streetstyle, or gallery.
type File struct {
	Filename string `json:"filename"       yaml:"filename"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	URL      string `json:"url,omitempty"  yaml:"url,omitempty"`
	Width    int    `json:"width"          yaml:"width"`
	Height   int    `json:"height"         yaml:"height"`
	Position int    `json:"position"       yaml:"position"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Media is a runway look.
type Media struct {
	Document `yaml:",inline"`

	Type        string       `json:"type"                yaml:"type"`
	Look        int          `json:"look"                yaml:"look"`
	Position    int          `json:"position"            yaml:"position"`
	Models      string       `json:"models,omitempty"    yaml:"models,omitempty"`
	City        *City        `json:"city,omitempty"      yaml:"city,omitempty"`
	Season      *Season      `json:"season,omitempty"    yaml:"season,omitempty"`
	Designer    *Designer    `json:"designer,omitempty"  yaml:"designer,omitempty"`
	Tags        []Tag        `json:"tags"                yaml:"tags"`
	Files       []File       `json:"files"               yaml:"files"`
	Individuals []Individual `json:"individuals"         yaml:"individuals"`
}

// Streetstyle is a street photograph taken around a show.
type Streetstyle struct {
	Document `yaml:",inline"`

	Text         string        `json:"text,omitempty"   yaml:"text,omitempty"`
	City         *City         `json:"city,omitempty"   yaml:"city,omitempty"`
	Season       *Season       `json:"season,omitempty" yaml:"season,omitempty"`
	Designers    []Designer    `json:"designers"        yaml:"designers"`
	Tags         []Tag         `json:"tags"             yaml:"tags"`
	Affiliations []Affiliation `json:"affiliations"     yaml:"affiliations"`
	Files        []File        `json:"files"            yaml:"files"`
	Individuals  []Individual  `json:"individuals"      yaml:"individuals"`
}

// Gallery is an editorial selection of medias and streetstyles.
type Gallery struct {
	Document `yaml:",inline"`

	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Text         string        `json:"text,omitempty"  yaml:"text,omitempty"`
	Files        []File        `json:"files"           yaml:"files"`
	Medias       []Media       `json:"medias"          yaml:"medias"`
	Streetstyles []Streetstyle `json:"streetstyles"    yaml:"streetstyles"`
}

// Page is one page of a listing together with the X-Total-Count header.
type Page[T any] struct {
	Items      []T `json:"items"       yaml:"items"`
	TotalCount int `json:"total_count" yaml:"total_count"`
}

// ModelMedias is the result of listing medias for a model, with the
// per-category counts sent by the API.
type ModelMedias struct {
	Medias            []Media `json:"medias"             yaml:"medias"`
	TotalCount        int     `json:"total_count"        yaml:"total_count"`
	StreetstylesCount int     `json:"streetstyles_count" yaml:"streetstyles_count"`
	NewsCount         int     `json:"news_count"         yaml:"news_count"`
	TalksCount        int     `json:"talks_count"        yaml:"talks_count"`
}
