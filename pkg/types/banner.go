package types

import "time"

// Banner is a storefront hero image.
type Banner struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle,omitempty"`
	Image     string    `json:"image"`
	Link      string    `json:"link,omitempty"`
	Order     int64     `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// BannerDraft is a banner submitted for creation.
type BannerDraft struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	Order    int64  `json:"order"`
	IsActive bool   `json:"isActive"`
}

// Validate checks the fields a banner cannot be created without.
func (d BannerDraft) Validate() error {
	if d.Title == "" {
		return ErrInvalidName
	}
	return nil
}

// BannerPatch carries a partial banner update; nil fields are not written.
type BannerPatch struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	Image    *string `json:"image,omitempty"`
	Link     *string `json:"link,omitempty"`
	Order    *int64  `json:"order,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// ShowcaseType selects how a showcase block renders.
type ShowcaseType string

// Showcase types.
const (
	ShowcaseFeaturedProducts ShowcaseType = "featured_products"
	ShowcaseCampaign         ShowcaseType = "campaign"
	ShowcaseTextBlock        ShowcaseType = "text_block"
)

// Valid reports whether t is a known showcase type.
func (t ShowcaseType) Valid() bool {
	switch t {
	case ShowcaseFeaturedProducts, ShowcaseCampaign, ShowcaseTextBlock:
		return true
	}
	return false
}

// Showcase is a home page content block.
type Showcase struct {
	ID         string       `json:"id"`
	Type       ShowcaseType `json:"type"`
	Title      string       `json:"title"`
	Content    string       `json:"content,omitempty"`
	ProductIDs []string     `json:"productIds"`
	IsActive   bool         `json:"isActive"`
	Order      int64        `json:"order"`
}

// ShowcasePatch carries a partial showcase update; nil fields are not written.
type ShowcasePatch struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	ProductIDs []string `json:"productIds,omitempty"`
	IsActive   *bool    `json:"isActive,omitempty"`
	Order      *int64   `json:"order,omitempty"`
}
