package types

// Category groups products. ProductCount is computed by the server.
type Category struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	ParentID        string `json:"parentId,omitempty"`
	Order           int64  `json:"order"`
	IsActive        bool   `json:"isActive"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Slug            string `json:"slug"`
	ProductCount    int64  `json:"productCount"`
}

// CategoryDraft is a category submitted for creation.
type CategoryDraft struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Image           string `json:"image,omitempty"`
	ParentID        string `json:"parentId,omitempty"`
	Order           int64  `json:"order"`
	IsActive        bool   `json:"isActive"`
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Slug            string `json:"slug"`
}

// Validate checks the fields a category cannot be created without.
func (d CategoryDraft) Validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// CategoryPatch carries a partial category update; nil fields are not written.
type CategoryPatch struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Image           *string `json:"image,omitempty"`
	ParentID        *string `json:"parentId,omitempty"`
	Order           *int64  `json:"order,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
	MetaTitle       *string `json:"metaTitle,omitempty"`
	MetaDescription *string `json:"metaDescription,omitempty"`
	Slug            *string `json:"slug,omitempty"`
}
