package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

var byDisplayOrder = []types.OrderBy{{Field: "order"}}

// Banners manages the storefront hero banners.
type Banners struct{ env *env }

func mapBanner(r types.Record) types.Banner {
	return types.Banner{
		ID:        str(r, "id"),
		Title:     str(r, "title"),
		Subtitle:  str(r, "subtitle"),
		Image:     str(r, "image"),
		Link:      str(r, "link"),
		Order:     integer(r, "order"),
		IsActive:  boolean(r, "is_active"),
		CreatedAt: timestamp(r, "created_at"),
	}
}

// GetAll returns every banner in display order.
func (s *Banners) GetAll(ctx context.Context) ([]types.Banner, error) {
	return list(ctx, s.env, types.CollectionBanners, types.Query{Order: byDisplayOrder}, mapBanner)
}

// GetByID returns the banner with the given id.
func (s *Banners) GetByID(ctx context.Context, id string) (types.Banner, bool, error) {
	return find(ctx, s.env, types.CollectionBanners, id, mapBanner)
}

// Create stores a new banner.
func (s *Banners) Create(ctx context.Context, d types.BannerDraft) (types.Banner, error) {
	if err := d.Validate(); err != nil {
		return types.Banner{}, writeError(types.CollectionBanners, types.OpCreate, "", err)
	}
	rec, err := insert(ctx, s.env, types.CollectionBanners, types.Record{
		"title":     d.Title,
		"subtitle":  d.Subtitle,
		"image":     d.Image,
		"link":      d.Link,
		"order":     d.Order,
		"is_active": d.IsActive,
	})
	if err != nil {
		return types.Banner{}, err
	}
	return mapBanner(rec), nil
}

// Update writes the fields set in p.
func (s *Banners) Update(ctx context.Context, id string, p types.BannerPatch) (types.Banner, error) {
	if p.Title != nil && *p.Title == "" {
		return types.Banner{}, writeError(types.CollectionBanners, types.OpUpdate, id, types.ErrInvalidName)
	}
	rec := types.Record{}
	setPtr(rec, "title", p.Title)
	setPtr(rec, "subtitle", p.Subtitle)
	setPtr(rec, "image", p.Image)
	setPtr(rec, "link", p.Link)
	setPtr(rec, "order", p.Order)
	setPtr(rec, "is_active", p.IsActive)
	out, err := update(ctx, s.env, types.CollectionBanners, id, rec)
	if err != nil {
		return types.Banner{}, err
	}
	return mapBanner(out), nil
}

// Delete removes the banner.
func (s *Banners) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.env, types.CollectionBanners, id)
}

// Showcases manages the home page content blocks. Blocks are seeded and
// only ever updated.
type Showcases struct{ env *env }

func mapShowcase(r types.Record) types.Showcase {
	sc := types.Showcase{
		ID:         str(r, "id"),
		Type:       types.ShowcaseType(str(r, "type")),
		Title:      str(r, "title"),
		Content:    str(r, "content"),
		ProductIDs: []string{},
		IsActive:   boolean(r, "is_active"),
		Order:      integer(r, "order"),
	}
	decodeJSON(r, "product_ids", &sc.ProductIDs)
	if sc.ProductIDs == nil {
		sc.ProductIDs = []string{}
	}
	return sc
}

// GetAll returns every showcase in display order.
func (s *Showcases) GetAll(ctx context.Context) ([]types.Showcase, error) {
	return list(ctx, s.env, types.CollectionShowcases, types.Query{Order: byDisplayOrder}, mapShowcase)
}

// GetByID returns the showcase with the given id.
func (s *Showcases) GetByID(ctx context.Context, id string) (types.Showcase, bool, error) {
	return find(ctx, s.env, types.CollectionShowcases, id, mapShowcase)
}

// Update writes the fields set in p.
func (s *Showcases) Update(ctx context.Context, id string, p types.ShowcasePatch) (types.Showcase, error) {
	rec := types.Record{}
	setPtr(rec, "title", p.Title)
	setPtr(rec, "content", p.Content)
	if p.ProductIDs != nil {
		rec["product_ids"] = p.ProductIDs
	}
	setPtr(rec, "is_active", p.IsActive)
	setPtr(rec, "order", p.Order)
	out, err := update(ctx, s.env, types.CollectionShowcases, id, rec)
	if err != nil {
		return types.Showcase{}, err
	}
	return mapShowcase(out), nil
}
