package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// Categories manages product categories.
type Categories struct{ env *env }

func mapCategory(r types.Record) types.Category {
	return types.Category{
		ID:              str(r, "id"),
		Name:            str(r, "name"),
		Description:     str(r, "description"),
		Image:           str(r, "image"),
		ParentID:        str(r, "parent_id"),
		Order:           integer(r, "order"),
		IsActive:        boolean(r, "is_active"),
		MetaTitle:       str(r, "meta_title"),
		MetaDescription: str(r, "meta_description"),
		Slug:            str(r, "slug"),
	}
}

func categoryPatchRecord(p types.CategoryPatch) types.Record {
	rec := types.Record{}
	setPtr(rec, "name", p.Name)
	setPtr(rec, "description", p.Description)
	setPtr(rec, "image", p.Image)
	if p.ParentID != nil {
		rec["parent_id"] = ref(*p.ParentID)
	}
	setPtr(rec, "order", p.Order)
	setPtr(rec, "is_active", p.IsActive)
	setPtr(rec, "meta_title", p.MetaTitle)
	setPtr(rec, "meta_description", p.MetaDescription)
	setPtr(rec, "slug", p.Slug)
	return rec
}

// productCounts returns the number of products per category id.
func (s *Categories) productCounts(ctx context.Context) (map[string]int64, error) {
	c, err := s.env.gw.Collection(types.CollectionProducts)
	if err != nil {
		return nil, err
	}
	recs, err := c.Select(ctx, types.Query{})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64)
	for _, r := range recs {
		if id := str(r, "category_id"); id != "" {
			counts[id]++
		}
	}
	return counts, nil
}

// GetAll returns every category in display order with its product count.
func (s *Categories) GetAll(ctx context.Context) ([]types.Category, error) {
	cats, err := list(ctx, s.env, types.CollectionCategories, types.Query{
		Order: []types.OrderBy{{Field: "order"}},
	}, mapCategory)
	if err != nil {
		return nil, err
	}
	counts, err := s.productCounts(ctx)
	if err != nil {
		return nil, fetchError(types.CollectionCategories, err)
	}
	for i := range cats {
		cats[i].ProductCount = counts[cats[i].ID]
	}
	return cats, nil
}

// GetByID returns the category with the given id.
func (s *Categories) GetByID(ctx context.Context, id string) (types.Category, bool, error) {
	cat, ok, err := find(ctx, s.env, types.CollectionCategories, id, mapCategory)
	if !ok || err != nil {
		return cat, ok, err
	}
	counts, err := s.productCounts(ctx)
	if err != nil {
		return types.Category{}, false, fetchError(types.CollectionCategories, err)
	}
	cat.ProductCount = counts[id]
	return cat, true, nil
}

// Create stores a new category. A zero Order places it after the existing
// categories.
func (s *Categories) Create(ctx context.Context, d types.CategoryDraft) (types.Category, error) {
	if err := d.Validate(); err != nil {
		return types.Category{}, writeError(types.CollectionCategories, types.OpCreate, "", err)
	}
	if d.Order == 0 {
		c, err := s.env.gw.Collection(types.CollectionCategories)
		if err != nil {
			return types.Category{}, writeError(types.CollectionCategories, types.OpCreate, "", err)
		}
		existing, err := c.Select(ctx, types.Query{})
		if err != nil {
			return types.Category{}, writeError(types.CollectionCategories, types.OpCreate, "", err)
		}
		d.Order = int64(len(existing)) + 1
	}
	rec, err := insert(ctx, s.env, types.CollectionCategories, types.Record{
		"name":             d.Name,
		"description":      d.Description,
		"image":            d.Image,
		"parent_id":        ref(d.ParentID),
		"order":            d.Order,
		"is_active":        d.IsActive,
		"meta_title":       d.MetaTitle,
		"meta_description": d.MetaDescription,
		"slug":             d.Slug,
	})
	if err != nil {
		return types.Category{}, err
	}
	return mapCategory(rec), nil
}

// Update writes the fields set in p.
func (s *Categories) Update(ctx context.Context, id string, p types.CategoryPatch) (types.Category, error) {
	if p.Name != nil && *p.Name == "" {
		return types.Category{}, writeError(types.CollectionCategories, types.OpUpdate, id, types.ErrInvalidName)
	}
	rec, err := update(ctx, s.env, types.CollectionCategories, id, categoryPatchRecord(p))
	if err != nil {
		return types.Category{}, err
	}
	cat := mapCategory(rec)
	if counts, err := s.productCounts(ctx); err == nil {
		cat.ProductCount = counts[id]
	}
	return cat, nil
}

// SetActive publishes or unpublishes the category.
func (s *Categories) SetActive(ctx context.Context, id string, active bool) (types.Category, error) {
	return s.Update(ctx, id, types.CategoryPatch{IsActive: &active})
}

// Delete removes the category. Categories that still hold products are
// rejected with ErrInUse.
func (s *Categories) Delete(ctx context.Context, id string) error {
	counts, err := s.productCounts(ctx)
	if err != nil {
		return writeError(types.CollectionCategories, types.OpDelete, id, err)
	}
	if counts[id] > 0 {
		return writeError(types.CollectionCategories, types.OpDelete, id, types.ErrInUse)
	}
	return remove(ctx, s.env, types.CollectionCategories, id)
}
