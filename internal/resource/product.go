package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// DefaultCurrency is used when a product has none.
const DefaultCurrency = "TL"

var productCategoryJoin = types.Join{
	Collection: types.CollectionCategories,
	LocalKey:   "category_id",
	Columns:    []string{"name"},
}

// Products manages the product catalog.
type Products struct{ env *env }

func mapProduct(r types.Record) types.Product {
	p := types.Product{
		ID:               str(r, "id"),
		Name:             str(r, "name"),
		Description:      str(r, "description"),
		ShortDescription: str(r, "short_description"),
		Price:            number(r, "price"),
		DiscountedPrice:  numberPtr(r, "discounted_price"),
		Currency:         strOr(r, "currency", DefaultCurrency),
		VATRate:          number(r, "vat_rate"),
		Stock:            integer(r, "stock"),
		SKU:              str(r, "sku"),
		Barcode:          str(r, "barcode"),
		CategoryID:       str(r, "category_id"),
		CategoryName:     str(nested(r, types.CollectionCategories), "name"),
		Images:           []string{},
		IsFeatured:       boolean(r, "is_featured"),
		IsActive:         boolean(r, "is_active"),
		MetaTitle:        str(r, "meta_title"),
		MetaDescription:  str(r, "meta_description"),
		Slug:             str(r, "slug"),
		Volume:           numberPtr(r, "volume"),
		BatchCode:        str(r, "batch_code"),
		ProductionDate:   str(r, "production_date"),
		ExpirationDate:   str(r, "expiration_date"),
		CreatedAt:        timestamp(r, "created_at"),
		UpdatedAt:        timestamp(r, "updated_at"),
	}
	decodeJSON(r, "images", &p.Images)
	if p.Images == nil {
		p.Images = []string{}
	}
	decodeJSON(r, "variants", &p.Variants)

	var notes types.ScentNotes
	if _, ok := r["scent_notes"]; ok {
		decodeJSON(r, "scent_notes", &notes)
		if len(notes.Top)+len(notes.Middle)+len(notes.Base) > 0 {
			p.ScentNotes = &notes
		}
	}
	if f := types.FragranceFamily(str(r, "fragrance_family")); f.Valid() {
		p.FragranceFamily = f
	}
	if c := types.Concentration(str(r, "concentration")); c.Valid() {
		p.Concentration = c
	}
	if g := types.Gender(str(r, "gender")); g.Valid() {
		p.Gender = g
	}
	return p
}

func productDraftRecord(d types.ProductDraft) types.Record {
	rec := types.Record{
		"name":              d.Name,
		"description":       d.Description,
		"short_description": d.ShortDescription,
		"price":             d.Price,
		"discounted_price":  d.DiscountedPrice,
		"currency":          d.Currency,
		"vat_rate":          d.VATRate,
		"stock":             d.Stock,
		"sku":               d.SKU,
		"barcode":           d.Barcode,
		"category_id":       ref(d.CategoryID),
		"images":            nonNilStrings(d.Images),
		"is_featured":       d.IsFeatured,
		"is_active":         d.IsActive,
		"meta_title":        d.MetaTitle,
		"meta_description":  d.MetaDescription,
		"slug":              d.Slug,
		"fragrance_family":  string(d.FragranceFamily),
		"concentration":     string(d.Concentration),
		"gender":            string(d.Gender),
		"volume":            d.Volume,
		"batch_code":        d.BatchCode,
		"production_date":   ref(d.ProductionDate),
		"expiration_date":   ref(d.ExpirationDate),
	}
	if d.Currency == "" {
		rec["currency"] = DefaultCurrency
	}
	if d.Variants != nil {
		rec["variants"] = d.Variants
	}
	if d.ScentNotes != nil {
		rec["scent_notes"] = d.ScentNotes
	}
	return rec
}

func productPatchRecord(p types.ProductPatch) types.Record {
	rec := types.Record{}
	setPtr(rec, "name", p.Name)
	setPtr(rec, "description", p.Description)
	setPtr(rec, "short_description", p.ShortDescription)
	setPtr(rec, "price", p.Price)
	setPtr(rec, "discounted_price", p.DiscountedPrice)
	setPtr(rec, "stock", p.Stock)
	setPtr(rec, "is_active", p.IsActive)
	setPtr(rec, "is_featured", p.IsFeatured)
	if p.CategoryID != nil {
		rec["category_id"] = ref(*p.CategoryID)
	}
	if p.Images != nil {
		rec["images"] = p.Images
	}
	if p.Variants != nil {
		rec["variants"] = p.Variants
	}
	setPtr(rec, "scent_notes", p.ScentNotes)
	setPtr(rec, "fragrance_family", p.FragranceFamily)
	setPtr(rec, "concentration", p.Concentration)
	setPtr(rec, "gender", p.Gender)
	setPtr(rec, "volume", p.Volume)
	setPtr(rec, "batch_code", p.BatchCode)
	if p.ProductionDate != nil {
		rec["production_date"] = ref(*p.ProductionDate)
	}
	if p.ExpirationDate != nil {
		rec["expiration_date"] = ref(*p.ExpirationDate)
	}
	return rec
}

// GetAll returns every product, newest first, with its category name.
func (s *Products) GetAll(ctx context.Context) ([]types.Product, error) {
	return list(ctx, s.env, types.CollectionProducts, types.Query{
		Order: []types.OrderBy{{Field: "created_at", Desc: true}},
		Joins: []types.Join{productCategoryJoin},
	}, mapProduct)
}

// GetByID returns the product with the given id.
func (s *Products) GetByID(ctx context.Context, id string) (types.Product, bool, error) {
	return find(ctx, s.env, types.CollectionProducts, id, mapProduct, productCategoryJoin)
}

// Create stores a new product and returns it with its category name.
func (s *Products) Create(ctx context.Context, d types.ProductDraft) (types.Product, error) {
	if err := d.Validate(); err != nil {
		return types.Product{}, writeError(types.CollectionProducts, types.OpCreate, "", err)
	}
	rec, err := insert(ctx, s.env, types.CollectionProducts, productDraftRecord(d))
	if err != nil {
		return types.Product{}, err
	}
	return mapProduct(rejoin(ctx, s.env, types.CollectionProducts, rec, productCategoryJoin)), nil
}

// Update writes the fields set in p and returns the full product.
func (s *Products) Update(ctx context.Context, id string, p types.ProductPatch) (types.Product, error) {
	if (p.Price != nil && *p.Price < 0) || (p.Stock != nil && *p.Stock < 0) {
		return types.Product{}, writeError(types.CollectionProducts, types.OpUpdate, id, types.ErrInvalidData)
	}
	if p.Name != nil && *p.Name == "" {
		return types.Product{}, writeError(types.CollectionProducts, types.OpUpdate, id, types.ErrInvalidName)
	}
	rec, err := update(ctx, s.env, types.CollectionProducts, id, productPatchRecord(p))
	if err != nil {
		return types.Product{}, err
	}
	return mapProduct(rejoin(ctx, s.env, types.CollectionProducts, rec, productCategoryJoin)), nil
}

// Delete removes the product.
func (s *Products) Delete(ctx context.Context, id string) error {
	return remove(ctx, s.env, types.CollectionProducts, id)
}

// SetActive publishes or unpublishes the product.
func (s *Products) SetActive(ctx context.Context, id string, active bool) (types.Product, error) {
	return s.Update(ctx, id, types.ProductPatch{IsActive: &active})
}

// SetFeatured marks the product as featured on the storefront.
func (s *Products) SetFeatured(ctx context.Context, id string, featured bool) (types.Product, error) {
	return s.Update(ctx, id, types.ProductPatch{IsFeatured: &featured})
}
