package types

import "time"

// FragranceFamily classifies a perfume's scent profile.
type FragranceFamily string

// Fragrance families.
const (
	FamilyFloral   FragranceFamily = "floral"
	FamilyWoody    FragranceFamily = "woody"
	FamilyOriental FragranceFamily = "oriental"
	FamilyFresh    FragranceFamily = "fresh"
	FamilyCitrus   FragranceFamily = "citrus"
	FamilyFruity   FragranceFamily = "fruity"
	FamilySpicy    FragranceFamily = "spicy"
	FamilyGourmand FragranceFamily = "gourmand"
	FamilyAquatic  FragranceFamily = "aquatic"
)

var validFamilies = map[FragranceFamily]bool{
	FamilyFloral: true, FamilyWoody: true, FamilyOriental: true, FamilyFresh: true,
	FamilyCitrus: true, FamilyFruity: true, FamilySpicy: true, FamilyGourmand: true,
	FamilyAquatic: true,
}

// Valid reports whether f is a known family.
func (f FragranceFamily) Valid() bool { return validFamilies[f] }

// Concentration is the perfume oil strength.
type Concentration string

// Concentrations.
const (
	ConcentrationEDP      Concentration = "edp"
	ConcentrationEDT      Concentration = "edt"
	ConcentrationEDC      Concentration = "edc"
	ConcentrationParfum   Concentration = "parfum"
	ConcentrationBodyMist Concentration = "body_mist"
)

var validConcentrations = map[Concentration]bool{
	ConcentrationEDP: true, ConcentrationEDT: true, ConcentrationEDC: true,
	ConcentrationParfum: true, ConcentrationBodyMist: true,
}

// Valid reports whether c is a known concentration.
func (c Concentration) Valid() bool { return validConcentrations[c] }

// Gender is the intended audience of a product.
type Gender string

// Genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
	GenderKids   Gender = "kids"
)

var validGenders = map[Gender]bool{
	GenderMale: true, GenderFemale: true, GenderUnisex: true, GenderKids: true,
}

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool { return validGenders[g] }

// ScentNotes lists the top, middle, and base notes of a perfume.
type ScentNotes struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

// ProductVariant is a purchasable variation of a product (e.g. bottle size).
type ProductVariant struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Value         string  `json:"value"`
	PriceModifier float64 `json:"priceModifier"`
	Stock         int64   `json:"stock"`
}

// Product is a catalog item. CategoryName is joined from categories and is
// owned by the server.
type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Price            float64          `json:"price"`
	DiscountedPrice  *float64         `json:"discountedPrice,omitempty"`
	Currency         string           `json:"currency"`
	VATRate          float64          `json:"vatRate"`
	Stock            int64            `json:"stock"`
	SKU              string           `json:"sku"`
	Barcode          string           `json:"barcode,omitempty"`
	CategoryID       string           `json:"categoryId"`
	CategoryName     string           `json:"categoryName"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	Images           []string         `json:"images"`
	IsFeatured       bool             `json:"isFeatured"`
	IsActive         bool             `json:"isActive"`
	MetaTitle        string           `json:"metaTitle,omitempty"`
	MetaDescription  string           `json:"metaDescription,omitempty"`
	Slug             string           `json:"slug"`

	ScentNotes      *ScentNotes     `json:"scentNotes,omitempty"`
	FragranceFamily FragranceFamily `json:"fragranceFamily,omitempty"`
	Concentration   Concentration   `json:"concentration,omitempty"`
	Gender          Gender          `json:"gender,omitempty"`
	Volume          *float64        `json:"volume,omitempty"` // ml

	BatchCode      string `json:"batchCode,omitempty"`
	ProductionDate string `json:"productionDate,omitempty"` // YYYY-MM-DD
	ExpirationDate string `json:"expirationDate,omitempty"` // YYYY-MM-DD

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductDraft is a product submitted for creation. It has no server-owned
// fields (id, timestamps, category name).
type ProductDraft struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Price            float64          `json:"price"`
	DiscountedPrice  *float64         `json:"discountedPrice,omitempty"`
	Currency         string           `json:"currency"`
	VATRate          float64          `json:"vatRate"`
	Stock            int64            `json:"stock"`
	SKU              string           `json:"sku"`
	Barcode          string           `json:"barcode,omitempty"`
	CategoryID       string           `json:"categoryId"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	Images           []string         `json:"images"`
	IsFeatured       bool             `json:"isFeatured"`
	IsActive         bool             `json:"isActive"`
	MetaTitle        string           `json:"metaTitle,omitempty"`
	MetaDescription  string           `json:"metaDescription,omitempty"`
	Slug             string           `json:"slug"`
	ScentNotes       *ScentNotes      `json:"scentNotes,omitempty"`
	FragranceFamily  FragranceFamily  `json:"fragranceFamily,omitempty"`
	Concentration    Concentration    `json:"concentration,omitempty"`
	Gender           Gender           `json:"gender,omitempty"`
	Volume           *float64         `json:"volume,omitempty"`
	BatchCode        string           `json:"batchCode,omitempty"`
	ProductionDate   string           `json:"productionDate,omitempty"`
	ExpirationDate   string           `json:"expirationDate,omitempty"`
}

// Validate checks the fields a product cannot be created without.
func (d ProductDraft) Validate() error {
	if d.Name == "" {
		return ErrInvalidName
	}
	if d.Price < 0 || d.Stock < 0 {
		return ErrInvalidData
	}
	return nil
}

// ProductPatch carries a partial product update; nil fields are not written.
type ProductPatch struct {
	Name             *string          `json:"name,omitempty"`
	Description      *string          `json:"description,omitempty"`
	ShortDescription *string          `json:"shortDescription,omitempty"`
	Price            *float64         `json:"price,omitempty"`
	DiscountedPrice  *float64         `json:"discountedPrice,omitempty"`
	Stock            *int64           `json:"stock,omitempty"`
	IsActive         *bool            `json:"isActive,omitempty"`
	IsFeatured       *bool            `json:"isFeatured,omitempty"`
	CategoryID       *string          `json:"categoryId,omitempty"`
	Images           []string         `json:"images,omitempty"`
	Variants         []ProductVariant `json:"variants,omitempty"`
	ScentNotes       *ScentNotes      `json:"scentNotes,omitempty"`
	FragranceFamily  *FragranceFamily `json:"fragranceFamily,omitempty"`
	Concentration    *Concentration   `json:"concentration,omitempty"`
	Gender           *Gender          `json:"gender,omitempty"`
	Volume           *float64         `json:"volume,omitempty"`
	BatchCode        *string          `json:"batchCode,omitempty"`
	ProductionDate   *string          `json:"productionDate,omitempty"`
	ExpirationDate   *string          `json:"expirationDate,omitempty"`
}
