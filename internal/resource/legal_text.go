package resource

import (
	"context"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// LegalTexts manages the storefront legal documents. One document exists
// per type; documents are seeded and only ever updated.
type LegalTexts struct{ env *env }

func mapLegalText(r types.Record) types.LegalText {
	return types.LegalText{
		ID:        str(r, "id"),
		Type:      types.LegalTextType(str(r, "type")),
		Title:     str(r, "title"),
		Content:   str(r, "content"),
		IsActive:  boolean(r, "is_active"),
		UpdatedAt: timestamp(r, "updated_at"),
	}
}

// GetAll returns every legal text ordered by title.
func (s *LegalTexts) GetAll(ctx context.Context) ([]types.LegalText, error) {
	return list(ctx, s.env, types.CollectionLegalTexts, types.Query{
		Order: []types.OrderBy{{Field: "title"}},
	}, mapLegalText)
}

// GetByID returns the legal text with the given id.
func (s *LegalTexts) GetByID(ctx context.Context, id string) (types.LegalText, bool, error) {
	return find(ctx, s.env, types.CollectionLegalTexts, id, mapLegalText)
}

// Update writes the fields set in p and stamps the edit time.
func (s *LegalTexts) Update(ctx context.Context, id string, p types.LegalTextPatch) (types.LegalText, error) {
	rec := types.Record{"updated_at": s.env.now().UTC()}
	setPtr(rec, "title", p.Title)
	setPtr(rec, "content", p.Content)
	setPtr(rec, "is_active", p.IsActive)
	out, err := update(ctx, s.env, types.CollectionLegalTexts, id, rec)
	if err != nil {
		return types.LegalText{}, err
	}
	return mapLegalText(out), nil
}
