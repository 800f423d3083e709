package collection

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/backoffice/pkg/types"
)

// builtInShowcase describes a home page block seeded on first startup.
type builtInShowcase struct {
	kind  types.ShowcaseType
	title string
	order int64
}

var builtInShowcases = []builtInShowcase{
	{types.ShowcaseFeaturedProducts, "Öne Çıkan Ürünler", 1},
	{types.ShowcaseCampaign, "Kampanyalar", 2},
	{types.ShowcaseTextBlock, "Hakkımızda", 3},
}

// Seed creates one legal text per type and the default showcases when their
// collections are empty. It is idempotent.
func Seed(ctx context.Context, s *Set) error {
	if err := seedIfEmpty(ctx, s, types.CollectionLegalTexts, legalTextSeeds()); err != nil {
		return err
	}
	return seedIfEmpty(ctx, s, types.CollectionShowcases, showcaseSeeds())
}

func legalTextSeeds() []types.Record {
	recs := make([]types.Record, 0, len(types.LegalTextTypes))
	for _, lt := range types.LegalTextTypes {
		recs = append(recs, types.Record{
			"type":      string(lt),
			"title":     lt.Label(),
			"content":   "",
			"is_active": false,
		})
	}
	return recs
}

func showcaseSeeds() []types.Record {
	recs := make([]types.Record, 0, len(builtInShowcases))
	for _, sc := range builtInShowcases {
		recs = append(recs, types.Record{
			"type":        string(sc.kind),
			"title":       sc.title,
			"product_ids": []string{},
			"is_active":   false,
			"order":       sc.order,
		})
	}
	return recs
}

func seedIfEmpty(ctx context.Context, s *Set, name string, recs []types.Record) error {
	c, err := s.Collection(name)
	if err != nil {
		return err
	}
	existing, err := c.Select(ctx, types.Query{Limit: 1})
	if err != nil {
		return fmt.Errorf("counting %s: %w", name, err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, rec := range recs {
		if _, err := c.Insert(ctx, rec); err != nil {
			return fmt.Errorf("seeding %s: %w", name, err)
		}
	}
	return nil
}
